package repositories

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blogem/record-engine/database"
	"github.com/blogem/record-engine/models"
)

// AuditRepository is the append-only sink for deleted-record history
type AuditRepository interface {
	Append(ctx context.Context, entry models.AuditEntry) error
	History(ctx context.Context) ([]string, error)
}

// fileAuditRepository appends one line per entry to a text file
type fileAuditRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileAuditRepository creates an audit sink writing to path
func NewFileAuditRepository(path string) AuditRepository {
	return &fileAuditRepository{path: path}
}

// Append writes the entry line, creating the file and its directory when absent
func (r *fileAuditRepository) Append(ctx context.Context, entry models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create audit log directory: %w", err)
		}
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}

	if _, err := f.WriteString(entry.Line() + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return f.Close()
}

// History returns every line of the audit file, empty when it does not exist yet
func (r *fileAuditRepository) History(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	lines := []string{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	return lines, nil
}

// sqlAuditRepository stores history lines in the deleted_records table
type sqlAuditRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSQLAuditRepository creates an audit sink backed by the relational store
func NewSQLAuditRepository(db *sql.DB, dialect database.Dialect) AuditRepository {
	return &sqlAuditRepository{db: db, dialect: dialect}
}

// Append inserts a new history row
func (r *sqlAuditRepository) Append(ctx context.Context, entry models.AuditEntry) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, %s) VALUES (%s)",
		r.dialect.Quote(database.AuditTable),
		r.dialect.Quote("deleted_at"), r.dialect.Quote("record_id"), r.dialect.Quote("line"),
		r.dialect.Placeholders(1, 3))

	_, err := r.db.ExecContext(ctx, query, entry.Timestamp, entry.RecordID, entry.Line())
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// History returns the stored lines in insertion order
func (r *sqlAuditRepository) History(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC",
		r.dialect.Quote("line"), r.dialect.Quote(database.AuditTable), r.dialect.Quote("id"))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	lines := []string{}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entries: %w", err)
	}

	return lines, nil
}
