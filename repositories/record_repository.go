package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/blogem/record-engine/database"
	"github.com/blogem/record-engine/models"
)

// RecordRepository is the store adapter for records of one schema.
// Identifiers come from the schema only; every value is a bound parameter.
type RecordRepository interface {
	Insert(ctx context.Context, values models.RecordValues) (int64, error)
	Update(ctx context.Context, id int64, values models.RecordValues) (int64, error)
	Delete(ctx context.Context, id int64) (*models.Row, error)
	GetByID(ctx context.Context, id int64) (*models.Row, error)
	FetchAll(ctx context.Context) ([]models.Row, error)
	CountWhere(ctx context.Context, column string, value any, excludeID *int64) (int, error)
}

// sqlRecordRepository implements RecordRepository over database/sql
type sqlRecordRepository struct {
	db      *sql.DB
	dialect database.Dialect
	schema  *models.Schema
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sql.DB, dialect database.Dialect, schema *models.Schema) RecordRepository {
	return &sqlRecordRepository{db: db, dialect: dialect, schema: schema}
}

// Insert stores a new record and returns its primary key
func (r *sqlRecordRepository) Insert(ctx context.Context, values models.RecordValues) (int64, error) {
	columns := make([]string, len(r.schema.Fields))
	for i, f := range r.schema.Fields {
		columns[i] = r.dialect.Quote(f.Column)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.table(), strings.Join(columns, ", "), r.dialect.Placeholders(1, len(columns)))

	conn, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	args := r.args(values)

	if r.dialect.ReturningID() {
		var id int64
		query += " RETURNING " + r.pk()
		if err := conn.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, storeError("insert record", err)
		}
		return id, nil
	}

	result, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, storeError("insert record", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storeError("get inserted record ID", err)
	}
	return id, nil
}

// Update overwrites every schema column of the record and returns the matched row count
func (r *sqlRecordRepository) Update(ctx context.Context, id int64, values models.RecordValues) (int64, error) {
	assignments := make([]string, len(r.schema.Fields))
	for i, f := range r.schema.Fields {
		assignments[i] = r.dialect.Quote(f.Column) + " = " + r.dialect.Placeholder(i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		r.table(), strings.Join(assignments, ", "), r.pk(), r.dialect.Placeholder(len(assignments)+1))

	conn, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, query, append(r.args(values), id)...)
	if err != nil {
		return 0, storeError("update record", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, storeError("get updated row count", err)
	}
	if affected == 0 {
		return 0, models.NotFound(id)
	}
	return affected, nil
}

// Delete reads the full row and deletes it inside one transaction.
// The returned snapshot is only produced once the delete has committed.
func (r *sqlRecordRepository) Delete(ctx context.Context, id int64) (*models.Row, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeError("begin delete transaction", err)
	}
	defer tx.Rollback()

	query := r.selectQuery() + " WHERE " + r.pk() + " = " + r.dialect.Placeholder(1)
	row, err := r.scanRow(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound(id)
	}
	if err != nil {
		return nil, storeError("read record before delete", err)
	}

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", r.table(), r.pk(), r.dialect.Placeholder(1))
	result, err := tx.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		return nil, storeError("delete record", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, models.NotFound(id)
	}

	if err := tx.Commit(); err != nil {
		return nil, storeError("commit delete", err)
	}

	return row, nil
}

// GetByID retrieves a record by primary key
func (r *sqlRecordRepository) GetByID(ctx context.Context, id int64) (*models.Row, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := r.selectQuery() + " WHERE " + r.pk() + " = " + r.dialect.Placeholder(1)
	row, err := r.scanRow(conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NotFound(id)
	}
	if err != nil {
		return nil, storeError("get record", err)
	}
	return row, nil
}

// FetchAll retrieves every record, newest first
func (r *sqlRecordRepository) FetchAll(ctx context.Context) ([]models.Row, error) {
	conn, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := r.selectQuery() + " ORDER BY " + r.pk() + " DESC"
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, storeError("query records", err)
	}
	defer rows.Close()

	records := []models.Row{}
	for rows.Next() {
		row, err := r.scanRow(rows)
		if err != nil {
			return nil, storeError("scan record", err)
		}
		records = append(records, *row)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError("iterate records", err)
	}

	return records, nil
}

// CountWhere counts records whose column equals value, ignoring excludeID when set
func (r *sqlRecordRepository) CountWhere(ctx context.Context, column string, value any, excludeID *int64) (int, error) {
	if _, ok := r.schema.Field(column); !ok {
		return 0, models.StoreError(fmt.Errorf("column %q is not part of table %s", column, r.schema.TableName))
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s",
		r.table(), r.dialect.Quote(column), r.dialect.Placeholder(1))
	args := []any{value}
	if excludeID != nil {
		query += " AND " + r.pk() + " != " + r.dialect.Placeholder(2)
		args = append(args, *excludeID)
	}

	conn, err := r.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var count int
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, storeError("count records", err)
	}
	return count, nil
}

// acquire takes a dedicated connection for one operation; callers must close it
func (r *sqlRecordRepository) acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, models.StoreUnavailable(fmt.Errorf("failed to acquire connection: %w", err))
	}
	return conn, nil
}

func (r *sqlRecordRepository) table() string {
	return r.dialect.Quote(r.schema.TableName)
}

func (r *sqlRecordRepository) pk() string {
	return r.dialect.Quote(r.schema.PrimaryKeyColumn)
}

func (r *sqlRecordRepository) selectQuery() string {
	columns := []string{r.pk()}
	for _, f := range r.schema.Fields {
		columns = append(columns, r.dialect.Quote(f.Column))
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), r.table())
}

// args returns the bound values in schema order
func (r *sqlRecordRepository) args(values models.RecordValues) []any {
	args := make([]any, len(r.schema.Fields))
	for i, f := range r.schema.Fields {
		args[i] = values[f.Column]
	}
	return args
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRow scans the primary key and schema columns into typed values
func (r *sqlRecordRepository) scanRow(s scanner) (*models.Row, error) {
	var id int64
	dest := []any{&id}
	for _, f := range r.schema.Fields {
		switch f.Type {
		case models.FieldNumber:
			dest = append(dest, new(sql.NullInt64))
		case models.FieldDate:
			dest = append(dest, new(sql.NullTime))
		default:
			dest = append(dest, new(sql.NullString))
		}
	}

	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	values := make(models.RecordValues, len(r.schema.Fields))
	for i, f := range r.schema.Fields {
		switch v := dest[i+1].(type) {
		case *sql.NullInt64:
			if v.Valid {
				values[f.Column] = v.Int64
			} else {
				values[f.Column] = nil
			}
		case *sql.NullTime:
			if v.Valid {
				values[f.Column] = v.Time
			} else {
				values[f.Column] = nil
			}
		case *sql.NullString:
			if v.Valid {
				values[f.Column] = v.String
			} else {
				values[f.Column] = nil
			}
		}
	}

	return &models.Row{ID: id, Values: values}, nil
}

// storeError classifies a driver error into the engine's store failures
func storeError(action string, err error) error {
	wrapped := fmt.Errorf("failed to %s: %w", action, err)
	switch database.Classify(err) {
	case database.ClassConflict:
		return models.StoreConflict(wrapped)
	case database.ClassUnavailable:
		return models.StoreUnavailable(wrapped)
	default:
		return models.StoreError(wrapped)
	}
}
