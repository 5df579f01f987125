package repositories

import (
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/record-engine/config"
	"github.com/blogem/record-engine/database"
	"github.com/blogem/record-engine/models"
)

func setupTestDB(t *testing.T) (*sql.DB, database.Dialect, *models.Schema) {
	ctx := context.Background()

	db, dialect, err := database.Open(ctx, config.DatabaseConfig{
		Driver:         database.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "test.db"),
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { db.Close() })

	schema, err := config.LoadSchema("")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	err = database.RunMigrations(ctx, db, dialect, database.Migrations(dialect, schema, true), logger)
	require.NoError(t, err, "Failed to migrate test database")

	return db, dialect, schema
}

func patient(name, report string, value int64, code string) models.RecordValues {
	return models.RecordValues{
		"p_name":   name,
		"report":   report,
		"r_number": int64(100),
		"r_value":  value,
		"d_code":   code,
		"date":     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecordRepository(t *testing.T) {
	db, dialect, schema := setupTestDB(t)
	repo := NewRecordRepository(db, dialect, schema)
	ctx := context.Background()

	// Test Insert
	values := patient("ALICE", "TYPE1", 5000, "AB-1234")
	id, err := repo.Insert(ctx, values)
	require.NoError(t, err)
	assert.NotZero(t, id)

	// Test FetchAll round trip
	rows, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
	for _, column := range schema.Columns() {
		if column == "date" {
			continue
		}
		assert.Equal(t, values[column], rows[0].Values[column], "column %s", column)
	}
	storedDate, ok := rows[0].Values["date"].(time.Time)
	require.True(t, ok, "expected date column to scan as time.Time")
	assert.Equal(t, "2024-03-15", storedDate.Format(models.DateLayout))

	// Test ordering: newest first
	second, err := repo.Insert(ctx, patient("BOB", "TYPE2", 20, "CD-5678"))
	require.NoError(t, err)
	rows, err = repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second, rows[0].ID)
	assert.Equal(t, id, rows[1].ID)

	// Test Update
	updated := patient("ALICE JONES", "TYPE3", 7000, "AB-1234")
	count, err := repo.Update(ctx, id, updated)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	row, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ALICE JONES", row.Values["p_name"])
	assert.Equal(t, int64(7000), row.Values["r_value"])

	_, err = repo.Update(ctx, 9999, updated)
	assert.True(t, models.IsKind(err, models.KindNotFound), "expected NotFound, got %v", err)

	// Test CountWhere with and without exclusion
	n, err := repo.CountWhere(ctx, "d_code", "AB-1234", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = repo.CountWhere(ctx, "d_code", "AB-1234", &id)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = repo.CountWhere(ctx, "p_id; DROP TABLE patients", "x", nil)
	assert.True(t, models.IsKind(err, models.KindStoreError))

	// Test Delete returns the pre-delete snapshot
	snapshot, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, snapshot.ID)
	assert.Equal(t, "ALICE JONES", snapshot.Values["p_name"])

	_, err = repo.GetByID(ctx, id)
	assert.True(t, models.IsKind(err, models.KindNotFound))

	_, err = repo.Delete(ctx, id)
	assert.True(t, models.IsKind(err, models.KindNotFound))
}

func TestRecordRepository_Conflict(t *testing.T) {
	db, dialect, schema := setupTestDB(t)
	repo := NewRecordRepository(db, dialect, schema)
	ctx := context.Background()

	_, err := repo.Insert(ctx, patient("ALICE", "TYPE1", 10, "AB-1234"))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, patient("BOB", "TYPE1", 20, "AB-1234"))
	assert.True(t, models.IsKind(err, models.KindStoreConflict), "expected StoreConflict, got %v", err)

	rows, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRecordRepository_DeleteFailureKeepsRow(t *testing.T) {
	db, dialect, schema := setupTestDB(t)
	repo := NewRecordRepository(db, dialect, schema)
	ctx := context.Background()

	id, err := repo.Insert(ctx, patient("ALICE", "TYPE1", 10, "AB-1234"))
	require.NoError(t, err)

	// The row is readable but the delete statement itself fails
	_, err = db.ExecContext(ctx, `CREATE TRIGGER block_patient_delete BEFORE DELETE ON patients
		BEGIN SELECT RAISE(ABORT, 'deletes are blocked'); END`)
	require.NoError(t, err)

	snapshot, err := repo.Delete(ctx, id)
	assert.Nil(t, snapshot)
	assert.True(t, models.IsKind(err, models.KindStoreError), "expected StoreError, got %v", err)

	rows, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)
}

func TestRecordRepository_OptionalNull(t *testing.T) {
	db, dialect, _ := setupTestDB(t)
	schema := &models.Schema{
		TableName:        "notes",
		PrimaryKeyColumn: "id",
		Fields: []models.FieldSpec{
			{Label: "Title", Column: "title", Type: models.FieldText, Required: true},
			{Label: "Score", Column: "score", Type: models.FieldNumber},
			{Label: "Due", Column: "due", Type: models.FieldDate},
		},
	}
	require.NoError(t, schema.Check())

	ctx := context.Background()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	require.NoError(t, database.RunMigrations(ctx, db, dialect, database.Migrations(dialect, schema, false), logger))

	repo := NewRecordRepository(db, dialect, schema)
	_, err := repo.Insert(ctx, models.RecordValues{"title": "FIRST", "score": nil, "due": nil})
	require.NoError(t, err)

	rows, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Values["score"])
	assert.Nil(t, rows[0].Values["due"])
}

func TestFileAuditRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history", "DeletedRecords.txt")
	repo := NewFileAuditRepository(path)
	ctx := context.Background()

	// No sink yet means no history
	lines, err := repo.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)

	entry := models.AuditEntry{
		Timestamp: time.Date(2024, 4, 1, 9, 30, 0, 0, time.Local),
		RecordID:  7,
		Fields:    []models.AuditField{{Label: "Name", Value: "ALICE"}, {Label: "Code", Value: "AB-1234"}},
	}
	require.NoError(t, repo.Append(ctx, entry))
	entry.RecordID = 8
	require.NoError(t, repo.Append(ctx, entry))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[2024-04-01 09:30:00] ID: 7 | Name: ALICE | Code: AB-1234\n"+
			"[2024-04-01 09:30:00] ID: 8 | Name: ALICE | Code: AB-1234\n",
		string(content))

	lines, err = repo.History(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestSQLAuditRepository(t *testing.T) {
	db, dialect, _ := setupTestDB(t)
	repo := NewSQLAuditRepository(db, dialect)
	ctx := context.Background()

	entry := models.AuditEntry{
		Timestamp: time.Now(),
		RecordID:  3,
		Fields:    []models.AuditField{{Label: "Name", Value: "BOB"}},
	}
	require.NoError(t, repo.Append(ctx, entry))

	lines, err := repo.History(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, entry.Line(), lines[0])
}

func TestNewRepositories_SelectsAuditSink(t *testing.T) {
	db, dialect, schema := setupTestDB(t)

	repos := NewRepositories(db, dialect, schema, config.AuditConfig{Sink: "database"})
	_, isSQL := repos.Audit.(*sqlAuditRepository)
	assert.True(t, isSQL)

	repos = NewRepositories(db, dialect, schema, config.AuditConfig{Sink: "file", Path: filepath.Join(t.TempDir(), "h.txt")})
	_, isFile := repos.Audit.(*fileAuditRepository)
	assert.True(t, isFile)
	assert.NotNil(t, repos.Records)
}
