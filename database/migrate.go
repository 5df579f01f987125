package database

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/blogem/record-engine/models"
)

// AuditTable holds deletion history when the database audit sink is selected
const AuditTable = "deleted_records"

// Migration represents a database migration
type Migration struct {
	Version string
	SQL     string
}

// Migrations derives the migrations for a schema. Versions embed the table and
// column names, so a changed schema produces new migrations instead of reusing old ones.
func Migrations(d Dialect, schema *models.Schema, withAuditTable bool) []Migration {
	columns := []string{d.PrimaryKeyDDL(schema.PrimaryKeyColumn)}
	for _, f := range schema.Fields {
		col := d.Quote(f.Column) + " " + d.ColumnType(f.Type)
		if f.Required {
			col += " NOT NULL"
		}
		columns = append(columns, col)
	}

	migrations := []Migration{{
		Version: fmt.Sprintf("0001_create_%s", schema.TableName),
		SQL: fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
			d.Quote(schema.TableName), strings.Join(columns, ",\n\t")),
	}}

	if unique, ok := schema.UniqueField(); ok {
		index := fmt.Sprintf("uq_%s_%s", schema.TableName, unique.Column)
		migrations = append(migrations, Migration{
			Version: fmt.Sprintf("0002_%s", index),
			SQL: fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)",
				d.Quote(index), d.Quote(schema.TableName), d.Quote(unique.Column)),
		})
	}

	if withAuditTable {
		migrations = append(migrations, Migration{
			Version: fmt.Sprintf("0003_create_%s", AuditTable),
			SQL: fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s,\n\t%s %s NOT NULL,\n\t%s BIGINT NOT NULL,\n\t%s TEXT NOT NULL\n)",
				d.Quote(AuditTable), d.PrimaryKeyDDL("id"),
				d.Quote("deleted_at"), d.TimestampType(),
				d.Quote("record_id"), d.Quote("line")),
		})
	}

	return migrations
}

// RunMigrations executes all pending migrations
func RunMigrations(ctx context.Context, db *sql.DB, d Dialect, migrations []Migration, logger logrus.FieldLogger) error {
	if err := createMigrationsTable(ctx, db, d); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if slices.Contains(applied, migration.Version) {
			continue
		}

		logger.WithField("version", migration.Version).Info("Running migration")

		if _, err := db.ExecContext(ctx, migration.SQL); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration.Version, err)
		}

		if err := recordMigration(ctx, db, d, migration.Version); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
		}
	}

	return nil
}

// createMigrationsTable creates the migrations tracking table
func createMigrationsTable(ctx context.Context, db *sql.DB, d Dialect) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS migrations (
			version %s PRIMARY KEY,
			applied_at %s DEFAULT CURRENT_TIMESTAMP
		)
	`, d.KeyType(), d.TimestampType())
	_, err := db.ExecContext(ctx, query)
	return err
}

// getAppliedMigrations returns list of already applied migration versions
func getAppliedMigrations(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}

	return versions, rows.Err()
}

// recordMigration marks a migration as applied
func recordMigration(ctx context.Context, db *sql.DB, d Dialect, version string) error {
	_, err := db.ExecContext(ctx, "INSERT INTO migrations (version) VALUES ("+d.Placeholder(1)+")", version)
	return err
}
