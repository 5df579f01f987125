package database

import (
	"fmt"
	"strings"

	"github.com/blogem/record-engine/models"
)

// Dialect captures the SQL differences between the supported stores
type Dialect struct {
	Driver string
}

const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Placeholder returns the bind parameter for the n-th argument, starting at 1
func (d Dialect) Placeholder(n int) string {
	if d.Driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Placeholders returns count bind parameters starting at from, comma separated
func (d Dialect) Placeholders(from, count int) string {
	params := make([]string, count)
	for i := range params {
		params[i] = d.Placeholder(from + i)
	}
	return strings.Join(params, ", ")
}

// Quote quotes an identifier. Identifiers only ever come from a checked schema.
func (d Dialect) Quote(identifier string) string {
	if d.Driver == DriverMySQL {
		return "`" + identifier + "`"
	}
	return `"` + identifier + `"`
}

// ReturningID reports whether inserts return the new id through a RETURNING clause
func (d Dialect) ReturningID() bool {
	return d.Driver == DriverPostgres
}

// PrimaryKeyDDL is the column definition of an auto-incrementing primary key
func (d Dialect) PrimaryKeyDDL(column string) string {
	switch d.Driver {
	case DriverMySQL:
		return d.Quote(column) + " BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY"
	case DriverPostgres:
		return d.Quote(column) + " BIGSERIAL PRIMARY KEY"
	default:
		return d.Quote(column) + " INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

// ColumnType maps a field type to the store column type
func (d Dialect) ColumnType(t models.FieldType) string {
	switch t {
	case models.FieldNumber:
		return "BIGINT"
	case models.FieldDate:
		return "DATE"
	default:
		if d.Driver == DriverMySQL {
			return "VARCHAR(255)"
		}
		return "TEXT"
	}
}

// KeyType is the type of an indexed text column, such as a migration version
func (d Dialect) KeyType() string {
	if d.Driver == DriverMySQL {
		return "VARCHAR(255)"
	}
	return "TEXT"
}

// TimestampType is the type of a point-in-time column
func (d Dialect) TimestampType() string {
	if d.Driver == DriverPostgres {
		return "TIMESTAMP"
	}
	return "DATETIME"
}
