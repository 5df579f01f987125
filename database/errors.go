package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorClass is the store-independent category of a driver error
type ErrorClass int

const (
	ClassOther ErrorClass = iota
	ClassConflict
	ClassUnavailable
)

const (
	mysqlDuplicateEntry = 1062
	pqUniqueViolation   = "23505"
)

// Classify maps a driver error onto a conflict, an unavailable store, or anything else
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassOther
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		if mysqlErr.Number == mysqlDuplicateEntry {
			return ClassConflict
		}
		return ClassOther
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch {
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique,
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return ClassConflict
		case sqliteErr.Code == sqlite3.ErrCantOpen,
			sqliteErr.Code == sqlite3.ErrBusy,
			sqliteErr.Code == sqlite3.ErrLocked:
			return ClassUnavailable
		}
		return ClassOther
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if string(pqErr.Code) == pqUniqueViolation {
			return ClassConflict
		}
		// Class 08 is "connection exception"
		if strings.HasPrefix(string(pqErr.Code), "08") {
			return ClassUnavailable
		}
		return ClassOther
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ClassUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassUnavailable
	}

	return ClassOther
}
