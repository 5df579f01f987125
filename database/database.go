package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/blogem/record-engine/config"
)

// Open opens and pings the configured relational store
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect := Dialect{Driver: cfg.Driver}

	dsn, err := DSN(cfg)
	if err != nil {
		return nil, dialect, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, dialect, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// SQLite allows a single writer; one connection avoids "database is locked"
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(10 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dialect, nil
}

// DSN builds the driver connection string for the configuration
func DSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return "file:" + cfg.Path + "?_foreign_keys=on&_busy_timeout=5000", nil

	case DriverMySQL:
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		// Report matched rather than changed rows so an unchanged update is not "not found"
		mc.ClientFoundRows = true
		mc.Timeout = cfg.ConnectTimeout
		mc.Params = map[string]string{"charset": "utf8mb4"}
		if cfg.SSLMode == "require" {
			mc.TLSConfig = "true"
		}
		return mc.FormatDSN(), nil

	case DriverPostgres:
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(cfg.User, cfg.Password),
			Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
			Path:   "/" + cfg.Name,
		}
		q := u.Query()
		q.Set("sslmode", cfg.SSLMode)
		q.Set("connect_timeout", strconv.Itoa(int(cfg.ConnectTimeout.Seconds())))
		u.RawQuery = q.Encode()
		return u.String(), nil

	default:
		return "", fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}
