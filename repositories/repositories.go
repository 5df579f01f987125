package repositories

import (
	"database/sql"

	"github.com/blogem/record-engine/config"
	"github.com/blogem/record-engine/database"
	"github.com/blogem/record-engine/models"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Records RecordRepository
	Audit   AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB, dialect database.Dialect, schema *models.Schema, audit config.AuditConfig) *Repositories {
	var auditRepo AuditRepository
	if audit.Sink == "database" {
		auditRepo = NewSQLAuditRepository(db, dialect)
	} else {
		auditRepo = NewFileAuditRepository(audit.Path)
	}

	return &Repositories{
		Records: NewRecordRepository(db, dialect, schema),
		Audit:   auditRepo,
	}
}
