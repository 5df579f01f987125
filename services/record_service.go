package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blogem/record-engine/models"
	"github.com/blogem/record-engine/repositories"
)

// RecordService is the facade the presentation layer drives
type RecordService interface {
	Create(ctx context.Context, raw models.RawValues) (*models.CreateResult, error)
	Update(ctx context.Context, id int64, raw models.RawValues) (*models.UpdateResult, error)
	Delete(ctx context.Context, id int64) (*models.DeleteResult, error)
	Report(ctx context.Context) (*models.Report, error)
	Get(ctx context.Context, id int64) (*models.Row, error)
	Export(report *models.Report) string
	ExportToFile(ctx context.Context) (string, error)
	History(ctx context.Context) ([]string, error)
	Schema() *models.Schema
}

// ServiceConfig carries the presentation settings of the facade
type ServiceConfig struct {
	Title     string
	ExportDir string
}

// recordService implements RecordService
type recordService struct {
	schema    *models.Schema
	records   repositories.RecordRepository
	audit     repositories.AuditRepository
	validator *Validator
	cfg       ServiceConfig
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewRecordService creates a new record service
func NewRecordService(
	schema *models.Schema,
	records repositories.RecordRepository,
	audit repositories.AuditRepository,
	cfg ServiceConfig,
	logger logrus.FieldLogger,
) (RecordService, error) {
	validator, err := NewValidator(schema, records)
	if err != nil {
		return nil, err
	}

	return &recordService{
		schema:    schema,
		records:   records,
		audit:     audit,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Create validates, computes the derived ratio and stores a new record
func (s *recordService) Create(ctx context.Context, raw models.RawValues) (*models.CreateResult, error) {
	op := s.begin("create", 0)

	if err := s.validator.Validate(ctx, raw, nil); err != nil {
		return nil, op.fail(err)
	}
	values, err := models.Bind(s.schema, raw)
	if err != nil {
		return nil, op.fail(err)
	}

	op.enter(stateComputing)
	ratio := ComputeRatio(s.schema, values)

	op.enter(statePersisting)
	id, err := s.records.Insert(ctx, values)
	if err != nil {
		return nil, op.fail(err)
	}

	op.withID(id).done()
	return &models.CreateResult{ID: id, Ratio: ratio}, nil
}

// Update validates and overwrites an existing record
func (s *recordService) Update(ctx context.Context, id int64, raw models.RawValues) (*models.UpdateResult, error) {
	op := s.begin("update", id)

	if id <= 0 {
		return nil, op.fail(models.NotFound(id))
	}
	if err := s.validator.Validate(ctx, raw, &id); err != nil {
		return nil, op.fail(err)
	}
	values, err := models.Bind(s.schema, raw)
	if err != nil {
		return nil, op.fail(err)
	}

	op.enter(statePersisting)
	updated, err := s.records.Update(ctx, id, values)
	if err != nil {
		return nil, op.fail(err)
	}

	op.done()
	return &models.UpdateResult{ID: id, Updated: updated}, nil
}

// Delete removes a record and then appends its history entry.
// A failed history write is logged and never undoes the delete.
func (s *recordService) Delete(ctx context.Context, id int64) (*models.DeleteResult, error) {
	op := s.begin("delete", id)

	if id <= 0 {
		return nil, op.fail(models.NotFound(id))
	}

	op.enter(statePersisting)
	snapshot, err := s.records.Delete(ctx, id)
	if err != nil {
		return nil, op.fail(err)
	}

	op.enter(stateAuditLogging)
	result := &models.DeleteResult{Snapshot: *snapshot, AuditWritten: true}
	entry := models.NewAuditEntry(s.schema, *snapshot, s.now())
	if err := s.audit.Append(ctx, entry); err != nil {
		result.AuditWritten = false
		op.logger.WithError(models.AuditWriteFailed(id, err)).Error("Failed to write deletion history")
	}

	op.done()
	return result, nil
}

// Report returns the current rows and their statistics
func (s *recordService) Report(ctx context.Context) (*models.Report, error) {
	op := s.begin("report", 0)

	op.enter(statePersisting)
	rows, err := s.records.FetchAll(ctx)
	if err != nil {
		return nil, op.fail(err)
	}

	op.enter(stateComputing)
	report := &models.Report{
		Rows:        rows,
		Aggregate:   ComputeAggregate(s.schema, rows),
		GeneratedAt: s.now(),
	}

	op.done()
	return report, nil
}

// Get returns a single record
func (s *recordService) Get(ctx context.Context, id int64) (*models.Row, error) {
	op := s.begin("get", id)

	if id <= 0 {
		return nil, op.fail(models.NotFound(id))
	}

	op.enter(statePersisting)
	row, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, op.fail(err)
	}

	op.done()
	return row, nil
}

// Export renders the report as text
func (s *recordService) Export(report *models.Report) string {
	return Export(s.schema, s.title(), report)
}

// ExportToFile writes the current report to the export folder and returns its path
func (s *recordService) ExportToFile(ctx context.Context) (string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return "", err
	}
	if len(report.Rows) == 0 {
		return "", models.ErrNothingToExport
	}

	if err := os.MkdirAll(s.cfg.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export folder: %w", err)
	}

	name := fmt.Sprintf("%s_Export_%s.txt", s.schema.TableName, report.GeneratedAt.Format("20060102_150405"))
	path := filepath.Join(s.cfg.ExportDir, name)
	if err := os.WriteFile(path, []byte(s.Export(report)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	s.logger.WithFields(logrus.Fields{"path": path, "records": len(report.Rows)}).Info("Exported records")
	return path, nil
}

// History returns the deletion history lines
func (s *recordService) History(ctx context.Context) ([]string, error) {
	lines, err := s.audit.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deletion history: %w", err)
	}
	return lines, nil
}

// Schema returns the record schema
func (s *recordService) Schema() *models.Schema {
	return s.schema
}

func (s *recordService) title() string {
	if s.schema.Title != "" {
		return s.schema.Title
	}
	return s.cfg.Title
}
