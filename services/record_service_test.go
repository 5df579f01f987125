package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/record-engine/config"
	"github.com/blogem/record-engine/models"
	"github.com/blogem/record-engine/repositories/mocks"
)

var fixedNow = time.Date(2024, 3, 17, 9, 30, 5, 0, time.UTC)

// RecordServiceTestSuite is a test suite for the record facade
type RecordServiceTestSuite struct {
	suite.Suite
	service     RecordService
	mockRecords *mocks.MockRecordRepository
	mockAudit   *mocks.MockAuditRepository
	logHook     *test.Hook
	exportDir   string
}

// SetupTest sets up the test suite before each test
func (suite *RecordServiceTestSuite) SetupTest() {
	suite.mockRecords = mocks.NewMockRecordRepository(suite.T())
	suite.mockAudit = mocks.NewMockAuditRepository(suite.T())
	suite.exportDir = filepath.Join(suite.T().TempDir(), "exports")

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	suite.logHook = hook

	service, err := NewRecordService(
		config.DefaultSchema(),
		suite.mockRecords,
		suite.mockAudit,
		ServiceConfig{Title: "Patient Records", ExportDir: suite.exportDir},
		logger,
	)
	require.NoError(suite.T(), err)
	service.(*recordService).now = func() time.Time { return fixedNow }
	suite.service = service
}

func storedPatient(id int64) *models.Row {
	return &models.Row{ID: id, Values: models.RecordValues{
		"p_name": "ALICE SMITH", "report": "TYPE2", "r_number": int64(12), "r_value": int64(5000),
		"d_code": "AB-1234", "date": time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}}
}

// TestCreate_Success tests that a valid record is bound, stored and its ratio computed
func (suite *RecordServiceTestSuite) TestCreate_Success() {
	suite.mockRecords.EXPECT().CountWhere(mock.Anything, "d_code", "AB-1234", (*int64)(nil)).Return(0, nil)
	suite.mockRecords.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(v models.RecordValues) bool {
		return v["p_name"] == "ALICE SMITH" && v["report"] == "TYPE2" &&
			v["r_value"] == int64(5000) && v["d_code"] == "AB-1234" &&
			v["date"] == time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	})).Return(int64(42), nil)

	result, err := suite.service.Create(context.Background(), validPatient())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), result.ID)
	assert.InDelta(suite.T(), 75.0, result.Ratio, 1e-9)
}

// TestCreate_ValidationFailure tests that invalid input never reaches the store
func (suite *RecordServiceTestSuite) TestCreate_ValidationFailure() {
	raw := validPatient()
	raw["r_value"] = "0"

	result, err := suite.service.Create(context.Background(), raw)

	assert.Nil(suite.T(), result)
	assert.True(suite.T(), models.IsKind(err, models.KindOutOfRange))
	suite.mockRecords.AssertNotCalled(suite.T(), "Insert", mock.Anything, mock.Anything)
}

// TestCreate_Duplicate tests that a duplicate unique code is rejected before insert
func (suite *RecordServiceTestSuite) TestCreate_Duplicate() {
	suite.mockRecords.EXPECT().CountWhere(mock.Anything, "d_code", "AB-1234", (*int64)(nil)).Return(1, nil)

	result, err := suite.service.Create(context.Background(), validPatient())

	assert.Nil(suite.T(), result)
	assert.True(suite.T(), models.IsKind(err, models.KindDuplicateValue))
	suite.mockRecords.AssertNotCalled(suite.T(), "Insert", mock.Anything, mock.Anything)
}

// TestCreate_StoreConflict tests that a constraint violation at insert time is surfaced
func (suite *RecordServiceTestSuite) TestCreate_StoreConflict() {
	suite.mockRecords.EXPECT().CountWhere(mock.Anything, "d_code", "AB-1234", (*int64)(nil)).Return(0, nil)
	suite.mockRecords.EXPECT().Insert(mock.Anything, mock.Anything).
		Return(int64(0), models.StoreConflict(errors.New("UNIQUE constraint failed")))

	_, err := suite.service.Create(context.Background(), validPatient())

	assert.True(suite.T(), models.IsKind(err, models.KindStoreConflict))
}

// TestUpdate_Success tests that an update excludes the record itself from the duplicate check
func (suite *RecordServiceTestSuite) TestUpdate_Success() {
	suite.mockRecords.EXPECT().CountWhere(mock.Anything, "d_code", "AB-1234", mock.MatchedBy(func(exclude *int64) bool {
		return exclude != nil && *exclude == 5
	})).Return(0, nil)
	suite.mockRecords.EXPECT().Update(mock.Anything, int64(5), mock.Anything).Return(int64(1), nil)

	result, err := suite.service.Update(context.Background(), 5, validPatient())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), result.ID)
	assert.Equal(suite.T(), int64(1), result.Updated)
}

// TestUpdate_InvalidID tests that a non-positive id is rejected without touching the store
func (suite *RecordServiceTestSuite) TestUpdate_InvalidID() {
	_, err := suite.service.Update(context.Background(), 0, validPatient())

	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
}

// TestUpdate_NotFound tests that a missing record is reported by kind
func (suite *RecordServiceTestSuite) TestUpdate_NotFound() {
	suite.mockRecords.EXPECT().CountWhere(mock.Anything, "d_code", "AB-1234", mock.Anything).Return(0, nil)
	suite.mockRecords.EXPECT().Update(mock.Anything, int64(99), mock.Anything).Return(int64(0), models.NotFound(99))

	_, err := suite.service.Update(context.Background(), 99, validPatient())

	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
}

// TestDelete_Success tests that a delete writes exactly one history entry
func (suite *RecordServiceTestSuite) TestDelete_Success() {
	suite.mockRecords.EXPECT().Delete(mock.Anything, int64(5)).Return(storedPatient(5), nil)
	suite.mockAudit.EXPECT().Append(mock.Anything, mock.MatchedBy(func(e models.AuditEntry) bool {
		return e.RecordID == 5 && e.Timestamp.Equal(fixedNow) && len(e.Fields) == 6
	})).Return(nil).Once()

	result, err := suite.service.Delete(context.Background(), 5)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.AuditWritten)
	assert.Equal(suite.T(), int64(5), result.Snapshot.ID)
	assert.Equal(suite.T(), "AB-1234", result.Snapshot.Values["d_code"])
}

// TestDelete_AuditFailure tests that a failed history write is logged but keeps the delete
func (suite *RecordServiceTestSuite) TestDelete_AuditFailure() {
	suite.mockRecords.EXPECT().Delete(mock.Anything, int64(5)).Return(storedPatient(5), nil)
	suite.mockAudit.EXPECT().Append(mock.Anything, mock.Anything).Return(errors.New("disk full"))

	result, err := suite.service.Delete(context.Background(), 5)

	require.NoError(suite.T(), err)
	assert.False(suite.T(), result.AuditWritten)

	var logged bool
	for _, entry := range suite.logHook.AllEntries() {
		if entry.Level == logrus.ErrorLevel {
			logErr, _ := entry.Data[logrus.ErrorKey].(error)
			logged = models.IsKind(logErr, models.KindAuditWriteFailed)
		}
	}
	assert.True(suite.T(), logged)
}

// TestDelete_NotFound tests that no history is written when nothing was deleted
func (suite *RecordServiceTestSuite) TestDelete_NotFound() {
	suite.mockRecords.EXPECT().Delete(mock.Anything, int64(7)).Return(nil, models.NotFound(7))

	result, err := suite.service.Delete(context.Background(), 7)

	assert.Nil(suite.T(), result)
	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
	suite.mockAudit.AssertNotCalled(suite.T(), "Append", mock.Anything, mock.Anything)
}

// TestGet tests that a stored record is returned by id
func (suite *RecordServiceTestSuite) TestGet() {
	suite.mockRecords.EXPECT().GetByID(mock.Anything, int64(5)).Return(storedPatient(5), nil)

	row, err := suite.service.Get(context.Background(), 5)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), row.ID)
}

// TestGet_InvalidID tests that a non-positive id is rejected without touching the store
func (suite *RecordServiceTestSuite) TestGet_InvalidID() {
	row, err := suite.service.Get(context.Background(), -1)

	assert.Nil(suite.T(), row)
	assert.True(suite.T(), models.IsKind(err, models.KindNotFound))
	suite.mockRecords.AssertNotCalled(suite.T(), "GetByID", mock.Anything, mock.Anything)

	var rejected bool
	for _, entry := range suite.logHook.AllEntries() {
		if entry.Data["operation"] == "get" && entry.Data["state"] == stateFailed {
			rejected = true
		}
	}
	assert.True(suite.T(), rejected)
}

// TestReport tests that the report carries rows and their statistics
func (suite *RecordServiceTestSuite) TestReport() {
	suite.mockRecords.EXPECT().FetchAll(mock.Anything).Return([]models.Row{*storedPatient(2), *storedPatient(1)}, nil)

	report, err := suite.service.Report(context.Background())

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), report.Rows, 2)
	assert.Equal(suite.T(), 2, report.Aggregate.Count)
	assert.InDelta(suite.T(), 10000.0, report.Aggregate.Total, 1e-9)
	assert.Equal(suite.T(), fixedNow, report.GeneratedAt)
}

// TestReport_StoreUnavailable tests that store failures keep their kind
func (suite *RecordServiceTestSuite) TestReport_StoreUnavailable() {
	suite.mockRecords.EXPECT().FetchAll(mock.Anything).Return(nil, models.StoreUnavailable(errors.New("connection refused")))

	_, err := suite.service.Report(context.Background())

	assert.True(suite.T(), models.IsKind(err, models.KindStoreUnavailable))
}

// TestExportToFile tests that the report is written to a timestamped file
func (suite *RecordServiceTestSuite) TestExportToFile() {
	suite.mockRecords.EXPECT().FetchAll(mock.Anything).Return([]models.Row{*storedPatient(1)}, nil)

	path, err := suite.service.ExportToFile(context.Background())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), filepath.Join(suite.exportDir, "patients_Export_20240317_093005.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), string(content), "PATIENT RECORDS")
	assert.Contains(suite.T(), string(content), "ALICE SMITH")
}

// TestExportToFile_Empty tests that an empty table produces no file
func (suite *RecordServiceTestSuite) TestExportToFile_Empty() {
	suite.mockRecords.EXPECT().FetchAll(mock.Anything).Return([]models.Row{}, nil)

	path, err := suite.service.ExportToFile(context.Background())

	assert.ErrorIs(suite.T(), err, models.ErrNothingToExport)
	assert.Empty(suite.T(), path)
	assert.NoDirExists(suite.T(), suite.exportDir)
}

// TestHistory tests that history lines come from the audit repository
func (suite *RecordServiceTestSuite) TestHistory() {
	lines := []string{"[2024-03-17 09:30:05] ID: 5 | Patient Name: ALICE SMITH"}
	suite.mockAudit.EXPECT().History(mock.Anything).Return(lines, nil)

	history, err := suite.service.History(context.Background())

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), lines, history)
}

// TestSchemaAndTitle tests the schema accessor
func (suite *RecordServiceTestSuite) TestSchemaAndTitle() {
	assert.Equal(suite.T(), "patients", suite.service.Schema().TableName)
	assert.Contains(suite.T(), suite.service.Export(&models.Report{GeneratedAt: fixedNow}), "PATIENT RECORDS")
}

// TestRecordServiceTestSuite runs the record service test suite
func TestRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecordServiceTestSuite))
}
