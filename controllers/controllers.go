package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/blogem/record-engine/models"
	"github.com/blogem/record-engine/services"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Error string           `json:"error"`
	Kind  models.ErrorKind `json:"kind,omitempty"`
	Field string           `json:"field,omitempty"`
	Hint  string           `json:"hint,omitempty"`
}

// writeJSON encodes data with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps an engine error to its HTTP status and writes it as JSON
func writeError(w http.ResponseWriter, logger logrus.FieldLogger, err error) {
	status := statusFor(err)
	body := errorResponse{Error: err.Error()}

	var engineErr *models.Error
	if errors.As(err, &engineErr) {
		body.Kind = engineErr.Kind
		body.Field = engineErr.Field
		body.Hint = engineErr.Hint
	}

	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithField("status", status).Error("Request failed")
	}
	writeJSON(w, status, body)
}

// statusFor returns the HTTP status of an error
func statusFor(err error) int {
	if errors.Is(err, models.ErrNothingToExport) {
		return http.StatusUnprocessableEntity
	}

	switch models.KindOf(err) {
	case models.KindMissingField, models.KindFormatMismatch, models.KindNotANumber, models.KindOutOfRange:
		return http.StatusUnprocessableEntity
	case models.KindDuplicateValue, models.KindStoreConflict:
		return http.StatusConflict
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Controllers holds all controller instances
type Controllers struct {
	Records *RecordController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, logger logrus.FieldLogger) *Controllers {
	return &Controllers{
		Records: NewRecordController(services, logger),
	}
}
