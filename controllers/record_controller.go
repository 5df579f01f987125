package controllers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/blogem/record-engine/models"
	"github.com/blogem/record-engine/services"
)

const maxBodyBytes = 1 << 20

// RecordController handles record management requests
type RecordController struct {
	services *services.Services
	logger   logrus.FieldLogger
}

// NewRecordController creates a new record controller
func NewRecordController(services *services.Services, logger logrus.FieldLogger) *RecordController {
	return &RecordController{
		services: services,
		logger:   logger,
	}
}

// recordView is the JSON shape of a stored record
type recordView struct {
	ID     int64          `json:"id"`
	Values map[string]any `json:"values"`
}

type reportView struct {
	Rows        []recordView     `json:"rows"`
	Aggregate   models.Aggregate `json:"aggregate"`
	GeneratedAt time.Time        `json:"generated_at"`
}

func newRecordView(row models.Row) recordView {
	values := make(map[string]any, len(row.Values))
	for column, value := range row.Values {
		if d, ok := value.(time.Time); ok {
			values[column] = d.Format(models.DateLayout)
			continue
		}
		values[column] = value
	}
	return recordView{ID: row.ID, Values: values}
}

// Schema handles GET /schema
func (c *RecordController) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.services.Records.Schema())
}

// Index handles GET /records
func (c *RecordController) Index(w http.ResponseWriter, r *http.Request) {
	report, err := c.services.Records.Report(r.Context())
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	view := reportView{
		Rows:        make([]recordView, 0, len(report.Rows)),
		Aggregate:   report.Aggregate,
		GeneratedAt: report.GeneratedAt,
	}
	for _, row := range report.Rows {
		view.Rows = append(view.Rows, newRecordView(row))
	}
	writeJSON(w, http.StatusOK, view)
}

// Show handles GET /records/{id}
func (c *RecordController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	row, err := c.services.Records.Get(r.Context(), id)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, newRecordView(*row))
}

// Create handles POST /records
func (c *RecordController) Create(w http.ResponseWriter, r *http.Request) {
	raw, err := readValues(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := c.services.Records.Create(r.Context(), raw)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/records/%d", result.ID))
	writeJSON(w, http.StatusCreated, result)
}

// Update handles PUT /records/{id}
func (c *RecordController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	raw, err := readValues(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := c.services.Records.Update(r.Context(), id, raw)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /records/{id}
func (c *RecordController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	result, err := c.services.Records.Delete(r.Context(), id)
	if err != nil {
		writeError(w, c.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Snapshot     recordView `json:"snapshot"`
		AuditWritten bool       `json:"audit_written"`
	}{
		Snapshot:     newRecordView(result.Snapshot),
		AuditWritten: result.AuditWritten,
	})
}

// Export handles GET /report/export
func (c *RecordController) Export(w http.ResponseWriter, r *http.Request) {
	report, err := c.services.Records.Report(r.Context())
	if err != nil {
		writeError(w, c.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, c.services.Records.Export(report))
}

// ExportToFile handles POST /report/export
func (c *RecordController) ExportToFile(w http.ResponseWriter, r *http.Request) {
	path, err := c.services.Records.ExportToFile(r.Context())
	if err != nil {
		writeError(w, c.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

// History handles GET /history
func (c *RecordController) History(w http.ResponseWriter, r *http.Request) {
	lines, err := c.services.Records.History(r.Context())
	if err != nil {
		writeError(w, c.logger, err)
		return
	}
	if lines == nil {
		lines = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"entries": lines})
}

// recordID parses the {id} URL parameter, writing a 400 when it is malformed
func recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid record ID"})
		return 0, false
	}
	return id, true
}

// readValues reads the submitted field values from a JSON object or a form body
func readValues(w http.ResponseWriter, r *http.Request) (models.RawValues, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to parse form: %w", err)
		}
		raw := make(models.RawValues, len(r.PostForm))
		for key := range r.PostForm {
			raw[key] = r.PostForm.Get(key)
		}
		return raw, nil
	}

	var body map[string]any
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse request body: %w", err)
	}

	raw := make(models.RawValues, len(body))
	for key, value := range body {
		switch v := value.(type) {
		case nil:
			raw[key] = ""
		case string:
			raw[key] = v
		case json.Number:
			raw[key] = v.String()
		default:
			return nil, fmt.Errorf("field %s must be a string or number", key)
		}
	}
	return raw, nil
}
