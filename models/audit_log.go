package models

import (
	"fmt"
	"strings"
	"time"
)

// AuditTimestampLayout is the timestamp layout of a deletion history line
const AuditTimestampLayout = "2006-01-02 15:04:05"

// AuditField is one label/value pair of a deleted record
type AuditField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AuditEntry is the immutable history record of a deleted row
type AuditEntry struct {
	Timestamp time.Time    `json:"timestamp"`
	RecordID  int64        `json:"record_id"`
	Fields    []AuditField `json:"fields"`
}

// NewAuditEntry captures a deleted row's values in schema order
func NewAuditEntry(schema *Schema, row Row, at time.Time) AuditEntry {
	fields := make([]AuditField, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		fields = append(fields, AuditField{
			Label: f.Label,
			Value: FormatValue(row.Values[f.Column]),
		})
	}
	return AuditEntry{Timestamp: at, RecordID: row.ID, Fields: fields}
}

// Line serializes the entry as a single history line:
//
//	[2006-01-02 15:04:05] ID: 7 | Name: ALICE | Code: AB-1234
func (e AuditEntry) Line() string {
	parts := make([]string, 0, len(e.Fields)+1)
	parts = append(parts, fmt.Sprintf("[%s] ID: %d", e.Timestamp.Format(AuditTimestampLayout), e.RecordID))
	for _, f := range e.Fields {
		parts = append(parts, f.Label+": "+f.Value)
	}
	return strings.Join(parts, " | ")
}
