package models

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType is the storage type of a schema field
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
)

// Valid reports whether t is one of the known field types
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldDate:
		return true
	}
	return false
}

// FieldSpec describes one field of a record type
type FieldSpec struct {
	Label             string    `json:"label" yaml:"label"`
	Column            string    `json:"column" yaml:"column"`
	Type              FieldType `json:"type" yaml:"type"`
	Required          bool      `json:"required" yaml:"required"`
	ValidationPattern string    `json:"validation_pattern,omitempty" yaml:"pattern"`
	HelpText          string    `json:"help_text,omitempty" yaml:"help"`
}

// HasPattern returns true if the field carries a validation pattern
func (f FieldSpec) HasPattern() bool {
	return f.ValidationPattern != ""
}

// Schema is the static description of a record type.
// It is built once at startup and shared read-only by every operation.
type Schema struct {
	Title                string             `json:"title"`
	TableName            string             `json:"table_name"`
	PrimaryKeyColumn     string             `json:"primary_key_column"`
	Fields               []FieldSpec        `json:"fields"`
	NumericFieldForCalc  string             `json:"numeric_field_for_calc"`
	CategoryFieldForCalc string             `json:"category_field_for_calc"`
	UniqueCodeColumn     string             `json:"unique_code_column,omitempty"`
	MultiplierTable      map[string]float64 `json:"multiplier_table"`
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Check verifies the schema invariants. Identifiers are interpolated into SQL,
// so every table and column name must be a plain identifier.
func (s *Schema) Check() error {
	if s == nil {
		return fmt.Errorf("schema is nil")
	}
	if !identifierPattern.MatchString(s.TableName) {
		return fmt.Errorf("invalid table name %q", s.TableName)
	}
	if !identifierPattern.MatchString(s.PrimaryKeyColumn) {
		return fmt.Errorf("invalid primary key column %q", s.PrimaryKeyColumn)
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema %s has no fields", s.TableName)
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if strings.TrimSpace(f.Label) == "" {
			return fmt.Errorf("field %d has no label", i)
		}
		if !identifierPattern.MatchString(f.Column) {
			return fmt.Errorf("field %s: invalid column %q", f.Label, f.Column)
		}
		if strings.EqualFold(f.Column, s.PrimaryKeyColumn) {
			return fmt.Errorf("field %s: column %q collides with the primary key", f.Label, f.Column)
		}
		key := strings.ToLower(f.Column)
		if seen[key] {
			return fmt.Errorf("duplicate column %q", f.Column)
		}
		seen[key] = true
		if !f.Type.Valid() {
			return fmt.Errorf("field %s: unknown type %q", f.Label, f.Type)
		}
		if f.HasPattern() {
			if _, err := regexp.Compile(f.ValidationPattern); err != nil {
				return fmt.Errorf("field %s: invalid pattern: %w", f.Label, err)
			}
		}
	}

	if s.NumericFieldForCalc != "" {
		f, ok := s.Field(s.NumericFieldForCalc)
		if !ok {
			return fmt.Errorf("numeric calc field %q is not in the schema", s.NumericFieldForCalc)
		}
		if f.Type != FieldNumber {
			return fmt.Errorf("numeric calc field %q must be of type number", s.NumericFieldForCalc)
		}
	}
	if s.CategoryFieldForCalc != "" {
		if _, ok := s.Field(s.CategoryFieldForCalc); !ok {
			return fmt.Errorf("category calc field %q is not in the schema", s.CategoryFieldForCalc)
		}
	}
	if s.UniqueCodeColumn != "" {
		if _, ok := s.Field(s.UniqueCodeColumn); !ok {
			return fmt.Errorf("unique code column %q is not in the schema", s.UniqueCodeColumn)
		}
	}

	for category, m := range s.MultiplierTable {
		if m <= 0 {
			return fmt.Errorf("multiplier for %q must be positive", category)
		}
	}

	return nil
}

// Field looks up a field by its column name
func (s *Schema) Field(column string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Column == column {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// UniqueField returns the field subject to duplicate checking, if any
func (s *Schema) UniqueField() (FieldSpec, bool) {
	if s.UniqueCodeColumn == "" {
		return FieldSpec{}, false
	}
	return s.Field(s.UniqueCodeColumn)
}

// Columns returns the field columns in schema order
func (s *Schema) Columns() []string {
	columns := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		columns[i] = f.Column
	}
	return columns
}

// Multiplier returns the scaling factor for a category, 1.0 when unknown
func (s *Schema) Multiplier(category string) float64 {
	if m, ok := s.MultiplierTable[strings.ToLower(strings.TrimSpace(category))]; ok {
		return m
	}
	return 1.0
}

// NormalizeMultipliers lower-cases the multiplier table keys
func (s *Schema) NormalizeMultipliers() {
	normalized := make(map[string]float64, len(s.MultiplierTable))
	for category, m := range s.MultiplierTable {
		normalized[strings.ToLower(strings.TrimSpace(category))] = m
	}
	s.MultiplierTable = normalized
}
