package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/blogem/record-engine/models"
)

// schemaFile is the YAML layout of a record schema definition
type schemaFile struct {
	Title            string             `yaml:"title"`
	Table            string             `yaml:"table"`
	PrimaryKey       string             `yaml:"primary_key"`
	NumericField     string             `yaml:"numeric_field"`
	CategoryField    string             `yaml:"category_field"`
	UniqueCodeColumn string             `yaml:"unique_code_column"`
	Multipliers      map[string]float64 `yaml:"multipliers"`
	Fields           []models.FieldSpec `yaml:"fields"`
}

// LoadSchema returns the schema described by path, or the default schema when path is empty
func LoadSchema(path string) (*models.Schema, error) {
	if path == "" {
		schema := DefaultSchema()
		if err := schema.Check(); err != nil {
			return nil, fmt.Errorf("default schema: %w", err)
		}
		return schema, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return ParseSchema(content)
}

// ParseSchema decodes and checks a YAML schema definition
func ParseSchema(content []byte) (*models.Schema, error) {
	var file schemaFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	schema := &models.Schema{
		Title:                file.Title,
		TableName:            file.Table,
		PrimaryKeyColumn:     file.PrimaryKey,
		Fields:               file.Fields,
		NumericFieldForCalc:  file.NumericField,
		CategoryFieldForCalc: file.CategoryField,
		UniqueCodeColumn:     file.UniqueCodeColumn,
		MultiplierTable:      file.Multipliers,
	}
	schema.NormalizeMultipliers()

	if err := schema.Check(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return schema, nil
}

// DefaultSchema is the patient report record type
func DefaultSchema() *models.Schema {
	return &models.Schema{
		TableName:        "patients",
		PrimaryKeyColumn: "p_id",
		Fields: []models.FieldSpec{
			{Label: "Patient Name", Column: "p_name", Type: models.FieldText, Required: true, HelpText: "Enter full name"},
			{Label: "Report Type", Column: "report", Type: models.FieldText, Required: true, HelpText: "Enter report type"},
			{Label: "Report ID", Column: "r_number", Type: models.FieldNumber, Required: true, HelpText: "Enter report number"},
			{Label: "Value", Column: "r_value", Type: models.FieldNumber, Required: true, HelpText: "Enter report type value"},
			{Label: "Department Code", Column: "d_code", Type: models.FieldText, Required: true, ValidationPattern: `^[A-Z]{2}-\d{4}$`, HelpText: "Format: XX-1234"},
			{Label: "Date", Column: "date", Type: models.FieldDate, Required: true, HelpText: "Select date"},
		},
		NumericFieldForCalc:  "r_value",
		CategoryFieldForCalc: "report",
		UniqueCodeColumn:     "d_code",
		MultiplierTable: map[string]float64{
			"type1": 1.2,
			"type2": 1.5,
			"type3": 1.3,
			"type4": 1.1,
		},
	}
}
