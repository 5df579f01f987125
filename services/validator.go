package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/blogem/record-engine/models"
)

// Number fields accept whole numbers within this range
const (
	MinNumber int64 = 1
	MaxNumber int64 = 1_000_000
)

// DuplicateChecker counts stored rows sharing a column value
type DuplicateChecker interface {
	CountWhere(ctx context.Context, column string, value any, excludeID *int64) (int, error)
}

// Validator enforces the per-field and cross-field rules of a schema. It is fail-fast:
// the first violated rule in schema field order is returned.
type Validator struct {
	schema   *models.Schema
	patterns map[string]*regexp.Regexp
	checker  DuplicateChecker
}

// NewValidator compiles the schema patterns once, anchored so they must match the whole value
func NewValidator(schema *models.Schema, checker DuplicateChecker) (*Validator, error) {
	patterns := make(map[string]*regexp.Regexp)
	for _, f := range schema.Fields {
		if !f.HasPattern() {
			continue
		}
		re, err := regexp.Compile(`^(?:` + f.ValidationPattern + `)$`)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %s: %w", f.Label, err)
		}
		patterns[f.Column] = re
	}

	return &Validator{schema: schema, patterns: patterns, checker: checker}, nil
}

// Validate checks raw values against the schema. currentID excludes the record
// being updated from the duplicate check.
func (v *Validator) Validate(ctx context.Context, raw models.RawValues, currentID *int64) error {
	for _, f := range v.schema.Fields {
		if err := v.validateField(f, raw.Get(f.Column)); err != nil {
			return err
		}
	}

	unique, ok := v.schema.UniqueField()
	if !ok {
		return nil
	}

	// Compare in the stored form so dates and numbers match their column
	code, err := models.BindField(unique, raw.Get(unique.Column))
	if err != nil {
		return err
	}
	if code == nil {
		return nil
	}

	count, err := v.checker.CountWhere(ctx, unique.Column, code, currentID)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.DuplicateValue(unique.Label, models.FormatValue(code))
	}

	return nil
}

// validateField applies the required, pattern and type rules of one field
func (v *Validator) validateField(f models.FieldSpec, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if f.Required {
			return models.MissingField(f.Label)
		}
		return nil
	}

	if re, ok := v.patterns[f.Column]; ok {
		if !re.MatchString(strings.ToUpper(trimmed)) {
			return models.FormatMismatch(f.Label, ExampleHint(f.ValidationPattern))
		}
	}

	switch f.Type {
	case models.FieldNumber:
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return models.OutOfRange(f.Label, MinNumber, MaxNumber)
		}
		if err != nil {
			return models.NotANumber(f.Label)
		}
		if n < MinNumber || n > MaxNumber {
			return models.OutOfRange(f.Label, MinNumber, MaxNumber)
		}
	case models.FieldDate:
		if _, err := models.ParseDate(trimmed); err != nil {
			return models.FormatMismatch(f.Label, models.DateHint)
		}
	}

	return nil
}

// exampleHints maps known pattern shapes to a human-readable exemplar, most specific first
var exampleHints = []struct {
	fragment string
	hint     string
}{
	{`[A-Z]{2}-\d{4}`, "XX-1234 (2 letters, hyphen, 4 digits)"},
	{`\d{4}-\d{2}-\d{2}`, "2024-01-31 (year, month, day)"},
	{`\d{4}`, "1234 (4 digits)"},
}

// ExampleHint derives the expected-format hint shown for a pattern mismatch
func ExampleHint(pattern string) string {
	for _, h := range exampleHints {
		if strings.Contains(pattern, h.fragment) {
			return h.hint
		}
	}
	return "see field help"
}
