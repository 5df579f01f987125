package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blogem/record-engine/config"
	"github.com/blogem/record-engine/models"
)

func TestComputeRatio(t *testing.T) {
	schema := config.DefaultSchema()

	tests := []struct {
		name     string
		values   models.RecordValues
		expected float64
	}{
		{"type2 multiplier", models.RecordValues{"r_value": int64(5000), "report": "TYPE2"}, 75.0},
		{"clamped to 100", models.RecordValues{"r_value": int64(10000), "report": "TYPE1"}, 100.0},
		{"unknown category uses 1.0", models.RecordValues{"r_value": int64(2500), "report": "OTHER"}, 25.0},
		{"missing numeric", models.RecordValues{"report": "TYPE1"}, 0},
		{"missing category", models.RecordValues{"r_value": int64(5000)}, 0},
		{"nil numeric", models.RecordValues{"r_value": nil, "report": "TYPE1"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ComputeRatio(schema, tt.values), 1e-9)
		})
	}
}

func TestComputeRatio_NoCalcFields(t *testing.T) {
	schema := config.DefaultSchema()
	schema.NumericFieldForCalc = ""

	assert.Zero(t, ComputeRatio(schema, models.RecordValues{"r_value": int64(5000), "report": "TYPE2"}))
}

func TestComputeAggregate(t *testing.T) {
	schema := config.DefaultSchema()
	rows := []models.Row{
		{ID: 3, Values: models.RecordValues{"r_value": int64(10)}},
		{ID: 2, Values: models.RecordValues{"r_value": int64(20)}},
		{ID: 1, Values: models.RecordValues{"r_value": int64(30)}},
	}

	agg := ComputeAggregate(schema, rows)
	assert.Equal(t, 3, agg.Count)
	assert.InDelta(t, 60.0, agg.Total, 1e-9)
	assert.InDelta(t, 20.0, agg.Average, 1e-9)
	assert.InDelta(t, 30.0, agg.Max, 1e-9)
	assert.InDelta(t, 10.0, agg.Min, 1e-9)
}

func TestComputeAggregate_SkipsMissingValues(t *testing.T) {
	schema := config.DefaultSchema()
	rows := []models.Row{
		{ID: 2, Values: models.RecordValues{"r_value": nil}},
		{ID: 1, Values: models.RecordValues{"r_value": int64(40)}},
	}

	agg := ComputeAggregate(schema, rows)
	assert.Equal(t, 1, agg.Count)
	assert.InDelta(t, 40.0, agg.Average, 1e-9)
	assert.InDelta(t, 40.0, agg.Min, 1e-9)
}

func TestComputeAggregate_Empty(t *testing.T) {
	assert.Equal(t, models.Aggregate{}, ComputeAggregate(config.DefaultSchema(), nil))
}
