package services

import (
	"math"

	"github.com/blogem/record-engine/models"
)

// ratioScale is the numeric value that maps to a 100% base ratio
const ratioScale = 10000.0

// ComputeRatio derives the efficiency ratio of a record, clamped to 100.
// Missing or unparsable inputs yield 0 so a derived display value never blocks a save.
func ComputeRatio(schema *models.Schema, values models.RecordValues) float64 {
	if schema.NumericFieldForCalc == "" || schema.CategoryFieldForCalc == "" {
		return 0
	}

	numeric, ok := values.Float(schema.NumericFieldForCalc)
	if !ok {
		return 0
	}
	category, ok := values.String(schema.CategoryFieldForCalc)
	if !ok {
		return 0
	}

	baseRatio := (numeric / ratioScale) * 100
	return math.Min(baseRatio*schema.Multiplier(category), 100)
}

// ComputeAggregate sums the numeric calc field across rows.
// Rows without a numeric value are skipped for every statistic.
func ComputeAggregate(schema *models.Schema, rows []models.Row) models.Aggregate {
	var agg models.Aggregate
	if schema.NumericFieldForCalc == "" {
		return agg
	}

	for _, row := range rows {
		value, ok := row.Values.Float(schema.NumericFieldForCalc)
		if !ok {
			continue
		}
		if agg.Count == 0 || value > agg.Max {
			agg.Max = value
		}
		if agg.Count == 0 || value < agg.Min {
			agg.Min = value
		}
		agg.Total += value
		agg.Count++
	}

	if agg.Count > 0 {
		agg.Average = agg.Total / float64(agg.Count)
	}
	return agg
}
