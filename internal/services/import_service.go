package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karan-monga/repsandrulers/internal/importer"
	"github.com/karan-monga/repsandrulers/internal/models"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

// measurementWriter is the slice of the measurement store the import pipeline
// needs.
type measurementWriter interface {
	ExistsForDate(ctx context.Context, userID int64, date time.Time) (bool, error)
	Create(ctx context.Context, userID int64, input repository.MeasurementInput) (*models.Measurement, error)
}

// ProgressFunc receives the running position after each attempted row.
type ProgressFunc func(done, total int)

type ImportSummary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// InspectResult describes an uploaded file before any mapping is chosen.
type InspectResult struct {
	Headers  []string `json:"headers"`
	RowCount int      `json:"row_count"`
}

type ImportService struct {
	measurements measurementWriter
}

func NewImportService(measurements measurementWriter) *ImportService {
	return &ImportService{measurements: measurements}
}

// Inspect parses just enough of the file to drive column mapping in the
// client.
func (s *ImportService) Inspect(raw string) (*InspectResult, error) {
	headers, rows, err := importer.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &InspectResult{Headers: headers, RowCount: len(rows)}, nil
}

// Run executes the full pipeline: parse, validate against the mapping,
// normalize, then write rows one by one. Validation is all or nothing; a
// non-empty error list means nothing was written. Duplicate dates and write
// failures during the write phase are counted as skipped rather than aborting
// the rows that follow.
func (s *ImportService) Run(ctx context.Context, userID int64, raw string, mapping importer.ColumnMapping, progress ProgressFunc) (*ImportSummary, []string, error) {
	if missing := mapping.MissingRequired(); len(missing) > 0 {
		return nil, []string{fmt.Sprintf("Required fields missing: %s", strings.Join(missing, ", "))}, nil
	}

	_, rows, err := importer.Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	mapped, rowErrs := importer.MapRows(rows, mapping)
	if len(rowErrs) > 0 {
		return nil, rowErrs, nil
	}

	entries := importer.Normalize(mapped)
	summary := &ImportSummary{Total: len(entries)}
	for i, entry := range entries {
		exists, err := s.measurements.ExistsForDate(ctx, userID, entry.Date)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			summary.Skipped++
		} else if _, err := s.measurements.Create(ctx, userID, entryToInput(entry)); err != nil {
			summary.Skipped++
		} else {
			summary.Imported++
		}
		if progress != nil {
			progress(i+1, summary.Total)
		}
	}

	return summary, nil, nil
}

func entryToInput(e importer.Entry) repository.MeasurementInput {
	input := repository.MeasurementInput{
		Date:       e.Date,
		Weight:     &e.Weight,
		Height:     e.Height,
		Chest:      optional(e.Chest),
		Waist:      optional(e.Waist),
		Hips:       optional(e.Hips),
		Biceps:     optional(e.Biceps),
		Forearms:   optional(e.Forearms),
		Thighs:     optional(e.Thighs),
		Calves:     optional(e.Calves),
		LeftThigh:  optional(e.LeftThigh),
		RightThigh: optional(e.RightThigh),
		LeftCalf:   optional(e.LeftCalf),
		RightCalf:  optional(e.RightCalf),
	}
	if e.Notes != "" {
		notes := e.Notes
		input.Notes = &notes
	}
	return input
}

func optional(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
