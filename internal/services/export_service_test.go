package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/karan-monga/repsandrulers/internal/models"
)

type stubMeasurementLister struct {
	measurements []models.Measurement
}

func (s *stubMeasurementLister) ListByUser(_ context.Context, _ int64, _, _ *time.Time) ([]models.Measurement, error) {
	return s.measurements, nil
}

func f(v float64) *float64 { return &v }

func TestExportMetricFormatting(t *testing.T) {
	lister := &stubMeasurementLister{measurements: []models.Measurement{{
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Weight:   f(80),
		Height:   f(180),
		Chest:    f(100.25),
		Biceps:   f(35.5),
		Forearms: f(36),
	}}}
	service := NewExportService(lister)

	csv, err := service.Run(context.Background(), 1, ExportOptions{Format: FormatMetric})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
	}
	row := lines[1]
	if !strings.Contains(row, `"80.0 kg"`) {
		t.Errorf("weight missing unit formatting: %s", row)
	}
	if !strings.Contains(row, `"100.3 cm"`) {
		t.Errorf("chest should round to one decimal: %s", row)
	}
	// Bicep columns come from the bicep fields.
	if !strings.Contains(row, `"35.5 cm"`) || !strings.Contains(row, `"36.0 cm"`) {
		t.Errorf("bicep columns wrong: %s", row)
	}
}

func TestExportIncludesLegacyCombinedColumns(t *testing.T) {
	lister := &stubMeasurementLister{measurements: []models.Measurement{{
		Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Weight: f(80),
		Thighs: f(60),
		Calves: f(38.5),
	}}}
	service := NewExportService(lister)

	csv, err := service.Run(context.Background(), 1, ExportOptions{Format: FormatMetric})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	header := strings.SplitN(csv, "\n", 2)[0]
	for _, col := range []string{`"Biceps"`, `"Forearms"`, `"Thighs"`, `"Calves"`} {
		if !strings.Contains(header, col) {
			t.Errorf("header missing %s: %s", col, header)
		}
	}
	if !strings.Contains(csv, `"60.0 cm"`) || !strings.Contains(csv, `"38.5 cm"`) {
		t.Errorf("combined fields missing from row: %s", csv)
	}
}

func TestExportImperialConversion(t *testing.T) {
	lister := &stubMeasurementLister{measurements: []models.Measurement{{
		Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Weight: f(80),
		Height: f(180),
	}}}
	service := NewExportService(lister)

	csv, err := service.Run(context.Background(), 1, ExportOptions{Format: FormatImperial})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.Contains(csv, `"176.4 lbs"`) {
		t.Errorf("expected 80 kg as 176.4 lbs: %s", csv)
	}
	if !strings.Contains(csv, `"70.9 in"`) {
		t.Errorf("expected 180 cm as 70.9 in: %s", csv)
	}
}

func TestExportCalculatedFields(t *testing.T) {
	lister := &stubMeasurementLister{measurements: []models.Measurement{{
		Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Weight: f(80),
		Height: f(180),
	}}}
	service := NewExportService(lister)

	csv, err := service.Run(context.Background(), 1, ExportOptions{Format: FormatMetric, IncludeCalculated: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 80 / 1.8^2 = 24.7
	if !strings.Contains(csv, `"24.7"`) || !strings.Contains(csv, `"Normal"`) {
		t.Errorf("expected BMI and category: %s", csv)
	}
}

func TestExportBothAppendsBareColumns(t *testing.T) {
	lister := &stubMeasurementLister{measurements: []models.Measurement{{
		Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Weight: f(80),
		Height: f(180),
	}}}
	service := NewExportService(lister)

	csv, err := service.Run(context.Background(), 1, ExportOptions{Format: FormatBoth})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	header := strings.SplitN(csv, "\n", 2)[0]
	for _, col := range []string{`"Weight (kg)"`, `"Weight (lbs)"`, `"Height (cm)"`, `"Height (in)"`} {
		if !strings.Contains(header, col) {
			t.Errorf("header missing %s: %s", col, header)
		}
	}
	if !strings.Contains(csv, `"176.4"`) {
		t.Errorf("expected bare converted weight: %s", csv)
	}
}

func TestExportQuotesAndEscapes(t *testing.T) {
	note := `said "pr" today`
	lister := &stubMeasurementLister{measurements: []models.Measurement{{
		Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Weight: f(80),
		Notes:  &note,
	}}}
	service := NewExportService(lister)

	csv, err := service.Run(context.Background(), 1, ExportOptions{Format: FormatMetric})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(csv, `"said ""pr"" today"`) {
		t.Errorf("expected doubled quotes in notes: %s", csv)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	service := NewExportService(&stubMeasurementLister{})
	if _, err := service.Run(context.Background(), 1, ExportOptions{Format: "stones"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBMICategories(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{18.4, "Underweight"},
		{18.5, "Normal"},
		{24.9, "Normal"},
		{25, "Overweight"},
		{29.9, "Overweight"},
		{30, "Obese"},
	}
	for _, tt := range tests {
		if got := bmiCategory(tt.bmi); got != tt.want {
			t.Errorf("bmiCategory(%v) = %q, want %q", tt.bmi, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	service := NewExportService(&stubMeasurementLister{})
	got := service.Filename(time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC))
	if got != "fitness-data-2024-03-10.csv" {
		t.Errorf("Filename = %q", got)
	}
}
