package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/karan-monga/repsandrulers/internal/models"
)

const (
	kgToLbs = 2.20462
	cmPerIn = 2.54
)

const (
	FormatMetric   = "metric"
	FormatImperial = "imperial"
	FormatBoth     = "both"
)

type ExportOptions struct {
	Format            string
	Start             *time.Time
	End               *time.Time
	IncludeCalculated bool
}

type measurementLister interface {
	ListByUser(ctx context.Context, userID int64, from, to *time.Time) ([]models.Measurement, error)
}

type ExportService struct {
	measurements measurementLister
}

func NewExportService(measurements measurementLister) *ExportService {
	return &ExportService{measurements: measurements}
}

// Run produces the CSV document, newest entries first. Every cell is quoted;
// embedded quotes are doubled.
func (s *ExportService) Run(ctx context.Context, userID int64, opts ExportOptions) (string, error) {
	switch opts.Format {
	case FormatMetric, FormatImperial, FormatBoth:
	default:
		return "", ErrInvalidInput
	}

	measurements, err := s.measurements.ListByUser(ctx, userID, opts.Start, opts.End)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	writeRow(&b, s.headerRow(opts))
	for _, m := range measurements {
		writeRow(&b, s.dataRow(m, opts))
	}
	return b.String(), nil
}

// Filename is the suggested attachment name, dated with the export day.
func (s *ExportService) Filename(now time.Time) string {
	return fmt.Sprintf("fitness-data-%s.csv", now.Format("2006-01-02"))
}

func (s *ExportService) headerRow(opts ExportOptions) []string {
	row := []string{"Date", "Weight", "Height", "Chest", "Waist", "Hips",
		"Left Bicep", "Right Bicep", "Left Thigh", "Right Thigh", "Left Calf", "Right Calf",
		"Biceps", "Forearms", "Thighs", "Calves", "Notes"}
	if opts.IncludeCalculated {
		row = append(row, "BMI", "BMI Category")
	}
	if opts.Format == FormatBoth {
		row = append(row, "Weight (kg)", "Weight (lbs)", "Height (cm)", "Height (in)")
	}
	return row
}

func (s *ExportService) dataRow(m models.Measurement, opts ExportOptions) []string {
	imperial := opts.Format == FormatImperial

	row := []string{
		m.Date.Format("2006-01-02"),
		formatWeight(m.Weight, imperial),
		formatLength(m.Height, imperial),
		formatLength(m.Chest, imperial),
		formatLength(m.Waist, imperial),
		formatLength(m.Hips, imperial),
		formatLength(m.Biceps, imperial),
		formatLength(m.Forearms, imperial),
		formatLength(m.LeftThigh, imperial),
		formatLength(m.RightThigh, imperial),
		formatLength(m.LeftCalf, imperial),
		formatLength(m.RightCalf, imperial),
		formatLength(m.Biceps, imperial),
		formatLength(m.Forearms, imperial),
		formatLength(m.Thighs, imperial),
		formatLength(m.Calves, imperial),
		notes(m.Notes),
	}

	if opts.IncludeCalculated {
		if bmi, ok := computeBMI(m.Weight, m.Height); ok {
			row = append(row, fmt.Sprintf("%.1f", bmi), bmiCategory(bmi))
		} else {
			row = append(row, "", "")
		}
	}

	if opts.Format == FormatBoth {
		row = append(row,
			bareNumber(m.Weight),
			bareConverted(m.Weight, kgToLbs),
			bareNumber(m.Height),
			bareConverted(m.Height, 1/cmPerIn),
		)
	}

	return row
}

func formatWeight(v *float64, imperial bool) string {
	if v == nil {
		return ""
	}
	if imperial {
		return fmt.Sprintf("%.1f lbs", *v*kgToLbs)
	}
	return fmt.Sprintf("%.1f kg", *v)
}

func formatLength(v *float64, imperial bool) string {
	if v == nil {
		return ""
	}
	if imperial {
		return fmt.Sprintf("%.1f in", *v/cmPerIn)
	}
	return fmt.Sprintf("%.1f cm", *v)
}

func bareNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *v)
}

func bareConverted(v *float64, factor float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.1f", *v*factor)
}

func notes(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// computeBMI expects weight in kg and height in cm.
func computeBMI(weight, height *float64) (float64, bool) {
	if weight == nil || height == nil || *height <= 0 {
		return 0, false
	}
	meters := *height / 100
	bmi := *weight / (meters * meters)
	return math.Round(bmi*10) / 10, true
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
