package importer

import (
	"fmt"
	"strings"
	"time"
)

// ColumnMapping associates each semantic target field with a source column
// name chosen by the user. Empty means unmapped. Date and Weight are the only
// required fields.
type ColumnMapping struct {
	Date       string `json:"date"`
	Weight     string `json:"weight"`
	Height     string `json:"height"`
	Neck       string `json:"neck"`
	Chest      string `json:"chest"`
	Waist      string `json:"waist"`
	Hips       string `json:"hips"`
	LeftBicep  string `json:"left_bicep"`
	RightBicep string `json:"right_bicep"`
	LeftThigh  string `json:"left_thigh"`
	RightThigh string `json:"right_thigh"`
	LeftCalf   string `json:"left_calf"`
	RightCalf  string `json:"right_calf"`
	Notes      string `json:"notes"`
}

// MissingRequired returns the names of required fields left unmapped.
func (m ColumnMapping) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(m.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(m.Weight) == "" {
		missing = append(missing, "weight")
	}
	return missing
}

// MappedRow is one validated import row. Optional circumference fields that
// were absent or unparsable default to zero; partial measurements are common
// and must not block import of the fields that are present.
type MappedRow struct {
	Date       time.Time
	Weight     float64
	Height     *float64
	Neck       float64
	Chest      float64
	Waist      float64
	Hips       float64
	LeftBicep  float64
	RightBicep float64
	LeftThigh  float64
	RightThigh float64
	LeftCalf   float64
	RightCalf  float64
	Notes      string
}

// MapRows validates every row against the mapping. Errors are keyed by the
// row's position in the source file, where the header is row 1. If any row
// fails, the returned error list is non-empty and nothing should be written.
func MapRows(rows []Row, mapping ColumnMapping) ([]MappedRow, []string) {
	mapped := make([]MappedRow, 0, len(rows))
	var errs []string

	for i, row := range rows {
		rowNum := i + 2

		date, ok := parseDate(row[mapping.Date])
		if !ok {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid date format", rowNum))
			continue
		}

		weight, ok := parseFloatPrefix(row[mapping.Weight])
		if !ok || weight <= 0 {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid weight value", rowNum))
			continue
		}

		var height *float64
		if mapping.Height != "" {
			if raw := row[mapping.Height]; raw != "" {
				h, ok := parseFloatPrefix(raw)
				if !ok || h <= 0 {
					errs = append(errs, fmt.Sprintf("Row %d: Invalid height value", rowNum))
					continue
				}
				height = &h
			}
		}

		mapped = append(mapped, MappedRow{
			Date:       date,
			Weight:     weight,
			Height:     height,
			Neck:       optionalField(row, mapping.Neck),
			Chest:      optionalField(row, mapping.Chest),
			Waist:      optionalField(row, mapping.Waist),
			Hips:       optionalField(row, mapping.Hips),
			LeftBicep:  optionalField(row, mapping.LeftBicep),
			RightBicep: optionalField(row, mapping.RightBicep),
			LeftThigh:  optionalField(row, mapping.LeftThigh),
			RightThigh: optionalField(row, mapping.RightThigh),
			LeftCalf:   optionalField(row, mapping.LeftCalf),
			RightCalf:  optionalField(row, mapping.RightCalf),
			Notes:      row[mapping.Notes],
		})
	}

	return mapped, errs
}

func optionalField(row Row, column string) float64 {
	if column == "" {
		return 0
	}
	v, ok := parseFloatPrefix(row[column])
	if !ok {
		return 0
	}
	return v
}

// Entry is a normalized row mapped onto the storage schema's field names.
// The single left-bicep source column feeds the legacy combined biceps field,
// and left-side thigh/calf values feed the combined thighs/calves fields,
// preserving the backward-compatible redundant storage.
type Entry struct {
	Date       time.Time
	Weight     float64
	Height     *float64
	Chest      float64
	Waist      float64
	Hips       float64
	Biceps     float64
	Forearms   float64
	Thighs     float64
	Calves     float64
	LeftThigh  float64
	RightThigh float64
	LeftCalf   float64
	RightCalf  float64
	Notes      string
}

// Normalize maps validated rows onto storage entries. No unit conversion is
// performed; source values are trusted to already be in the unit the user is
// working in.
func Normalize(rows []MappedRow) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			Date:       row.Date,
			Weight:     row.Weight,
			Height:     row.Height,
			Chest:      row.Chest,
			Waist:      row.Waist,
			Hips:       row.Hips,
			Biceps:     row.LeftBicep,
			Forearms:   row.RightBicep,
			Thighs:     row.LeftThigh,
			Calves:     row.LeftCalf,
			LeftThigh:  row.LeftThigh,
			RightThigh: row.RightThigh,
			LeftCalf:   row.LeftCalf,
			RightCalf:  row.RightCalf,
			Notes:      row.Notes,
		})
	}
	return entries
}
