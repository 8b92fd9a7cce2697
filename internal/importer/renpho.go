package importer

import (
	"fmt"
	"strings"
	"time"
)

// RequiredRenphoHeaders is the fixed header set of a Renpho CSV export. A
// file missing any of these is rejected wholesale before row parsing.
var RequiredRenphoHeaders = []string{
	"Time of Measurement",
	"Weight(lb)",
	"BMI",
	"Body Fat(%)",
	"Fat-free Body Weight(lb)",
	"Subcutaneous Fat(%)",
	"Visceral Fat",
	"Body Water(%)",
	"Skeletal Muscle(%)",
	"Muscle Mass(lb)",
	"Bone Mass(lb)",
	"Protein(%)",
	"BMR(kcal)",
	"Metabolic Age",
}

// RenphoRow is one validated Renpho export row. Optional metrics that were
// absent, unparsable, or zero are nil.
type RenphoRow struct {
	TimeOfMeasurement      time.Time
	WeightLb               float64
	BMI                    *float64
	BodyFatPercent         *float64
	FatFreeBodyWeightLb    *float64
	SubcutaneousFatPercent *float64
	VisceralFat            *float64
	BodyWaterPercent       *float64
	SkeletalMusclePercent  *float64
	MuscleMassLb           *float64
	BoneMassLb             *float64
	ProteinPercent         *float64
	BMRKcal                *int
	MetabolicAge           *int
}

// ParseRenpho validates a Renpho CSV export. Header validation runs first; if
// any required header is missing, the single returned error names the missing
// headers and no rows are parsed. Row errors are keyed by source line number
// (the header is line 1); blank lines are skipped but keep their number.
func ParseRenpho(raw string) ([]RenphoRow, []string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil, ErrEmptyFile
	}
	lines := strings.Split(trimmed, "\n")
	headers := splitFields(strings.TrimRight(lines[0], "\r"))

	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var missing []string
	for _, h := range RequiredRenphoHeaders {
		if _, ok := present[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, []string{fmt.Sprintf("Missing required headers: %s", strings.Join(missing, ", "))}, nil
	}

	var parsed []RenphoRow
	var errs []string
	for i := 1; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitFields(line)
		row := make(Row, len(headers))
		for j, header := range headers {
			if j < len(values) {
				row[header] = values[j]
			} else {
				row[header] = ""
			}
		}
		rowNum := i + 1

		rawTime := row["Time of Measurement"]
		rawWeight := row["Weight(lb)"]
		if rawTime == "" || rawWeight == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing required fields (Time of Measurement or Weight)", rowNum))
			continue
		}

		at, ok := parseDate(rawTime)
		if !ok {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid date format in Time of Measurement", rowNum))
			continue
		}

		weight, ok := parseFloatPrefix(rawWeight)
		if !ok || weight <= 0 {
			errs = append(errs, fmt.Sprintf("Row %d: Invalid weight value", rowNum))
			continue
		}

		parsed = append(parsed, RenphoRow{
			TimeOfMeasurement:      at,
			WeightLb:               weight,
			BMI:                    optionalMetric(row["BMI"]),
			BodyFatPercent:         optionalMetric(row["Body Fat(%)"]),
			FatFreeBodyWeightLb:    optionalMetric(row["Fat-free Body Weight(lb)"]),
			SubcutaneousFatPercent: optionalMetric(row["Subcutaneous Fat(%)"]),
			VisceralFat:            optionalMetric(row["Visceral Fat"]),
			BodyWaterPercent:       optionalMetric(row["Body Water(%)"]),
			SkeletalMusclePercent:  optionalMetric(row["Skeletal Muscle(%)"]),
			MuscleMassLb:           optionalMetric(row["Muscle Mass(lb)"]),
			BoneMassLb:             optionalMetric(row["Bone Mass(lb)"]),
			ProteinPercent:         optionalMetric(row["Protein(%)"]),
			BMRKcal:                optionalIntMetric(row["BMR(kcal)"]),
			MetabolicAge:           optionalIntMetric(row["Metabolic Age"]),
		})
	}

	return parsed, errs, nil
}

// optionalMetric treats zero the same as absent, matching the vendor export
// convention of zero-filling metrics the scale could not read.
func optionalMetric(value string) *float64 {
	v, ok := parseFloatPrefix(value)
	if !ok || v == 0 {
		return nil
	}
	return &v
}

func optionalIntMetric(value string) *int {
	v, ok := parseIntPrefix(value)
	if !ok || v == 0 {
		return nil
	}
	return &v
}
