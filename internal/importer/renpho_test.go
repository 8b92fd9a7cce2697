package importer

import (
	"strings"
	"testing"
)

const renphoHeader = "Time of Measurement,Weight(lb),BMI,Body Fat(%),Fat-free Body Weight(lb),Subcutaneous Fat(%),Visceral Fat,Body Water(%),Skeletal Muscle(%),Muscle Mass(lb),Bone Mass(lb),Protein(%),BMR(kcal),Metabolic Age"

func TestParseRenphoRejectsMissingHeaders(t *testing.T) {
	// BMR(kcal) removed from the header line.
	header := strings.Replace(renphoHeader, ",BMR(kcal)", "", 1)
	raw := header + "\n2024-01-01 08:00:00,176.4,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,34\n"

	rows, errs, err := ParseRenpho(raw)
	if err != nil {
		t.Fatalf("ParseRenpho: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows on header rejection, got %d", len(rows))
	}
	if len(errs) != 1 || errs[0] != "Missing required headers: BMR(kcal)" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestParseRenphoParsesRows(t *testing.T) {
	raw := renphoHeader + "\n" +
		"2024-01-01 08:00:00,176.4,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n" +
		"2024-01-02 08:05:00,175.8,24.0,18.3,143.6,15.1,7,55.3,45.0,79.1,7.1,18.0,1718,34\n"

	rows, errs, err := ParseRenpho(raw)
	if err != nil {
		t.Fatalf("ParseRenpho: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].WeightLb != 176.4 {
		t.Errorf("weight = %v", rows[0].WeightLb)
	}
	if rows[0].BMRKcal == nil || *rows[0].BMRKcal != 1720 {
		t.Errorf("bmr = %v", rows[0].BMRKcal)
	}
}

func TestParseRenphoZeroMetricsBecomeAbsent(t *testing.T) {
	raw := renphoHeader + "\n" +
		"2024-01-01 08:00:00,176.4,0,0,143.7,15.2,0,55.1,44.8,79.0,7.1,17.9,0,0\n"

	rows, errs, err := ParseRenpho(raw)
	if err != nil {
		t.Fatalf("ParseRenpho: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	row := rows[0]
	if row.BMI != nil || row.BodyFatPercent != nil || row.VisceralFat != nil || row.BMRKcal != nil || row.MetabolicAge != nil {
		t.Error("zero-valued metrics should be treated as absent")
	}
	if row.FatFreeBodyWeightLb == nil || *row.FatFreeBodyWeightLb != 143.7 {
		t.Error("non-zero metrics should survive")
	}
}

func TestParseRenphoBlankLinesKeepLineNumbers(t *testing.T) {
	raw := renphoHeader + "\n" +
		"2024-01-01 08:00:00,176.4,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n" +
		"\n" +
		"garbage-date,176.4,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n"

	rows, errs, err := ParseRenpho(raw)
	if err != nil {
		t.Fatalf("ParseRenpho: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(rows))
	}
	// The bad row sits on file line 4; the blank line above it still counts.
	if len(errs) != 1 || errs[0] != "Row 4: Invalid date format in Time of Measurement" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestParseRenphoRowErrors(t *testing.T) {
	raw := renphoHeader + "\n" +
		",176.4,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n" +
		"garbage-date,176.4,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n" +
		"2024-01-03 08:00:00,0,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n"

	_, errs, err := ParseRenpho(raw)
	if err != nil {
		t.Fatalf("ParseRenpho: %v", err)
	}
	want := []string{
		"Row 2: Missing required fields (Time of Measurement or Weight)",
		"Row 3: Invalid date format in Time of Measurement",
		"Row 4: Invalid weight value",
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %v", len(want), errs)
	}
	for i := range want {
		if errs[i] != want[i] {
			t.Errorf("errs[%d] = %q, want %q", i, errs[i], want[i])
		}
	}
}
