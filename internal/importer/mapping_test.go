package importer

import "testing"

func TestMissingRequired(t *testing.T) {
	m := ColumnMapping{Weight: "Weight"}
	missing := m.MissingRequired()
	if len(missing) != 1 || missing[0] != "date" {
		t.Fatalf("expected [date], got %v", missing)
	}

	m = ColumnMapping{}
	if got := m.MissingRequired(); len(got) != 2 {
		t.Fatalf("expected both fields missing, got %v", got)
	}

	m = ColumnMapping{Date: "Date", Weight: "Weight"}
	if got := m.MissingRequired(); len(got) != 0 {
		t.Fatalf("expected nothing missing, got %v", got)
	}
}

func TestMapRowsReportsRowErrors(t *testing.T) {
	raw := "Date,Weight\n2024-01-01,80\n2024-01-02,81\nnot-a-date,82\n"
	_, rows, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	mapping := ColumnMapping{Date: "Date", Weight: "Weight"}
	mapped, errs := MapRows(rows, mapping)

	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	// The header is row 1, so the third data row is row 4.
	if errs[0] != "Row 4: Invalid date format" {
		t.Errorf("unexpected error key: %q", errs[0])
	}
	if len(mapped) != 2 {
		t.Errorf("expected 2 valid rows, got %d", len(mapped))
	}
}

func TestMapRowsRejectsNonPositiveWeight(t *testing.T) {
	raw := "Date,Weight\n2024-01-01,0\n2024-01-02,-3\n2024-01-03,abc\n"
	_, rows, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	_, errs := MapRows(rows, ColumnMapping{Date: "Date", Weight: "Weight"})
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	for i, want := range []string{"Row 2: Invalid weight value", "Row 3: Invalid weight value", "Row 4: Invalid weight value"} {
		if errs[i] != want {
			t.Errorf("errs[%d] = %q, want %q", i, errs[i], want)
		}
	}
}

func TestMapRowsValidatesMappedHeight(t *testing.T) {
	raw := "Date,Weight,Height\n2024-01-01,80,175\n2024-01-02,80,bogus\n2024-01-03,80,\n"
	_, rows, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	mapping := ColumnMapping{Date: "Date", Weight: "Weight", Height: "Height"}
	mapped, errs := MapRows(rows, mapping)

	if len(errs) != 1 || errs[0] != "Row 3: Invalid height value" {
		t.Fatalf("expected height error on row 3, got %v", errs)
	}
	if len(mapped) != 2 {
		t.Fatalf("expected 2 valid rows, got %d", len(mapped))
	}
	if mapped[0].Height == nil || *mapped[0].Height != 175 {
		t.Error("expected height 175 on first row")
	}
	// Empty height cells pass through as absent rather than failing.
	if mapped[1].Height != nil {
		t.Error("expected absent height on empty cell")
	}
}

func TestMapRowsDefaultsOptionalFields(t *testing.T) {
	raw := "Date,Weight,Chest\n2024-01-01,80,\n"
	_, rows, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	mapped, errs := MapRows(rows, ColumnMapping{Date: "Date", Weight: "Weight", Chest: "Chest"})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if mapped[0].Chest != 0 {
		t.Errorf("expected chest default 0, got %v", mapped[0].Chest)
	}
}

func TestNormalizeMapsSidedFields(t *testing.T) {
	rows := []MappedRow{{
		Weight:     80,
		LeftBicep:  35.5,
		RightBicep: 36,
		LeftThigh:  58,
		RightThigh: 57.5,
		LeftCalf:   38,
		RightCalf:  37.5,
		Neck:       40,
	}}

	entries := Normalize(rows)
	e := entries[0]

	if e.Biceps != 35.5 {
		t.Errorf("biceps = %v, want left bicep value", e.Biceps)
	}
	if e.Forearms != 36 {
		t.Errorf("forearms = %v, want right bicep value", e.Forearms)
	}
	if e.Thighs != 58 || e.Calves != 38 {
		t.Errorf("combined thighs/calves should take the left side, got %v/%v", e.Thighs, e.Calves)
	}
	if e.LeftThigh != 58 || e.RightThigh != 57.5 || e.LeftCalf != 38 || e.RightCalf != 37.5 {
		t.Error("per-side fields should carry through unchanged")
	}
}
