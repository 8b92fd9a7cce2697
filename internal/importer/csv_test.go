package importer

import (
	"errors"
	"testing"
)

func TestParseSplitsHeadersAndRows(t *testing.T) {
	raw := "Date,Weight,Notes\n2024-01-01,80.5,\"morning, fasted\"\n2024-01-02,80.1,\n"

	headers, rows, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(headers) != 3 {
		t.Fatalf("expected 3 headers, got %d", len(headers))
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["Weight"] != "80.5" {
		t.Errorf("expected weight 80.5, got %q", rows[0]["Weight"])
	}
	// Quotes are stripped, not honored; the embedded comma splits the field.
	if rows[0]["Notes"] != "morning" {
		t.Errorf("expected quote-stripped notes, got %q", rows[0]["Notes"])
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	raw := "Date,Weight\n\n2024-01-01,80\n\r\n2024-01-02,79.5\n"

	_, rows, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestParsePadsShortRows(t *testing.T) {
	raw := "Date,Weight,Chest\n2024-01-01,80\n"

	_, rows, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rows[0]["Chest"] != "" {
		t.Errorf("expected empty chest, got %q", rows[0]["Chest"])
	}
}

func TestParseEmptyFile(t *testing.T) {
	if _, _, err := Parse("  \n\n  "); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestParseFloatPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"80.5", 80.5, true},
		{"80.0 kg", 80, true},
		{"176.4 lbs", 176.4, true},
		{"-2.5", -2.5, true},
		{".5", 0.5, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseFloatPrefix(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseFloatPrefix(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDateFormats(t *testing.T) {
	for _, in := range []string{"2024-01-15", "2024/01/15", "01/15/2024", "Jan 15, 2024", "2024-01-15 08:30:00"} {
		if _, ok := parseDate(in); !ok {
			t.Errorf("parseDate(%q) failed", in)
		}
	}
	if _, ok := parseDate("not a date"); ok {
		t.Error("parseDate accepted garbage")
	}
}
