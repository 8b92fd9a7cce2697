package importer

import (
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseFloatPrefix parses the leading decimal number of a string, so values
// like "80.0 kg" produced by the exporter read back as 80.0.
func parseFloatPrefix(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}
	digits := false
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
		digits = true
	}
	if end < len(value) && value[end] == '.' {
		end++
		for end < len(value) && value[end] >= '0' && value[end] <= '9' {
			end++
			digits = true
		}
	}
	if !digits {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(value[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseIntPrefix(value string) (int, bool) {
	v, ok := parseFloatPrefix(value)
	if !ok {
		return 0, false
	}
	return int(v), true
}
