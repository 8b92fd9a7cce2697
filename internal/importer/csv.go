package importer

import (
	"errors"
	"strings"
)

var ErrEmptyFile = errors.New("csv file is empty")

// Row maps a source column name to the raw cell value for one data row.
type Row map[string]string

// Parse splits raw delimited text into a header list and value rows. Fields
// are split on commas, trimmed, and stripped of double quotes. Quoted fields
// containing embedded commas or newlines are not handled.
func Parse(raw string) ([]string, []Row, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, nil, ErrEmptyFile
	}

	headers := splitFields(lines[0])

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitFields(line)
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = values[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	fields := make([]string, len(parts))
	for i, part := range parts {
		fields[i] = strings.ReplaceAll(strings.TrimSpace(part), `"`, "")
	}
	return fields
}
