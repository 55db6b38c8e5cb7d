package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Separator is the field separator detected for one line of a results file.
type Separator rune

const (
	Tab       Separator = '\t'
	Semicolon Separator = ';'
	Comma     Separator = ','
)

func (s Separator) String() string {
	switch s {
	case Tab:
		return "tab"
	case Semicolon:
		return "semicolon"
	default:
		return "comma"
	}
}

// DetectSeparator picks the separator used by line: a tab wins over a
// semicolon, which wins over a comma. Lines without any of them are treated
// as comma separated (a single field).
func DetectSeparator(line string) Separator {
	switch {
	case strings.ContainsRune(line, '\t'):
		return Tab
	case strings.ContainsRune(line, ';'):
		return Semicolon
	default:
		return Comma
	}
}

// SplitLine splits one line into fields using its detected separator.
// Quoted fields are honoured. Whitespace around a semicolon is not part of
// the field.
func SplitLine(line string) ([]string, Separator, error) {
	sep := DetectSeparator(line)
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = rune(sep)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	if sep == Semicolon {
		r.TrimLeadingSpace = true
	}
	fields, err := r.Read()
	if err != nil {
		return nil, sep, err
	}
	if sep == Semicolon {
		for i, f := range fields {
			fields[i] = strings.TrimRight(f, " \t")
		}
	}
	return fields, sep, nil
}

// ReadRecords reads every non-blank line of r into a record. The first
// record is the header; every following record must have the same number of
// fields.
func ReadRecords(r io.Reader) ([][]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var records [][]string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields, _, err := SplitLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(records) > 0 && len(fields) != len(records[0]) {
			return nil, fmt.Errorf("line %d has %d columns, expected %d", lineNo, len(fields), len(records[0]))
		}
		records = append(records, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
