// Package csvkit implements the CSV dialect spoken by the platform's
// spreadsheet imports and exports.
//
// encoding/csv is deliberately not used here: imports must survive what
// Polish-locale spreadsheet exports actually produce (semicolon delimiters,
// stray blank rows, trailing empty cells, unbalanced quotes), and stock CSV
// readers reject those inputs instead of tolerating them.
package csvkit

import "strings"

// DetectDelimiter inspects the header line and picks ';' or ','.
// Polish-locale spreadsheet exports default to ';', so ties go to it.
// Quoted delimiters do not count.
func DetectDelimiter(line string) byte {
	var commas, semis int
	var inQuotes bool
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				i++ // escaped quote, stays in-quote
				continue
			}
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				commas++
			}
		case ';':
			if !inQuotes {
				semis++
			}
		}
	}
	if semis >= commas {
		return ';'
	}
	return ','
}

// Parse tokenizes text into rows of trimmed fields.
//
// `""` inside a quoted field emits a literal quote. Trailing empty fields are
// dropped from each row and rows whose every field is blank are dropped
// entirely. Unbalanced trailing quotes are tolerated; parsing is best-effort
// and never fails.
func Parse(text string, delim byte) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var rows [][]string
	var row []string
	var field strings.Builder
	var inQuotes bool

	endField := func() {
		row = append(row, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		// drop trailing empty fields
		for len(row) > 0 && row[len(row)-1] == "" {
			row = row[:len(row)-1]
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			endField()
		case c == '\n' && !inQuotes:
			endRow()
		default:
			field.WriteByte(c)
		}
	}
	endRow()
	return rows
}

type (
	// Field is one named cell of a Record.
	Field struct {
		Name  string
		Value string
	}

	// Record is an ordered list of fields; order drives the header row.
	Record []Field
)

// Marshal serializes records with a header taken from the first record's
// field order: ';'-delimited, CRLF line endings, values quoted only when they
// contain the delimiter, a quote or a line break.
func Marshal(records []Record) string {
	if len(records) == 0 {
		return ""
	}

	lines := make([]string, 0, len(records)+1)

	header := make([]string, len(records[0]))
	for i, f := range records[0] {
		header[i] = escape(f.Name)
	}
	lines = append(lines, strings.Join(header, ";"))

	for _, rec := range records {
		cells := make([]string, len(rec))
		for i, f := range rec {
			cells[i] = escape(f.Value)
		}
		lines = append(lines, strings.Join(cells, ";"))
	}
	return strings.Join(lines, "\r\n")
}

func escape(v string) string {
	if strings.ContainsAny(v, ";\"\n\r") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}
