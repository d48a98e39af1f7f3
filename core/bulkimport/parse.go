// Package bulkimport turns raw CSV text pasted or uploaded by an admin into
// validated account-creation payloads.
//
// Structural problems (blank file, missing header columns) abort the whole
// batch with a single error; row-level problems never do — each bad row is
// recorded as a Skip with a human-readable reason and the rest of the batch
// proceeds.
package bulkimport

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/szkolix/backend/core/csvkit"
)

type (
	// Payload is one validated account to create. Row is the 1-based line
	// number in the parsed file (header = 1) for tracing.
	Payload struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Company  string `json:"company"`
		CourseID string `json:"course_id"`
		Phone    string `json:"phone,omitempty"`
		Address  string `json:"address,omitempty"`
		IDNumber string `json:"id_number,omitempty"`
		Pesel    string `json:"pesel,omitempty"`
		Row      int    `json:"row"`
	}

	// Skip records one rejected row and why.
	Skip struct {
		Row    int    `json:"row"`
		Email  string `json:"email,omitempty"`
		Reason string `json:"reason"`
	}

	// ParseResult carries the surviving payloads and the per-row skips.
	ParseResult struct {
		Payloads []Payload `json:"payloads"`
		Skipped  []Skip    `json:"skipped"`
	}
)

// Skip reasons
const (
	reasonMissingEmail = "brak adresu email"
	reasonInvalidEmail = "nieprawidłowy adres email"
	reasonMissingName  = "brak imienia lub nazwiska"
)

// Header aliases, matched after normalizeHeader.
var (
	firstNameAliases = []string{"imie", "firstname", "first"}
	lastNameAliases  = []string{"nazwisko", "lastname", "surname", "last"}
	emailAliases     = []string{"email", "adresemail", "mail"}
	phoneAliases     = []string{"telefon", "phone", "nrtelefonu", "numertelefonu", "tel", "komorka"}
	addressAliases   = []string{"adres", "address"}
	idNumberAliases  = []string{"nrdowodu", "numerdowodu", "dowod", "dowodosobisty", "idcard", "idnumber"}
	peselAliases     = []string{"pesel"}
)

// Loose on purpose: the source of truth for the address is the welcome email
// bouncing, not this check.
var emailRegex = regexp.MustCompile(`\S+@\S+\.\S+`)

var diacriticFolds = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n", "ó", "o", "ś", "s", "ż", "z", "ź", "z",
	"Ą", "A", "Ć", "C", "Ę", "E", "Ł", "L", "Ń", "N", "Ó", "O", "Ś", "S", "Ż", "Z", "Ź", "Z",
)

// ParsePayloads parses raw CSV text into account payloads for the given
// company and course. The delimiter is sniffed from the first non-blank line.
func ParsePayloads(raw, company, courseID string) (*ParseResult, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("plik jest pusty")
	}

	var firstLine string
	var nonBlank int
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if nonBlank == 0 {
			firstLine = line
		}
		nonBlank++
	}
	if nonBlank < 2 {
		return nil, fmt.Errorf("plik musi zawierać nagłówek i co najmniej jeden wiersz danych")
	}

	rows := csvkit.Parse(raw, csvkit.DetectDelimiter(firstLine))
	if len(rows) < 2 {
		return nil, fmt.Errorf("plik musi zawierać nagłówek i co najmniej jeden wiersz danych")
	}

	header := rows[0]
	firstIdx := findColumn(header, firstNameAliases)
	lastIdx := findColumn(header, lastNameAliases)
	emailIdx := findColumn(header, emailAliases)
	switch {
	case emailIdx < 0:
		return nil, fmt.Errorf("brak wymaganej kolumny: email")
	case firstIdx < 0:
		return nil, fmt.Errorf("brak wymaganej kolumny: imię")
	case lastIdx < 0:
		return nil, fmt.Errorf("brak wymaganej kolumny: nazwisko")
	}
	phoneIdx := findColumn(header, phoneAliases)
	addressIdx := findColumn(header, addressAliases)
	idNumberIdx := findColumn(header, idNumberAliases)
	peselIdx := findColumn(header, peselAliases)

	res := &ParseResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2 // header is row 1

		email := cell(row, emailIdx)
		if email == "" {
			res.Skipped = append(res.Skipped, Skip{Row: rowNum, Reason: reasonMissingEmail})
			continue
		}
		if !emailRegex.MatchString(email) {
			res.Skipped = append(res.Skipped, Skip{Row: rowNum, Email: email, Reason: reasonInvalidEmail})
			continue
		}

		first := cell(row, firstIdx)
		last := cell(row, lastIdx)
		if first == "" || last == "" {
			res.Skipped = append(res.Skipped, Skip{Row: rowNum, Email: email, Reason: reasonMissingName})
			continue
		}

		res.Payloads = append(res.Payloads, Payload{
			Email:    email,
			Name:     first + " " + last,
			Company:  company,
			CourseID: courseID,
			Phone:    NormalizePhone(cell(row, phoneIdx)),
			Address:  cell(row, addressIdx),
			IDNumber: cell(row, idNumberIdx),
			Pesel:    cell(row, peselIdx),
			Row:      rowNum,
		})
	}

	if len(res.Payloads) == 0 {
		first := res.Skipped[0]
		return nil, fmt.Errorf("nie udało się odczytać żadnego wiersza (wiersz %d: %s)", first.Row, first.Reason)
	}
	return res, nil
}

// NormalizePhone compacts a phone number and strips the Polish country
// prefix (+48, 0048, or a bare 48 before exactly 9 digits). No digit-count
// validation happens beyond that; malformed numbers pass through as-is.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.Join(strings.Fields(s), "")
	switch {
	case strings.HasPrefix(s, "+48"):
		return s[3:]
	case strings.HasPrefix(s, "0048"):
		return s[4:]
	case len(s) == 11 && strings.HasPrefix(s, "48") && allDigits(s[2:]):
		return s[2:]
	}
	return s
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// normalizeHeader prepares a header cell for alias matching: trim,
// strip internal whitespace and -/_ separators, fold Polish diacritics to
// ASCII, lower-case.
func normalizeHeader(s string) string {
	s = diacriticFolds.Replace(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '\t':
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		h = normalizeHeader(h)
		for _, alias := range aliases {
			if h == alias {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
