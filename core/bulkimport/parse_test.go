package bulkimport

import (
	"strings"
	"testing"
)

func TestParsePayloads(t *testing.T) {
	raw := strings.Join([]string{
		"Imię;Nazwisko;Adres email;Telefon",
		"Jan;Kowalski;jan.kowalski@firma.pl;+48 601 202 303",
		"Anna;Nowak;anna.nowak@firma.pl;",
		";;brak@imienia.pl;",
		"Piotr;Zieliński;niepoprawny-adres;",
		"Ewa;Wiśniewska;;",
	}, "\r\n")

	res, err := ParsePayloads(raw, "Alfa", "wozki-widlowe")
	if err != nil {
		t.Fatalf("ParsePayloads() error = %v", err)
	}

	if len(res.Payloads) != 2 {
		t.Fatalf("got %d payloads, want 2", len(res.Payloads))
	}

	p := res.Payloads[0]
	if p.Email != "jan.kowalski@firma.pl" {
		t.Errorf("Email = %q", p.Email)
	}
	if p.Name != "Jan Kowalski" {
		t.Errorf("Name = %q, want %q", p.Name, "Jan Kowalski")
	}
	if p.Company != "Alfa" || p.CourseID != "wozki-widlowe" {
		t.Errorf("context = (%q, %q), want (Alfa, wozki-widlowe)", p.Company, p.CourseID)
	}
	if p.Phone != "601202303" {
		t.Errorf("Phone = %q, want %q", p.Phone, "601202303")
	}
	if p.Row != 2 {
		t.Errorf("Row = %d, want 2", p.Row)
	}

	if len(res.Skipped) != 3 {
		t.Fatalf("got %d skips, want 3: %+v", len(res.Skipped), res.Skipped)
	}
	for _, skip := range res.Skipped {
		if !strings.Contains(skip.Reason, "email") && skip.Reason != reasonMissingName {
			t.Errorf("unexpected skip reason %q", skip.Reason)
		}
	}
	if res.Skipped[0].Row != 4 || res.Skipped[0].Reason != reasonMissingName {
		t.Errorf("skip[0] = %+v, want row 4 missing name", res.Skipped[0])
	}
	if res.Skipped[1].Reason != reasonInvalidEmail || res.Skipped[1].Email != "niepoprawny-adres" {
		t.Errorf("skip[1] = %+v, want invalid email", res.Skipped[1])
	}
	if res.Skipped[2].Reason != reasonMissingEmail {
		t.Errorf("skip[2] = %+v, want missing email", res.Skipped[2])
	}
}

func TestParsePayloadsCommaDelimited(t *testing.T) {
	raw := "email,imie,nazwisko\njan@firma.pl,Jan,Kowalski"

	res, err := ParsePayloads(raw, "", "")
	if err != nil {
		t.Fatalf("ParsePayloads() error = %v", err)
	}
	if len(res.Payloads) != 1 || res.Payloads[0].Name != "Jan Kowalski" {
		t.Errorf("payloads = %+v", res.Payloads)
	}
}

func TestParsePayloadsHeaderFolding(t *testing.T) {
	// diacritics, case, separators and English aliases all match
	raws := []string{
		"IMIĘ;NAZWISKO;E-MAIL\nJan;Kowalski;j@k.pl",
		"first_name;last-name;Mail\nJan;Kowalski;j@k.pl",
		"First;Surname;email\nJan;Kowalski;j@k.pl",
	}
	for _, raw := range raws {
		res, err := ParsePayloads(raw, "", "")
		if err != nil {
			t.Errorf("ParsePayloads(%q) error = %v", raw, err)
			continue
		}
		if len(res.Payloads) != 1 {
			t.Errorf("ParsePayloads(%q) = %d payloads, want 1", raw, len(res.Payloads))
		}
	}
}

func TestParsePayloadsErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{name: "empty file", raw: "   \n\n  ", wantMsg: "pusty"},
		{name: "header only", raw: "imie;nazwisko;email", wantMsg: "nagłówek"},
		{name: "missing email column", raw: "imie;nazwisko\nJan;Kowalski", wantMsg: "brak wymaganej kolumny: email"},
		{name: "missing first name column", raw: "nazwisko;email\nKowalski;j@k.pl", wantMsg: "brak wymaganej kolumny: imię"},
		{name: "missing last name column", raw: "imie;email\nJan;j@k.pl", wantMsg: "brak wymaganej kolumny: nazwisko"},
		{name: "no usable rows", raw: "imie;nazwisko;email\nJan;Kowalski;zly-adres", wantMsg: "żadnego wiersza"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePayloads(tt.raw, "", "")
			if err == nil {
				t.Fatal("ParsePayloads() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "blank", in: "   ", want: ""},
		{name: "plain", in: "601202303", want: "601202303"},
		{name: "spaces compacted", in: "601 202 303", want: "601202303"},
		{name: "plus48", in: "+48601202303", want: "601202303"},
		{name: "plus48 with spaces", in: "+48 601 202 303", want: "601202303"},
		{name: "0048", in: "0048601202303", want: "601202303"},
		{name: "bare 48 prefix", in: "48601202303", want: "601202303"},
		{name: "48 not a prefix of 9 digits", in: "486012023", want: "486012023"},
		{name: "non-digits pass through", in: "sekretariat", want: "sekretariat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.in); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
