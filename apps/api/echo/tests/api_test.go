package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/szkolix/backend/core/bulkimport"
	"github.com/szkolix/backend/core/finance"
	"github.com/szkolix/backend/core/reports"
)

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "ok", body: `{"username":"szkolixadmin","password":"LocalAdminPass!"}`, wantCode: http.StatusOK},
		{name: "by email", body: `{"username":"admin@szkolix.pl","password":"LocalAdminPass!"}`, wantCode: http.StatusOK},
		{name: "wrong password", body: `{"username":"szkolixadmin","password":"zle-haslo"}`, wantCode: http.StatusBadRequest},
		{name: "unknown user", body: `{"username":"nikt","password":"cokolwiek"}`, wantCode: http.StatusBadRequest},
		{name: "missing fields", body: `{}`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", []byte(tt.body))
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d; body = %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusOK && !strings.Contains(rec.Body.String(), "token") {
				t.Errorf("no token in body: %s", rec.Body.String())
			}
		})
	}
}

func TestPasswordResetRequest(t *testing.T) {
	body := marshalObj(t, map[string]string{"email": "jan.kowalski@megatrans.pl"})
	req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", body)
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
	}

	var found bool
	for _, msg := range mailSvc.SentMessages() {
		if msg.Subject == "Resetowanie hasła" {
			found = true
			if !strings.Contains(msg.Body, "password-reset?uid=") {
				t.Errorf("reset email has no link: %q", msg.Body)
			}
		}
	}
	if !found {
		t.Error("no reset email recorded")
	}

	// unknown email gets the same 200, with no email behind it
	body = marshalObj(t, map[string]string{"email": "nikt@nigdzie.pl"})
	req, rec = newRequest(http.MethodPost, "/v1/users/password-reset", body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("code = %d for unknown email, want 200", rec.Code)
	}
}

func TestUserQueryPermissions(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		wantCode int
	}{
		{name: "no token", wantCode: http.StatusUnauthorized},
		{name: "student", token: getToken(t, student), wantCode: http.StatusForbidden},
		{name: "guardian", token: getToken(t, guardian), wantCode: http.StatusForbidden},
		{name: "admin", token: getToken(t, admin), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/users", tt.token)
			app.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d; body = %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestFinanceTransactions(t *testing.T) {
	req, rec := newAuthRequest(http.MethodGet, "/v1/finance/transactions", getToken(t, manager))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
	}

	var txs []finance.Transaction
	decodeJSON(t, rec, &txs)
	if len(txs) == 0 {
		t.Fatal("no transactions synthesized from the seed data")
	}
	for _, tx := range txs {
		if !strings.HasPrefix(tx.ID, "TX-") || tx.Status == "" || tx.Method == "" {
			t.Errorf("malformed transaction: %+v", tx)
		}
	}

	// same seed data, same ledger
	req, rec2 := newAuthRequest(http.MethodGet, "/v1/finance/transactions", getToken(t, manager))
	app.ServeHTTP(rec2, req)
	var again []finance.Transaction
	decodeJSON(t, rec2, &again)
	if len(again) != len(txs) || again[0].ID != txs[0].ID {
		t.Error("ledger not deterministic across requests")
	}

	// guardian has no finance panel
	req, rec = newAuthRequest(http.MethodGet, "/v1/finance/transactions", getToken(t, guardian))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("guardian code = %d, want 403", rec.Code)
	}
}

func TestFinanceTransactionsCSV(t *testing.T) {
	req, rec := newAuthRequest(http.MethodGet, "/v1/finance/transactions?format=csv", getToken(t, admin))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "transakcje-") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "ID transakcji;") {
		t.Errorf("body does not start with the frozen header: %q", rec.Body.String()[:40])
	}
}

func TestReportsIndividual(t *testing.T) {
	token := getToken(t, manager)

	req, rec := newAuthRequest(http.MethodGet, "/v1/reports/individual?email=jan.kowalski@megatrans.pl", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
	}

	var rep reports.IndividualReport
	decodeJSON(t, rec, &rep)
	if rep.Email != "jan.kowalski@megatrans.pl" || len(rep.Enrollments) != 2 {
		t.Errorf("report = %+v", rep)
	}

	// unknown email degrades to the first learner instead of failing
	req, rec = newAuthRequest(http.MethodGet, "/v1/reports/individual?email=nikt@nigdzie.pl", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("fallback code = %d, want 200", rec.Code)
	}

	// students have no report panel
	req, rec = newAuthRequest(http.MethodGet, "/v1/reports/individual", getToken(t, student))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("student code = %d, want 403", rec.Code)
	}
}

func TestReportsGroupGuardianScope(t *testing.T) {
	// a guardian asking for another company still gets their own
	req, rec := newAuthRequest(http.MethodGet, "/v1/reports/group?company=Budmax", getToken(t, guardian))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
	}

	var rep reports.GroupReport
	decodeJSON(t, rec, &rep)
	if rep.Company != "Mega-Trans" {
		t.Errorf("Company = %q, want forced Mega-Trans", rep.Company)
	}

	// staff can pick freely
	req, rec = newAuthRequest(http.MethodGet, "/v1/reports/group?company=Budmax", getToken(t, manager))
	app.ServeHTTP(rec, req)
	var staffRep reports.GroupReport
	decodeJSON(t, rec, &staffRep)
	if staffRep.Company != "Budmax" {
		t.Errorf("Company = %q, want Budmax", staffRep.Company)
	}
}

func TestReportsCourseCSV(t *testing.T) {
	req, rec := newAuthRequest(http.MethodGet, "/v1/reports/course/wozki-widlowe?format=csv", getToken(t, admin))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "raport-szkolenie-wozki-widlowe.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Lekcja") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestReportsCompare(t *testing.T) {
	adminToken := getToken(t, admin)

	req, rec := newAuthRequest(http.MethodGet, "/v1/reports/compare?mode=companies&a=Mega-Trans&b=Budmax", adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
	}
	var cmp reports.CompanyComparison
	decodeJSON(t, rec, &cmp)
	if cmp.A.Company != "Mega-Trans" || cmp.B.Company != "Budmax" {
		t.Errorf("companies = %q, %q", cmp.A.Company, cmp.B.Company)
	}

	// period comparison is flagged as simulated
	req, rec = newAuthRequest(http.MethodGet, "/v1/reports/compare?mode=periods&company=Budmax&current=Q2&previous=Q1", adminToken)
	app.ServeHTTP(rec, req)
	var pcmp reports.PeriodComparison
	decodeJSON(t, rec, &pcmp)
	if !pcmp.Simulated {
		t.Error("period comparison not flagged simulated")
	}

	// guardians cannot compare companies
	req, rec = newAuthRequest(http.MethodGet, "/v1/reports/compare?mode=companies&a=Mega-Trans&b=Budmax", getToken(t, guardian))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("guardian companies mode code = %d, want 403", rec.Code)
	}

	// unknown mode is a validation error
	req, rec = newAuthRequest(http.MethodGet, "/v1/reports/compare?mode=cokolwiek", adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown mode code = %d, want 400", rec.Code)
	}
}

func TestImportUsers(t *testing.T) {
	raw := strings.Join([]string{
		"Imię;Nazwisko;Email",
		"Tadeusz;Norek;tadeusz.norek@import.pl",
		"Zofia;;zofia@import.pl",
	}, "\r\n")

	req, rec := newAuthRequest(http.MethodPost, "/v1/imports/users?company=Importex&course=bhp-okresowe",
		getToken(t, admin), []byte(raw))
	req.Header.Set("Content-Type", "text/csv")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body = %s", rec.Code, rec.Body.String())
	}

	var out bulkimport.Outcome
	decodeJSON(t, rec, &out)
	if out.Created != 1 {
		t.Errorf("Created = %d, want 1", out.Created)
	}
	if len(out.Skipped) != 1 || out.Skipped[0].Row != 3 {
		t.Errorf("Skipped = %+v, want the row without a name", out.Skipped)
	}

	usr, err := usrSvc.GetByUsernameOrEmail(req.Context(), "tadeusz.norek@import.pl")
	if err != nil {
		t.Fatalf("imported user not found: %v", err)
	}
	if !usr.IsStudent() || usr.Company != "Importex" {
		t.Errorf("imported user = %+v", usr)
	}

	// students cannot import
	req, rec = newAuthRequest(http.MethodPost, "/v1/imports/users", getToken(t, student), []byte(raw))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("student import code = %d, want 403", rec.Code)
	}

	// an unreadable (empty) file is an explicit 400
	req, rec = newAuthRequest(http.MethodPost, "/v1/imports/users", getToken(t, admin), []byte("   "))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty file code = %d, want 400", rec.Code)
	}
}
