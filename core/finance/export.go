package finance

import (
	"strconv"
	"time"

	"github.com/szkolix/backend/core/csvkit"
)

// CSV column headers are a frozen contract with spreadsheet consumers;
// do not reorder or rephrase.
var transactionColumns = []struct {
	label  string
	format func(tx Transaction) string
}{
	{"ID transakcji", func(tx Transaction) string { return tx.ID }},
	{"Data", func(tx Transaction) string { return tx.CreatedAt.Format("2006-01-02 15:04") }},
	{"Klient", func(tx Transaction) string { return tx.CustomerName }},
	{"Email", func(tx Transaction) string { return tx.CustomerEmail }},
	{"Firma", func(tx Transaction) string { return tx.CustomerCompany }},
	{"Kurs", func(tx Transaction) string { return tx.CourseTitle }},
	{"Kwota (PLN)", func(tx Transaction) string { return strconv.Itoa(tx.AmountPLN) }},
	{"Metoda", func(tx Transaction) string { return tx.Method }},
	{"Status", func(tx Transaction) string { return tx.Status }},
	{"Nr zamówienia", func(tx Transaction) string { return tx.OrderID }},
}

// TransactionsCSV renders the ledger in the export dialect (";", CRLF).
func TransactionsCSV(txs []Transaction) string {
	records := make([]csvkit.Record, 0, len(txs))
	for _, tx := range txs {
		rec := make(csvkit.Record, 0, len(transactionColumns))
		for _, col := range transactionColumns {
			rec = append(rec, csvkit.Field{Name: col.label, Value: col.format(tx)})
		}
		records = append(records, rec)
	}
	return csvkit.Marshal(records)
}

// CSVFilename follows the export naming convention, e.g. "transakcje-2025-01-01.csv".
func CSVFilename(date time.Time) string {
	return "transakcje-" + date.Format("2006-01-02") + ".csv"
}
