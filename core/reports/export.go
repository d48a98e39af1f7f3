package reports

import (
	"strconv"

	"github.com/szkolix/backend/core/csvkit"
)

// All column labels below are frozen contracts with spreadsheet consumers;
// do not reorder or rephrase. Each table is driven by a column-descriptor
// slice so the label order and the value formatting live in one place.

// ReportFilename follows the export naming convention,
// e.g. "raport-szkolenie-udt-operator.csv".
func ReportFilename(kind, dimension string) string {
	return "raport-" + kind + "-" + dimension + ".csv"
}

var individualColumns = []struct {
	label  string
	format func(rep IndividualReport, e EnrollmentLine) string
}{
	{"Email", func(rep IndividualReport, e EnrollmentLine) string { return rep.Email }},
	{"Imię i nazwisko", func(rep IndividualReport, e EnrollmentLine) string { return rep.Name }},
	{"Firma", func(rep IndividualReport, e EnrollmentLine) string { return rep.Company }},
	{"Kurs", func(rep IndividualReport, e EnrollmentLine) string { return e.CourseTitle }},
	{"Postęp (%)", func(rep IndividualReport, e EnrollmentLine) string { return strconv.Itoa(e.Progress) }},
	{"Status", func(rep IndividualReport, e EnrollmentLine) string { return e.Status }},
	{"Dni do wygaśnięcia", func(rep IndividualReport, e EnrollmentLine) string { return strconv.Itoa(e.ExpirationDays) }},
}

// IndividualCSV emits one row per enrollment.
func IndividualCSV(rep IndividualReport) string {
	records := make([]csvkit.Record, 0, len(rep.Enrollments))
	for _, e := range rep.Enrollments {
		rec := make(csvkit.Record, 0, len(individualColumns))
		for _, col := range individualColumns {
			rec = append(rec, csvkit.Field{Name: col.label, Value: col.format(rep, e)})
		}
		records = append(records, rec)
	}
	return csvkit.Marshal(records)
}

var groupColumns = []struct {
	label  string
	format func(rep GroupReport, u UserStat) string
}{
	{"Email", func(rep GroupReport, u UserStat) string { return u.Email }},
	{"Imię i nazwisko", func(rep GroupReport, u UserStat) string { return u.Name }},
	{"Firma", func(rep GroupReport, u UserStat) string { return rep.Company }},
	{"Liczba szkoleń", func(rep GroupReport, u UserStat) string { return strconv.Itoa(u.Enrollments) }},
	{"Średni postęp (%)", func(rep GroupReport, u UserStat) string { return formatFloat(u.AvgProgress) }},
	{"Ostatnia aktywność (dni)", func(rep GroupReport, u UserStat) string { return strconv.Itoa(u.LastActivityDays) }},
	{"Ryzyko", func(rep GroupReport, u UserStat) string { return u.Risk }},
	{"Czas nauki (min)", func(rep GroupReport, u UserStat) string { return strconv.Itoa(u.StudyMinutes) }},
}

// GroupCSV emits one row per learner.
func GroupCSV(rep GroupReport) string {
	records := make([]csvkit.Record, 0, len(rep.Users))
	for _, u := range rep.Users {
		rec := make(csvkit.Record, 0, len(groupColumns))
		for _, col := range groupColumns {
			rec = append(rec, csvkit.Field{Name: col.label, Value: col.format(rep, u)})
		}
		records = append(records, rec)
	}
	return csvkit.Marshal(records)
}

var courseColumns = []struct {
	label  string
	format func(rep CourseReport, l LessonStat) string
}{
	{"Kurs", func(rep CourseReport, l LessonStat) string { return rep.CourseTitle }},
	{"Moduł", func(rep CourseReport, l LessonStat) string { return l.ModuleTitle }},
	{"Lekcja", func(rep CourseReport, l LessonStat) string { return l.LessonTitle }},
	{"Typ", func(rep CourseReport, l LessonStat) string { return l.Type }},
	{"Ukończyło", func(rep CourseReport, l LessonStat) string { return strconv.Itoa(l.Completed) }},
	{"Wskaźnik ukończenia (%)", func(rep CourseReport, l LessonStat) string { return formatPercent(l.Rate) }},
}

// CourseCSV emits one row per lesson of the course's curriculum.
func CourseCSV(rep CourseReport) string {
	records := make([]csvkit.Record, 0, len(rep.Lessons))
	for _, l := range rep.Lessons {
		rec := make(csvkit.Record, 0, len(courseColumns))
		for _, col := range courseColumns {
			rec = append(rec, csvkit.Field{Name: col.label, Value: col.format(rep, l)})
		}
		records = append(records, rec)
	}
	return csvkit.Marshal(records)
}

// The comparison CSVs are metric-per-row pivots rather than row tables,
// so they assemble their three fixed rows directly.

// CompanyComparisonCSV emits one row per compared metric.
func CompanyComparisonCSV(cmp CompanyComparison) string {
	return csvkit.Marshal([]csvkit.Record{
		metricRow("Liczba użytkowników", strconv.Itoa(cmp.A.UserCount), strconv.Itoa(cmp.B.UserCount), strconv.Itoa(cmp.Delta.UserCount)),
		metricRow("Średni postęp (%)", formatFloat(cmp.A.AvgProgress), formatFloat(cmp.B.AvgProgress), formatFloat(cmp.Delta.AvgProgress)),
		metricRow("Wskaźnik ukończenia (%)", formatPercent(cmp.A.CompletionRate), formatPercent(cmp.B.CompletionRate), formatPercent(cmp.Delta.CompletionRate)),
	})
}

// PeriodComparisonCSV emits one row per compared metric. The data is
// simulated (see PeriodComparison) and the header says so.
func PeriodComparisonCSV(cmp PeriodComparison) string {
	row := func(metric, cur, prev string) csvkit.Record {
		return csvkit.Record{
			{Name: "Wskaźnik (symulacja)", Value: metric},
			{Name: cmp.Current.Label, Value: cur},
			{Name: cmp.Previous.Label, Value: prev},
		}
	}
	return csvkit.Marshal([]csvkit.Record{
		row("Średni postęp (%)", formatFloat(cmp.Current.AvgProgress), formatFloat(cmp.Previous.AvgProgress)),
		row("Wskaźnik ukończenia (%)", formatPercent(cmp.Current.CompletionRate), formatPercent(cmp.Previous.CompletionRate)),
		row("Czas nauki (min)", strconv.Itoa(cmp.Current.StudyMinutes), strconv.Itoa(cmp.Previous.StudyMinutes)),
	})
}

// CourseComparisonCSV emits one row per compared metric.
func CourseComparisonCSV(cmp CourseComparison) string {
	return csvkit.Marshal([]csvkit.Record{
		metricRow("Liczba zapisów", strconv.Itoa(cmp.A.Enrollments), strconv.Itoa(cmp.B.Enrollments), strconv.Itoa(cmp.Delta.UserCount)),
		metricRow("Średni postęp (%)", formatFloat(cmp.A.AvgProgress), formatFloat(cmp.B.AvgProgress), formatFloat(cmp.Delta.AvgProgress)),
		metricRow("Wskaźnik ukończenia (%)", formatPercent(cmp.A.CompletionRate), formatPercent(cmp.B.CompletionRate), formatPercent(cmp.Delta.CompletionRate)),
	})
}

func metricRow(metric, a, b, delta string) csvkit.Record {
	return csvkit.Record{
		{Name: "Wskaźnik", Value: metric},
		{Name: "A", Value: a},
		{Name: "B", Value: b},
		{Name: "Różnica", Value: delta},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatPercent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', 1, 64)
}
