package reports

import (
	"strings"
	"testing"

	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/synthetic"
)

// stubMetrics pins the synthesized metrics so classification and ranking
// assertions are exact.
type stubMetrics struct {
	lastDays map[string]int
	minutes  map[string]int
	scores   map[string]int
	depts    map[string]string
}

func (m stubMetrics) LastActivityDays(email string) int { return m.lastDays[email] }
func (m stubMetrics) StudyMinutes(email string) int     { return m.minutes[email] }
func (m stubMetrics) Sessions(email string) int         { return 3 }
func (m stubMetrics) TestScore(email string) int        { return m.scores[email] }
func (m stubMetrics) Department(email string) string {
	if d, ok := m.depts[email]; ok {
		return d
	}
	return synthetic.Departments[0]
}

var (
	testCourses = []catalog.Course{
		{ID: "wozki", Title: "Wózki widłowe", Price: "1 200 zł"},
		{ID: "sep", Title: "SEP do 1 kV", Price: "650 zł"},
	}

	testModules = []catalog.CourseModule{
		{ID: "m1", CourseID: "wozki", Title: "Moduł 1", Lessons: []catalog.Lesson{
			{ID: "l1", Title: "Lekcja 1", Type: catalog.LessonVideo},
			{ID: "l2", Title: "Lekcja 2", Type: catalog.LessonVideo},
			{ID: "l3", Title: "Test", Type: catalog.LessonTest},
		}},
	}

	testStudents = []enrollment.Student{
		{ID: "s-1", Name: "Jan Kowalski", Email: "jan@alfa.pl", Company: "Alfa", Course: "wozki",
			Progress: 100, Status: enrollment.StatusActive, CompletedLessons: []string{"l1", "l2", "l3"}},
		{ID: "s-2", Name: "Jan Kowalski", Email: "jan@alfa.pl", Company: "Alfa", Course: "sep",
			Progress: 50, Status: enrollment.StatusActive},
		{ID: "s-3", Name: "Anna Nowak", Email: "anna@alfa.pl", Company: "Alfa", Course: "wozki",
			Progress: 50, Status: enrollment.StatusWarning, CompletedLessons: []string{"l1"}},
		{ID: "s-4", Name: "Piotr Wiśniewski", Email: "piotr@beta.pl", Company: "Beta", Course: "wozki",
			Progress: 20, Status: enrollment.StatusActive, CompletedLessons: []string{"l1"}},
	}
)

func newTestAggregator() *Aggregator {
	return NewAggregator(stubMetrics{
		lastDays: map[string]int{"jan@alfa.pl": 2, "anna@alfa.pl": 16, "piotr@beta.pl": 9},
		minutes:  map[string]int{"jan@alfa.pl": 300, "anna@alfa.pl": 500, "piotr@beta.pl": 100},
		scores:   map[string]int{"jan@alfa.pl": 90, "anna@alfa.pl": 60, "piotr@beta.pl": 70},
	})
}

func TestRiskLabel(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{days: 0, want: RiskActive},
		{days: 7, want: RiskActive},
		{days: 8, want: RiskAttention},
		{days: 14, want: RiskAttention},
		{days: 15, want: RiskAtRisk},
		{days: 29, want: RiskAtRisk},
	}
	for _, tt := range tests {
		if got := RiskLabel(tt.days); got != tt.want {
			t.Errorf("RiskLabel(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestIndividual(t *testing.T) {
	agg := newTestAggregator()

	rep := agg.Individual(testCourses, testStudents, "jan@alfa.pl")
	if rep.Name != "Jan Kowalski" || rep.Company != "Alfa" {
		t.Errorf("report = %+v", rep)
	}
	if len(rep.Enrollments) != 2 {
		t.Fatalf("enrollments = %d, want 2", len(rep.Enrollments))
	}
	if rep.AvgProgress != 75 {
		t.Errorf("AvgProgress = %f, want 75", rep.AvgProgress)
	}
	if rep.Enrollments[0].CourseTitle != "Wózki widłowe" {
		t.Errorf("course title not resolved: %+v", rep.Enrollments[0])
	}
	if rep.StudyMinutes != 300 || rep.Sessions != 3 {
		t.Errorf("metrics = %+v", rep)
	}
}

func TestIndividualFallbacks(t *testing.T) {
	agg := newTestAggregator()

	// unknown email degrades to the first learner
	rep := agg.Individual(testCourses, testStudents, "nieznany@nigdzie.pl")
	if rep.Email != "jan@alfa.pl" {
		t.Errorf("fallback email = %q, want first learner", rep.Email)
	}

	// empty snapshot yields a zero report
	rep = agg.Individual(testCourses, nil, "ktos@nigdzie.pl")
	if rep.AvgProgress != 0 || rep.Enrollments != nil {
		t.Errorf("empty snapshot report = %+v, want zeroes", rep)
	}
}

func TestGroup(t *testing.T) {
	agg := newTestAggregator()

	rep := agg.Group(testCourses, testStudents, "Alfa")
	if rep.Company != "Alfa" {
		t.Fatalf("Company = %q", rep.Company)
	}
	if rep.UserCount != 2 || rep.EnrollmentCount != 3 {
		t.Errorf("counts = (%d users, %d enrollments), want (2, 3)", rep.UserCount, rep.EnrollmentCount)
	}
	if want := float64(100+50+50) / 3; rep.AvgProgress != want {
		t.Errorf("AvgProgress = %f, want %f", rep.AvgProgress, want)
	}
	if want := 1.0 / 3; rep.CompletionRate != want {
		t.Errorf("CompletionRate = %f, want %f", rep.CompletionRate, want)
	}

	// risk comes from last activity
	if rep.Users[0].Risk != RiskActive || rep.Users[1].Risk != RiskAtRisk {
		t.Errorf("risks = %q, %q", rep.Users[0].Risk, rep.Users[1].Risk)
	}
	if len(rep.AtRisk) != 1 || rep.AtRisk[0].Email != "anna@alfa.pl" {
		t.Errorf("AtRisk = %+v", rep.AtRisk)
	}

	// top active ranks by study minutes, descending
	if len(rep.TopActive) != 2 || rep.TopActive[0].Email != "anna@alfa.pl" {
		t.Errorf("TopActive = %+v", rep.TopActive)
	}
}

func TestGroupFallbacks(t *testing.T) {
	agg := newTestAggregator()

	// unknown company degrades to the first one in the snapshot
	rep := agg.Group(testCourses, testStudents, "Nieznana")
	if rep.Company != "Alfa" {
		t.Errorf("fallback company = %q, want Alfa", rep.Company)
	}

	// empty snapshot yields a zero report
	rep = agg.Group(testCourses, nil, "Alfa")
	if rep.Company != "" || rep.UserCount != 0 || rep.CompletionRate != 0 {
		t.Errorf("empty snapshot report = %+v, want zeroes", rep)
	}
}

func TestCourse(t *testing.T) {
	agg := newTestAggregator()

	rep := agg.Course(testCourses, testModules, testStudents, CourseFilter{CourseID: "wozki"})
	if rep.CourseTitle != "Wózki widłowe" || rep.Enrollments != 3 {
		t.Fatalf("report = %+v", rep)
	}

	if len(rep.Lessons) != 3 {
		t.Fatalf("lessons = %d, want 3", len(rep.Lessons))
	}
	// l1 completed by all three, l2 and l3 by one
	if rep.Lessons[0].Completed != 3 || rep.Lessons[1].Completed != 1 || rep.Lessons[2].Completed != 1 {
		t.Errorf("completions = %+v", rep.Lessons)
	}
	if rep.BestLesson == nil || rep.BestLesson.LessonID != "l1" {
		t.Errorf("BestLesson = %+v", rep.BestLesson)
	}
	// l2 and l3 tie at the bottom; first in curriculum order wins
	if rep.WorstLesson == nil || rep.WorstLesson.LessonID != "l2" {
		t.Errorf("WorstLesson = %+v", rep.WorstLesson)
	}

	// jan (90) and piotr (70) pass, anna (60) fails
	if want := 2.0 / 3; rep.TestPassRate != want {
		t.Errorf("TestPassRate = %f, want %f", rep.TestPassRate, want)
	}
}

func TestCourseFacets(t *testing.T) {
	agg := newTestAggregator()

	rep := agg.Course(testCourses, testModules, testStudents, CourseFilter{CourseID: "wozki", Company: "Beta"})
	if rep.Enrollments != 1 {
		t.Errorf("Beta enrollments = %d, want 1", rep.Enrollments)
	}

	// unknown course falls back to the first catalog entry
	rep = agg.Course(testCourses, testModules, testStudents, CourseFilter{CourseID: "zaden"})
	if rep.CourseID != "wozki" {
		t.Errorf("fallback course = %q, want wozki", rep.CourseID)
	}

	// empty catalog yields a zero report, not a crash
	rep = agg.Course(nil, nil, testStudents, CourseFilter{CourseID: "wozki"})
	if rep.Enrollments != 0 || rep.CompletionRate != 0 {
		t.Errorf("empty catalog report = %+v, want zeroes", rep)
	}
}

func TestCompareCompanies(t *testing.T) {
	agg := newTestAggregator()

	cmp := agg.CompareCompanies(testCourses, testStudents, "Alfa", "Beta")
	if cmp.A.Company != "Alfa" || cmp.B.Company != "Beta" {
		t.Fatalf("companies = %q, %q", cmp.A.Company, cmp.B.Company)
	}
	if cmp.Delta.UserCount != 1 {
		t.Errorf("Delta.UserCount = %d, want 1", cmp.Delta.UserCount)
	}
	if got := cmp.A.AvgProgress - cmp.B.AvgProgress; cmp.Delta.AvgProgress != got {
		t.Errorf("Delta.AvgProgress = %f, want %f", cmp.Delta.AvgProgress, got)
	}
}

func TestComparePeriods(t *testing.T) {
	agg := newTestAggregator()

	cmp := agg.ComparePeriods(testCourses, testStudents, "Alfa", "2024-Q2", "2024-Q1")
	if !cmp.Simulated {
		t.Error("Simulated = false; period comparison must be labeled simulated")
	}
	if cmp.Current.Label != "2024-Q2" || cmp.Previous.Label != "2024-Q1" {
		t.Errorf("labels = %q, %q", cmp.Current.Label, cmp.Previous.Label)
	}

	// scaled values stay in range and are reproducible
	for _, snap := range []PeriodSnapshot{cmp.Current, cmp.Previous} {
		if snap.AvgProgress < 0 || snap.AvgProgress > 100 {
			t.Errorf("AvgProgress = %f out of range", snap.AvgProgress)
		}
		if snap.CompletionRate < 0 || snap.CompletionRate > 1 {
			t.Errorf("CompletionRate = %f out of range", snap.CompletionRate)
		}
	}
	again := agg.ComparePeriods(testCourses, testStudents, "Alfa", "2024-Q2", "2024-Q1")
	if again.Current != cmp.Current || again.Previous != cmp.Previous {
		t.Error("period comparison not reproducible")
	}
}

func TestCompareCourses(t *testing.T) {
	agg := newTestAggregator()

	cmp := agg.CompareCourses(testCourses, testModules, testStudents, "wozki", "sep")
	if cmp.A.CourseID != "wozki" || cmp.B.CourseID != "sep" {
		t.Fatalf("courses = %q, %q", cmp.A.CourseID, cmp.B.CourseID)
	}
	if cmp.Delta.UserCount != 2 { // 3 vs 1 enrollments
		t.Errorf("Delta.UserCount = %d, want 2", cmp.Delta.UserCount)
	}
}

func TestReportCSVExports(t *testing.T) {
	agg := newTestAggregator()

	group := GroupCSV(agg.Group(testCourses, testStudents, "Alfa"))
	if !strings.Contains(group, "\r\n") || !strings.Contains(group, "jan@alfa.pl") {
		t.Errorf("group CSV = %q", group)
	}

	period := PeriodComparisonCSV(agg.ComparePeriods(testCourses, testStudents, "Alfa", "Q2", "Q1"))
	if !strings.Contains(period, "symulacja") {
		t.Error("period CSV does not flag the simulation")
	}

	if got, want := ReportFilename("szkolenie", "wozki"), "raport-szkolenie-wozki.csv"; got != want {
		t.Errorf("ReportFilename() = %q, want %q", got, want)
	}
}
