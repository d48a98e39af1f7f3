package reports

import (
	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/synthetic"
)

type (
	// MetricDelta values are A minus B.
	MetricDelta struct {
		AvgProgress    float64 `json:"avg_progress"`
		CompletionRate float64 `json:"completion_rate"`
		UserCount      int     `json:"user_count"`
	}

	CompanyComparison struct {
		A     GroupReport `json:"a"`
		B     GroupReport `json:"b"`
		Delta MetricDelta `json:"delta"`
	}

	PeriodSnapshot struct {
		Label          string  `json:"label"`
		AvgProgress    float64 `json:"avg_progress"`
		CompletionRate float64 `json:"completion_rate"`
		StudyMinutes   int     `json:"study_minutes"`
	}

	// PeriodComparison is explicitly simulated: both snapshots are the same
	// base report scaled by stable pseudo-random factors, not historical
	// data. Simulated is always true so consumers cannot mistake it for a
	// real trend.
	PeriodComparison struct {
		Company   string         `json:"company"`
		Simulated bool           `json:"simulated"`
		Current   PeriodSnapshot `json:"current"`
		Previous  PeriodSnapshot `json:"previous"`
	}

	CourseComparison struct {
		A     CourseReport `json:"a"`
		B     CourseReport `json:"b"`
		Delta MetricDelta  `json:"delta"`
	}
)

// CompareCompanies computes the Group metric set for both companies and diffs it.
func (a *Aggregator) CompareCompanies(courses []catalog.Course, students []enrollment.Student, companyA, companyB string) CompanyComparison {
	repA := a.Group(courses, students, companyA)
	repB := a.Group(courses, students, companyB)
	return CompanyComparison{
		A: repA,
		B: repB,
		Delta: MetricDelta{
			AvgProgress:    repA.AvgProgress - repB.AvgProgress,
			CompletionRate: repA.CompletionRate - repB.CompletionRate,
			UserCount:      repA.UserCount - repB.UserCount,
		},
	}
}

// ComparePeriods scales one base snapshot of a company by two seed-stable
// factors in [0.8, 1.2). There is no historical data behind this; see
// PeriodComparison.
func (a *Aggregator) ComparePeriods(courses []catalog.Course, students []enrollment.Student, company, currentLabel, previousLabel string) PeriodComparison {
	base := a.Group(courses, students, company)

	var minutes int
	for _, u := range base.Users {
		minutes += u.StudyMinutes
	}

	return PeriodComparison{
		Company:   base.Company,
		Simulated: true,
		Current:   scaleSnapshot(base, minutes, currentLabel),
		Previous:  scaleSnapshot(base, minutes, previousLabel),
	}
}

func scaleSnapshot(base GroupReport, studyMinutes int, label string) PeriodSnapshot {
	factor := 0.8 + synthetic.StableRandom(base.Company+"-"+label)*0.4

	avg := base.AvgProgress * factor
	if avg > 100 {
		avg = 100
	}
	rate := base.CompletionRate * factor
	if rate > 1 {
		rate = 1
	}
	return PeriodSnapshot{
		Label:          label,
		AvgProgress:    avg,
		CompletionRate: rate,
		StudyMinutes:   int(float64(studyMinutes) * factor),
	}
}

// CompareCourses computes the Course metric set for both courses and diffs it.
func (a *Aggregator) CompareCourses(courses []catalog.Course, modules []catalog.CourseModule, students []enrollment.Student, courseA, courseB string) CourseComparison {
	repA := a.Course(courses, modules, students, CourseFilter{CourseID: courseA})
	repB := a.Course(courses, modules, students, CourseFilter{CourseID: courseB})
	return CourseComparison{
		A: repA,
		B: repB,
		Delta: MetricDelta{
			AvgProgress:    repA.AvgProgress - repB.AvgProgress,
			CompletionRate: repA.CompletionRate - repB.CompletionRate,
			UserCount:      repA.Enrollments - repB.Enrollments,
		},
	}
}
