package reports

import (
	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
)

type (
	EnrollmentLine struct {
		CourseID       string `json:"course_id"`
		CourseTitle    string `json:"course_title"`
		Progress       int    `json:"progress"`
		Status         string `json:"status"`
		ExpirationDays int    `json:"expiration_days"`
	}

	IndividualReport struct {
		Email        string           `json:"email"`
		Name         string           `json:"name"`
		Company      string           `json:"company,omitempty"`
		Enrollments  []EnrollmentLine `json:"enrollments"`
		AvgProgress  float64          `json:"avg_progress"`
		Sessions     int              `json:"sessions"`
		StudyMinutes int              `json:"study_minutes"`
		TestScore    int              `json:"test_score"`
	}
)

// Individual reports on one learner across all their enrollments. An email
// not present in the snapshot falls back to the first learner; an empty
// snapshot yields a zero report.
func (a *Aggregator) Individual(courses []catalog.Course, students []enrollment.Student, email string) IndividualReport {
	emails, groups := enrollment.GroupByEmail(students)
	if len(emails) == 0 {
		return IndividualReport{Email: email}
	}
	rows, ok := groups[email]
	if !ok {
		email = emails[0]
		rows = groups[email]
	}

	titles := make(map[string]string, len(courses))
	for _, c := range courses {
		titles[c.ID] = c.Title
	}

	rep := IndividualReport{
		Email:        email,
		Name:         rows[0].Name,
		Company:      rows[0].Company,
		AvgProgress:  avgProgress(rows),
		Sessions:     a.metrics.Sessions(email),
		StudyMinutes: a.metrics.StudyMinutes(email),
		TestScore:    a.metrics.TestScore(email),
	}
	for _, s := range rows {
		rep.Enrollments = append(rep.Enrollments, EnrollmentLine{
			CourseID:       s.Course,
			CourseTitle:    titles[s.Course],
			Progress:       s.Progress,
			Status:         s.Status,
			ExpirationDays: s.ExpirationDays,
		})
	}
	return rep
}
