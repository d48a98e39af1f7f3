package reports

import (
	"sort"

	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
)

type (
	UserStat struct {
		Email            string  `json:"email"`
		Name             string  `json:"name"`
		Enrollments      int     `json:"enrollments"`
		AvgProgress      float64 `json:"avg_progress"`
		LastActivityDays int     `json:"last_activity_days"`
		Risk             string  `json:"risk"`
		StudyMinutes     int     `json:"study_minutes"`
	}

	GroupReport struct {
		Company         string     `json:"company"`
		Users           []UserStat `json:"users"`
		UserCount       int        `json:"user_count"`
		EnrollmentCount int        `json:"enrollment_count"`
		AvgProgress     float64    `json:"avg_progress"`
		CompletionRate  float64    `json:"completion_rate"`
		TopActive       []UserStat `json:"top_active"`
		AtRisk          []UserStat `json:"at_risk"`
	}
)

// Group reports on one company's learners. An unknown or empty company
// selection falls back to the first company present in the snapshot.
func (a *Aggregator) Group(courses []catalog.Course, students []enrollment.Student, company string) GroupReport {
	company = resolveCompany(students, company)
	rep := GroupReport{Company: company}
	if company == "" {
		return rep
	}

	var scoped []enrollment.Student
	for _, s := range students {
		if s.Company == company {
			scoped = append(scoped, s)
		}
	}

	emails, groups := enrollment.GroupByEmail(scoped)
	for _, email := range emails {
		rows := groups[email]
		days := a.metrics.LastActivityDays(email)
		rep.Users = append(rep.Users, UserStat{
			Email:            email,
			Name:             rows[0].Name,
			Enrollments:      len(rows),
			AvgProgress:      avgProgress(rows),
			LastActivityDays: days,
			Risk:             RiskLabel(days),
			StudyMinutes:     a.metrics.StudyMinutes(email),
		})
	}

	rep.UserCount = len(rep.Users)
	rep.EnrollmentCount = len(scoped)
	rep.AvgProgress = avgProgress(scoped)
	rep.CompletionRate = completionRate(scoped)

	// most active, by synthesized study time
	top := append([]UserStat{}, rep.Users...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].StudyMinutes > top[j].StudyMinutes })
	if len(top) > topActiveLimit {
		top = top[:topActiveLimit]
	}
	rep.TopActive = top

	for _, u := range rep.Users {
		if u.LastActivityDays > riskAtRiskDays {
			rep.AtRisk = append(rep.AtRisk, u)
		}
	}
	return rep
}

// resolveCompany keeps a known selection, otherwise degrades to the first
// company in the snapshot ("" when there is none).
func resolveCompany(students []enrollment.Student, company string) string {
	companies := enrollment.Companies(students)
	if len(companies) == 0 {
		return ""
	}
	for _, c := range companies {
		if c == company {
			return company
		}
	}
	return companies[0]
}
