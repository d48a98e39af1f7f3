package enrollment

import "context"

// Enrollment access states
const (
	StatusActive  = "active"
	StatusWarning = "warning"
	StatusExpired = "expired"
)

type (
	// Student is one enrollment row: one learner on one course. A learner
	// (identified by email) has one row per enrolled course, so user-level
	// aggregations must group by email to avoid double counting.
	Student struct {
		ID               string   `json:"id" db:"id"`
		Name             string   `json:"name" db:"name"`
		Email            string   `json:"email" db:"email"`
		Company          string   `json:"company,omitempty" db:"company"`
		Course           string   `json:"course" db:"course_id"`
		Progress         int      `json:"progress" db:"progress"`
		ExpirationDays   int      `json:"expiration_days" db:"expiration_days"`
		Status           string   `json:"status" db:"status"`
		CompletedLessons []string `json:"completed_lessons"`
	}

	QueryFilter struct {
		Company string `query:"company"`
		Course  string `query:"course"`
		Email   string `query:"email"`
	}

	Repository interface {
		QueryAllStudents(ctx context.Context) ([]Student, error)
		// FilterStudents applies AND on the non-empty QueryFilter fields.
		FilterStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
	}
)

func (s Student) HasCompleted(lessonID string) bool {
	for _, id := range s.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}

func (qf QueryFilter) IsEmpty() bool {
	return qf.Company == "" && qf.Course == "" && qf.Email == ""
}

func (qf QueryFilter) Match(s Student) bool {
	if qf.Company != "" && s.Company != qf.Company {
		return false
	}
	if qf.Course != "" && s.Course != qf.Course {
		return false
	}
	if qf.Email != "" && s.Email != qf.Email {
		return false
	}
	return true
}

// GroupByEmail buckets enrollment rows per learner. The returned keys
// preserve first-occurrence order so downstream output stays reproducible.
func GroupByEmail(students []Student) (keys []string, groups map[string][]Student) {
	groups = make(map[string][]Student, len(students))
	for _, s := range students {
		if _, ok := groups[s.Email]; !ok {
			keys = append(keys, s.Email)
		}
		groups[s.Email] = append(groups[s.Email], s)
	}
	return keys, groups
}

// Companies lists distinct non-empty companies in first-occurrence order.
func Companies(students []Student) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range students {
		if s.Company != "" && !seen[s.Company] {
			seen[s.Company] = true
			out = append(out, s.Company)
		}
	}
	return out
}
