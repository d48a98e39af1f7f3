package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("course not found")

// Course categories
const (
	CategoryUDT  = "UDT"
	CategorySEP  = "SEP"
	CategoryBHP  = "BHP"
	CategoryInne = "Inne"
)

// Lesson types
const (
	LessonVideo = "video"
	LessonTest  = "test"
	LessonText  = "text"
)

type (
	// Course is a catalog entry. Price carries the decorated display string
	// ("1 200 zł"); use ParsePrice for the amount.
	Course struct {
		ID          string `json:"id" db:"id"`
		Title       string `json:"title" db:"title"`
		Category    string `json:"category" db:"category"`
		Duration    string `json:"duration" db:"duration"`
		Price       string `json:"price" db:"price"`
		PromoPrice  string `json:"promo_price,omitempty" db:"promo_price"`
		Description string `json:"description,omitempty" db:"description"`
	}

	Lesson struct {
		ID    string `json:"id" db:"id"`
		Title string `json:"title" db:"title"`
		Type  string `json:"type" db:"type"`
	}

	// CourseModule is one node of a course's curriculum tree.
	CourseModule struct {
		ID       string   `json:"id" db:"id"`
		CourseID string   `json:"course_id" db:"course_id"`
		Title    string   `json:"title" db:"title"`
		Lessons  []Lesson `json:"lessons"`
	}

	Repository interface {
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		QueryAllModules(ctx context.Context) ([]CourseModule, error)
		QueryModulesByCourse(ctx context.Context, courseID string) ([]CourseModule, error)
	}
)

// AmountPLN returns the course's integer price, preferring the promo price
// when one is set.
func (c Course) AmountPLN() int {
	if c.PromoPrice != "" {
		return ParsePrice(c.PromoPrice)
	}
	return ParsePrice(c.Price)
}

// ParsePrice strips every non-digit rune from a decorated price string and
// parses the rest as integer PLN: ParsePrice("1 200 zł") == 1200,
// ParsePrice("") == 0. Anything non-numeric is silently dropped.
func ParsePrice(s string) int {
	var n int
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

// ModulesFor filters modules down to one course, preserving curriculum order.
func ModulesFor(modules []CourseModule, courseID string) []CourseModule {
	var out []CourseModule
	for _, m := range modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out
}
