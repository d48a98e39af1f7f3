package reports

import (
	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
)

// testPassScore is the synthetic passing threshold for test lessons.
const testPassScore = 70

type (
	CourseFilter struct {
		CourseID   string `query:"course"`
		Company    string `query:"company"`
		Department string `query:"department"`
	}

	LessonStat struct {
		LessonID    string  `json:"lesson_id"`
		LessonTitle string  `json:"lesson_title"`
		ModuleTitle string  `json:"module_title"`
		Type        string  `json:"type"`
		Completed   int     `json:"completed"`
		Rate        float64 `json:"rate"`
	}

	CourseReport struct {
		CourseID       string       `json:"course_id"`
		CourseTitle    string       `json:"course_title"`
		Company        string       `json:"company,omitempty"`
		Department     string       `json:"department,omitempty"`
		Enrollments    int          `json:"enrollments"`
		AvgProgress    float64      `json:"avg_progress"`
		CompletionRate float64      `json:"completion_rate"`
		Lessons        []LessonStat `json:"lessons"`
		WorstLesson    *LessonStat  `json:"worst_lesson,omitempty"`
		BestLesson     *LessonStat  `json:"best_lesson,omitempty"`
		TestPassRate   float64      `json:"test_pass_rate"`
	}
)

// Course reports completion and per-lesson drop-off for one course,
// optionally faceted by company and synthetic department. An unknown course
// selection falls back to the first course in the catalog.
func (a *Aggregator) Course(
	courses []catalog.Course,
	modules []catalog.CourseModule,
	students []enrollment.Student,
	filter CourseFilter,
) CourseReport {
	course, ok := resolveCourse(courses, filter.CourseID)
	if !ok {
		return CourseReport{CourseID: filter.CourseID}
	}

	rep := CourseReport{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Company:     filter.Company,
		Department:  filter.Department,
	}

	var rows []enrollment.Student
	for _, s := range students {
		if s.Course != course.ID {
			continue
		}
		if filter.Company != "" && s.Company != filter.Company {
			continue
		}
		if filter.Department != "" && a.metrics.Department(s.Email) != filter.Department {
			continue
		}
		rows = append(rows, s)
	}

	rep.Enrollments = len(rows)
	rep.AvgProgress = avgProgress(rows)
	rep.CompletionRate = completionRate(rows)

	// lesson drop-off over the curriculum tree, in curriculum order
	for _, mod := range catalog.ModulesFor(modules, course.ID) {
		for _, lesson := range mod.Lessons {
			var completed int
			for _, s := range rows {
				if s.HasCompleted(lesson.ID) {
					completed++
				}
			}
			stat := LessonStat{
				LessonID:    lesson.ID,
				LessonTitle: lesson.Title,
				ModuleTitle: mod.Title,
				Type:        lesson.Type,
				Completed:   completed,
			}
			if len(rows) > 0 {
				stat.Rate = float64(completed) / float64(len(rows))
			}
			rep.Lessons = append(rep.Lessons, stat)
		}
	}

	// ties resolve to the first lesson in curriculum order
	for i := range rep.Lessons {
		stat := &rep.Lessons[i]
		if rep.BestLesson == nil || stat.Rate > rep.BestLesson.Rate {
			rep.BestLesson = stat
		}
		if rep.WorstLesson == nil || stat.Rate < rep.WorstLesson.Rate {
			rep.WorstLesson = stat
		}
	}

	// synthetic pass rate over distinct learners
	emails, _ := enrollment.GroupByEmail(rows)
	if len(emails) > 0 {
		var passed int
		for _, email := range emails {
			if a.metrics.TestScore(email) >= testPassScore {
				passed++
			}
		}
		rep.TestPassRate = float64(passed) / float64(len(emails))
	}
	return rep
}

// resolveCourse keeps a known selection, otherwise degrades to the first
// course in the catalog.
func resolveCourse(courses []catalog.Course, courseID string) (catalog.Course, bool) {
	if len(courses) == 0 {
		return catalog.Course{}, false
	}
	for _, c := range courses {
		if c.ID == courseID {
			return c, true
		}
	}
	return courses[0], true
}
