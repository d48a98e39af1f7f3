package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/szkolix/backend/core/catalog"
)

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *sql.DB) catalog.Repository {
	return &catalogRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo *catalogRepository) QueryAllCourses(ctx context.Context) ([]catalog.Course, error) {
	const query = `
		SELECT id, title, category, duration, price, promo_price, description
		FROM course ORDER BY title`

	var courses []catalog.Course
	if err := repo.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return courses, nil
}

func (repo *catalogRepository) GetCourseByID(ctx context.Context, id string) (catalog.Course, error) {
	const query = `
		SELECT id, title, category, duration, price, promo_price, description
		FROM course WHERE id = $1`

	var course catalog.Course
	if err := repo.db.GetContext(ctx, &course, query, id); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Course{}, catalog.ErrNotFound
		}
		return catalog.Course{}, errors.Wrap(err, "querying course by id")
	}
	return course, nil
}

func (repo *catalogRepository) QueryAllModules(ctx context.Context) ([]catalog.CourseModule, error) {
	return repo.queryModules(ctx, `
		SELECT id, course_id, position, title FROM course_module
		ORDER BY course_id, position`)
}

func (repo *catalogRepository) QueryModulesByCourse(ctx context.Context, courseID string) ([]catalog.CourseModule, error) {
	return repo.queryModules(ctx, `
		SELECT id, course_id, position, title FROM course_module
		WHERE course_id = $1 ORDER BY position`, courseID)
}

func (repo *catalogRepository) queryModules(ctx context.Context, query string, args ...interface{}) ([]catalog.CourseModule, error) {
	type moduleRow struct {
		catalog.CourseModule
		Position int `db:"position"`
	}

	var rows []moduleRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying course modules")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	modules := make([]catalog.CourseModule, len(rows))
	index := make(map[string]*catalog.CourseModule, len(rows))
	ids := make([]string, len(rows))
	for i, row := range rows {
		modules[i] = row.CourseModule
		index[row.ID] = &modules[i]
		ids[i] = row.ID
	}

	if err := repo.attachLessons(ctx, ids, index); err != nil {
		return nil, err
	}
	return modules, nil
}

func (repo *catalogRepository) attachLessons(ctx context.Context, moduleIDs []string, index map[string]*catalog.CourseModule) error {
	query, args, err := sqlx.In(`
		SELECT id, module_id, title, type FROM lesson
		WHERE module_id IN (?) ORDER BY module_id, position`, moduleIDs)
	if err != nil {
		return errors.Wrap(err, "building lesson query")
	}

	type lessonRow struct {
		catalog.Lesson
		ModuleID string `db:"module_id"`
	}
	var rows []lessonRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "querying lessons")
	}

	for _, row := range rows {
		if mod, ok := index[row.ModuleID]; ok {
			mod.Lessons = append(mod.Lessons, row.Lesson)
		}
	}
	return nil
}
