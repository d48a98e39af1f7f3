package inmemdb

import (
	"context"

	"github.com/szkolix/backend/core/catalog"
)

type catalogRepository struct {
	db *catalogTable
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{db: db.catalog}
}

func (repo *catalogRepository) QueryAllCourses(_ context.Context) ([]catalog.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]catalog.Course, len(repo.db.courses))
	copy(courses, repo.db.courses)
	return courses, nil
}

func (repo *catalogRepository) GetCourseByID(_ context.Context, id string) (catalog.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, course := range repo.db.courses {
		if course.ID == id {
			return course, nil
		}
	}
	return catalog.Course{}, catalog.ErrNotFound
}

func (repo *catalogRepository) QueryAllModules(_ context.Context) ([]catalog.CourseModule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	modules := make([]catalog.CourseModule, len(repo.db.modules))
	copy(modules, repo.db.modules)
	return modules, nil
}

func (repo *catalogRepository) QueryModulesByCourse(_ context.Context, courseID string) ([]catalog.CourseModule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return catalog.ModulesFor(repo.db.modules, courseID), nil
}
