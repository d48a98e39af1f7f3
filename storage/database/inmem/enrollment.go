package inmemdb

import (
	"context"

	"github.com/szkolix/backend/core/enrollment"
)

type enrollmentRepository struct {
	db *enrollmentTable
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db.enrollment}
}

func (repo *enrollmentRepository) QueryAllStudents(_ context.Context) ([]enrollment.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]enrollment.Student, len(repo.db.students))
	copy(students, repo.db.students)
	return students, nil
}

func (repo *enrollmentRepository) FilterStudents(_ context.Context, filter enrollment.QueryFilter) ([]enrollment.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var students []enrollment.Student
	for _, s := range repo.db.students {
		if filter.Match(s) {
			students = append(students, s)
		}
	}
	return students, nil
}
