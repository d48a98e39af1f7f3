package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/szkolix/backend/core/enrollment"
)

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(db *sql.DB) enrollment.Repository {
	return &enrollmentRepository{db: sqlx.NewDb(db, "postgres")}
}

type studentRow struct {
	enrollment.Student
	CompletedLessons pq.StringArray `db:"completed_lessons"`
}

func (r studentRow) toStudent() enrollment.Student {
	s := r.Student
	s.CompletedLessons = []string(r.CompletedLessons)
	return s
}

const studentColumns = `id, name, email, company, course_id, progress, expiration_days, status, completed_lessons`

func (repo *enrollmentRepository) QueryAllStudents(ctx context.Context) ([]enrollment.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM student ORDER BY id`
	return repo.selectStudents(ctx, query)
}

func (repo *enrollmentRepository) FilterStudents(ctx context.Context, filter enrollment.QueryFilter) ([]enrollment.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM student WHERE 1=1`
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Company != "" {
		query += ` AND company = ` + arg(filter.Company)
	}
	if filter.Course != "" {
		query += ` AND course_id = ` + arg(filter.Course)
	}
	if filter.Email != "" {
		query += ` AND email = ` + arg(filter.Email)
	}
	query += ` ORDER BY id`

	return repo.selectStudents(ctx, query, args...)
}

func (repo *enrollmentRepository) selectStudents(ctx context.Context, query string, args ...interface{}) ([]enrollment.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	students := make([]enrollment.Student, len(rows))
	for i, row := range rows {
		students[i] = row.toStudent()
	}
	return students, nil
}
