// Package inmemdb is an in-memory repository set. Seeded, it doubles as the
// demo data source the reporting panels run against while no real backend
// exists; empty, it backs tests.
package inmemdb

import (
	"sync"

	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/user"
)

type (
	DB struct {
		user       *userTable
		catalog    *catalogTable
		enrollment *enrollmentTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	catalogTable struct {
		sync.RWMutex
		courses []catalog.Course
		modules []catalog.CourseModule
	}

	enrollmentTable struct {
		sync.RWMutex
		students []enrollment.Student
	}
)

// Open returns an empty in-memory DB.
func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		catalog:    &catalogTable{},
		enrollment: &enrollmentTable{},
	}
	return db, nil
}

// OpenSeeded returns an in-memory DB loaded with the demo dataset.
func OpenSeeded() (*DB, error) {
	db, err := Open()
	if err != nil {
		return nil, err
	}
	seed(db)
	return db, nil
}
