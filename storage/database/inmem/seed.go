package inmemdb

import (
	"time"

	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/user"
)

// seed loads the demo dataset: the course catalog with curricula, enrollment
// rows (several learners hold more than one row, one per course) and the demo
// accounts used on staging.
func seed(db *DB) {
	db.catalog.courses = seedCourses()
	db.catalog.modules = seedModules()
	db.enrollment.students = seedStudents()

	for _, usr := range seedUsers() {
		u := usr
		db.user.table[u.ID] = &u
	}
}

func seedCourses() []catalog.Course {
	return []catalog.Course{
		{
			ID:          "wozki-widlowe",
			Title:       "Wózki widłowe (UDT)",
			Category:    catalog.CategoryUDT,
			Duration:    "35 godzin",
			Price:       "1 200 zł",
			PromoPrice:  "990 zł",
			Description: "Kurs operatora wózków jezdniowych podnośnikowych z egzaminem UDT.",
		},
		{
			ID:          "suwnice",
			Title:       "Suwnice, wciągniki i wciągarki (UDT)",
			Category:    catalog.CategoryUDT,
			Duration:    "40 godzin",
			Price:       "1 450 zł",
			Description: "Obsługa suwnic sterowanych z poziomu roboczego i z kabiny.",
		},
		{
			ID:          "sep-e1",
			Title:       "Uprawnienia SEP do 1 kV (E1)",
			Category:    catalog.CategorySEP,
			Duration:    "24 godziny",
			Price:       "650 zł",
			PromoPrice:  "550 zł",
			Description: "Eksploatacja urządzeń, instalacji i sieci elektroenergetycznych do 1 kV.",
		},
		{
			ID:          "bhp-okresowe",
			Title:       "Szkolenie okresowe BHP",
			Category:    catalog.CategoryBHP,
			Duration:    "8 godzin",
			Price:       "120 zł",
			Description: "Szkolenie okresowe BHP dla pracowników na stanowiskach robotniczych.",
		},
		{
			ID:          "pierwsza-pomoc",
			Title:       "Pierwsza pomoc przedmedyczna",
			Category:    catalog.CategoryInne,
			Duration:    "6 godzin",
			Price:       "180 zł",
			Description: "Podstawy udzielania pierwszej pomocy w zakładzie pracy.",
		},
	}
}

func seedModules() []catalog.CourseModule {
	return []catalog.CourseModule{
		{
			ID:       "ww-m1",
			CourseID: "wozki-widlowe",
			Title:    "Budowa wózków jezdniowych",
			Lessons: []catalog.Lesson{
				{ID: "ww-l1", Title: "Typy wózków i ich zastosowanie", Type: catalog.LessonVideo},
				{ID: "ww-l2", Title: "Układ napędowy i hydraulika", Type: catalog.LessonVideo},
				{ID: "ww-l3", Title: "Test: budowa wózków", Type: catalog.LessonTest},
			},
		},
		{
			ID:       "ww-m2",
			CourseID: "wozki-widlowe",
			Title:    "Eksploatacja i czynności operatora",
			Lessons: []catalog.Lesson{
				{ID: "ww-l4", Title: "Czynności przed rozpoczęciem pracy", Type: catalog.LessonVideo},
				{ID: "ww-l5", Title: "Transport ładunków", Type: catalog.LessonVideo},
				{ID: "ww-l6", Title: "Wymiana butli gazowej", Type: catalog.LessonText},
				{ID: "ww-l7", Title: "Test: eksploatacja", Type: catalog.LessonTest},
			},
		},
		{
			ID:       "ww-m3",
			CourseID: "wozki-widlowe",
			Title:    "Dozór techniczny i egzamin",
			Lessons: []catalog.Lesson{
				{ID: "ww-l8", Title: "Ustawa o dozorze technicznym", Type: catalog.LessonText},
				{ID: "ww-l9", Title: "Egzamin próbny UDT", Type: catalog.LessonTest},
			},
		},
		{
			ID:       "sep-m1",
			CourseID: "sep-e1",
			Title:    "Podstawy elektrotechniki",
			Lessons: []catalog.Lesson{
				{ID: "sep-l1", Title: "Prąd, napięcie, rezystancja", Type: catalog.LessonVideo},
				{ID: "sep-l2", Title: "Ochrona przeciwporażeniowa", Type: catalog.LessonVideo},
				{ID: "sep-l3", Title: "Test: podstawy", Type: catalog.LessonTest},
			},
		},
		{
			ID:       "sep-m2",
			CourseID: "sep-e1",
			Title:    "Eksploatacja urządzeń do 1 kV",
			Lessons: []catalog.Lesson{
				{ID: "sep-l4", Title: "Prace pod napięciem", Type: catalog.LessonVideo},
				{ID: "sep-l5", Title: "Egzamin próbny E1", Type: catalog.LessonTest},
			},
		},
		{
			ID:       "bhp-m1",
			CourseID: "bhp-okresowe",
			Title:    "Regulacje prawne i wypadki przy pracy",
			Lessons: []catalog.Lesson{
				{ID: "bhp-l1", Title: "Obowiązki pracownika i pracodawcy", Type: catalog.LessonText},
				{ID: "bhp-l2", Title: "Postępowanie powypadkowe", Type: catalog.LessonVideo},
				{ID: "bhp-l3", Title: "Test zaliczeniowy", Type: catalog.LessonTest},
			},
		},
	}
}

func seedStudents() []enrollment.Student {
	return []enrollment.Student{
		// Mega-Trans: the guardian demo account's company.
		{ID: "s-001", Name: "Jan Kowalski", Email: "jan.kowalski@megatrans.pl", Company: "Mega-Trans",
			Course: "wozki-widlowe", Progress: 85, ExpirationDays: 45, Status: enrollment.StatusActive,
			CompletedLessons: []string{"ww-l1", "ww-l2", "ww-l3", "ww-l4", "ww-l5", "ww-l6"}},
		{ID: "s-002", Name: "Jan Kowalski", Email: "jan.kowalski@megatrans.pl", Company: "Mega-Trans",
			Course: "bhp-okresowe", Progress: 100, ExpirationDays: 120, Status: enrollment.StatusActive,
			CompletedLessons: []string{"bhp-l1", "bhp-l2", "bhp-l3"}},
		{ID: "s-003", Name: "Anna Nowak", Email: "anna.nowak@megatrans.pl", Company: "Mega-Trans",
			Course: "wozki-widlowe", Progress: 40, ExpirationDays: 12, Status: enrollment.StatusWarning,
			CompletedLessons: []string{"ww-l1", "ww-l2", "ww-l3"}},
		{ID: "s-004", Name: "Piotr Wiśniewski", Email: "piotr.wisniewski@megatrans.pl", Company: "Mega-Trans",
			Course: "sep-e1", Progress: 15, ExpirationDays: 0, Status: enrollment.StatusExpired,
			CompletedLessons: []string{"sep-l1"}},
		{ID: "s-005", Name: "Katarzyna Zielińska", Email: "k.zielinska@megatrans.pl", Company: "Mega-Trans",
			Course: "bhp-okresowe", Progress: 66, ExpirationDays: 30, Status: enrollment.StatusActive,
			CompletedLessons: []string{"bhp-l1", "bhp-l2"}},

		// Budmax
		{ID: "s-006", Name: "Tomasz Lewandowski", Email: "t.lewandowski@budmax.pl", Company: "Budmax",
			Course: "wozki-widlowe", Progress: 100, ExpirationDays: 90, Status: enrollment.StatusActive,
			CompletedLessons: []string{"ww-l1", "ww-l2", "ww-l3", "ww-l4", "ww-l5", "ww-l6", "ww-l7", "ww-l8", "ww-l9"}},
		{ID: "s-007", Name: "Tomasz Lewandowski", Email: "t.lewandowski@budmax.pl", Company: "Budmax",
			Course: "sep-e1", Progress: 60, ExpirationDays: 25, Status: enrollment.StatusActive,
			CompletedLessons: []string{"sep-l1", "sep-l2", "sep-l3"}},
		{ID: "s-008", Name: "Magdalena Kamińska", Email: "m.kaminska@budmax.pl", Company: "Budmax",
			Course: "bhp-okresowe", Progress: 33, ExpirationDays: 5, Status: enrollment.StatusWarning,
			CompletedLessons: []string{"bhp-l1"}},
		{ID: "s-009", Name: "Marek Wójcik", Email: "marek.wojcik@budmax.pl", Company: "Budmax",
			Course: "suwnice", Progress: 0, ExpirationDays: -3, Status: enrollment.StatusExpired,
			CompletedLessons: nil},
		{ID: "s-010", Name: "Agnieszka Krawczyk", Email: "a.krawczyk@budmax.pl", Company: "Budmax",
			Course: "wozki-widlowe", Progress: 55, ExpirationDays: 40, Status: enrollment.StatusActive,
			CompletedLessons: []string{"ww-l1", "ww-l2", "ww-l3", "ww-l4", "ww-l5"}},

		// Elektrobud
		{ID: "s-011", Name: "Paweł Szymański", Email: "p.szymanski@elektrobud.pl", Company: "Elektrobud",
			Course: "sep-e1", Progress: 100, ExpirationDays: 60, Status: enrollment.StatusActive,
			CompletedLessons: []string{"sep-l1", "sep-l2", "sep-l3", "sep-l4", "sep-l5"}},
		{ID: "s-012", Name: "Paweł Szymański", Email: "p.szymanski@elektrobud.pl", Company: "Elektrobud",
			Course: "pierwsza-pomoc", Progress: 50, ExpirationDays: 14, Status: enrollment.StatusWarning,
			CompletedLessons: nil},
		{ID: "s-013", Name: "Ewa Dąbrowska", Email: "ewa.dabrowska@elektrobud.pl", Company: "Elektrobud",
			Course: "sep-e1", Progress: 80, ExpirationDays: 33, Status: enrollment.StatusActive,
			CompletedLessons: []string{"sep-l1", "sep-l2", "sep-l3", "sep-l4"}},

		// Individual learner, no company.
		{ID: "s-014", Name: "Robert Mazur", Email: "robert.mazur@gmail.com",
			Course: "wozki-widlowe", Progress: 25, ExpirationDays: 20, Status: enrollment.StatusActive,
			CompletedLessons: []string{"ww-l1", "ww-l2"}},
	}
}

func seedUsers() []user.User {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	newUser := func(id, name, uname, email, company, pwd string, roles ...string) user.User {
		usr := user.User{
			ID:        id,
			Name:      name,
			Username:  uname,
			Email:     email,
			Company:   company,
			Roles:     roles,
			CreatedAt: now,
			UpdatedAt: now,
		}
		usr.SetActive(true)
		_ = usr.SetPassword(pwd)
		return usr
	}

	return []user.User{
		newUser("5f9c55dc-7ca4-46f1-a83a-1a00800bbd3f", "Adam Admin", "szkolixadmin",
			"admin@szkolix.pl", "", "LocalAdminPass!", user.RoleAdminOwner),
		newUser("1f7b9ae1-69c2-4f51-bd63-1dfdfb953d23", "Monika Manager", "szkolixmanager",
			"manager@szkolix.pl", "", "LocalManagerPass!", user.RoleManager),
		newUser("c7e0e5a8-2a65-4a37-a9b8-5790f14858d2", "Grzegorz Opiekun", "megatransopiekun",
			"opiekun@megatrans.pl", "Mega-Trans", "LocalGuardianPass!", user.RoleGuardian),
		newUser("9f1f6a0c-32cf-43c4-a5d9-6f8f2c7f7f0e", "Jan Kowalski", "jankowalski",
			"jan.kowalski@megatrans.pl", "Mega-Trans", "LocalStudentPass!", user.RoleStudent),
	}
}
