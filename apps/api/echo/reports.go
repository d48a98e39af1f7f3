package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/szkolix/backend/core"
	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/reports"
)

// Compare modes
const (
	compareCompanies = "companies"
	comparePeriods   = "periods"
	compareCourses   = "courses"
)

type reportsApi struct {
	catalogSvc    *catalog.Service
	enrollmentSvc *enrollment.Service
	agg           *reports.Aggregator
}

func registerReportsAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	catalogSvc *catalog.Service,
	enrollmentSvc *enrollment.Service,
	agg *reports.Aggregator,
) {
	api := reportsApi{catalogSvc: catalogSvc, enrollmentSvc: enrollmentSvc, agg: agg}

	rg := g.Group("/reports", jwt, reportsMiddleware())
	rg.GET("/individual", api.individual)
	rg.GET("/group", api.group)
	rg.GET("/course/:id", api.course)
	rg.GET("/compare", api.compare)
}

// snapshot loads the immutable (courses, students) pair every aggregation
// runs on. A guardian's snapshot is pre-filtered to their own company.
func (api *reportsApi) snapshot(ctx context.Context, claims Claims) ([]catalog.Course, []enrollment.Student, error) {
	courses, err := api.catalogSvc.QueryAll(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying courses")
	}

	var filter enrollment.QueryFilter
	if claims.IsGuardian && !claims.IsStaff() {
		filter.Company = claims.Company
	}
	students, err := api.enrollmentSvc.Filter(ctx, filter)
	if err != nil {
		return nil, nil, errors.Wrap(err, "querying students")
	}
	return courses, students, nil
}

func (api *reportsApi) individual(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	courses, students, err := api.snapshot(ctx.Request().Context(), claims)
	if err != nil {
		return err
	}

	rep := api.agg.Individual(courses, students, ctx.QueryParam("email"))
	if ctx.QueryParam("format") == "csv" {
		return sendCSV(ctx, reports.ReportFilename("indywidualny", rep.Email), reports.IndividualCSV(rep))
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *reportsApi) group(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	courses, students, err := api.snapshot(ctx.Request().Context(), claims)
	if err != nil {
		return err
	}

	company := forceCompanyScope(claims, ctx.QueryParam("company"))
	rep := api.agg.Group(courses, students, company)
	if ctx.QueryParam("format") == "csv" {
		return sendCSV(ctx, reports.ReportFilename("grupa", rep.Company), reports.GroupCSV(rep))
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *reportsApi) course(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	courses, students, err := api.snapshot(reqCtx, claims)
	if err != nil {
		return err
	}
	modules, err := api.catalogSvc.QueryModules(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying course modules")
	}

	filter := reports.CourseFilter{
		CourseID:   ctx.Param("id"),
		Company:    forceCompanyScope(claims, ctx.QueryParam("company")),
		Department: ctx.QueryParam("department"),
	}
	rep := api.agg.Course(courses, modules, students, filter)
	if ctx.QueryParam("format") == "csv" {
		return sendCSV(ctx, reports.ReportFilename("szkolenie", rep.CourseID), reports.CourseCSV(rep))
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *reportsApi) compare(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	courses, students, err := api.snapshot(reqCtx, claims)
	if err != nil {
		return err
	}

	csv := ctx.QueryParam("format") == "csv"

	switch mode := ctx.QueryParam("mode"); mode {
	case compareCompanies:
		// cross-company comparison needs more than one company in scope
		if claims.IsGuardian && !claims.IsStaff() {
			return errHttpForbidden
		}
		cmp := api.agg.CompareCompanies(courses, students, ctx.QueryParam("a"), ctx.QueryParam("b"))
		if csv {
			return sendCSV(ctx, reports.ReportFilename("porownanie-firmy", cmp.A.Company), reports.CompanyComparisonCSV(cmp))
		}
		return ctx.JSON(http.StatusOK, cmp)

	case comparePeriods:
		company := forceCompanyScope(claims, ctx.QueryParam("company"))
		cmp := api.agg.ComparePeriods(courses, students, company, ctx.QueryParam("current"), ctx.QueryParam("previous"))
		if csv {
			return sendCSV(ctx, reports.ReportFilename("porownanie-okresy", cmp.Company), reports.PeriodComparisonCSV(cmp))
		}
		return ctx.JSON(http.StatusOK, cmp)

	case compareCourses:
		modules, err := api.catalogSvc.QueryModules(reqCtx)
		if err != nil {
			return errors.Wrap(err, "querying course modules")
		}
		cmp := api.agg.CompareCourses(courses, modules, students, ctx.QueryParam("a"), ctx.QueryParam("b"))
		if csv {
			return sendCSV(ctx, reports.ReportFilename("porownanie-szkolenia", cmp.A.CourseID), reports.CourseComparisonCSV(cmp))
		}
		return ctx.JSON(http.StatusOK, cmp)

	default:
		return core.NewValidationError(nil, core.FieldError{Field: "mode", Error: "unknown compare mode"})
	}
}
