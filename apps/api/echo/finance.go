package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/finance"
)

type financeApi struct {
	catalogSvc    *catalog.Service
	enrollmentSvc *enrollment.Service
}

func registerFinanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, catalogSvc *catalog.Service, enrollmentSvc *enrollment.Service) {
	api := financeApi{catalogSvc: catalogSvc, enrollmentSvc: enrollmentSvc}

	fg := g.Group("/finance", jwt, staffMiddleware())
	fg.GET("/transactions", api.queryTransactions)
}

// queryTransactions returns the synthesized ledger, optionally narrowed by
// company/course/email and rendered as CSV with `?format=csv`.
func (api *financeApi) queryTransactions(ctx echo.Context) error {
	var filter enrollment.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	reqCtx := ctx.Request().Context()
	courses, err := api.catalogSvc.QueryAll(reqCtx)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	students, err := api.enrollmentSvc.Filter(reqCtx, filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	txs := finance.BuildTransactions(courses, students)
	if txs == nil {
		txs = []finance.Transaction{}
	}

	if ctx.QueryParam("format") == "csv" {
		return sendCSV(ctx, finance.CSVFilename(time.Now()), finance.TransactionsCSV(txs))
	}
	return ctx.JSON(http.StatusOK, txs)
}

func sendCSV(ctx echo.Context, filename, body string) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}
