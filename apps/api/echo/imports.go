package echoapi

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/szkolix/backend/core"
	"github.com/szkolix/backend/core/bulkimport"
)

type importApi struct {
	svc *bulkimport.Service
}

func registerImportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *bulkimport.Service) {
	api := importApi{svc: svc}

	ig := g.Group("/imports", jwt, staffMiddleware())
	ig.POST("/users", api.importUsers)
}

// importUsers accepts a CSV file either as the raw request body or as a
// multipart "file" part. Company and course context for every created account
// come from query params; per-row problems are reported back, not fatal.
func (api *importApi) importUsers(ctx echo.Context) error {
	raw, err := readCSVPayload(ctx)
	if err != nil {
		return core.NewValidationError(errors.New("nie udało się odczytać pliku"))
	}

	res, err := bulkimport.ParsePayloads(raw, ctx.QueryParam("company"), ctx.QueryParam("course"))
	if err != nil {
		return core.NewValidationError(err)
	}

	out, err := api.svc.Import(ctx.Request().Context(), res.Payloads, res.Skipped)
	if err != nil {
		return errors.Wrap(err, "importing users")
	}
	return ctx.JSON(http.StatusOK, out)
}

func readCSVPayload(ctx echo.Context) (string, error) {
	if file, err := ctx.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return "", errors.Wrap(err, "opening uploaded file")
		}
		defer src.Close()

		raw, err := io.ReadAll(src)
		if err != nil {
			return "", errors.Wrap(err, "reading uploaded file")
		}
		return string(raw), nil
	}

	raw, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return "", errors.Wrap(err, "reading request body")
	}
	return string(raw), nil
}
