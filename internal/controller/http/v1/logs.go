package httpv1

import (
	"errors"
	"io"
	"net/http"

	"github.com/Egor213/LogKeeper/internal/accesslog"
	logginghelper "github.com/Egor213/LogKeeper/internal/controller/common/logging"
	"github.com/Egor213/LogKeeper/internal/controller/validators"
	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/Egor213/LogKeeper/internal/source"
	"github.com/labstack/echo/v4"
)

type logRoutes struct {
	logService service.Log
}

func newLogRoutes(g *echo.Group, ls service.Log) {
	r := &logRoutes{logService: ls}
	g.POST("", r.ingest)
	g.GET("", r.report)
	g.DELETE("", r.forget)
}

type ingestResponse struct {
	BatchID  string `json:"batch_id"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}

// ingest stores the raw access-log lines of the request body.
func (r *logRoutes) ingest(c echo.Context) error {
	user := currentUser(c)

	lines, err := source.ReadLines(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read request body")
	}

	res, err := r.logService.Ingest(c.Request().Context(), user, lines)
	if err != nil {
		logginghelper.LogError(user, "ingest", err)
		return serviceError(err)
	}
	logginghelper.LogIngested(user, res)

	return c.JSON(http.StatusCreated, ingestResponse{
		BatchID:  res.BatchID,
		Accepted: res.Accepted,
		Rejected: res.Rejected,
	})
}

type reportQuery struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Format string `query:"format"`
}

// report writes the stored records as text, one formatted line each.
func (r *logRoutes) report(c echo.Context) error {
	user := currentUser(c)

	var q reportQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := validators.ValidateTemplate(q.Format); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rng, err := accesslog.NewDateRange(q.From, q.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lines, err := r.logService.Report(c.Request().Context(), user, rng, q.Format)
	if err != nil {
		logginghelper.LogError(user, "report", err)
		return serviceError(err)
	}

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	resp.WriteHeader(http.StatusOK)
	for line := range lines {
		if _, err := io.WriteString(resp, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

type forgetResponse struct {
	Deleted int `json:"deleted"`
}

func (r *logRoutes) forget(c echo.Context) error {
	user := currentUser(c)

	n, err := r.logService.Forget(c.Request().Context(), user)
	if err != nil {
		logginghelper.LogError(user, "forget", err)
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, forgetResponse{Deleted: n})
}

func serviceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrUnknownUser):
		return echo.NewHTTPError(http.StatusNotFound, "unknown user")
	case errors.Is(err, accesslog.ErrDateParse):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "stored record has an unreadable date")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
