package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core/report"
)

type reportApi struct {
	svc *report.Service
}

func registerReportAPI(g *echo.Group, deps ServerDeps) {
	api := reportApi{svc: deps.ReportSvc}
	g.GET("/dashboard", api.dashboard)
}

func (api *reportApi) dashboard(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing dashboard stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
