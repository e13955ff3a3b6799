package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core"
)

type settingsApi struct {
	repo core.SettingsRepository
}

func registerSettingsAPI(g *echo.Group, deps ServerDeps) {
	api := settingsApi{repo: deps.SettingsRepo}

	sg := g.Group("/settings")
	sg.GET("", api.retrieve)
	sg.PUT("", api.update)
}

// Handlers

func (api *settingsApi) retrieve(ctx echo.Context) error {
	settings, err := api.repo.GetSettings(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, settings)
}

// update replaces the whole settings document. Clients send back the full
// object they retrieved, with their changes applied.
func (api *settingsApi) update(ctx echo.Context) error {
	var data core.SystemSettings
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SystemSettings")
	}

	settings, err := api.repo.SaveSettings(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving settings")
	}
	return ctx.JSON(http.StatusOK, settings)
}
