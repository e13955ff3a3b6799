package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core/staff"
)

type staffApi struct {
	svc      *staff.Service
	validate *validator.Validate
}

func registerStaffAPI(g *echo.Group, deps ServerDeps) {
	api := staffApi{
		svc:      deps.StaffSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/staff")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/roles", api.queryRoles)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *staffApi) create(ctx echo.Context) error {
	var data staff.NewStaff
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStaff")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	member, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating staff member")
	}
	return ctx.JSON(http.StatusCreated, member)
}

func (api *staffApi) query(ctx echo.Context) error {
	members, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying staff")
	}
	if members == nil {
		members = []staff.Staff{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *staffApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, staff.AllRoles)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	member, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == staff.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting staff member")
	}
	return ctx.JSON(http.StatusOK, member)
}

func (api *staffApi) update(ctx echo.Context) error {
	orig, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == staff.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting staff member")
	}

	var data staff.UpdateStaff
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStaff")
	}
	if err := data.Validate(orig, api.validate, api.svc); err != nil {
		return err
	}

	member, err := api.svc.Update(ctx.Request().Context(), orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating staff member")
	}
	return ctx.JSON(http.StatusOK, member)
}

func (api *staffApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting staff member")
	}
	return ctx.NoContent(http.StatusNoContent)
}
