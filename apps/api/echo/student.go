package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core/student"
)

type studentApi struct {
	svc        *student.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerStudentAPI(g *echo.Group, deps ServerDeps) {
	api := studentApi{
		svc:        deps.StudentSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	sg := g.Group("/students")
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/lookup", api.lookup)
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	st, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []student.Student{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	students, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

// lookup finds a student by index number, e.g. /students/lookup?index_number=BC/ITS/24/001
func (api *studentApi) lookup(ctx echo.Context) error {
	indexNumber := ctx.QueryParam("index_number")
	if indexNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "index_number query parameter is required")
	}

	st, err := api.svc.GetByIndexNumber(ctx.Request().Context(), indexNumber)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "looking up student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	st, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) update(ctx echo.Context) error {
	orig, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting student")
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(orig, api.validate); err != nil {
		return err
	}

	st, err := api.svc.Update(ctx.Request().Context(), orig.ID, data)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}
