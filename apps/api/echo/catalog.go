package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core/catalog"
)

type catalogApi struct {
	svc      *catalog.Service
	validate *validator.Validate
}

func registerCatalogAPI(g *echo.Group, deps ServerDeps) {
	api := catalogApi{
		svc:      deps.CatalogSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/catalog")

	ig := cg.Group("/items")
	ig.POST("", api.createItem)
	ig.GET("", api.queryItems)
	ig.GET("/:id", api.retrieveItem)
	ig.PUT("/:id", api.updateItem)
	ig.DELETE("/:id", api.destroyItem)

	og := cg.Group("/courses")
	og.POST("", api.createCourse)
	og.GET("", api.queryCourses)
	og.GET("/:id", api.retrieveCourse)
	og.PUT("/:id", api.updateCourse)
	og.DELETE("/:id", api.destroyCourse)

	lg := cg.Group("/lecturers")
	lg.POST("", api.createLecturer)
	lg.GET("", api.queryLecturers)
	lg.GET("/:id", api.retrieveLecturer)
	lg.PUT("/:id", api.updateLecturer)
	lg.DELETE("/:id", api.destroyLecturer)
}

// notFoundOrWrap maps catalog sentinels to 404 and wraps everything else.
func notFoundOrWrap(err error, msg string) error {
	switch errors.Cause(err) {
	case catalog.ErrItemNotFound, catalog.ErrCourseNotFound, catalog.ErrLecturerNotFound:
		return errHttpNotFound
	}
	return errors.Wrap(err, msg)
}

// Item handlers

func (api *catalogApi) createItem(ctx echo.Context) error {
	var data catalog.NewItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewItem")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	item, err := api.svc.CreateItem(ctx.Request().Context(), data)
	if err != nil {
		return notFoundOrWrap(err, "creating item")
	}
	return ctx.JSON(http.StatusCreated, item)
}

func (api *catalogApi) queryItems(ctx echo.Context) error {
	items, err := api.svc.QueryItems(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying items")
	}
	if items == nil {
		items = []catalog.Item{}
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *catalogApi) retrieveItem(ctx echo.Context) error {
	item, err := api.svc.GetItem(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return notFoundOrWrap(err, "getting item")
	}
	return ctx.JSON(http.StatusOK, item)
}

func (api *catalogApi) updateItem(ctx echo.Context) error {
	var data catalog.NewItem
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewItem")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	item, err := api.svc.UpdateItem(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return notFoundOrWrap(err, "updating item")
	}
	return ctx.JSON(http.StatusOK, item)
}

func (api *catalogApi) destroyItem(ctx echo.Context) error {
	if err := api.svc.DeleteItems(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting item")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Course handlers

func (api *catalogApi) createCourse(ctx echo.Context) error {
	var data catalog.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	course, err := api.svc.CreateCourse(ctx.Request().Context(), data)
	if err != nil {
		return notFoundOrWrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, course)
}

func (api *catalogApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.QueryCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []catalog.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *catalogApi) retrieveCourse(ctx echo.Context) error {
	course, err := api.svc.GetCourse(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return notFoundOrWrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *catalogApi) updateCourse(ctx echo.Context) error {
	var data catalog.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	course, err := api.svc.UpdateCourse(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return notFoundOrWrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, course)
}

func (api *catalogApi) destroyCourse(ctx echo.Context) error {
	if err := api.svc.DeleteCourses(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Lecturer handlers

func (api *catalogApi) createLecturer(ctx echo.Context) error {
	var data catalog.NewLecturer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLecturer")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lec, err := api.svc.CreateLecturer(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lecturer")
	}
	return ctx.JSON(http.StatusCreated, lec)
}

func (api *catalogApi) queryLecturers(ctx echo.Context) error {
	lecturers, err := api.svc.QueryLecturers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying lecturers")
	}
	if lecturers == nil {
		lecturers = []catalog.Lecturer{}
	}
	return ctx.JSON(http.StatusOK, lecturers)
}

func (api *catalogApi) retrieveLecturer(ctx echo.Context) error {
	lec, err := api.svc.GetLecturer(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return notFoundOrWrap(err, "getting lecturer")
	}
	return ctx.JSON(http.StatusOK, lec)
}

func (api *catalogApi) updateLecturer(ctx echo.Context) error {
	var data catalog.NewLecturer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLecturer")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lec, err := api.svc.UpdateLecturer(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return notFoundOrWrap(err, "updating lecturer")
	}
	return ctx.JSON(http.StatusOK, lec)
}

func (api *catalogApi) destroyLecturer(ctx echo.Context) error {
	if err := api.svc.DeleteLecturers(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lecturer")
	}
	return ctx.NoContent(http.StatusNoContent)
}
