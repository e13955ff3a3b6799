package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core/payment"
)

type paymentApi struct {
	svc      *payment.Service
	validate *validator.Validate
}

func registerPaymentAPI(g *echo.Group, deps ServerDeps) {
	api := paymentApi{
		svc:      deps.PaymentSvc,
		validate: deps.Validate,
	}

	pg := g.Group("/payments")
	pg.POST("", api.record)
	pg.GET("", api.query)
	pg.GET("/verify", api.verify)
	pg.GET("/:id", api.retrieve)
}

// Handlers

func (api *paymentApi) record(ctx echo.Context) error {
	var data payment.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.Record(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *paymentApi) query(ctx echo.Context) error {
	filter := new(payment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []payment.Payment{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	payments, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

// verify answers GET /payments/verify?index_number=...&transaction_code=...
// It is read-only: a 200 with found=false is a valid answer, not an error.
func (api *paymentApi) verify(ctx echo.Context) error {
	indexNumber := ctx.QueryParam("index_number")
	transactionCode := ctx.QueryParam("transaction_code")
	if indexNumber == "" || transactionCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "index_number and transaction_code query parameters are required")
	}

	res, err := api.svc.Verify(ctx.Request().Context(), indexNumber, transactionCode)
	if err != nil {
		return errors.Wrap(err, "verifying payment")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *paymentApi) retrieve(ctx echo.Context) error {
	pay, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == payment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting payment")
	}
	return ctx.JSON(http.StatusOK, pay)
}
