package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/notify"
	"github.com/ttucompsci/paytrack/core/student"
)

type smsApi struct {
	dispatcher   *notify.Dispatcher
	students     *student.Service
	settingsRepo core.SettingsRepository
	validate     *validator.Validate
}

func registerSMSAPI(g *echo.Group, deps ServerDeps) {
	api := smsApi{
		dispatcher:   deps.Dispatcher,
		students:     deps.StudentSvc,
		settingsRepo: deps.SettingsRepo,
		validate:     deps.Validate,
	}

	sg := g.Group("/sms")
	sg.POST("/bulk", api.sendBulk)
	sg.POST("/reminders", api.sendReminders)
}

// BulkSMSRequest targets either an explicit set of students or, when
// StudentIDs is empty, everyone matching the filter.
type BulkSMSRequest struct {
	Message    string              `json:"message" validate:"required"`
	StudentIDs []string            `json:"student_ids"`
	Filter     student.QueryFilter `json:"filter"`
}

func (r *BulkSMSRequest) Validate(validate *validator.Validate) error {
	r.Message = core.CleanString(r.Message)
	return validate.Struct(r)
}

// Handlers

func (api *smsApi) sendBulk(ctx echo.Context) error {
	var data BulkSMSRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkSMSRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	recipients, err := api.resolveRecipients(ctx, &data)
	if err != nil {
		return err
	}

	settings, err := api.settingsRepo.GetSettings(reqCtx)
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}

	res := api.dispatcher.SendBulkSMS(reqCtx, recipients, data.Message, nil, settings)
	return ctx.JSON(http.StatusOK, res)
}

func (api *smsApi) sendReminders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	students, err := api.students.Query(reqCtx, nil, nil)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	settings, err := api.settingsRepo.GetSettings(reqCtx)
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}

	res := api.dispatcher.SendPaymentReminders(reqCtx, students, settings)
	return ctx.JSON(http.StatusOK, res)
}

func (api *smsApi) resolveRecipients(ctx echo.Context, data *BulkSMSRequest) ([]student.Student, error) {
	reqCtx := ctx.Request().Context()

	if len(data.StudentIDs) > 0 {
		recipients := make([]student.Student, 0, len(data.StudentIDs))
		for _, id := range data.StudentIDs {
			st, err := api.students.GetByID(reqCtx, id)
			if err != nil {
				if errors.Cause(err) == student.ErrNotFound {
					continue // skip unknown ids, the rest still get their SMS
				}
				return nil, errors.Wrap(err, "getting student")
			}
			recipients = append(recipients, st)
		}
		return recipients, nil
	}

	recipients, err := api.students.Query(reqCtx, &data.Filter, nil)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return recipients, nil
}
