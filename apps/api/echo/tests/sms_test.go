package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	echoapi "github.com/ttucompsci/paytrack/apps/api/echo"
	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/student"
	smssvc "github.com/ttucompsci/paytrack/services/sms"
)

func TestSMSAPI_Bulk(t *testing.T) {
	app := newTestApp(t)
	enableSMS(t, app)

	ama := enroll(t, app, "BC/ITS/24/001", 200)
	kofi, err := app.students.Create(context.Background(), student.NewStudent{
		Name:           "Kofi Asante",
		IndexNumber:    "BC/ITN/24/060",
		Phone:          "0557654321",
		TotalAmountDue: 200,
	})
	if err != nil {
		t.Fatalf("enrolling student: %v", err)
	}

	t.Run("explicit ids take precedence over the filter", func(t *testing.T) {
		smssvc.ClearSentMessages()

		rec := app.request(t, http.MethodPost, "/v1/sms/bulk", echoapi.BulkSMSRequest{
			Message:    "Hello {studentName}",
			StudentIDs: []string{ama.ID, "missing-id"},
			Filter:     student.QueryFilter{Group: student.GroupB},
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		var res core.SMSResult
		decode(t, rec, &res)
		assert.True(t, res.Success)
		assert.Equal(t, 1, res.Sent)
		if assert.Len(t, smssvc.SentMessages, 1) {
			assert.Equal(t, "Hello Ama Mensah", smssvc.SentMessages[0].Message)
		}
	})

	t.Run("filter targets matching students", func(t *testing.T) {
		smssvc.ClearSentMessages()

		rec := app.request(t, http.MethodPost, "/v1/sms/bulk", echoapi.BulkSMSRequest{
			Message: "Meeting on Friday, {studentName}",
			Filter:  student.QueryFilter{Specialization: student.SpecNetworking},
		})
		assert.Equal(t, http.StatusOK, rec.Code)

		var res core.SMSResult
		decode(t, rec, &res)
		assert.Equal(t, 1, res.Sent)
		if assert.Len(t, smssvc.SentMessages, 1) {
			assert.Equal(t, kofi.Phone, smssvc.SentMessages[0].To)
		}
	})

	t.Run("message is required", func(t *testing.T) {
		rec := app.request(t, http.MethodPost, "/v1/sms/bulk", echoapi.BulkSMSRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decode(t, rec, &fields)
		assert.Contains(t, fields, "message")
	})
}

func TestSMSAPI_Reminders(t *testing.T) {
	app := newTestApp(t)
	enableSMS(t, app)

	enroll(t, app, "BC/ITS/24/001", 200)
	settled, err := app.students.Create(context.Background(), student.NewStudent{
		Name:           "Kofi Asante",
		IndexNumber:    "BC/ITN/24/060",
		Phone:          "0557654321",
		TotalAmountDue: 200,
	})
	if err != nil {
		t.Fatalf("enrolling student: %v", err)
	}
	if _, err = app.payments.Record(context.Background(), payment.NewPayment{
		IndexNumber:    settled.IndexNumber,
		Amount:         200,
		PaymentMethod:  payment.MethodCash,
		PaymentPurpose: payment.PurposeOther,
		RecordedBy:     "main rep",
	}); err != nil {
		t.Fatalf("recording payment: %v", err)
	}
	smssvc.ClearSentMessages()

	rec := app.request(t, http.MethodPost, "/v1/sms/reminders", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var res core.SMSResult
	decode(t, rec, &res)
	assert.Equal(t, 1, res.Sent)
	if assert.Len(t, smssvc.SentMessages, 1) {
		assert.Contains(t, smssvc.SentMessages[0].Message, "outstanding balance")
	}
}
