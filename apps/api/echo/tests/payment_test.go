package tests

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/student"
	smssvc "github.com/ttucompsci/paytrack/services/sms"
)

func enroll(t *testing.T, app *testApp, indexNumber string, due float64) student.Student {
	t.Helper()
	st, err := app.students.Create(context.Background(), student.NewStudent{
		Name:           "Ama Mensah",
		IndexNumber:    indexNumber,
		Phone:          "0241234567",
		TotalAmountDue: due,
	})
	if err != nil {
		t.Fatalf("enrolling student: %v", err)
	}
	return st
}

func enableSMS(t *testing.T, app *testApp) {
	t.Helper()
	settings, err := app.settingsRepo.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("getting settings: %v", err)
	}
	settings.SMS.Enabled = true
	settings.SMS.APIKey = "test-key"
	if _, err = app.settingsRepo.SaveSettings(context.Background(), settings); err != nil {
		t.Fatalf("saving settings: %v", err)
	}
}

func TestPaymentAPI_Record(t *testing.T) {
	t.Run("cash payment is recorded and notified", func(t *testing.T) {
		app := newTestApp(t)
		enroll(t, app, "BC/ITS/24/001", 200)
		enableSMS(t, app)

		rec := app.request(t, http.MethodPost, "/v1/payments", map[string]interface{}{
			"index_number":    "BC/ITS/24/001",
			"amount":          50,
			"payment_method":  "cash",
			"payment_purpose": "other",
			"recorded_by":     "main rep",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var res payment.RecordResult
		decode(t, rec, &res)
		assert.Len(t, res.Payment.TransactionCode, 8)
		assert.Equal(t, student.StatusPartial, res.Student.PaymentStatus)
		assert.Equal(t, 150.0, res.Student.RemainingBalance())
		assert.True(t, res.Notification.Success)
		if assert.Len(t, smssvc.SentMessages, 1) {
			assert.Contains(t, smssvc.SentMessages[0].Message, "partial payment")
		}
	})

	t.Run("unknown student is rejected", func(t *testing.T) {
		app := newTestApp(t)

		rec := app.request(t, http.MethodPost, "/v1/payments", map[string]interface{}{
			"index_number":    "BC/ITS/24/999",
			"amount":          50,
			"payment_method":  "cash",
			"payment_purpose": "other",
			"recorded_by":     "main rep",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decode(t, rec, &fields)
		assert.Contains(t, fields, "index_number")
	})

	t.Run("third party cash payment requires details", func(t *testing.T) {
		app := newTestApp(t)
		enroll(t, app, "BC/ITS/24/002", 200)

		rec := app.request(t, http.MethodPost, "/v1/payments", map[string]interface{}{
			"index_number":    "BC/ITS/24/002",
			"amount":          50,
			"payment_method":  "cash",
			"payment_purpose": "other",
			"payer_type":      "third_party",
			"recorded_by":     "main rep",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decode(t, rec, &fields)
		assert.Contains(t, fields, "third_party_type")
	})

	t.Run("invalid amount is rejected", func(t *testing.T) {
		app := newTestApp(t)
		enroll(t, app, "BC/ITS/24/003", 200)

		rec := app.request(t, http.MethodPost, "/v1/payments", map[string]interface{}{
			"index_number":    "BC/ITS/24/003",
			"amount":          -5,
			"payment_method":  "cash",
			"payment_purpose": "other",
			"recorded_by":     "main rep",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var fields map[string]string
		decode(t, rec, &fields)
		assert.Contains(t, fields, "amount")
	})
}

func TestPaymentAPI_Verify(t *testing.T) {
	app := newTestApp(t)
	enroll(t, app, "BC/ITS/24/001", 200)

	res, err := app.payments.Record(context.Background(), payment.NewPayment{
		IndexNumber:    "BC/ITS/24/001",
		Amount:         50,
		PaymentMethod:  payment.MethodCash,
		PaymentPurpose: payment.PurposeOther,
		RecordedBy:     "main rep",
	})
	if err != nil {
		t.Fatalf("recording payment: %v", err)
	}
	code := res.Payment.TransactionCode

	verifyPath := func(indexNumber, code string) string {
		return fmt.Sprintf("/v1/payments/verify?index_number=%s&transaction_code=%s",
			url.QueryEscape(indexNumber), url.QueryEscape(code))
	}

	t.Run("valid pair verifies", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, verifyPath("BC/ITS/24/001", code), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var v payment.Verification
		decode(t, rec, &v)
		assert.True(t, v.Found)
		assert.Equal(t, code, v.Payment.TransactionCode)
		assert.Equal(t, 150.0, *v.OutstandingAmount)
	})

	t.Run("wrong code still returns the balance", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, verifyPath("BC/ITS/24/001", "WRONG123"), nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		var v payment.Verification
		decode(t, rec, &v)
		assert.False(t, v.Found)
		assert.NotNil(t, v.Student)
	})

	t.Run("missing parameters are a client error", func(t *testing.T) {
		rec := app.request(t, http.MethodGet, "/v1/payments/verify", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
