package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/report"
)

func TestDashboardAPI(t *testing.T) {
	app := newTestApp(t)

	enroll(t, app, "BC/ITS/24/001", 200)
	enroll(t, app, "BC/ITN/24/060", 200)

	if _, err := app.payments.Record(context.Background(), payment.NewPayment{
		IndexNumber:    "BC/ITS/24/001",
		Amount:         50,
		PaymentMethod:  payment.MethodCash,
		PaymentPurpose: payment.PurposeOther,
		RecordedBy:     "main rep",
	}); err != nil {
		t.Fatalf("recording payment: %v", err)
	}

	rec := app.request(t, http.MethodGet, "/v1/dashboard", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats report.DashboardStats
	decode(t, rec, &stats)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.TotalPayments)
	assert.Equal(t, 50.0, stats.TotalCollected)
	assert.Equal(t, 350.0, stats.TotalOutstanding)
	assert.Equal(t, 1, stats.PartialCount)
	assert.Equal(t, 1, stats.OutstandingCount)
	assert.Len(t, stats.RecentPayments, 1)
}
