package payment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/catalog"
	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/student"
	inmemdb "github.com/ttucompsci/paytrack/storage/database/inmem"
)

type notifierMock struct {
	calls []notifyCall
}

type notifyCall struct {
	student student.Student
	payment payment.Payment
}

func (m *notifierMock) NotifyOnPayment(ctx context.Context, st student.Student, pay payment.Payment, settings core.SystemSettings) core.SMSResult {
	m.calls = append(m.calls, notifyCall{student: st, payment: pay})
	return core.SMSResult{Success: true, Sent: 1, Message: "SMS sent successfully"}
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type testDeps struct {
	payments *payment.Service
	students *student.Service
	items    *catalog.Service
	notifier *notifierMock
}

func setup(t *testing.T) testDeps {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	students := student.NewService(inmemdb.NewStudentRepository(db))
	items := catalog.NewService(inmemdb.NewCatalogRepository(db))
	notifier := &notifierMock{}
	payments := payment.NewService(
		inmemdb.NewPaymentRepository(db),
		students,
		items,
		notifier,
		inmemdb.NewSettingsRepository(db),
		nopLogger{},
	)
	return testDeps{payments: payments, students: students, items: items, notifier: notifier}
}

func enrollStudent(t *testing.T, deps testDeps, indexNumber string, due float64) student.Student {
	t.Helper()
	st, err := deps.students.Create(context.Background(), student.NewStudent{
		Name:           "Ama Mensah",
		IndexNumber:    indexNumber,
		Phone:          "0241234567",
		TotalAmountDue: due,
	})
	if err != nil {
		t.Fatalf("enrollStudent() failed: %v", err)
	}
	return st
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("cash payment credits the ledger", func(t *testing.T) {
		deps := setup(t)
		enrollStudent(t, deps, "BC/ITS/24/001", 200)

		res, err := deps.payments.Record(ctx, payment.NewPayment{
			IndexNumber:    "BC/ITS/24/001",
			Amount:         50,
			PaymentMethod:  payment.MethodCash,
			PaymentPurpose: payment.PurposeOther,
			RecordedBy:     "main rep",
		})
		assert.NoError(t, err)
		assert.Len(t, res.Payment.TransactionCode, 8)
		assert.Equal(t, 50.0, res.Payment.Amount)
		assert.Equal(t, 50.0, res.Student.TotalAmountPaid)
		assert.Equal(t, student.StatusPartial, res.Student.PaymentStatus)
		assert.True(t, res.Notification.Success)
		assert.Len(t, deps.notifier.calls, 1)
	})

	t.Run("payments accumulate until full", func(t *testing.T) {
		deps := setup(t)
		enrollStudent(t, deps, "BC/ITN/24/060", 150)

		np := payment.NewPayment{
			IndexNumber:    "BC/ITN/24/060",
			Amount:         100,
			PaymentMethod:  payment.MethodMomo,
			PaymentPurpose: payment.PurposeOther,
			RecordedBy:     "main rep",
		}
		res1, err := deps.payments.Record(ctx, np)
		assert.NoError(t, err)
		assert.Equal(t, student.StatusPartial, res1.Student.PaymentStatus)

		np.Amount = 50
		res2, err := deps.payments.Record(ctx, np)
		assert.NoError(t, err)
		assert.Equal(t, student.StatusFull, res2.Student.PaymentStatus)
		assert.Equal(t, 150.0, res2.Student.TotalAmountPaid)
		assert.Equal(t, 0.0, res2.Student.RemainingBalance())

		// distinct codes per payment
		assert.NotEqual(t, res1.Payment.TransactionCode, res2.Payment.TransactionCode)
	})

	t.Run("non-positive amount is rejected before anything persists", func(t *testing.T) {
		deps := setup(t)
		enrollStudent(t, deps, "BC/ITS/24/002", 200)

		for _, amount := range []float64{0, -10} {
			_, err := deps.payments.Record(ctx, payment.NewPayment{
				IndexNumber:    "BC/ITS/24/002",
				Amount:         amount,
				PaymentMethod:  payment.MethodCash,
				PaymentPurpose: payment.PurposeOther,
				RecordedBy:     "main rep",
			})
			vErr, ok := err.(*core.ValidationError)
			assert.True(t, ok)
			assert.Equal(t, "amount", vErr.Fields[0].Field)
		}

		// no orphan payment rows, no ledger movement
		payments, err := deps.payments.Query(ctx, nil, nil)
		assert.NoError(t, err)
		assert.Empty(t, payments)
		st, err := deps.students.GetByIndexNumber(ctx, "BC/ITS/24/002")
		assert.NoError(t, err)
		assert.Equal(t, 0.0, st.TotalAmountPaid)
	})

	t.Run("unknown index number is rejected", func(t *testing.T) {
		deps := setup(t)

		_, err := deps.payments.Record(ctx, payment.NewPayment{
			IndexNumber:    "BC/ITS/24/999",
			Amount:         50,
			PaymentMethod:  payment.MethodCash,
			PaymentPurpose: payment.PurposeOther,
			RecordedBy:     "main rep",
		})
		vErr, ok := err.(*core.ValidationError)
		if assert.True(t, ok, "want a validation error, got %v", err) {
			assert.Equal(t, "index_number", vErr.Fields[0].Field)
		}
		assert.Empty(t, deps.notifier.calls)
	})

	t.Run("item purpose mismatch is rejected", func(t *testing.T) {
		deps := setup(t)
		enrollStudent(t, deps, "BC/ITD/24/120", 200)
		item, err := deps.items.CreateItem(ctx, catalog.NewItem{Name: "Algorithms Textbook", Type: catalog.ItemBook, Price: 80})
		assert.NoError(t, err)

		_, err = deps.payments.Record(ctx, payment.NewPayment{
			IndexNumber:    "BC/ITD/24/120",
			Amount:         80,
			PaymentMethod:  payment.MethodCash,
			PaymentPurpose: payment.PurposeTrip,
			ItemID:         item.ID,
			RecordedBy:     "main rep",
		})
		vErr, ok := err.(*core.ValidationError)
		if assert.True(t, ok, "want a validation error, got %v", err) {
			assert.Equal(t, "item_id", vErr.Fields[0].Field)
		}
	})

	t.Run("matching item purpose is accepted", func(t *testing.T) {
		deps := setup(t)
		enrollStudent(t, deps, "BC/ITS/24/030", 200)
		item, err := deps.items.CreateItem(ctx, catalog.NewItem{Name: "Networking Handout", Type: catalog.ItemHandout, Price: 20})
		assert.NoError(t, err)

		res, err := deps.payments.Record(ctx, payment.NewPayment{
			IndexNumber:    "BC/ITS/24/030",
			Amount:         20,
			PaymentMethod:  payment.MethodCash,
			PaymentPurpose: payment.PurposeHandout,
			ItemID:         item.ID,
			RecordedBy:     "main rep",
		})
		assert.NoError(t, err)
		assert.Equal(t, item.ID, res.Payment.ItemID)
	})
}

func TestService_Verify(t *testing.T) {
	ctx := context.Background()
	deps := setup(t)
	enrollStudent(t, deps, "BC/ITS/24/001", 200)
	enrollStudent2 := func() student.Student {
		st, err := deps.students.Create(ctx, student.NewStudent{
			Name:           "Kofi Asante",
			IndexNumber:    "BC/ITN/24/070",
			TotalAmountDue: 200,
		})
		assert.NoError(t, err)
		return st
	}
	other := enrollStudent2()

	res, err := deps.payments.Record(ctx, payment.NewPayment{
		IndexNumber:    "BC/ITS/24/001",
		Amount:         50,
		PaymentMethod:  payment.MethodCash,
		PaymentPurpose: payment.PurposeOther,
		RecordedBy:     "main rep",
	})
	assert.NoError(t, err)
	code := res.Payment.TransactionCode

	t.Run("matching pair is found", func(t *testing.T) {
		v, err := deps.payments.Verify(ctx, "BC/ITS/24/001", code)
		assert.NoError(t, err)
		assert.True(t, v.Found)
		assert.Equal(t, code, v.Payment.TransactionCode)
		assert.Equal(t, 150.0, *v.OutstandingAmount)
	})

	t.Run("lookup is case and space tolerant", func(t *testing.T) {
		v, err := deps.payments.Verify(ctx, "  bc/its/24/001 ", code)
		assert.NoError(t, err)
		assert.True(t, v.Found)
	})

	t.Run("code alone is not sufficient", func(t *testing.T) {
		v, err := deps.payments.Verify(ctx, other.IndexNumber, code)
		assert.NoError(t, err)
		assert.False(t, v.Found)
		// the student still gets their balance back
		assert.NotNil(t, v.Student)
		assert.Equal(t, 200.0, *v.OutstandingAmount)
	})

	t.Run("malformed index number fails fast", func(t *testing.T) {
		for _, input := range []string{"not-an-index", "BC/ITS/24", "BC-ITS-24-001", "'; DROP TABLE student --"} {
			v, err := deps.payments.Verify(ctx, input, code)
			assert.NoError(t, err)
			assert.False(t, v.Found)
			assert.Nil(t, v.Student)
		}
	})

	t.Run("unknown student yields nothing", func(t *testing.T) {
		v, err := deps.payments.Verify(ctx, "BC/ITS/24/999", code)
		assert.NoError(t, err)
		assert.False(t, v.Found)
		assert.Nil(t, v.Student)
	})

	t.Run("verification does not mutate the ledger", func(t *testing.T) {
		before, err := deps.students.GetByIndexNumber(ctx, "BC/ITS/24/001")
		assert.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = deps.payments.Verify(ctx, "BC/ITS/24/001", code)
			assert.NoError(t, err)
		}

		after, err := deps.students.GetByIndexNumber(ctx, "BC/ITS/24/001")
		assert.NoError(t, err)
		assert.Equal(t, before.TotalAmountPaid, after.TotalAmountPaid)
		assert.Equal(t, before.PaymentStatus, after.PaymentStatus)
	})
}
