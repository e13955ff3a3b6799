package student_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ttucompsci/paytrack/core/student"
	inmemdb "github.com/ttucompsci/paytrack/storage/database/inmem"
)

func setup(t *testing.T) *student.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return student.NewService(inmemdb.NewStudentRepository(db))
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	st, err := svc.Create(ctx, student.NewStudent{
		Name:           "Ama Mensah",
		IndexNumber:    "BC/ITN/23/063",
		Phone:          "0241234567",
		TotalAmountDue: 200,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, st.ID)

	// identity fields come from the index number
	assert.Equal(t, student.SpecNetworking, st.Specialization)
	assert.Equal(t, student.GroupB, st.Group)
	assert.Equal(t, "23", st.AcademicYear)
	assert.Equal(t, student.StatusOutstanding, st.PaymentStatus)
	assert.Equal(t, 0.0, st.TotalAmountPaid)
}

func TestService_GetByIndexNumber(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	_, err := svc.Create(ctx, student.NewStudent{
		Name:           "Ama Mensah",
		IndexNumber:    "BC/ITS/24/001",
		TotalAmountDue: 200,
	})
	assert.NoError(t, err)

	t.Run("exact match", func(t *testing.T) {
		st, err := svc.GetByIndexNumber(ctx, "BC/ITS/24/001")
		assert.NoError(t, err)
		assert.Equal(t, "Ama Mensah", st.Name)
	})

	t.Run("untrimmed lowercase input still matches", func(t *testing.T) {
		st, err := svc.GetByIndexNumber(ctx, "  bc/its/24/001 ")
		assert.NoError(t, err)
		assert.Equal(t, "Ama Mensah", st.Name)
	})

	t.Run("unknown index number", func(t *testing.T) {
		_, err := svc.GetByIndexNumber(ctx, "BC/ITS/24/999")
		assert.Equal(t, student.ErrNotFound, err)
	})
}

func TestService_Query(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	seed := []student.NewStudent{
		{Name: "Ama Mensah", IndexNumber: "BC/ITS/24/001", TotalAmountDue: 200},
		{Name: "Kofi Asante", IndexNumber: "BC/ITN/24/060", TotalAmountDue: 200},
		{Name: "Esi Bonsu", IndexNumber: "BC/ITD/23/120", TotalAmountDue: 200},
	}
	for _, ns := range seed {
		if _, err := svc.Create(ctx, ns); err != nil {
			t.Fatalf("seeding failed: %v", err)
		}
	}

	t.Run("no filter returns everyone", func(t *testing.T) {
		students, err := svc.Query(ctx, nil, nil)
		assert.NoError(t, err)
		assert.Len(t, students, 3)
	})

	t.Run("filter by specialization", func(t *testing.T) {
		students, err := svc.Query(ctx, &student.QueryFilter{Specialization: student.SpecNetworking}, nil)
		assert.NoError(t, err)
		if assert.Len(t, students, 1) {
			assert.Equal(t, "Kofi Asante", students[0].Name)
		}
	})

	t.Run("filter by group and year", func(t *testing.T) {
		students, err := svc.Query(ctx, &student.QueryFilter{Group: student.GroupC, AcademicYear: "23"}, nil)
		assert.NoError(t, err)
		if assert.Len(t, students, 1) {
			assert.Equal(t, "Esi Bonsu", students[0].Name)
		}
	})

	t.Run("search matches name or index number", func(t *testing.T) {
		students, err := svc.Query(ctx, &student.QueryFilter{Search: "ama"}, nil)
		assert.NoError(t, err)
		assert.Len(t, students, 1)

		students, err = svc.Query(ctx, &student.QueryFilter{Search: "ITN"}, nil)
		assert.NoError(t, err)
		assert.Len(t, students, 1)
	})
}

func TestService_ApplyPayment(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	st, err := svc.Create(ctx, student.NewStudent{
		Name:           "Ama Mensah",
		IndexNumber:    "BC/ITS/24/001",
		TotalAmountDue: 150,
	})
	assert.NoError(t, err)

	st, err = svc.ApplyPayment(ctx, st, 100)
	assert.NoError(t, err)
	assert.Equal(t, student.StatusPartial, st.PaymentStatus)
	assert.Equal(t, 50.0, st.RemainingBalance())

	st, err = svc.ApplyPayment(ctx, st, 50)
	assert.NoError(t, err)
	assert.Equal(t, student.StatusFull, st.PaymentStatus)
	assert.Equal(t, 0.0, st.RemainingBalance())

	// the balance is persisted, not just returned
	st, err = svc.GetByID(ctx, st.ID)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, st.TotalAmountPaid)

	t.Run("non-positive amounts are refused", func(t *testing.T) {
		_, err := svc.ApplyPayment(ctx, st, 0)
		assert.Equal(t, student.ErrNonPositiveAmount, err)
		_, err = svc.ApplyPayment(ctx, st, -10)
		assert.Equal(t, student.ErrNonPositiveAmount, err)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	st, err := svc.Create(ctx, student.NewStudent{
		Name:           "Ama Mensah",
		IndexNumber:    "BC/ITS/24/001",
		TotalAmountDue: 100,
	})
	assert.NoError(t, err)

	st, err = svc.ApplyPayment(ctx, st, 100)
	assert.NoError(t, err)
	assert.Equal(t, student.StatusFull, st.PaymentStatus)

	// raising the amount due reopens the balance
	st, err = svc.Update(ctx, st.ID, student.UpdateStudent{Name: "Ama Mensah", TotalAmountDue: 250})
	assert.NoError(t, err)
	assert.Equal(t, student.StatusPartial, st.PaymentStatus)
	assert.Equal(t, 150.0, st.RemainingBalance())
}
