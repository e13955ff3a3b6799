package student

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core"
)

var (
	// errors
	ErrNotFound          = errors.New("student not found")
	ErrIndexNumberExists = errors.New("a student with this index number already exists")
	ErrNonPositiveAmount = errors.New("payment amount must be positive")
)

type (
	// GetFilter selects a single student by exactly one key.
	GetFilter struct {
		ID          string
		IndexNumber string
	}

	Repository interface {
		CheckIndexNumberUniqueness(ctx context.Context, indexNumber string, excluded ...Student) error
		CreateStudent(ctx context.Context, st Student) (Student, error)
		// QueryStudents applies AND on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Name or IndexNumber.
		QueryStudents(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Student, error)
		GetStudent(ctx context.Context, filter GetFilter) (Student, error)
		UpdateStudent(ctx context.Context, st Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(indexNumber string, excluded ...Student) error {
	if err := svc.repo.CheckIndexNumberUniqueness(context.Background(), indexNumber, excluded...); err != nil {
		if err == ErrIndexNumberExists {
			return core.NewValidationError(err, core.FieldError{Field: "index_number", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Create enrolls a student; group, specialization and academic year are
// derived from the index number, never supplied by the caller.
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	st := Student{
		Name:           ns.Name,
		IndexNumber:    ns.IndexNumber,
		Email:          ns.Email,
		Phone:          ns.Phone,
		TotalAmountDue: ns.TotalAmountDue,
		PaymentStatus:  StatusOutstanding,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if spec, ok := SpecializationFromIndexNumber(ns.IndexNumber); ok {
		st.Specialization = spec
	}
	if group, ok := GroupFromIndexNumber(ns.IndexNumber); ok {
		st.Group = group
	}
	if year, ok := AcademicYearFromIndexNumber(ns.IndexNumber); ok {
		st.AcademicYear = year
	}
	return svc.repo.CreateStudent(ctx, st)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByIndexNumber(ctx context.Context, indexNumber string) (Student, error) {
	return svc.repo.GetStudent(ctx, GetFilter{IndexNumber: strings.ToUpper(core.CleanString(indexNumber))})
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	st, err := svc.repo.GetStudent(ctx, GetFilter{ID: id})
	if err != nil {
		return Student{}, err
	}
	st.Name = us.Name
	if us.Email != "" {
		st.Email = us.Email
	}
	if us.Phone != "" {
		st.Phone = us.Phone
	}
	if us.TotalAmountDue > 0 {
		st.TotalAmountDue = us.TotalAmountDue
		st.PaymentStatus = DerivePaymentStatus(st.TotalAmountDue, st.TotalAmountPaid)
	}
	st.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, st)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}

// ApplyPayment credits amount to the student's ledger and persists the
// result. Amounts never decrement; a non-positive amount is refused before
// any mutation.
func (svc *Service) ApplyPayment(ctx context.Context, st Student, amount float64) (Student, error) {
	if amount <= 0 {
		return Student{}, ErrNonPositiveAmount
	}
	return svc.repo.UpdateStudent(ctx, st.ApplyPayment(amount))
}
