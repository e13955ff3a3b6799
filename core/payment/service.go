package payment

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/catalog"
	"github.com/ttucompsci/paytrack/core/student"
)

var (
	// errors
	ErrNotFound   = errors.New("payment not found")
	ErrCodeExists = errors.New("a payment with this transaction code already exists")

	errStudentNotFound   = errors.New("no student found for this index number")
	errNonPositiveAmount = errors.New("amount must be greater than zero")
	errItemNotFound      = errors.New("selected item not found")
	errItemPurpose       = errors.New("selected item does not match the payment purpose")
	errCodeGenExhausted  = errors.New("could not generate a unique transaction code")
)

// codeGenAttempts caps regeneration when the storage layer reports a
// transaction code collision.
const codeGenAttempts = 5

type (
	// GetFilter selects a single payment: by ID, or by the
	// (TransactionCode, StudentID) pair used during verification.
	GetFilter struct {
		ID              string
		TransactionCode string
		StudentID       string
	}

	Repository interface {
		// CreatePayment returns ErrCodeExists when the transaction code
		// collides with an existing payment.
		CreatePayment(ctx context.Context, pay Payment) (Payment, error)
		// QueryPayments applies AND on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on the transaction code.
		QueryPayments(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Payment, error)
		GetPayment(ctx context.Context, filter GetFilter) (Payment, error)
	}

	// Notifier sends the post-payment SMS. Failures stay inside the
	// returned result; recording never rolls back on notification trouble.
	Notifier interface {
		NotifyOnPayment(ctx context.Context, st student.Student, pay Payment, settings core.SystemSettings) core.SMSResult
	}

	// RecordResult is the full outcome of one recorded payment: the created
	// payment, the student with the updated ledger, and what happened to
	// the notification.
	RecordResult struct {
		Payment      Payment         `json:"payment"`
		Student      student.Student `json:"student"`
		Notification core.SMSResult  `json:"notification"`
	}

	// Verification answers "is this payment real?". Student and outstanding
	// amount are still surfaced when the student exists but the code does
	// not match, so callers can show the balance either way.
	Verification struct {
		Found             bool              `json:"found"`
		Payment           *Payment          `json:"payment,omitempty"`
		Student           *student.Student  `json:"student,omitempty"`
		Course            *catalog.Course   `json:"course,omitempty"`
		Lecturer          *catalog.Lecturer `json:"lecturer,omitempty"`
		OutstandingAmount *float64          `json:"outstanding_amount,omitempty"`
	}

	Service struct {
		repo         Repository
		students     *student.Service
		items        *catalog.Service
		notifier     Notifier
		settingsRepo core.SettingsRepository
		logger       core.Logger
	}
)

func NewService(
	repo Repository,
	students *student.Service,
	items *catalog.Service,
	notifier Notifier,
	settingsRepo core.SettingsRepository,
	logger core.Logger,
) *Service {
	return &Service{
		repo:         repo,
		students:     students,
		items:        items,
		notifier:     notifier,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Record validates and appends one payment: find the student, check the
// referenced item, generate a unique transaction code, persist the payment,
// credit the student's ledger and notify best-effort. A payment for an
// unknown index number is rejected; students are never auto-provisioned
// here.
func (svc *Service) Record(ctx context.Context, np NewPayment) (RecordResult, error) {
	// guarded here too, so a direct caller cannot strand a persisted payment
	// that the ledger then refuses
	if np.Amount <= 0 {
		return RecordResult{}, core.NewValidationError(errNonPositiveAmount,
			core.FieldError{Field: "amount", Error: errNonPositiveAmount.Error()})
	}

	st, err := svc.students.GetByIndexNumber(ctx, np.IndexNumber)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return RecordResult{}, core.NewValidationError(errStudentNotFound,
				core.FieldError{Field: "index_number", Error: errStudentNotFound.Error()})
		}
		return RecordResult{}, errors.Wrap(err, "finding student by index number")
	}

	if np.ItemID != "" {
		item, err := svc.items.GetItem(ctx, np.ItemID)
		if err != nil {
			if errors.Cause(err) == catalog.ErrItemNotFound {
				return RecordResult{}, core.NewValidationError(errItemNotFound,
					core.FieldError{Field: "item_id", Error: errItemNotFound.Error()})
			}
			return RecordResult{}, errors.Wrap(err, "finding item")
		}
		if string(item.Type) != string(np.PaymentPurpose) {
			return RecordResult{}, core.NewValidationError(errItemPurpose,
				core.FieldError{Field: "item_id", Error: errItemPurpose.Error()})
		}
	}

	now := time.Now().UTC()
	pay := Payment{
		StudentID:            st.ID,
		Amount:               np.Amount,
		PaymentMethod:        np.PaymentMethod,
		PaymentPurpose:       np.PaymentPurpose,
		PayerType:            np.PayerType,
		ThirdPartyType:       np.ThirdPartyType,
		ThirdPartyDetails:    np.ThirdPartyDetails,
		ItemID:               np.ItemID,
		TransactionReference: np.TransactionReference,
		PaymentDate:          now,
		RecordedBy:           np.RecordedBy,
		Notes:                np.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = errCodeGenExhausted
	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		pay.TransactionCode = GenerateTransactionCode()
		var created Payment
		if created, err = svc.repo.CreatePayment(ctx, pay); err == nil {
			pay = created
			break
		}
		if errors.Cause(err) != ErrCodeExists {
			return RecordResult{}, errors.Wrap(err, "creating payment")
		}
	}
	if err != nil {
		return RecordResult{}, errors.Wrap(err, "creating payment")
	}

	st, err = svc.students.ApplyPayment(ctx, st, pay.Amount)
	if err != nil {
		return RecordResult{}, errors.Wrap(err, "applying payment to student ledger")
	}

	return RecordResult{
		Payment:      pay,
		Student:      st,
		Notification: svc.notify(ctx, st, pay),
	}, nil
}

// notify is best-effort: any failure is logged and reported in the result,
// never returned to the recording caller.
func (svc *Service) notify(ctx context.Context, st student.Student, pay Payment) core.SMSResult {
	settings, err := svc.settingsRepo.GetSettings(ctx)
	if err != nil {
		svc.logger.Error("loading settings for payment notification", err)
		return core.SMSResult{Success: false, Failed: 1, Message: "could not load notification settings"}
	}
	return svc.notifier.NotifyOnPayment(ctx, st, pay, settings)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Payment, error) {
	return svc.repo.QueryPayments(ctx, filter, ordering)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Payment, error) {
	return svc.repo.GetPayment(ctx, GetFilter{ID: id})
}

// Verify is the double-keyed lookup: the transaction code alone is never
// sufficient, it must belong to the student owning the index number.
// Read-only and idempotent.
func (svc *Service) Verify(ctx context.Context, indexNumber, transactionCode string) (Verification, error) {
	indexNumber = strings.ToUpper(core.CleanString(indexNumber))
	transactionCode = strings.ToUpper(core.CleanString(transactionCode))

	// malformed input can never match a student, fail fast without a lookup
	if !student.IsValidIndexNumber(indexNumber) {
		return Verification{Found: false}, nil
	}

	st, err := svc.students.GetByIndexNumber(ctx, indexNumber)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return Verification{Found: false}, nil
		}
		return Verification{}, errors.Wrap(err, "finding student by index number")
	}
	outstanding := st.RemainingBalance()

	pay, err := svc.repo.GetPayment(ctx, GetFilter{TransactionCode: transactionCode, StudentID: st.ID})
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return Verification{Found: false, Student: &st, OutstandingAmount: &outstanding}, nil
		}
		return Verification{}, errors.Wrap(err, "finding payment by transaction code")
	}

	res := Verification{
		Found:             true,
		Payment:           &pay,
		Student:           &st,
		OutstandingAmount: &outstanding,
	}

	// course and lecturer details only make sense for course material
	if (pay.PaymentPurpose == PurposeBook || pay.PaymentPurpose == PurposeHandout) && pay.ItemID != "" {
		if item, err := svc.items.GetItem(ctx, pay.ItemID); err == nil && item.CourseID != "" {
			if course, err := svc.items.GetCourse(ctx, item.CourseID); err == nil {
				res.Course = &course
				if lec, err := svc.items.GetLecturer(ctx, course.LecturerID); err == nil {
					res.Lecturer = &lec
				}
			}
		}
	}
	return res, nil
}
