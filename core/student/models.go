package student

import (
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ttucompsci/paytrack/core"
)

// Payment statuses, derived from amounts due vs paid.
type PaymentStatus string

const (
	StatusOutstanding PaymentStatus = "outstanding"
	StatusPartial     PaymentStatus = "partial"
	StatusFull        PaymentStatus = "full"
)

// Specializations encoded in index numbers.
type Specialization string

const (
	SpecSoftware       Specialization = "ITS"
	SpecNetworking     Specialization = "ITN"
	SpecDataManagement Specialization = "ITD"
)

var specializationLabels = map[Specialization]string{
	SpecSoftware:       "Software",
	SpecNetworking:     "Networking",
	SpecDataManagement: "Data Management",
}

func (s Specialization) Label() string {
	return specializationLabels[s]
}

// Group is a class group letter derived from the index number sequence.
type Group string

const (
	GroupA Group = "A"
	GroupB Group = "B"
	GroupC Group = "C"
	GroupD Group = "D"
	GroupE Group = "E"
)

var (
	indexNumberRegex = regexp.MustCompile(`^[A-Z]{2}/[A-Z]{3}/\d{2}/\d{3}$`)
	indexSeqRegex    = regexp.MustCompile(`/(\d{3})$`)
	indexSpecRegex   = regexp.MustCompile(`^BC/(IT[SND])/`)
	indexYearRegex   = regexp.MustCompile(`/(\d{2})/`)

	// sequence 1-50 -> A, 51-100 -> B, ... 201-250 -> E
	groupBands = []Group{GroupA, GroupB, GroupC, GroupD, GroupE}
)

// IsValidIndexNumber reports whether s matches the index number format,
// e.g. BC/ITS/24/001. Fails closed on any non-conforming input.
func IsValidIndexNumber(s string) bool {
	return indexNumberRegex.MatchString(s)
}

// GroupFromIndexNumber derives the class group from the numeric suffix of an
// index number via fixed 50-wide bands. ok is false outside the bands or on
// any parse failure.
func GroupFromIndexNumber(indexNumber string) (Group, bool) {
	m := indexSeqRegex.FindStringSubmatch(indexNumber)
	if m == nil {
		return "", false
	}
	seq, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	if seq < 1 || seq > len(groupBands)*50 {
		return "", false
	}
	return groupBands[(seq-1)/50], true
}

// SpecializationFromIndexNumber extracts the 3-letter specialization code.
func SpecializationFromIndexNumber(indexNumber string) (Specialization, bool) {
	m := indexSpecRegex.FindStringSubmatch(indexNumber)
	if m == nil {
		return "", false
	}
	return Specialization(m[1]), true
}

// AcademicYearFromIndexNumber extracts the 2-digit enrollment year.
func AcademicYearFromIndexNumber(indexNumber string) (string, bool) {
	m := indexYearRegex.FindStringSubmatch(indexNumber)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DerivePaymentStatus is the single source of truth for a student's payment
// status: outstanding when nothing is paid, full when paid covers due,
// partial in between.
func DerivePaymentStatus(due, paid float64) PaymentStatus {
	switch {
	case paid <= 0:
		return StatusOutstanding
	case paid >= due:
		return StatusFull
	default:
		return StatusPartial
	}
}

type Student struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	IndexNumber     string         `json:"index_number"`
	Email           string         `json:"email,omitempty"`
	Phone           string         `json:"phone,omitempty"`
	Specialization  Specialization `json:"specialization"`
	Group           Group          `json:"group"`
	AcademicYear    string         `json:"academic_year"`
	TotalAmountDue  float64        `json:"total_amount_due"`
	TotalAmountPaid float64        `json:"total_amount_paid"`
	PaymentStatus   PaymentStatus  `json:"payment_status"`
	CreatedAt       time.Time      `json:"created_at"` // UTC
	UpdatedAt       time.Time      `json:"updated_at"` // UTC
}

// RemainingBalance never goes negative, even on overpayment.
func (s Student) RemainingBalance() float64 {
	if bal := s.TotalAmountDue - s.TotalAmountPaid; bal > 0 {
		return bal
	}
	return 0
}

// ApplyPayment returns the student with the amount credited, the status
// recomputed and UpdatedAt bumped. TotalAmountPaid only ever grows.
func (s Student) ApplyPayment(amount float64) Student {
	s.TotalAmountPaid += amount
	s.PaymentStatus = DerivePaymentStatus(s.TotalAmountDue, s.TotalAmountPaid)
	s.UpdatedAt = time.Now().UTC()
	return s
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	Name           string  `json:"name" validate:"required"`
	IndexNumber    string  `json:"index_number" validate:"required,indexnum"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Phone          string  `json:"phone" validate:"omitempty,ghphone"`
	TotalAmountDue float64 `json:"total_amount_due" validate:"required,gt=0"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.IndexNumber = core.CleanString(ns.IndexNumber)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkUniqueness(ns.IndexNumber)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Amount totals are deliberately absent: TotalAmountPaid
// mutates only through the payment recorder.
type UpdateStudent struct {
	Name           string  `json:"name"`
	Email          string  `json:"email" validate:"omitempty,email"`
	Phone          string  `json:"phone" validate:"omitempty,ghphone"`
	TotalAmountDue float64 `json:"total_amount_due" validate:"omitempty,gt=0"`
}

func (us *UpdateStudent) Validate(orig Student, validate *validator.Validate) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Phone = core.CleanString(us.Phone)
	return validate.Struct(us)
}

type QueryFilter struct {
	Search         string         `query:"search"`
	Specialization Specialization `query:"specialization"`
	Group          Group          `query:"group"`
	Status         PaymentStatus  `query:"payment_status"`
	AcademicYear   string         `query:"academic_year"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Specialization == "" && qf.Group == "" && qf.Status == "" && qf.AcademicYear == ""
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
