package report

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/student"
)

// recentPaymentsCount caps the latest-payments slice on the dashboard.
const recentPaymentsCount = 5

type (
	// Breakdown summarises one slice of the cohort (a group or a
	// specialization).
	Breakdown struct {
		Students    int     `json:"students"`
		Collected   float64 `json:"collected"`
		Outstanding float64 `json:"outstanding"`
	}

	// DashboardStats is the aggregate picture shown on the admin dashboard.
	DashboardStats struct {
		TotalStudents    int     `json:"total_students"`
		TotalPayments    int     `json:"total_payments"`
		TotalCollected   float64 `json:"total_collected"`
		TotalOutstanding float64 `json:"total_outstanding"`

		FullyPaidCount   int `json:"fully_paid_count"`
		PartialCount     int `json:"partial_count"`
		OutstandingCount int `json:"outstanding_count"`

		ByGroup          map[string]Breakdown `json:"by_group"`
		BySpecialization map[string]Breakdown `json:"by_specialization"`
		ByMethod         map[string]float64   `json:"by_method"`

		RecentPayments []payment.Payment `json:"recent_payments"`
	}

	Service struct {
		students *student.Service
		payments *payment.Service
	}
)

func NewService(students *student.Service, payments *payment.Service) *Service {
	return &Service{students: students, payments: payments}
}

// Stats recomputes the dashboard aggregates from the current ledger.
func (svc *Service) Stats(ctx context.Context) (DashboardStats, error) {
	students, err := svc.students.Query(ctx, nil, nil)
	if err != nil {
		return DashboardStats{}, errors.Wrap(err, "querying students")
	}
	payments, err := svc.payments.Query(ctx, nil, nil)
	if err != nil {
		return DashboardStats{}, errors.Wrap(err, "querying payments")
	}

	stats := DashboardStats{
		TotalStudents:    len(students),
		TotalPayments:    len(payments),
		ByGroup:          make(map[string]Breakdown),
		BySpecialization: make(map[string]Breakdown),
		ByMethod:         make(map[string]float64),
	}

	for _, pay := range payments {
		stats.ByMethod[string(pay.PaymentMethod)] += pay.Amount
	}

	for _, st := range students {
		stats.TotalCollected += st.TotalAmountPaid
		stats.TotalOutstanding += st.RemainingBalance()

		switch st.PaymentStatus {
		case student.StatusFull:
			stats.FullyPaidCount++
		case student.StatusPartial:
			stats.PartialCount++
		default:
			stats.OutstandingCount++
		}

		group := stats.ByGroup[string(st.Group)]
		group.Students++
		group.Collected += st.TotalAmountPaid
		group.Outstanding += st.RemainingBalance()
		stats.ByGroup[string(st.Group)] = group

		spec := stats.BySpecialization[string(st.Specialization)]
		spec.Students++
		spec.Collected += st.TotalAmountPaid
		spec.Outstanding += st.RemainingBalance()
		stats.BySpecialization[string(st.Specialization)] = spec
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	if len(payments) > recentPaymentsCount {
		payments = payments[:recentPaymentsCount]
	}
	stats.RecentPayments = payments

	return stats, nil
}
