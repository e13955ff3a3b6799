package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/payment"
)

type paymentRepository struct {
	db *paymentTable
}

var _ payment.Repository = (*paymentRepository)(nil)

func NewPaymentRepository(db *DB) *paymentRepository {
	return &paymentRepository{db: db.payment}
}

func (repo *paymentRepository) query() []payment.Payment {
	payments := make([]payment.Payment, 0, len(repo.db.table))
	for _, pay := range repo.db.table {
		payments = append(payments, *pay)
	}
	return payments
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, pay payment.Payment) (payment.Payment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.TransactionCode == pay.TransactionCode {
			return payment.Payment{}, payment.ErrCodeExists
		}
	}

	if pay.ID == "" {
		pay.ID = uuid.New().String()
	}
	repo.db.table[pay.ID] = &pay
	return pay, nil
}

func (repo *paymentRepository) QueryPayments(ctx context.Context, filter *payment.QueryFilter, ordering []core.DBOrdering) ([]payment.Payment, error) {
	repo.db.RLock()
	payments := repo.query()
	repo.db.RUnlock()

	if filter != nil && !filter.IsEmpty() {
		filter.Clean()
		matched := make([]payment.Payment, 0, len(payments))
		for _, pay := range payments {
			if matchPayment(pay, filter) {
				matched = append(matched, pay)
			}
		}
		payments = matched
	}

	sortPayments(payments, ordering)
	return payments, nil
}

func matchPayment(pay payment.Payment, filter *payment.QueryFilter) bool {
	if filter.Search != "" &&
		!strings.Contains(strings.ToLower(pay.TransactionCode), strings.ToLower(filter.Search)) {
		return false
	}
	if filter.StudentID != "" && pay.StudentID != filter.StudentID {
		return false
	}
	if filter.Method != "" && pay.PaymentMethod != filter.Method {
		return false
	}
	if filter.Purpose != "" && pay.PaymentPurpose != filter.Purpose {
		return false
	}
	return true
}

func sortPayments(payments []payment.Payment, ordering []core.DBOrdering) {
	// newest first unless told otherwise
	less := func(a, b payment.Payment) bool { return a.CreatedAt.After(b.CreatedAt) }
	if len(ordering) > 0 {
		ord := ordering[0]
		less = func(a, b payment.Payment) bool {
			var cmp bool
			switch ord.Field {
			case "amount":
				cmp = a.Amount < b.Amount
			case "payment_date":
				cmp = a.PaymentDate.Before(b.PaymentDate)
			default:
				cmp = a.CreatedAt.Before(b.CreatedAt)
			}
			if !ord.Ascending {
				return !cmp
			}
			return cmp
		}
	}
	sort.Slice(payments, func(i, j int) bool { return less(payments[i], payments[j]) })
}

func (repo *paymentRepository) GetPayment(ctx context.Context, filter payment.GetFilter) (payment.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != "" {
		if pay, ok := repo.db.table[filter.ID]; ok {
			return *pay, nil
		}
		return payment.Payment{}, payment.ErrNotFound
	}
	if filter.TransactionCode != "" && filter.StudentID != "" {
		for _, pay := range repo.query() {
			if pay.TransactionCode == filter.TransactionCode && pay.StudentID == filter.StudentID {
				return pay, nil
			}
		}
	}
	return payment.Payment{}, payment.ErrNotFound
}
