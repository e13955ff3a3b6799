package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/payment"
)

const paymentColumns = `id, student_id, amount, payment_method, payment_purpose, payer_type,
third_party_type, third_party_details, item_id, transaction_code, transaction_reference,
payment_date, recorded_by, notes, created_at, updated_at`

// paymentOrderColumns maps orderable request fields to column expressions.
var paymentOrderColumns = map[string]string{
	"amount":           "amount",
	"payment_method":   "payment_method",
	"payment_purpose":  "payment_purpose",
	"transaction_code": "transaction_code",
	"payment_date":     "payment_date",
	"created_at":       "created_at",
}

type paymentRow struct {
	ID                   string      `db:"id"`
	StudentID            string      `db:"student_id"`
	Amount               float64     `db:"amount"`
	PaymentMethod        string      `db:"payment_method"`
	PaymentPurpose       string      `db:"payment_purpose"`
	PayerType            null.String `db:"payer_type"`
	ThirdPartyType       null.String `db:"third_party_type"`
	ThirdPartyDetails    null.String `db:"third_party_details"`
	ItemID               null.String `db:"item_id"`
	TransactionCode      string      `db:"transaction_code"`
	TransactionReference null.String `db:"transaction_reference"`
	PaymentDate          time.Time   `db:"payment_date"`
	RecordedBy           string      `db:"recorded_by"`
	Notes                null.String `db:"notes"`
	CreatedAt            time.Time   `db:"created_at"`
	UpdatedAt            time.Time   `db:"updated_at"`
}

func (row paymentRow) toPayment() payment.Payment {
	return payment.Payment{
		ID:                   row.ID,
		StudentID:            row.StudentID,
		Amount:               row.Amount,
		PaymentMethod:        payment.Method(row.PaymentMethod),
		PaymentPurpose:       payment.Purpose(row.PaymentPurpose),
		PayerType:            payment.PayerType(row.PayerType.String),
		ThirdPartyType:       payment.ThirdPartyType(row.ThirdPartyType.String),
		ThirdPartyDetails:    row.ThirdPartyDetails.String,
		ItemID:               row.ItemID.String,
		TransactionCode:      row.TransactionCode,
		TransactionReference: row.TransactionReference.String,
		PaymentDate:          row.PaymentDate,
		RecordedBy:           row.RecordedBy,
		Notes:                row.Notes.String,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}

func newPaymentRow(pay payment.Payment) paymentRow {
	return paymentRow{
		ID:                   pay.ID,
		StudentID:            pay.StudentID,
		Amount:               pay.Amount,
		PaymentMethod:        string(pay.PaymentMethod),
		PaymentPurpose:       string(pay.PaymentPurpose),
		PayerType:            null.NewString(string(pay.PayerType), pay.PayerType != ""),
		ThirdPartyType:       null.NewString(string(pay.ThirdPartyType), pay.ThirdPartyType != ""),
		ThirdPartyDetails:    null.NewString(pay.ThirdPartyDetails, pay.ThirdPartyDetails != ""),
		ItemID:               null.NewString(pay.ItemID, pay.ItemID != ""),
		TransactionCode:      pay.TransactionCode,
		TransactionReference: null.NewString(pay.TransactionReference, pay.TransactionReference != ""),
		PaymentDate:          pay.PaymentDate.UTC(),
		RecordedBy:           pay.RecordedBy,
		Notes:                null.NewString(pay.Notes, pay.Notes != ""),
		CreatedAt:            pay.CreatedAt.UTC(),
		UpdatedAt:            pay.UpdatedAt.UTC(),
	}
}

type paymentRepository struct {
	db *sqlx.DB
}

var _ payment.Repository = (*paymentRepository)(nil) // interface compliance check

func NewPaymentRepository(db *sqlx.DB) *paymentRepository {
	return &paymentRepository{db: db}
}

func (repo paymentRepository) CreatePayment(ctx context.Context, pay payment.Payment) (payment.Payment, error) {
	if pay.ID == "" {
		pay.ID = uuid.New().String()
	}
	row := newPaymentRow(pay)

	query := `INSERT INTO payment (` + paymentColumns + `)
VALUES (:id, :student_id, :amount, :payment_method, :payment_purpose, :payer_type,
:third_party_type, :third_party_details, :item_id, :transaction_code, :transaction_reference,
:payment_date, :recorded_by, :notes, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err, "transaction_code") {
			return payment.Payment{}, payment.ErrCodeExists
		}
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return pay, nil
}

func (repo paymentRepository) QueryPayments(ctx context.Context, filter *payment.QueryFilter, ordering []core.DBOrdering) ([]payment.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment`
	args := make([]interface{}, 0, 4)
	conds := make([]string, 0, 4)

	arg := func(val interface{}) string {
		args = append(args, val)
		return "$" + strconv.Itoa(len(args))
	}

	if filter != nil {
		filter.Clean()
		if filter.Search != "" {
			conds = append(conds, "transaction_code ILIKE "+arg("%"+filter.Search+"%"))
		}
		if filter.StudentID != "" {
			conds = append(conds, "student_id = "+arg(filter.StudentID))
		}
		if filter.Method != "" {
			conds = append(conds, "payment_method = "+arg(string(filter.Method)))
		}
		if filter.Purpose != "" {
			conds = append(conds, "payment_purpose = "+arg(string(filter.Purpose)))
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += orderClause(ordering, paymentOrderColumns, "created_at DESC")

	var rows []paymentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	payments := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, row.toPayment())
	}
	return payments, nil
}

func (repo paymentRepository) GetPayment(ctx context.Context, filter payment.GetFilter) (payment.Payment, error) {
	var (
		query = `SELECT ` + paymentColumns + ` FROM payment WHERE `
		args  []interface{}
	)
	switch {
	case filter.ID != "":
		query += "id = $1"
		args = []interface{}{filter.ID}
	case filter.TransactionCode != "" && filter.StudentID != "":
		query += "transaction_code = $1 AND student_id = $2"
		args = []interface{}{filter.TransactionCode, filter.StudentID}
	default:
		return payment.Payment{}, payment.ErrNotFound
	}

	var row paymentRow
	if err := repo.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return payment.Payment{}, payment.ErrNotFound
		}
		return payment.Payment{}, errors.Wrap(err, "getting payment")
	}
	return row.toPayment(), nil
}
