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
	"github.com/ttucompsci/paytrack/core/student"
)

const studentColumns = `id, name, index_number, email, phone, specialization, "group", academic_year,
total_amount_due, total_amount_paid, payment_status, created_at, updated_at`

// studentOrderColumns maps orderable request fields to column expressions.
var studentOrderColumns = map[string]string{
	"name":              "name",
	"index_number":      "index_number",
	"academic_year":     "academic_year",
	"total_amount_due":  "total_amount_due",
	"total_amount_paid": "total_amount_paid",
	"payment_status":    "payment_status",
	"created_at":        "created_at",
}

type studentRow struct {
	ID              string      `db:"id"`
	Name            string      `db:"name"`
	IndexNumber     string      `db:"index_number"`
	Email           null.String `db:"email"`
	Phone           null.String `db:"phone"`
	Specialization  string      `db:"specialization"`
	Group           string      `db:"group"`
	AcademicYear    string      `db:"academic_year"`
	TotalAmountDue  float64     `db:"total_amount_due"`
	TotalAmountPaid float64     `db:"total_amount_paid"`
	PaymentStatus   string      `db:"payment_status"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

func (row studentRow) toStudent() student.Student {
	return student.Student{
		ID:              row.ID,
		Name:            row.Name,
		IndexNumber:     row.IndexNumber,
		Email:           row.Email.String,
		Phone:           row.Phone.String,
		Specialization:  student.Specialization(row.Specialization),
		Group:           student.Group(row.Group),
		AcademicYear:    row.AcademicYear,
		TotalAmountDue:  row.TotalAmountDue,
		TotalAmountPaid: row.TotalAmountPaid,
		PaymentStatus:   student.PaymentStatus(row.PaymentStatus),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func newStudentRow(st student.Student) studentRow {
	return studentRow{
		ID:              st.ID,
		Name:            st.Name,
		IndexNumber:     st.IndexNumber,
		Email:           null.NewString(st.Email, st.Email != ""),
		Phone:           null.NewString(st.Phone, st.Phone != ""),
		Specialization:  string(st.Specialization),
		Group:           string(st.Group),
		AcademicYear:    st.AcademicYear,
		TotalAmountDue:  st.TotalAmountDue,
		TotalAmountPaid: st.TotalAmountPaid,
		PaymentStatus:   string(st.PaymentStatus),
		CreatedAt:       st.CreatedAt.UTC(),
		UpdatedAt:       st.UpdatedAt.UTC(),
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) CheckIndexNumberUniqueness(ctx context.Context, indexNumber string, excluded ...student.Student) error {
	excludedIDs := make([]string, 0, len(excluded))
	for _, st := range excluded {
		excludedIDs = append(excludedIDs, st.ID)
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM student WHERE index_number = $1 AND NOT (id = ANY($2)))`
	if err := repo.db.GetContext(ctx, &exists, query, indexNumber, inClause(excludedIDs)); err != nil {
		return errors.Wrap(err, "checking index number uniqueness")
	}
	if exists {
		return student.ErrIndexNumberExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	row := newStudentRow(st)

	query := `INSERT INTO student (` + studentColumns + `)
VALUES (:id, :name, :index_number, :email, :phone, :specialization, :group, :academic_year,
:total_amount_due, :total_amount_paid, :payment_status, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, query, row); err != nil {
		if isUniqueViolation(err, "index_number") {
			return student.Student{}, student.ErrIndexNumberExists
		}
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return st, nil
}

func (repo studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter, ordering []core.DBOrdering) ([]student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM student`
	args := make([]interface{}, 0, 5)
	conds := make([]string, 0, 5)

	arg := func(val interface{}) string {
		args = append(args, val)
		return "$" + strconv.Itoa(len(args))
	}

	if filter != nil {
		filter.Clean()
		if filter.Search != "" {
			p := arg("%" + filter.Search + "%")
			conds = append(conds, "(name ILIKE "+p+" OR index_number ILIKE "+p+")")
		}
		if filter.Specialization != "" {
			conds = append(conds, "specialization = "+arg(string(filter.Specialization)))
		}
		if filter.Group != "" {
			conds = append(conds, `"group" = `+arg(string(filter.Group)))
		}
		if filter.Status != "" {
			conds = append(conds, "payment_status = "+arg(string(filter.Status)))
		}
		if filter.AcademicYear != "" {
			conds = append(conds, "academic_year = "+arg(filter.AcademicYear))
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += orderClause(ordering, studentOrderColumns, "index_number ASC")

	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toStudent())
	}
	return students, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, filter student.GetFilter) (student.Student, error) {
	var (
		query = `SELECT ` + studentColumns + ` FROM student WHERE `
		key   interface{}
	)
	switch {
	case filter.ID != "":
		query += "id = $1"
		key = filter.ID
	case filter.IndexNumber != "":
		query += "index_number = $1"
		key = filter.IndexNumber
	default:
		return student.Student{}, student.ErrNotFound
	}

	var row studentRow
	if err := repo.db.GetContext(ctx, &row, query, key); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return row.toStudent(), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	row := newStudentRow(st)

	query := `UPDATE student SET name = :name, index_number = :index_number, email = :email, phone = :phone,
specialization = :specialization, "group" = :group, academic_year = :academic_year,
total_amount_due = :total_amount_due, total_amount_paid = :total_amount_paid,
payment_status = :payment_status, updated_at = :updated_at
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, row)
	if err != nil {
		if isUniqueViolation(err, "index_number") {
			return student.Student{}, student.ErrIndexNumberExists
		}
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return st, nil
}

func (repo studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE id = ANY($1)`, inClause(ids)); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}
