package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ttucompsci/paytrack/core/staff"
)

type staffRow struct {
	ID        string      `db:"id"`
	Name      string      `db:"name"`
	Email     string      `db:"email"`
	Phone     null.String `db:"phone"`
	Role      string      `db:"role"`
	CreatedAt time.Time   `db:"created_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

func (row staffRow) toStaff() staff.Staff {
	return staff.Staff{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone.String,
		Role:      row.Role,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type staffRepository struct {
	db *sqlx.DB
}

var _ staff.Repository = (*staffRepository)(nil) // interface compliance check

func NewStaffRepository(db *sqlx.DB) *staffRepository {
	return &staffRepository{db: db}
}

func (repo staffRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...staff.Staff) error {
	excludedIDs := make([]string, 0, len(excluded))
	for _, s := range excluded {
		excludedIDs = append(excludedIDs, s.ID)
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM staff WHERE email = $1 AND NOT (id = ANY($2)))`
	if err := repo.db.GetContext(ctx, &exists, query, email, inClause(excludedIDs)); err != nil {
		return errors.Wrap(err, "checking staff email uniqueness")
	}
	if exists {
		return staff.ErrEmailExists
	}
	return nil
}

func (repo staffRepository) CreateStaff(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `INSERT INTO staff (id, name, email, phone, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	phone := null.NewString(s.Phone, s.Phone != "")
	if _, err := repo.db.ExecContext(ctx, query, s.ID, s.Name, s.Email, phone, s.Role, s.CreatedAt.UTC(), s.UpdatedAt.UTC()); err != nil {
		if isUniqueViolation(err, "email") {
			return staff.Staff{}, staff.ErrEmailExists
		}
		return staff.Staff{}, errors.Wrap(err, "inserting staff")
	}
	return s, nil
}

func (repo staffRepository) QueryAllStaff(ctx context.Context) ([]staff.Staff, error) {
	var rows []staffRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM staff ORDER BY name ASC`); err != nil {
		return nil, errors.Wrap(err, "querying staff")
	}
	members := make([]staff.Staff, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.toStaff())
	}
	return members, nil
}

func (repo staffRepository) GetStaffByID(ctx context.Context, id string) (staff.Staff, error) {
	var row staffRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM staff WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return staff.Staff{}, staff.ErrNotFound
		}
		return staff.Staff{}, errors.Wrap(err, "getting staff member")
	}
	return row.toStaff(), nil
}

func (repo staffRepository) GetStaffByEmail(ctx context.Context, email string) (staff.Staff, error) {
	var row staffRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM staff WHERE email = $1`, email); err != nil {
		if err == sql.ErrNoRows {
			return staff.Staff{}, staff.ErrNotFound
		}
		return staff.Staff{}, errors.Wrap(err, "getting staff member")
	}
	return row.toStaff(), nil
}

func (repo staffRepository) UpdateStaff(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	query := `UPDATE staff SET name = $2, email = $3, phone = $4, role = $5, updated_at = $6 WHERE id = $1`
	phone := null.NewString(s.Phone, s.Phone != "")
	res, err := repo.db.ExecContext(ctx, query, s.ID, s.Name, s.Email, phone, s.Role, s.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err, "email") {
			return staff.Staff{}, staff.ErrEmailExists
		}
		return staff.Staff{}, errors.Wrap(err, "updating staff")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return staff.Staff{}, staff.ErrNotFound
	}
	return s, nil
}

func (repo staffRepository) DeleteStaffByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM staff WHERE id = ANY($1)`, inClause(ids)); err != nil {
		return errors.Wrap(err, "deleting staff")
	}
	return nil
}
