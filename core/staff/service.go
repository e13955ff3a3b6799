package staff

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core"
)

var (
	// errors
	ErrNotFound    = errors.New("staff member not found")
	ErrEmailExists = errors.New("a staff member with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excluded ...Staff) error
		CreateStaff(ctx context.Context, s Staff) (Staff, error)
		QueryAllStaff(ctx context.Context) ([]Staff, error)
		GetStaffByID(ctx context.Context, id string) (Staff, error)
		GetStaffByEmail(ctx context.Context, email string) (Staff, error)
		UpdateStaff(ctx context.Context, s Staff) (Staff, error)
		DeleteStaffByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(email string, excluded ...Staff) error {
	if err := svc.repo.CheckEmailUniqueness(context.Background(), email, excluded...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ns NewStaff) (Staff, error) {
	now := time.Now().UTC()
	return svc.repo.CreateStaff(ctx, Staff{
		Name:      ns.Name,
		Email:     ns.Email,
		Phone:     ns.Phone,
		Role:      ns.Role,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) QueryAll(ctx context.Context) ([]Staff, error) {
	return svc.repo.QueryAllStaff(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Staff, error) {
	return svc.repo.GetStaffByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (Staff, error) {
	return svc.repo.GetStaffByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStaff) (Staff, error) {
	s, err := svc.repo.GetStaffByID(ctx, id)
	if err != nil {
		return Staff{}, err
	}
	s.Name = us.Name
	s.Email = us.Email
	if us.Phone != "" {
		s.Phone = us.Phone
	}
	if us.Role != "" {
		s.Role = us.Role
	}
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStaff(ctx, s)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteStaffByID(ctx, ids...)
}
