package staff

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ttucompsci/paytrack/core"
)

// Roles
const (
	RoleSuperAdmin   = "super_admin"
	RoleMainRep      = "main_rep"
	RoleAssistantRep = "assistant_rep"
)

var AllRoles = []string{RoleSuperAdmin, RoleMainRep, RoleAssistantRep}

// Staff is a department member who records payments and sends notifications.
// These are bookkeeping records, not login accounts.
type Staff struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (s Staff) IsSuperAdmin() bool {
	return s.Role == RoleSuperAdmin
}

// NewStaff contains information needed to register a staff member.
type NewStaff struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,ghphone"`
	Role  string `json:"role" validate:"required,oneof=super_admin main_rep assistant_rep"`
}

func (ns *NewStaff) Validate(validate *validator.Validate, svc *Service) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkUniqueness(ns.Email)
}

// UpdateStaff defines what information may be provided to modify a staff record.
type UpdateStaff struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,ghphone"`
	Role  string `json:"role" validate:"omitempty,oneof=super_admin main_rep assistant_rep"`
}

func (us *UpdateStaff) Validate(orig Staff, validate *validator.Validate, svc *Service) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if email := core.CleanString(us.Email, true /* lower */); email != "" {
		us.Email = email
	} else {
		us.Email = orig.Email
	}
	us.Phone = core.CleanString(us.Phone)

	if err := validate.Struct(us); err != nil {
		return err
	}
	return svc.checkUniqueness(us.Email, orig)
}
