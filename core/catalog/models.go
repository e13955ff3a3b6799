package catalog

import (
	"github.com/go-playground/validator/v10"

	"github.com/ttucompsci/paytrack/core"
)

// Item types mirror payment purposes so a purchase can be checked against
// what it claims to pay for.
type ItemType string

const (
	ItemBook    ItemType = "book"
	ItemHandout ItemType = "handout"
	ItemTrip    ItemType = "trip"
	ItemOther   ItemType = "other"
)

type (
	// Item is a purchasable catalog entry: a textbook, a handout, a trip
	// seat or anything else students pay for.
	Item struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Type     ItemType `json:"type"`
		Price    float64  `json:"price"`
		CourseID string   `json:"course_id,omitempty"`
	}

	Course struct {
		ID          string `json:"id"`
		Code        string `json:"code"`
		Name        string `json:"name"`
		CreditHours int    `json:"credit_hours"`
		Venue       string `json:"venue"`
		LecturerID  string `json:"lecturer_id"`
	}

	Lecturer struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone,omitempty"`
	}
)

type NewItem struct {
	Name     string   `json:"name" validate:"required"`
	Type     ItemType `json:"type" validate:"required,oneof=book handout trip other"`
	Price    float64  `json:"price" validate:"required,gt=0"`
	CourseID string   `json:"course_id"`
}

func (ni *NewItem) Validate(validate *validator.Validate) error {
	ni.Name = core.CleanString(ni.Name)
	ni.CourseID = core.CleanString(ni.CourseID)
	return validate.Struct(ni)
}

type NewCourse struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	CreditHours int    `json:"credit_hours" validate:"required,gt=0"`
	Venue       string `json:"venue"`
	LecturerID  string `json:"lecturer_id"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	nc.Venue = core.CleanString(nc.Venue)
	return validate.Struct(nc)
}

type NewLecturer struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,ghphone"`
}

func (nl *NewLecturer) Validate(validate *validator.Validate) error {
	nl.Name = core.CleanString(nl.Name)
	nl.Email = core.CleanString(nl.Email, true /* lower */)
	nl.Phone = core.CleanString(nl.Phone)
	return validate.Struct(nl)
}
