package catalog

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrItemNotFound     = errors.New("item not found")
	ErrCourseNotFound   = errors.New("course not found")
	ErrLecturerNotFound = errors.New("lecturer not found")
)

type (
	Repository interface {
		CreateItem(ctx context.Context, item Item) (Item, error)
		QueryAllItems(ctx context.Context) ([]Item, error)
		GetItemByID(ctx context.Context, id string) (Item, error)
		UpdateItem(ctx context.Context, item Item) (Item, error)
		DeleteItemsByID(ctx context.Context, ids ...string) error

		CreateCourse(ctx context.Context, course Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		UpdateCourse(ctx context.Context, course Course) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids ...string) error

		CreateLecturer(ctx context.Context, lec Lecturer) (Lecturer, error)
		QueryAllLecturers(ctx context.Context) ([]Lecturer, error)
		GetLecturerByID(ctx context.Context, id string) (Lecturer, error)
		UpdateLecturer(ctx context.Context, lec Lecturer) (Lecturer, error)
		DeleteLecturersByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateItem(ctx context.Context, ni NewItem) (Item, error) {
	if ni.CourseID != "" {
		if _, err := svc.repo.GetCourseByID(ctx, ni.CourseID); err != nil {
			return Item{}, err
		}
	}
	return svc.repo.CreateItem(ctx, Item{
		Name:     ni.Name,
		Type:     ni.Type,
		Price:    ni.Price,
		CourseID: ni.CourseID,
	})
}

func (svc *Service) QueryItems(ctx context.Context) ([]Item, error) {
	return svc.repo.QueryAllItems(ctx)
}

func (svc *Service) GetItem(ctx context.Context, id string) (Item, error) {
	return svc.repo.GetItemByID(ctx, id)
}

func (svc *Service) UpdateItem(ctx context.Context, id string, ni NewItem) (Item, error) {
	item, err := svc.repo.GetItemByID(ctx, id)
	if err != nil {
		return Item{}, err
	}
	item.Name = ni.Name
	item.Type = ni.Type
	item.Price = ni.Price
	item.CourseID = ni.CourseID
	return svc.repo.UpdateItem(ctx, item)
}

func (svc *Service) DeleteItems(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteItemsByID(ctx, ids...)
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	if nc.LecturerID != "" {
		if _, err := svc.repo.GetLecturerByID(ctx, nc.LecturerID); err != nil {
			return Course{}, err
		}
	}
	return svc.repo.CreateCourse(ctx, Course{
		Code:        nc.Code,
		Name:        nc.Name,
		CreditHours: nc.CreditHours,
		Venue:       nc.Venue,
		LecturerID:  nc.LecturerID,
	})
}

func (svc *Service) QueryCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetCourse(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) UpdateCourse(ctx context.Context, id string, nc NewCourse) (Course, error) {
	course, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	course.Code = nc.Code
	course.Name = nc.Name
	course.CreditHours = nc.CreditHours
	course.Venue = nc.Venue
	course.LecturerID = nc.LecturerID
	return svc.repo.UpdateCourse(ctx, course)
}

func (svc *Service) DeleteCourses(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteCoursesByID(ctx, ids...)
}

func (svc *Service) CreateLecturer(ctx context.Context, nl NewLecturer) (Lecturer, error) {
	return svc.repo.CreateLecturer(ctx, Lecturer{
		Name:  nl.Name,
		Email: nl.Email,
		Phone: nl.Phone,
	})
}

func (svc *Service) QueryLecturers(ctx context.Context) ([]Lecturer, error) {
	return svc.repo.QueryAllLecturers(ctx)
}

func (svc *Service) GetLecturer(ctx context.Context, id string) (Lecturer, error) {
	return svc.repo.GetLecturerByID(ctx, id)
}

func (svc *Service) UpdateLecturer(ctx context.Context, id string, nl NewLecturer) (Lecturer, error) {
	lec, err := svc.repo.GetLecturerByID(ctx, id)
	if err != nil {
		return Lecturer{}, err
	}
	lec.Name = nl.Name
	lec.Email = nl.Email
	lec.Phone = nl.Phone
	return svc.repo.UpdateLecturer(ctx, lec)
}

func (svc *Service) DeleteLecturers(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteLecturersByID(ctx, ids...)
}
