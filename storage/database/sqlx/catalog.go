package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/ttucompsci/paytrack/core/catalog"
)

type (
	itemRow struct {
		ID       string      `db:"id"`
		Name     string      `db:"name"`
		Type     string      `db:"type"`
		Price    float64     `db:"price"`
		CourseID null.String `db:"course_id"`
	}

	courseRow struct {
		ID          string      `db:"id"`
		Code        string      `db:"code"`
		Name        string      `db:"name"`
		CreditHours int         `db:"credit_hours"`
		Venue       null.String `db:"venue"`
		LecturerID  null.String `db:"lecturer_id"`
	}

	lecturerRow struct {
		ID    string      `db:"id"`
		Name  string      `db:"name"`
		Email null.String `db:"email"`
		Phone null.String `db:"phone"`
	}
)

func (row itemRow) toItem() catalog.Item {
	return catalog.Item{
		ID:       row.ID,
		Name:     row.Name,
		Type:     catalog.ItemType(row.Type),
		Price:    row.Price,
		CourseID: row.CourseID.String,
	}
}

func (row courseRow) toCourse() catalog.Course {
	return catalog.Course{
		ID:          row.ID,
		Code:        row.Code,
		Name:        row.Name,
		CreditHours: row.CreditHours,
		Venue:       row.Venue.String,
		LecturerID:  row.LecturerID.String,
	}
}

func (row lecturerRow) toLecturer() catalog.Lecturer {
	return catalog.Lecturer{
		ID:    row.ID,
		Name:  row.Name,
		Email: row.Email.String,
		Phone: row.Phone.String,
	}
}

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

// --- items ---

func (repo catalogRepository) CreateItem(ctx context.Context, item catalog.Item) (catalog.Item, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `INSERT INTO item (id, name, type, price, course_id) VALUES ($1, $2, $3, $4, $5)`
	courseID := null.NewString(item.CourseID, item.CourseID != "")
	if _, err := repo.db.ExecContext(ctx, query, item.ID, item.Name, string(item.Type), item.Price, courseID); err != nil {
		return catalog.Item{}, errors.Wrap(err, "inserting item")
	}
	return item, nil
}

func (repo catalogRepository) QueryAllItems(ctx context.Context) ([]catalog.Item, error) {
	var rows []itemRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM item ORDER BY name ASC`); err != nil {
		return nil, errors.Wrap(err, "querying items")
	}
	items := make([]catalog.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toItem())
	}
	return items, nil
}

func (repo catalogRepository) GetItemByID(ctx context.Context, id string) (catalog.Item, error) {
	var row itemRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM item WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Item{}, catalog.ErrItemNotFound
		}
		return catalog.Item{}, errors.Wrap(err, "getting item")
	}
	return row.toItem(), nil
}

func (repo catalogRepository) UpdateItem(ctx context.Context, item catalog.Item) (catalog.Item, error) {
	query := `UPDATE item SET name = $2, type = $3, price = $4, course_id = $5 WHERE id = $1`
	courseID := null.NewString(item.CourseID, item.CourseID != "")
	res, err := repo.db.ExecContext(ctx, query, item.ID, item.Name, string(item.Type), item.Price, courseID)
	if err != nil {
		return catalog.Item{}, errors.Wrap(err, "updating item")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.Item{}, catalog.ErrItemNotFound
	}
	return item, nil
}

func (repo catalogRepository) DeleteItemsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM item WHERE id = ANY($1)`, inClause(ids)); err != nil {
		return errors.Wrap(err, "deleting items")
	}
	return nil
}

// --- courses ---

func (repo catalogRepository) CreateCourse(ctx context.Context, course catalog.Course) (catalog.Course, error) {
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	query := `INSERT INTO course (id, code, name, credit_hours, venue, lecturer_id) VALUES ($1, $2, $3, $4, $5, $6)`
	venue := null.NewString(course.Venue, course.Venue != "")
	lecturerID := null.NewString(course.LecturerID, course.LecturerID != "")
	if _, err := repo.db.ExecContext(ctx, query, course.ID, course.Code, course.Name, course.CreditHours, venue, lecturerID); err != nil {
		return catalog.Course{}, errors.Wrap(err, "inserting course")
	}
	return course, nil
}

func (repo catalogRepository) QueryAllCourses(ctx context.Context) ([]catalog.Course, error) {
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM course ORDER BY code ASC`); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]catalog.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.toCourse())
	}
	return courses, nil
}

func (repo catalogRepository) GetCourseByID(ctx context.Context, id string) (catalog.Course, error) {
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM course WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Course{}, catalog.ErrCourseNotFound
		}
		return catalog.Course{}, errors.Wrap(err, "getting course")
	}
	return row.toCourse(), nil
}

func (repo catalogRepository) UpdateCourse(ctx context.Context, course catalog.Course) (catalog.Course, error) {
	query := `UPDATE course SET code = $2, name = $3, credit_hours = $4, venue = $5, lecturer_id = $6 WHERE id = $1`
	venue := null.NewString(course.Venue, course.Venue != "")
	lecturerID := null.NewString(course.LecturerID, course.LecturerID != "")
	res, err := repo.db.ExecContext(ctx, query, course.ID, course.Code, course.Name, course.CreditHours, venue, lecturerID)
	if err != nil {
		return catalog.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.Course{}, catalog.ErrCourseNotFound
	}
	return course, nil
}

func (repo catalogRepository) DeleteCoursesByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM course WHERE id = ANY($1)`, inClause(ids)); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return nil
}

// --- lecturers ---

func (repo catalogRepository) CreateLecturer(ctx context.Context, lec catalog.Lecturer) (catalog.Lecturer, error) {
	if lec.ID == "" {
		lec.ID = uuid.New().String()
	}
	query := `INSERT INTO lecturer (id, name, email, phone) VALUES ($1, $2, $3, $4)`
	email := null.NewString(lec.Email, lec.Email != "")
	phone := null.NewString(lec.Phone, lec.Phone != "")
	if _, err := repo.db.ExecContext(ctx, query, lec.ID, lec.Name, email, phone); err != nil {
		return catalog.Lecturer{}, errors.Wrap(err, "inserting lecturer")
	}
	return lec, nil
}

func (repo catalogRepository) QueryAllLecturers(ctx context.Context) ([]catalog.Lecturer, error) {
	var rows []lecturerRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM lecturer ORDER BY name ASC`); err != nil {
		return nil, errors.Wrap(err, "querying lecturers")
	}
	lecturers := make([]catalog.Lecturer, 0, len(rows))
	for _, row := range rows {
		lecturers = append(lecturers, row.toLecturer())
	}
	return lecturers, nil
}

func (repo catalogRepository) GetLecturerByID(ctx context.Context, id string) (catalog.Lecturer, error) {
	var row lecturerRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM lecturer WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return catalog.Lecturer{}, catalog.ErrLecturerNotFound
		}
		return catalog.Lecturer{}, errors.Wrap(err, "getting lecturer")
	}
	return row.toLecturer(), nil
}

func (repo catalogRepository) UpdateLecturer(ctx context.Context, lec catalog.Lecturer) (catalog.Lecturer, error) {
	query := `UPDATE lecturer SET name = $2, email = $3, phone = $4 WHERE id = $1`
	email := null.NewString(lec.Email, lec.Email != "")
	phone := null.NewString(lec.Phone, lec.Phone != "")
	res, err := repo.db.ExecContext(ctx, query, lec.ID, lec.Name, email, phone)
	if err != nil {
		return catalog.Lecturer{}, errors.Wrap(err, "updating lecturer")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.Lecturer{}, catalog.ErrLecturerNotFound
	}
	return lec, nil
}

func (repo catalogRepository) DeleteLecturersByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := repo.db.ExecContext(ctx, `DELETE FROM lecturer WHERE id = ANY($1)`, inClause(ids)); err != nil {
		return errors.Wrap(err, "deleting lecturers")
	}
	return nil
}
