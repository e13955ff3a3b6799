package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ttucompsci/paytrack/core/catalog"
)

type catalogRepository struct {
	items     *itemTable
	courses   *courseTable
	lecturers *lecturerTable
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{items: db.item, courses: db.course, lecturers: db.lecturer}
}

// --- items ---

func (repo *catalogRepository) CreateItem(ctx context.Context, item catalog.Item) (catalog.Item, error) {
	repo.items.Lock()
	defer repo.items.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	repo.items.table[item.ID] = &item
	return item, nil
}

func (repo *catalogRepository) QueryAllItems(ctx context.Context) ([]catalog.Item, error) {
	repo.items.RLock()
	defer repo.items.RUnlock()

	items := make([]catalog.Item, 0, len(repo.items.table))
	for _, item := range repo.items.table {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (repo *catalogRepository) GetItemByID(ctx context.Context, id string) (catalog.Item, error) {
	repo.items.RLock()
	defer repo.items.RUnlock()

	if item, ok := repo.items.table[id]; ok {
		return *item, nil
	}
	return catalog.Item{}, catalog.ErrItemNotFound
}

func (repo *catalogRepository) UpdateItem(ctx context.Context, item catalog.Item) (catalog.Item, error) {
	repo.items.Lock()
	defer repo.items.Unlock()

	if _, ok := repo.items.table[item.ID]; !ok {
		return catalog.Item{}, catalog.ErrItemNotFound
	}
	repo.items.table[item.ID] = &item
	return item, nil
}

func (repo *catalogRepository) DeleteItemsByID(ctx context.Context, ids ...string) error {
	repo.items.Lock()
	defer repo.items.Unlock()
	for _, id := range ids {
		delete(repo.items.table, id)
	}
	return nil
}

// --- courses ---

func (repo *catalogRepository) CreateCourse(ctx context.Context, course catalog.Course) (catalog.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	repo.courses.table[course.ID] = &course
	return course, nil
}

func (repo *catalogRepository) QueryAllCourses(ctx context.Context) ([]catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	courses := make([]catalog.Course, 0, len(repo.courses.table))
	for _, course := range repo.courses.table {
		courses = append(courses, *course)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses, nil
}

func (repo *catalogRepository) GetCourseByID(ctx context.Context, id string) (catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	if course, ok := repo.courses.table[id]; ok {
		return *course, nil
	}
	return catalog.Course{}, catalog.ErrCourseNotFound
}

func (repo *catalogRepository) UpdateCourse(ctx context.Context, course catalog.Course) (catalog.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	if _, ok := repo.courses.table[course.ID]; !ok {
		return catalog.Course{}, catalog.ErrCourseNotFound
	}
	repo.courses.table[course.ID] = &course
	return course, nil
}

func (repo *catalogRepository) DeleteCoursesByID(ctx context.Context, ids ...string) error {
	repo.courses.Lock()
	defer repo.courses.Unlock()
	for _, id := range ids {
		delete(repo.courses.table, id)
	}
	return nil
}

// --- lecturers ---

func (repo *catalogRepository) CreateLecturer(ctx context.Context, lec catalog.Lecturer) (catalog.Lecturer, error) {
	repo.lecturers.Lock()
	defer repo.lecturers.Unlock()

	if lec.ID == "" {
		lec.ID = uuid.New().String()
	}
	repo.lecturers.table[lec.ID] = &lec
	return lec, nil
}

func (repo *catalogRepository) QueryAllLecturers(ctx context.Context) ([]catalog.Lecturer, error) {
	repo.lecturers.RLock()
	defer repo.lecturers.RUnlock()

	lecturers := make([]catalog.Lecturer, 0, len(repo.lecturers.table))
	for _, lec := range repo.lecturers.table {
		lecturers = append(lecturers, *lec)
	}
	sort.Slice(lecturers, func(i, j int) bool { return lecturers[i].Name < lecturers[j].Name })
	return lecturers, nil
}

func (repo *catalogRepository) GetLecturerByID(ctx context.Context, id string) (catalog.Lecturer, error) {
	repo.lecturers.RLock()
	defer repo.lecturers.RUnlock()

	if lec, ok := repo.lecturers.table[id]; ok {
		return *lec, nil
	}
	return catalog.Lecturer{}, catalog.ErrLecturerNotFound
}

func (repo *catalogRepository) UpdateLecturer(ctx context.Context, lec catalog.Lecturer) (catalog.Lecturer, error) {
	repo.lecturers.Lock()
	defer repo.lecturers.Unlock()

	if _, ok := repo.lecturers.table[lec.ID]; !ok {
		return catalog.Lecturer{}, catalog.ErrLecturerNotFound
	}
	repo.lecturers.table[lec.ID] = &lec
	return lec, nil
}

func (repo *catalogRepository) DeleteLecturersByID(ctx context.Context, ids ...string) error {
	repo.lecturers.Lock()
	defer repo.lecturers.Unlock()
	for _, id := range ids {
		delete(repo.lecturers.table, id)
	}
	return nil
}
