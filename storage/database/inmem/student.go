package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, st := range repo.db.table {
		students = append(students, *st)
	}
	return students
}

func (repo *studentRepository) CheckIndexNumberUniqueness(ctx context.Context, indexNumber string, excluded ...student.Student) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, st := range repo.query() {
		if st.IndexNumber == indexNumber && !isExcludedStudent(st, excluded) {
			return student.ErrIndexNumberExists
		}
	}
	return nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	repo.db.table[st.ID] = &st
	return st, nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter *student.QueryFilter, ordering []core.DBOrdering) ([]student.Student, error) {
	repo.db.RLock()
	students := repo.query()
	repo.db.RUnlock()

	if filter != nil && !filter.IsEmpty() {
		filter.Clean()
		matched := make([]student.Student, 0, len(students))
		for _, st := range students {
			if matchStudent(st, filter) {
				matched = append(matched, st)
			}
		}
		students = matched
	}

	sortStudents(students, ordering)
	return students, nil
}

func matchStudent(st student.Student, filter *student.QueryFilter) bool {
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(st.Name), search) &&
			!strings.Contains(strings.ToLower(st.IndexNumber), search) {
			return false
		}
	}
	if filter.Specialization != "" && st.Specialization != filter.Specialization {
		return false
	}
	if filter.Group != "" && st.Group != filter.Group {
		return false
	}
	if filter.Status != "" && st.PaymentStatus != filter.Status {
		return false
	}
	if filter.AcademicYear != "" && st.AcademicYear != filter.AcademicYear {
		return false
	}
	return true
}

func sortStudents(students []student.Student, ordering []core.DBOrdering) {
	less := func(a, b student.Student) bool { return a.IndexNumber < b.IndexNumber }
	if len(ordering) > 0 {
		ord := ordering[0]
		less = func(a, b student.Student) bool {
			var cmp bool
			switch ord.Field {
			case "name":
				cmp = a.Name < b.Name
			case "created_at":
				cmp = a.CreatedAt.Before(b.CreatedAt)
			case "total_amount_paid":
				cmp = a.TotalAmountPaid < b.TotalAmountPaid
			default:
				cmp = a.IndexNumber < b.IndexNumber
			}
			if !ord.Ascending {
				return !cmp
			}
			return cmp
		}
	}
	sort.Slice(students, func(i, j int) bool { return less(students[i], students[j]) })
}

func (repo *studentRepository) GetStudent(ctx context.Context, filter student.GetFilter) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != "" {
		if st, ok := repo.db.table[filter.ID]; ok {
			return *st, nil
		}
		return student.Student{}, student.ErrNotFound
	}
	if filter.IndexNumber != "" {
		for _, st := range repo.query() {
			if st.IndexNumber == filter.IndexNumber {
				return st, nil
			}
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[st.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.table[st.ID] = &st
	return st, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func isExcludedStudent(st student.Student, excluded []student.Student) bool {
	for _, ex := range excluded {
		if ex.ID == st.ID {
			return true
		}
	}
	return false
}
