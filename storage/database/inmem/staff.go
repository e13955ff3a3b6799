package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ttucompsci/paytrack/core/staff"
)

type staffRepository struct {
	db *staffTable
}

var _ staff.Repository = (*staffRepository)(nil)

func NewStaffRepository(db *DB) *staffRepository {
	return &staffRepository{db: db.staff}
}

func (repo *staffRepository) query() []staff.Staff {
	members := make([]staff.Staff, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		members = append(members, *s)
	}
	return members
}

func (repo *staffRepository) CheckEmailUniqueness(ctx context.Context, email string, excluded ...staff.Staff) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, s := range repo.query() {
		if s.Email == email && !isExcludedStaff(s, excluded) {
			return staff.ErrEmailExists
		}
	}
	return nil
}

func (repo *staffRepository) CreateStaff(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *staffRepository) QueryAllStaff(ctx context.Context) ([]staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := repo.query()
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

func (repo *staffRepository) GetStaffByID(ctx context.Context, id string) (staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.table[id]; ok {
		return *s, nil
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *staffRepository) GetStaffByEmail(ctx context.Context, email string) (staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, s := range repo.query() {
		if s.Email == email {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *staffRepository) UpdateStaff(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[s.ID]; !ok {
		return staff.Staff{}, staff.ErrNotFound
	}
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *staffRepository) DeleteStaffByID(ctx context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}

func isExcludedStaff(s staff.Staff, excluded []staff.Staff) bool {
	for _, ex := range excluded {
		if ex.ID == s.ID {
			return true
		}
	}
	return false
}
