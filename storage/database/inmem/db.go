package inmemdb

import (
	"sync"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/catalog"
	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/staff"
	"github.com/ttucompsci/paytrack/core/student"
)

type (
	DB struct {
		student  *studentTable
		payment  *paymentTable
		item     *itemTable
		course   *courseTable
		lecturer *lecturerTable
		staff    *staffTable
		settings *settingsTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}

	paymentTable struct {
		sync.RWMutex
		table map[string]*payment.Payment
	}

	itemTable struct {
		sync.RWMutex
		table map[string]*catalog.Item
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*catalog.Course
	}

	lecturerTable struct {
		sync.RWMutex
		table map[string]*catalog.Lecturer
	}

	staffTable struct {
		sync.RWMutex
		table map[string]*staff.Staff
	}

	settingsTable struct {
		sync.RWMutex
		settings *core.SystemSettings
	}
)

func Open() (*DB, error) {
	db := &DB{
		student:  &studentTable{table: make(map[string]*student.Student)},
		payment:  &paymentTable{table: make(map[string]*payment.Payment)},
		item:     &itemTable{table: make(map[string]*catalog.Item)},
		course:   &courseTable{table: make(map[string]*catalog.Course)},
		lecturer: &lecturerTable{table: make(map[string]*catalog.Lecturer)},
		staff:    &staffTable{table: make(map[string]*staff.Staff)},
		settings: &settingsTable{},
	}
	return db, nil
}
