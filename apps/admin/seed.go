package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ttucompsci/paytrack/core/catalog"
	"github.com/ttucompsci/paytrack/core/staff"
	"github.com/ttucompsci/paytrack/core/student"
)

// seed loads a small data set for local development. Records that already
// exist (same index number or email) are skipped.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	staffSeed := []staff.NewStaff{
		{Name: "Kwame Boateng", Email: "kwame.boateng@ttu.edu.gh", Phone: "0244000001", Role: staff.RoleSuperAdmin},
		{Name: "Akosua Darko", Email: "akosua.darko@ttu.edu.gh", Phone: "0244000002", Role: staff.RoleMainRep},
	}
	for _, ns := range staffSeed {
		if _, err := cli.staff.Create(ctx, ns); err != nil {
			if errors.Cause(err) == staff.ErrEmailExists {
				continue
			}
			return errors.Wrapf(err, "seeding staff %s", ns.Email)
		}
	}

	lect, err := cli.catalog.CreateLecturer(ctx, catalog.NewLecturer{
		Name:  "Dr. Yaw Ofori",
		Email: "yaw.ofori@ttu.edu.gh",
		Phone: "0244000010",
	})
	if err != nil {
		return errors.Wrap(err, "seeding lecturer")
	}

	course, err := cli.catalog.CreateCourse(ctx, catalog.NewCourse{
		Code:        "CSM 157",
		Name:        "Introduction to Structured Programming",
		CreditHours: 3,
		Venue:       "Lab 2",
		LecturerID:  lect.ID,
	})
	if err != nil {
		return errors.Wrap(err, "seeding course")
	}

	itemSeed := []catalog.NewItem{
		{Name: "Structured Programming Handout", Type: catalog.ItemHandout, Price: 30, CourseID: course.ID},
		{Name: "Departmental Trip", Type: catalog.ItemTrip, Price: 120},
	}
	for _, ni := range itemSeed {
		if _, err := cli.catalog.CreateItem(ctx, ni); err != nil {
			return errors.Wrapf(err, "seeding item %s", ni.Name)
		}
	}

	studentSeed := []student.NewStudent{
		{Name: "Ama Mensah", IndexNumber: "BC/ITS/24/001", Phone: "0241234567", TotalAmountDue: 200},
		{Name: "Kofi Asante", IndexNumber: "BC/ITN/24/060", Phone: "0557654321", TotalAmountDue: 200},
		{Name: "Esi Owusu", IndexNumber: "BC/ITD/24/120", Phone: "0209876543", TotalAmountDue: 200},
	}
	for _, ns := range studentSeed {
		if _, err := cli.students.Create(ctx, ns); err != nil {
			if errors.Cause(err) == student.ErrIndexNumberExists {
				continue // already enrolled
			}
			return errors.Wrapf(err, "seeding student %s", ns.IndexNumber)
		}
	}

	logger.Println("seed data loaded")
	return nil
}
