package main

import (
	"context"

	"github.com/pkg/errors"
)

// remind sends the payment reminder SMS to every student who still owes.
func (cli *commandLine) remind() error {
	ctx := context.Background()

	students, err := cli.students.Query(ctx, nil, nil)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	settings, err := cli.settingsRepo.GetSettings(ctx)
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}

	res := cli.dispatcher.SendPaymentReminders(ctx, students, settings)
	logger.Printf("reminders: sent %d, failed %d\n", res.Sent, res.Failed)
	return nil
}
