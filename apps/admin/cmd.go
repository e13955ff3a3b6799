package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/catalog"
	"github.com/ttucompsci/paytrack/core/notify"
	"github.com/ttucompsci/paytrack/core/staff"
	"github.com/ttucompsci/paytrack/core/student"
	"github.com/ttucompsci/paytrack/storage/database"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf         *core.Config
	db           *sql.DB
	students     *student.Service
	catalog      *catalog.Service
	staff        *staff.Service
	settingsRepo core.SettingsRepository
	dispatcher   *notify.Dispatcher
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb - create the application database and user if missing")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Println("  seed - load sample staff, catalog and student records")
	fmt.Println("  remind - send payment reminder SMS to students with an outstanding balance")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "createdb":
		return database.CreateIfNotExist(cli.conf)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	case "remind":
		return cli.remind()
	default:
		cli.printUsage()
		return errHelp
	}
}
