package main

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/catalog"
	"github.com/ttucompsci/paytrack/core/notify"
	"github.com/ttucompsci/paytrack/core/staff"
	"github.com/ttucompsci/paytrack/core/student"
	logsvc "github.com/ttucompsci/paytrack/services/logger"
	smssvc "github.com/ttucompsci/paytrack/services/sms"
	"github.com/ttucompsci/paytrack/storage/database"
	sqlxrepos "github.com/ttucompsci/paytrack/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	svcLogger := logsvc.NewRollbarLogger(logger, conf)
	svcLogger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())
	dbx := sqlx.NewDb(db, "postgres")

	var smsSender core.SMSSender
	if conf.Debug {
		smsSender = smssvc.NewConsoleService()
	} else {
		smsSender = smssvc.NewGatewayService(conf, svcLogger)
	}

	// start CLI
	cli := commandLine{
		conf:         conf,
		db:           db,
		students:     student.NewService(sqlxrepos.NewStudentRepository(dbx)),
		catalog:      catalog.NewService(sqlxrepos.NewCatalogRepository(dbx)),
		staff:        staff.NewService(sqlxrepos.NewStaffRepository(dbx)),
		settingsRepo: sqlxrepos.NewSettingsRepository(dbx),
		dispatcher:   notify.NewDispatcher(smsSender, svcLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
