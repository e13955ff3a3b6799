package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/ttucompsci/paytrack/apps/api/echo"
	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/catalog"
	"github.com/ttucompsci/paytrack/core/notify"
	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/report"
	"github.com/ttucompsci/paytrack/core/staff"
	"github.com/ttucompsci/paytrack/core/student"
	logsvc "github.com/ttucompsci/paytrack/services/logger"
	smssvc "github.com/ttucompsci/paytrack/services/sms"
	"github.com/ttucompsci/paytrack/storage/database"
	sqlxrepos "github.com/ttucompsci/paytrack/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	dbx := sqlx.NewDb(db, "postgres")

	// set up services
	var smsSender core.SMSSender
	if conf.Debug {
		smsSender = smssvc.NewConsoleService()
	} else {
		smsSender = smssvc.NewGatewayService(conf, logger)
	}
	dispatcher := notify.NewDispatcher(smsSender, logger)

	settingsRepo := sqlxrepos.NewSettingsRepository(dbx)
	studentSvc := student.NewService(sqlxrepos.NewStudentRepository(dbx))
	catalogSvc := catalog.NewService(sqlxrepos.NewCatalogRepository(dbx))
	staffSvc := staff.NewService(sqlxrepos.NewStaffRepository(dbx))
	paymentSvc := payment.NewService(
		sqlxrepos.NewPaymentRepository(dbx),
		studentSvc, catalogSvc, dispatcher, settingsRepo, logger,
	)
	reportSvc := report.NewService(studentSvc, paymentSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			StudentSvc:   studentSvc,
			PaymentSvc:   paymentSvc,
			CatalogSvc:   catalogSvc,
			StaffSvc:     staffSvc,
			ReportSvc:    reportSvc,
			Dispatcher:   dispatcher,
			SettingsRepo: settingsRepo,
			Validate:     validate,
			Translator:   translator,
		},
	)

	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
