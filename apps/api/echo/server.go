package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ttucompsci/paytrack/core"
	"github.com/ttucompsci/paytrack/core/catalog"
	"github.com/ttucompsci/paytrack/core/notify"
	"github.com/ttucompsci/paytrack/core/payment"
	"github.com/ttucompsci/paytrack/core/report"
	"github.com/ttucompsci/paytrack/core/staff"
	"github.com/ttucompsci/paytrack/core/student"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		DisableReqLogs bool

		StudentSvc   *student.Service
		PaymentSvc   *payment.Service
		CatalogSvc   *catalog.Service
		StaffSvc     *staff.Service
		ReportSvc    *report.Service
		Dispatcher   *notify.Dispatcher
		SettingsRepo core.SettingsRepository

		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")

	registerStudentAPI(v1, s.deps)
	registerPaymentAPI(v1, s.deps)
	registerCatalogAPI(v1, s.deps)
	registerStaffAPI(v1, s.deps)
	registerSettingsAPI(v1, s.deps)
	registerSMSAPI(v1, s.deps)
	registerReportAPI(v1, s.deps)
}

func (s *server) Start() {
	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
			s.errs <- err
		}
	}()
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errs
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// signalShutdown lets the error handler request a graceful stop on
// unrecoverable integrity errors.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the TTU CS Payments API!")
}
