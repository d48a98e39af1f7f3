package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	echoapi "github.com/szkolix/backend/apps/api/echo"
	"github.com/szkolix/backend/core"
	"github.com/szkolix/backend/core/bulkimport"
	"github.com/szkolix/backend/core/catalog"
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/reports"
	"github.com/szkolix/backend/core/synthetic"
	"github.com/szkolix/backend/core/user"
	emailsvc "github.com/szkolix/backend/services/email"
	logsvc "github.com/szkolix/backend/services/logger"
	"github.com/szkolix/backend/storage/database"
	inmemdb "github.com/szkolix/backend/storage/database/inmem"
	sqlxrepos "github.com/szkolix/backend/storage/database/sqlx"
)

const shutdownTimeout = 20 * time.Second

func main() {
	logger := newLogger()

	// set up repositories; PostgreSQL when configured, the seeded in-memory
	// dataset otherwise
	var (
		usrRepo        user.Repository
		catalogRepo    catalog.Repository
		enrollmentRepo enrollment.Repository
	)
	if core.Conf.Database.User != "" {
		db, err := database.Open(core.Conf)
		if err != nil {
			logger.Error("opening database", err)
			os.Exit(1)
		}
		defer db.Close()
		if err = database.Ping(db); err != nil {
			logger.Error("waiting for database", err)
			os.Exit(1)
		}
		if err = database.Migrate(db); err != nil {
			logger.Error("migrating database", err)
			os.Exit(1)
		}
		usrRepo = sqlxrepos.NewUserRepository(db)
		catalogRepo = sqlxrepos.NewCatalogRepository(db)
		enrollmentRepo = sqlxrepos.NewEnrollmentRepository(db)
	} else {
		db, err := inmemdb.OpenSeeded()
		if err != nil {
			logger.Error("seeding in-memory database", err)
			os.Exit(1)
		}
		usrRepo = inmemdb.NewUserRepository(db)
		catalogRepo = inmemdb.NewCatalogRepository(db)
		enrollmentRepo = inmemdb.NewEnrollmentRepository(db)
	}

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(usrRepo, mailSvc)
	catalogSvc := catalog.NewService(catalogRepo)
	enrollmentSvc := enrollment.NewService(enrollmentRepo)
	importSvc := bulkimport.NewService(usrSvc, mailSvc, logger)
	agg := reports.NewAggregator(synthetic.NewHashMetrics())

	logger.Info(fmt.Sprintf("%s API initializing : version %q", core.Conf.AppName, core.Conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(&echoapi.Options{
		Addr:          core.Conf.Server.Addr,
		Logger:        logger,
		UserSvc:       usrSvc,
		CatalogSvc:    catalogSvc,
		EnrollmentSvc: enrollmentSvc,
		ImportSvc:     importSvc,
		Aggregator:    agg,
	})

	go server.Start()

	select {
	case err := <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)
		os.Exit(1)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
				os.Exit(1)
			}
		}
	}
}

func newLogger() core.Logger {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	switch core.Conf.Env {
	case "PROD":
		logger := logsvc.NewRollbarLogger(std, core.Conf)
		logger.Enable(true)
		return logger
	case "QA":
		zl, err := zap.NewProduction()
		if err != nil {
			return logsvc.NewStdLogger(std)
		}
		return logsvc.NewZapLogger(zl)
	default:
		return logsvc.NewStdLogger(std)
	}
}
