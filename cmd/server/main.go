package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/config"
	"github.com/anupkhare/finreport/internal/repository"
	"github.com/anupkhare/finreport/internal/repository/drive"
	"github.com/anupkhare/finreport/internal/repository/localstore"
	"github.com/anupkhare/finreport/internal/repository/mongodb"
	"github.com/anupkhare/finreport/internal/scheduler"
	"github.com/anupkhare/finreport/internal/server/handlers"
	"github.com/anupkhare/finreport/internal/server/router"
	finlogsvc "github.com/anupkhare/finreport/internal/service/finlog"
	projectsvc "github.com/anupkhare/finreport/internal/service/projects"
	reportsvc "github.com/anupkhare/finreport/internal/service/reports"
	"github.com/anupkhare/finreport/pkg/clients/googleauth"
	"github.com/anupkhare/finreport/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var store repository.Store
	switch cfg.Storage.Backend {
	case config.BackendMongo:
		mongoStore, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		store = mongoStore
	default:
		localStore, err := localstore.New(cfg.Storage.DataDir, baseLogger.Named("repo.local"))
		if err != nil {
			baseLogger.Fatal("failed to init local store", zap.Error(err))
		}
		store = localStore
	}

	// The Drive archive is optional; with no credentials every export stays
	// local and project mirroring is skipped.
	var archive *drive.DriveArchive
	if cfg.Google.CredentialsPath != "" {
		archive, err = drive.New(context.Background(), cfg.Google, baseLogger.Named("repo.drive"))
		if err != nil {
			baseLogger.Fatal("failed to init drive archive", zap.Error(err))
		}
		baseLogger.Info("drive archive enabled", zap.String("folder", cfg.Google.DriveFolderName))
	} else {
		baseLogger.Warn("google credentials missing, remote archive disabled")
	}

	var projectArchiver projectsvc.Archiver
	var reportArchiver reportsvc.Archiver
	if archive != nil {
		projectArchiver = archive
		reportArchiver = archive
	}

	projectsSvc := projectsvc.NewService(store, projectArchiver, baseLogger.Named("svc.projects"))
	finlogSvc := finlogsvc.NewService(store, baseLogger.Named("svc.finlog"))
	reportsSvc := reportsvc.NewService(store, reportArchiver, baseLogger.Named("svc.reports"))

	var verifier googleauth.Verifier
	if cfg.Google.OAuthClientID != "" {
		verifier = googleauth.NewClient(cfg.Google)
		baseLogger.Info("api auth guard enabled")
	} else {
		baseLogger.Warn("oauth client id missing, api auth guard disabled")
	}

	projectHandler := handlers.NewProjectHandler(projectsSvc, baseLogger.Named("handlers.projects"))
	financialHandler := handlers.NewFinancialHandler(finlogSvc, baseLogger.Named("handlers.financial"))
	reportHandler := handlers.NewReportHandler(reportsSvc, baseLogger.Named("handlers.reports"))
	engine := router.New(projectHandler, financialHandler, reportHandler, verifier, baseLogger.Named("router"))

	sched := scheduler.New(cfg.Reporting, projectsSvc, reportsSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
