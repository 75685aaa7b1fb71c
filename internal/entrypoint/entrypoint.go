package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gymdesk/internal/config"
	"gymdesk/internal/database"
	"gymdesk/internal/database/clients"
	"gymdesk/internal/database/classes"
	historydb "gymdesk/internal/database/history"
	"gymdesk/internal/database/memberships"
	"gymdesk/internal/database/reservations"
	"gymdesk/internal/exporters"
	"gymdesk/internal/history"
	gymhttp "gymdesk/internal/http"
	"gymdesk/internal/scheduler"
	"gymdesk/internal/services"
	"gymdesk/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Run wires the persistence core, services, maintenance and HTTP surface
// together and blocks until shutdown.
func Run(cfg *config.Config, version string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Str("version", version).Msg("starting gymdesk")

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}()

	// Persistence core: DAOs, history engine, services.
	historyRepo := historydb.NewRepository(db)
	historyService := history.NewService(historyRepo, db)

	clientService := services.NewClientService(clients.NewRepository(db), historyService)
	membershipService := services.NewMembershipService(
		memberships.NewRepository(db),
		historyService,
		services.PriceTable{
			Monthly:                cfg.Pricing.Monthly,
			Quarterly:              cfg.Pricing.Quarterly,
			Yearly:                 cfg.Pricing.Yearly,
			StudentDiscountPercent: cfg.Pricing.StudentDiscountPercent,
		},
	)
	classService := services.NewClassService(
		classes.NewRepository(db),
		reservations.NewRepository(db),
		membershipService,
		historyService,
	)

	archiver := exporters.NewArchiver(cfg.Archive.Dir)

	// Background maintenance: task queue plus cron scheduler.
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var maintenance *scheduler.MaintenanceScheduler
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("error closing task client")
			}
		}()

		taskClient.Register(tasks.NewCleanupHistoryQueue(historyService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if cfg.Maintenance.Enabled {
			maintenance = scheduler.NewMaintenanceScheduler(
				historyService, taskClient, cfg.Maintenance.Schedule, cfg.History.RetentionDays)
			if err := maintenance.Start(taskCtx); err != nil {
				log.Fatal().Err(err).Msg("failed to start maintenance scheduler")
			}
		}
	}

	router := gymhttp.NewRouter(gymhttp.RouterConfig{
		Clients:     gymhttp.NewClientsController(clientService),
		Memberships: gymhttp.NewMembershipsController(membershipService),
		Classes:     gymhttp.NewClassesController(classService),
		History:     gymhttp.NewHistoryController(historyService),
		Transfer:    gymhttp.NewTransferController(clientService, membershipService, classService, archiver),
		Health:      gymhttp.NewHealthController(db, version),
	})

	Serve(router, cfg, func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		if taskCtxCancel != nil {
			taskCtxCancel()
		}
	})
}

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("host", cfg.HTTP.Host).Int32("port", cfg.HTTP.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before closing the listener.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server exiting")
}
