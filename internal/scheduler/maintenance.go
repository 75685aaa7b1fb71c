package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"gymdesk/internal/history"
	"gymdesk/internal/tasks"
)

// MaintenanceScheduler runs the nightly upkeep: it creates an automatic
// restore point and enqueues the history retention cleanup. The work is
// handed to the task queue so the cron tick itself stays cheap.
type MaintenanceScheduler struct {
	history       *history.Service
	taskClient    *tasks.Client
	schedule      string
	retentionDays int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewMaintenanceScheduler(hist *history.Service, taskClient *tasks.Client, schedule string, retentionDays int) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		history:       hist,
		taskClient:    taskClient,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runMaintenance)
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", s.schedule, err)
	}

	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true
	log.Info().Str("schedule", s.schedule).Msg("maintenance scheduler started")
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.isRunning = false
	log.Info().Msg("maintenance scheduler stopped")
}

func (s *MaintenanceScheduler) runMaintenance() {
	name := "auto-" + time.Now().Format("2006-01-02")
	if _, err := s.history.CreateRestorePoint(name, "automatic nightly restore point"); err != nil {
		log.Warn().Err(err).Msg("failed to create automatic restore point")
	}

	if _, err := s.taskClient.Add(tasks.CleanupHistoryTask{RetentionDays: s.retentionDays}).Save(); err != nil {
		log.Warn().Err(err).Msg("failed to enqueue history cleanup")
	}
}
