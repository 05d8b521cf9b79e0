package service

import (
	"context"
	"fmt"
	"nailstudio/internal/domain/repository"
	"nailstudio/internal/infrastructure/scheduler"
	"nailstudio/internal/pkg/logger"
	"nailstudio/internal/pkg/metrics"
	"time"
)

const purgeTimeout = 30 * time.Second

type schedulerService struct {
	cronScheduler *scheduler.Scheduler
	stateRepo     repository.OAuthStateRepository
	cleanupSpec   string
	metrics       metrics.Recorder
	log           logger.Logger
	now           func() time.Time
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
// cleanupSpec is the six-field cron spec of the expired-state purge.
func NewSchedulerService(
	cronScheduler *scheduler.Scheduler,
	stateRepo repository.OAuthStateRepository,
	cleanupSpec string,
	recorder metrics.Recorder,
	log logger.Logger,
) SchedulerService {
	return &schedulerService{
		cronScheduler: cronScheduler,
		stateRepo:     stateRepo,
		cleanupSpec:   cleanupSpec,
		metrics:       recorder,
		log:           log,
		now:           time.Now,
	}
}

// InitializeSchedules runs one purge, registers the recurring purge and starts the scheduler.
func (s *schedulerService) InitializeSchedules(ctx context.Context) error {
	s.log.Info("Initializing maintenance schedules...")
	if _, err := s.PurgeExpiredStates(ctx); err != nil {
		s.log.Warn(fmt.Sprintf("Initial oauth state purge failed: %v", err))
	}

	if _, err := s.cronScheduler.AddJob(s.cleanupSpec, s.runPurge); err != nil {
		return err
	}
	s.cronScheduler.Start()
	s.log.Debug(fmt.Sprintf("Current cron entries: %d", len(s.cronScheduler.Entries())))
	return nil
}

func (s *schedulerService) runPurge() {
	// Use background context for cron job execution.
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()
	if _, err := s.PurgeExpiredStates(ctx); err != nil {
		s.log.Error("Scheduled oauth state purge failed", err)
	}
}

// PurgeExpiredStates deletes OAuth states whose expiry has passed.
func (s *schedulerService) PurgeExpiredStates(ctx context.Context) (int64, error) {
	removed, err := s.stateRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	s.metrics.RecordStatesPurged(removed)
	if removed > 0 {
		s.log.Info(fmt.Sprintf("Purged %d expired oauth states", removed))
	}
	return removed, nil
}

// Stop stops the underlying scheduler.
func (s *schedulerService) Stop() {
	s.cronScheduler.Stop()
}
