package service

import "context"

// SchedulerService defines the interface for background maintenance jobs.
type SchedulerService interface {
	// InitializeSchedules purges stale state once and registers the recurring jobs.
	InitializeSchedules(ctx context.Context) error
	// PurgeExpiredStates deletes OAuth states whose expiry has passed.
	PurgeExpiredStates(ctx context.Context) (int64, error)
	// Stop stops the underlying scheduler.
	Stop()
}
