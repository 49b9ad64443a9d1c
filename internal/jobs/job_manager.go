package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	openDeliveryReminderJob *OpenDeliveryReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	deliveries ports.DeliveryRepository,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		openDeliveryReminderJob: NewOpenDeliveryReminderJob(deliveries, publisher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.openDeliveryReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start open delivery reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.openDeliveryReminderJob.Stop()
}
