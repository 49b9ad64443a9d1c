package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// reminderSchedule fires at the top of every minute.
const reminderSchedule = "0 * * * * *"

// OpenDeliveryReminderJob periodically reminds drivers of their open
// deliveries over the realtime channel. Drivers without open deliveries
// receive nothing.
type OpenDeliveryReminderJob struct {
	deliveries ports.DeliveryRepository
	publisher  ports.NotificationPublisher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOpenDeliveryReminderJob creates a job that emits reminder events to each
// driver group that still has open deliveries.
func NewOpenDeliveryReminderJob(
	deliveries ports.DeliveryRepository,
	publisher ports.NotificationPublisher,
	logger *slog.Logger,
) *OpenDeliveryReminderJob {
	return &OpenDeliveryReminderJob{
		deliveries: deliveries,
		publisher:  publisher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "open_delivery_reminder_job"),
	}
}

// Start begins the reminder job on its schedule.
func (j *OpenDeliveryReminderJob) Start() error {
	_, err := j.cron.AddFunc(reminderSchedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Open delivery reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *OpenDeliveryReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Open delivery reminder job stopped")
}

// run performs one reminder round. Exposed to the cron scheduler only.
func (j *OpenDeliveryReminderJob) run() {
	ctx := context.Background()

	open, err := j.deliveries.GetAllOpen(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Open delivery reminder job failed", "error", err)
		return
	}

	byDriver := make(map[int64][]*delivery.Delivery)
	for _, d := range open {
		driverID := d.Driver().ID().Int64()
		byDriver[driverID] = append(byDriver[driverID], d)
	}

	for _, group := range byDriver {
		driver := group[0].Driver()
		j.publisher.Publish(
			ports.GroupForUser(driver.ID()),
			ports.EventOpenDeliveryReminder,
			commands.NewOpenDeliveryReminderNotification(group),
		)
	}

	if len(byDriver) > 0 {
		j.logger.DebugContext(ctx, "Reminded drivers of open deliveries", "drivers", len(byDriver), "deliveries", len(open))
	}
}
