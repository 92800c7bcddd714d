// Package reminders holds the scheduled scans that email lawyers about
// upcoming deadlines, and the notification retention purge.
package reminders

import (
	"context"
	"fmt"
	"sort"
	"time"

	appointmentRepo "lexdesk/database/repository/appointment"
	caseRepo "lexdesk/database/repository/cases"
	notificationRepo "lexdesk/database/repository/notification"
	taskRepo "lexdesk/database/repository/task"
	"lexdesk/models"
	"lexdesk/services/notification"
	"lexdesk/utils"

	"go.uber.org/zap"
)

// Job names, also used as asynq task types.
const (
	JobTaskReminders        = "reminders:tasks"
	JobCaseReminders        = "reminders:cases"
	JobAppointmentReminders = "reminders:appointments"
	JobPurgeNotifications   = "notifications:purge"
)

// DefaultRetention is how long a notification is kept before the purge.
const DefaultRetention = 15 * 24 * time.Hour

// Result summarises one job run.
type Result struct {
	Job           string `json:"job"`
	Matched       int    `json:"matched"`
	EmailsSent    int    `json:"emailsSent"`
	EmailsFailed  int    `json:"emailsFailed"`
	Notifications int    `json:"notifications"`
	Deleted       int    `json:"deleted"`
}

// Deps are the collaborators the jobs need.
type Deps struct {
	Tasks         taskRepo.TaskRepository
	Cases         caseRepo.CaseRepository
	Appointments  appointmentRepo.AppointmentRepository
	Notifications notificationRepo.NotificationRepository
	Mailer        notification.Mailer
	Clock         utils.Clock
	Location      *time.Location
	Retention     time.Duration
	Logger        *zap.Logger
}

// Runner executes the reminder and purge jobs. It keeps no state between runs.
type Runner struct {
	d Deps
}

func NewRunner(d Deps) *Runner {
	if d.Clock == nil {
		d.Clock = utils.SystemClock{}
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Retention <= 0 {
		d.Retention = DefaultRetention
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	d.Logger = d.Logger.Named("reminders")
	return &Runner{d: d}
}

// JobFunc is one runnable job.
type JobFunc func(ctx context.Context) Result

// Jobs maps each job name to its entry point.
func (r *Runner) Jobs() map[string]JobFunc {
	return map[string]JobFunc{
		JobTaskReminders:        r.RunTaskReminders,
		JobCaseReminders:        r.RunCaseReminders,
		JobAppointmentReminders: r.RunAppointmentReminders,
		JobPurgeNotifications:   r.PurgeNotifications,
	}
}

// JobNames lists the registered jobs in a stable order.
func (r *Runner) JobNames() []string {
	names := make([]string, 0, 4)
	for name := range r.Jobs() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named job.
func (r *Runner) Run(ctx context.Context, name string) (Result, error) {
	job, ok := r.Jobs()[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown job %q", name)
	}
	return job(ctx), nil
}

func (r *Runner) window() Window {
	return DayWindow(r.d.Clock.Now(), r.d.Location)
}

// writeNotification persists one inbox entry and logs a failure.
func (r *Runner) writeNotification(ctx context.Context, t models.NotificationType, entityID string, lawyerIDs []string, message string) bool {
	n := models.NewEntityNotification(t, entityID, lawyerIDs, message, r.d.Clock.Now())
	if _, err := r.d.Notifications.Create(ctx, n); err != nil {
		r.d.Logger.Error("Failed to write notification",
			zap.String("type", string(t)),
			zap.String("entityId", entityID),
			zap.Error(err),
		)
		return false
	}
	return true
}
