package cron

import (
	"context"
	"testing"

	"lexdesk/config"
	"lexdesk/models"
	"lexdesk/services/reminders"
	"lexdesk/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSchedules(t *testing.T) {
	cfg := &config.Config{ReminderSchedule: "@every 24h", PurgeSchedule: "@every 168h"}

	got := Schedules(cfg)

	assert.Equal(t, map[string]string{
		reminders.JobTaskReminders:        "@every 24h",
		reminders.JobCaseReminders:        "@every 24h",
		reminders.JobAppointmentReminders: "@every 24h",
		reminders.JobPurgeNotifications:   "@every 168h",
	}, got)
}

func TestHandleJob_AlwaysReturnsNil(t *testing.T) {
	calls := 0
	job := func(context.Context) reminders.Result {
		calls++
		return reminders.Result{Job: "x", EmailsFailed: 3}
	}
	h := handleJob("x", job, zap.NewNop())

	task, _, err := tasks.NewJobTask(models.JobPayload{Job: "x", TriggeredBy: "A1"})
	require.NoError(t, err)
	assert.NoError(t, h.ProcessTask(context.Background(), task))

	assert.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask("x", []byte("{not json"))))
	assert.Equal(t, 2, calls)
}
