package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lexdesk/config"
	"lexdesk/models"
	"lexdesk/services/reminders"
	"lexdesk/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker runs the reminder and purge jobs on their cron schedules through
// asynq: the scheduler enqueues, the server executes.
type Worker struct {
	srv       *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	client    *asynq.Client
	logger    *zap.Logger
}

// RedisOpt is the asynq connection for the jobs database.
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisJobsDB,
	}
}

// Schedules maps every job to its cron spec.
func Schedules(cfg *config.Config) map[string]string {
	return map[string]string{
		reminders.JobTaskReminders:        cfg.ReminderSchedule,
		reminders.JobCaseReminders:        cfg.ReminderSchedule,
		reminders.JobAppointmentReminders: cfg.ReminderSchedule,
		reminders.JobPurgeNotifications:   cfg.PurgeSchedule,
	}
}

// NewWorker wires every runner job into an asynq mux and registers the
// schedules.
func NewWorker(cfg *config.Config, runner *reminders.Runner, logger *zap.Logger) (*Worker, error) {
	logger = logger.Named("cron")
	redisOpt := RedisOpt(cfg)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 4,
		Queues:      map[string]int{"default": 1},
	})

	mux := asynq.NewServeMux()
	for name, job := range runner.Jobs() {
		mux.HandleFunc(name, handleJob(name, job, logger))
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Location: cfg.Location()})
	for name, spec := range Schedules(cfg) {
		task, opts, err := tasks.NewJobTask(models.JobPayload{Job: name})
		if err != nil {
			return nil, err
		}
		entryID, err := scheduler.Register(spec, task, opts...)
		if err != nil {
			return nil, fmt.Errorf("register %s (%s): %w", name, spec, err)
		}
		logger.Info("Job scheduled", zap.String("job", name), zap.String("spec", spec), zap.String("entryId", entryID))
	}

	return &Worker{
		srv:       srv,
		mux:       mux,
		scheduler: scheduler,
		client:    asynq.NewClient(redisOpt),
		logger:    logger,
	}, nil
}

// Start launches the server and the scheduler, retrying the server start a
// few times while Redis comes up.
func (w *Worker) Start() error {
	const maxAttempts = 5
	for attempt := 1; ; attempt++ {
		err := w.srv.Start(w.mux)
		if err == nil {
			break
		}
		w.logger.Warn("Failed to start job server", zap.Int("attempt", attempt), zap.Error(err))
		if attempt == maxAttempts {
			return fmt.Errorf("start job server: %w", err)
		}
		time.Sleep(time.Duration(attempt*2) * time.Second)
	}
	if err := w.scheduler.Start(); err != nil {
		w.srv.Shutdown()
		return fmt.Errorf("start scheduler: %w", err)
	}
	w.logger.Info("Job worker started")
	return nil
}

// Enqueue queues a job for immediate execution.
func (w *Worker) Enqueue(ctx context.Context, payload models.JobPayload) (string, error) {
	task, opts, err := tasks.NewJobTask(payload)
	if err != nil {
		return "", err
	}
	info, err := w.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", payload.Job, err)
	}
	return info.ID, nil
}

// Shutdown stops the scheduler first so nothing new is enqueued, then drains
// the server.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.srv.Shutdown()
	if err := w.client.Close(); err != nil {
		w.logger.Warn("Failed to close asynq client", zap.Error(err))
	}
	w.logger.Info("Job worker stopped")
}

// handleJob adapts a runner job to asynq. It always returns nil: a job that
// partly failed has already logged why, and a retry would resend to the
// recipients that did succeed.
func handleJob(name string, job reminders.JobFunc, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.JobPayload
		if len(task.Payload()) > 0 {
			if err := json.Unmarshal(task.Payload(), &p); err != nil {
				logger.Warn("Ignoring malformed job payload", zap.String("job", name), zap.Error(err))
			}
		}

		start := time.Now()
		res := job(ctx)
		logger.Info("Job finished",
			zap.String("job", name),
			zap.String("triggeredBy", p.TriggeredBy),
			zap.Duration("took", time.Since(start)),
			zap.Any("result", res),
		)
		return nil
	}
}
