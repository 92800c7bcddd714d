package reminders

import (
	"context"
	"fmt"

	"lexdesk/models"
	"lexdesk/services/notification"

	"go.uber.org/zap"
)

// RunTaskReminders emails every lawyer on each task due inside today's
// window, then writes one notification per task listing the lawyers who
// were reached. A task whose sends all failed gets no notification.
func (r *Runner) RunTaskReminders(ctx context.Context) Result {
	res := Result{Job: JobTaskReminders}
	w := r.window()
	from, to := w.QueryRange()

	tasks, err := r.d.Tasks.FindDueBetween(ctx, from, to)
	if err != nil {
		r.d.Logger.Error("Task reminder query failed", zap.Error(err))
		return res
	}

	for _, t := range tasks {
		ok, err := w.Contains(t.EndDate)
		if err != nil {
			r.d.Logger.Warn("Skipping task with bad endDate", zap.String("taskId", t.ID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		res.Matched++
		r.remindTask(ctx, t, &res)
	}

	if res.Matched == 0 {
		r.d.Logger.Info("No tasks due in window", zap.String("from", from), zap.String("to", to))
		return res
	}
	r.d.Logger.Info("Task reminders done", zap.Any("result", res))
	return res
}

func (r *Runner) remindTask(ctx context.Context, t models.Task, res *Result) {
	emails := make([]notification.Email, len(t.LawyerDetails))
	for i, l := range t.LawyerDetails {
		emails[i] = notification.Email{
			To:      l.Email,
			ToName:  l.Name,
			Subject: "Task Reminder",
			Heading: "Task due soon",
			Body:    fmt.Sprintf("This is a reminder that the task %s is due on %s.", t.Title, t.EndDate),
			Details: []notification.Detail{
				{Label: "Task", Value: t.Title},
				{Label: "Due", Value: t.EndDate},
				{Label: "Status", Value: string(t.Status)},
			},
		}
	}

	errs := notification.SendAll(ctx, r.d.Mailer, r.d.Logger, emails)
	var reached []string
	for i, err := range errs {
		if err != nil {
			res.EmailsFailed++
			r.d.Logger.Warn("Task reminder email failed",
				zap.String("taskId", t.ID),
				zap.String("lawyerId", t.LawyerDetails[i].ID),
				zap.Error(err),
			)
			continue
		}
		res.EmailsSent++
		reached = append(reached, t.LawyerDetails[i].ID)
	}

	if len(reached) == 0 {
		return
	}
	msg := fmt.Sprintf("Task %q is due on %s.", t.Title, t.EndDate)
	if r.writeNotification(ctx, models.NotificationTask, t.ID, reached, msg) {
		res.Notifications++
	}
}
