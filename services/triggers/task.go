package triggers

import (
	"context"
	"fmt"

	"lexdesk/database/changestream"
	"lexdesk/models"
	"lexdesk/services/notification"

	"go.uber.org/zap"
)

var taskFields = []Field[models.Task]{
	{Name: "status", Value: func(t models.Task) string { return string(t.Status) }},
}

// TaskTrigger emails every lawyer on a task, one email each.
type TaskTrigger struct {
	base
}

func NewTaskTrigger(mailer notification.Mailer, logger *zap.Logger) *TaskTrigger {
	return &TaskTrigger{base{mailer: mailer, logger: logger.Named("task-trigger")}}
}

// Handle processes one write to tasks/{id}.
func (t *TaskTrigger) Handle(ctx context.Context, ch changestream.Change[models.Task]) {
	var emails []notification.Email
	for _, tr := range Classify(ch.Before, ch.After, taskFields...) {
		switch tr.Kind {
		case Created:
			emails = append(emails, taskMails(ch.After, "New Task Assigned",
				fmt.Sprintf("You have been assigned a new task: %s.", ch.After.Title))...)
		case Deleted:
			emails = append(emails, taskMails(ch.Before, "Task Deleted",
				fmt.Sprintf("The task %s has been deleted.", ch.Before.Title))...)
		case FieldChanged:
			emails = append(emails, taskMails(ch.After, "Task Status Update",
				fmt.Sprintf("The status of task %s changed from %s to %s.", ch.After.Title, ch.Before.Status, ch.After.Status))...)
		}
	}
	t.dispatch(ctx, ch.ID, emails)
}

func taskMails(task *models.Task, subject, body string) []notification.Email {
	emails := make([]notification.Email, 0, len(task.LawyerDetails))
	for _, l := range task.LawyerDetails {
		emails = append(emails, notification.Email{
			To:      l.Email,
			ToName:  l.Name,
			Subject: subject,
			Heading: subject,
			Body:    body,
			Details: []notification.Detail{
				{Label: "Task", Value: task.Title},
				{Label: "Status", Value: string(task.Status)},
				{Label: "Due", Value: orDash(task.EndDate)},
			},
		})
	}
	return emails
}
