package reminders

import (
	"context"
	"fmt"

	"lexdesk/models"
	"lexdesk/services/notification"

	"go.uber.org/zap"
)

// RunCaseReminders scans running cases. A case with no next hearing is always
// reminded as "not scheduled"; otherwise only when the hearing is inside
// today's window. The notification is written whether or not the email went.
func (r *Runner) RunCaseReminders(ctx context.Context) Result {
	res := Result{Job: JobCaseReminders}
	w := r.window()

	cases, err := r.d.Cases.FindByStatus(ctx, models.CaseRunning)
	if err != nil {
		r.d.Logger.Error("Case reminder query failed", zap.Error(err))
		return res
	}

	for _, c := range cases {
		if c.NextHearing != "" {
			ok, err := w.Contains(c.NextHearing)
			if err != nil {
				r.d.Logger.Warn("Skipping case with bad nextHearing", zap.String("caseId", c.ID), zap.Error(err))
				continue
			}
			if !ok {
				continue
			}
		}
		res.Matched++
		r.remindCase(ctx, c, &res)
	}

	if res.Matched == 0 {
		r.d.Logger.Info("No running cases to remind")
		return res
	}
	r.d.Logger.Info("Case reminders done", zap.Any("result", res))
	return res
}

func (r *Runner) remindCase(ctx context.Context, c models.Case, res *Result) {
	hearing := c.NextHearing
	if hearing == "" {
		hearing = "not scheduled"
	}

	email := notification.Email{
		To:      c.Lawyer.Email,
		ToName:  c.Lawyer.Name,
		Subject: "Case Reminder",
		Heading: "Upcoming case hearing",
		Body:    fmt.Sprintf("Case %s is running. Next hearing: %s.", c.Title, hearing),
		Details: []notification.Detail{
			{Label: "Case", Value: c.Title},
			{Label: "Case Number", Value: c.CaseNumber},
			{Label: "Next Hearing", Value: hearing},
			{Label: "Client", Value: c.Client.Name},
		},
	}
	if err := notification.SendAll(ctx, r.d.Mailer, r.d.Logger, []notification.Email{email})[0]; err != nil {
		res.EmailsFailed++
		r.d.Logger.Warn("Case reminder email failed", zap.String("caseId", c.ID), zap.Error(err))
	} else {
		res.EmailsSent++
	}

	msg := fmt.Sprintf("Case %q next hearing: %s.", c.Title, hearing)
	if r.writeNotification(ctx, models.NotificationCase, c.ID, lawyerIDs(c.Lawyer), msg) {
		res.Notifications++
	}
}

func lawyerIDs(l models.LawyerRef) []string {
	if l.ID == "" {
		return []string{}
	}
	return []string{l.ID}
}
