package reminders

import (
	"context"
	"fmt"

	"lexdesk/models"
	"lexdesk/services/notification"

	"go.uber.org/zap"
)

// RunAppointmentReminders emails the lawyer of each appointment dated inside
// today's window and writes a notification for it unconditionally.
func (r *Runner) RunAppointmentReminders(ctx context.Context) Result {
	res := Result{Job: JobAppointmentReminders}
	w := r.window()
	from, to := w.QueryRange()

	appts, err := r.d.Appointments.FindOnDatesBetween(ctx, from, to)
	if err != nil {
		r.d.Logger.Error("Appointment reminder query failed", zap.Error(err))
		return res
	}

	for _, a := range appts {
		ok, err := w.Contains(a.Date)
		if err != nil {
			r.d.Logger.Warn("Skipping appointment with bad date", zap.String("appointmentId", a.ID), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		res.Matched++
		r.remindAppointment(ctx, a, &res)
	}

	if res.Matched == 0 {
		r.d.Logger.Info("No appointments in window", zap.String("from", from), zap.String("to", to))
		return res
	}
	r.d.Logger.Info("Appointment reminders done", zap.Any("result", res))
	return res
}

func (r *Runner) remindAppointment(ctx context.Context, a models.Appointment, res *Result) {
	email := notification.Email{
		To:      a.Lawyer.Email,
		ToName:  a.Lawyer.Name,
		Subject: "Appointment Reminder",
		Heading: "Upcoming appointment",
		Body:    fmt.Sprintf("You have an appointment with %s on %s at %s.", a.Client.Name, a.Date, a.Time),
		Details: []notification.Detail{
			{Label: "Client", Value: a.Client.Name},
			{Label: "Date", Value: a.Date},
			{Label: "Time", Value: a.Time},
		},
	}
	if err := notification.SendAll(ctx, r.d.Mailer, r.d.Logger, []notification.Email{email})[0]; err != nil {
		res.EmailsFailed++
		r.d.Logger.Warn("Appointment reminder email failed", zap.String("appointmentId", a.ID), zap.Error(err))
	} else {
		res.EmailsSent++
	}

	msg := fmt.Sprintf("Appointment with %s on %s at %s.", a.Client.Name, a.Date, a.Time)
	if r.writeNotification(ctx, models.NotificationAppointment, a.ID, lawyerIDs(a.Lawyer), msg) {
		res.Notifications++
	}
}
