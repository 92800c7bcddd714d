package triggers

import (
	"context"
	"fmt"

	"lexdesk/database/changestream"
	"lexdesk/models"
	"lexdesk/services/notification"

	"go.uber.org/zap"
)

var appointmentFields = []Field[models.Appointment]{
	{Name: "status", Value: func(a models.Appointment) string { return string(a.Status) }},
	{Name: "date", Value: func(a models.Appointment) string { return a.Date }},
	{Name: "time", Value: func(a models.Appointment) string { return a.Time }},
}

var appointmentLabels = map[string]string{"status": "Status", "date": "Date", "time": "Time"}

// AppointmentTrigger emails an appointment's lawyer. All field changes in one
// write are folded into a single "Appointment Updated" email.
type AppointmentTrigger struct {
	base
}

func NewAppointmentTrigger(mailer notification.Mailer, logger *zap.Logger) *AppointmentTrigger {
	return &AppointmentTrigger{base{mailer: mailer, logger: logger.Named("appointment-trigger")}}
}

// Handle processes one write to appointments/{id}.
func (t *AppointmentTrigger) Handle(ctx context.Context, ch changestream.Change[models.Appointment]) {
	var (
		emails  []notification.Email
		changes []notification.Detail
	)
	for _, tr := range Classify(ch.Before, ch.After, appointmentFields...) {
		switch tr.Kind {
		case Created:
			a := ch.After
			emails = append(emails, appointmentMail(a, "New Appointment",
				fmt.Sprintf("A new appointment with %s has been scheduled.", orDash(a.Client.Name)), nil))
		case Deleted:
			a := ch.Before
			emails = append(emails, appointmentMail(a, "Appointment Cancelled",
				fmt.Sprintf("Your appointment with %s on %s at %s has been cancelled.", orDash(a.Client.Name), a.Date, a.Time), nil))
		case FieldChanged:
			changes = append(changes, notification.Detail{
				Label: appointmentLabels[tr.Field] + " changed",
				Value: fmt.Sprintf("%s to %s", orDash(fieldValue(tr.Field, ch.Before)), orDash(fieldValue(tr.Field, ch.After))),
			})
		}
	}
	if len(changes) > 0 {
		a := ch.After
		emails = append(emails, appointmentMail(a, "Appointment Updated",
			fmt.Sprintf("Your appointment with %s has been updated.", orDash(a.Client.Name)), changes))
	}
	t.dispatch(ctx, ch.ID, emails)
}

func fieldValue(name string, a *models.Appointment) string {
	for _, f := range appointmentFields {
		if f.Name == name {
			return f.Value(*a)
		}
	}
	return ""
}

func appointmentMail(a *models.Appointment, subject, body string, extra []notification.Detail) notification.Email {
	details := append([]notification.Detail{
		{Label: "Client", Value: orDash(a.Client.Name)},
		{Label: "Date", Value: orDash(a.Date)},
		{Label: "Time", Value: orDash(a.Time)},
		{Label: "Status", Value: string(a.Status)},
	}, extra...)
	return notification.Email{
		To:      a.Lawyer.Email,
		ToName:  a.Lawyer.Name,
		Subject: subject,
		Heading: subject,
		Body:    body,
		Details: details,
	}
}
