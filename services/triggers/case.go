package triggers

import (
	"context"
	"fmt"

	"lexdesk/database/changestream"
	"lexdesk/models"
	"lexdesk/services/notification"

	"go.uber.org/zap"
)

const (
	fieldCaseStatus  = "caseStatus"
	fieldNextHearing = "nextHearing"
)

var caseFields = []Field[models.Case]{
	{Name: fieldCaseStatus, Value: func(c models.Case) string { return string(c.CaseStatus) }},
	{Name: fieldNextHearing, Value: func(c models.Case) string { return c.NextHearing }},
}

// CaseTrigger emails a case's lawyer on creation, deletion and on each
// change to its status or next hearing date.
type CaseTrigger struct {
	base
}

func NewCaseTrigger(mailer notification.Mailer, logger *zap.Logger) *CaseTrigger {
	return &CaseTrigger{base{mailer: mailer, logger: logger.Named("case-trigger")}}
}

// Handle processes one write to cases/{id}.
func (t *CaseTrigger) Handle(ctx context.Context, ch changestream.Change[models.Case]) {
	var emails []notification.Email
	for _, tr := range Classify(ch.Before, ch.After, caseFields...) {
		if e, ok := caseEmail(tr, ch.Before, ch.After); ok {
			emails = append(emails, e)
		}
	}
	t.dispatch(ctx, ch.ID, emails)
}

func caseEmail(tr Transition, before, after *models.Case) (notification.Email, bool) {
	switch tr.Kind {
	case Created:
		c := after
		return caseMail(c, "New Case Assigned",
			fmt.Sprintf("You have been assigned a new case: %s.", c.Title)), true
	case Deleted:
		c := before
		return caseMail(c, "Case Deleted",
			fmt.Sprintf("The case %s has been deleted.", c.Title)), true
	case FieldChanged:
		switch tr.Field {
		case fieldCaseStatus:
			return caseMail(after, "Case Status Update",
				fmt.Sprintf("The status of case %s changed from %s to %s.", after.Title, before.CaseStatus, after.CaseStatus)), true
		case fieldNextHearing:
			body := fmt.Sprintf("The next hearing for case %s is now scheduled for %s.", after.Title, after.NextHearing)
			if after.NextHearing == "" {
				body = fmt.Sprintf("The next hearing for case %s is no longer scheduled.", after.Title)
			}
			return caseMail(after, "Next Hearing Update", body), true
		}
	}
	return notification.Email{}, false
}

func caseMail(c *models.Case, subject, body string) notification.Email {
	return notification.Email{
		To:      c.Lawyer.Email,
		ToName:  c.Lawyer.Name,
		Subject: subject,
		Heading: subject,
		Body:    body,
		Details: []notification.Detail{
			{Label: "Case", Value: c.Title},
			{Label: "Case Number", Value: orDash(c.CaseNumber)},
			{Label: "Status", Value: string(c.CaseStatus)},
			{Label: "Next Hearing", Value: orDash(c.NextHearing)},
			{Label: "Client", Value: orDash(c.Client.Name)},
		},
	}
}
