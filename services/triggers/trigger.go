package triggers

import (
	"context"

	"lexdesk/services/notification"

	"go.uber.org/zap"
)

// base carries what every entity trigger needs.
type base struct {
	mailer notification.Mailer
	logger *zap.Logger
}

// dispatch sends the emails and logs each failure. It never returns an
// error: a trigger invocation always completes.
func (b base) dispatch(ctx context.Context, entityID string, emails []notification.Email) {
	if len(emails) == 0 {
		return
	}
	errs := notification.SendAll(ctx, b.mailer, b.logger, emails)
	for i, err := range errs {
		if err == nil {
			continue
		}
		b.logger.Warn("Trigger email failed",
			zap.String("entityId", entityID),
			zap.String("subject", emails[i].Subject),
			zap.String("to", emails[i].To),
			zap.Error(err),
		)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
