package notification

import (
	"context"
	"errors"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// ErrSendPanicked marks a send that panicked instead of returning.
var ErrSendPanicked = errors.New("email send panicked")

// SendAll sends every email concurrently and returns one error slot per
// email, in input order. A failed or panicking send never affects the
// others. Emails without an address are skipped with ErrNoRecipient.
func SendAll(ctx context.Context, m Mailer, logger *zap.Logger, emails []Email) []error {
	errs := make([]error, len(emails))
	var wg conc.WaitGroup
	for i, e := range emails {
		if e.To == "" {
			errs[i] = ErrNoRecipient
			continue
		}
		errs[i] = ErrSendPanicked
		wg.Go(func() {
			errs[i] = m.Send(ctx, e)
		})
	}
	if r := wg.WaitAndRecover(); r != nil {
		logger.Error("Recovered panic in email fan-out", zap.String("panic", r.String()))
	}
	return errs
}
