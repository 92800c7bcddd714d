package reminders

import (
	"context"

	"go.uber.org/zap"
)

// PurgeNotifications deletes every notification created at or before
// now minus the retention period, one document at a time.
func (r *Runner) PurgeNotifications(ctx context.Context) Result {
	res := Result{Job: JobPurgeNotifications}
	cutoff := r.d.Clock.Now().Add(-r.d.Retention)

	stale, err := r.d.Notifications.FindCreatedOnOrBefore(ctx, cutoff)
	if err != nil {
		r.d.Logger.Error("Notification purge query failed", zap.Error(err))
		return res
	}
	res.Matched = len(stale)
	if res.Matched == 0 {
		r.d.Logger.Info("No notifications to purge", zap.Time("cutoff", cutoff))
		return res
	}

	for _, n := range stale {
		if err := r.d.Notifications.Delete(ctx, n.ID); err != nil {
			r.d.Logger.Warn("Failed to delete notification",
				zap.String("id", n.ID),
				zap.String("type", string(n.Type)),
				zap.String("entityId", n.EntityID()),
				zap.Error(err),
			)
			continue
		}
		res.Deleted++
	}
	r.d.Logger.Info("Notification purge done", zap.Int("deleted", res.Deleted), zap.Time("cutoff", cutoff))
	return res
}
