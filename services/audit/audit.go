// Package audit writes the trail of privileged writes to the logs collection.
package audit

import (
	"context"

	recordsRepo "lexdesk/database/repository/records"
	"lexdesk/models"
	"lexdesk/utils"

	"go.uber.org/zap"
)

// Recorder appends audit entries. A failed write is logged, never returned:
// the audited action has already happened.
type Recorder struct {
	logs   recordsRepo.LogRepository
	clock  utils.Clock
	logger *zap.Logger
}

func NewRecorder(logs recordsRepo.LogRepository, clock utils.Clock, logger *zap.Logger) *Recorder {
	return &Recorder{logs: logs, clock: clock, logger: logger}
}

// Record stores one entry. A nil Recorder is a no-op.
func (r *Recorder) Record(ctx context.Context, action, actorID, entityType, entityID string, details map[string]string) {
	if r == nil {
		return
	}
	entry := models.LogEntry{
		Action:     action,
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  r.clock.Now(),
	}
	if _, err := r.logs.Create(ctx, entry); err != nil {
		r.logger.Warn("Failed to write audit entry",
			zap.String("action", action),
			zap.String("entityId", entityID),
			zap.Error(err),
		)
	}
}
