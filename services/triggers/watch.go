package triggers

import (
	"context"

	"lexdesk/database"
	"lexdesk/database/changestream"
	"lexdesk/models"
	"lexdesk/services/notification"

	"github.com/sourcegraph/conc"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Watch enables pre-images on the watched collections and follows cases,
// tasks and appointments until ctx ends. If pre-images cannot be enabled the
// watchers still run, but updates and deletes arriving without a before
// snapshot are skipped rather than misread as inserts.
func Watch(ctx context.Context, db *mongo.Database, mailer notification.Mailer, logger *zap.Logger) {
	logger = logger.Named("triggers")
	if err := changestream.EnablePreImages(ctx, db,
		database.CasesCollection, database.TasksCollection, database.AppointmentsCollection); err != nil {
		logger.Warn("Pre-images unavailable; updates and deletes will be skipped", zap.Error(err))
	}

	cases := NewCaseTrigger(mailer, logger)
	tasks := NewTaskTrigger(mailer, logger)
	appointments := NewAppointmentTrigger(mailer, logger)

	caseWatcher := changestream.NewWatcher(db.Collection(database.CasesCollection),
		func(c models.Case) string { return c.ID }, cases.Handle, logger)
	taskWatcher := changestream.NewWatcher(db.Collection(database.TasksCollection),
		func(t models.Task) string { return t.ID }, tasks.Handle, logger)
	appointmentWatcher := changestream.NewWatcher(db.Collection(database.AppointmentsCollection),
		func(a models.Appointment) string { return a.ID }, appointments.Handle, logger)

	var wg conc.WaitGroup
	wg.Go(func() { caseWatcher.Run(ctx) })
	wg.Go(func() { taskWatcher.Run(ctx) })
	wg.Go(func() { appointmentWatcher.Run(ctx) })
	if r := wg.WaitAndRecover(); r != nil {
		logger.Error("Change stream watcher panicked", zap.String("panic", r.String()))
	}
}
