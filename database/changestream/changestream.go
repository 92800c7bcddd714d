// Package changestream turns MongoDB change streams into before/after
// snapshot pairs for single-document writes.
package changestream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Change is one write to one document. Before is nil on insert and After is
// nil on delete.
type Change[T any] struct {
	ID     string
	Before *T
	After  *T
}

// Handler consumes a change. It must not block the stream for long.
type Handler[T any] func(ctx context.Context, ch Change[T])

type event[T any] struct {
	OperationType            string `bson:"operationType"`
	FullDocument             *T     `bson:"fullDocument"`
	FullDocumentBeforeChange *T     `bson:"fullDocumentBeforeChange"`
}

// toChange maps a raw event onto a Change. Events that are not document
// writes (drop, rename, invalidate) report false, as do writes missing the
// snapshot their kind needs: an update without its pre-image would read as
// an insert, and one whose post-image lookup found nothing as a delete.
func toChange[T any](ev event[T], key func(T) string) (Change[T], bool) {
	var ch Change[T]
	switch ev.OperationType {
	case "insert":
		if ev.FullDocument == nil {
			return ch, false
		}
		ch.After = ev.FullDocument
		ch.ID = key(*ch.After)
	case "update", "replace":
		if ev.FullDocument == nil || ev.FullDocumentBeforeChange == nil {
			return ch, false
		}
		ch.Before = ev.FullDocumentBeforeChange
		ch.After = ev.FullDocument
		ch.ID = key(*ch.After)
	case "delete":
		if ev.FullDocumentBeforeChange == nil {
			return ch, false
		}
		ch.Before = ev.FullDocumentBeforeChange
		ch.ID = key(*ch.Before)
	default:
		return ch, false
	}
	return ch, true
}

func isWrite(op string) bool {
	switch op {
	case "insert", "update", "replace", "delete":
		return true
	}
	return false
}

// EnablePreImages turns on pre- and post-image capture for the collections so
// update and delete events carry the previous document.
func EnablePreImages(ctx context.Context, db *mongo.Database, collections ...string) error {
	for _, name := range collections {
		cmd := bson.D{
			{Key: "collMod", Value: name},
			{Key: "changeStreamPreAndPostImages", Value: bson.M{"enabled": true}},
		}
		if err := db.RunCommand(ctx, cmd).Err(); err != nil {
			return fmt.Errorf("enable pre-images on %s: %w", name, err)
		}
	}
	return nil
}

// Watcher follows one collection and hands every write to a Handler.
type Watcher[T any] struct {
	coll    *mongo.Collection
	key     func(T) string
	handler Handler[T]
	logger  *zap.Logger

	maxBackoff time.Duration
}

// NewWatcher creates a watcher on coll. key extracts the document id.
func NewWatcher[T any](coll *mongo.Collection, key func(T) string, handler Handler[T], logger *zap.Logger) *Watcher[T] {
	return &Watcher[T]{
		coll:       coll,
		key:        key,
		handler:    handler,
		logger:     logger.With(zap.String("collection", coll.Name())),
		maxBackoff: 30 * time.Second,
	}
}

// Run blocks until ctx is cancelled. A broken stream is reopened with backoff
// and resumed from the last seen token.
func (w *Watcher[T]) Run(ctx context.Context) {
	var resume bson.Raw
	backoff := time.Second

	for {
		token, err := w.stream(ctx, resume)
		if token != nil {
			resume = token
		}
		if ctx.Err() != nil {
			w.logger.Info("Change stream stopped")
			return
		}
		if err == nil {
			backoff = time.Second
			continue
		}

		w.logger.Warn("Change stream failed, reopening", zap.Error(err), zap.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > w.maxBackoff {
			backoff = w.maxBackoff
		}
	}
}

func (w *Watcher[T]) stream(ctx context.Context, resume bson.Raw) (bson.Raw, error) {
	opts := options.ChangeStream().
		SetFullDocument(options.WhenAvailable).
		SetFullDocumentBeforeChange(options.WhenAvailable)
	if resume != nil {
		opts.SetResumeAfter(resume)
	}

	cs, err := w.coll.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, fmt.Errorf("open change stream: %w", err)
	}
	defer cs.Close(context.Background())

	w.logger.Info("Change stream opened")
	var last bson.Raw
	for cs.Next(ctx) {
		var ev event[T]
		if err := cs.Decode(&ev); err != nil {
			w.logger.Error("Failed to decode change event", zap.Error(err))
			last = cs.ResumeToken()
			continue
		}
		if ch, ok := toChange(ev, w.key); ok {
			w.handler(ctx, ch)
		} else if isWrite(ev.OperationType) {
			w.logger.Warn("Skipping change without before/after snapshot", zap.String("operation", ev.OperationType))
		}
		last = cs.ResumeToken()
	}
	if err := cs.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return last, err
	}
	return last, nil
}
