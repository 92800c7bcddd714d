package tasks

import (
	"encoding/json"
	"time"

	"lexdesk/models"

	"github.com/hibiken/asynq"
)

// JobTimeout bounds a single reminder or purge run.
const JobTimeout = 10 * time.Minute

// NewJobTask builds the asynq task for a named job. Jobs are never retried:
// a failed send stays failed and the next scheduled run starts fresh.
func NewJobTask(payload models.JobPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(payload.Job, b)
	opts := []asynq.Option{
		asynq.MaxRetry(0),
		asynq.Queue("default"),
		asynq.Timeout(JobTimeout),
	}
	return task, opts, nil
}
