// File: lexdesk/handlers/admin.go
package handlers

import (
	"context"
	"net/http"

	"lexdesk/models"
	"lexdesk/services/callable"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLister is satisfied by the user repository.
type UserLister interface {
	GetAll(ctx context.Context) ([]models.User, error)
}

// AdminHandler encapsulates the ops endpoints guarded by admin tokens.
type AdminHandler struct {
	Users  UserLister
	Jobs   JobRunner
	Queue  JobEnqueuer // optional; without it every run is synchronous
	Logger *zap.Logger
}

func NewAdminHandler(users UserLister, jobs JobRunner, queue JobEnqueuer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Jobs: jobs, Queue: queue, Logger: logger.Named("admin")}
}

// GetAllUsersHandler returns every firm member.
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.Users.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, ah.Logger, "GetAllUsers", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListJobsHandler returns the names of the runnable jobs.
func (ah *AdminHandler) ListJobsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": ah.Jobs.JobNames()})
}

// RunJobHandler handles POST /api/admin/jobs/:name/run. With ?async=true the
// job is queued on the worker; otherwise it runs inline and the result is
// returned.
func (ah *AdminHandler) RunJobHandler(c *gin.Context) {
	name := c.Param("name")
	if !knownJob(ah.Jobs.JobNames(), name) {
		respondError(c, ah.Logger, "RunJob", callable.Errorf(callable.NotFound, "unknown job %q", name))
		return
	}
	subject := c.GetString("adminSubject")

	if c.Query("async") == "true" && ah.Queue != nil {
		id, err := ah.Queue.Enqueue(c.Request.Context(), models.JobPayload{Job: name, TriggeredBy: subject})
		if err != nil {
			respondError(c, ah.Logger, "EnqueueJob "+name, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"job": name, "taskId": id})
		return
	}

	ah.Logger.Info("Running job on demand", zap.String("job", name), zap.String("by", subject))
	res, err := ah.Jobs.Run(c.Request.Context(), name)
	if err != nil {
		respondError(c, ah.Logger, "RunJob "+name, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func knownJob(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
