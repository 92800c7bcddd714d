package handlers

import (
	"net/http"
	"strconv"

	"lexdesk/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InboxHandler serves the caller's notification inbox.
type InboxHandler struct {
	Svc    InboxService
	Logger *zap.Logger
}

func NewInboxHandler(svc InboxService, logger *zap.Logger) *InboxHandler {
	return &InboxHandler{Svc: svc, Logger: logger.Named("inbox")}
}

// List handles GET /api/notifications?limit=.
func (h *InboxHandler) List(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "limit must be a number")
			return
		}
		limit = n
	}

	items, err := h.Svc.List(c.Request.Context(), caller.UID, limit)
	if err != nil {
		respondError(c, h.Logger, "ListNotifications", err)
		return
	}
	unseen, err := h.Svc.Unseen(c.Request.Context(), caller.UID)
	if err != nil {
		respondError(c, h.Logger, "ListNotifications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "unseen": unseen})
}

// MarkSeen handles POST /api/notifications/:id/seen.
func (h *InboxHandler) MarkSeen(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	if err := h.Svc.MarkSeen(c.Request.Context(), caller.UID, c.Param("id")); err != nil {
		respondError(c, h.Logger, "MarkNotificationSeen", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
