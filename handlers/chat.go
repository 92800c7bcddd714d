package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"lexdesk/middleware"
	"lexdesk/services/chat"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxAttachmentBytes caps a single chat attachment.
const MaxAttachmentBytes = 25 << 20

// ChatHandler serves messaging and group endpoints.
type ChatHandler struct {
	Svc    ChatService
	Logger *zap.Logger
}

func NewChatHandler(svc ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger.Named("chat")}
}

type sendBody struct {
	RecipientID string `json:"recipientId" form:"recipientId"`
	GroupID     string `json:"groupId" form:"groupId"`
	Content     string `json:"content" form:"content"`
}

// SendMessage handles POST /api/chat/messages. A multipart body may carry
// the attachment in the "file" field.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var body sendBody
	req := chat.SendRequest{SenderID: caller.UID}
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxAttachmentBytes+1<<20)
		if err := c.ShouldBind(&body); err != nil {
			badRequest(c, "invalid form body")
			return
		}
		if fh, err := c.FormFile("file"); err == nil {
			if fh.Size > MaxAttachmentBytes {
				badRequest(c, "attachment is too large")
				return
			}
			f, err := fh.Open()
			if err != nil {
				badRequest(c, "unreadable attachment")
				return
			}
			defer f.Close()
			req.Attachment = &chat.Upload{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Body:        f,
			}
		}
	} else if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	req.RecipientID = body.RecipientID
	req.GroupID = body.GroupID
	req.Content = body.Content

	msg, err := h.Svc.Send(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, "SendMessage", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// EditMessage handles PATCH /api/chat/messages/:id.
func (h *ChatHandler) EditMessage(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	msg, err := h.Svc.Edit(c.Request.Context(), caller.UID, c.Param("id"), body.Content)
	if err != nil {
		respondError(c, h.Logger, "EditMessage", err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage handles DELETE /api/chat/messages/:id.
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	msg, err := h.Svc.Delete(c.Request.Context(), caller.UID, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "DeleteMessage", err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// MarkSeen handles POST /api/chat/seen with exactly one of otherId or groupId.
func (h *ChatHandler) MarkSeen(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	var body struct {
		OtherID string `json:"otherId"`
		GroupID string `json:"groupId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || (body.OtherID == "") == (body.GroupID == "") {
		badRequest(c, "provide exactly one of otherId or groupId")
		return
	}

	if body.GroupID != "" {
		if err := h.Svc.MarkGroupSeen(c.Request.Context(), caller.UID, body.GroupID); err != nil {
			respondError(c, h.Logger, "MarkSeen", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
		return
	}

	n, err := h.Svc.MarkDirectSeen(c.Request.Context(), caller.UID, body.OtherID)
	if err != nil {
		respondError(c, h.Logger, "MarkSeen", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "updated": n})
}

// Unseen handles GET /api/chat/unseen.
func (h *ChatHandler) Unseen(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	summary, err := h.Svc.Unseen(c.Request.Context(), caller.UID)
	if err != nil {
		respondError(c, h.Logger, "Unseen", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// History handles GET /api/chat/history?otherId=|groupId=&before=&limit=.
// before is an RFC 3339 timestamp.
func (h *ChatHandler) History(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	req := chat.HistoryRequest{
		UserID:  caller.UID,
		OtherID: c.Query("otherId"),
		GroupID: c.Query("groupId"),
	}
	if raw := c.Query("before"); raw != "" {
		before, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(c, "before must be an RFC 3339 timestamp")
			return
		}
		req.Before = before
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "limit must be a number")
			return
		}
		req.Limit = limit
	}

	msgs, err := h.Svc.History(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, "History", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type groupBody struct {
	Name    *string  `json:"name"`
	Members []string `json:"members"`
}

// CreateGroup handles POST /api/chat/groups.
func (h *ChatHandler) CreateGroup(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	var body groupBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == nil {
		badRequest(c, "name and members are required")
		return
	}
	g, err := h.Svc.CreateGroup(c.Request.Context(), caller.UID, caller.Role, *body.Name, body.Members)
	if err != nil {
		respondError(c, h.Logger, "CreateGroup", err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// UpdateGroup handles PATCH /api/chat/groups/:id.
func (h *ChatHandler) UpdateGroup(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	var body groupBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	g, err := h.Svc.UpdateGroup(c.Request.Context(), caller.UID, caller.Role, c.Param("id"),
		chat.GroupUpdate{Name: body.Name, Members: body.Members})
	if err != nil {
		respondError(c, h.Logger, "UpdateGroup", err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// DeleteGroup handles DELETE /api/chat/groups/:id.
func (h *ChatHandler) DeleteGroup(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	if err := h.Svc.DeleteGroup(c.Request.Context(), caller.UID, caller.Role, c.Param("id")); err != nil {
		respondError(c, h.Logger, "DeleteGroup", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGroups handles GET /api/chat/groups.
func (h *ChatHandler) ListGroups(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	groups, err := h.Svc.ListGroups(c.Request.Context(), caller.UID)
	if err != nil {
		respondError(c, h.Logger, "ListGroups", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}
