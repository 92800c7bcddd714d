package handlers

import (
	"net/http"

	"lexdesk/middleware"
	"lexdesk/services/callable"
	"lexdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CallableHandler exposes the callables over HTTP.
type CallableHandler struct {
	Svc          CallableService
	SecureCookie bool
	Logger       *zap.Logger
}

func NewCallableHandler(svc CallableService, secureCookie bool, logger *zap.Logger) *CallableHandler {
	return &CallableHandler{Svc: svc, SecureCookie: secureCookie, Logger: logger.Named("callable")}
}

// CreateTask handles POST /api/tasks.
func (h *CallableHandler) CreateTask(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	var req callable.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	task, err := h.Svc.CreateTask(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, h.Logger, "CreateTask", err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// CreateCase handles POST /api/cases.
func (h *CallableHandler) CreateCase(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	var req callable.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	cs, err := h.Svc.CreateCase(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, h.Logger, "CreateCase", err)
		return
	}
	c.JSON(http.StatusCreated, cs)
}

// CreateUser handles POST /api/users.
func (h *CallableHandler) CreateUser(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	var req callable.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	u, err := h.Svc.CreateUser(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, h.Logger, "CreateUser", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// CreateSession handles POST /api/sessions: it exchanges an ID token for a
// session cookie and sets it.
func (h *CallableHandler) CreateSession(c *gin.Context) {
	var body struct {
		IDToken string `json:"idToken"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	cookie, err := h.Svc.CreateSession(c.Request.Context(), body.IDToken)
	if err != nil {
		respondError(c, h.Logger, "CreateSession", err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(utils.SessionCookieName, cookie, int(h.Svc.SessionTTL().Seconds()), "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// VerifySession handles GET /api/sessions/verify.
func (h *CallableHandler) VerifySession(c *gin.Context) {
	sess, err := h.Svc.VerifySession(c.Request.Context(), middleware.SessionToken(c))
	if err != nil {
		respondError(c, h.Logger, "VerifySession", err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// RevokeSession handles DELETE /api/sessions. The cookie is cleared even if
// revocation fails.
func (h *CallableHandler) RevokeSession(c *gin.Context) {
	token := middleware.SessionToken(c)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", h.SecureCookie, true)

	if err := h.Svc.RevokeSession(c.Request.Context(), token); err != nil {
		respondError(c, h.Logger, "RevokeSession", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
