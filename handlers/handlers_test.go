package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexdesk/database"
	"lexdesk/middleware"
	"lexdesk/models"
	"lexdesk/services/callable"
	"lexdesk/services/chat"
	"lexdesk/services/reminders"
	"lexdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCallable struct {
	CallableService // unimplemented methods panic

	taskReq callable.CreateTaskRequest
	taskErr error
	cookie  string
	revoked string
}

func (f *fakeCallable) CreateTask(_ context.Context, caller callable.Caller, req callable.CreateTaskRequest) (*models.Task, error) {
	f.taskReq = req
	if f.taskErr != nil {
		return nil, f.taskErr
	}
	return &models.Task{ID: "T1", Title: req.Title}, nil
}

func (f *fakeCallable) CreateSession(_ context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", callable.Errorf(callable.InvalidArgument, "idToken is required")
	}
	return f.cookie, nil
}

func (f *fakeCallable) RevokeSession(_ context.Context, cookie string) error {
	f.revoked = cookie
	return nil
}

func (f *fakeCallable) SessionTTL() time.Duration { return time.Hour }

type fakeChat struct {
	ChatService

	sent   chat.SendRequest
	body   []byte
	editFn func() error
}

func (f *fakeChat) Send(_ context.Context, req chat.SendRequest) (*models.Message, error) {
	f.sent = req
	if req.Attachment != nil {
		f.body, _ = io.ReadAll(req.Attachment.Body)
	}
	return &models.Message{ID: "M1", SenderID: req.SenderID, Content: req.Content}, nil
}

func (f *fakeChat) Edit(context.Context, string, string, string) (*models.Message, error) {
	return nil, f.editFn()
}

type fakeJobs struct{ ran []string }

func (f *fakeJobs) JobNames() []string { return []string{reminders.JobTaskReminders} }

func (f *fakeJobs) Run(_ context.Context, name string) (reminders.Result, error) {
	f.ran = append(f.ran, name)
	return reminders.Result{Job: name, Matched: 2, EmailsSent: 3}, nil
}

type fakeQueue struct{ payload models.JobPayload }

func (f *fakeQueue) Enqueue(_ context.Context, p models.JobPayload) (string, error) {
	f.payload = p
	return "task-1", nil
}

func asCaller(uid string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCaller(c, callable.Caller{UID: uid, Role: role})
	}
}

func init() { gin.SetMode(gin.TestMode) }

func TestCreateTask(t *testing.T) {
	svc := &fakeCallable{}
	h := NewCallableHandler(svc, false, zap.NewNop())
	r := gin.New()
	r.POST("/api/tasks", asCaller("A1", models.RoleAdmin), h.CreateTask)

	body := `{"title":"Draft brief","endDate":"2025-03-10","lawyerIds":["L1","L2"]}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"L1", "L2"}, svc.taskReq.LawyerIDs)

	svc.taskErr = callable.Errorf(callable.PermissionDenied, "role STAFF cannot create tasks")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewBufferString(body)))

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "permission-denied", resp["code"])
}

func TestSessionCookieLifecycle(t *testing.T) {
	svc := &fakeCallable{cookie: "sess-cookie"}
	h := NewCallableHandler(svc, true, zap.NewNop())
	r := gin.New()
	r.POST("/api/sessions", h.CreateSession)
	r.DELETE("/api/sessions", h.RevokeSession)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString(`{"idToken":"tok"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "sess-cookie", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "sess-cookie"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-cookie", svc.revoked)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/sessions", bytes.NewBufferString(`{}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendMessage_Multipart(t *testing.T) {
	svc := &fakeChat{}
	h := NewChatHandler(svc, zap.NewNop())
	r := gin.New()
	r.POST("/api/chat/messages", asCaller("U1", models.RoleLawyer), h.SendMessage)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("recipientId", "U2"))
	fw, err := mw.CreateFormFile("file", "brief.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/chat/messages", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "U1", svc.sent.SenderID)
	assert.Equal(t, "U2", svc.sent.RecipientID)
	require.NotNil(t, svc.sent.Attachment)
	assert.Equal(t, "brief.pdf", svc.sent.Attachment.Name)
	assert.Equal(t, []byte("%PDF-1.4"), svc.body)
}

func TestEditMessage_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{chat.ErrEditWindowClosed, http.StatusBadRequest, "failed-precondition"},
		{chat.ErrForbidden, http.StatusForbidden, "permission-denied"},
		{database.ErrNotFound, http.StatusNotFound, "not-found"},
		{chat.ErrEmptyMessage, http.StatusBadRequest, "invalid-argument"},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError, "internal"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			svc := &fakeChat{editFn: func() error { return tc.err }}
			h := NewChatHandler(svc, zap.NewNop())
			r := gin.New()
			r.PATCH("/api/chat/messages/:id", asCaller("U1", models.RoleLawyer), h.EditMessage)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/chat/messages/M1", bytes.NewBufferString(`{"content":"x"}`)))

			assert.Equal(t, tc.status, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp["code"])
		})
	}
}

func TestRunJobHandler(t *testing.T) {
	jobs := &fakeJobs{}
	queue := &fakeQueue{}
	h := NewAdminHandler(nil, jobs, queue, zap.NewNop())
	r := gin.New()
	r.POST("/api/admin/jobs/:name/run", func(c *gin.Context) { c.Set("adminSubject", "ops") }, h.RunJobHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+reminders.JobTaskReminders+"/run", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{reminders.JobTaskReminders}, jobs.ran)
	var res reminders.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 3, res.EmailsSent)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/jobs/"+reminders.JobTaskReminders+"/run?async=true", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, models.JobPayload{Job: reminders.JobTaskReminders, TriggeredBy: "ops"}, queue.payload)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/jobs/nope/run", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"code":"not-found","message":"unknown job \"nope\""}`, w.Body.String())
}

type fakeInbox struct {
	InboxService

	page   []models.Notification
	unseen int64
}

func (f *fakeInbox) List(context.Context, string, int64) ([]models.Notification, error) {
	return f.page, nil
}

func (f *fakeInbox) Unseen(context.Context, string) (int64, error) { return f.unseen, nil }

func TestListNotifications_UnseenIsTotal(t *testing.T) {
	svc := &fakeInbox{
		page:   []models.Notification{{ID: "N1", Status: models.NotificationUnseen}},
		unseen: 250,
	}
	h := NewInboxHandler(svc, zap.NewNop())
	r := gin.New()
	r.GET("/api/notifications", asCaller("L1", models.RoleLawyer), h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications?limit=1", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Notifications []models.Notification `json:"notifications"`
		Unseen        int64                 `json:"unseen"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Notifications, 1)
	assert.Equal(t, int64(250), resp.Unseen)
}

type staticHealth utils.HealthStatus

func (s staticHealth) Status() utils.HealthStatus { return utils.HealthStatus(s) }

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/health", (&HealthHandler{Monitor: staticHealth{Mongo: true, Redis: false}}).Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
