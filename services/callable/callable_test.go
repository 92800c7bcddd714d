package callable

import (
	"context"
	"errors"
	"testing"
	"time"

	"lexdesk/database"
	"lexdesk/models"
	"lexdesk/services/audit"
	"lexdesk/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var now = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

type fakeAuth struct {
	tokens    map[string]*auth.Token
	cookies   map[string]*auth.Token
	created   []*auth.UserToCreate
	claims    map[string]map[string]interface{}
	revoked   []string
	deleted   []string
	createErr error
	claimsErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		tokens:  map[string]*auth.Token{},
		cookies: map[string]*auth.Token{},
		claims:  map[string]map[string]interface{}{},
	}
}

func (f *fakeAuth) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := f.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("invalid token")
}

func (f *fakeAuth) SessionCookie(_ context.Context, idToken string, _ time.Duration) (string, error) {
	cookie := "cookie-" + idToken
	f.cookies[cookie] = f.tokens[idToken]
	return cookie, nil
}

func (f *fakeAuth) VerifySessionCookieAndCheckRevoked(_ context.Context, cookie string) (*auth.Token, error) {
	if t, ok := f.cookies[cookie]; ok {
		return t, nil
	}
	return nil, errors.New("session revoked")
}

func (f *fakeAuth) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

func (f *fakeAuth) CreateUser(_ context.Context, u *auth.UserToCreate) (*auth.UserRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: "NEW1"}}, nil
}

func (f *fakeAuth) SetCustomUserClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	if f.claimsErr != nil {
		return f.claimsErr
	}
	f.claims[uid] = claims
	return nil
}

func (f *fakeAuth) DeleteUser(_ context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

type fakeUsers struct {
	byID map[string]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeUsers) GetByIDs(context.Context, []string) ([]models.User, error) { return nil, nil }

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUsers) GetAll(context.Context) ([]models.User, error) { return nil, nil }

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) Update(context.Context, string, map[string]any) error { return nil }
func (f *fakeUsers) Delete(context.Context, string) error { return nil }

type fakeTasks struct{ created []*models.Task }

func (f *fakeTasks) Create(_ context.Context, t *models.Task) error {
	f.created = append(f.created, t)
	return nil
}
func (f *fakeTasks) GetByID(context.Context, string) (*models.Task, error) {
	return nil, database.ErrNotFound
}
func (f *fakeTasks) Update(context.Context, string, map[string]any) error { return nil }
func (f *fakeTasks) Delete(context.Context, string) error { return nil }
func (f *fakeTasks) FindDueBetween(context.Context, string, string) ([]models.Task, error) {
	return nil, nil
}

type fakeCases struct{ created []*models.Case }

func (f *fakeCases) Create(_ context.Context, c *models.Case) error {
	f.created = append(f.created, c)
	return nil
}
func (f *fakeCases) GetByID(context.Context, string) (*models.Case, error) {
	return nil, database.ErrNotFound
}
func (f *fakeCases) Update(context.Context, string, map[string]any) error { return nil }
func (f *fakeCases) Delete(context.Context, string) error { return nil }
func (f *fakeCases) FindByStatus(context.Context, models.CaseStatus) ([]models.Case, error) {
	return nil, nil
}

type fakeLogs struct{ entries []models.LogEntry }

func (f *fakeLogs) Create(_ context.Context, e models.LogEntry) (string, error) {
	f.entries = append(f.entries, e)
	return "log-1", nil
}
func (f *fakeLogs) GetByID(context.Context, string) (*models.LogEntry, error) {
	return nil, database.ErrNotFound
}
func (f *fakeLogs) ListByEntity(context.Context, string, string) ([]models.LogEntry, error) {
	return nil, nil
}

type env struct {
	svc   *Service
	auth  *fakeAuth
	users *fakeUsers
	tasks *fakeTasks
	cases *fakeCases
	logs  *fakeLogs
}

func newEnv() *env {
	e := &env{
		auth: newFakeAuth(),
		users: &fakeUsers{byID: map[string]*models.User{
			"A1": {ID: "A1", Name: "Admin", Email: "admin@x.com", Role: models.RoleAdmin},
			"L1": {ID: "L1", Name: "Alice", Email: "l1@x.com", Role: models.RoleLawyer},
			"L2": {ID: "L2", Name: "Bob", Email: "l2@x.com", Role: models.RoleLawyer},
		}},
		tasks: &fakeTasks{},
		cases: &fakeCases{},
		logs:  &fakeLogs{},
	}
	clock := utils.FixedClock{T: now}
	e.svc = NewService(Deps{
		Auth:   e.auth,
		Users:  e.users,
		Tasks:  e.tasks,
		Cases:  e.cases,
		Audit:  audit.NewRecorder(e.logs, clock, zap.NewNop()),
		Clock:  clock,
		Logger: zap.NewNop(),
	})
	return e
}

var (
	admin  = Caller{UID: "A1", Role: models.RoleAdmin}
	lawyer = Caller{UID: "L1", Role: models.RoleLawyer}
	staff  = Caller{UID: "S1", Role: models.RoleStaff}
)

func codeOf(t *testing.T, err error) Code {
	t.Helper()
	var ce *Error
	require.ErrorAs(t, err, &ce)
	return ce.Code
}

func TestCreateTask(t *testing.T) {
	e := newEnv()

	task, err := e.svc.CreateTask(context.Background(), lawyer, CreateTaskRequest{
		Title:     "File brief",
		EndDate:   "2026-10-16",
		LawyerIDs: []string{"L1", "L2", "L1"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.TaskPending, task.Status)
	assert.Equal(t, "L1", task.CreatedBy)
	assert.Equal(t, []models.LawyerRef{
		{ID: "L1", Name: "Alice", Email: "l1@x.com"},
		{ID: "L2", Name: "Bob", Email: "l2@x.com"},
	}, task.LawyerDetails)
	require.Len(t, e.tasks.created, 1)
	require.Len(t, e.logs.entries, 1)
	assert.Equal(t, "task.create", e.logs.entries[0].Action)
	assert.Equal(t, task.ID, e.logs.entries[0].EntityID)
}

func TestCreateTask_Errors(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	tests := []struct {
		name   string
		caller Caller
		req    CreateTaskRequest
		want   Code
	}{
		{"staff", staff, CreateTaskRequest{Title: "x", EndDate: "2026-10-16", LawyerIDs: []string{"L1"}}, PermissionDenied},
		{"no title", lawyer, CreateTaskRequest{EndDate: "2026-10-16", LawyerIDs: []string{"L1"}}, InvalidArgument},
		{"bad date", lawyer, CreateTaskRequest{Title: "x", EndDate: "16/10/2026", LawyerIDs: []string{"L1"}}, InvalidArgument},
		{"no lawyers", lawyer, CreateTaskRequest{Title: "x", EndDate: "2026-10-16"}, InvalidArgument},
		{"unknown lawyer", lawyer, CreateTaskRequest{Title: "x", EndDate: "2026-10-16", LawyerIDs: []string{"L9"}}, NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.CreateTask(ctx, tt.caller, tt.req)
			assert.Equal(t, tt.want, codeOf(t, err))
		})
	}
	assert.Empty(t, e.tasks.created)
}

func TestCreateCase(t *testing.T) {
	e := newEnv()

	c, err := e.svc.CreateCase(context.Background(), admin, CreateCaseRequest{
		Title:       "Doe v. Roe",
		CaseNumber:  "HC-12",
		NextHearing: "2026-11-02",
		LawyerID:    "L1",
		Client:      models.ClientRef{ID: "CL1", Name: "Dana"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CaseRunning, c.CaseStatus)
	assert.Equal(t, "l1@x.com", c.Lawyer.Email)

	_, err = e.svc.CreateCase(context.Background(), admin, CreateCaseRequest{Title: "x", LawyerID: "L1", CaseStatus: "PAUSED"})
	assert.Equal(t, InvalidArgument, codeOf(t, err))

	_, err = e.svc.CreateCase(context.Background(), admin, CreateCaseRequest{Title: "x", LawyerID: "L1", NextHearing: "soon"})
	assert.Equal(t, InvalidArgument, codeOf(t, err))

	_, err = e.svc.CreateCase(context.Background(), staff, CreateCaseRequest{Title: "x", LawyerID: "L1"})
	assert.Equal(t, PermissionDenied, codeOf(t, err))
}

func TestCreateUser(t *testing.T) {
	e := newEnv()

	u, err := e.svc.CreateUser(context.Background(), admin, CreateUserRequest{
		Name: "Carol", Email: " Carol@X.com ", Password: "s3cret!", Role: models.RoleStaff,
	})
	require.NoError(t, err)

	assert.Equal(t, "NEW1", u.ID)
	assert.Equal(t, "carol@x.com", u.Email)
	assert.Equal(t, map[string]interface{}{"role": "STAFF"}, e.auth.claims["NEW1"])
	assert.Contains(t, e.users.byID, "NEW1")
}

func TestCreateUser_Errors(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	valid := CreateUserRequest{Name: "Carol", Email: "carol@x.com", Password: "s3cret!", Role: models.RoleStaff}

	_, err := e.svc.CreateUser(ctx, lawyer, valid)
	assert.Equal(t, PermissionDenied, codeOf(t, err))

	dup := valid
	dup.Email = "l1@x.com"
	_, err = e.svc.CreateUser(ctx, admin, dup)
	assert.Equal(t, AlreadyExists, codeOf(t, err))

	short := valid
	short.Password = "123"
	_, err = e.svc.CreateUser(ctx, admin, short)
	assert.Equal(t, InvalidArgument, codeOf(t, err))

	badRole := valid
	badRole.Role = "PARTNER"
	_, err = e.svc.CreateUser(ctx, admin, badRole)
	assert.Equal(t, InvalidArgument, codeOf(t, err))

	e.auth.claimsErr = errors.New("quota")
	_, err = e.svc.CreateUser(ctx, admin, valid)
	assert.Equal(t, Internal, codeOf(t, err))
	assert.Equal(t, []string{"NEW1"}, e.auth.deleted, "auth user is rolled back")
}

func TestSessions(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.auth.tokens["fresh"] = &auth.Token{UID: "L1", AuthTime: now.Add(-time.Minute).Unix(), Claims: map[string]interface{}{"role": "LAWYER", "email": "l1@x.com"}}
	e.auth.tokens["stale"] = &auth.Token{UID: "L1", AuthTime: now.Add(-time.Hour).Unix()}
	e.auth.tokens["noclaim"] = &auth.Token{UID: "A1", AuthTime: now.Unix()}

	cookie, err := e.svc.CreateSession(ctx, "fresh")
	require.NoError(t, err)

	sess, err := e.svc.VerifySession(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, &Session{UID: "L1", Email: "l1@x.com", Role: models.RoleLawyer}, sess)

	_, err = e.svc.CreateSession(ctx, "stale")
	assert.Equal(t, Unauthenticated, codeOf(t, err))

	_, err = e.svc.CreateSession(ctx, "forged")
	assert.Equal(t, Unauthenticated, codeOf(t, err))

	adminCookie, err := e.svc.CreateSession(ctx, "noclaim")
	require.NoError(t, err)
	sess, err = e.svc.VerifySession(ctx, adminCookie)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, sess.Role, "role falls back to the profile")

	require.NoError(t, e.svc.RevokeSession(ctx, cookie))
	assert.Equal(t, []string{"L1"}, e.auth.revoked)

	_, err = e.svc.VerifySession(ctx, "garbage")
	assert.Equal(t, Unauthenticated, codeOf(t, err))
}

func TestAsError(t *testing.T) {
	ce := AsError(Errorf(NotFound, "gone"))
	assert.Equal(t, NotFound, ce.Code)

	boom := errors.New("boom")
	ce = AsError(boom)
	assert.Equal(t, Internal, ce.Code)
	assert.ErrorIs(t, ce, boom)
	assert.Equal(t, 409, AlreadyExists.HTTPStatus())
}
