package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/dispatch"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/mock"
	"github.com/MKhiriev/go-forum/internal/router"
	"github.com/MKhiriev/go-forum/internal/service"
	"github.com/MKhiriev/go-forum/internal/store"
	"github.com/MKhiriev/go-forum/models"
)

type testEnv struct {
	auth    *mock.MockAuthService
	users   *mock.MockUserService
	forum   *mock.MockForumService
	appInfo *mock.MockAppInfoService

	handler    *Handler
	dispatcher *dispatch.Dispatcher
}

func newTestEnv(t *testing.T, cfg config.App) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		auth:    mock.NewMockAuthService(ctrl),
		users:   mock.NewMockUserService(ctrl),
		forum:   mock.NewMockForumService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:    env.auth,
		UserService:    env.users,
		ForumService:   env.forum,
		AppInfoService: env.appInfo,
	}
	env.handler = NewHandler(services, cfg, logger.Nop())

	table := router.NewTable()
	require.NoError(t, env.handler.Register(table))

	env.dispatcher = dispatch.New(table,
		dispatch.WithState(NewState(services)),
		dispatch.WithHooks(CORS("*")),
		dispatch.WithErrorMapper(StatusFromError),
		dispatch.WithLogger(logger.Nop()),
	)
	return env
}

func defaultAppConfig() config.App {
	return config.App{LoginRatePerSecond: 100, LoginBurst: 100}
}

func (e *testEnv) do(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.dispatcher.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

var alice = models.User{UserID: 1, Username: "alice", RegisteredAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}

// ─────────────────────────────────────────────
// index, version, preflight
// ─────────────────────────────────────────────

func TestIndex(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	rec := env.do(http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello, world!", rec.Body.String())
}

func TestIndex_HeadFallsBackToGet(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	rec := env.do(http.MethodHead, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "13", rec.Header().Get("Content-Length"))
}

func TestGetServerVersion(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())
	env.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3")

	rec := env.do(http.MethodGet, "/version", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.2.3", rec.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{name: "success", method: http.MethodGet, target: "/", status: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, target: "/threads/1/comments", status: http.StatusNoContent},
		{name: "not found", method: http.MethodGet, target: "/nope", status: http.StatusNotFound},
		{name: "guard failure", method: http.MethodPost, target: "/logout", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(tt.method, tt.target, "", nil)

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "POST, GET, DELETE, PATCH, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Headers"))
			assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

// ─────────────────────────────────────────────
// users and authentication
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())
	env.auth.EXPECT().
		RegisterUser(gomock.Any(), models.NewUser{Username: "alice", Password: "password1"}).
		Return(alice, nil)

	rec := env.do(http.MethodPost, "/users", `{"username":"alice","password":"password1"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, alice.UserID, got.UserID)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_Conflict(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())
	env.auth.EXPECT().
		RegisterUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, fmt.Errorf("insert user: %w", store.ErrUsernameAlreadyExists))

	rec := env.do(http.MethodPost, "/users", `{"username":"alice","password":"password1"}`, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), store.ErrUsernameAlreadyExists.Error())
}

func TestRegister_InvalidBody(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "malformed json", body: `{"username":`, status: http.StatusBadRequest},
		{name: "short password", body: `{"username":"alice","password":"x"}`, status: http.StatusUnprocessableEntity},
		{name: "bad email", body: `{"username":"alice","email":"nope","password":"password1"}`, status: http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/users", tt.body, nil)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	expiresAt := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	env.auth.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "password1"}).
		Return(models.Token{
			SignedString:     "signed.jwt.token",
			UserID:           alice.UserID,
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)},
		}, nil)

	rec := env.do(http.MethodPost, "/login", `{"username":"alice","password":"password1"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer signed.jwt.token", rec.Header().Get("Authorization"))

	var got models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "signed.jwt.token", got.Token)
	assert.True(t, expiresAt.Equal(got.ExpiresAt))
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())
	env.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Token{}, service.ErrWrongPassword)

	rec := env.do(http.MethodPost, "/login", `{"username":"alice","password":"password1"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t, config.App{LoginRatePerSecond: 0, LoginBurst: 1})
	env.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.Token{}, service.ErrWrongPassword)

	body := `{"username":"alice","password":"password1"}`
	first := env.do(http.MethodPost, "/login", body, nil)
	second := env.do(http.MethodPost, "/login", body, nil)

	assert.Equal(t, http.StatusUnauthorized, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	session := models.Session{User: alice, AuthKey: "key"}
	gomock.InOrder(
		env.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(session, nil),
		env.auth.EXPECT().Logout(gomock.Any(), session).Return(nil),
	)

	rec := env.do(http.MethodPost, "/logout", "", bearer("tok"))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestAuthGuard(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		setup  func(env *testEnv)
		status int
	}{
		{
			name:   "missing header",
			status: http.StatusUnauthorized,
		},
		{
			name:   "not a bearer token",
			header: map[string]string{"Authorization": "Basic dXNlcjpwYXNz"},
			status: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			header: bearer("tok"),
			setup: func(env *testEnv) {
				env.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(models.Session{}, service.ErrTokenIsExpiredOrInvalid)
			},
			status: http.StatusUnauthorized,
		},
		{
			name:   "storage failure",
			header: bearer("tok"),
			setup: func(env *testEnv) {
				env.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(models.Session{}, errors.New("db down"))
			},
			status: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, defaultAppConfig())
			if tt.setup != nil {
				tt.setup(env)
			}

			rec := env.do(http.MethodPost, "/threads", `{"title":"t","content":"c"}`, tt.header)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotContains(t, rec.Body.String(), "db down")
		})
	}
}

func TestGetUser_IDForwardsToUsername(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())
	env.users.EXPECT().GetUserByID(gomock.Any(), int64(1)).Return(alice, nil)
	env.users.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(alice, nil)
	env.users.EXPECT().GetUserByUsername(gomock.Any(), "-5").Return(models.User{}, store.ErrNoUserWasFound)

	byID := env.do(http.MethodGet, "/users/1", "", nil)
	byName := env.do(http.MethodGet, "/users/alice", "", nil)
	negative := env.do(http.MethodGet, "/users/-5", "", nil)

	assert.Equal(t, http.StatusOK, byID.Code)
	assert.Equal(t, http.StatusOK, byName.Code)
	assert.Equal(t, http.StatusNotFound, negative.Code)
}

// ─────────────────────────────────────────────
// threads and comments
// ─────────────────────────────────────────────

func TestListThreads_TagFilter(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())
	env.forum.EXPECT().ListThreads(gomock.Any(), "go").Return([]models.Thread{{ThreadID: 2, Tag: "go"}}, nil)
	env.forum.EXPECT().ListThreads(gomock.Any(), "").Return([]models.Thread{}, nil)

	tagged := env.do(http.MethodGet, "/threads?tag=go", "", nil)
	all := env.do(http.MethodGet, "/threads", "", nil)

	require.Equal(t, http.StatusOK, tagged.Code)
	assert.Contains(t, tagged.Body.String(), `"tag":"go"`)
	require.Equal(t, http.StatusOK, all.Code)
	assert.Equal(t, "[]", all.Body.String())
}

func TestGetThread(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())
	env.forum.EXPECT().GetThread(gomock.Any(), int64(7)).Return(models.Thread{ThreadID: 7, Title: "hi"}, nil)
	env.forum.EXPECT().GetThread(gomock.Any(), int64(8)).Return(models.Thread{}, store.ErrThreadNotFound)

	found := env.do(http.MethodGet, "/threads/7", "", nil)
	missing := env.do(http.MethodGet, "/threads/8", "", nil)
	invalid := env.do(http.MethodGet, "/threads/abc", "", nil)

	assert.Equal(t, http.StatusOK, found.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.Code)
}

func TestCreateThread(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	session := models.Session{User: alice, AuthKey: "key"}
	newThread := models.NewThread{Title: "hello", Tag: "go", Content: "first post"}
	env.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(session, nil)
	env.forum.EXPECT().CreateThread(gomock.Any(), session, newThread).
		Return(models.Thread{ThreadID: 3, Title: "hello", CreatorID: alice.UserID}, nil)

	rec := env.do(http.MethodPost, "/threads", `{"title":"hello","tag":"go","content":"first post"}`, bearer("tok"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got models.Thread
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(3), got.ThreadID)
}

func TestDeleteThread_Forbidden(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	session := models.Session{User: alice, AuthKey: "key"}
	env.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(session, nil)
	env.forum.EXPECT().DeleteThread(gomock.Any(), session, int64(9)).Return(service.ErrForbidden)

	rec := env.do(http.MethodDelete, "/threads/9", "", bearer("tok"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestComments(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	session := models.Session{User: alice, AuthKey: "key"}
	env.auth.EXPECT().Authenticate(gomock.Any(), "tok").Return(session, nil).Times(2)
	env.forum.EXPECT().CreateComment(gomock.Any(), session, int64(4), models.NewComment{Content: "reply"}).
		Return(models.Comment{CommentID: 10, ThreadID: 4, Content: "reply"}, nil)
	env.forum.EXPECT().ListComments(gomock.Any(), int64(4)).
		Return([]models.Comment{{CommentID: 10, ThreadID: 4, Content: "reply"}}, nil)
	env.forum.EXPECT().DeleteComment(gomock.Any(), session, int64(10)).Return(nil)

	created := env.do(http.MethodPost, "/threads/4/comments", `{"content":"reply"}`, bearer("tok"))
	listed := env.do(http.MethodGet, "/threads/4/comments", "", nil)
	deleted := env.do(http.MethodDelete, "/comments/10", "", bearer("tok"))

	assert.Equal(t, http.StatusCreated, created.Code)
	assert.Equal(t, http.StatusOK, listed.Code)
	assert.Contains(t, listed.Body.String(), `"content":"reply"`)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
}

// ─────────────────────────────────────────────
// registration and error mapping
// ─────────────────────────────────────────────

func TestRegister_TwiceConflicts(t *testing.T) {
	env := newTestEnv(t, defaultAppConfig())

	table := router.NewTable()
	require.NoError(t, env.handler.Register(table))

	err := env.handler.Register(table)
	require.Error(t, err)

	var conflict *router.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.ErrorIs(t, err, router.ErrConflict)
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: service.ErrInvalidDataProvided, status: http.StatusBadRequest},
		{err: service.ErrWrongPassword, status: http.StatusUnauthorized},
		{err: service.ErrForbidden, status: http.StatusForbidden},
		{err: fmt.Errorf("get: %w", store.ErrThreadNotFound), status: http.StatusNotFound},
		{err: fmt.Errorf("get: %w", store.ErrCommentNotFound), status: http.StatusNotFound},
		{err: store.ErrUsernameAlreadyExists, status: http.StatusConflict},
		{err: store.ErrScanningRow, status: http.StatusInternalServerError},
		{err: errors.New("unexpected"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, StatusFromError(tt.err))
		})
	}
}
