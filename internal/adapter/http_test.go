// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/models"
)

func newTestAdapter(t *testing.T, serverURL, token string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.ClientConfig{
		ServerAddress:  serverURL,
		RequestTimeout: 5 * time.Second,
		Token:          token,
	}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── construction ────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare host port", raw: "127.0.0.1:8000", want: "http://127.0.0.1:8000"},
		{name: "trailing slash", raw: " https://forum.example.com/ ", want: "https://forum.example.com"},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── authentication ──────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body models.NewUser
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body.Username)

		writeJSON(t, w, http.StatusCreated, models.User{UserID: 1, Username: "alice"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Register(context.Background(), models.NewUser{Username: "alice", Password: "password1"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UserID)
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "username already exists", http.StatusConflict)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Register(context.Background(), models.NewUser{Username: "alice", Password: "password1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "username already exists")
}

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.LoginResponse{Token: "signed", ExpiresAt: time.Now().Add(time.Hour)})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "password1"})

	require.NoError(t, err)
	assert.Equal(t, "signed", got.Token)
	assert.Equal(t, "signed", a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "wrong password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "nope"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	require.NoError(t, a.Logout(context.Background()))
	assert.Empty(t, a.Token())
}

func TestAuthedRequest_WithoutToken(t *testing.T) {
	a := newTestAdapter(t, "127.0.0.1:1", "")

	err := a.Logout(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = a.CreateThread(context.Background(), models.NewThread{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, ErrNoToken)
}

// ── forum ───────────────────────────────────────────────────────────────────

func TestGetAppVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "1.2.3")
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL, "").GetAppVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.User{UserID: 1, Username: "alice"})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL, "").GetUser(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestListThreads_TagQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/threads", r.URL.Path)
		assert.Equal(t, "go", r.URL.Query().Get("tag"))
		writeJSON(t, w, http.StatusOK, []models.Thread{{ThreadID: 1, Tag: "go"}})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL, "").ListThreads(context.Background(), "go")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "go", got[0].Tag)
}

func TestGetThread_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/threads/7", r.URL.Path)
		http.Error(w, "thread was not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL, "").GetThread(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateThread(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusCreated, models.Thread{ThreadID: 3, Title: "hello"})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL, "tok").
		CreateThread(context.Background(), models.NewThread{Title: "hello", Content: "body"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ThreadID)
}

func TestDeleteThread_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/threads/9", r.URL.Path)
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL, "tok").DeleteThread(context.Background(), 9)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/threads/4/comments":
			writeJSON(t, w, http.StatusOK, []models.Comment{{CommentID: 10, ThreadID: 4}})
		case r.Method == http.MethodPost && r.URL.Path == "/threads/4/comments":
			writeJSON(t, w, http.StatusCreated, models.Comment{CommentID: 11, ThreadID: 4, Content: "reply"})
		case r.Method == http.MethodDelete && r.URL.Path == "/comments/11":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "tok")
	ctx := context.Background()

	listed, err := a.ListComments(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	created, err := a.CreateComment(ctx, 4, models.NewComment{Content: "reply"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.CommentID)

	assert.NoError(t, a.DeleteComment(ctx, 11))
	assert.ErrorIs(t, a.DeleteComment(ctx, 12), ErrNotFound)
}

func TestMapHTTPError_Statuses(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusUnprocessableEntity, want: ErrUnprocessable},
		{status: http.StatusTooManyRequests, want: ErrTooManyRequests},
		{status: http.StatusInternalServerError, want: ErrInternalServerError},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL, "").GetAppVersion(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
