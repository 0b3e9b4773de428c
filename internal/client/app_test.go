package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-forum/internal/adapter"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/mock"
	"github.com/MKhiriev/go-forum/models"
)

func newTestApp(t *testing.T) (*App, *mock.MockServerAdapter, *bytes.Buffer) {
	t.Helper()

	server := mock.NewMockServerAdapter(gomock.NewController(t))
	out := new(bytes.Buffer)
	return NewApp(server, out, logger.Nop()), server, out
}

func TestRun_NoCommand(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), nil)

	require.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, err.Error(), "threads [tag]")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t)

	err := app.Run(context.Background(), []string{"frobnicate"})

	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRun_WrongArgumentCount(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, args := range [][]string{
		{"login", "alice"},
		{"thread"},
		{"threads", "go", "rust"},
		{"comment", "1"},
	} {
		assert.ErrorIs(t, app.Run(context.Background(), args), ErrUsage, args)
	}
}

func TestRun_InvalidID(t *testing.T) {
	app, _, _ := newTestApp(t)

	for _, args := range [][]string{
		{"thread", "abc"},
		{"delete-thread", "0"},
		{"comments", "-1"},
	} {
		assert.ErrorIs(t, app.Run(context.Background(), args), ErrInvalidID, args)
	}
}

func TestRun_Version(t *testing.T) {
	app, server, out := newTestApp(t)
	server.EXPECT().GetAppVersion(gomock.Any()).Return("1.2.3", nil)

	require.NoError(t, app.Run(context.Background(), []string{"version"}))

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "1.2.3", got["version"])
}

func TestRun_Register(t *testing.T) {
	app, server, out := newTestApp(t)
	server.EXPECT().
		Register(gomock.Any(), models.NewUser{Username: "alice", Password: "password1", Email: "a@example.com"}).
		Return(models.User{UserID: 1, Username: "alice"}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"register", "alice", "password1", "a@example.com"}))
	assert.Contains(t, out.String(), `"username": "alice"`)
}

func TestRun_Login(t *testing.T) {
	app, server, out := newTestApp(t)
	server.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "password1"}).
		Return(models.LoginResponse{Token: "signed"}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"login", "alice", "password1"}))
	assert.Contains(t, out.String(), `"token": "signed"`)
}

func TestRun_ThreadsWithAndWithoutTag(t *testing.T) {
	app, server, _ := newTestApp(t)
	gomock.InOrder(
		server.EXPECT().ListThreads(gomock.Any(), "").Return([]models.Thread{}, nil),
		server.EXPECT().ListThreads(gomock.Any(), "go").Return([]models.Thread{{ThreadID: 1, Tag: "go"}}, nil),
	)

	require.NoError(t, app.Run(context.Background(), []string{"threads"}))
	require.NoError(t, app.Run(context.Background(), []string{"threads", "go"}))
}

func TestRun_PostAndComment(t *testing.T) {
	app, server, _ := newTestApp(t)
	server.EXPECT().
		CreateThread(gomock.Any(), models.NewThread{Title: "hello", Content: "body", Tag: "go"}).
		Return(models.Thread{ThreadID: 3}, nil)
	server.EXPECT().
		CreateComment(gomock.Any(), int64(3), models.NewComment{Content: "reply"}).
		Return(models.Comment{CommentID: 4, ThreadID: 3}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"post", "hello", "body", "go"}))
	require.NoError(t, app.Run(context.Background(), []string{"comment", "3", "reply"}))
}

func TestRun_DeletePrintsNothing(t *testing.T) {
	app, server, out := newTestApp(t)
	server.EXPECT().DeleteThread(gomock.Any(), int64(3)).Return(nil)
	server.EXPECT().DeleteComment(gomock.Any(), int64(4)).Return(nil)
	server.EXPECT().Logout(gomock.Any()).Return(nil)

	require.NoError(t, app.Run(context.Background(), []string{"delete-thread", "3"}))
	require.NoError(t, app.Run(context.Background(), []string{"delete-comment", "4"}))
	require.NoError(t, app.Run(context.Background(), []string{"logout"}))
	assert.Empty(t, out.String())
}

func TestRun_ServerErrorIsWrapped(t *testing.T) {
	app, server, out := newTestApp(t)
	serverErr := errors.Join(adapter.ErrForbidden, errors.New("not the owner"))
	server.EXPECT().DeleteThread(gomock.Any(), int64(3)).Return(serverErr)

	err := app.Run(context.Background(), []string{"delete-thread", "3"})

	require.ErrorIs(t, err, adapter.ErrForbidden)
	assert.Contains(t, err.Error(), "delete-thread")
	assert.Empty(t, out.String())
}
