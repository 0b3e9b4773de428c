package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/models"
)

type httpServerAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the resty implementation of
// [ServerAdapter]. The base URL comes from cfg.ServerAddress; a bare
// host:port is treated as http. cfg.Token, when set, is used for
// authenticated requests until Login replaces it.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	a := &httpServerAdapter{client: client, logger: logger}
	a.SetToken(cfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) GetAppVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// Register implements [ServerAdapter]. It POSTs the new account to
// POST /users and returns the created user.
func (h *httpServerAdapter) Register(ctx context.Context, user models.NewUser) (models.User, error) {
	var created models.User

	resp, err := h.jsonRequest(ctx).
		SetBody(user).
		SetResult(&created).
		Post("/users")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	h.logger.Debug().Int64("id", created.UserID).Msg("registered")
	return created, nil
}

// Login implements [ServerAdapter]. On success the returned token is stored
// via SetToken.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.LoginRequest) (models.LoginResponse, error) {
	var loginResponse models.LoginResponse

	resp, err := h.jsonRequest(ctx).
		SetBody(credentials).
		SetResult(&loginResponse).
		Post("/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(loginResponse.Token)
	return loginResponse, nil
}

// Logout implements [ServerAdapter]. The token is forgotten only when the
// server accepted the logout.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	return nil
}

func (h *httpServerAdapter) GetUser(ctx context.Context, idOrUsername string) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("user", idOrUsername).
		SetResult(&user).
		Get("/users/{user}")
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ListThreads implements [ServerAdapter]. An empty tag lists every thread.
func (h *httpServerAdapter) ListThreads(ctx context.Context, tag string) ([]models.Thread, error) {
	threads := make([]models.Thread, 0)

	req := h.client.R().SetContext(ctx).SetResult(&threads)
	if tag != "" {
		req.SetQueryParam("tag", tag)
	}

	resp, err := req.Get("/threads")
	if err != nil {
		return nil, fmt.Errorf("list threads request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return threads, nil
}

func (h *httpServerAdapter) GetThread(ctx context.Context, threadID int64) (models.Thread, error) {
	var thread models.Thread

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(threadID, 10)).
		SetResult(&thread).
		Get("/threads/{id}")
	if err != nil {
		return models.Thread{}, fmt.Errorf("get thread request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Thread{}, err
	}
	return thread, nil
}

func (h *httpServerAdapter) CreateThread(ctx context.Context, thread models.NewThread) (models.Thread, error) {
	var created models.Thread

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Thread{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetBody(thread).
		SetResult(&created).
		Post("/threads")
	if err != nil {
		return models.Thread{}, fmt.Errorf("create thread request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Thread{}, err
	}
	return created, nil
}

func (h *httpServerAdapter) DeleteThread(ctx context.Context, threadID int64) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParam("id", strconv.FormatInt(threadID, 10)).
		Delete("/threads/{id}")
	if err != nil {
		return fmt.Errorf("delete thread request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) ListComments(ctx context.Context, threadID int64) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(threadID, 10)).
		SetResult(&comments).
		Get("/threads/{id}/comments")
	if err != nil {
		return nil, fmt.Errorf("list comments request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return comments, nil
}

func (h *httpServerAdapter) CreateComment(ctx context.Context, threadID int64, comment models.NewComment) (models.Comment, error) {
	var created models.Comment

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Comment{}, err
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.FormatInt(threadID, 10)).
		SetBody(comment).
		SetResult(&created).
		Post("/threads/{id}/comments")
	if err != nil {
		return models.Comment{}, fmt.Errorf("create comment request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Comment{}, err
	}
	return created, nil
}

func (h *httpServerAdapter) DeleteComment(ctx context.Context, commentID int64) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.
		SetPathParam("id", strconv.FormatInt(commentID, 10)).
		Delete("/comments/{id}")
	if err != nil {
		return fmt.Errorf("delete comment request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) jsonRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

// authedRequest fails with ErrNoToken instead of sending a request the
// server would reject.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}
