package guard

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-forum/models"
)

func newRequest(params map[string]string) *models.Request {
	return &models.Request{
		Method: http.MethodGet,
		Path:   "/",
		Header: make(http.Header),
		Query:  make(url.Values),
		Params: params,
	}
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantKind   Kind
		wantValue  int64
		wantStatus int
	}{
		{name: "positive", raw: "42", wantKind: Success, wantValue: 42},
		{name: "zero", raw: "0", wantKind: Failure, wantStatus: http.StatusUnprocessableEntity},
		{name: "negative", raw: "-3", wantKind: Failure, wantStatus: http.StatusUnprocessableEntity},
		{name: "not a number", raw: "abc", wantKind: Failure, wantStatus: http.StatusUnprocessableEntity},
		{name: "overflow", raw: "99999999999999999999", wantKind: Failure, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := PositiveInt("id").Extract(context.Background(), newRequest(map[string]string{"id": tt.raw}), Values{}, nil)

			assert.Equal(t, tt.wantKind, out.Kind)
			if tt.wantKind == Success {
				assert.Equal(t, tt.wantValue, out.Value)
				return
			}
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.ErrorIs(t, out.Err, ErrInvalidParam)
		})
	}
}

func TestPositiveInt_MissingParamIsServerError(t *testing.T) {
	out := PositiveInt("id").Extract(context.Background(), newRequest(nil), Values{}, nil)

	assert.Equal(t, Failure, out.Kind)
	assert.Equal(t, http.StatusInternalServerError, out.Status)
	assert.ErrorIs(t, out.Err, ErrMissingParam)
}

func TestPathString(t *testing.T) {
	g := PathString("username")
	assert.Equal(t, "username", g.Name())

	out := g.Extract(context.Background(), newRequest(map[string]string{"username": "alice"}), Values{}, nil)
	assert.Equal(t, Succeed("alice"), out)

	out = g.Extract(context.Background(), newRequest(map[string]string{"username": ""}), Values{}, nil)
	assert.Equal(t, Failure, out.Kind)
}

func TestHeader(t *testing.T) {
	g := Header("x-api-key")
	assert.Equal(t, "X-Api-Key", g.Name())

	req := newRequest(nil)
	out := g.Extract(context.Background(), req, Values{}, nil)
	assert.Equal(t, Failure, out.Kind)
	assert.Equal(t, http.StatusBadRequest, out.Status)
	assert.ErrorIs(t, out.Err, ErrMissingHeader)

	req.Header.Set("X-API-KEY", "k")
	out = g.Extract(context.Background(), req, Values{}, nil)
	assert.Equal(t, Succeed("k"), out)
}

func TestQuery(t *testing.T) {
	g := Query("page")

	req := newRequest(nil)
	out := g.Extract(context.Background(), req, Values{}, nil)
	assert.Equal(t, http.StatusBadRequest, out.Status)
	assert.ErrorIs(t, out.Err, ErrMissingQuery)

	req.Query = url.Values{"page": {"2", "3"}}
	out = g.Extract(context.Background(), req, Values{}, nil)
	assert.Equal(t, Succeed("2"), out)

	// present but empty still counts as provided
	req.Query = url.Values{"page": {""}}
	out = g.Extract(context.Background(), req, Values{}, nil)
	assert.Equal(t, Succeed(""), out)
}

type payload struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gte=0"`
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantKind    Kind
		wantStatus  int
		wantErr     error
		wantValue   payload
	}{
		{
			name:        "valid",
			contentType: "application/json; charset=utf-8",
			body:        `{"name":"bob","age":3}`,
			wantKind:    Success,
			wantValue:   payload{Name: "bob", Age: 3},
		},
		{
			name:        "other content type forwards",
			contentType: "text/plain",
			body:        `{"name":"bob"}`,
			wantKind:    Forward,
		},
		{
			name:        "malformed",
			contentType: "application/json",
			body:        `{"name":`,
			wantKind:    Failure,
			wantStatus:  http.StatusBadRequest,
			wantErr:     ErrMalformedBody,
		},
		{
			name:        "invalid",
			contentType: "application/json",
			body:        `{"age":-1}`,
			wantKind:    Failure,
			wantStatus:  http.StatusUnprocessableEntity,
			wantErr:     ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(nil)
			req.Header.Set("Content-Type", tt.contentType)
			req.Body = []byte(tt.body)

			out := JSON[payload]("body").Extract(context.Background(), req, Values{}, nil)

			require.Equal(t, tt.wantKind, out.Kind)
			switch tt.wantKind {
			case Success:
				assert.Equal(t, tt.wantValue, out.Value)
			case Failure:
				assert.Equal(t, tt.wantStatus, out.Status)
				assert.ErrorIs(t, out.Err, tt.wantErr)
			}
		})
	}
}

func TestJSON_NonStructTarget(t *testing.T) {
	req := newRequest(nil)
	req.Header.Set("Content-Type", "application/json")
	req.Body = []byte(`[1,2,3]`)

	out := JSON[[]int]("ids").Extract(context.Background(), req, Values{}, nil)

	require.Equal(t, Success, out.Kind)
	assert.Equal(t, []int{1, 2, 3}, out.Value)
}

func TestRateLimit(t *testing.T) {
	g := RateLimit("login-limit", rate.NewLimiter(rate.Every(1e12), 2))

	for i := 0; i < 2; i++ {
		out := g.Extract(context.Background(), newRequest(nil), Values{}, nil)
		assert.Equal(t, Success, out.Kind)
	}

	out := g.Extract(context.Background(), newRequest(nil), Values{}, nil)
	assert.Equal(t, Failure, out.Kind)
	assert.Equal(t, http.StatusTooManyRequests, out.Status)
	assert.ErrorIs(t, out.Err, ErrRateLimited)
}

func TestForwarding(t *testing.T) {
	g := Forwarding(PositiveInt("id"))
	assert.Equal(t, "id", g.Name())

	out := g.Extract(context.Background(), newRequest(map[string]string{"id": "bob"}), Values{}, nil)
	assert.Equal(t, Forward, out.Kind)

	out = g.Extract(context.Background(), newRequest(map[string]string{"id": "7"}), Values{}, nil)
	assert.Equal(t, Succeed(int64(7)), out)
}

func TestOptional(t *testing.T) {
	g := Optional(Header("X-Trace"))

	out := g.Extract(context.Background(), newRequest(nil), Values{}, nil)
	assert.Equal(t, Succeed(nil), out)

	forwarder := Optional(Func("fwd", func(context.Context, *models.Request, Values, *State) Outcome {
		return Forwarded()
	}))
	out = forwarder.Extract(context.Background(), newRequest(nil), Values{}, nil)
	assert.Equal(t, Success, out.Kind)
}

func TestFail_ClampsStatus(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, Fail(http.StatusOK, nil).Status)
	assert.Equal(t, http.StatusForbidden, Fail(http.StatusForbidden, nil).Status)
	assert.Equal(t, "Forbidden", Fail(http.StatusForbidden, nil).Message())
}
