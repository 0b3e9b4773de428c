// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-forum/internal/guard"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/router"
	"github.com/MKhiriev/go-forum/models"
)

// DefaultMaxBodyBytes is used when no positive body limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

const (
	unmatchedRoute = "unmatched"
	otherMethod    = "OTHER"
)

// Dispatcher routes requests through the route table. It is safe for
// concurrent use once constructed.
type Dispatcher struct {
	table        *router.Table
	state        *guard.State
	hooks        []ResponseHook
	statusOf     ErrorMapper
	maxBodyBytes int64

	logger  *logger.Logger
	metrics *dispatchMetrics
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithState makes state available to every guard.
func WithState(state *guard.State) Option {
	return func(d *Dispatcher) {
		d.state = state
	}
}

// WithHooks appends response hooks.
func WithHooks(hooks ...ResponseHook) Option {
	return func(d *Dispatcher) {
		d.hooks = append(d.hooks, hooks...)
	}
}

// WithErrorMapper sets the translation of handler errors to statuses.
// Without it every handler error is a 500.
func WithErrorMapper(mapper ErrorMapper) Option {
	return func(d *Dispatcher) {
		d.statusOf = mapper
	}
}

// WithMaxBodyBytes bounds the request body read by ServeHTTP.
// A non-positive limit selects DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(d *Dispatcher) {
		d.maxBodyBytes = n
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// New creates a Dispatcher serving the routes of table.
func New(table *router.Table, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		table:    table,
		state:    guard.NewState(),
		statusOf: func(error) int { return http.StatusInternalServerError },
		logger:   logger.Nop(),
		metrics:  getMetrics(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.maxBodyBytes <= 0 {
		d.maxBodyBytes = DefaultMaxBodyBytes
	}
	return d
}

// Dispatch produces the response for req. It never returns nil and never
// panics because of a guard, handler or response hook.
func (d *Dispatcher) Dispatch(ctx context.Context, req *models.Request) *models.Response {
	start := time.Now()

	resp, label := d.dispatch(ctx, req)
	d.finish(ctx, req, resp, label, start)

	return resp
}

// finish runs the response hooks and records metrics.
func (d *Dispatcher) finish(ctx context.Context, req *models.Request, resp *models.Response, label string, start time.Time) {
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	for _, hook := range d.hooks {
		d.runHook(ctx, hook, req, resp, label)
	}

	d.metrics.requests.WithLabelValues(label, methodLabel(req.Method), strconv.Itoa(resp.Status)).Inc()
	d.metrics.duration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}

// runHook calls hook and logs a panic instead of propagating it. The hooks
// that ran before the panic keep their changes to resp.
func (d *Dispatcher) runHook(ctx context.Context, hook ResponseHook, req *models.Request, resp *models.Response, label string) {
	defer func() {
		if r := recover(); r != nil {
			d.metrics.panics.Inc()
			d.log(ctx).Error().
				Err(fmt.Errorf("%w: %v", ErrHookPanic, r)).
				Str("route", label).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")
		}
	}()
	hook.OnResponse(req, resp)
}

// methodLabel keeps the metric label set bounded to the known methods.
func methodLabel(method string) string {
	m, err := router.ParseMethod(method)
	if err != nil {
		return otherMethod
	}
	return m.String()
}

func (d *Dispatcher) dispatch(ctx context.Context, req *models.Request) (resp *models.Response, label string) {
	label = unmatchedRoute

	defer func() {
		if r := recover(); r != nil {
			d.metrics.panics.Inc()
			d.log(ctx).Error().
				Str("route", label).
				Str("method", req.Method).
				Str("path", req.Path).
				Err(fmt.Errorf("%w: %v", ErrHandlerPanic, r)).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")
			resp = models.Error(http.StatusInternalServerError, "")
		}
	}()

	candidates := d.table.Match(req.Method, req.Path)

	headFallback := false
	if req.Method == http.MethodHead && len(candidates) == 0 {
		candidates = d.table.Match(http.MethodGet, req.Path)
		headFallback = true
	}

	var (
		lastFailure *guard.Outcome
		failureRank router.Rank
	)
	for i, c := range candidates {
		label = c.Route.Label()
		req.Params = c.Params

		values := make(guard.Values, len(c.Route.Guards))
		out, failedAt := d.runGuards(ctx, c.Route, req, values)

		switch out.Kind {
		case guard.Success:
			resp = d.invoke(ctx, c.Route, req, values)
			if headFallback {
				resp.Header.Set("Content-Length", strconv.Itoa(len(resp.Body)))
				resp.Body = nil
			}
			return resp, label

		case guard.Forward:
			// A remembered failure only carries over to routes of its own rank.
			if lastFailure != nil && (i+1 == len(candidates) || candidates[i+1].Rank.Compare(failureRank) != 0) {
				return failureResponse(*lastFailure), label
			}
			continue

		case guard.Failure:
			lastFailure = &out
			failureRank = c.Rank

			if failedAt == len(c.Route.Guards)-1 {
				return failureResponse(out), label
			}
			if i+1 < len(candidates) && candidates[i+1].Rank.Compare(c.Rank) == 0 {
				continue
			}
			return failureResponse(out), label
		}
	}

	if lastFailure != nil {
		return failureResponse(*lastFailure), label
	}
	return models.Error(http.StatusNotFound, ""), unmatchedRoute
}

// runGuards evaluates the guards of route in order and stops at the first
// outcome that is not a success. It returns that outcome and the index of
// the guard that produced it.
func (d *Dispatcher) runGuards(ctx context.Context, route *router.Route, req *models.Request, values guard.Values) (guard.Outcome, int) {
	for i, g := range route.Guards {
		out := g.Extract(ctx, req, values, d.state)
		d.metrics.guardOutcomes.WithLabelValues(g.Name(), out.Kind.String()).Inc()

		if out.Kind != guard.Success {
			return out, i
		}
		values[g.Name()] = out.Value
	}
	return guard.Succeed(nil), len(route.Guards) - 1
}

func (d *Dispatcher) invoke(ctx context.Context, route *router.Route, req *models.Request, values guard.Values) *models.Response {
	resp, err := route.Handler(ctx, req, values)
	if err == nil && resp == nil {
		err = fmt.Errorf("%w: %s", ErrNilResponse, route.Label())
	}
	if err != nil {
		return d.errorResponse(ctx, route, err)
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	return resp
}

func (d *Dispatcher) errorResponse(ctx context.Context, route *router.Route, err error) *models.Response {
	status := http.StatusInternalServerError
	if !errors.Is(err, ErrNilResponse) {
		status = d.statusOf(err)
	}

	if status >= http.StatusInternalServerError {
		d.log(ctx).Err(err).Str("route", route.Label()).Int("status", status).Msg("handler failed")
		return models.Error(status, "")
	}
	return models.Error(status, err.Error())
}

func failureResponse(out guard.Outcome) *models.Response {
	return models.Error(out.Status, out.Message())
}

// log returns the request-scoped logger when the context carries one.
func (d *Dispatcher) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return d.logger
}
