// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/dispatch"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/router"
)

type options struct {
	logger       *logger.Logger
	dispatchOpts []dispatch.Option
}

// Option configures Start.
type Option func(*options)

// WithLogger sets the server logger. It is the parent of every
// request-scoped logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithDispatchOptions passes options to the dispatcher, e.g. shared state,
// response hooks and the error mapper.
func WithDispatchOptions(opts ...dispatch.Option) Option {
	return func(o *options) {
		o.dispatchOpts = append(o.dispatchOpts, opts...)
	}
}

// Handle is a running HTTP server returned by Start.
type Handle struct {
	srv      *http.Server
	listener net.Listener

	// cancel ends the base context every request context derives from.
	cancel context.CancelFunc

	inFlight *atomic.Int64
	err      *atomic.Error

	shutdownOnce sync.Once
	shutdownErr  error
	stopped      chan struct{}
	done         chan struct{}

	logger *logger.Logger
}

var _ Server = (*Handle)(nil)

// Start validates cfg, seals table, binds cfg.HTTPAddress and starts serving
// in the background. On error no connection is accepted and no handle is
// returned.
//
// ctx bounds the bind only; request contexts keep its values but are
// cancelled by Shutdown, not by ctx.
func Start(ctx context.Context, cfg config.Server, table *router.Table, opts ...Option) (*Handle, error) {
	o := options{logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	if table == nil {
		return nil, ErrNoRouteTable
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table.Seal()

	dispatchOpts := append([]dispatch.Option{
		dispatch.WithLogger(o.logger),
		dispatch.WithMaxBodyBytes(cfg.MaxBodyBytes),
	}, o.dispatchOpts...)
	dispatcher := dispatch.New(table, dispatchOpts...)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrBind, cfg.HTTPAddress, err)
	}

	base, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h := &Handle{
		listener: listener,
		cancel:   cancel,
		inFlight: atomic.NewInt64(0),
		err:      atomic.NewError(nil),
		stopped:  make(chan struct{}),
		done:     make(chan struct{}),
		logger:   o.logger,
	}
	h.srv = newHTTPServer(newRouter(dispatcher, cfg, o.logger, h.inFlight), cfg, o.logger, base)

	o.logger.Info().
		Str("address", listener.Addr().String()).
		Int("routes", table.Len()).
		Msg("HTTP server listening")

	go h.serve()

	return h, nil
}

func (h *Handle) serve() {
	defer close(h.done)

	err := h.srv.Serve(h.listener)
	if !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error().Err(err).Msg("HTTP server stopped serving")
		h.err.Store(err)
		h.cancel()
		return
	}

	// Serve returns as soon as Shutdown closes the listener; wait for the drain.
	<-h.stopped
}

// Addr returns the address the server is bound to.
func (h *Handle) Addr() net.Addr {
	return h.listener.Addr()
}

// Done is closed once the server has stopped serving and, after Shutdown,
// finished draining.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the error that made Serve stop unexpectedly. It is nil after
// a regular shutdown.
func (h *Handle) Err() error {
	return h.err.Load()
}

// InFlight returns the number of requests currently being served.
func (h *Handle) InFlight() int64 {
	return h.inFlight.Load()
}

// Shutdown stops accepting new connections and waits up to grace for
// in-flight requests. Connections still busy at the deadline are closed,
// their request contexts are cancelled, and ErrGraceExceeded is returned.
//
// Only the first call shuts the server down; later calls return its result.
func (h *Handle) Shutdown(grace time.Duration) error {
	h.shutdownOnce.Do(func() {
		h.shutdownErr = h.shutdown(grace)
		close(h.stopped)
	})
	<-h.done
	return h.shutdownErr
}

func (h *Handle) shutdown(grace time.Duration) error {
	h.logger.Info().
		Dur("grace", grace).
		Int64("in_flight", h.InFlight()).
		Msg("HTTP server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	err := h.srv.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		dropped := h.InFlight()
		h.cancel()
		if closeErr := h.srv.Close(); closeErr != nil {
			h.logger.Err(closeErr).Msg("error closing HTTP server connections")
		}
		h.logger.Warn().Int64("dropped", dropped).Msg("grace period exceeded, connections closed")
		return fmt.Errorf("%w: %d requests dropped", ErrGraceExceeded, dropped)
	}

	h.cancel()
	if err != nil {
		return fmt.Errorf("error shutting down HTTP server: %w", err)
	}

	h.logger.Info().Msg("HTTP server shut down gracefully")
	return nil
}

// Shutdown shuts h down. See Handle.Shutdown.
func Shutdown(h *Handle, grace time.Duration) error {
	return h.Shutdown(grace)
}

// Run blocks until ctx is cancelled and then shuts s down with the given
// grace period. If s stops on its own first, its error is returned.
func Run(ctx context.Context, s Server, grace time.Duration) error {
	select {
	case <-ctx.Done():
		return s.Shutdown(grace)
	case <-s.Done():
		return s.Err()
	}
}
