package server

import (
	"context"
	"net"
	"net/http"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/logger"
)

func newHTTPServer(handler http.Handler, cfg config.Server, log *logger.Logger, base context.Context) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          log.StdLogger(),
		BaseContext: func(net.Listener) context.Context {
			return base
		},
	}
}
