package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/atomic"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/logger"
)

const healthPath = "/healthz"

// newRouter builds the HTTP pipeline in front of the dispatcher.
func newRouter(dispatcher http.Handler, cfg config.Server, log *logger.Logger, inFlight *atomic.Int64) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(withTraceID(log), withLogging, withInFlight(inFlight))

	router.Get(healthPath, healthz)
	if cfg.MetricsPath != "" {
		router.Handle(cfg.MetricsPath, promhttp.Handler())
	}

	// everything else, unknown methods included, belongs to the dispatcher
	router.Handle("/*", dispatcher)
	router.NotFound(dispatcher.ServeHTTP)
	router.MethodNotAllowed(dispatcher.ServeHTTP)

	return router
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
