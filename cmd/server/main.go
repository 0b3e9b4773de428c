package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-forum/internal/config"
	"github.com/MKhiriev/go-forum/internal/dispatch"
	handler "github.com/MKhiriev/go-forum/internal/handler/http"
	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/router"
	"github.com/MKhiriev/go-forum/internal/server"
	"github.com/MKhiriev/go-forum/internal/service"
	"github.com/MKhiriev/go-forum/internal/store"
	"github.com/MKhiriev/go-forum/internal/workers"
	"github.com/MKhiriev/go-forum/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	printBuildInfo(buildInfo)

	log := logger.NewLogger("go-forum-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// a linker-injected version is served unless one was configured
	if buildVersion != "" && cfg.App.Version == config.Defaults().App.Version {
		cfg.App.Version = buildVersion
	}

	log.Debug().Any("server", cfg.Server).Any("workers", cfg.Workers).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)

	services, err := service.NewServices(repositories, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	h := handler.NewHandler(services, cfg.App, log)
	table := router.NewTable()
	if err = h.Register(table); err != nil {
		log.Fatal().Err(err).Msg("error registering routes")
	}

	bg := workers.NewWorkers(
		workers.NewKeySweeper(repositories.AuthKeyRepository, cfg.Workers.KeySweepInterval, log),
	)
	bg.Run(ctx)

	srv, err := server.Start(ctx, cfg.Server, table,
		server.WithLogger(log),
		server.WithDispatchOptions(
			dispatch.WithState(handler.NewState(services)),
			dispatch.WithHooks(handler.CORS(cfg.App.CORSAllowOrigin)),
			dispatch.WithErrorMapper(handler.StatusFromError),
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting server")
	}
	log.Info().Str("address", srv.Addr().String()).Str("version", buildInfo.BuildVersion()).Msg("server started")

	if err = server.Run(ctx, srv, cfg.Server.GracePeriod); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}

	stop()
	bg.Wait()
	log.Info().Msg("server stopped")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
