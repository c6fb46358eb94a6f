package serve

import (
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vblock/vblock/internal/metrics"
	"github.com/vblock/vblock/internal/server"
	analyticsModule "github.com/vblock/vblock/modules/analytics"
	"github.com/vblock/vblock/modules/videoblock"
	"github.com/vblock/vblock/pkg/analytics"
	"github.com/vblock/vblock/pkg/decorate"
	"github.com/vblock/vblock/pkg/viewer"
)

func NewCommand() *Main {
	return &Main{
		Config: &Config{},
	}
}

type Main struct {
	Config *Config

	logger     zerolog.Logger
	server     *server.ServerManagerCtx
	gate       viewer.Manager
	videoBlock *videoblock.ModuleCtx
	analytics  *analyticsModule.ModuleCtx
}

func (main *Main) Preflight() {
	main.logger = log.With().Str("service", "main").Logger()
}

func (main *Main) start() {
	config := main.Config

	main.server = server.New(&config.Server)

	main.gate = viewer.New(&viewer.Config{
		ScriptURL:    config.Player.ScriptURL,
		PollInterval: config.Player.PollInterval,
		Timeout:      config.Player.ReadyTimeout,
	})
	metrics.ObserveGate(main.gate)

	main.analytics = analyticsModule.New("/analytics", &analyticsModule.Config{
		Config: analytics.Config{
			SessionExpiration: config.Analytics.SessionExpiration,
		},
		ListLimit:         config.Analytics.ListLimit,
		RequestsPerMinute: config.Analytics.RequestsPerMinute,
	})
	main.analytics.Start()
	main.server.Handle("/analytics/", main.analytics)
	main.logger.Info().Msg("analytics registered")

	main.videoBlock = videoblock.New("/blocks", main.gate, &videoblock.Config{
		Config: decorate.Config{
			ScriptURL:      config.Player.ScriptURL,
			Namespace:      config.Player.Namespace,
			EventsPath:     "/analytics",
			PollIntervalMs: int(config.Player.PollInterval.Milliseconds()),
			TimeoutMs:      int(config.Player.ReadyTimeout.Milliseconds()),
		},
	})
	main.server.Handle("/blocks", main.videoBlock)
	main.logger.Info().Str("script-url", config.Player.ScriptURL).Msg("videoblock registered")

	main.server.Mount(func(r *chi.Mux) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			//nolint
			_, _ = w.Write([]byte("pong"))
		})

		r.Get("/metrics", promhttp.Handler().ServeHTTP)
	})

	main.server.Start()
}

func (main *Main) shutdown() {
	err := main.server.Shutdown()
	main.logger.Err(err).Msg("server shutdown")

	if main.videoBlock != nil {
		main.videoBlock.Shutdown()
		main.logger.Info().Msg("videoblock shutdown")
	}

	if main.analytics != nil {
		main.analytics.Shutdown()
		main.logger.Info().Msg("analytics shutdown")
	}

	if main.gate != nil {
		main.gate.Stop()
		main.logger.Info().Msg("readiness gate stopped")
	}
}

func (main *Main) ConfigReload() {
	config := main.Config

	if main.videoBlock != nil {
		main.videoBlock.ConfigReload(&videoblock.Config{
			Config: decorate.Config{
				ScriptURL:      config.Player.ScriptURL,
				Namespace:      config.Player.Namespace,
				EventsPath:     "/analytics",
				PollIntervalMs: int(config.Player.PollInterval.Milliseconds()),
				TimeoutMs:      int(config.Player.ReadyTimeout.Milliseconds()),
			},
		})
	}

	if main.analytics != nil {
		main.analytics.ConfigReload(&analyticsModule.Config{
			Config: analytics.Config{
				SessionExpiration: config.Analytics.SessionExpiration,
			},
			ListLimit:         config.Analytics.ListLimit,
			RequestsPerMinute: config.Analytics.RequestsPerMinute,
		})
	}

	main.logger.Info().Msg("config reloaded")
}

func (main *Main) Run(cmd *cobra.Command, args []string) {
	main.logger.Info().Msg("starting main server")
	main.start()
	main.logger.Info().Msg("main ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	sig := <-quit

	main.logger.Warn().Msgf("received %s, attempting graceful shutdown", sig)
	main.shutdown()
	main.logger.Info().Msg("shutdown complete")
}
