package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nhl-discord-bot/internal/bot"
	"github.com/preston-bernstein/nhl-discord-bot/internal/config"
	httpserver "github.com/preston-bernstein/nhl-discord-bot/internal/http"
	"github.com/preston-bernstein/nhl-discord-bot/internal/http/handlers"
	"github.com/preston-bernstein/nhl-discord-bot/internal/logging"
	"github.com/preston-bernstein/nhl-discord-bot/internal/metrics"
	"github.com/preston-bernstein/nhl-discord-bot/internal/notify"
	"github.com/preston-bernstein/nhl-discord-bot/internal/poller"
	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
	"github.com/preston-bernstein/nhl-discord-bot/internal/timeutil"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

var (
	metricsSetup = metrics.Setup

	errMissingToken = errors.New("server: DISCORD_TOKEN is required")
)

// Server owns every long-lived component of the bot and their lifecycle.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	session       chatSession
	scheduler     jobScheduler
	tracker       watchTracker
	poller        Poller
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	closers       []namedCloser
}

// namedCloser releases a resource after the listeners are down.
type namedCloser struct {
	name  string
	close func() error
}

// New constructs a server with the live stats client and a Discord session.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.Discord.Token == "" {
		return nil, errMissingToken
	}
	session, err := newDiscordSession(cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("server: discord session: %w", err)
	}
	return newServerWithSession(cfg, logger, session, nil), nil
}

// newServerWithSession wires the whole graph around session. A nil recorder
// means metrics are set up from cfg.
func newServerWithSession(cfg config.Config, logger *slog.Logger, session chatSession, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	loc := timeutil.LoadLocation(cfg.Watch.Timezone)

	client := statsapi.NewClient(statsapi.Config{
		BaseURL: cfg.StatsAPI.BaseURL,
		Timeout: cfg.StatsAPI.Timeout,
		Logger:  logger,
		Metrics: recorder,
	})
	scheduler := watch.NewCronScheduler(loc, logger)

	hubCtx, hubCancel := context.WithCancel(context.Background())
	hub := notify.NewHub(hubCtx, logger, originChecker(cfg.HTTP.AllowedOrigins))
	sinks := buildSinks(cfg, logger, recorder, session, hub)

	tracker := watch.NewTracker(watch.Config{
		Client:    client,
		Scheduler: scheduler,
		Sink:      sinks.multi,
		Logger:    logger,
		Metrics:   recorder,
		Cadences: watch.Cadences{
			Pregame:   cfg.Watch.PregameInterval,
			GameStart: cfg.Watch.GameStartInterval,
			Live:      cfg.Watch.LiveInterval,
		},
		Location: loc,
	})
	plr := poller.New(tracker, scheduler, watch.TeamFilter(cfg.Watch.TeamIDs...), cfg.Watch.RebuildSpec, logger, recorder)

	b := bot.New(bot.Config{
		Prefix:   cfg.Discord.CommandPrefix,
		Client:   client,
		Watcher:  tracker,
		Logger:   logger,
		Metrics:  recorder,
		Location: loc,
	})
	session.AddHandler(b.HandleMessageCreate)

	handler := handlers.NewHandler(tracker, logger, plr.Status)
	var admin *handlers.AdminHandler
	if cfg.HTTP.AdminToken != "" {
		admin = handlers.NewAdminHandler(tracker, plr, cfg.HTTP.AdminToken, logger)
	}
	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler:        handler,
		Admin:          admin,
		Goals:          hub,
		Logger:         logger,
		Metrics:        recorder,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	logging.Info(logger, "goal sinks configured", logging.FieldSink, sinks.multi.Names())

	closers := []namedCloser{{name: "goal hub", close: func() error {
		hub.Close()
		hubCancel()
		return nil
	}}}
	closers = append(closers, sinks.closers...)

	return &Server{
		cfg:       cfg,
		logger:    logger,
		metrics:   recorder,
		session:   session,
		scheduler: scheduler,
		tracker:   tracker,
		poller:    plr,
		httpServer: netHTTPServer{srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		}},
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		closers:       closers,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, session chatSession, scheduler jobScheduler, plr Poller, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		session:    session,
		scheduler:  scheduler,
		poller:     plr,
		httpServer: httpSrv,
	}
}

// Run starts the listeners, the scheduler, the poller and the Discord session,
// then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) error {
	s.startMetrics()
	s.startServer(stop)
	s.scheduler.Start()

	if err := s.poller.Start(ctx); err != nil {
		logging.Error(s.logger, "failed to start poller", err)
		s.gracefulShutdown()
		return err
	}
	if err := s.session.Open(); err != nil {
		logging.Error(s.logger, "failed to open discord session", err)
		s.gracefulShutdown()
		return fmt.Errorf("server: discord open: %w", err)
	}
	logging.Info(s.logger, "discord session open", "prefix", s.cfg.Discord.CommandPrefix)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
	return nil
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

// gracefulShutdown stops intake first (chat, then jobs), then the listeners,
// then the sinks the jobs were publishing to.
func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.session != nil {
		if err := s.session.Close(); err != nil {
			logging.Warn(s.logger, "discord session close failed", logging.FieldError, err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}
	if s.tracker != nil {
		s.tracker.Stop()
	}
	if err := s.scheduler.Stop(shutdownCtx); err != nil {
		logging.Warn(s.logger, "scheduler stop failed", logging.FieldError, err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}
	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	for _, c := range s.closers {
		if err := c.close(); err != nil {
			logging.Warn(s.logger, c.name+" close failed", logging.FieldError, err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && cfg.Metrics.ListenerEnabled(cfg.Port) {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", "addr", srv.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
