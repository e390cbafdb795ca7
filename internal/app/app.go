package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/fontsession/internal/config"
	"github.com/yndnr/fontsession/internal/core/service"
	"github.com/yndnr/fontsession/internal/core/workspace"
	"github.com/yndnr/fontsession/internal/storage"
	"github.com/yndnr/fontsession/internal/telemetry/logger"
	"github.com/yndnr/fontsession/internal/telemetry/metric"
)

// ErrNoManifest is returned by LoadWorkspace when no manifest is configured.
var ErrNoManifest = errors.New("no font manifest configured (set workspace.manifest or --manifest)")

// App holds the wired components of one fontsession process.
type App struct {
	Config  *config.AppConfig
	Logger  logger.Logger
	Metrics *metric.Registry
	Store   *storage.Store

	// Set by LoadWorkspace.
	Workspace *workspace.Workspace
	Session   *service.SessionService

	registry *prometheus.Registry
	logOut   io.Writer
	dumpOut  io.Writer
}

// Option configures an App.
type Option func(*App)

// WithLogOutput sets the log destination. Default: os.Stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) {
		a.logOut = w
	}
}

// WithMetricsOutput sets where metrics.dump writes on Close. Default: os.Stderr.
func WithMetricsOutput(w io.Writer) Option {
	return func(a *App) {
		a.dumpOut = w
	}
}

// New initializes logging, metrics and storage from cfg.
func New(cfg *config.AppConfig, opts ...Option) (*App, error) {
	a := &App{
		Config:  cfg,
		logOut:  os.Stderr,
		dumpOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.logOut,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	a.Logger = log

	var reg prometheus.Registerer
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		reg = a.registry
	}
	a.Metrics = metric.NewRegistry(reg)

	kv := cfg.Store.KVConfig()
	backend, err := OpenBackend(kv, logger.Slog(log), reg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", kv.Engine, err)
	}
	a.Store = storage.NewStore(backend, logger.Slog(log))

	if a.registry != nil {
		a.registry.MustRegister(metric.NewCollector(a))
	}

	log.Debug("store opened", "engine", kv.Engine, "path", kv.Path)
	return a, nil
}

// LoadWorkspace loads the configured manifest and binds a session service to
// it. Workspace edits schedule a debounced save.
func (a *App) LoadWorkspace() error {
	path := a.Config.Workspace.Manifest
	if path == "" {
		return ErrNoManifest
	}

	ws, err := workspace.Load(path, a.Config.Session.CustomFont)
	if err != nil {
		return err
	}

	svc := service.NewSessionService(a.Store, ws, service.SessionConfig{
		Key:       a.Config.Session.Key,
		SaveDelay: a.Config.Session.SaveDelay,
	},
		service.WithLogger(a.Logger),
		service.WithMetrics(a.Metrics),
	)
	ws.OnChange(svc.ScheduleSave)

	a.Workspace = ws
	a.Session = svc
	return nil
}

// Available reports whether the session store passed its probe.
func (a *App) Available() bool {
	return a.Store.Exists(context.Background())
}

// Engine names the storage engine in use.
func (a *App) Engine() string {
	return a.Config.Store.Engine
}

// Gatherer returns the metrics registry, or nil when metrics are disabled.
func (a *App) Gatherer() prometheus.Gatherer {
	if a.registry == nil {
		return nil
	}
	return a.registry
}

// Close flushes a scheduled save, closes the store and dumps metrics when
// configured.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.Session != nil {
		if err := a.Session.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close session: %w", err))
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}

	if a.registry != nil && a.Config.Metrics.Dump {
		if err := metric.WriteText(a.dumpOut, a.registry); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
