// Package service provides the session snapshot/restore engine.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/yndnr/fontsession/internal/core/domain"
	"github.com/yndnr/fontsession/internal/telemetry/logger"
	"github.com/yndnr/fontsession/internal/telemetry/metric"
)

// SessionStore is the key/value slot the session document lives in.
//
// An unavailable store turns every call into a no-op; Get reports absent for
// both missing keys and read failures.
type SessionStore interface {
	Exists(ctx context.Context) bool
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// DefaultSaveDelay is the quiet period before a scheduled save runs.
const DefaultSaveDelay = 500 * time.Millisecond

// backgroundSaveTimeout bounds a debounced save, which has no caller context.
const backgroundSaveTimeout = 30 * time.Second

// SessionConfig configures a SessionService.
type SessionConfig struct {
	// Key is the storage key. Default: domain.DefaultStorageKey.
	Key string

	// SaveDelay is the debounce window of ScheduleSave. Default: DefaultSaveDelay.
	SaveDelay time.Duration
}

// SessionService persists and restores the live model.
type SessionService struct {
	store   SessionStore
	model   domain.Model
	key     string
	logger  logger.Logger
	metrics *metric.Registry

	saver *Debouncer

	// Throttles "store unavailable" warnings from repeated saves.
	unavailableLog rate.Sometimes
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) SessionOption {
	return func(s *SessionService) {
		s.logger = l
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) SessionOption {
	return func(s *SessionService) {
		s.metrics = m
	}
}

// NewSessionService creates a SessionService over store and model.
func NewSessionService(store SessionStore, model domain.Model, cfg SessionConfig, opts ...SessionOption) *SessionService {
	if cfg.Key == "" {
		cfg.Key = domain.DefaultStorageKey
	}
	if cfg.SaveDelay <= 0 {
		cfg.SaveDelay = DefaultSaveDelay
	}

	s := &SessionService{
		store:          store,
		model:          model,
		key:            cfg.Key,
		logger:         logger.Default(),
		unavailableLog: rate.Sometimes{First: 1, Interval: time.Minute},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metric.NewRegistry(nil)
	}
	s.logger = s.logger.With("key", s.key)

	s.saver = NewDebouncer(cfg.SaveDelay, s.backgroundSave)
	return s
}

// Key returns the storage key.
func (s *SessionService) Key() string {
	return s.key
}

// Available reports whether the store passed its availability probe.
func (s *SessionService) Available(ctx context.Context) bool {
	return s.store.Exists(ctx)
}

// Save encodes the model and writes the document now.
//
// With an unavailable store nothing is written and nil is returned.
func (s *SessionService) Save(ctx context.Context) error {
	ctx = logger.WithSession(ctx, domain.CurrentSessionName)
	log := s.logger.WithContext(ctx)
	if !s.store.Exists(ctx) {
		s.metrics.SavesTotal.WithLabelValues(metric.SaveSkipped).Inc()
		s.unavailableLog.Do(func() {
			log.Warn("session store unavailable, changes are not persisted")
		})
		return nil
	}

	timer := prometheus.NewTimer(s.metrics.SaveDuration)
	defer timer.ObserveDuration()

	raw, err := json.Marshal(Encode(s.model))
	if err != nil {
		s.metrics.SavesTotal.WithLabelValues(metric.SaveFailed).Inc()
		return domain.ErrStoreFailure.WithDetails("encode session").WithCause(err)
	}

	if err := s.store.Set(ctx, s.key, raw); err != nil {
		s.metrics.SavesTotal.WithLabelValues(metric.SaveFailed).Inc()
		return domain.ErrStoreFailure.WithDetails("write session").WithCause(err)
	}

	s.metrics.SavesTotal.WithLabelValues(metric.SaveWritten).Inc()
	s.metrics.DocumentBytes.Set(float64(len(raw)))
	log.Debug("session saved", "bytes", len(raw))
	return nil
}

// Load reads the stored document and reconciles it onto the model.
//
// It never fails; the report says what was applied and what was dropped.
func (s *SessionService) Load(ctx context.Context) Report {
	ctx = logger.WithSession(ctx, domain.CurrentSessionName)
	log := s.logger.WithContext(ctx)
	if !s.store.Exists(ctx) {
		s.metrics.LoadsTotal.WithLabelValues(metric.LoadSkipped).Inc()
		return Report{}
	}

	raw, _ := s.store.Get(ctx, s.key)
	report := Decode(raw, s.model)

	if report.DocumentErr != nil {
		log.Warn("stored session is not a document, ignoring it", "error", report.DocumentErr)
	}
	for _, d := range report.Dropped {
		log.Debug("dropped stored entity",
			"font", d.Font,
			"uid", d.UID,
			"index", d.Index,
			"reason", d.Err,
		)
		s.metrics.EntitiesDropped.WithLabelValues(domain.GetErrorCode(d.Err)).Inc()
	}
	s.metrics.GlyphsRestored.Add(float64(report.GlyphsRestored))

	if report.SessionFound {
		s.metrics.LoadsTotal.WithLabelValues(metric.LoadRestored).Inc()
	} else {
		s.metrics.LoadsTotal.WithLabelValues(metric.LoadNoSession).Inc()
	}

	log.Debug("session restored",
		"session_found", report.SessionFound,
		"fonts", report.FontsApplied,
		"glyphs", report.GlyphsRestored,
		"dropped", len(report.Dropped),
	)
	return report
}

// Stored returns the raw stored document, if any.
func (s *SessionService) Stored(ctx context.Context) ([]byte, bool) {
	return s.store.Get(ctx, s.key)
}

// Clear removes the stored document and cancels any scheduled save.
func (s *SessionService) Clear(ctx context.Context) error {
	s.saver.Cancel()
	if err := s.store.Remove(ctx, s.key); err != nil {
		return domain.ErrStoreFailure.WithDetails("remove session").WithCause(err)
	}
	return nil
}

// ScheduleSave requests a save once changes have been quiet for the save
// delay. Bursts collapse into one write of the latest state.
func (s *SessionService) ScheduleSave() {
	s.metrics.SaveTriggers.Inc()
	s.saver.Trigger()
}

// SavePending reports whether a scheduled save has not run yet.
func (s *SessionService) SavePending() bool {
	return s.saver.Pending()
}

// Flush runs a scheduled save immediately. It reports whether one ran.
func (s *SessionService) Flush() bool {
	return s.saver.Flush()
}

// Commit runs a scheduled save now under ctx and returns its error.
// Without a scheduled save it only waits for a save in flight.
func (s *SessionService) Commit(ctx context.Context) error {
	var err error
	s.saver.Claim(func() {
		err = s.Save(ctx)
	})
	return err
}

// Close stops accepting scheduled saves, waits for a save in flight and
// writes a pending one under ctx.
func (s *SessionService) Close(ctx context.Context) error {
	if !s.saver.Stop() {
		return nil
	}
	return s.Save(ctx)
}

func (s *SessionService) backgroundSave() {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundSaveTimeout)
	defer cancel()

	ctx = logger.WithOperation(ctx, "autosave")
	if err := s.Save(ctx); err != nil {
		s.logger.WithContext(ctx).Error("scheduled session save failed", "error", err)
	}
}
