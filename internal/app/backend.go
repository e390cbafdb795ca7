package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/fontsession/internal/storage"
	"github.com/yndnr/fontsession/internal/storage/memory"
)

// OpenBackend opens the storage engine named by cfg.Engine.
// reg may be nil; when set, engines exporting metrics register them.
func OpenBackend(cfg storage.KVConfig, log *slog.Logger, reg prometheus.Registerer) (storage.Backend, error) {
	switch cfg.Engine {
	case storage.EngineMemory:
		return memory.New(), nil
	case storage.EngineFile, "":
		return storage.NewFileEngine(cfg, log)
	case storage.EngineBadger:
		e, err := storage.NewBadgerEngine(cfg, log)
		if err != nil {
			return nil, err
		}
		if reg != nil {
			e.RegisterMetrics(reg)
		}
		return e, nil
	case storage.EngineBolt:
		return storage.NewBoltEngine(cfg, log)
	case storage.EngineSQLite:
		return storage.NewSQLiteEngine(cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownEngine, cfg.Engine)
	}
}
