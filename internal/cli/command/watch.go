package command

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/fontsession/internal/app"
	"github.com/yndnr/fontsession/internal/core/service"
	"github.com/yndnr/fontsession/internal/core/workspace"
	"github.com/yndnr/fontsession/internal/infra/confloader"
	"github.com/yndnr/fontsession/internal/infra/shutdown"
	"github.com/yndnr/fontsession/internal/telemetry/logger"
)

// watchShutdownTimeout bounds the final save on exit.
const watchShutdownTimeout = 10 * time.Second

// WatchCommand applies an edits file to the restored workspace every time
// the file changes. Saves are debounced; a pending save is written on exit.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Apply an edits file on every change until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "edits",
				Aliases:  []string{"e"},
				Usage:    "Edits file (YAML: settings, fonts.<name>.collapsed, fonts.<name>.glyphs)",
				Required: true,
			},
		},
		Action: watch,
	}
}

func watch(c *cli.Context) error {
	return withSession(c, func(ctx context.Context, a *app.App, _ service.Report) error {
		path := c.String("edits")
		log := a.Logger.With("edits", path)

		apply := func() {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Warn("cannot read edits file", "error", err)
				return
			}
			edits, err := workspace.ParseEdits(data)
			if err != nil {
				log.Warn("ignoring invalid edits file", "error", err)
				return
			}
			if err := a.Workspace.Apply(edits); err != nil {
				log.Warn("some edits were not applied", "error", err)
			}
			log.Debug("edits applied")
		}

		w, err := confloader.NewWatcher(confloader.WithWatcherLogger(logger.Slog(a.Logger)))
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := w.Watch(path); err != nil {
			w.Stop()
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.OnChange(func(string) { apply() })

		if _, err := os.Stat(path); err == nil {
			apply()
		}
		w.StartAsync()

		h := shutdown.NewHandler(watchShutdownTimeout)
		h.OnShutdown(a.Session.Commit)
		h.OnShutdown(func(context.Context) error { return w.Stop() })

		fmt.Fprintf(stderr(c), "watching %s, press Ctrl+C to stop\n", path)
		return h.Wait(ctx)
	})
}
