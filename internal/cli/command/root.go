package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/fontsession/internal/app"
	"github.com/yndnr/fontsession/internal/cli/output"
	"github.com/yndnr/fontsession/internal/config"
	"github.com/yndnr/fontsession/internal/core/domain"
	"github.com/yndnr/fontsession/internal/core/service"
	"github.com/yndnr/fontsession/internal/infra/buildinfo"
	"github.com/yndnr/fontsession/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "fontsession",
		Usage:   "Persist and restore a font workspace editing session",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RestoreCommand(),
			ShowCommand(),
			ClearCommand(),
			GlyphCommand(),
			FontCommand(),
			SettingsCommand(),
			WatchCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Before: func(c *cli.Context) error {
			_, err := output.ParseFormat(c.String("output"))
			return err
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (default: user config dir/fontsession/config.yaml)",
			EnvVars: []string{"FONTSESSION_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "manifest",
			Aliases: []string{"m"},
			Usage:   "Font manifest (YAML)",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "Storage engine: memory, file, badger, bolt, sqlite",
		},
		&cli.StringFlag{
			Name:  "store-path",
			Usage: "Storage directory or database file",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Log at debug level",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config    string
	Manifest  string
	Engine    string
	StorePath string

	Output  output.Format
	Wide    bool
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	format, _ := output.ParseFormat(c.String("output"))
	return &GlobalFlags{
		Config:    c.String("config"),
		Manifest:  c.String("manifest"),
		Engine:    c.String("engine"),
		StorePath: c.String("store-path"),
		Output:    format,
		Wide:      c.Bool("wide"),
		Verbose:   c.Bool("verbose"),
	}
}

// overrides maps set flags onto dotted configuration keys.
func (g *GlobalFlags) overrides() map[string]any {
	m := map[string]any{}
	if g.Manifest != "" {
		m["workspace.manifest"] = g.Manifest
	}
	if g.Engine != "" {
		m["store.engine"] = g.Engine
	}
	if g.StorePath != "" {
		m["store.path"] = g.StorePath
	}
	if g.Verbose {
		m["log.level"] = "debug"
	}
	return m
}

// loadConfig builds the effective configuration from file, environment and flags.
func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	flags := ParseGlobalFlags(c)
	cfg, err := config.Load(flags.Config, flags.overrides())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openApp loads the configuration and opens the store.
func openApp(c *cli.Context) (*app.App, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.WithLogOutput(stderr(c)), app.WithMetricsOutput(stderr(c)))
}

// withApp opens the application, runs fn and closes it. ctx carries the
// command name as the log operation.
func withApp(c *cli.Context, fn func(ctx context.Context, a *app.App) error) (err error) {
	a, err := openApp(c)
	if err != nil {
		return err
	}
	ctx := logger.WithOperation(c.Context, c.Command.FullName())
	defer func() {
		if cerr := a.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, a)
}

// withStore runs fn against an open, available store. Commands that only
// inspect or remove the stored document have nothing to do without one.
func withStore(c *cli.Context, fn func(ctx context.Context, a *app.App) error) error {
	return withApp(c, func(ctx context.Context, a *app.App) error {
		if !a.Available() {
			return domain.ErrStoreUnavailable.WithDetails(a.Engine())
		}
		return fn(ctx, a)
	})
}

// withSession loads the workspace, restores the stored session onto it and
// runs fn. An unavailable store is not an error: nothing is restored and
// saves are skipped.
func withSession(c *cli.Context, fn func(ctx context.Context, a *app.App, report service.Report) error) error {
	return withApp(c, func(ctx context.Context, a *app.App) error {
		if err := a.LoadWorkspace(); err != nil {
			return err
		}
		if !a.Available() {
			fmt.Fprintf(stderr(c), "session store (%s) unavailable, changes will not be saved\n", a.Engine())
		}
		report := a.Session.Load(ctx)
		return fn(ctx, a, report)
	})
}

// render writes data to stdout in the selected format.
func render(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	return output.NewFormatter(flags.Output, flags.Wide).Format(c.App.Writer, data)
}

// result is the outcome of an edit command.
type result struct {
	Action string `json:"action" yaml:"action"`
	Font   string `json:"font,omitempty" yaml:"font,omitempty"`
	UID    string `json:"uid,omitempty" yaml:"uid,omitempty"`
}

func (r result) String() string {
	switch {
	case r.UID != "" && r.Font != "":
		return fmt.Sprintf("%s: %s/%s", r.Action, r.Font, r.UID)
	case r.UID != "":
		return fmt.Sprintf("%s: %s", r.Action, r.UID)
	case r.Font != "":
		return fmt.Sprintf("%s: %s", r.Action, r.Font)
	default:
		return r.Action
	}
}

// done reports an edit: a status line for tables, a document otherwise.
func done(c *cli.Context, r result) error {
	if ParseGlobalFlags(c).Output == output.FormatTable {
		_, err := fmt.Fprintln(c.App.Writer, r.String())
		return err
	}
	return render(c, r)
}

// stderr returns the writer for logs and notices.
func stderr(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}
