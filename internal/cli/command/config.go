package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/fontsession/internal/config"
	"github.com/yndnr/fontsession/internal/infra/buildinfo"
)

// ConfigCommand prints the effective configuration with secrets masked.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return render(c, config.Sanitize(cfg))
		},
	}
}

// VersionCommand prints build information.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(c *cli.Context) error {
			return render(c, buildinfo.Get())
		},
	}
}
