package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/fontsession/internal/app"
	"github.com/yndnr/fontsession/internal/core/domain"
	"github.com/yndnr/fontsession/internal/core/service"
	"github.com/yndnr/fontsession/internal/core/workspace"
)

func fontFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "font",
		Aliases:  []string{"f"},
		Usage:    "Font name",
		Required: true,
	}
}

func uidFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "uid",
		Aliases:  []string{"u"},
		Usage:    "Glyph uid",
		Required: true,
	}
}

func offFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "off",
		Usage: "Clear instead of set",
	}
}

// GlyphCommand returns the glyph subcommand group.
func GlyphCommand() *cli.Command {
	return &cli.Command{
		Name:  "glyph",
		Usage: "Edit glyphs",
		Subcommands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Change a glyph's code or css name",
				Flags: []cli.Flag{
					fontFlag(),
					uidFlag(),
					&cli.IntFlag{Name: "code", Usage: "Code point (decimal or 0x hex)"},
					&cli.StringFlag{Name: "css", Usage: "CSS class name"},
				},
				Action: glyphSet,
			},
			{
				Name:   "select",
				Usage:  "Select a glyph for the generated font",
				Flags:  []cli.Flag{fontFlag(), uidFlag(), offFlag()},
				Action: glyphSelect,
			},
			{
				Name:  "add",
				Usage: "Add a glyph to the custom font",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "font", Aliases: []string{"f"}, Usage: "Custom font name (default: session.custom_font)"},
					&cli.StringFlag{Name: "css", Usage: "CSS class name", Required: true},
					&cli.IntFlag{Name: "code", Usage: "Code point (decimal or 0x hex)", Required: true},
					&cli.StringFlag{Name: "path", Usage: "SVG path data", Required: true},
					&cli.Float64Flag{Name: "width", Usage: "SVG advance width", Value: 1000},
				},
				Action: glyphAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a glyph from the custom font",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "font", Aliases: []string{"f"}, Usage: "Custom font name (default: session.custom_font)"},
					uidFlag(),
				},
				Action: glyphRemove,
			},
		},
	}
}

// FontCommand returns the font subcommand group.
func FontCommand() *cli.Command {
	return &cli.Command{
		Name:  "font",
		Usage: "Edit fonts",
		Subcommands: []*cli.Command{
			{
				Name:   "collapse",
				Usage:  "Fold a font in the glyph list",
				Flags:  []cli.Flag{fontFlag(), offFlag()},
				Action: fontCollapse,
			},
		},
	}
}

// SettingsCommand changes font-generation settings.
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Change font-generation settings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "font-name", Usage: "Generated font name"},
			&cli.Float64Flag{Name: "font-size", Usage: "Preview font size"},
			&cli.StringFlag{Name: "prefix", Usage: "CSS class prefix"},
			&cli.BoolFlag{Name: "suffix", Usage: "Use the CSS prefix as a suffix"},
			&cli.BoolFlag{Name: "hinting", Usage: "Enable hinting"},
			&cli.StringFlag{Name: "encoding", Usage: "Code assignment: pua, ascii, unicode"},
		},
		Action: settings,
	}
}

// withEdit restores the session, runs fn and saves the result.
func withEdit(c *cli.Context, fn func(ws *workspace.Workspace) (result, error)) error {
	return withSession(c, func(ctx context.Context, a *app.App, _ service.Report) error {
		r, err := fn(a.Workspace)
		if err != nil {
			return err
		}
		if err := a.Session.Commit(ctx); err != nil {
			return err
		}
		return done(c, r)
	})
}

// customFont resolves the --font flag of custom-only commands.
func customFont(c *cli.Context, ws *workspace.Workspace) error {
	name := c.String("font")
	if name == "" {
		return nil
	}
	f, ok := ws.Font(name)
	if !ok {
		return domain.ErrWorkspaceFontNotFound.WithDetails(name)
	}
	if !f.IsCustom() {
		return domain.ErrWorkspaceNotCustom.WithDetails(name)
	}
	return nil
}

func glyphSet(c *cli.Context) error {
	if !c.IsSet("code") && !c.IsSet("css") {
		return fmt.Errorf("nothing to change: pass --code and/or --css")
	}

	return withEdit(c, func(ws *workspace.Workspace) (result, error) {
		e := workspace.GlyphEdit{UID: c.String("uid")}
		if c.IsSet("code") {
			code := c.Int("code")
			e.Code = &code
		}
		if c.IsSet("css") {
			css := c.String("css")
			e.CSS = &css
		}
		if err := ws.EditGlyph(c.String("font"), e); err != nil {
			return result{}, err
		}
		return result{Action: "glyph updated", Font: c.String("font"), UID: e.UID}, nil
	})
}

func glyphSelect(c *cli.Context) error {
	return withEdit(c, func(ws *workspace.Workspace) (result, error) {
		selected := !c.Bool("off")
		e := workspace.GlyphEdit{UID: c.String("uid"), Selected: &selected}
		if err := ws.EditGlyph(c.String("font"), e); err != nil {
			return result{}, err
		}
		action := "glyph selected"
		if !selected {
			action = "glyph deselected"
		}
		return result{Action: action, Font: c.String("font"), UID: e.UID}, nil
	})
}

func glyphAdd(c *cli.Context) error {
	return withEdit(c, func(ws *workspace.Workspace) (result, error) {
		if err := customFont(c, ws); err != nil {
			return result{}, err
		}
		svg := domain.SVG{Path: c.String("path"), Width: c.Float64("width")}
		uid, err := ws.AddCustomGlyph(c.String("css"), c.Int("code"), svg)
		if err != nil {
			return result{}, err
		}
		return result{Action: "glyph added", Font: ws.CustomFont().Name(), UID: uid}, nil
	})
}

func glyphRemove(c *cli.Context) error {
	return withEdit(c, func(ws *workspace.Workspace) (result, error) {
		if err := customFont(c, ws); err != nil {
			return result{}, err
		}
		uid := c.String("uid")
		if err := ws.RemoveCustomGlyph(uid); err != nil {
			return result{}, err
		}
		return result{Action: "glyph removed", Font: ws.CustomFont().Name(), UID: uid}, nil
	})
}

func fontCollapse(c *cli.Context) error {
	return withEdit(c, func(ws *workspace.Workspace) (result, error) {
		collapsed := !c.Bool("off")
		if err := ws.SetCollapsed(c.String("font"), collapsed); err != nil {
			return result{}, err
		}
		action := "font collapsed"
		if !collapsed {
			action = "font expanded"
		}
		return result{Action: action, Font: c.String("font")}, nil
	})
}

func settings(c *cli.Context) error {
	var s workspace.Settings
	if c.IsSet("font-name") {
		v := c.String("font-name")
		s.FontName = &v
	}
	if c.IsSet("font-size") {
		v := c.Float64("font-size")
		s.FontSize = &v
	}
	if c.IsSet("prefix") {
		v := c.String("prefix")
		s.CSSPrefixText = &v
	}
	if c.IsSet("suffix") {
		v := c.Bool("suffix")
		s.CSSUseSuffix = &v
	}
	if c.IsSet("hinting") {
		v := c.Bool("hinting")
		s.Hinting = &v
	}
	if c.IsSet("encoding") {
		v := c.String("encoding")
		s.Encoding = &v
	}
	if s == (workspace.Settings{}) {
		return fmt.Errorf("nothing to change: pass at least one setting flag")
	}

	return withEdit(c, func(ws *workspace.Workspace) (result, error) {
		if err := ws.ApplySettings(s); err != nil {
			return result{}, err
		}
		return result{Action: "settings updated"}, nil
	})
}
