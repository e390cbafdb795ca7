package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/fontsession/internal/app"
	"github.com/yndnr/fontsession/internal/cli/output"
	"github.com/yndnr/fontsession/internal/core/domain"
	"github.com/yndnr/fontsession/internal/core/service"
	"github.com/yndnr/fontsession/internal/core/workspace"
)

// RestoreCommand restores the stored session onto the manifest and prints
// the resulting workspace.
func RestoreCommand() *cli.Command {
	return &cli.Command{
		Name:   "restore",
		Usage:  "Restore the stored session and print the workspace",
		Action: restoreSession,
	}
}

// ShowCommand prints the stored session document.
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:   "show",
		Usage:  "Print the stored session document",
		Action: showSession,
	}
}

// ClearCommand removes the stored session document.
func ClearCommand() *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Remove the stored session document",
		Action: clearSession,
	}
}

// restoreOutput is the json/yaml shape of the restore command.
type restoreOutput struct {
	Workspace workspace.View `json:"workspace" yaml:"workspace"`
	Report    reportView     `json:"report" yaml:"report"`
}

type reportView struct {
	SessionFound    bool       `json:"session_found" yaml:"session_found"`
	FontSizeApplied bool       `json:"font_size_applied" yaml:"font_size_applied"`
	FontsApplied    int        `json:"fonts_applied" yaml:"fonts_applied"`
	GlyphsRestored  int        `json:"glyphs_restored" yaml:"glyphs_restored"`
	Dropped         []dropView `json:"dropped" yaml:"dropped"`
	DocumentError   string     `json:"document_error,omitempty" yaml:"document_error,omitempty"`
}

type dropView struct {
	Font   string `json:"font" yaml:"font"`
	UID    string `json:"uid,omitempty" yaml:"uid,omitempty"`
	Index  int    `json:"index" yaml:"index"`
	Code   string `json:"code" yaml:"code"`
	Reason string `json:"reason" yaml:"reason"`
}

func newReportView(r service.Report) reportView {
	v := reportView{
		SessionFound:    r.SessionFound,
		FontSizeApplied: r.FontSizeApplied,
		FontsApplied:    r.FontsApplied,
		GlyphsRestored:  r.GlyphsRestored,
		Dropped:         make([]dropView, 0, len(r.Dropped)),
	}
	if r.DocumentErr != nil {
		v.DocumentError = r.DocumentErr.Error()
	}
	for _, d := range r.Dropped {
		dv := dropView{Font: d.Font, UID: d.UID, Index: d.Index, Code: domain.GetErrorCode(d.Err), Reason: d.Err.Error()}
		var de *domain.DomainError
		if errors.As(d.Err, &de) {
			dv.Reason = de.Message
		}
		v.Dropped = append(v.Dropped, dv)
	}
	return v
}

// glyphTable lays a workspace out one glyph per row.
type glyphTable workspace.View

func (v glyphTable) Table(wide bool) *output.Table {
	t := &output.Table{}
	t.SetHeaders("FONT", "UID", "CODE", "CSS", "SELECTED", "MODIFIED")
	if wide {
		t.Headers = append(t.Headers, "CHAR_REF", "COLLAPSED")
	}

	for _, f := range v.Fonts {
		for _, g := range f.Glyphs {
			row := []string{
				f.Name,
				g.UID,
				fmt.Sprintf("0x%04x", g.Code),
				g.CSS,
				fmt.Sprintf("%t", g.Selected),
				fmt.Sprintf("%t", g.Modified),
			}
			if wide {
				ref := "-"
				if g.CharRef != 0 {
					ref = fmt.Sprintf("0x%04x", g.CharRef)
				}
				row = append(row, ref, fmt.Sprintf("%t", f.Collapsed))
			}
			t.AddRow(row...)
		}
	}
	return t
}

func restoreSession(c *cli.Context) error {
	return withSession(c, func(ctx context.Context, a *app.App, report service.Report) error {
		view := a.Workspace.View()

		if ParseGlobalFlags(c).Output != output.FormatTable {
			return render(c, restoreOutput{Workspace: view, Report: newReportView(report)})
		}

		if report.SessionFound {
			fmt.Fprintf(stderr(c), "restored %d fonts, %d glyphs (%d dropped)\n",
				report.FontsApplied, report.GlyphsRestored, len(report.Dropped))
		} else {
			fmt.Fprintln(stderr(c), "no stored session, showing the manifest as loaded")
		}
		return render(c, glyphTable(view))
	})
}

func showSession(c *cli.Context) error {
	return withStore(c, func(ctx context.Context, a *app.App) error {
		key := a.Config.Session.Key
		raw, ok := a.Store.Get(ctx, key)
		if !ok {
			return done(c, result{Action: "no stored session"})
		}
		if !json.Valid(raw) {
			return fmt.Errorf("value under %q is not a JSON document (%d bytes)", key, len(raw))
		}

		doc := json.RawMessage(raw)
		if ParseGlobalFlags(c).Output == output.FormatTable {
			return (&output.JSONFormatter{}).Format(c.App.Writer, doc)
		}
		return render(c, doc)
	})
}

func clearSession(c *cli.Context) error {
	return withStore(c, func(ctx context.Context, a *app.App) error {
		if err := a.Store.Remove(ctx, a.Config.Session.Key); err != nil {
			return domain.ErrStoreFailure.WithDetails("remove session").WithCause(err)
		}
		return done(c, result{Action: "session cleared"})
	})
}
