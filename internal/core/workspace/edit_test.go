package workspace

import (
	"errors"
	"testing"

	"github.com/yndnr/fontsession/internal/core/domain"
)

func countChanges(w *Workspace) *int {
	n := 0
	w.OnChange(func() { n++ })
	return &n
}

func TestApplySettings(t *testing.T) {
	w := newTestWorkspace(t)
	changes := countChanges(w)

	err := w.ApplySettings(Settings{
		FontName:     strPtr("renamed"),
		CSSUseSuffix: boolPtr(true),
		Hinting:      boolPtr(false),
	})
	if err != nil {
		t.Fatal(err)
	}

	if w.FontName() != "renamed" || !w.CSSUseSuffix() || w.Hinting() {
		t.Errorf("settings not applied: %+v", w.View())
	}
	if w.Encoding() != domain.LegacyEncoding {
		t.Error("unset field changed")
	}
	if *changes != 1 {
		t.Errorf("changes = %d, want 1", *changes)
	}

	// No-op and invalid edits do not notify.
	_ = w.ApplySettings(Settings{})
	if err := w.ApplySettings(Settings{FontSize: floatPtr(0)}); err == nil {
		t.Error("zero font size accepted")
	}
	if *changes != 1 {
		t.Errorf("changes = %d after no-op edits, want 1", *changes)
	}
}

func TestEditGlyph(t *testing.T) {
	w := newTestWorkspace(t)
	changes := countChanges(w)

	err := w.EditGlyph("fontawesome", GlyphEdit{UID: "fa-music", Code: intPtr(0xf101), CSS: strPtr("note"), Selected: boolPtr(true)})
	if err != nil {
		t.Fatal(err)
	}

	fa, _ := w.Font("fontawesome")
	g, _ := fa.(*Font).Glyph("fa-music")
	if g.Code() != 0xf101 || g.Name() != "note" || !g.Selected() {
		t.Errorf("glyph = %d %s %v", g.Code(), g.Name(), g.Selected())
	}
	if *changes != 1 {
		t.Errorf("changes = %d, want 1", *changes)
	}

	tests := []struct {
		name    string
		font    string
		edit    GlyphEdit
		wantErr error
	}{
		{"unknown font", "nope", GlyphEdit{UID: "fa-music"}, domain.ErrWorkspaceFontNotFound},
		{"unknown glyph", "fontawesome", GlyphEdit{UID: "nope"}, domain.ErrWorkspaceGlyphNotFound},
		{"zero code", "fontawesome", GlyphEdit{UID: "fa-music", Code: intPtr(0)}, nil},
		{"empty css", "fontawesome", GlyphEdit{UID: "fa-music", CSS: strPtr("")}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.EditGlyph(tt.font, tt.edit)
			if err == nil {
				t.Fatal("EditGlyph() = nil error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if *changes != 1 {
		t.Errorf("failed edits notified: changes = %d", *changes)
	}
}

func TestSetCollapsed(t *testing.T) {
	w := newTestWorkspace(t)

	if err := w.SetCollapsed("entypo", false); err != nil {
		t.Fatal(err)
	}
	en, _ := w.Font("entypo")
	if en.Collapsed() {
		t.Error("entypo still collapsed")
	}
	if err := w.SetCollapsed("nope", true); !errors.Is(err, domain.ErrWorkspaceFontNotFound) {
		t.Errorf("error = %v, want ErrWorkspaceFontNotFound", err)
	}
}

func TestAddRemoveCustomGlyph(t *testing.T) {
	w := newTestWorkspace(t)
	changes := countChanges(w)

	uid, err := w.AddCustomGlyph("star", 0xe801, domain.SVG{Path: "M5 5", Width: 500})
	if err != nil {
		t.Fatal(err)
	}

	g, ok := w.CustomFont().Glyph(uid)
	if !ok {
		t.Fatal("added glyph not found")
	}
	if g.CharRef() != 0xe801 {
		t.Errorf("CharRef() = %#x, want 0xe801 after existing 0xe800", g.CharRef())
	}

	invalid := []struct {
		css  string
		code int
		svg  domain.SVG
		want error
	}{
		{"x", 0, domain.SVG{Path: "M", Width: 1}, domain.ErrGlyphMissingCode},
		{"", 1, domain.SVG{Path: "M", Width: 1}, domain.ErrGlyphMissingCSS},
		{"x", 1, domain.SVG{Width: 1}, domain.ErrGlyphInvalidSVGPath},
		{"x", 1, domain.SVG{Path: "M"}, domain.ErrGlyphInvalidSVGWidth},
	}
	for _, tt := range invalid {
		if _, err := w.AddCustomGlyph(tt.css, tt.code, tt.svg); !errors.Is(err, tt.want) {
			t.Errorf("AddCustomGlyph(%q, %d, %+v) = %v, want %v", tt.css, tt.code, tt.svg, err, tt.want)
		}
	}

	if err := w.RemoveCustomGlyph("c-logo"); err != nil {
		t.Fatal(err)
	}
	glyphs := w.CustomFont().Glyphs()
	if len(glyphs) != 1 || glyphs[0].UID() != uid {
		t.Errorf("remaining glyphs = %d", len(glyphs))
	}
	if err := w.RemoveCustomGlyph("c-logo"); !errors.Is(err, domain.ErrWorkspaceGlyphNotFound) {
		t.Errorf("second remove = %v, want ErrWorkspaceGlyphNotFound", err)
	}

	if *changes != 2 {
		t.Errorf("changes = %d, want 2", *changes)
	}
}

func TestApplyEdits(t *testing.T) {
	w := newTestWorkspace(t)

	e, err := ParseEdits([]byte(`
settings:
  encoding: ascii
fonts:
  fontawesome:
    glyphs:
      - {uid: fa-glass, selected: true}
      - {uid: missing, selected: true}
  entypo:
    collapsed: false
`))
	if err != nil {
		t.Fatal(err)
	}

	err = w.Apply(e)
	if !errors.Is(err, domain.ErrWorkspaceGlyphNotFound) {
		t.Errorf("Apply() error = %v, want the missing glyph reported", err)
	}

	// The other edits still landed.
	if w.Encoding() != "ascii" {
		t.Errorf("Encoding() = %q", w.Encoding())
	}
	fa, _ := w.Font("fontawesome")
	if g, _ := fa.(*Font).Glyph("fa-glass"); !g.Selected() {
		t.Error("fa-glass not selected")
	}
	en, _ := w.Font("entypo")
	if en.Collapsed() {
		t.Error("entypo still collapsed")
	}
}

func TestParseEdits_Unknown(t *testing.T) {
	if _, err := ParseEdits([]byte("bogus: 1")); err == nil {
		t.Error("ParseEdits() accepted an unknown field")
	}
}

func TestView(t *testing.T) {
	w := newTestWorkspace(t)
	if err := w.EditGlyph("fontawesome", GlyphEdit{UID: "fa-glass", CSS: strPtr("cup")}); err != nil {
		t.Fatal(err)
	}

	v := w.View()
	if len(v.Fonts) != 3 {
		t.Fatalf("len(Fonts) = %d", len(v.Fonts))
	}
	if !v.Fonts[0].Glyphs[0].Modified || v.Fonts[0].Glyphs[1].Modified {
		t.Error("modified flags wrong")
	}
	if v.Fonts[2].Glyphs[0].Modified {
		t.Error("custom glyphs never report modified")
	}
	if v.Fonts[2].Glyphs[0].CharRef != 0xe800 {
		t.Errorf("CharRef = %#x", v.Fonts[2].Glyphs[0].CharRef)
	}
}
