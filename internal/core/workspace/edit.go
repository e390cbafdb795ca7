package workspace

import (
	"errors"
	"fmt"

	"github.com/yndnr/fontsession/internal/core/domain"
)

// Settings changes font-generation settings. Nil fields are left alone.
type Settings struct {
	FontName      *string  `yaml:"font_name"`
	FontSize      *float64 `yaml:"font_size"`
	CSSPrefixText *string  `yaml:"css_prefix_text"`
	CSSUseSuffix  *bool    `yaml:"css_use_suffix"`
	Hinting       *bool    `yaml:"hinting"`
	Encoding      *string  `yaml:"encoding"`
}

func (s Settings) empty() bool {
	return s.FontName == nil && s.FontSize == nil && s.CSSPrefixText == nil &&
		s.CSSUseSuffix == nil && s.Hinting == nil && s.Encoding == nil
}

// GlyphEdit changes one glyph. Nil fields are left alone.
type GlyphEdit struct {
	UID      string  `yaml:"uid"`
	Code     *int    `yaml:"code"`
	CSS      *string `yaml:"css"`
	Selected *bool   `yaml:"selected"`
}

// FontEdit changes one font and its glyphs.
type FontEdit struct {
	Collapsed *bool       `yaml:"collapsed"`
	Glyphs    []GlyphEdit `yaml:"glyphs"`
}

// Edits is a batch of changes, as read from an edits file by the watch
// command.
type Edits struct {
	Settings Settings            `yaml:"settings"`
	Fonts    map[string]FontEdit `yaml:"fonts"`
}

// ApplySettings applies s and notifies listeners.
func (w *Workspace) ApplySettings(s Settings) error {
	if s.FontSize != nil && *s.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", *s.FontSize)
	}
	if s.empty() {
		return nil
	}

	w.mu.Lock()
	if s.FontName != nil {
		w.fontName = *s.FontName
	}
	if s.FontSize != nil {
		w.fontSize = *s.FontSize
	}
	if s.CSSPrefixText != nil {
		w.cssPrefixText = *s.CSSPrefixText
	}
	if s.CSSUseSuffix != nil {
		w.cssUseSuffix = *s.CSSUseSuffix
	}
	if s.Hinting != nil {
		w.hinting = *s.Hinting
	}
	if s.Encoding != nil {
		w.encoding = *s.Encoding
	}
	w.mu.Unlock()

	w.notify()
	return nil
}

// SetCollapsed folds or unfolds a font in the glyph list.
func (w *Workspace) SetCollapsed(font string, collapsed bool) error {
	f, err := w.font(font)
	if err != nil {
		return err
	}
	f.SetCollapsed(collapsed)
	w.notify()
	return nil
}

// EditGlyph changes the code, css name or selection of one glyph.
func (w *Workspace) EditGlyph(font string, e GlyphEdit) error {
	f, err := w.font(font)
	if err != nil {
		return err
	}
	if e.Code != nil && *e.Code <= 0 {
		return fmt.Errorf("glyph %s: code must be positive", e.UID)
	}
	if e.CSS != nil && *e.CSS == "" {
		return fmt.Errorf("glyph %s: css must not be empty", e.UID)
	}

	w.mu.Lock()
	g := f.find(e.UID)
	if g == nil {
		w.mu.Unlock()
		return domain.ErrWorkspaceGlyphNotFound.WithDetails(fmt.Sprintf("%s/%s", font, e.UID))
	}
	if e.Code != nil {
		g.code = *e.Code
	}
	if e.CSS != nil {
		g.name = *e.CSS
	}
	if e.Selected != nil {
		g.selected = *e.Selected
	}
	w.mu.Unlock()

	w.notify()
	return nil
}

// AddCustomGlyph appends a glyph to the custom font and returns its uid.
func (w *Workspace) AddCustomGlyph(css string, code int, svg domain.SVG) (string, error) {
	if code <= 0 {
		return "", domain.ErrGlyphMissingCode
	}
	if css == "" {
		return "", domain.ErrGlyphMissingCSS
	}
	if svg.Path == "" {
		return "", domain.ErrGlyphInvalidSVGPath
	}
	if svg.Width <= 0 {
		return "", domain.ErrGlyphInvalidSVGWidth
	}

	f := w.CustomFont()
	uid := NewUID()

	w.mu.Lock()
	f.glyphs = append(f.glyphs, &Glyph{
		ws:       w,
		uid:      uid,
		code:     code,
		origCode: code,
		name:     css,
		origName: css,
		charRef:  nextCharRef(f.glyphs),
		svg:      svg,
		hasSVG:   true,
	})
	w.mu.Unlock()

	w.notify()
	return uid, nil
}

// RemoveCustomGlyph deletes a glyph from the custom font.
func (w *Workspace) RemoveCustomGlyph(uid string) error {
	f := w.CustomFont()

	w.mu.Lock()
	idx := -1
	for i, g := range f.glyphs {
		if g.uid == uid {
			idx = i
			break
		}
	}
	if idx < 0 {
		w.mu.Unlock()
		return domain.ErrWorkspaceGlyphNotFound.WithDetails(fmt.Sprintf("%s/%s", f.name, uid))
	}
	f.glyphs = append(f.glyphs[:idx:idx], f.glyphs[idx+1:]...)
	w.mu.Unlock()

	w.notify()
	return nil
}

// Apply applies a batch of edits. Every edit is attempted; the returned
// error joins the failures.
func (w *Workspace) Apply(e Edits) error {
	var errs []error

	if err := w.ApplySettings(e.Settings); err != nil {
		errs = append(errs, err)
	}

	for name, fe := range e.Fonts {
		if fe.Collapsed != nil {
			if err := w.SetCollapsed(name, *fe.Collapsed); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		for _, ge := range fe.Glyphs {
			if err := w.EditGlyph(name, ge); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

// ParseEdits decodes an edits file.
func ParseEdits(data []byte) (Edits, error) {
	var e Edits
	if err := decodeStrict(data, &e); err != nil {
		return Edits{}, fmt.Errorf("parse edits: %w", err)
	}
	return e, nil
}

func nextCharRef(glyphs []*Glyph) int {
	ref := domain.CustomCharRefBase
	for _, g := range glyphs {
		if g.charRef >= ref {
			ref = g.charRef + 1
		}
	}
	return ref
}
