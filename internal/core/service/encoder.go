// Package service provides the session snapshot/restore engine.
package service

import (
	"github.com/yndnr/fontsession/internal/core/domain"
)

// Encode builds the session document from the model's current state.
//
// The custom font is saved in full, svg payload included, since it has no
// baseline to diff against. Regular fonts only save glyphs that are selected or
// whose code or name differ from the font file.
func Encode(m domain.Model) domain.Document {
	session := domain.Session{
		Name:          domain.CurrentSessionName,
		FontName:      m.FontName(),
		CSSPrefixText: m.CSSPrefixText(),
		CSSUseSuffix:  m.CSSUseSuffix(),
		Hinting:       m.Hinting(),
		Encoding:      m.Encoding(),
		Fonts:         make(map[string]domain.FontSnapshot),
	}

	for _, font := range m.Fonts() {
		session.Fonts[font.Name()] = encodeFont(font)
	}

	return domain.Document{
		FontSize: m.FontSize(),
		Sessions: []domain.Session{session},
	}
}

func encodeFont(font domain.Font) domain.FontSnapshot {
	snap := domain.FontSnapshot{
		Collapsed: font.Collapsed(),
		Glyphs:    []domain.GlyphSnapshot{},
	}

	if font.IsCustom() {
		for _, g := range font.Glyphs() {
			svg, _ := g.SVG()
			snap.Glyphs = append(snap.Glyphs, domain.GlyphSnapshot{
				UID:      g.UID(),
				Code:     g.Code(),
				CSS:      g.Name(),
				Selected: g.Selected(),
				SVG:      &domain.SVG{Path: svg.Path, Width: svg.Width},
			})
		}
		return snap
	}

	for _, g := range font.Glyphs() {
		if !g.IsModified() {
			continue
		}
		snap.Glyphs = append(snap.Glyphs, domain.GlyphSnapshot{
			UID:      g.UID(),
			Code:     g.Code(),
			CSS:      g.Name(),
			Selected: g.Selected(),
		})
	}

	return snap
}
