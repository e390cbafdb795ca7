package service

import (
	"sync"

	"github.com/yndnr/fontsession/internal/core/domain"
)

// fakeModel is a minimal domain.Model that counts writes.
type fakeModel struct {
	mu sync.Mutex

	fontName      string
	fontSize      float64
	cssPrefixText string
	cssUseSuffix  bool
	hinting       bool
	encoding      string
	fonts         []*fakeFont

	writes int
}

type fakeFont struct {
	m         *fakeModel
	name      string
	custom    bool
	collapsed bool
	glyphs    []*fakeGlyph
}

type fakeGlyph struct {
	m        *fakeModel
	uid      string
	code     int
	origCode int
	name     string
	origName string
	selected bool
	svg      *domain.SVG
}

// newFakeModel returns a model with one regular font "fa" holding glyphs
// a (0xf000 "glass") and b (0xf001 "music"), and an empty custom font.
func newFakeModel() *fakeModel {
	m := &fakeModel{
		fontSize:      14,
		cssPrefixText: "icon-",
		hinting:       true,
		encoding:      "pua",
	}
	fa := &fakeFont{m: m, name: "fa"}
	fa.glyphs = []*fakeGlyph{
		{m: m, uid: "a", code: 0xf000, origCode: 0xf000, name: "glass", origName: "glass"},
		{m: m, uid: "b", code: 0xf001, origCode: 0xf001, name: "music", origName: "music"},
	}
	m.fonts = []*fakeFont{
		{m: m, name: domain.DefaultCustomFontName, custom: true},
		fa,
	}
	return m
}

func (m *fakeModel) write(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	fn()
}

func (m *fakeModel) read(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

func (m *fakeModel) FontName() (v string)      { m.read(func() { v = m.fontName }); return }
func (m *fakeModel) SetFontName(v string)      { m.write(func() { m.fontName = v }) }
func (m *fakeModel) FontSize() (v float64)     { m.read(func() { v = m.fontSize }); return }
func (m *fakeModel) SetFontSize(v float64)     { m.write(func() { m.fontSize = v }) }
func (m *fakeModel) CSSPrefixText() (v string) { m.read(func() { v = m.cssPrefixText }); return }
func (m *fakeModel) SetCSSPrefixText(v string) { m.write(func() { m.cssPrefixText = v }) }
func (m *fakeModel) CSSUseSuffix() (v bool)    { m.read(func() { v = m.cssUseSuffix }); return }
func (m *fakeModel) SetCSSUseSuffix(v bool)    { m.write(func() { m.cssUseSuffix = v }) }
func (m *fakeModel) Hinting() (v bool)         { m.read(func() { v = m.hinting }); return }
func (m *fakeModel) SetHinting(v bool)         { m.write(func() { m.hinting = v }) }
func (m *fakeModel) Encoding() (v string)      { m.read(func() { v = m.encoding }); return }
func (m *fakeModel) SetEncoding(v string)      { m.write(func() { m.encoding = v }) }

func (m *fakeModel) Fonts() []domain.Font {
	out := make([]domain.Font, len(m.fonts))
	for i, f := range m.fonts {
		out[i] = f
	}
	return out
}

func (m *fakeModel) Font(name string) (domain.Font, bool) {
	for _, f := range m.fonts {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

func (m *fakeModel) font(name string) *fakeFont {
	f, _ := m.Font(name)
	return f.(*fakeFont)
}

func (f *fakeFont) Name() string        { return f.name }
func (f *fakeFont) IsCustom() bool      { return f.custom }
func (f *fakeFont) Collapsed() (v bool) { f.m.read(func() { v = f.collapsed }); return }
func (f *fakeFont) SetCollapsed(v bool) { f.m.write(func() { f.collapsed = v }) }

func (f *fakeFont) glyph(uid string) *fakeGlyph {
	for _, g := range f.glyphs {
		if g.uid == uid {
			return g
		}
	}
	return nil
}

func (f *fakeFont) Glyphs() []domain.Glyph {
	var out []domain.Glyph
	f.m.read(func() {
		out = make([]domain.Glyph, len(f.glyphs))
		for i, g := range f.glyphs {
			out[i] = g
		}
	})
	return out
}

func (f *fakeFont) ReplaceGlyphs(specs []domain.GlyphSpec) {
	f.m.write(func() {
		f.glyphs = nil
		for _, s := range specs {
			svg := s.SVG
			f.glyphs = append(f.glyphs, &fakeGlyph{
				m: f.m, uid: s.UID, code: s.Code, origCode: s.Code,
				name: s.CSS, origName: s.CSS, selected: s.Selected, svg: &svg,
			})
		}
	})
}

func (g *fakeGlyph) UID() string          { return g.uid }
func (g *fakeGlyph) Code() (v int)        { g.m.read(func() { v = g.code }); return }
func (g *fakeGlyph) SetCode(v int)        { g.m.write(func() { g.code = v }) }
func (g *fakeGlyph) Name() (v string)     { g.m.read(func() { v = g.name }); return }
func (g *fakeGlyph) SetName(v string)     { g.m.write(func() { g.name = v }) }
func (g *fakeGlyph) Selected() (v bool)   { g.m.read(func() { v = g.selected }); return }
func (g *fakeGlyph) SetSelected(v bool)   { g.m.write(func() { g.selected = v }) }
func (g *fakeGlyph) OriginalCode() int    { return g.origCode }
func (g *fakeGlyph) OriginalName() string { return g.origName }

func (g *fakeGlyph) IsModified() (v bool) {
	g.m.read(func() { v = g.code != g.origCode || g.name != g.origName || g.selected })
	return
}

func (g *fakeGlyph) SVG() (domain.SVG, bool) {
	if g.svg == nil {
		return domain.SVG{}, false
	}
	return *g.svg, true
}
