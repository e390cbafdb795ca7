package workspace

import (
	"github.com/yndnr/fontsession/internal/core/domain"
)

// Font is one font of a workspace.
type Font struct {
	ws *Workspace

	name      string
	custom    bool
	collapsed bool
	glyphs    []*Glyph
}

var _ domain.Font = (*Font)(nil)

func (f *Font) Name() string {
	return f.name
}

func (f *Font) IsCustom() bool {
	return f.custom
}

func (f *Font) Collapsed() bool {
	f.ws.mu.RLock()
	defer f.ws.mu.RUnlock()
	return f.collapsed
}

func (f *Font) SetCollapsed(collapsed bool) {
	f.ws.mu.Lock()
	defer f.ws.mu.Unlock()
	f.collapsed = collapsed
}

// Glyphs returns the glyphs in order.
func (f *Font) Glyphs() []domain.Glyph {
	f.ws.mu.RLock()
	defer f.ws.mu.RUnlock()

	out := make([]domain.Glyph, len(f.glyphs))
	for i, g := range f.glyphs {
		out[i] = g
	}
	return out
}

// Glyph looks a glyph up by uid.
func (f *Font) Glyph(uid string) (*Glyph, bool) {
	f.ws.mu.RLock()
	defer f.ws.mu.RUnlock()

	g := f.find(uid)
	return g, g != nil
}

// find requires ws.mu.
func (f *Font) find(uid string) *Glyph {
	for _, g := range f.glyphs {
		if g.uid == uid {
			return g
		}
	}
	return nil
}

// ReplaceGlyphs rebuilds the custom font from specs. Regular fonts keep
// their inventory and ignore the call.
func (f *Font) ReplaceGlyphs(specs []domain.GlyphSpec) {
	if !f.custom {
		return
	}
	glyphs := f.buildCustom(specs)

	f.ws.mu.Lock()
	defer f.ws.mu.Unlock()
	f.glyphs = glyphs
}

// buildCustom turns specs into glyphs. Specs without a CharRef are numbered
// from CustomCharRefBase in order; missing uids are generated.
func (f *Font) buildCustom(specs []domain.GlyphSpec) []*Glyph {
	glyphs := make([]*Glyph, 0, len(specs))
	for i, s := range specs {
		uid := s.UID
		if uid == "" {
			uid = NewUID()
		}
		ref := s.CharRef
		if ref == 0 {
			ref = domain.CustomCharRefBase + i
		}
		glyphs = append(glyphs, &Glyph{
			ws:       f.ws,
			uid:      uid,
			code:     s.Code,
			origCode: s.Code,
			name:     s.CSS,
			origName: s.CSS,
			selected: s.Selected,
			charRef:  ref,
			svg:      s.SVG,
			hasSVG:   true,
		})
	}
	return glyphs
}

// Glyph is one glyph of a font.
type Glyph struct {
	ws *Workspace

	uid      string
	code     int
	origCode int
	name     string
	origName string
	selected bool

	// Custom glyphs only.
	charRef int
	svg     domain.SVG
	hasSVG  bool
}

var _ domain.Glyph = (*Glyph)(nil)

func (g *Glyph) UID() string {
	return g.uid
}

func (g *Glyph) Code() int {
	g.ws.mu.RLock()
	defer g.ws.mu.RUnlock()
	return g.code
}

func (g *Glyph) SetCode(code int) {
	g.ws.mu.Lock()
	defer g.ws.mu.Unlock()
	g.code = code
}

func (g *Glyph) Name() string {
	g.ws.mu.RLock()
	defer g.ws.mu.RUnlock()
	return g.name
}

func (g *Glyph) SetName(name string) {
	g.ws.mu.Lock()
	defer g.ws.mu.Unlock()
	g.name = name
}

func (g *Glyph) Selected() bool {
	g.ws.mu.RLock()
	defer g.ws.mu.RUnlock()
	return g.selected
}

func (g *Glyph) SetSelected(selected bool) {
	g.ws.mu.Lock()
	defer g.ws.mu.Unlock()
	g.selected = selected
}

func (g *Glyph) IsModified() bool {
	g.ws.mu.RLock()
	defer g.ws.mu.RUnlock()
	return g.modified()
}

// modified requires ws.mu.
func (g *Glyph) modified() bool {
	return g.code != g.origCode || g.name != g.origName || g.selected
}

func (g *Glyph) OriginalCode() int {
	return g.origCode
}

func (g *Glyph) OriginalName() string {
	return g.origName
}

// CharRef is the private-use reference code of a custom glyph, 0 otherwise.
func (g *Glyph) CharRef() int {
	return g.charRef
}

func (g *Glyph) SVG() (domain.SVG, bool) {
	return g.svg, g.hasSVG
}
