package workspace

import (
	"fmt"
	"sync"

	"github.com/yndnr/fontsession/internal/core/domain"
)

// Workspace is the live model: settings plus an ordered font list.
type Workspace struct {
	mu sync.RWMutex

	fontName      string
	fontSize      float64
	cssPrefixText string
	cssUseSuffix  bool
	hinting       bool
	encoding      string

	fonts      []*Font
	byName     map[string]*Font
	customName string

	listenMu  sync.Mutex
	listeners []func()
}

var _ domain.Model = (*Workspace)(nil)

// New builds a workspace from a manifest. customFont names the custom font;
// when the manifest does not declare it an empty one is put first.
func New(m *Manifest, customFont string) (*Workspace, error) {
	if customFont == "" {
		customFont = domain.DefaultCustomFontName
	}

	w := &Workspace{
		fontName:      m.Settings.FontName,
		fontSize:      m.Settings.FontSize,
		cssPrefixText: domain.LegacyCSSPrefixText,
		cssUseSuffix:  m.Settings.CSSUseSuffix,
		hinting:       domain.LegacyHinting,
		encoding:      domain.LegacyEncoding,
		byName:        make(map[string]*Font, len(m.Fonts)+1),
		customName:    customFont,
	}
	if w.fontSize <= 0 {
		w.fontSize = DefaultFontSize
	}
	if m.Settings.CSSPrefixText != nil {
		w.cssPrefixText = *m.Settings.CSSPrefixText
	}
	if m.Settings.Hinting != nil {
		w.hinting = *m.Settings.Hinting
	}
	if m.Settings.Encoding != nil {
		w.encoding = *m.Settings.Encoding
	}

	for _, mf := range m.Fonts {
		if mf.Custom && mf.Name != customFont {
			return nil, manifestErr("font %q is marked custom but the custom font is %q", mf.Name, customFont)
		}
		f := w.newFont(mf.Name, mf.Name == customFont)
		f.collapsed = mf.Collapsed

		if f.custom {
			specs := make([]domain.GlyphSpec, 0, len(mf.Glyphs))
			for _, g := range mf.Glyphs {
				if g.SVG == nil || !g.SVG.Valid() {
					return nil, manifestErr("%s: glyph %q has no svg outline", mf.Name, g.CSS)
				}
				specs = append(specs, domain.GlyphSpec{
					UID:      g.UID,
					Code:     g.Code,
					CSS:      g.CSS,
					Selected: g.Selected,
					SVG:      *g.SVG,
				})
			}
			f.glyphs = f.buildCustom(specs)
		} else {
			for _, g := range mf.Glyphs {
				uid := g.UID
				if uid == "" {
					uid = DeriveUID(mf.Name, g.CSS, g.Code)
				}
				if f.find(uid) != nil {
					return nil, manifestErr("%s: derived uid of %q collides with another glyph", mf.Name, g.CSS)
				}
				f.glyphs = append(f.glyphs, &Glyph{
					ws:       w,
					uid:      uid,
					code:     g.Code,
					origCode: g.Code,
					name:     g.CSS,
					origName: g.CSS,
					selected: g.Selected,
				})
			}
		}

		w.fonts = append(w.fonts, f)
		w.byName[f.name] = f
	}

	if _, ok := w.byName[customFont]; !ok {
		f := w.newFont(customFont, true)
		w.fonts = append([]*Font{f}, w.fonts...)
		w.byName[customFont] = f
	}

	return w, nil
}

// Load reads a manifest file and builds the workspace. An empty path gives
// a workspace holding only the empty custom font.
func Load(path, customFont string) (*Workspace, error) {
	m := &Manifest{}
	if path != "" {
		var err error
		if m, err = LoadManifest(path); err != nil {
			return nil, err
		}
	}
	return New(m, customFont)
}

func (w *Workspace) newFont(name string, custom bool) *Font {
	return &Font{ws: w, name: name, custom: custom}
}

// OnChange registers fn to run after every successful edit.
func (w *Workspace) OnChange(fn func()) {
	w.listenMu.Lock()
	defer w.listenMu.Unlock()
	w.listeners = append(w.listeners, fn)
}

func (w *Workspace) notify() {
	w.listenMu.Lock()
	listeners := make([]func(), len(w.listeners))
	copy(listeners, w.listeners)
	w.listenMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// CustomFont returns the custom font.
func (w *Workspace) CustomFont() *Font {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.byName[w.customName]
}

func (w *Workspace) FontName() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fontName
}

func (w *Workspace) SetFontName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fontName = name
}

func (w *Workspace) FontSize() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.fontSize
}

func (w *Workspace) SetFontSize(size float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.fontSize = size
}

func (w *Workspace) CSSPrefixText() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cssPrefixText
}

func (w *Workspace) SetCSSPrefixText(prefix string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cssPrefixText = prefix
}

func (w *Workspace) CSSUseSuffix() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cssUseSuffix
}

func (w *Workspace) SetCSSUseSuffix(use bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cssUseSuffix = use
}

func (w *Workspace) Hinting() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.hinting
}

func (w *Workspace) SetHinting(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hinting = on
}

func (w *Workspace) Encoding() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.encoding
}

func (w *Workspace) SetEncoding(encoding string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.encoding = encoding
}

// Fonts returns the fonts in manifest order, custom font included.
func (w *Workspace) Fonts() []domain.Font {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]domain.Font, len(w.fonts))
	for i, f := range w.fonts {
		out[i] = f
	}
	return out
}

// Font looks a font up by name.
func (w *Workspace) Font(name string) (domain.Font, bool) {
	f, err := w.font(name)
	if err != nil {
		return nil, false
	}
	return f, true
}

func (w *Workspace) font(name string) (*Font, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	f, ok := w.byName[name]
	if !ok {
		return nil, domain.ErrWorkspaceFontNotFound.WithDetails(fmt.Sprintf("font %q", name))
	}
	return f, nil
}
