package workspace

// View is a consistent copy of the workspace for display.
type View struct {
	FontName      string     `json:"font_name" yaml:"font_name"`
	FontSize      float64    `json:"font_size" yaml:"font_size"`
	CSSPrefixText string     `json:"css_prefix_text" yaml:"css_prefix_text"`
	CSSUseSuffix  bool       `json:"css_use_suffix" yaml:"css_use_suffix"`
	Hinting       bool       `json:"hinting" yaml:"hinting"`
	Encoding      string     `json:"encoding" yaml:"encoding"`
	Fonts         []FontView `json:"fonts" yaml:"fonts"`
}

// FontView is one font of a View.
type FontView struct {
	Name      string      `json:"name" yaml:"name"`
	Custom    bool        `json:"custom" yaml:"custom"`
	Collapsed bool        `json:"collapsed" yaml:"collapsed"`
	Glyphs    []GlyphView `json:"glyphs" yaml:"glyphs"`
}

// GlyphView is one glyph of a FontView.
type GlyphView struct {
	UID      string `json:"uid" yaml:"uid"`
	Code     int    `json:"code" yaml:"code"`
	CSS      string `json:"css" yaml:"css"`
	Selected bool   `json:"selected" yaml:"selected"`
	Modified bool   `json:"modified" yaml:"modified"`
	CharRef  int    `json:"char_ref,omitempty" yaml:"char_ref,omitempty"`
}

// View copies the workspace under a single read lock.
func (w *Workspace) View() View {
	w.mu.RLock()
	defer w.mu.RUnlock()

	v := View{
		FontName:      w.fontName,
		FontSize:      w.fontSize,
		CSSPrefixText: w.cssPrefixText,
		CSSUseSuffix:  w.cssUseSuffix,
		Hinting:       w.hinting,
		Encoding:      w.encoding,
		Fonts:         make([]FontView, 0, len(w.fonts)),
	}

	for _, f := range w.fonts {
		fv := FontView{
			Name:      f.name,
			Custom:    f.custom,
			Collapsed: f.collapsed,
			Glyphs:    make([]GlyphView, 0, len(f.glyphs)),
		}
		for _, g := range f.glyphs {
			fv.Glyphs = append(fv.Glyphs, GlyphView{
				UID:      g.uid,
				Code:     g.code,
				CSS:      g.name,
				Selected: g.selected,
				Modified: !f.custom && g.modified(),
				CharRef:  g.charRef,
			})
		}
		v.Fonts = append(v.Fonts, fv)
	}

	return v
}
