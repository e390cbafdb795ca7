// Package domain defines the core domain models for fontsession.
package domain

// Document format constants.
const (
	// DefaultStorageKey is the store key holding the session document.
	// The version suffix changes when the document shape changes incompatibly;
	// documents under older keys are abandoned, not migrated.
	DefaultStorageKey = "fontello:sessions:v4"

	// CurrentSessionName is the only session name the reconciler reads.
	CurrentSessionName = "$current$"

	// DefaultCustomFontName is the name of the distinguished custom font.
	DefaultCustomFontName = "custom_icons"

	// CustomCharRefBase is the first reference code handed to rebuilt custom glyphs.
	CustomCharRefBase = 0xE800
)

// Legacy defaults applied when a stored session predates a field.
const (
	LegacyCSSPrefixText = "icon-"
	LegacyCSSUseSuffix  = false
	LegacyEncoding      = "pua"
	LegacyHinting       = true
)

// Document is the persisted unit written by the encoder.
//
// It is rebuilt from the live model on every save and replaces the stored
// value wholesale.
type Document struct {
	FontSize float64   `json:"font_size" yaml:"font_size"`
	Sessions []Session `json:"sessions" yaml:"sessions"`
}

// Session is one named editing state. Only CurrentSessionName is ever produced.
type Session struct {
	Name          string                  `json:"name" yaml:"name"`
	FontName      string                  `json:"fontname" yaml:"fontname"`
	CSSPrefixText string                  `json:"css_prefix_text" yaml:"css_prefix_text"`
	CSSUseSuffix  bool                    `json:"css_use_suffix" yaml:"css_use_suffix"`
	Hinting       bool                    `json:"hinting" yaml:"hinting"`
	Encoding      string                  `json:"encoding" yaml:"encoding"`
	Fonts         map[string]FontSnapshot `json:"fonts" yaml:"fonts"`
}

// FontSnapshot is the saved state of one font.
type FontSnapshot struct {
	Collapsed bool            `json:"collapsed" yaml:"collapsed"`
	Glyphs    []GlyphSnapshot `json:"glyphs" yaml:"glyphs"`
}

// GlyphSnapshot is the saved state of one glyph.
//
// SVG is only set for custom-font glyphs; regular fonts omit it.
type GlyphSnapshot struct {
	UID      string `json:"uid" yaml:"uid"`
	Code     int    `json:"code" yaml:"code"`
	CSS      string `json:"css" yaml:"css"`
	Selected bool   `json:"selected" yaml:"selected"`
	SVG      *SVG   `json:"svg,omitempty" yaml:"svg,omitempty"`
}

// SVG is the embedded vector outline of a custom glyph.
type SVG struct {
	Path  string  `json:"path" yaml:"path"`
	Width float64 `json:"width" yaml:"width"`
}

// Valid reports whether the payload is usable to construct a custom glyph.
func (s SVG) Valid() bool {
	return s.Path != "" && s.Width > 0
}

// CurrentSession returns the first session named CurrentSessionName.
func (d *Document) CurrentSession() (*Session, bool) {
	for i := range d.Sessions {
		if d.Sessions[i].Name == CurrentSessionName {
			return &d.Sessions[i], true
		}
	}
	return nil, false
}
