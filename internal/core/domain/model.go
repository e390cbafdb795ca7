// Package domain defines the core domain models for fontsession.
package domain

// Model is the capability contract the session engine reads and writes.
//
// The application owns the implementation; the engine only goes through
// these accessors and never retains the model between invocations.
type Model interface {
	FontName() string
	SetFontName(name string)

	FontSize() float64
	SetFontSize(size float64)

	CSSPrefixText() string
	SetCSSPrefixText(prefix string)

	CSSUseSuffix() bool
	SetCSSUseSuffix(use bool)

	Hinting() bool
	SetHinting(on bool)

	Encoding() string
	SetEncoding(encoding string)

	// Fonts returns the font list in its stable display order.
	Fonts() []Font

	// Font looks a font up by name.
	Font(name string) (Font, bool)
}

// Font is one entry of the model's font list.
type Font interface {
	Name() string

	Collapsed() bool
	SetCollapsed(collapsed bool)

	// IsCustom reports whether this is the distinguished custom font whose
	// glyphs are entirely user-authored.
	IsCustom() bool

	// Glyphs returns the glyph collection in order.
	Glyphs() []Glyph

	// ReplaceGlyphs discards the current collection and builds a new one from
	// specs, preserving their order. Only meaningful for the custom font.
	ReplaceGlyphs(specs []GlyphSpec)
}

// Glyph is one glyph of a font.
type Glyph interface {
	UID() string

	Code() int
	SetCode(code int)

	Name() string
	SetName(name string)

	Selected() bool
	SetSelected(selected bool)

	// IsModified reports whether the glyph belongs in a saved session:
	// code or name differ from the font file's original values, or the glyph
	// is selected. Regular fonts only.
	IsModified() bool

	// OriginalCode and OriginalName are the font file's baseline values.
	// Regular fonts only.
	OriginalCode() int
	OriginalName() string

	// SVG returns the embedded outline of a custom glyph.
	SVG() (SVG, bool)
}

// GlyphSpec describes a custom glyph to construct during reconciliation.
type GlyphSpec struct {
	UID      string
	Code     int
	CSS      string
	Selected bool
	CharRef  int
	SVG      SVG
}
