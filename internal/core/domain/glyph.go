// Package domain defines the core domain models for fontsession.
package domain

// Result is either an accepted entity or the reason it was dropped.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the entity was accepted.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// CustomGlyphSpec validates a stored custom-font glyph.
//
// A glyph is accepted only with a non-zero code, a non-empty css name and an
// svg payload carrying both a non-empty path and a positive width. Broken
// entries are never partially constructed. CharRef is left for the caller.
func (g LooseGlyph) CustomGlyphSpec() Result[GlyphSpec] {
	if g.Malformed {
		return Result[GlyphSpec]{Err: ErrGlyphMalformed}
	}

	code, ok := g.Code.Get()
	if !ok || code == 0 {
		return Result[GlyphSpec]{Err: ErrGlyphMissingCode}
	}

	css, ok := g.CSS.Get()
	if !ok || css == "" {
		return Result[GlyphSpec]{Err: ErrGlyphMissingCSS}
	}

	svg, ok := g.SVG.Get()
	if !ok {
		return Result[GlyphSpec]{Err: ErrGlyphMissingSVG}
	}

	path, ok := svg.Path.Get()
	if !ok || path == "" {
		return Result[GlyphSpec]{Err: ErrGlyphInvalidSVGPath}
	}

	width, ok := svg.Width.Get()
	if !ok || width <= 0 {
		return Result[GlyphSpec]{Err: ErrGlyphInvalidSVGWidth}
	}

	return Result[GlyphSpec]{Value: GlyphSpec{
		UID:      g.UID.Or(""),
		Code:     code,
		CSS:      css,
		Selected: g.Selected,
		SVG:      SVG{Path: path, Width: width},
	}}
}

// CustomGlyphSpecs validates every stored glyph in order and assigns
// sequential reference codes from CustomCharRefBase to accepted entries.
func CustomGlyphSpecs(glyphs []LooseGlyph) []Result[GlyphSpec] {
	out := make([]Result[GlyphSpec], 0, len(glyphs))
	ref := CustomCharRefBase

	for _, g := range glyphs {
		r := g.CustomGlyphSpec()
		if r.OK() {
			r.Value.CharRef = ref
			ref++
		}
		out = append(out, r)
	}

	return out
}
