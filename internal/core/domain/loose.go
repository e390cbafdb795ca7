// Package domain defines the core domain models for fontsession.
package domain

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// LooseDocument is a stored document read without trusting its shape.
//
// Every field is either coerced permissively or marked Invalid; nothing in a
// LooseDocument can make reconciliation fail.
type LooseDocument struct {
	FontSize Opt[float64]
	Sessions []LooseSession
}

// LooseSession is a stored session read without trusting its shape.
type LooseSession struct {
	Name          Opt[string]
	FontName      Opt[string]
	CSSPrefixText Opt[string]
	CSSUseSuffix  Opt[bool]
	Encoding      Opt[string]
	// Hinting is Present only for a stored JSON boolean.
	Hinting Opt[bool]
	// Fonts are sorted by name.
	Fonts []LooseFont
}

// LooseFont is one entry of a stored session's font mapping.
type LooseFont struct {
	Name      string
	Malformed bool
	Collapsed bool
	Glyphs    []LooseGlyph
}

// LooseGlyph is one stored glyph snapshot.
type LooseGlyph struct {
	Malformed bool
	UID       Opt[string]
	Code      Opt[int]
	CSS       Opt[string]
	Selected  bool
	SVG       Opt[LooseSVG]
}

// LooseSVG is a stored svg payload with independently validated fields.
type LooseSVG struct {
	Path  Opt[string]
	Width Opt[float64]
}

// ParseDocument reads stored bytes into a LooseDocument.
//
// Absent, undecodable, non-object or empty input yields an empty document
// (no sessions). The returned error is informational only: the document is
// always safe to reconcile.
func ParseDocument(raw []byte) (LooseDocument, error) {
	if len(raw) == 0 {
		return LooseDocument{}, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return LooseDocument{}, ErrDocumentMalformed.WithCause(err)
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return LooseDocument{}, ErrDocumentMalformed.WithDetails("top level is not an object")
	}

	return parseDocumentObject(obj), nil
}

func parseDocumentObject(obj map[string]any) LooseDocument {
	var doc LooseDocument

	if v, ok := obj["font_size"]; ok {
		if n, isNum := v.(float64); isNum {
			doc.FontSize = Some(n)
		} else {
			doc.FontSize = Bad[float64]()
		}
	}

	list, _ := obj["sessions"].([]any)
	for _, item := range list {
		s, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Sessions = append(doc.Sessions, parseSession(s))
	}

	return doc
}

// CurrentSession returns the first session named CurrentSessionName.
func (d LooseDocument) CurrentSession() (LooseSession, bool) {
	for _, s := range d.Sessions {
		if name, ok := s.Name.Get(); ok && name == CurrentSessionName {
			return s, true
		}
	}
	return LooseSession{}, false
}

func parseSession(obj map[string]any) LooseSession {
	s := LooseSession{
		Name:          fieldOf(obj, "name", strictString),
		FontName:      fieldOf(obj, "fontname", looseString),
		CSSPrefixText: fieldOf(obj, "css_prefix_text", looseString),
		CSSUseSuffix:  fieldOf(obj, "css_use_suffix", truthy),
		Encoding:      fieldOf(obj, "encoding", looseString),
		Hinting:       fieldOf(obj, "hinting", strictBool),
	}

	fonts, _ := obj["fonts"].(map[string]any)
	names := make([]string, 0, len(fonts))
	for name := range fonts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s.Fonts = append(s.Fonts, parseFont(name, fonts[name]))
	}

	return s
}

func parseFont(name string, v any) LooseFont {
	obj, ok := v.(map[string]any)
	if !ok {
		return LooseFont{Name: name, Malformed: true}
	}

	f := LooseFont{
		Name:      name,
		Collapsed: fieldOf(obj, "collapsed", truthy).Or(false),
	}

	glyphs, _ := obj["glyphs"].([]any)
	for _, g := range glyphs {
		f.Glyphs = append(f.Glyphs, parseGlyph(g))
	}

	return f
}

func parseGlyph(v any) LooseGlyph {
	obj, ok := v.(map[string]any)
	if !ok {
		return LooseGlyph{Malformed: true}
	}

	g := LooseGlyph{
		UID:      fieldOf(obj, "uid", looseString),
		Code:     fieldOf(obj, "code", looseInt),
		CSS:      fieldOf(obj, "css", looseString),
		Selected: fieldOf(obj, "selected", truthy).Or(false),
	}

	if raw, ok := obj["svg"]; ok {
		if svgObj, isObj := raw.(map[string]any); isObj {
			g.SVG = Some(LooseSVG{
				Path:  fieldOf(svgObj, "path", strictString),
				Width: fieldOf(svgObj, "width", number),
			})
		} else {
			g.SVG = Bad[LooseSVG]()
		}
	}

	return g
}

// fieldOf reads key from obj and coerces it. A missing key is Absent; a
// present key the coercion rejects is Invalid.
func fieldOf[T any](obj map[string]any, key string, coerce func(any) (T, bool)) Opt[T] {
	v, ok := obj[key]
	if !ok {
		return None[T]()
	}
	out, ok := coerce(v)
	if !ok {
		return Bad[T]()
	}
	return Some(out)
}

// truthy applies JavaScript truthiness; every value coerces.
func truthy(v any) (bool, bool) {
	switch t := v.(type) {
	case nil:
		return false, true
	case bool:
		return t, true
	case float64:
		return t != 0 && !math.IsNaN(t), true
	case string:
		return t != "", true
	default:
		return true, true
	}
}

func strictBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func strictString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// looseString accepts strings, numbers and booleans.
func looseString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func number(v any) (float64, bool) {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// looseInt accepts integral numbers and numeric strings ("59392", "0xE800").
func looseInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 0, 64)
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
