// Package service provides the session snapshot/restore engine.
package service

import (
	"github.com/yndnr/fontsession/internal/core/domain"
)

// Drop records one stored entity that reconciliation skipped.
type Drop struct {
	Font  string
	UID   string
	Index int // position in the stored glyph list, -1 for font-level drops
	Err   error
}

// Report summarizes one reconciliation. Production callers only log it.
type Report struct {
	// DocumentErr is set when the stored bytes were not a usable document.
	DocumentErr error

	FontSizeApplied bool
	SessionFound    bool

	FontsApplied   int
	GlyphsRestored int
	Dropped        []Drop
}

// Decode parses stored bytes and reconciles them onto the model.
//
// It never fails: undecodable input is reconciled as an empty document,
// which leaves the model untouched.
func Decode(raw []byte, m domain.Model) Report {
	doc, err := domain.ParseDocument(raw)
	report := Reconcile(doc, m)
	report.DocumentErr = err
	return report
}

// Reconcile applies a stored document onto the live model.
//
// Without a "$current$" session only font_size may be applied. Unknown fonts
// and unresolvable glyphs are dropped one by one; siblings are still applied.
func Reconcile(doc domain.LooseDocument, m domain.Model) Report {
	var report Report

	if size, ok := doc.FontSize.Get(); ok && size > 0 {
		m.SetFontSize(size)
		report.FontSizeApplied = true
	}

	session, ok := doc.CurrentSession()
	if !ok {
		return report
	}
	report.SessionFound = true

	m.SetFontName(session.FontName.Or(""))
	m.SetCSSPrefixText(session.CSSPrefixText.Or(domain.LegacyCSSPrefixText))
	m.SetCSSUseSuffix(session.CSSUseSuffix.Or(domain.LegacyCSSUseSuffix))
	m.SetEncoding(session.Encoding.Or(domain.LegacyEncoding))

	// Anything but a stored literal false keeps hinting on.
	hinting, stored := session.Hinting.Get()
	m.SetHinting(!stored || hinting)

	for _, sf := range session.Fonts {
		font, ok := m.Font(sf.Name)
		if !ok {
			report.Dropped = append(report.Dropped, Drop{Font: sf.Name, Index: -1, Err: domain.ErrFontUnknown})
			continue
		}
		if sf.Malformed {
			report.Dropped = append(report.Dropped, Drop{Font: sf.Name, Index: -1, Err: domain.ErrFontMalformed})
			continue
		}

		font.SetCollapsed(sf.Collapsed)
		report.FontsApplied++

		if font.IsCustom() {
			reconcileCustom(font, sf, &report)
		} else {
			reconcileRegular(font, sf, &report)
		}
	}

	return report
}

// reconcileCustom rebuilds the custom font's glyph list from the snapshot.
func reconcileCustom(font domain.Font, sf domain.LooseFont, report *Report) {
	results := domain.CustomGlyphSpecs(sf.Glyphs)
	specs := make([]domain.GlyphSpec, 0, len(results))

	for i, r := range results {
		if !r.OK() {
			report.Dropped = append(report.Dropped, Drop{
				Font:  sf.Name,
				UID:   sf.Glyphs[i].UID.Or(""),
				Index: i,
				Err:   r.Err,
			})
			continue
		}
		specs = append(specs, r.Value)
	}

	font.ReplaceGlyphs(specs)
	report.GlyphsRestored += len(specs)
}

// reconcileRegular merges snapshot state onto existing glyphs by uid. The live
// glyph inventory is authoritative; snapshots never add glyphs.
func reconcileRegular(font domain.Font, sf domain.LooseFont, report *Report) {
	live := font.Glyphs()
	lookup := make(map[string]domain.Glyph, len(live))
	for _, g := range live {
		lookup[g.UID()] = g
	}

	for i, snap := range sf.Glyphs {
		uid := snap.UID.Or("")
		if snap.Malformed {
			report.Dropped = append(report.Dropped, Drop{Font: sf.Name, Index: i, Err: domain.ErrGlyphMalformed})
			continue
		}

		target, ok := lookup[uid]
		if !ok {
			report.Dropped = append(report.Dropped, Drop{Font: sf.Name, UID: uid, Index: i, Err: domain.ErrGlyphUnknownUID})
			continue
		}

		target.SetSelected(snap.Selected)

		if code, ok := snap.Code.Get(); ok && code != 0 {
			target.SetCode(code)
		} else {
			target.SetCode(target.OriginalCode())
		}

		if css, ok := snap.CSS.Get(); ok && css != "" {
			target.SetName(css)
		} else {
			target.SetName(target.OriginalName())
		}

		report.GlyphsRestored++
	}
}
