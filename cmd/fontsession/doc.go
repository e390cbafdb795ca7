// Package main provides the entry point for fontsession.
//
// fontsession restores, inspects and edits the persisted icon font
// session of a workspace:
//
//   - Restore and show the stored session document
//   - Edit glyph codes, names and selection, then save
//   - Add and remove custom glyphs
//   - Watch an edits file and save with debouncing
//
// Usage:
//
//	fontsession [global flags] command [flags]
//	fontsession -m manifest.json restore
//	fontsession glyph select --font fontawesome --uid 9dd9a9...
//	fontsession -o json show
package main
