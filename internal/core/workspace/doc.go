// Package workspace is the live font model restored from and saved to the
// session store.
//
// A Workspace is built from a YAML manifest describing the fonts on offer
// and the initial settings. It implements domain.Model for the session
// engine and adds an edit API used by the CLI; only edits notify OnChange
// listeners, so restoring a session never schedules a save by itself.
//
// All fonts and glyphs share the Workspace lock and may be used from
// several goroutines.
package workspace
