// Package command provides the fontsession CLI commands.
//
// Commands are built on urfave/cli/v2:
//
//   - root.go: application, global flags, app lifecycle helpers
//   - session.go: restore, show, clear
//   - edit.go: glyph, font and settings edits
//   - watch.go: apply an edits file on every change
//   - config.go: effective configuration and version
//
// Every command that touches the workspace restores the stored session
// first. Edits schedule a debounced save which is flushed before exit.
package command
