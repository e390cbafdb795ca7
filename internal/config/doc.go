// Package config defines the fontsession configuration structure.
//
// AppConfig is populated by confloader from, in increasing priority,
// Default(), the YAML file, FONTSESSION_* variables and CLI flags.
// Verify rejects unusable values; Sanitize masks secrets for display.
package config
