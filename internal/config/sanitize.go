// Package config defines the fontsession configuration structure.
package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
func Sanitize(cfg *AppConfig) *AppConfig {
	sanitized := *cfg

	if sanitized.Store.Passphrase != "" {
		sanitized.Store.Passphrase = maskSecret(sanitized.Store.Passphrase)
	}

	return &sanitized
}

// maskSecret masks a secret value for safe display.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
