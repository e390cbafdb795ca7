// Package logger provides structured logging for fontsession.
//
// The package wraps log/slog:
//
//   - logger.go: Logger interface, configuration and the global default
//   - context.go: context propagation of the logger and operation names
//   - redact.go: masking of passphrases and other secrets
//
// Storage backends take a plain *slog.Logger; use Slog to obtain one that
// shares the handler, level and redaction of a Logger.
package logger
