// Package app assembles fontsession from its configuration: logger, metrics,
// storage backend, availability-probing store, workspace and session service.
//
// Commands open an App, work against its session service, and Close it, which
// flushes a scheduled save before releasing the backend.
package app
