// Package memory provides an in-memory storage backend for fontsession.
//
// It backs the "memory" engine (a session that lives only as long as the
// process) and doubles as the configurable fake used in tests: writes can be
// counted and failures injected to simulate a disabled or full store.
package memory
