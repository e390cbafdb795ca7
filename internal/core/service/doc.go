// Package service provides the session snapshot/restore engine.
//
// This package contains:
//
//   - Encode: walks a live model and builds a Document
//   - Reconcile / Decode: applies a stored document onto a live model with
//     legacy-field fallbacks and per-entity dropping
//   - Debouncer: coalesces bursts of save triggers into one call
//   - SessionService: wires encoder, decoder and the key/value store behind
//     the "persist now" and "restore now" triggers
//
// Neither Encode nor Reconcile keeps state between invocations; all state
// lives in the model and in the store.
package service
