// Package storage provides the key/value store the session document lives in.
//
// Layers:
//
//   - Backend: the raw embedded engine (file, badger, bolt, sqlite, memory)
//   - Store: exists/get/set/remove over a Backend, with a one-time
//     availability probe; an unavailable store turns every call into a no-op
//
// Only one well-known key is used per application. Two processes sharing the
// same storage path overwrite each other's session; this is accepted.
package storage
