// Package domain defines the core domain models for fontsession.
//
// Domain models are pure value objects without any IO dependencies.
// This package contains:
//
//   - Document: the persisted session document produced by the encoder
//   - LooseDocument: a stored document read without trusting its shape
//   - Opt: three-way optional fields (absent, present, invalid)
//   - Model: the capability contract of the live font/glyph model
//   - Errors: domain error codes, including glyph rejection reasons
//
// The stored document carries no version field; its shape is versioned by
// the storage key (see DefaultStorageKey).
package domain
