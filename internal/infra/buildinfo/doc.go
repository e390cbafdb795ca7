// Package buildinfo reports the fontsession build.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/fontsession/internal/infra/buildinfo.Version=v0.3.0"
//
// Values left unset fall back to what the Go toolchain embedded in the
// binary (module version, vcs.revision, vcs.time).
package buildinfo
