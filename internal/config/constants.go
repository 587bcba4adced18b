// Package config holds compiler-wide settings: the source extension, the
// module search path, the optional project manifest, and a per-run build
// identifier threaded through diagnostics and logs.
package config

// Version is the current sunderc version. Set at build time via
// -ldflags "-X github.com/sunder-lang/sunderc/internal/config.Version=...".
var Version = "0.1.0"

const SourceFileExt = ".sunder"

// HasSourceExt returns true if path ends in the recognized source
// extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}

// TrimSourceExt removes the source extension from name, if present.
func TrimSourceExt(name string) string {
	if HasSourceExt(name) {
		return name[:len(name)-len(SourceFileExt)]
	}
	return name
}

// IsTestMode is a test-mode flag. The driver has no `test` subcommand and
// nothing in this repository sets it, so it stays false.
var IsTestMode = false

// PointerWidthBytes is the target's pointer width, matching
// internal/types.PointerWidth/8.
const PointerWidthBytes = 8
