// Package codegen defines the pluggable back-end contract the resolver's
// output feeds (§6 "Back-end contract": "The back-end is responsible for
// code generation; the resolver does not emit assembly"). The resolver and
// evaluator are deliberately independent of any one code generation
// strategy; this package only fixes the seam.
package codegen

import "github.com/sunder-lang/sunderc/internal/tir"

// Backend turns a resolved Module into output (assembly text, an object
// file, or — for tooling — a report). Modeled on the teacher's pluggable
// Backend interface, narrowed to the one method the resolver's contract
// actually requires: consuming a *tir.Module.
type Backend interface {
	// Emit consumes a resolved module and returns the backend's encoded
	// output, or an error if generation fails.
	Emit(mod *tir.Module) ([]byte, error)

	// Name identifies the backend in the driver's log lines and
	// diagnostics.
	Name() string
}

// NoopBackend discards the module and reports success, exercising the
// resolver's full module-output contract without requiring an x86-64
// assembler. `sunderc build` runs it; `sunderc check` stops after the
// front-end and runs no backend at all.
type NoopBackend struct{}

func (NoopBackend) Emit(mod *tir.Module) ([]byte, error) { return nil, nil }
func (NoopBackend) Name() string                         { return "noop" }
