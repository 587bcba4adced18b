package codegen

import (
	"testing"

	"github.com/sunder-lang/sunderc/internal/tir"
)

func TestNoopBackendEmitsNothingWithoutError(t *testing.T) {
	var b Backend = NoopBackend{}
	out, err := b.Emit(&tir.Module{Path: "main"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Fatalf("expected no output, got %v", out)
	}
	if b.Name() != "noop" {
		t.Fatalf("Name() = %q, want noop", b.Name())
	}
}
