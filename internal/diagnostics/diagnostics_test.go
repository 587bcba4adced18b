package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sunder-lang/sunderc/internal/token"
)

func TestFatalPrintsLocationAndMessage(t *testing.T) {
	var buf bytes.Buffer
	sink := Catch(&buf)
	pos := token.Position{Path: "a.sunder", Line: 3, Column: 5}

	func() {
		defer Recover()
		sink.Fatal(pos, "undeclared identifier %q", "x")
	}()

	out := buf.String()
	if !strings.Contains(out, "a.sunder:3:5") {
		t.Errorf("expected output to contain the source location, got %q", out)
	}
	if !strings.Contains(out, `undeclared identifier "x"`) {
		t.Errorf("expected output to contain the formatted message, got %q", out)
	}
}

func TestCatchDoesNotTerminateTestProcess(t *testing.T) {
	var buf bytes.Buffer
	sink := Catch(&buf)

	defer func() {
		if recover() != nil {
			t.Fatalf("Recover should have absorbed the catch signal")
		}
	}()
	defer Recover()
	sink.Fatal(token.Position{}, "boom")
	t.Fatalf("unreachable: Fatal should not return")
}
