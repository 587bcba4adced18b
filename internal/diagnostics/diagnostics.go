// Package diagnostics implements the single fatal-report sink §6 and §7
// specify: every semantic error is fatal, carries the offending
// expression's source location, and is reported through one shared
// formatting path.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sunder-lang/sunderc/internal/config"
	"github.com/sunder-lang/sunderc/internal/token"
)

// Error is a located, fatal diagnostic (§7: "Internal invariants are
// asserted; violations indicate a compiler bug rather than a user
// error" — Error belongs to the latter, user-facing category).
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Sink is the shared reporting path every resolver/evaluator call site
// reports through, so the driver controls color and exit behavior in one
// place instead of each call site deciding independently.
type Sink struct {
	w      io.Writer
	color  bool
	exitFn func(code int)
}

// NewSink returns a Sink writing to w, auto-detecting ANSI color support
// via go-isatty when w is *os.File.
func NewSink(w io.Writer) *Sink {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Sink{w: w, color: color, exitFn: os.Exit}
}

// Fatal formats and prints the diagnostic, then terminates the process
// with a non-zero exit code (§6: "prints a formatted message with
// file:line prefix and terminates the process with a non-zero exit
// code"). It never returns.
func (s *Sink) Fatal(pos token.Position, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	s.print(pos, msg)
	s.exitFn(1)
}

func (s *Sink) print(pos token.Position, msg string) {
	prefix := fmt.Sprintf("%s: build %s", pos, config.BuildID)
	if s.color {
		fmt.Fprintf(s.w, "\x1b[1;31merror\x1b[0m: \x1b[1m%s\x1b[0m: %s\n", prefix, msg)
		return
	}
	fmt.Fprintf(s.w, "error: %s: %s\n", prefix, msg)
}

// Catch builds a Sink whose "exit" instead panics with an internal catch
// signal (the message has already been written to w), for use
// in tests that want to assert on a diagnostic without terminating the
// test binary — mirrors the teacher's DiagnosticError pattern, which was
// not itself present in the retrieved source but is reconstructed here
// from its call sites (see DESIGN.md).
func Catch(w io.Writer) *Sink {
	s := NewSink(w)
	s.exitFn = func(code int) {
		panic(&catchSignal{code: code})
	}
	return s
}

type catchSignal struct{ code int }

// Recover, deferred, absorbs the panic raised by a Catch sink's Fatal so
// the test can go on to inspect the text already written to the sink's
// writer. It returns nothing itself, and re-panics anything that isn't a
// catchSignal produced by this package.
func Recover() {
	if r := recover(); r != nil {
		if _, ok := r.(*catchSignal); !ok {
			panic(r)
		}
	}
}
