package resolver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sunder-lang/sunderc/internal/diagnostics"
	"github.com/sunder-lang/sunderc/internal/evaluator"
	"github.com/sunder-lang/sunderc/internal/parser"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/types"
)

// mapLoader resolves imports from an in-memory source map, so circular and
// repeated-import tests don't need real files on disk.
type mapLoader struct {
	reg      *types.Registry
	eval     *evaluator.Evaluator
	sink     *diagnostics.Sink
	sources  map[string]string
	cache    map[string]*symbols.SymbolTable
	visiting map[string]bool
}

func newMapLoader(reg *types.Registry, eval *evaluator.Evaluator, sink *diagnostics.Sink, sources map[string]string) *mapLoader {
	return &mapLoader{
		reg: reg, eval: eval, sink: sink,
		sources:  sources,
		cache:    make(map[string]*symbols.SymbolTable),
		visiting: make(map[string]bool),
	}
}

func (l *mapLoader) Load(fromDir, importPath string) (*symbols.SymbolTable, error) {
	if exports, ok := l.cache[importPath]; ok {
		return exports, nil
	}
	if l.visiting[importPath] {
		return nil, errCircularImport{importPath}
	}
	src, ok := l.sources[importPath]
	if !ok {
		return nil, errNoSuchModule{importPath}
	}
	l.visiting[importPath] = true
	defer delete(l.visiting, importPath)

	prog, err := parser.ParseProgram(importPath, src)
	if err != nil {
		return nil, err
	}
	r := New(l.reg, l.eval, l.sink, l)
	mod, err := r.ResolveModule(prog)
	if err != nil {
		return nil, err
	}
	_ = mod
	l.cache[importPath] = r.modRoot
	return r.modRoot, nil
}

type errCircularImport struct{ path string }

func (e errCircularImport) Error() string { return "circular import of " + e.path }

type errNoSuchModule struct{ path string }

func (e errNoSuchModule) Error() string { return "no such module " + e.path }

// resolveSource parses and resolves src with a Catch-based Sink, returning
// the resolved module (nil on a fatal diagnostic) and anything the sink
// printed.
func resolveSource(t *testing.T, src string) (mod *tir.Module, out string) {
	t.Helper()
	var buf bytes.Buffer
	reg := types.NewRegistry()
	eval := evaluator.New(reg)
	sink := diagnostics.Catch(&buf)

	// Recover() only swallows the panic; the named returns still need
	// setting here since a recovered panic skips straight past whatever
	// statement was executing (including the function's own `return`).
	defer func() {
		diagnostics.Recover()
		out = buf.String()
	}()

	prog, err := parser.ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	r := New(reg, eval, sink, nil)
	mod, err = r.ResolveModule(prog)
	if err != nil {
		t.Fatalf("unexpected resolver error: %v", err)
	}
	return mod, buf.String()
}

func findStatic(mod *tir.Module, label string) *tir.StaticSymbol {
	for _, s := range mod.Statics {
		if s.Label == label {
			return s
		}
	}
	return nil
}

func findStaticContaining(mod *tir.Module, needle string) *tir.StaticSymbol {
	for _, s := range mod.Statics {
		if strings.Contains(s.Label, needle) {
			return s
		}
	}
	return nil
}

func TestConstantFoldingOfUntypedIntegerLiterals(t *testing.T) {
	mod, out := resolveSource(t, `
const x = 1 + 2;
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic: %s", out)
	}
	s := findStatic(mod, "x")
	if s == nil {
		t.Fatalf("expected a static symbol for x")
	}
	if s.Value == nil {
		t.Fatalf("expected x to carry a frozen Value")
	}
	got := s.Value.Int()
	if got == nil || got.Int64() != 3 {
		t.Fatalf("expected folded value 3, got %v", got)
	}
}

func TestConstantFoldingOfComparison(t *testing.T) {
	mod, out := resolveSource(t, `
const ok = 1 < 2;
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic: %s", out)
	}
	s := findStatic(mod, "ok")
	if s == nil || s.Value == nil {
		t.Fatalf("expected a frozen Value for ok")
	}
	if !s.Value.Bool() {
		t.Fatalf("expected folded comparison to be true")
	}
}

func TestArrayLiteralWithEllipsisFill(t *testing.T) {
	mod, out := resolveSource(t, `
const xs = (:[4]u8)[1, 2, ...0];
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic: %s", out)
	}
	s := findStatic(mod, "xs")
	if s == nil || s.Value == nil {
		t.Fatalf("expected a frozen Value for xs")
	}
	elems := s.Value.Elements()
	if len(elems) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(elems))
	}
}

func TestBytesLiteralAppendsNULAndRecordsLength(t *testing.T) {
	mod, out := resolveSource(t, `
func main() void {
	const s = "hi";
}
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic: %s", out)
	}
	backing := findStaticContaining(mod, "bytes")
	if backing == nil {
		t.Fatalf("expected a synthetic bytes backing static, statics: %v", mod.Statics)
	}
	elems := backing.Value.Elements()
	if len(elems) != 3 {
		t.Fatalf("expected backing array of len 3 (\"hi\" + NUL), got %d", len(elems))
	}
	if elems[2].ByteVal() != 0 {
		t.Fatalf("expected trailing NUL byte, got %d", elems[2].ByteVal())
	}
}

func TestOverflowingSuffixedLiteralIsFatal(t *testing.T) {
	_, out := resolveSource(t, `
const x: u8 = 300u8;
`)
	if out == "" {
		t.Fatalf("expected a fatal diagnostic for an out-of-range u8 literal")
	}
}

func TestNegatedSignedLiteralAtLowerBoundIsAccepted(t *testing.T) {
	mod, out := resolveSource(t, `
const x = -128s8;
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic for -128s8: %s", out)
	}
	s := findStatic(mod, "x")
	if s == nil || s.Value == nil {
		t.Fatalf("expected a frozen Value for x")
	}
	if s.Value.Int().Int64() != -128 {
		t.Fatalf("expected -128, got %v", s.Value.Int())
	}
}

func TestNegatingUnsignedSuffixedLiteralIsFatal(t *testing.T) {
	_, out := resolveSource(t, `
const x = -5u8;
`)
	if out == "" {
		t.Fatalf("expected a fatal diagnostic negating an unsigned-suffixed literal")
	}
}

func TestStructTemplateInstantiationIsMemoized(t *testing.T) {
	mod, out := resolveSource(t, `
struct box[[T]] {
	var v: T;
}

func first() *box[[u64]] {
	return (:*box[[u64]])(0u);
}

func second() *box[[u64]] {
	return (:*box[[u64]])(0u);
}
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic: %s", out)
	}
	if len(mod.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(mod.Functions))
	}
	firstRet := mod.Functions[0].Return.Base()
	secondRet := mod.Functions[1].Return.Base()
	if firstRet != secondRet {
		t.Fatalf("expected both instantiations of box[[u64]] to share one *types.Type, got %p vs %p", firstRet, secondRet)
	}
}

func TestCircularImportIsReported(t *testing.T) {
	reg := types.NewRegistry()
	eval := evaluator.New(reg)
	var buf bytes.Buffer
	sink := diagnostics.Catch(&buf)

	sources := map[string]string{
		"a.sunder": `import "b.sunder";`,
		"b.sunder": `import "a.sunder";`,
	}
	loader := newMapLoader(reg, eval, sink, sources)
	loader.cache = make(map[string]*symbols.SymbolTable)

	// The resolver reports the cycle through the sink, whose Fatal panics;
	// check the written diagnostic once that panic has been absorbed.
	defer func() {
		diagnostics.Recover()
		if !strings.Contains(buf.String(), "circular import") {
			t.Fatalf("expected a circular-import diagnostic, got %q", buf.String())
		}
	}()
	_, err := loader.Load(".", "a.sunder")
	if err == nil {
		t.Fatalf("expected circular import to be reported as an error")
	}
}

func TestFunctionMustReturnOnAllPaths(t *testing.T) {
	_, out := resolveSource(t, `
func f(cond: bool) u64 {
	if cond {
		return 1u64;
	}
}
`)
	if out == "" {
		t.Fatalf("expected a fatal diagnostic for a missing-return path")
	}
}

func TestFunctionReturnsOnAllPathsWithElse(t *testing.T) {
	mod, out := resolveSource(t, `
func f(cond: bool) u64 {
	if cond {
		return 1u64;
	} else {
		return 2u64;
	}
}
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic: %s", out)
	}
	if len(mod.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(mod.Functions))
	}
}

func TestForRangeLoopResolvesWithInductionVariable(t *testing.T) {
	mod, out := resolveSource(t, `
func sum() u64 {
	var total: u64 = 0u64;
	for i in 0u:10u {
		total = total + 1u64;
	}
	return total;
}
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic: %s", out)
	}
	fn := mod.Functions[0]
	if fn.LocalStackLowWater >= 0 {
		t.Fatalf("expected locals to extend the low-water mark below 0, got %d", fn.LocalStackLowWater)
	}
}

func TestBreakOutsideLoopIsFatal(t *testing.T) {
	_, out := resolveSource(t, `
func f() void {
	break;
}
`)
	if out == "" {
		t.Fatalf("expected a fatal diagnostic for break outside a loop")
	}
}

func TestBareNestedBlockStatementIsUnsupported(t *testing.T) {
	_, out := resolveSource(t, `
func f() void {
	{
		const x = 1;
	}
}
`)
	if out == "" {
		t.Fatalf("expected a fatal diagnostic for a bare nested block statement")
	}
}

func TestAssignmentToNonLValueIsFatal(t *testing.T) {
	_, out := resolveSource(t, `
func f() void {
	1 = 2;
}
`)
	if out == "" {
		t.Fatalf("expected a fatal diagnostic assigning to a non-lvalue")
	}
}

func TestMethodCallSynthesizesImplicitSelfArgument(t *testing.T) {
	mod, out := resolveSource(t, `
struct point {
	var x: u64;
	var y: u64;

	func sum(self: *point) u64 {
		return self.x + self.y;
	}
}

func f(p: point) u64 {
	return p.sum();
}
`)
	if out != "" {
		t.Fatalf("unexpected diagnostic: %s", out)
	}
	if len(mod.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(mod.Functions))
	}
}
