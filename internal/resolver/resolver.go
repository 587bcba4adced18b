// Package resolver implements §4.4: the pass that turns a parsed CST
// (internal/ast) into TIR (internal/tir), populating the type registry and
// symbol tables as it goes and constant-folding everything the evaluator
// is able to reduce along the way. It is the largest single pass in the
// front-end, split by concern the way the teacher's analyzer package
// splits declarations/statements/expressions/types into separate files
// under one receiver type.
package resolver

import (
	"fmt"
	"path/filepath"

	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/diagnostics"
	"github.com/sunder-lang/sunderc/internal/evaluator"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/tir"
	"github.com/sunder-lang/sunderc/internal/types"
)

// Loader resolves an import path to a parsed module, and is asked to
// resolve that module itself (producing its export table) before the
// import can be merged. Grounded on the teacher's Loader/LoadedModule
// split in internal/analyzer/declarations_imports.go, which separates
// "find the file" from "what does its symbol table export" so the
// resolver never has to know how modules are located on disk.
type Loader interface {
	// Load resolves importPath relative to fromDir (the importing
	// module's directory) plus the configured search path, parses it if
	// not already cached, and returns its export table. Implementations
	// must themselves call Resolver.ResolveModule (or return a
	// previously cached result) so transitively-imported modules are
	// fully resolved before their exports are merged.
	Load(fromDir, importPath string) (exports *symbols.SymbolTable, err error)
}

// pendingFunc captures a declared-but-not-yet-body-resolved function, so
// every top-level declaration is visible (supporting mutual recursion)
// before any function body is walked (§4.4 "Declaration order").
type pendingFunc struct {
	sym    *symbols.Symbol
	cst    *ast.FuncDecl
	table  *symbols.SymbolTable // table params were inserted into
	prefix string
}

// pendingStruct captures a predeclared (incomplete) struct type awaiting
// member resolution.
type pendingStruct struct {
	typ    *types.Type
	cst    *ast.StructDecl
	table  *symbols.SymbolTable // the struct's inner member table
	prefix string

	// paramScope is non-nil for a template instantiation: the scope
	// binding the template's type parameters to this instantiation's
	// argument types, consulted (as the parent of table) while resolving
	// member typespecs/initializers.
	paramScope *symbols.SymbolTable
}

// funcState is the per-function-body resolution context: local stack
// layout, the active defer chain, and the loop stack break/continue
// capture against (§4.4 "Function body resolution", §9 "Defer chains").
type funcState struct {
	fn         *tir.Function
	rbp        int32 // next local's frame offset is rbp - roundedSize
	deferHead  *tir.DeferLink
	loopAnchor []*tir.DeferLink
	retType    *types.Type
}

// Resolver holds the state shared across every module resolved in one
// compilation: the type registry and evaluator are compilation-wide
// singletons (§5), and static symbol names must be unique across the
// entire compiled program (§8), so the label registry lives here too
// rather than being reset per module.
type Resolver struct {
	Reg   *types.Registry
	Eval  *evaluator.Evaluator
	Sink  *diagnostics.Sink
	Loader Loader

	universe *symbols.SymbolTable // prelude: built-in type names

	usedLabels map[string]bool
	labelSeq   map[string]int

	bytesCounter int

	// per-ResolveModule state, valid only while a module is being resolved
	modRoot        *symbols.SymbolTable
	modPrefix      string // this module's normalized static-label prefix
	pendingFuncs      []*pendingFunc
	pendingFuncParams map[*ast.FuncDecl][]*symbols.Symbol
	pendingStructs    []*pendingStruct
	structTables   map[*types.Type]*symbols.SymbolTable
	statics        []*tir.StaticSymbol
	functions      []*tir.Function

	cur *funcState // non-nil while resolving a function body
}

// New returns a Resolver backed by reg/eval/sink, with the scalar and
// fixed-width integer type names pre-bound in its universe table (§4.1).
func New(reg *types.Registry, eval *evaluator.Evaluator, sink *diagnostics.Sink, loader Loader) *Resolver {
	r := &Resolver{
		Reg:        reg,
		Eval:       eval,
		Sink:       sink,
		Loader:     loader,
		usedLabels: make(map[string]bool),
		labelSeq:   make(map[string]int),
	}
	r.universe = symbols.New(nil)
	bind := func(name string, t *types.Type) {
		r.universe.Insert(&symbols.Symbol{Name: name, Kind: symbols.KindType, Type: t}, false)
	}
	bind("void", reg.VoidType())
	bind("bool", reg.BoolType())
	bind("byte", reg.ByteType())
	bind("any", reg.AnyType())
	for _, w := range []string{"8", "16", "32", "64"} {
		bind("u"+w, reg.IntegerType("u"+w))
		bind("s"+w, reg.IntegerType("s"+w))
	}
	bind("usize", reg.IntegerType("usize"))
	bind("ssize", reg.IntegerType("ssize"))
	r.universe.Freeze()
	return r
}

// ResolveModule runs the full §4.4 pipeline over one parsed source file:
// module prelude, import merging, struct predeclaration, top-level
// declaration resolution, struct completion, and deferred function-body
// resolution — in that order, so forward references across all of those
// categories are supported within a module.
func (r *Resolver) ResolveModule(prog *ast.Program) (*tir.Module, error) {
	r.modRoot = symbols.New(r.universe)
	r.pendingFuncs = nil
	r.pendingFuncParams = make(map[*ast.FuncDecl][]*symbols.Symbol)
	r.pendingStructs = nil
	r.structTables = make(map[*types.Type]*symbols.SymbolTable)
	r.statics = nil
	r.functions = nil

	prefix := normalizeJoin(prog.Namespace)
	r.modPrefix = prefix

	if err := r.resolveImports(prog); err != nil {
		return nil, err
	}

	// Predeclare every non-template struct so that mutually-referencing
	// structs (and self-referential pointer/slice members) can resolve
	// regardless of declaration order (§4.4 "Declaration order").
	for _, decl := range prog.Declarations {
		sd, ok := decl.(*ast.StructDecl)
		if !ok || sd.IsTemplate() {
			continue
		}
		r.predeclareStruct(sd, r.modRoot, prefix)
	}

	// Declare every other top-level form. Function bodies are not walked
	// yet; structs are only predeclared, not completed.
	for _, decl := range prog.Declarations {
		if err := r.declareTop(decl, r.modRoot, prefix); err != nil {
			return nil, err
		}
	}

	// Complete predeclared structs (members may reference each other and
	// any function/global declared above). Indexed, not ranged: completing
	// a struct can itself append a new entry (a not-yet-seen template
	// instantiation reached through a member's typespec), and that entry
	// must still be visited by this same pass.
	for i := 0; i < len(r.pendingStructs); i++ {
		r.completeStruct(r.pendingStructs[i])
	}

	// Resolve deferred function bodies last, so every top-level symbol —
	// including ones declared textually after the function — is already
	// visible (§4.4 "supports mutual recursion").
	for _, pf := range r.pendingFuncs {
		r.resolveFuncBody(pf)
	}

	r.modRoot.Freeze()

	return &tir.Module{
		Path:      prog.File,
		Functions: r.functions,
		Statics:   r.statics,
	}, nil
}

// Exports returns the module-level symbol table most recently built by
// ResolveModule, for a Loader to hand to an importing module. Valid only
// after ResolveModule has returned.
func (r *Resolver) Exports() *symbols.SymbolTable {
	return r.modRoot
}

func (r *Resolver) resolveImports(prog *ast.Program) error {
	if len(prog.Imports) == 0 {
		return nil
	}
	if r.Loader == nil {
		r.Sink.Fatal(prog.Imports[0].Pos(), "module imports another module but no Loader was configured")
	}
	dir := filepath.Dir(prog.File)
	for _, imp := range prog.Imports {
		exports, err := r.Loader.Load(dir, imp.Path)
		if err != nil {
			r.Sink.Fatal(imp.Pos(), "importing %q: %s", imp.Path, err)
		}
		if err := symbols.MergeNamespace(r.modRoot, exports); err != nil {
			r.Sink.Fatal(imp.Pos(), "import %q conflicts with an existing declaration: %s", imp.Path, err)
		}
	}
	return nil
}

func (r *Resolver) declareTop(decl ast.Decl, table *symbols.SymbolTable, prefix string) error {
	switch d := decl.(type) {
	case *ast.StructDecl:
		if d.IsTemplate() {
			return r.registerStructTemplate(d, table, prefix)
		}
		return nil // already predeclared; members resolved in completeStruct
	case *ast.VarDecl:
		return r.resolveGlobalVarDecl(d, table, prefix)
	case *ast.ConstDecl:
		r.resolveGlobalConstDecl(d, table, prefix)
		return nil
	case *ast.FuncDecl:
		if d.IsTemplate() {
			return r.registerFuncTemplate(d, table, prefix)
		}
		return r.declareFunc(d, table, prefix)
	case *ast.AliasDecl:
		return r.resolveAliasDecl(d, table, prefix)
	case *ast.ExtendDecl:
		return r.resolveExtendDecl(d, table, prefix)
	default:
		panic(fmt.Sprintf("resolver: unhandled top-level declaration %T", decl))
	}
}
