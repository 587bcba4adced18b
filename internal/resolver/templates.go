package resolver

import (
	"strings"

	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/token"
	"github.com/sunder-lang/sunderc/internal/types"
)

// registerFuncTemplate registers a function template as a Template symbol
// (§4.4 "Templates"); its body is resolved lazily, once per distinct
// instantiation, from instantiateTemplate.
func (r *Resolver) registerFuncTemplate(d *ast.FuncDecl, table *symbols.SymbolTable, prefix string) error {
	sym := &symbols.Symbol{
		Name: d.Name.Name,
		Kind: symbols.KindTemplate,
		Pos:  d.Pos(),
		Template: &symbols.Template{
			CST:           d,
			CapturePrefix: prefix,
			ParentTable:   table,
			Memo:          make(map[string]*symbols.Symbol),
		},
	}
	return insertOrFatal(r, table, sym)
}

// registerStructTemplate registers a struct template the same way.
func (r *Resolver) registerStructTemplate(d *ast.StructDecl, table *symbols.SymbolTable, prefix string) error {
	sym := &symbols.Symbol{
		Name: d.Name.Name,
		Kind: symbols.KindTemplate,
		Pos:  d.Pos(),
		Template: &symbols.Template{
			CST:           d,
			CapturePrefix: prefix,
			ParentTable:   table,
			Memo:          make(map[string]*symbols.Symbol),
		},
	}
	return insertOrFatal(r, table, sym)
}

func insertOrFatal(r *Resolver, table *symbols.SymbolTable, sym *symbols.Symbol) error {
	if err := table.Insert(sym, false); err != nil {
		r.Sink.Fatal(sym.Pos, "%s", err)
	}
	return nil
}

// instantiationName canonicalizes a template instantiation's memo key,
// e.g. "box[[u64]]" (§4.4: "memoized instantiation keyed on canonicalized
// instantiation name").
func instantiationName(baseName string, args []*types.Type) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.String()
	}
	return baseName + "[[" + strings.Join(names, ", ") + "]]"
}

// instantiateTemplate resolves el's template arguments against callerTable
// and instantiates templateSym (a KindTemplate symbol), returning the
// resulting KindType or KindFunction symbol. Instantiations are memoized
// per-template so repeated use of the same instantiation (e.g. box[[u64]]
// referenced from two call sites) yields the same struct Type pointer —
// the pointer-equality invariant §8 requires.
func (r *Resolver) instantiateTemplate(templateSym *symbols.Symbol, callerTable *symbols.SymbolTable, el ast.PathElement, pos token.Position) *symbols.Symbol {
	if templateSym.Kind != symbols.KindTemplate {
		r.Sink.Fatal(pos, "%q is not a template", templateSym.Name)
	}
	tmpl := templateSym.Template
	args := r.resolveTemplateArgTypes(callerTable, el.Args)

	switch cst := tmpl.CST.(type) {
	case *ast.StructDecl:
		return r.instantiateStructTemplate(templateSym, tmpl, cst, args, pos)
	case *ast.FuncDecl:
		return r.instantiateFuncTemplate(templateSym, tmpl, cst, args, pos)
	default:
		panic("resolver: template CST is neither *ast.StructDecl nor *ast.FuncDecl")
	}
}

func (r *Resolver) bindTemplateParams(parent *symbols.SymbolTable, params []ast.TemplateParam, args []*types.Type, pos token.Position) *symbols.SymbolTable {
	if len(params) != len(args) {
		r.Sink.Fatal(pos, "template expects %d argument(s), got %d", len(params), len(args))
	}
	t := symbols.New(parent)
	for i, p := range params {
		sym := &symbols.Symbol{Name: p.Name, Kind: symbols.KindType, Pos: p.Token.Pos, Type: args[i]}
		if err := t.Insert(sym, false); err != nil {
			r.Sink.Fatal(p.Token.Pos, "%s", err)
		}
	}
	return t
}

func (r *Resolver) instantiateStructTemplate(templateSym *symbols.Symbol, tmpl *symbols.Template, cst *ast.StructDecl, args []*types.Type, pos token.Position) *symbols.Symbol {
	name := instantiationName(templateSym.Name, args)
	if cached, ok := tmpl.Memo[name]; ok {
		return cached
	}

	scope := r.bindTemplateParams(tmpl.ParentTable, cst.TemplateParams, args, pos)
	fullName := joinPrefix(tmpl.CapturePrefix, cst.Name.Name+"["+joinArgNames(args)+"]")
	typ := r.Reg.DeclareStruct(fullName)

	selfSym := &symbols.Symbol{Name: cst.Name.Name, Kind: symbols.KindType, Pos: cst.Pos(), Type: typ}
	scope.Insert(selfSym, true)

	instSym := &symbols.Symbol{Name: name, Kind: symbols.KindType, Pos: cst.Pos(), Type: typ}
	tmpl.Memo[name] = instSym // cache before completion so recursive members see this instance

	innerTable := symbols.New(scope)
	r.structTables[typ] = innerTable
	r.pendingStructs = append(r.pendingStructs, &pendingStruct{
		typ: typ, cst: cst, table: innerTable, prefix: fullName, paramScope: scope,
	})

	return instSym
}

func (r *Resolver) instantiateFuncTemplate(templateSym *symbols.Symbol, tmpl *symbols.Template, cst *ast.FuncDecl, args []*types.Type, pos token.Position) *symbols.Symbol {
	name := instantiationName(templateSym.Name, args)
	if cached, ok := tmpl.Memo[name]; ok {
		return cached
	}

	scope := r.bindTemplateParams(tmpl.ParentTable, cst.TemplateParams, args, pos)
	fullName := joinPrefix(tmpl.CapturePrefix, cst.Name.Name+"["+joinArgNames(args)+"]")

	sym, pf := r.declareFuncSymbol(cst, scope, fullName, name)
	tmpl.Memo[name] = sym // cache before body resolution to support recursive template instantiation

	// Template bodies resolve immediately (not deferred to the module's
	// final pass) since instantiation can happen mid-resolution, well
	// after the top-level deferred-body pass has been queued.
	r.resolveFuncBody(pf)

	return sym
}

func joinArgNames(args []*types.Type) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.String()
	}
	return strings.Join(names, ", ")
}
