package resolver

import (
	"strings"

	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/token"
	"github.com/sunder-lang/sunderc/internal/types"
)

// pathString renders a Path back to source-like text for diagnostics.
func pathString(p *ast.Path) string {
	parts := make([]string, len(p.Elements))
	for i, el := range p.Elements {
		parts[i] = el.Name
	}
	s := strings.Join(parts, "::")
	if p.Rooted {
		s = "::" + s
	}
	return s
}

// walkPath implements §4.4 "Symbol lookup via :: paths": a left-to-right
// walk where the first element resolves through the normal (parent-chain)
// lookup rules — or, if the path is rooted, starts explicitly at the
// module table — and every subsequent element must be a direct member of
// the namespace or inner type table the prior element denotes. A
// template-argument list on any element along the way triggers
// instantiation before the walk continues.
func (r *Resolver) walkPath(table *symbols.SymbolTable, p *ast.Path) *symbols.Symbol {
	start := table
	if p.Rooted {
		start = r.modRoot
	}

	first := p.Elements[0]
	sym, ok := start.Lookup(first.Name)
	if !ok {
		r.Sink.Fatal(p.Pos(), "undeclared name %q", first.Name)
	}
	if first.HasArgs {
		sym = r.instantiateTemplate(sym, table, first, p.Pos())
	}

	for _, el := range p.Elements[1:] {
		inner := r.innerTableOf(sym, p.Pos())
		next, ok := inner.LookupLocal(el.Name)
		if !ok {
			r.Sink.Fatal(p.Pos(), "%q has no member %q", sym.Name, el.Name)
		}
		sym = next
		if el.HasArgs {
			sym = r.instantiateTemplate(sym, table, el, p.Pos())
		}
	}

	return sym
}

// innerTableOf returns the table that a path walk continues into after
// landing on sym: a namespace's member table, or a (possibly just
// instantiated) struct type's member table. Any other symbol kind cannot
// be the non-terminal element of a path.
func (r *Resolver) innerTableOf(sym *symbols.Symbol, pos token.Position) *symbols.SymbolTable {
	switch sym.Kind {
	case symbols.KindNamespace:
		return sym.Namespace
	case symbols.KindType:
		if !sym.Type.IsStruct() {
			r.Sink.Fatal(pos, "%q is not a namespace or struct type", sym.Name)
		}
		return symbols.AsTable(sym.Type.MemberTable())
	default:
		r.Sink.Fatal(pos, "%q cannot be used as a path prefix", sym.Name)
		return nil
	}
}

// resolveTemplateArgTypes resolves a template-instantiation argument list
// to canonical Types.
func (r *Resolver) resolveTemplateArgTypes(table *symbols.SymbolTable, specs []ast.TypeSpec) []*types.Type {
	out := make([]*types.Type, len(specs))
	for i, s := range specs {
		out[i] = r.resolveTypeSpec(table, s)
	}
	return out
}
