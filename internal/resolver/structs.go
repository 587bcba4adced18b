package resolver

import (
	"github.com/sunder-lang/sunderc/internal/ast"
	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/types"
)

// predeclareStruct registers sd's type as an incomplete struct (§4.4
// "Declaration order": predeclare via types.Registry.DeclareStruct so
// forward/self references resolve regardless of textual order) and queues
// it for member resolution once every top-level declaration is visible.
func (r *Resolver) predeclareStruct(sd *ast.StructDecl, table *symbols.SymbolTable, prefix string) {
	fullName := joinPrefix(prefix, sd.Name.Name)
	typ := r.Reg.DeclareStruct(fullName)

	sym := &symbols.Symbol{Name: sd.Name.Name, Kind: symbols.KindType, Pos: sd.Pos(), Type: typ}
	if err := table.Insert(sym, false); err != nil {
		r.Sink.Fatal(sd.Pos(), "%s", err)
	}

	inner := symbols.New(table)
	r.structTables[typ] = inner
	r.pendingStructs = append(r.pendingStructs, &pendingStruct{typ: typ, cst: sd, table: inner, prefix: fullName})
}

func memberName(m ast.StructMember) string {
	switch {
	case m.Var != nil:
		return m.Var.Name.Name
	case m.Const != nil:
		return m.Const.Name.Name
	default:
		return m.Func.Name.Name
	}
}

// completeStruct implements §4.4 "Struct completion": member variables
// get natural-alignment offsets; constant/function members are resolved
// inside the struct's inner table, under the struct's own normalized name
// as their static-address prefix.
func (r *Resolver) completeStruct(ps *pendingStruct) {
	var members []types.Member
	var running uint64
	var structAlign uint64 = 1
	seen := make(map[string]bool)

	for _, m := range ps.cst.Members {
		name := memberName(m)
		if seen[name] {
			r.Sink.Fatal(ps.cst.Pos(), "struct %q: duplicate member %q", ps.cst.Name.Name, name)
		}
		seen[name] = true

		switch {
		case m.Var != nil:
			t := r.resolveTypeSpec(ps.table, m.Var.TypeSpec)
			if t.IsUnsized() {
				r.Sink.Fatal(m.Var.Pos(), "member %q has unsized type %s", name, t)
			}
			off := alignUp(running, t.Align())
			members = append(members, types.Member{Name: name, Type: t, Offset: off})
			running = off + t.Size()
			if t.Align() > structAlign {
				structAlign = t.Align()
			}
		case m.Const != nil:
			r.resolveGlobalConstDecl(m.Const, ps.table, ps.prefix)
		case m.Func != nil:
			r.declareFunc(m.Func, ps.table, ps.prefix)
		}
	}

	size := alignUp(running, structAlign)
	r.Reg.CompleteStruct(ps.typ, members, size, structAlign, ps.table)
}

// resolveAliasDecl implements `alias Name = T;`: register a new type
// symbol aliasing the resolved type (§4.4 "Aliases").
func (r *Resolver) resolveAliasDecl(d *ast.AliasDecl, table *symbols.SymbolTable, prefix string) error {
	t := r.resolveTypeSpec(table, d.TypeSpec)
	sym := &symbols.Symbol{Name: d.Name.Name, Kind: symbols.KindType, Pos: d.Pos(), Type: t}
	if err := table.Insert(sym, false); err != nil {
		r.Sink.Fatal(d.Pos(), "%s", err)
	}
	return nil
}

// resolveExtendDecl implements `extend T { decl }`: the new const/func
// member is resolved directly into T's inner member table, under T's own
// normalized name as the static-address prefix (§4.4 "Extensions").
func (r *Resolver) resolveExtendDecl(d *ast.ExtendDecl, table *symbols.SymbolTable, prefix string) error {
	t := r.resolveTypeSpec(table, d.Target)
	if !t.IsStruct() {
		r.Sink.Fatal(d.Pos(), "extend target %s is not a struct type", t)
	}
	tbl := r.structTables[t]
	if tbl == nil {
		tbl = symbols.AsTable(t.MemberTable())
	}
	switch {
	case d.Const != nil:
		r.resolveGlobalConstDecl(d.Const, tbl, t.StructName())
	case d.Func != nil:
		r.declareFunc(d.Func, tbl, t.StructName())
	}
	return nil
}
