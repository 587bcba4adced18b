package symbols

import (
	"testing"

	"github.com/sunder-lang/sunderc/internal/token"
	"github.com/sunder-lang/sunderc/internal/types"
)

func sym(name string, kind Kind) *Symbol {
	return &Symbol{Name: name, Kind: kind, Pos: token.Position{Path: "t.sunder", Line: 1, Column: 1}}
}

func TestLookupWalksParentChain(t *testing.T) {
	root := New(nil)
	if err := root.Insert(sym("x", KindVariable), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	child := New(root)
	if _, ok := child.LookupLocal("x"); ok {
		t.Fatalf("expected LookupLocal to not see parent's symbols")
	}
	if _, ok := child.Lookup("x"); !ok {
		t.Fatalf("expected Lookup to walk the parent chain")
	}
}

func TestInsertRejectsRedeclaration(t *testing.T) {
	root := New(nil)
	if err := root.Insert(sym("x", KindVariable), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := root.Insert(sym("x", KindVariable), false)
	if err == nil {
		t.Fatalf("expected redeclaration error")
	}
	if _, ok := err.(*Redeclared); !ok {
		t.Fatalf("expected *Redeclared, got %T", err)
	}
}

func TestShadowingInChildScopeIsAllowed(t *testing.T) {
	root := New(nil)
	root.Insert(sym("x", KindVariable), false)

	child := New(root)
	if err := child.Insert(sym("x", KindVariable), true); err != nil {
		t.Fatalf("expected child scope to shadow parent without error, got %v", err)
	}
	got, _ := child.Lookup("x")
	if got == nil {
		t.Fatalf("expected to find shadowed x")
	}
}

func TestFreezeRejectsFurtherInserts(t *testing.T) {
	root := New(nil)
	root.Freeze()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic inserting into a frozen table")
		}
	}()
	root.Insert(sym("x", KindVariable), false)
}

func TestMergeNamespaceUnionsChildren(t *testing.T) {
	a := New(nil)
	aNS := New(nil)
	aNS.Insert(sym("f", KindFunction), false)
	a.Insert(&Symbol{Name: "mod", Kind: KindNamespace, Namespace: aNS}, false)

	b := New(nil)
	bNS := New(nil)
	bNS.Insert(sym("g", KindFunction), false)
	b.Insert(&Symbol{Name: "mod", Kind: KindNamespace, Namespace: bNS}, false)

	if err := MergeNamespace(a, b); err != nil {
		t.Fatalf("unexpected merge error: %v", err)
	}

	modSym, _ := a.LookupLocal("mod")
	if _, ok := modSym.Namespace.LookupLocal("f"); !ok {
		t.Fatalf("expected merged namespace to still contain f")
	}
	if _, ok := modSym.Namespace.LookupLocal("g"); !ok {
		t.Fatalf("expected merged namespace to contain g from the import")
	}
}

func TestMergeNamespaceIsIdempotentForSameImport(t *testing.T) {
	a := New(nil)
	f := sym("f", KindFunction)
	a.Insert(f, false)

	// Re-importing the identical symbol (pointer-identical) must not
	// error even though the name already exists.
	b := New(nil)
	b.Insert(f, false)

	if err := MergeNamespace(a, b); err != nil {
		t.Fatalf("expected merging the same symbol twice to be idempotent, got %v", err)
	}
}

func TestMergeNamespaceRejectsConflictingDistinctSymbols(t *testing.T) {
	a := New(nil)
	a.Insert(sym("f", KindFunction), false)

	b := New(nil)
	b.Insert(sym("f", KindFunction), false) // distinct pointer, same name

	if err := MergeNamespace(a, b); err == nil {
		t.Fatalf("expected conflicting distinct symbols under the same name to error")
	}
}

func TestMemberTableRoundTrip(t *testing.T) {
	inner := New(nil)
	var mt types.MemberTable = inner
	if AsTable(mt) != inner {
		t.Fatalf("expected AsTable to recover the original *SymbolTable")
	}
}
