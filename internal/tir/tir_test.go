package tir

import (
	"math/big"
	"testing"

	"github.com/sunder-lang/sunderc/internal/symbols"
	"github.com/sunder-lang/sunderc/internal/token"
	"github.com/sunder-lang/sunderc/internal/types"
)

func TestIntegerLitCarriesType(t *testing.T) {
	r := types.NewRegistry()
	s32 := r.IntegerType("s32")
	pos := token.Position{Path: "a.sunder", Line: 1, Column: 1}

	lit := NewIntegerLit(pos, s32, big.NewInt(7))
	if lit.Type() != s32 {
		t.Fatalf("expected literal's Type() to be the interned s32 pointer")
	}
	if lit.Value.Int64() != 7 {
		t.Fatalf("expected value 7, got %s", lit.Value)
	}
}

func TestBlockOwnsItsSymbolTable(t *testing.T) {
	root := symbols.New(nil)
	inner := symbols.New(root)
	pos := token.Position{Path: "a.sunder", Line: 2, Column: 1}

	b := NewBlock(pos, inner, nil)
	if b.Table != inner {
		t.Fatalf("expected block to retain its own symbol table")
	}
	if b.Table.Parent() != root {
		t.Fatalf("expected block's table to chain to the enclosing scope")
	}
}

func TestDeferChainLinksInOrder(t *testing.T) {
	pos := token.Position{Path: "a.sunder", Line: 3, Column: 1}
	first := &DeferLink{Stmt: NewExprStmt(pos, nil)}
	second := &DeferLink{Stmt: NewExprStmt(pos, nil), Next: first}

	ret := NewReturn(pos, nil, second)
	if ret.DeferHead.Next != first {
		t.Fatalf("expected defer chain head to link back to the first deferred statement")
	}
}
