package parser

import (
	"testing"

	"github.com/sunder-lang/sunderc/internal/ast"
)

func TestParseProgramNamespaceImportsAndDecls(t *testing.T) {
	src := `
namespace demo;
import "std/mem";
const FLAG: bool = true;
var counter: u32 = 0;
func add(a: u32, b: u32) u32 {
	return a + b;
}
`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(prog.Namespace) != 1 || prog.Namespace[0] != "demo" {
		t.Fatalf("unexpected namespace: %v", prog.Namespace)
	}
	if len(prog.Imports) != 1 || prog.Imports[0].Path != "std/mem" {
		t.Fatalf("unexpected imports: %v", prog.Imports)
	}
	if len(prog.Declarations) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(prog.Declarations))
	}
	if _, ok := prog.Declarations[0].(*ast.ConstDecl); !ok {
		t.Errorf("decl 0: expected *ast.ConstDecl, got %T", prog.Declarations[0])
	}
	if _, ok := prog.Declarations[1].(*ast.VarDecl); !ok {
		t.Errorf("decl 1: expected *ast.VarDecl, got %T", prog.Declarations[1])
	}
	fn, ok := prog.Declarations[2].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("decl 2: expected *ast.FuncDecl, got %T", prog.Declarations[2])
	}
	if len(fn.Params) != 2 {
		t.Errorf("expected 2 params, got %d", len(fn.Params))
	}
	if len(fn.Body.Stmts) != 1 {
		t.Errorf("expected 1 body statement, got %d", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fn.Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", ret.Value)
	}
	if bin.Op != ast.BinAdd {
		t.Errorf("expected BinAdd, got %v", bin.Op)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	// `1 + 2 * 3` should parse as `1 + (2 * 3)`.
	src := `func f() u64 { return 1 + 2 * 3; }`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	fn := prog.Declarations[0].(*ast.FuncDecl)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected top-level *ast.BinaryExpr, got %T", ret.Value)
	}
	if top.Op != ast.BinAdd {
		t.Fatalf("expected top-level BinAdd, got %v", top.Op)
	}
	if _, ok := top.Left.(*ast.IntegerLit); !ok {
		t.Errorf("expected left operand IntegerLit, got %T", top.Left)
	}
	rhs, ok := top.Right.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected right operand *ast.BinaryExpr, got %T", top.Right)
	}
	if rhs.Op != ast.BinMul {
		t.Errorf("expected nested BinMul, got %v", rhs.Op)
	}
}

func TestParseCastArrayAndStructLiterals(t *testing.T) {
	src := `
struct point {
	var x: u32;
	var y: u32;
}
func f() void {
	var a: [3]u32 = (:[3]u32)[1, 2, 3];
	var p: point = (:point){.x = 1, .y = 2};
	var n: u32 = (:u32)7s64;
}
`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(prog.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(prog.Declarations))
	}
	fn := prog.Declarations[1].(*ast.FuncDecl)
	if len(fn.Body.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body.Stmts))
	}

	arrDecl := fn.Body.Stmts[0].(*ast.VarDecl)
	arr, ok := arrDecl.Init.(*ast.ArrayLit)
	if !ok {
		t.Fatalf("expected *ast.ArrayLit, got %T", arrDecl.Init)
	}
	if len(arr.Elements) != 3 {
		t.Errorf("expected 3 array elements, got %d", len(arr.Elements))
	}

	structDecl := fn.Body.Stmts[1].(*ast.VarDecl)
	lit, ok := structDecl.Init.(*ast.StructLit)
	if !ok {
		t.Fatalf("expected *ast.StructLit, got %T", structDecl.Init)
	}
	if len(lit.Fields) != 2 || lit.Fields[0].Name.Name != "x" || lit.Fields[1].Name.Name != "y" {
		t.Errorf("unexpected struct literal fields: %+v", lit.Fields)
	}

	castDecl := fn.Body.Stmts[2].(*ast.VarDecl)
	cast, ok := castDecl.Init.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected *ast.CastExpr, got %T", castDecl.Init)
	}
	if _, ok := cast.Value.(*ast.IntegerLit); !ok {
		t.Errorf("expected cast value IntegerLit, got %T", cast.Value)
	}
}

func TestParseForRangeAndForExpr(t *testing.T) {
	src := `
func f() void {
	for i in 0:10 {
		continue;
	}
	for true {
		break;
	}
}
`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	fn := prog.Declarations[0].(*ast.FuncDecl)
	if len(fn.Body.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body.Stmts))
	}
	rng, ok := fn.Body.Stmts[0].(*ast.ForRangeStmt)
	if !ok {
		t.Fatalf("expected *ast.ForRangeStmt, got %T", fn.Body.Stmts[0])
	}
	if rng.Var.Name != "i" {
		t.Errorf("expected range var i, got %s", rng.Var.Name)
	}
	if _, ok := fn.Body.Stmts[1].(*ast.ForExprStmt); !ok {
		t.Fatalf("expected *ast.ForExprStmt, got %T", fn.Body.Stmts[1])
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := `
func f() void {
	if true {
	} elif false {
	} else {
	}
}
`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	fn := prog.Declarations[0].(*ast.FuncDecl)
	ifStmt, ok := fn.Body.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", fn.Body.Stmts[0])
	}
	if len(ifStmt.Branches) != 3 {
		t.Fatalf("expected 3 branches, got %d", len(ifStmt.Branches))
	}
	if ifStmt.Branches[2].Cond != nil {
		t.Errorf("expected nil cond on else branch")
	}
}

func TestParseMemberAccessIndexAndCall(t *testing.T) {
	src := `
func f() void {
	var x: u32 = a.b[1](2, 3).c;
}
`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	fn := prog.Declarations[0].(*ast.FuncDecl)
	decl := fn.Body.Stmts[0].(*ast.VarDecl)
	outer, ok := decl.Init.(*ast.MemberAccessExpr)
	if !ok {
		t.Fatalf("expected outer *ast.MemberAccessExpr, got %T", decl.Init)
	}
	if outer.Name.Name != "c" {
		t.Errorf("expected outer member c, got %s", outer.Name.Name)
	}
	call, ok := outer.Base.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected *ast.CallExpr, got %T", outer.Base)
	}
	if len(call.Args) != 2 {
		t.Errorf("expected 2 call args, got %d", len(call.Args))
	}
	if _, ok := call.Callee.(*ast.IndexExpr); !ok {
		t.Errorf("expected callee *ast.IndexExpr, got %T", call.Callee)
	}
}

func TestParseUnaryAndDeref(t *testing.T) {
	src := `
func f() void {
	var x: u32 = ~(-a);
	var y: *u32 = &x;
	var z: u32 = *y;
}
`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	fn := prog.Declarations[0].(*ast.FuncDecl)

	xDecl := fn.Body.Stmts[0].(*ast.VarDecl)
	not, ok := xDecl.Init.(*ast.UnaryExpr)
	if !ok || not.Op != ast.UnaryBitNot {
		t.Fatalf("expected UnaryBitNot, got %#v", xDecl.Init)
	}
	neg, ok := not.Value.(*ast.UnaryExpr)
	if !ok || neg.Op != ast.UnaryNeg {
		t.Fatalf("expected nested UnaryNeg, got %#v", not.Value)
	}

	yDecl := fn.Body.Stmts[1].(*ast.VarDecl)
	addr, ok := yDecl.Init.(*ast.UnaryExpr)
	if !ok || addr.Op != ast.UnaryAddr {
		t.Fatalf("expected UnaryAddr, got %#v", yDecl.Init)
	}

	zDecl := fn.Body.Stmts[2].(*ast.VarDecl)
	if _, ok := zDecl.Init.(*ast.DerefExpr); !ok {
		t.Fatalf("expected *ast.DerefExpr, got %T", zDecl.Init)
	}
}

func TestParseSizeofAlignofCountofSyscall(t *testing.T) {
	src := `
func f() void {
	var a: u64 = sizeof(u32);
	var b: u64 = alignof(u32);
	var c: u64 = countof(a);
	var d: u64 = syscall(1, 2, 3);
}
`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	fn := prog.Declarations[0].(*ast.FuncDecl)

	if _, ok := fn.Body.Stmts[0].(*ast.VarDecl).Init.(*ast.SizeofExpr); !ok {
		t.Errorf("expected *ast.SizeofExpr")
	}
	if _, ok := fn.Body.Stmts[1].(*ast.VarDecl).Init.(*ast.AlignofExpr); !ok {
		t.Errorf("expected *ast.AlignofExpr")
	}
	countof, ok := fn.Body.Stmts[2].(*ast.VarDecl).Init.(*ast.UnaryExpr)
	if !ok || countof.Op != ast.UnaryCountof {
		t.Errorf("expected UnaryCountof, got %#v", fn.Body.Stmts[2].(*ast.VarDecl).Init)
	}
	sc, ok := fn.Body.Stmts[3].(*ast.VarDecl).Init.(*ast.SyscallExpr)
	if !ok {
		t.Fatalf("expected *ast.SyscallExpr, got %T", fn.Body.Stmts[3].(*ast.VarDecl).Init)
	}
	if len(sc.Args) != 3 {
		t.Errorf("expected 3 syscall args, got %d", len(sc.Args))
	}
}

func TestParseTemplateFuncAndStruct(t *testing.T) {
	src := `
struct box[[T]] {
	var value: T;
}
func identity[[T]](x: T) T {
	return x;
}
`
	prog, err := ParseProgram("t.sunder", src)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	sd := prog.Declarations[0].(*ast.StructDecl)
	if len(sd.TemplateParams) != 1 || sd.TemplateParams[0].Name != "T" {
		t.Errorf("unexpected struct template params: %+v", sd.TemplateParams)
	}
	fd := prog.Declarations[1].(*ast.FuncDecl)
	if !fd.IsTemplate() || fd.TemplateParams[0].Name != "T" {
		t.Errorf("unexpected func template params: %+v", fd.TemplateParams)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := ParseProgram("t.sunder", `const x u32 = 1;`)
	if err == nil {
		t.Fatal("expected a parse error for missing ':'")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *parser.Error, got %T", err)
	}
	if perr.Pos.Line == 0 {
		t.Errorf("expected a populated line number, got %+v", perr.Pos)
	}
}
