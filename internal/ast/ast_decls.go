package ast

import "github.com/sunder-lang/sunderc/internal/token"

// VarDecl is `var name: T = init;` (TypeSpec may be nil; Init may be nil
// for `extern`-like forward declarations, which are represented as
// VarDecl with IsExtern set and Init nil).
type VarDecl struct {
	Token    token.Token
	Name     *Identifier
	TypeSpec TypeSpec // optional
	Init     Expr     // optional when IsExtern
	IsExtern bool
}

func (v *VarDecl) Pos() token.Position { return v.Token.Pos }
func (*VarDecl) declNode()             {}
func (*VarDecl) stmtNode()             {}

// ConstDecl is `const name: T = init;`.
type ConstDecl struct {
	Token    token.Token
	Name     *Identifier
	TypeSpec TypeSpec // optional
	Init     Expr
}

func (c *ConstDecl) Pos() token.Position { return c.Token.Pos }
func (*ConstDecl) declNode()             {}
func (*ConstDecl) stmtNode()             {}

// Param is a single function parameter.
type Param struct {
	Token    token.Token
	Name     *Identifier
	TypeSpec TypeSpec
}

func (p *Param) Pos() token.Position { return p.Token.Pos }

// TemplateParam is a single `[[T]]` template parameter name.
type TemplateParam struct {
	Token token.Token
	Name  string
}

// FuncDecl is `func name(params) R { body }`, optionally templated.
type FuncDecl struct {
	Token          token.Token
	Name           *Identifier
	TemplateParams []TemplateParam // empty unless this is a template
	Params         []*Param
	Return         TypeSpec // nil means void
	Body           *Block   // nil for `extern func` declarations
	IsExtern       bool
}

func (f *FuncDecl) Pos() token.Position { return f.Token.Pos }
func (*FuncDecl) declNode()             {}
func (f *FuncDecl) IsTemplate() bool    { return len(f.TemplateParams) > 0 }

// StructMember is a struct body element: a variable member, or a nested
// constant/function declaration.
type StructMember struct {
	Var   *StructVarMember
	Const *ConstDecl
	Func  *FuncDecl
}

// StructVarMember is `var name: T;` inside a struct body.
type StructVarMember struct {
	Token    token.Token
	Name     *Identifier
	TypeSpec TypeSpec
}

// StructDecl is `struct name { members }`, optionally templated.
type StructDecl struct {
	Token          token.Token
	Name           *Identifier
	TemplateParams []TemplateParam
	Members        []StructMember
}

func (s *StructDecl) Pos() token.Position { return s.Token.Pos }
func (*StructDecl) declNode()             {}
func (s *StructDecl) IsTemplate() bool    { return len(s.TemplateParams) > 0 }

// AliasDecl is `alias Name = T;`.
type AliasDecl struct {
	Token    token.Token
	Name     *Identifier
	TypeSpec TypeSpec
}

func (a *AliasDecl) Pos() token.Position { return a.Token.Pos }
func (*AliasDecl) declNode()             {}

// ExtendDecl is `extend T { decl }` adding one constant or function member
// to an existing type.
type ExtendDecl struct {
	Token    token.Token
	Target   TypeSpec
	Const    *ConstDecl
	Func     *FuncDecl
}

func (e *ExtendDecl) Pos() token.Position { return e.Token.Pos }
func (*ExtendDecl) declNode()             {}

// NamespaceDecl is the `namespace a::b::c;` prelude statement.
type NamespaceDecl struct {
	Token token.Token
	Parts []string
}

func (n *NamespaceDecl) Pos() token.Position { return n.Token.Pos }
func (*NamespaceDecl) declNode()             {}
