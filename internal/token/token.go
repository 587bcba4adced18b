// Package token defines source positions and lexical tokens shared by the
// lexer, parser, and diagnostics sink.
package token

import "fmt"

// Position locates a single point in a source file.
type Position struct {
	Path   string
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column)
}

// IsValid reports whether the position carries real source coordinates.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Type identifies the lexical category of a Token.
type Type int

const (
	ILLEGAL Type = iota
	EOF
	NEWLINE

	IDENT
	INTEGER // un-suffixed or suffixed integer literal, e.g. 123, 123u8 (a leading `-` is a separate MINUS token)
	BYTES   // "..." bytes literal
	CHAR    // 'x' character literal

	// Keywords
	KW_VAR
	KW_CONST
	KW_FUNC
	KW_STRUCT
	KW_EXTEND
	KW_ALIAS
	KW_EXTERN
	KW_NAMESPACE
	KW_IMPORT
	KW_IF
	KW_ELIF
	KW_ELSE
	KW_FOR
	KW_IN
	KW_RETURN
	KW_BREAK
	KW_CONTINUE
	KW_DEFER
	KW_TRUE
	KW_FALSE
	KW_AND
	KW_OR
	KW_SIZEOF
	KW_ALIGNOF
	KW_TYPEOF
	KW_COUNTOF
	KW_SYSCALL
	KW_CAST
	KW_ANY
	KW_VOID
	KW_BOOL
	KW_BYTE

	// Punctuation / operators
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	LTEMPLATE // [[
	RTEMPLATE // ]]
	COMMA
	SEMICOLON
	COLON
	COLONCOLON
	DOT
	DOTDOT // .. (ellipsis-as-range not used; reserved)
	ELLIPSIS
	ARROW
	ASSIGN
	STAR
	AMP
	PIPE
	CARET
	TILDE
	BANG
	PLUS
	MINUS
	SLASH
	PERCENT
	EQ
	NE
	LT
	LE
	GT
	GE
)

var keywords = map[string]Type{
	"var":       KW_VAR,
	"const":     KW_CONST,
	"func":      KW_FUNC,
	"struct":    KW_STRUCT,
	"extend":    KW_EXTEND,
	"alias":     KW_ALIAS,
	"extern":    KW_EXTERN,
	"namespace": KW_NAMESPACE,
	"import":    KW_IMPORT,
	"if":        KW_IF,
	"elif":      KW_ELIF,
	"else":      KW_ELSE,
	"for":       KW_FOR,
	"in":        KW_IN,
	"return":    KW_RETURN,
	"break":     KW_BREAK,
	"continue":  KW_CONTINUE,
	"defer":     KW_DEFER,
	"true":      KW_TRUE,
	"false":     KW_FALSE,
	"and":       KW_AND,
	"or":        KW_OR,
	"sizeof":    KW_SIZEOF,
	"alignof":   KW_ALIGNOF,
	"typeof":    KW_TYPEOF,
	"countof":   KW_COUNTOF,
	"syscall":   KW_SYSCALL,
	"cast":      KW_CAST,
	"any":       KW_ANY,
	"void":      KW_VOID,
	"bool":      KW_BOOL,
	"byte":      KW_BYTE,
}

// LookupIdent classifies ident as a keyword Type, or IDENT if it is not one.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// Token is a single lexical unit, with enough information for both parsing
// and source-located diagnostics.
type Token struct {
	Type   Type
	Lexeme string
	Pos    Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Lexeme, t.Pos)
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

var typeNames = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", NEWLINE: "NEWLINE",
	IDENT: "IDENT", INTEGER: "INTEGER", BYTES: "BYTES", CHAR: "CHAR",
	KW_VAR: "var", KW_CONST: "const", KW_FUNC: "func", KW_STRUCT: "struct",
	KW_EXTEND: "extend", KW_ALIAS: "alias", KW_EXTERN: "extern",
	KW_NAMESPACE: "namespace", KW_IMPORT: "import", KW_IF: "if", KW_ELIF: "elif",
	KW_ELSE: "else", KW_FOR: "for", KW_IN: "in", KW_RETURN: "return",
	KW_BREAK: "break", KW_CONTINUE: "continue", KW_DEFER: "defer",
	KW_TRUE: "true", KW_FALSE: "false", KW_AND: "and", KW_OR: "or",
	KW_SIZEOF: "sizeof", KW_ALIGNOF: "alignof", KW_TYPEOF: "typeof",
	KW_COUNTOF: "countof", KW_SYSCALL: "syscall", KW_CAST: "cast",
	KW_ANY: "any", KW_VOID: "void", KW_BOOL: "bool", KW_BYTE: "byte",
	LPAREN: "(", RPAREN: ")", LBRACE: "{", RBRACE: "}",
	LBRACKET: "[", RBRACKET: "]", LTEMPLATE: "[[", RTEMPLATE: "]]",
	COMMA: ",", SEMICOLON: ";", COLON: ":", COLONCOLON: "::", DOT: ".",
	DOTDOT: "..", ELLIPSIS: "...", ARROW: "->", ASSIGN: "=",
	STAR: "*", AMP: "&", PIPE: "|", CARET: "^", TILDE: "~", BANG: "!",
	PLUS: "+", MINUS: "-", SLASH: "/", PERCENT: "%",
	EQ: "==", NE: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
}
