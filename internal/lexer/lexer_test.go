package lexer

import (
	"testing"

	"github.com/sunder-lang/sunderc/internal/token"
)

func tokenTypes(src string) []token.Type {
	l := New("t.sunder", src)
	var got []token.Type
	for {
		tok := l.NextToken()
		got = append(got, tok.Type)
		if tok.Type == token.EOF {
			return got
		}
	}
}

func TestLexerKeywordsAndPunctuation(t *testing.T) {
	src := `const x: u8 = 1;`
	want := []token.Type{
		token.KW_CONST, token.IDENT, token.COLON, token.IDENT,
		token.ASSIGN, token.INTEGER, token.SEMICOLON, token.EOF,
	}
	got := tokenTypes(src)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexerMultiCharOperators(t *testing.T) {
	src := `:: [[ ]] ... -> == != <= >=`
	want := []token.Type{
		token.COLONCOLON, token.LTEMPLATE, token.RTEMPLATE, token.ELLIPSIS,
		token.ARROW, token.EQ, token.NE, token.LE, token.GE, token.EOF,
	}
	got := tokenTypes(src)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexerIntegerSuffixes(t *testing.T) {
	cases := []struct {
		src, lexeme string
	}{
		{"123", "123"},
		{"123u8", "123u8"},
		{"0s32", "0s32"},
		{"255y", "255y"},
	}
	for _, c := range cases {
		l := New("t.sunder", c.src)
		tok := l.NextToken()
		if tok.Type != token.INTEGER {
			t.Fatalf("%q: got type %s, want INTEGER", c.src, tok.Type)
		}
		if tok.Lexeme != c.lexeme {
			t.Errorf("%q: got lexeme %q, want %q", c.src, tok.Lexeme, c.lexeme)
		}
	}
}

func TestIntegerValueSplitsSuffix(t *testing.T) {
	n, suffix := IntegerValue("123u8")
	if suffix != "u8" || n.Int64() != 123 {
		t.Errorf("got (%s, %q), want (123, \"u8\")", n, suffix)
	}
	n, suffix = IntegerValue("42")
	if suffix != "" || n.Int64() != 42 {
		t.Errorf("got (%s, %q), want (42, \"\")", n, suffix)
	}
}

func TestLexerBytesLiteralUnescapes(t *testing.T) {
	l := New("t.sunder", `"hi\n"`)
	tok := l.NextToken()
	if tok.Type != token.BYTES {
		t.Fatalf("got type %s, want BYTES", tok.Type)
	}
	if tok.Lexeme != "hi\n" {
		t.Errorf("got %q, want %q", tok.Lexeme, "hi\n")
	}
}

func TestLexerSkipsLineComments(t *testing.T) {
	src := "const x = 1; // trailing comment\nconst y = 2;"
	got := tokenTypes(src)
	count := 0
	for _, tt := range got {
		if tt == token.KW_CONST {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 const keywords across the comment, got %d", count)
	}
}
