package lexer

import (
	"testing"

	"github.com/dazzle-lang/dazzle/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, got []token.Token, want []token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("token count mismatch: got %v want %v", gk, want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token %d: got %s want %s (full: %v)", i, gk[i], want[i], gk)
		}
	}
}

func TestLexSimpleEntity(t *testing.T) {
	src := `entity Invoice:
    field total: decimal(10,2)
`
	toks, errs := Lex([]byte(src), "t.dzl")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, toks, []token.Kind{
		token.KW_ENTITY, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT,
		token.KW_FIELD, token.IDENT, token.COLON, token.IDENT,
		token.LPAREN, token.NUMBER, token.COMMA, token.NUMBER, token.RPAREN,
		token.NEWLINE,
		token.DEDENT, token.EOF,
	})
}

func TestLexBlankAndCommentLinesDoNotAffectIndent(t *testing.T) {
	src := "entity A:\n" +
		"    field x: str(10)\n" +
		"\n" +
		"    # a comment\n" +
		"    field y: int\n"
	toks, errs := Lex([]byte(src), "t.dzl")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// Expect exactly one INDENT (not one per field) and one DEDENT at EOF.
	indentCount, dedentCount := 0, 0
	for _, tk := range toks {
		if tk.Kind == token.INDENT {
			indentCount++
		}
		if tk.Kind == token.DEDENT {
			dedentCount++
		}
	}
	if indentCount != 1 || dedentCount != 1 {
		t.Fatalf("indent=%d dedent=%d, want 1 and 1 (blank/comment lines must not alter indent stack)", indentCount, dedentCount)
	}
}

func TestLexTabRejected(t *testing.T) {
	src := "entity A:\n\tfield x: int\n"
	_, errs := Lex([]byte(src), "t.dzl")
	if len(errs) == 0 {
		t.Fatalf("expected an error for tab indentation")
	}
}

func TestLexInconsistentDedent(t *testing.T) {
	src := "entity A:\n" +
		"    field x: int\n" +
		"  field y: int\n"
	_, errs := Lex([]byte(src), "t.dzl")
	if len(errs) == 0 {
		t.Fatalf("expected an inconsistent dedent error")
	}
}

func TestLexUnterminatedString(t *testing.T) {
	src := "entity A:\n    field x: str(10) = \"oops\n"
	_, errs := Lex([]byte(src), "t.dzl")
	if len(errs) == 0 {
		t.Fatalf("expected unterminated string error")
	}
}

func TestLexStringEscapes(t *testing.T) {
	src := `field x = "a\nb\tc\"d"` + "\n"
	toks, errs := Lex([]byte(src), "t.dzl")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var str token.Token
	for _, tk := range toks {
		if tk.Kind == token.STRING {
			str = tk
		}
	}
	if str.StrValue != "a\nb\tc\"d" {
		t.Fatalf("got %q", str.StrValue)
	}
}

func TestLexArrowVsMinus(t *testing.T) {
	src := "draft -> published\nx - 1\n"
	toks, errs := Lex([]byte(src), "t.dzl")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, toks, []token.Kind{
		token.IDENT, token.ARROW, token.IDENT, token.NEWLINE,
		token.IDENT, token.MINUS, token.NUMBER, token.NEWLINE,
		token.EOF,
	})
}

func TestLexComparisonOperators(t *testing.T) {
	src := "a != b and a <= b and a >= b\n"
	toks, errs := Lex([]byte(src), "t.dzl")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, toks, []token.Kind{
		token.IDENT, token.NOT_EQ, token.IDENT, token.KW_AND,
		token.IDENT, token.LTE, token.IDENT, token.KW_AND,
		token.IDENT, token.GTE, token.IDENT, token.NEWLINE,
		token.EOF,
	})
}

func TestLexNestedDedentMultipleLevels(t *testing.T) {
	src := "entity A:\n" +
		"    surface S:\n" +
		"        field x: int\n" +
		"    field y: int\n"
	toks, errs := Lex([]byte(src), "t.dzl")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertKinds(t, toks, []token.Kind{
		token.KW_ENTITY, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT,
		token.KW_SURFACE, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT,
		token.KW_FIELD, token.IDENT, token.COLON, token.IDENT, token.NEWLINE,
		token.DEDENT,
		token.KW_FIELD, token.IDENT, token.COLON, token.IDENT, token.NEWLINE,
		token.DEDENT,
		token.EOF,
	})
}

func TestLexUnexpectedChar(t *testing.T) {
	src := "field x = a @ b\n"
	_, errs := Lex([]byte(src), "t.dzl")
	if len(errs) == 0 {
		t.Fatalf("expected unexpected-character error")
	}
}
