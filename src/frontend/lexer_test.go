package frontend

import (
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
)

// lexAll tokenizes src with the SysY stateful lexer and returns the
// surface token values, Whitespace/Comment elided exactly as the parser
// elides them (see sysyParser's participle.Elide option).
func lexAll(t *testing.T, src string) []string {
	t.Helper()
	l, err := sysyLexer.Lex("test.sy", strings.NewReader(src))
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	syms := sysyLexer.Symbols()
	names := make(map[lexer.TokenType]string, len(syms))
	for name, tt := range syms {
		names[tt] = name
	}

	var out []string
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("lex: %v", err)
		}
		if tok.EOF() {
			break
		}
		switch names[tok.Type] {
		case "Whitespace", "Comment":
			continue
		}
		out = append(out, tok.Value)
	}
	return out
}

// TestLexerTokensMatchSource checks the stateful lexer's token stream for a
// handful of SysY constructs against spec §6.2's EBNF token set.
func TestLexerTokensMatchSource(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"decl", "int a = 1;", []string{"int", "a", "=", "1", ";"}},
		{"array index", "a[1][2] = b;", []string{"a", "[", "1", "]", "[", "2", "]", "=", "b", ";"}},
		{"comparison ops", "a <= b && c != d;", []string{"a", "<=", "b", "&&", "c", "!=", "d", ";"}},
		{"line comment skipped", "int a; // trailing\nint b;", []string{"int", "a", ";", "int", "b", ";"}},
		{"block comment skipped", "int /* x */ a;", []string{"int", "a", ";"}},
		{"hex literal", "int a = 0x1F;", []string{"int", "a", "=", "0x1F", ";"}},
		{"octal literal", "int a = 017;", []string{"int", "a", "=", "017", ";"}},
		{"unary not", "return !a;", []string{"return", "!", "a", ";"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := lexAll(t, tc.src)
			if len(got) != len(tc.want) {
				t.Fatalf("token count mismatch: got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("token %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

// TestParseSyntaxError checks that a malformed program surfaces as a
// ParseFailure-kind CompileError (spec §7), not a bare participle error.
func TestParseSyntaxError(t *testing.T) {
	_, err := Parse("bad.sy", "int main( { return 0; }")
	if err == nil {
		t.Fatal("expected a parse error, got nil")
	}
	ce, ok := err.(*CompileError)
	if !ok {
		t.Fatalf("expected *CompileError, got %T", err)
	}
	if ce.Kind != ParseFailure {
		t.Errorf("expected ParseFailure, got %s", ce.Kind)
	}
}
