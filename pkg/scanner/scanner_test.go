package scanner

import (
	"testing"

	"github.com/kristofer/chef/pkg/token"
)

func scanAll(src string) []token.Token {
	s := New(src + "\x00")
	var out []token.Token
	for {
		tok := s.ScanToken()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){};,.+-*/!= == < <= > >=")
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Semicolon, token.Comma, token.Dot, token.Plus, token.Minus,
		token.Star, token.Slash, token.BangEqual, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScanTwoCharOperators(t *testing.T) {
	toks := scanAll("!= == <= >=")
	want := []token.Kind{token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll("ingredient flour recipe")
	want := []token.Kind{token.Var, token.Identifier, token.Fun, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
		}
	}
	if toks[1].Lexeme != "flour" {
		t.Errorf("expected identifier lexeme 'flour', got %q", toks[1].Lexeme)
	}
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll("42 3.14")
	if toks[0].Kind != token.Number || toks[0].Lexeme != "42" {
		t.Errorf("expected Number '42', got %v %q", toks[0].Kind, toks[0].Lexeme)
	}
	if toks[1].Kind != token.Number || toks[1].Lexeme != "3.14" {
		t.Errorf("expected Number '3.14', got %v %q", toks[1].Kind, toks[1].Lexeme)
	}
}

func TestScanString(t *testing.T) {
	toks := scanAll(`"soup base"`)
	if toks[0].Kind != token.String {
		t.Fatalf("expected String token, got %v", toks[0].Kind)
	}
	if toks[0].Lexeme != `"soup base"` {
		t.Errorf("expected lexeme to include quotes, got %q", toks[0].Lexeme)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(`"soup`)
	if toks[0].Kind != token.Error {
		t.Fatalf("expected Error token for unterminated string, got %v", toks[0].Kind)
	}
	if toks[0].Lexeme != "Unterminated string." {
		t.Errorf("unexpected message: %q", toks[0].Lexeme)
	}
}

func TestScanSkipsLineComments(t *testing.T) {
	toks := scanAll("1 // this is ignored\n2")
	if toks[0].Lexeme != "1" || toks[1].Lexeme != "2" {
		t.Fatalf("expected comment to be skipped, got %v", toks)
	}
}

func TestScanTracksLineNumbers(t *testing.T) {
	toks := scanAll("1\n2\n3")
	for i, want := range []int{1, 2, 3} {
		if toks[i].Line != want {
			t.Errorf("token %d: line = %d, want %d", i, toks[i].Line, want)
		}
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	if toks[0].Kind != token.Error || toks[0].Lexeme != "Unexpected character." {
		t.Fatalf("expected Unexpected character error, got %v %q", toks[0].Kind, toks[0].Lexeme)
	}
}
