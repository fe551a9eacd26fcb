package lexer

import "testing"

func TestTokenizeBasic(t *testing.T) {
	input := `law M: start_date:2025-01-01 at 00:00 period:1.0 Event: A:"x" GROUP:(A 1.0^0) end_law`
	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantKinds := []TokenKind{
		Keyword, Identifier, Colon,
		Keyword, Colon, Date, Keyword, Time,
		Keyword, Colon, DottedNumber,
		Keyword, Colon, Identifier, Colon, String,
		Keyword, Colon, LParen, Identifier, DottedNumber, Caret, Number, RParen,
		Keyword, EOF,
	}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(wantKinds), toks)
	}
	for i, want := range wantKinds {
		if toks[i].Kind != want {
			t.Errorf("token %d: kind = %v, want %v (%v)", i, toks[i].Kind, want, toks[i])
		}
	}
}

func TestTokenizeNegativePoint(t *testing.T) {
	toks, err := Tokenize(`-1.30`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != DottedNumber || toks[0].Lexeme != "-1.30" {
		t.Errorf("got %v, want DottedNumber -1.30", toks[0])
	}
}

func TestTokenizeGroupDash(t *testing.T) {
	toks, err := Tokenize(`A 30^0 - B 45^15`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var foundDash bool
	for _, tok := range toks {
		if tok.Kind == Dash {
			foundDash = true
		}
	}
	if !foundDash {
		t.Errorf("expected a Dash token separating group terms, got %v", toks)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	if err == nil {
		t.Fatal("expected an error for an unterminated string literal")
	}
}

func TestUnexpectedChar(t *testing.T) {
	_, err := Tokenize(`@`)
	if err == nil {
		t.Fatal("expected an error for an unexpected character")
	}
}

func TestCommentsSkipped(t *testing.T) {
	toks, err := Tokenize("# a comment\nA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != Identifier || toks[0].Lexeme != "A" {
		t.Errorf("got %v, want Identifier A", toks[0])
	}
}
