package lexer

import "testing"

func TestOperatorTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
		value    string
	}{
		{"+", PLUS, "+"},
		{"-", MINUS, "-"},
		{"*", STAR, "*"},
		{"/", SLASH, "/"},
		{"==", EQ, "=="},
		{"!=", NEQ, "!="},
		{"<", LT, "<"},
		{"<=", LE, "<="},
		{">", GT, ">"},
		{">=", GE, ">="},
		{"::", COLONCOLON, "::"},
		{".", DOT, "."},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expected || tok.Literal != tt.value {
			t.Errorf("%q: got (%v,%q), want (%v,%q)", tt.input, tok.Type, tok.Literal, tt.expected, tt.value)
		}
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"struct", KwStruct},
		{"packed", KwPacked},
		{"link", KwLink},
		{"as", KwAs},
		{"const", KwConst},
		{"ref", KwRef},
		{"if", KwIf},
		{"while", KwWhile},
		{"return", KwReturn},
		{"new", KwNew},
		{"delete", KwDelete},
		{"true", KwTrue},
		{"false", KwFalse},
		{"void", KwVoid},
		{"somename", IDENT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expected {
			t.Errorf("%q: got %v, want %v", tt.input, tok.Type, tt.expected)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
		literal  string
	}{
		{"42", INT, "42"},
		{"3.14f", FLOAT, "3.14f"},
		{"3.14", FLOAT, "3.14"},
		{"7f", FLOAT, "7f"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expected || tok.Literal != tt.literal {
			t.Errorf("%q: got (%v,%q), want (%v,%q)", tt.input, tok.Type, tok.Literal, tt.expected, tt.literal)
		}
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	l := New(`"hello world" 'x'`)
	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello world" {
		t.Errorf("got (%v,%q)", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != CHAR || tok.Literal != "x" {
		t.Errorf("got (%v,%q)", tok.Type, tok.Literal)
	}
}

func TestCommentsSkipped(t *testing.T) {
	l := New("// comment\n42 /* block\ncomment */ 7")
	tok := l.NextToken()
	if tok.Type != INT || tok.Literal != "42" {
		t.Errorf("got (%v,%q)", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != INT || tok.Literal != "7" {
		t.Errorf("got (%v,%q)", tok.Type, tok.Literal)
	}
}

func TestLineTracking(t *testing.T) {
	l := New("a\nb")
	tok := l.NextToken()
	if tok.Pos.Line != 1 {
		t.Errorf("first token line = %d, want 1", tok.Pos.Line)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 {
		t.Errorf("second token line = %d, want 2", tok.Pos.Line)
	}
}
