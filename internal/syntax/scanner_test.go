package syntax

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
)

// scanAll scans src and collects every lexical error as "line:col: msg".
func scanAll(t *testing.T, src string) ([]Token, []string) {
	t.Helper()
	var errs []string
	toks := Scan(src, func(line, col int, msg string) {
		errs = append(errs, fmt.Sprintf("%d:%d: %s", line, col, msg))
	})
	return toks, errs
}

func kindsOf(toks []Token) []Kind {
	kinds := make([]Kind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []Kind
	}{
		{"empty", "", []Kind{_EOF}},
		{"spaces", " \t\r\n ", []Kind{_EOF}},
		{"punct", "(){},.-+;*", []Kind{_Lparen, _Rparen, _Lbrace, _Rbrace, _Comma, _Dot, _Minus, _Plus, _Semi, _Star, _EOF}},
		{"slash", "/", []Kind{_Slash, _EOF}},
		{"one_or_two", "! != = == > >= < <=", []Kind{_Bang, _BangEqual, _Equal, _EqualEqual, _Greater, _GreaterEqual, _Less, _LessEqual, _EOF}},
		{"no_space_ops", "!==", []Kind{_BangEqual, _Equal, _EOF}},
		{"ident", "foo _bar baz9", []Kind{_Identifier, _Identifier, _Identifier, _EOF}},
		{"keywords", "and class else false fun for if nil or print return super this true var while",
			[]Kind{_And, _Class, _Else, _False, _Fun, _For, _If, _Nil, _Or, _Print, _Return, _Super, _This, _True, _Var, _While, _EOF}},
		{"keyword_prefix", "orchid classy", []Kind{_Identifier, _Identifier, _EOF}},
		{"number", "123 4.5", []Kind{_Number, _Number, _EOF}},
		{"trailing_dot", "1.", []Kind{_Number, _Dot, _EOF}},
		{"leading_dot", ".5", []Kind{_Dot, _Number, _EOF}},
		{"method_on_number", "1.foo", []Kind{_Number, _Dot, _Identifier, _EOF}},
		{"string", `"hi"`, []Kind{_String, _EOF}},
		{"comment", "// nothing here", []Kind{_EOF}},
		{"comment_after_code", "x // trailing\ny", []Kind{_Identifier, _Identifier, _EOF}},
		{"expression", "1 + 2 * 3", []Kind{_Number, _Plus, _Number, _Star, _Number, _EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, errs := scanAll(t, tt.src)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			got := kindsOf(toks)
			if fmt.Sprint(got) != fmt.Sprint(tt.kinds) {
				t.Errorf("kinds = %v, want %v", got, tt.kinds)
			}
		})
	}
}

func TestScanLiterals(t *testing.T) {
	tests := []struct {
		src    string
		lexeme string
		lit    any
	}{
		{"123", "123", 123.0},
		{"0", "0", 0.0},
		{"3.14", "3.14", 3.14},
		{"007", "007", 7.0},
		{"1" + strings.Repeat("0", 400), "1" + strings.Repeat("0", 400), math.Inf(1)},
		{`"hello"`, `"hello"`, "hello"},
		{`""`, `""`, ""},
		{"\"a\nb\"", "\"a\nb\"", "a\nb"},
		{`"no \n escapes"`, `"no \n escapes"`, `no \n escapes`},
	}

	for _, tt := range tests {
		toks, errs := scanAll(t, tt.src)
		if len(errs) > 0 {
			t.Fatalf("%q: unexpected errors: %v", tt.src, errs)
		}
		tok := toks[0]
		if tok.Lexeme != tt.lexeme {
			t.Errorf("%q: lexeme = %q, want %q", tt.src, tok.Lexeme, tt.lexeme)
		}
		if tok.Literal != tt.lit {
			t.Errorf("%q: literal = %#v, want %#v", tt.src, tok.Literal, tt.lit)
		}
	}
}

func TestScanNoLiteralForOthers(t *testing.T) {
	toks, _ := scanAll(t, "x + true nil")
	for _, tok := range toks {
		if tok.Literal != nil {
			t.Errorf("%s: literal = %#v, want nil", tok.Kind, tok.Literal)
		}
	}
}

func TestScanTokenDump(t *testing.T) {
	toks, _ := scanAll(t, "1 + 2 * 3")
	want := []string{
		"NUMBER 1 1",
		"PLUS + null",
		"NUMBER 2 2",
		"STAR * null",
		"NUMBER 3 3",
		"EOF  null",
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tok := range toks {
		if got := tok.String(); got != want[i] {
			t.Errorf("token %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestScanLines(t *testing.T) {
	src := heredoc.Doc(`
		var a = "one
		two";
		// comment
		print a;
	`)
	toks, errs := scanAll(t, src)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	want := []struct {
		kind Kind
		line int
	}{
		{_Var, 1}, {_Identifier, 1}, {_Equal, 1},
		{_String, 1}, // a multi-line string keeps its starting line
		{_Semi, 2},
		{_Print, 4}, {_Identifier, 4}, {_Semi, 4},
		{_EOF, 5},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens (%v), want %d", len(toks), kindsOf(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Line != w.line {
			t.Errorf("token %d = %s@%d, want %s@%d", i, toks[i].Kind, toks[i].Line, w.kind, w.line)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []Kind
		errs  []string
	}{
		{
			name:  "unexpected_char",
			src:   "@",
			kinds: []Kind{_EOF},
			errs:  []string{"1:1: Unexpected character."},
		},
		{
			name:  "scan_continues",
			src:   "1 # 2",
			kinds: []Kind{_Number, _Number, _EOF},
			errs:  []string{"1:3: Unexpected character."},
		},
		{
			name:  "several",
			src:   "$\n^x",
			kinds: []Kind{_Identifier, _EOF},
			errs:  []string{"1:1: Unexpected character.", "2:1: Unexpected character."},
		},
		{
			name:  "unterminated_string",
			src:   "print \"abc",
			kinds: []Kind{_Print, _EOF},
			errs:  []string{"1:7: Unterminated string."},
		},
		{
			name:  "unterminated_multiline",
			src:   "\"abc\n\ndef",
			kinds: []Kind{_EOF},
			errs:  []string{"1:1: Unterminated string."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, errs := scanAll(t, tt.src)
			if fmt.Sprint(kindsOf(toks)) != fmt.Sprint(tt.kinds) {
				t.Errorf("kinds = %v, want %v", kindsOf(toks), tt.kinds)
			}
			if strings.Join(errs, "\n") != strings.Join(tt.errs, "\n") {
				t.Errorf("errors = %q, want %q", errs, tt.errs)
			}
		})
	}
}

func TestScannerNextAfterEOF(t *testing.T) {
	s := NewScanner([]byte("x"), nil)
	if tok := s.Next(); tok.Kind != _Identifier {
		t.Fatalf("first token = %s, want IDENTIFIER", tok.Kind)
	}
	for i := 0; i < 3; i++ {
		if tok := s.Next(); tok.Kind != _EOF {
			t.Errorf("call %d after end = %s, want EOF", i, tok.Kind)
		}
	}
}

func FuzzScanner(f *testing.F) {
	seeds := []string{
		"var x = 1;",
		"print \"hello\";",
		"fun f(a, b) { return a + b; }",
		"class A < B { init() { this.x = 1; } }",
		"// comment\n1.5 != 2",
		"\"unterminated",
		"@#$",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		toks := Scan(src, func(int, int, string) {})
		if len(toks) == 0 || toks[len(toks)-1].Kind != _EOF {
			t.Fatalf("token stream does not end with EOF: %v", kindsOf(toks))
		}
		for _, tok := range toks[:len(toks)-1] {
			if tok.Kind == _EOF {
				t.Fatalf("EOF before end of stream")
			}
		}
	})
}
