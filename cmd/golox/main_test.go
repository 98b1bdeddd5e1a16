package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/golox/internal/config"
	"github.com/you-not-fish/golox/internal/diag"
	"github.com/you-not-fish/golox/internal/interp"
)

func TestRunFilePrints(t *testing.T) {
	filename := writeTempLoxFile(t, heredoc.Doc(`
		fun fib(n) {
		  if (n < 2) return n;
		  return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
		print 1 + 2 * 3;
	`))
	code, out, errOut := captureOutput(t, func() int {
		return runFile(filename, testSettings(t))
	})

	if code != 0 {
		t.Fatalf("runFile exit=%d\nstderr:\n%s\nstdout:\n%s", code, errOut, out)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	if out != "55\n7\n" {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRunFileStaticError(t *testing.T) {
	filename := writeTempLoxFile(t, "print \"never\";\nprint ;\n")
	code, out, errOut := captureOutput(t, func() int {
		return runFile(filename, testSettings(t))
	})

	if code != diag.ExitStatic {
		t.Fatalf("expected exit 65, got %d", code)
	}
	if out != "" {
		t.Fatalf("program ran despite a static error:\n%s", out)
	}
	if errOut != "[line 2] Error at ';': Expect expression.\n" {
		t.Fatalf("unexpected stderr:\n%q", errOut)
	}
}

func TestRunFileRuntimeError(t *testing.T) {
	filename := writeTempLoxFile(t, `print "a"; "abc"(); print "b";`)
	code, out, errOut := captureOutput(t, func() int {
		return runFile(filename, testSettings(t))
	})

	if code != diag.ExitRuntime {
		t.Fatalf("expected exit 70, got %d", code)
	}
	if out != "a\n" {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if errOut != "Can only call functions and classes.\n[line 1]\n" {
		t.Fatalf("unexpected stderr:\n%q", errOut)
	}
}

func TestRunFileMissing(t *testing.T) {
	code, _, errOut := captureOutput(t, func() int {
		return runFile(filepath.Join(t.TempDir(), "missing.lox"), testSettings(t))
	})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.HasPrefix(errOut, "error: ") {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
}

func TestRunFileStackOverflow(t *testing.T) {
	filename := writeTempLoxFile(t, "fun f() { f(); }\nf();\n")
	settings := testSettings(t)
	settings.MaxCallDepth = 100

	code, _, errOut := captureOutput(t, func() int {
		return runFile(filename, settings)
	})
	if code != diag.ExitRuntime {
		t.Fatalf("expected exit 70, got %d", code)
	}
	if errOut != "Stack overflow.\n[line 1]\n" {
		t.Fatalf("unexpected stderr:\n%q", errOut)
	}
}

func TestRunFileExcerpt(t *testing.T) {
	setFlag(t, excerpt, true)
	filename := writeTempLoxFile(t, "fun f() {\n  return -\"x\";\n}\nf();\n")

	code, _, errOut := captureOutput(t, func() int {
		return runFile(filename, testSettings(t))
	})
	if code != diag.ExitRuntime {
		t.Fatalf("expected exit 70, got %d", code)
	}
	want := "Operand must be a number.\n[line 2]\n" +
		"   2 |   return -\"x\";\n" +
		"     |          ^\n"
	if errOut != want {
		t.Fatalf("got:\n%q\nwant:\n%q", errOut, want)
	}
}

func TestRunEmitTokens(t *testing.T) {
	filename := writeTempLoxFile(t, "1 + 2 * 3")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitTokens(filename, testSettings(t))
	})

	if code != 0 || errOut != "" {
		t.Fatalf("runEmitTokens exit=%d\nstderr:\n%s", code, errOut)
	}
	want := heredoc.Doc(`
		NUMBER 1 1
		PLUS + null
		NUMBER 2 2
		STAR * null
		NUMBER 3 3
		EOF  null
	`)
	if out != want {
		t.Fatalf("unexpected tokens:\n%s\nwant:\n%s", out, want)
	}
}

func TestRunEmitTokensLexicalError(t *testing.T) {
	filename := writeTempLoxFile(t, "var a = @;")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitTokens(filename, testSettings(t))
	})

	if code != diag.ExitStatic {
		t.Fatalf("expected exit 65, got %d", code)
	}
	if errOut != "[line 1] Error: Unexpected character.\n" {
		t.Fatalf("unexpected stderr:\n%q", errOut)
	}
	if !strings.Contains(out, "SEMICOLON ; null") {
		t.Fatalf("scanning did not continue past the error:\n%s", out)
	}
}

func TestRunEmitAST(t *testing.T) {
	filename := writeTempLoxFile(t, "var x = 1;\nprint x + 2;\n")

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{
			format: "sexpr",
			check: func(t *testing.T, out string) {
				if out != "(var x 1)\n(print (+ x 2))\n" {
					t.Fatalf("unexpected sexpr output:\n%s", out)
				}
			},
		},
		{
			format: "text",
			check: func(t *testing.T, out string) {
				if !strings.HasPrefix(out, "Var 1 x\n") || !strings.Contains(out, "Binary 2 +") {
					t.Fatalf("unexpected text output:\n%s", out)
				}
			},
		},
		{
			format: "json",
			check: func(t *testing.T, out string) {
				var nodes []map[string]interface{}
				if err := json.Unmarshal([]byte(out), &nodes); err != nil {
					t.Fatalf("invalid JSON: %v\n%s", err, out)
				}
				if len(nodes) != 2 || nodes[1]["type"] != "Print" {
					t.Fatalf("unexpected JSON output:\n%s", out)
				}
			},
		},
		{
			format: "yaml",
			check: func(t *testing.T, out string) {
				var nodes []map[string]interface{}
				if err := yaml.Unmarshal([]byte(out), &nodes); err != nil {
					t.Fatalf("invalid YAML: %v\n%s", err, out)
				}
				if len(nodes) != 2 || nodes[0]["type"] != "Var" {
					t.Fatalf("unexpected YAML output:\n%s", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			setFlag(t, astFormat, tt.format)
			code, out, errOut := captureOutput(t, func() int {
				return runEmitAST(filename, testSettings(t))
			})
			if code != 0 || errOut != "" {
				t.Fatalf("runEmitAST exit=%d\nstderr:\n%s", code, errOut)
			}
			tt.check(t, out)
		})
	}
}

func TestRunEmitASTUnknownFormat(t *testing.T) {
	setFlag(t, astFormat, "xml")
	filename := writeTempLoxFile(t, "print 1;")
	code, _, errOut := captureOutput(t, func() int {
		return runEmitAST(filename, testSettings(t))
	})
	if code != diag.ExitUsage {
		t.Fatalf("expected exit 64, got %d", code)
	}
	if !strings.Contains(errOut, `unknown AST format "xml"`) {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
}

func TestApplyFlags(t *testing.T) {
	t.Setenv("GOLOX_CONFIG_DIR", t.TempDir())
	setFlag(t, colorMode, config.ColorAlways)
	setFlag(t, maxDepth, 7)

	got := applyFlags(config.Settings{Color: config.ColorNever, MaxCallDepth: 100})
	if got.Color != config.ColorAlways || got.MaxCallDepth != 7 {
		t.Fatalf("flags not applied: %+v", got)
	}
	if got.Prompt != config.DefaultPrompt {
		t.Fatalf("settings not normalised: %+v", got)
	}
}

func TestRunShowConfig(t *testing.T) {
	settings := testSettings(t)
	settings.MaxCallDepth = 64

	code, out, errOut := captureOutput(t, func() int {
		return runShowConfig(settings)
	})
	if code != 0 || errOut != "" {
		t.Fatalf("runShowConfig exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{"max_call_depth = 64", "never"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != settings {
		t.Fatalf("reloaded settings = %+v, want %+v", got, settings)
	}
}

// ----------------------------------------------------------------------------
// Diagnostics

func TestPrinterExcerpt(t *testing.T) {
	tests := []struct {
		name string
		src  string
		d    diag.Diagnostic
		want string
	}{
		{
			name: "ascii",
			src:  "var cafe = 1 +;\n",
			d:    diag.Diagnostic{Kind: diag.Syntax, Line: 1, Col: 15, Lexeme: ";", Msg: "Expect expression."},
			want: "[line 1] Error at ';': Expect expression.\n" +
				"   1 | var cafe = 1 +;\n" +
				"     |               ^\n",
		},
		{
			name: "wide_runes",
			src:  "print \"日本\" + 1;",
			d:    diag.Diagnostic{Kind: diag.Runtime, Line: 1, Col: 12, Msg: "Operands must be two numbers or two strings."},
			want: "Operands must be two numbers or two strings.\n[line 1]\n" +
				"   1 | print \"日本\" + 1;\n" +
				"     |              ^\n",
		},
		{
			name: "tab",
			src:  "x\n\tprint ;",
			d:    diag.Diagnostic{Kind: diag.Syntax, Line: 2, Col: 8, Lexeme: ";", Msg: "Expect expression."},
			want: "[line 2] Error at ';': Expect expression.\n" +
				"   2 | \tprint ;\n" +
				"     | \t      ^\n",
		},
		{
			name: "no_column",
			src:  "print 1;",
			d:    diag.Diagnostic{Kind: diag.Runtime, Line: 1, Msg: "boom"},
			want: "boom\n[line 1]\n   1 | print 1;\n",
		},
		{
			name: "line_out_of_range",
			src:  "print 1;",
			d:    diag.Diagnostic{Kind: diag.Lexical, Line: 9, Col: 1, Msg: "Unexpected character."},
			want: "[line 9] Error: Unexpected character.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := newPrinter(&buf, config.ColorNever, true)
			p.setSource(tt.src)
			p.Print(tt.d)
			if buf.String() != tt.want {
				t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrinterColor(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, config.ColorAlways, false)
	p.Print(diag.Diagnostic{Kind: diag.Runtime, Line: 1, Msg: "boom"})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}

	buf.Reset()
	p = newPrinter(&buf, config.ColorNever, false)
	p.Print(diag.Diagnostic{Kind: diag.Runtime, Line: 1, Msg: "boom"})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected ANSI escapes: %q", buf.String())
	}
}

func TestPrinterFrames(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, config.ColorNever, false)
	p.PrintFrames([]interp.Frame{{Name: "inner", Line: 2}, {Name: "outer", Line: 3}})

	want := "  at inner (line 2)\n  at outer (line 3)\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestCaretPaddingPastEnd(t *testing.T) {
	if got := caretPadding("ab", 5); got != "    " {
		t.Fatalf("caretPadding = %q", got)
	}
}

// ----------------------------------------------------------------------------
// REPL

// scriptReader replays fixed lines and then reports EOF.
type scriptReader struct {
	lines   []string
	prompts []string
	history []string
}

func (r *scriptReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (r *scriptReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func TestREPLSession(t *testing.T) {
	lr := &scriptReader{lines: []string{
		"var a = 1;",
		"fun f() {",
		"  return a + 1;",
		"}",
		"print f();",
		"print ;",
		"print a;",
		"nil();",
		"print a + 10;",
		":quit",
		"print \"unreached\";",
	}}
	code, out, errOut := captureOutput(t, func() int {
		return repl(lr, testSettings(t))
	})

	if code != 0 {
		t.Fatalf("repl exit=%d", code)
	}
	if out != "2\n1\n11\n" {
		t.Fatalf("unexpected output:\n%s", out)
	}
	wantErr := "[line 1] Error at ';': Expect expression.\n" +
		"Can only call functions and classes.\n[line 1]\n"
	if errOut != wantErr {
		t.Fatalf("unexpected stderr:\n%q", errOut)
	}

	wantPrompts := []string{"> ", "> ", ". ", ". ", "> "}
	if strings.Join(lr.prompts[:5], "|") != strings.Join(wantPrompts, "|") {
		t.Fatalf("prompts = %q", lr.prompts)
	}
	if lr.history[1] != "fun f() {   return a + 1; }" {
		t.Fatalf("history = %q", lr.history)
	}
}

func TestREPLEndOfInput(t *testing.T) {
	lr := &scriptReader{lines: []string{"print 1;", "", ":help"}}
	code, out, errOut := captureOutput(t, func() int {
		return repl(lr, testSettings(t))
	})

	if code != 0 {
		t.Fatalf("repl exit=%d", code)
	}
	if out != "1\n\n" {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(errOut, "unknown command") {
		t.Fatalf("unexpected stderr: %q", errOut)
	}
}

func TestREPLAbortDropsPendingInput(t *testing.T) {
	lr := &scriptReader{lines: []string{"{", "print 1;", "^C", "print 2;"}}
	code, out, _ := captureOutput(t, func() int {
		return repl(lr, testSettings(t))
	})

	if code != 0 {
		t.Fatalf("repl exit=%d", code)
	}
	if out != "2\n\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

// ----------------------------------------------------------------------------
// Helpers

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	t.Setenv("GOLOX_CONFIG_DIR", t.TempDir())
	return config.Normalise(config.Settings{Color: config.ColorNever})
}

// setFlag sets a flag variable for the duration of the test.
func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func writeTempLoxFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.lox")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
