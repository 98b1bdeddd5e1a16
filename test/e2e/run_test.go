package e2e

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aymanbagabas/go-udiff"
	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/golox/internal/diag"
	"github.com/you-not-fish/golox/internal/lox"
)

// TestE2E runs every .lox file in testdata/ and compares what it prints
// with the matching .golden file. The programs must run without
// diagnostics. Set UPDATE_GOLDEN=1 to rewrite the golden files.
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.lox")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .lox test files found in testdata/")
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".lox")
		t.Run(name, func(t *testing.T) {
			runGoldenTest(t, testFile)
		})
	}
}

// runGoldenTest runs a single end-to-end test.
func runGoldenTest(t *testing.T, loxFile string) {
	t.Helper()

	src, err := os.ReadFile(loxFile)
	if err != nil {
		t.Fatalf("reading source: %v", err)
	}

	stdout, stderr, code := run(string(src))
	if code != diag.ExitOK || stderr != "" {
		t.Fatalf("exit %d with diagnostics:\n%s", code, stderr)
	}

	goldenFile := strings.TrimSuffix(loxFile, ".lox") + ".golden"
	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.WriteFile(goldenFile, []byte(stdout), 0o644); err != nil {
			t.Fatalf("writing golden file: %v", err)
		}
		return
	}

	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if stdout != string(expected) {
		t.Errorf("output mismatch:\n%s", udiff.Unified("want", "got", string(expected), stdout))
	}
}

// errorCase is one entry of testdata/errors.yaml.
type errorCase struct {
	Name   string `yaml:"name"`
	Src    string `yaml:"src"`
	Stdout string `yaml:"stdout"`
	Stderr string `yaml:"stderr"`
	Exit   int    `yaml:"exit"`
}

// TestErrors runs the programs in testdata/errors.yaml and checks their
// output, diagnostics and exit status.
func TestErrors(t *testing.T) {
	data, err := os.ReadFile("testdata/errors.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var cases []errorCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding cases: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no cases in testdata/errors.yaml")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			stdout, stderr, code := run(tc.Src)
			if code != tc.Exit {
				t.Errorf("exit = %d, want %d", code, tc.Exit)
			}
			if stdout != tc.Stdout {
				t.Errorf("stdout mismatch:\n%s", udiff.Unified("want", "got", tc.Stdout, stdout))
			}
			if stderr != tc.Stderr {
				t.Errorf("stderr mismatch:\n%s", udiff.Unified("want", "got", tc.Stderr, stderr))
			}
		})
	}
}

// TestDeterministic runs each golden program twice in fresh sessions with a
// fixed clock and expects identical output.
func TestDeterministic(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.lox")
	if err != nil {
		t.Fatal(err)
	}
	for _, testFile := range testFiles {
		src, err := os.ReadFile(testFile)
		if err != nil {
			t.Fatal(err)
		}
		first, _, _ := run(string(src))
		second, _, _ := run(string(src))
		if first != second {
			t.Errorf("%s: output differs between runs:\n%s", testFile, udiff.Unified("first", "second", first, second))
		}
	}
}

// run executes src in a fresh session and returns what it printed, the
// rendered diagnostics and the exit status.
func run(src string) (stdout, stderr string, code int) {
	var out, errs bytes.Buffer
	epoch := time.Unix(0, 0)
	s := lox.NewSession(
		lox.WithStdout(&out),
		lox.WithDiagnostics(func(d diag.Diagnostic) {
			errs.WriteString(d.String())
			errs.WriteByte('\n')
		}),
		lox.WithClock(func() time.Time { return epoch }),
	)
	res := s.Run(src)
	return out.String(), errs.String(), res.ExitCode()
}
