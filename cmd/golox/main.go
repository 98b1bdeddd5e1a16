// Package main implements the golox interpreter entry point.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/you-not-fish/golox/internal/config"
	"github.com/you-not-fish/golox/internal/diag"
	"github.com/you-not-fish/golox/internal/lox"
	"github.com/you-not-fish/golox/internal/syntax"
)

// Interpreter flags
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text, json, yaml or sexpr)")
	trace      = flag.Bool("trace", false, "Output phase timings and call stacks")
	colorMode  = flag.String("color", "", "Colour diagnostics (auto, always or never)")
	excerpt    = flag.Bool("excerpt", false, "Show the offending source line under diagnostics")
	configPath = flag.String("config", "", "Settings file (default $XDG_CONFIG_HOME/golox/settings.toml)")
	maxDepth   = flag.Int("max-depth", 0, "Maximum call depth (default from settings)")
	showConfig = flag.Bool("show-config", false, "Print the effective settings as TOML")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("golox version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(diag.ExitOK)
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		newLogger().Print(err)
		os.Exit(1)
	}
	settings = applyFlags(settings)
	if *showConfig {
		os.Exit(runShowConfig(settings))
	}

	args := flag.Args()
	if len(args) > 1 {
		usage()
		os.Exit(diag.ExitUsage)
	}

	if *emitTokens || *emitAST {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "error: no input file")
			usage()
			os.Exit(diag.ExitUsage)
		}
		if *emitTokens {
			os.Exit(runEmitTokens(args[0], settings))
		}
		os.Exit(runEmitAST(args[0], settings))
	}

	if len(args) == 1 {
		os.Exit(runFile(args[0], settings))
	}
	os.Exit(runPrompt(settings))
}

func usage() {
	fmt.Fprintf(os.Stderr, "golox %s\n\n", Version)
	fmt.Fprintf(os.Stderr, "Usage: golox [options] [script]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

// newLogger returns the logger for operational messages.
func newLogger() *log.Logger {
	return log.New(os.Stderr, "golox: ", 0)
}

// applyFlags overrides settings with explicitly set flags.
func applyFlags(s config.Settings) config.Settings {
	if *colorMode != "" {
		s.Color = *colorMode
	}
	if *maxDepth > 0 {
		s.MaxCallDepth = *maxDepth
	}
	return config.Normalise(s)
}

// newSession creates a session printing through p.
func newSession(settings config.Settings, p *printer) *lox.Session {
	opts := []lox.Option{
		lox.WithStdout(os.Stdout),
		lox.WithDiagnostics(p.Print),
		lox.WithMaxDepth(settings.MaxCallDepth),
	}
	if *trace {
		opts = append(opts, lox.WithTrace(newLogger()))
	}
	return lox.NewSession(opts...)
}

// runShowConfig writes settings to stdout in the settings file format.
func runShowConfig(settings config.Settings) int {
	data, err := config.Marshal(settings)
	if err != nil {
		newLogger().Print(err)
		return 1
	}
	os.Stdout.Write(data)
	return diag.ExitOK
}

// runFile runs a script and returns the exit status.
func runFile(filename string, settings config.Settings) int {
	p := newPrinter(os.Stderr, settings.Color, *excerpt)
	p.setSourceFile(filename)

	res, err := newSession(settings, p).RunFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if res.Err != nil && *trace {
		p.PrintFrames(res.Err.Frames)
	}
	return res.ExitCode()
}

// runEmitTokens scans the input file and prints one token per line.
func runEmitTokens(filename string, settings config.Settings) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	p := newPrinter(os.Stderr, settings.Color, *excerpt)
	p.setSource(string(src))
	s := newSession(settings, p)

	for _, tok := range s.Tokens(string(src)) {
		fmt.Println(tok)
	}
	return s.Reporter().ExitCode()
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string, settings config.Settings) int {
	switch *astFormat {
	case "text", "json", "yaml", "sexpr":
	default:
		fmt.Fprintf(os.Stderr, "error: unknown AST format %q\n", *astFormat)
		return diag.ExitUsage
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	p := newPrinter(os.Stderr, settings.Color, *excerpt)
	p.setSource(string(src))
	s := newSession(settings, p)

	// Errors are printed as they are reported, before the AST.
	stmts, _ := s.ParseSource(string(src))

	switch *astFormat {
	case "json":
		err = syntax.FprintJSON(os.Stdout, stmts)
	case "yaml":
		err = syntax.FprintYAML(os.Stdout, stmts)
	case "sexpr":
		for _, st := range stmts {
			fmt.Println(syntax.SprintStmt(st))
		}
	default:
		syntax.FprintAll(os.Stdout, stmts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return s.Reporter().ExitCode()
}
