package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/golox/internal/config"
	"github.com/you-not-fish/golox/internal/lox"
)

// lineReader is the part of *liner.State the REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// runPrompt runs the interactive REPL on the terminal.
func runPrompt(settings config.Settings) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	loadHistory(ln, settings.HistoryFile)
	defer saveHistory(ln, settings.HistoryFile)

	return repl(ln, settings)
}

// repl reads inputs from lr until EOF or :quit and runs each one in a
// single session. Errors in one input do not end the session.
func repl(lr lineReader, settings config.Settings) int {
	p := newPrinter(os.Stderr, settings.Color, *excerpt)
	s := newSession(settings, p)

	for {
		src, ok := readInput(lr, settings.Prompt, settings.ContinuationPrompt)
		if !ok {
			fmt.Println()
			return 0
		}

		code := strings.TrimSpace(src)
		if code == "" {
			continue
		}
		if strings.HasPrefix(code, ":") {
			switch code {
			case ":quit", ":q":
				return 0
			default:
				fmt.Fprintln(os.Stderr, "unknown command. Type :quit to exit.")
			}
			continue
		}

		lr.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		s.ResetErrors()
		p.setSource(src)
		res := s.Run(src)
		if res.Err != nil && *trace {
			p.PrintFrames(res.Err.Frames)
		}
	}
}

// readInput reads one input, asking for continuation lines while it is
// incomplete. It returns false at end of input.
func readInput(lr lineReader, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := lr.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C drops the pending input.
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !lox.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}

func loadHistory(ln *liner.State, path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	if _, err := ln.ReadHistory(f); err != nil {
		newLogger().Printf("read history %q: %v", path, err)
	}
}

func saveHistory(ln *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		newLogger().Printf("create history directory: %v", err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		newLogger().Printf("write history %q: %v", path, err)
		return
	}
	defer f.Close()

	if _, err := ln.WriteHistory(f); err != nil {
		newLogger().Printf("write history %q: %v", path, err)
	}
}
