package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/you-not-fish/golox/internal/config"
	"github.com/you-not-fish/golox/internal/diag"
	"github.com/you-not-fish/golox/internal/interp"
)

// printer writes diagnostics to a terminal, optionally with the source
// line and a caret under the offending column.
type printer struct {
	w       io.Writer
	excerpt bool
	lines   []string // source of the current input
	file    string   // read into lines on the first excerpt

	errStyle    lipgloss.Style
	gutterStyle lipgloss.Style
	caretStyle  lipgloss.Style
	frameStyle  lipgloss.Style
}

func newPrinter(w io.Writer, color string, excerpt bool) *printer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		// Honours NO_COLOR and CLICOLOR_FORCE.
		r.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
	}

	return &printer{
		w:           w,
		excerpt:     excerpt,
		errStyle:    r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		gutterStyle: r.NewStyle().Foreground(lipgloss.Color("8")),
		caretStyle:  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		frameStyle:  r.NewStyle().Faint(true),
	}
}

// setSource records the text later diagnostics refer to.
func (p *printer) setSource(src string) {
	p.lines = strings.Split(src, "\n")
	p.file = ""
}

// setSourceFile makes later diagnostics refer to the file at path. The file
// is read only if an excerpt is printed.
func (p *printer) setSourceFile(path string) {
	p.lines = nil
	p.file = path
}

// Print writes d. It has the diag.Handler signature.
func (p *printer) Print(d diag.Diagnostic) {
	// Styled line by line: lipgloss pads multi-line blocks to one width.
	for _, line := range strings.Split(d.String(), "\n") {
		fmt.Fprintln(p.w, p.errStyle.Render(line))
	}
	if p.excerpt && d.Pos().IsValid() {
		p.printExcerpt(d.Line, d.Col)
	}
}

// PrintFrames writes one line per active call of a runtime error.
func (p *printer) PrintFrames(frames []interp.Frame) {
	for _, f := range frames {
		fmt.Fprintln(p.w, p.frameStyle.Render("  "+f.String()))
	}
}

func (p *printer) printExcerpt(line, col int) {
	if p.lines == nil && p.file != "" {
		if src, err := os.ReadFile(p.file); err == nil {
			p.setSource(string(src))
		}
	}
	if line < 1 || line > len(p.lines) {
		return
	}
	text := strings.TrimRight(p.lines[line-1], "\r")

	gutter := fmt.Sprintf("%4d | ", line)
	fmt.Fprintln(p.w, p.gutterStyle.Render(gutter)+text)
	if col < 1 {
		return
	}

	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	fmt.Fprintln(p.w, p.gutterStyle.Render(blank)+caretPadding(text, col)+p.caretStyle.Render("^"))
}

// caretPadding returns the whitespace that puts a caret under the col'th
// rune of text. Tabs are kept so the caret lines up with the source.
func caretPadding(text string, col int) string {
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n == col-1 {
			break
		}
		n++
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	// Past the end of the line, e.g. an error at EOF.
	if n < col-1 {
		b.WriteString(strings.Repeat(" ", col-1-n))
	}
	return b.String()
}
