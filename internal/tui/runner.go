package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptContinue asks a yes/no question on out and reads the answer from in.
// An empty answer means yes.
func PromptContinue(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [Y/n]: ", message)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true
	}
	return false
}

// ProgressDisplay prints step status lines. Symbols are styled only in
// interactive mode.
type ProgressDisplay struct {
	out    io.Writer
	styled bool
}

func NewProgressDisplay(out io.Writer, styled bool) *ProgressDisplay {
	return &ProgressDisplay{out: out, styled: styled}
}

func (p *ProgressDisplay) Start(message string) {
	p.line(SymbolArrowRight, SubtitleStyle.UnsetMarginBottom(), message)
}

func (p *ProgressDisplay) Success(message string) {
	p.line(SymbolCheck, SuccessStyle, message)
}

func (p *ProgressDisplay) Error(message string) {
	p.line(SymbolCross, ErrorStyle, message)
}

func (p *ProgressDisplay) line(symbol string, style interface{ Render(...string) string }, message string) {
	if p.styled {
		symbol = style.Render(symbol)
	}
	fmt.Fprintf(p.out, "%s %s\n", symbol, message)
}
