package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/message"

	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// InteractiveApprover asks the user to type the output directory name
// before generated files are written into a non-empty directory.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
	printer *message.Printer
}

// NewInteractiveApprover creates an InteractiveApprover on stdin/stderr.
func NewInteractiveApprover(verbose bool) jcagen.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
		printer: NewPrinter(DetectLanguage()),
	}
}

// RequestApproval prompts for the base name of target. Only an exact match
// (ignoring surrounding whitespace) approves.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	p := a.printer
	if p == nil {
		p = NewPrinter(DetectLanguage())
	}
	name := confirmationName(target)

	p.Fprintln(a.output)
	p.Fprintf(a.output, msgOverwriteWarning, target)
	p.Fprintln(a.output)
	p.Fprintln(a.output, p.Sprintf(msgOverwriteDetail))
	p.Fprintln(a.output)
	p.Fprintf(a.output, msgOverwriteConfirm, name)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == name {
			p.Fprintln(a.output, p.Sprintf(msgConfirmed))
			return true, nil
		}
		p.Fprintf(a.output, msgMismatch, input, name)
		p.Fprintln(a.output)
		return false, nil
	}
}

func confirmationName(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	return filepath.Base(abs)
}

var _ jcagen.Approver = (*InteractiveApprover)(nil)
