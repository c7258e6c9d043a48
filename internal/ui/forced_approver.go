package ui

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/text/message"

	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// ForcedApprover implements the Approver interface for --force. It shows a
// countdown and approves when it runs out.
type ForcedApprover struct {
	verbose bool
	output  io.Writer
	printer *message.Printer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a ForcedApprover writing to stderr.
func NewForcedApprover(verbose bool) jcagen.Approver {
	return &ForcedApprover{
		verbose: verbose,
		output:  os.Stderr,
		printer: NewPrinter(DetectLanguage()),
		sleepFn: time.Sleep,
	}
}

// RequestApproval counts down and approves unless ctx is cancelled first.
func (a *ForcedApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	p := a.printer
	if p == nil {
		p = NewPrinter(DetectLanguage())
	}

	p.Fprintln(a.output)
	p.Fprintf(a.output, msgForceBanner, target)
	p.Fprintln(a.output)

	countdownSeconds := int(jcagen.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			p.Fprintf(a.output, msgCountdown, i)
			a.sleepFn(time.Second)
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.Fprintf(a.output, msgProceeding)
	return true, nil
}

var _ jcagen.Approver = (*ForcedApprover)(nil)
