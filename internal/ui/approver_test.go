package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestForcedApprover(out io.Writer, lang language.Tag, sleep func(time.Duration)) *ForcedApprover {
	return &ForcedApprover{output: out, printer: NewPrinter(lang), sleepFn: sleep}
}

func TestForcedApprover(t *testing.T) {
	var out bytes.Buffer
	var slept []time.Duration
	a := newTestForcedApprover(&out, language.English, func(d time.Duration) { slept = append(slept, d) })

	ok, err := a.RequestApproval(context.Background(), "/work/acme-ra")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []time.Duration{time.Second, time.Second, time.Second}, slept)

	for _, want := range []string{"/work/acme-ra", "DANGER", "Writing in: 3", "Writing in: 1", "Proceeding with overwrite"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestForcedApprover_German(t *testing.T) {
	var out bytes.Buffer
	a := newTestForcedApprover(&out, language.German, func(time.Duration) {})

	ok, err := a.RequestApproval(context.Background(), "ziel")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "ACHTUNG")
	assert.NotContains(t, out.String(), "DANGER")
}

func TestForcedApprover_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	a := newTestForcedApprover(io.Discard, language.English, func(time.Duration) {
		calls++
		if calls == 2 {
			cancel()
		}
	})

	ok, err := a.RequestApproval(ctx, "acme-ra")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, calls)
}

func TestInteractiveApprover(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		input    string
		approved bool
		contains []string
	}{
		{
			name:     "exact match",
			target:   "acme-ra",
			input:    "acme-ra\n",
			approved: true,
			contains: []string{"WARNING", "acme-ra", "replace existing files", "Confirmed"},
		},
		{
			name:     "base name of nested target",
			target:   "/tmp/out/acme-ra",
			input:    "acme-ra\n",
			approved: true,
			contains: []string{"type the directory name 'acme-ra'"},
		},
		{
			name:     "surrounding whitespace",
			target:   "acme-ra",
			input:    "  acme-ra  \n",
			approved: true,
		},
		{
			name:     "no trailing newline",
			target:   "acme-ra",
			input:    "acme-ra",
			approved: true,
		},
		{
			name:     "mismatch",
			target:   "acme-ra",
			input:    "wrong_name\n",
			contains: []string{"'wrong_name' does not match 'acme-ra'", "Nothing was written"},
		},
		{
			name:   "empty line",
			target: "acme-ra",
			input:  "\n",
		},
		{
			name:   "full path is not the name",
			target: "/tmp/out/acme-ra",
			input:  "/tmp/out/acme-ra\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			a := &InteractiveApprover{
				input:   strings.NewReader(tt.input),
				output:  &out,
				printer: NewPrinter(language.English),
			}

			ok, err := a.RequestApproval(context.Background(), tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.approved, ok)
			for _, want := range tt.contains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestInteractiveApprover_ReadFailure(t *testing.T) {
	a := &InteractiveApprover{
		input:   failingReader{io.ErrUnexpectedEOF},
		output:  io.Discard,
		printer: NewPrinter(language.English),
	}

	ok, err := a.RequestApproval(context.Background(), "acme-ra")
	assert.False(t, ok)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "failed to read input")
}

func TestInteractiveApprover_Cancelled(t *testing.T) {
	in := &stalledReader{release: make(chan struct{})}
	t.Cleanup(func() { close(in.release) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &InteractiveApprover{input: in, output: io.Discard, printer: NewPrinter(language.English)}
	ok, err := a.RequestApproval(ctx, "acme-ra")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestApproverConstructors(t *testing.T) {
	fa, ok := NewForcedApprover(true).(*ForcedApprover)
	require.True(t, ok)
	assert.True(t, fa.verbose)
	assert.NotNil(t, fa.output)
	assert.NotNil(t, fa.sleepFn)

	ia, ok := NewInteractiveApprover(false).(*InteractiveApprover)
	require.True(t, ok)
	assert.False(t, ia.verbose)
	assert.NotNil(t, ia.input)
	assert.NotNil(t, ia.printer)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

// stalledReader blocks until release is closed.
type stalledReader struct{ release chan struct{} }

func (r *stalledReader) Read([]byte) (int, error) {
	<-r.release
	return 0, io.EOF
}
