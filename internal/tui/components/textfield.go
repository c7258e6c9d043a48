package components

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextField is a labeled text input with optional validation and path
// completion.
type TextField struct {
	label     string
	hint      string
	input     textinput.Model
	focused   bool
	required  bool
	validator func(string) error
	completer *PathCompleter
	err       error
}

var (
	fieldLabel   = fg(dim)
	fieldHint    = fg(faint).MarginLeft(2)
	fieldInput   = fg(plain)
	fieldFocused = fg(accent)
	fieldProblem = fg(alert)
)

// NewTextField creates a text field. The placeholder is shown while the
// field is empty.
func NewTextField(label, placeholder string) TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40

	return TextField{label: label, input: ti}
}

func (t TextField) WithRequired(required bool) TextField {
	t.required = required
	return t
}

func (t TextField) WithValidator(fn func(string) error) TextField {
	t.validator = fn
	return t
}

func (t TextField) WithValue(value string) TextField {
	t.input.SetValue(value)
	return t
}

func (t TextField) WithHint(hint string) TextField {
	t.hint = hint
	return t
}

// WithCompleter makes Tab complete directory names instead of moving on.
func (t TextField) WithCompleter(c *PathCompleter) TextField {
	t.completer = c
	return t
}

// Completes reports whether the field consumes Tab.
func (t TextField) Completes() bool {
	return t.completer != nil
}

func (t *TextField) Focus() tea.Cmd {
	t.focused = true
	return t.input.Focus()
}

func (t *TextField) Blur() {
	t.focused = false
	t.input.Blur()
}

func (t TextField) IsFocused() bool {
	return t.focused
}

// Update handles input for the field. A validation error is cleared as
// soon as the value changes and shown again by Validate.
func (t TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && t.completer != nil {
		if km.Type == tea.KeyTab {
			t.input.SetValue(t.completer.Next(t.input.Value()))
			t.input.CursorEnd()
			return t, nil
		}
		t.completer.Reset()
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.err = nil
	return t, cmd
}

func (t TextField) View() string {
	label := fieldLabel.Render(t.label)
	if t.required {
		label += fieldProblem.Render(" *")
	}
	input := fieldInput
	if t.focused {
		input = fieldFocused
	}
	lines := []string{label, input.Render(t.input.View())}

	switch {
	case t.err != nil:
		lines = append(lines, fieldProblem.Render(t.err.Error()))
	case t.focused && t.hint != "":
		lines = append(lines, fieldHint.Render(t.hint))
	}
	return strings.Join(lines, "\n")
}

// Value returns the trimmed value.
func (t TextField) Value() string {
	return strings.TrimSpace(t.input.Value())
}

func (t *TextField) SetValue(v string) {
	t.input.SetValue(v)
}

func (t TextField) Error() error {
	return t.err
}

// Validate checks the required flag and the validator. Empty optional
// fields are not passed to the validator.
func (t *TextField) Validate() error {
	t.err = nil
	v := t.Value()
	switch {
	case v == "" && t.required:
		t.err = ErrFieldRequired
	case v != "" && t.validator != nil:
		t.err = t.validator(v)
	}
	return t.err
}

// ErrFieldRequired is reported by Validate for an empty required field.
var ErrFieldRequired = errors.New("a value is required")
