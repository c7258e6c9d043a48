package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Form is a column of text fields embedded in a larger model. Enter moves
// to the next field and, on the last one, submits the form if every field
// is valid. The parent checks Submitted after each Update.
type Form struct {
	title     string
	fields    []TextField
	focusIdx  int
	submitted bool
}

var (
	formNext   = key.NewBinding(key.WithKeys("tab", "down"))
	formPrev   = key.NewBinding(key.WithKeys("shift+tab", "up"))
	formSubmit = key.NewBinding(key.WithKeys("enter"))
)

// NewForm creates a form with the given title and fields.
func NewForm(title string, fields ...TextField) Form {
	return Form{title: title, fields: fields}
}

// Focus focuses the first field.
func (f *Form) Focus() tea.Cmd {
	f.submitted = false
	f.focusIdx = 0
	if len(f.fields) == 0 {
		return nil
	}
	return f.fields[0].Focus()
}

// Update routes msg to the focused field or moves the focus.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	f.submitted = false
	if len(f.fields) == 0 {
		return f, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		focused := f.fields[f.focusIdx]
		switch {
		case key.Matches(km, formSubmit):
			if f.focusIdx < len(f.fields)-1 {
				return f.move(1)
			}
			if f.validate() {
				f.submitted = true
			}
			return f, nil
		case km.Type == tea.KeyTab && focused.Completes():
		case key.Matches(km, formNext):
			return f.move(1)
		case key.Matches(km, formPrev):
			return f.move(-1)
		}
	}

	var cmd tea.Cmd
	f.fields[f.focusIdx], cmd = f.fields[f.focusIdx].Update(msg)
	return f, cmd
}

func (f Form) move(delta int) (Form, tea.Cmd) {
	if delta > 0 {
		if err := f.fields[f.focusIdx].Validate(); err != nil {
			return f, nil
		}
	}
	next := f.focusIdx + delta
	if next < 0 || next >= len(f.fields) {
		return f, nil
	}
	f.fields[f.focusIdx].Blur()
	f.focusIdx = next
	return f, f.fields[f.focusIdx].Focus()
}

// validate runs every validator so that all problems are shown at once.
func (f *Form) validate() bool {
	failed := 0
	for i := range f.fields {
		if f.fields[i].Validate() != nil {
			failed++
		}
	}
	return failed == 0
}

func (f Form) View() string {
	parts := make([]string, 0, len(f.fields)+1)
	if f.title != "" {
		parts = append(parts, fg(dim).Render(f.title)+"\n")
	}
	for _, field := range f.fields {
		parts = append(parts, field.View())
	}
	return strings.Join(parts, "\n\n") + "\n" + helpLine("tab next • shift+tab prev • enter submit • esc back")
}

// Submitted reports whether the last Update submitted the form.
func (f Form) Submitted() bool {
	return f.submitted
}

// FocusIndex returns the index of the focused field.
func (f Form) FocusIndex() int {
	return f.focusIdx
}

// Field returns a field by index, or nil.
func (f Form) Field(idx int) *TextField {
	if idx >= 0 && idx < len(f.fields) {
		return &f.fields[idx]
	}
	return nil
}

// FieldValue returns the trimmed value of a field by index.
func (f Form) FieldValue(idx int) string {
	if field := f.Field(idx); field != nil {
		return field.Value()
	}
	return ""
}
