package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Option is one entry of a Choice.
type Option struct {
	Label       string
	Description string
	Value       string
}

// Choice is a single-selection list embedded in a larger model.
type Choice struct {
	title   string
	options []Option
	cursor  int
	keyMap  choiceKeyMap
	styles  choiceStyles
}

type choiceKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

type choiceStyles struct {
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Unselected  lipgloss.Style
	Description lipgloss.Style
}

// NewChoice creates a list with the cursor on the first option.
func NewChoice(title string, options ...Option) Choice {
	return Choice{
		title:   title,
		options: options,
		keyMap: choiceKeyMap{
			Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
			Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
			Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		},
		styles: choiceStyles{
			Title:       fg(dim).MarginBottom(1),
			Selected:    fg(accent).Bold(true),
			Unselected:  fg(dim),
			Description: fg(faint).MarginLeft(4),
		},
	}
}

// WithValue moves the cursor to the option with value v, if present.
func (c Choice) WithValue(v string) Choice {
	for i, opt := range c.options {
		if opt.Value == v {
			c.cursor = i
		}
	}
	return c
}

// Update moves the cursor. chosen is true when enter was pressed.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, false
	}
	switch {
	case key.Matches(km, c.keyMap.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(km, c.keyMap.Down):
		if c.cursor < len(c.options)-1 {
			c.cursor++
		}
	case key.Matches(km, c.keyMap.Select):
		return c, len(c.options) > 0
	}
	return c, false
}

func (c Choice) View() string {
	var b strings.Builder

	b.WriteString(c.styles.Title.Render(c.title))
	b.WriteString("\n")
	for i, opt := range c.options {
		cursor, symbol, style := "  ", "○", c.styles.Unselected
		if i == c.cursor {
			cursor, symbol, style = "", "●", c.styles.Selected
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + opt.Label))
		b.WriteString("\n")
		if opt.Description != "" {
			b.WriteString(c.styles.Description.Render(opt.Description))
			b.WriteString("\n")
		}
	}
	b.WriteString(helpLine("↑/↓ navigate • enter select • esc back"))
	return b.String()
}

// Value returns the value of the option under the cursor.
func (c Choice) Value() string {
	if c.cursor < len(c.options) {
		return c.options[c.cursor].Value
	}
	return ""
}

// Index returns the cursor position.
func (c Choice) Index() int {
	return c.cursor
}
