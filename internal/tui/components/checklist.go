package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Item is a checkbox in a Checklist.
type Item struct {
	Key         string
	Label       string
	Description string
	Checked     bool
}

// Checklist is a multi-selection list: space toggles, enter confirms.
type Checklist struct {
	title  string
	items  []Item
	cursor int
	toggle key.Binding
	styles choiceStyles
	keys   choiceKeyMap
}

func NewChecklist(title string, items ...Item) Checklist {
	c := NewChoice(title)
	return Checklist{
		title:  title,
		items:  items,
		toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		styles: c.styles,
		keys:   c.keyMap,
	}
}

// Update moves the cursor or toggles the item under it. done is true when
// enter was pressed.
func (c Checklist) Update(msg tea.Msg) (Checklist, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, false
	}
	switch {
	case key.Matches(km, c.keys.Up):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(km, c.keys.Down):
		if c.cursor < len(c.items)-1 {
			c.cursor++
		}
	case key.Matches(km, c.toggle):
		if c.cursor < len(c.items) {
			items := append([]Item(nil), c.items...)
			items[c.cursor].Checked = !items[c.cursor].Checked
			c.items = items
		}
	case key.Matches(km, c.keys.Select):
		return c, true
	}
	return c, false
}

func (c Checklist) View() string {
	var b strings.Builder

	b.WriteString(c.styles.Title.Render(c.title))
	b.WriteString("\n")
	for i, item := range c.items {
		box := "[ ]"
		if item.Checked {
			box = "[x]"
		}
		cursor, style := "  ", c.styles.Unselected
		if i == c.cursor {
			cursor, style = "> ", c.styles.Selected
		}
		b.WriteString(cursor)
		b.WriteString(style.Render(box + " " + item.Label))
		b.WriteString("\n")
		if item.Description != "" && i == c.cursor {
			b.WriteString(c.styles.Description.Render(item.Description))
			b.WriteString("\n")
		}
	}
	b.WriteString(helpLine("↑/↓ navigate • space toggle • enter continue • esc back"))
	return b.String()
}

// Checked reports whether the item with key k is checked.
func (c Checklist) Checked(k string) bool {
	for _, item := range c.items {
		if item.Key == k {
			return item.Checked
		}
	}
	return false
}
