package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the wizard-level bindings. Field and list navigation is
// handled by the components themselves.
type KeyMap struct {
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Confirm   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter/y", "generate"),
		),
	}
}

// HelpText returns the footer shown on list steps, where q is free.
func (k KeyMap) HelpText() string {
	return "esc back • q quit"
}

// InputHelpText returns the footer shown on text steps.
func (k KeyMap) InputHelpText() string {
	return "esc back • ctrl+c quit"
}
