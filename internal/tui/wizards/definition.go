// Package wizards holds the full-screen flows shown when jcagen runs on a
// terminal.
package wizards

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/jcagen/internal/codegen"
	"github.com/vvka-141/jcagen/internal/tui"
	"github.com/vvka-141/jcagen/internal/tui/components"
)

// DefinitionResult holds the outcome of the definition wizard.
type DefinitionResult struct {
	Cancelled  bool
	Definition *codegen.Definition
	OutputDir  string
}

type step int

const (
	stepVersion step = iota
	stepKind
	stepTransaction
	stepOptions
	stepNames
	stepProperties
	stepConfirm
)

const (
	kindOutbound = "outbound"
	kindInbound  = "inbound"
	kindBoth     = "both"
)

const (
	optAnnotations   = "annotations"
	optCCI           = "cci"
	optRAAssociation = "ra-association"
	optAdminObject   = "admin-object"
	optRaXML         = "ra-xml"
	optIronJacamar   = "ironjacamar-xml"
	optMaven         = "maven"
)

// Property form fields.
const (
	propName = iota
	propType
	propValue
)

// propertyList is one config-property list the user fills in turn.
type propertyList struct {
	owner string
	props *[]codegen.ConfigProperty
}

// DefinitionWizard collects a resource adapter definition step by step.
// Esc returns to the previous step; on the first step it cancels.
type DefinitionWizard struct {
	step    step
	history []step

	version     components.Choice
	kind        components.Choice
	transaction components.Choice
	options     components.Checklist
	names       components.Form
	props       components.Form

	def     *codegen.Definition
	lists   []propertyList
	listIdx int

	result DefinitionResult
	keys   tui.KeyMap
	width  int
}

// NewDefinitionWizard creates a wizard that proposes outputDir as the
// target directory.
func NewDefinitionWizard(outputDir string) DefinitionWizard {
	if outputDir == "" {
		outputDir = "."
	}
	return DefinitionWizard{
		step: stepVersion,
		version: components.NewChoice("Which JCA version should the adapter implement?",
			components.Option{Label: "JCA 1.7", Description: "Java EE 7", Value: codegen.Version17},
			components.Option{Label: "JCA 1.6", Description: "Java EE 6, annotations", Value: codegen.Version16},
			components.Option{Label: "JCA 1.5", Description: "J2EE 1.4, inbound and admin objects", Value: codegen.Version15},
			components.Option{Label: "JCA 1.0", Description: "Outbound only", Value: codegen.Version10},
		),
		kind: components.NewChoice("What kind of resource adapter?",
			components.Option{Label: "Outbound", Description: "Connection factories for applications", Value: kindOutbound},
			components.Option{Label: "Inbound", Description: "Message inflow into endpoints", Value: kindInbound},
			components.Option{Label: "Bidirectional", Description: "Both outbound and inbound", Value: kindBoth},
		),
		transaction: components.NewChoice("Transaction support",
			components.Option{Label: "None", Value: codegen.NoTransaction},
			components.Option{Label: "Local", Value: codegen.LocalTransaction},
			components.Option{Label: "XA", Value: codegen.XATransaction},
		),
		names: components.NewForm("Names",
			components.NewTextField("Package", "com.acme.eis").
				WithRequired(true).
				WithValidator(validWith(codegen.IsJavaPackage, "not a valid Java package name")),
			components.NewTextField("Class name prefix", codegen.DefaultPrefix).
				WithValue(codegen.DefaultPrefix).
				WithValidator(validWith(codegen.IsJavaIdentifier, "not a valid Java identifier")),
			components.NewTextField("Output directory", ".").
				WithValue(outputDir).
				WithRequired(true).
				WithHint("tab completes directories").
				WithCompleter(components.NewPathCompleter(true)),
		),
		keys:  tui.DefaultKeyMap(),
		width: 80,
	}
}

func validWith(ok func(string) bool, msg string) func(string) error {
	return func(s string) error {
		if !ok(s) {
			return errors.New(msg)
		}
		return nil
	}
}

// Init implements tea.Model.
func (w DefinitionWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w DefinitionWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		return w, nil

	case tea.KeyMsg:
		if key.Matches(msg, w.keys.ForceQuit) || (w.listStep() && key.Matches(msg, w.keys.Quit)) {
			return w.cancel()
		}
		if key.Matches(msg, w.keys.Back) {
			return w.back()
		}
	}

	switch w.step {
	case stepVersion:
		var chosen bool
		if w.version, chosen = w.version.Update(msg); chosen {
			if w.version.Value() == codegen.Version10 {
				w.kind = w.kind.WithValue(kindOutbound)
				return w.advance(stepTransaction)
			}
			return w.advance(stepKind)
		}
	case stepKind:
		var chosen bool
		if w.kind, chosen = w.kind.Update(msg); chosen {
			if w.kind.Value() == kindInbound {
				return w.advance(stepOptions)
			}
			return w.advance(stepTransaction)
		}
	case stepTransaction:
		var chosen bool
		if w.transaction, chosen = w.transaction.Update(msg); chosen {
			return w.advance(stepOptions)
		}
	case stepOptions:
		var done bool
		if w.options, done = w.options.Update(msg); done {
			return w.advance(stepNames)
		}
	case stepNames:
		var cmd tea.Cmd
		w.names, cmd = w.names.Update(msg)
		if w.names.Submitted() {
			w.buildDefinition()
			if len(w.lists) == 0 {
				return w.advance(stepConfirm)
			}
			w.history = append(w.history, stepNames)
			w.step = stepProperties
			cmd = w.newPropertyForm()
			return w, cmd
		}
		return w, cmd
	case stepProperties:
		return w.updateProperties(msg)
	case stepConfirm:
		if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, w.keys.Confirm) {
			w.result = DefinitionResult{Definition: w.def, OutputDir: w.names.FieldValue(2)}
			return w, tea.Quit
		}
	}
	return w, nil
}

func (w DefinitionWizard) listStep() bool {
	switch w.step {
	case stepVersion, stepKind, stepTransaction, stepOptions, stepConfirm:
		return true
	}
	return false
}

func (w DefinitionWizard) cancel() (tea.Model, tea.Cmd) {
	w.result = DefinitionResult{Cancelled: true}
	return w, tea.Quit
}

func (w DefinitionWizard) advance(next step) (tea.Model, tea.Cmd) {
	if w.step != stepProperties {
		w.history = append(w.history, w.step)
	}
	if next == stepOptions {
		w.options = w.optionList()
	}
	w.step = next
	if next == stepNames {
		cmd := w.names.Focus()
		return w, cmd
	}
	return w, nil
}

// back pops the history. The property step is never recorded, so going
// back from the confirmation returns to the names form.
func (w DefinitionWizard) back() (tea.Model, tea.Cmd) {
	if len(w.history) == 0 {
		return w.cancel()
	}
	w.step = w.history[len(w.history)-1]
	w.history = w.history[:len(w.history)-1]
	if w.step == stepNames {
		cmd := w.names.Focus()
		return w, cmd
	}
	return w, nil
}

func (w DefinitionWizard) outbound() bool {
	return w.kind.Value() != kindInbound
}

func (w DefinitionWizard) inbound() bool {
	return w.version.Value() != codegen.Version10 && w.kind.Value() != kindOutbound
}

func (w DefinitionWizard) atLeast(v string) bool {
	d := codegen.Definition{Version: w.version.Value()}
	return d.AtLeast(v)
}

// optionList offers only the toggles that apply to the chosen version and
// kind.
func (w DefinitionWizard) optionList() components.Checklist {
	var items []components.Item
	annotations := w.atLeast(codegen.Version16)
	if annotations {
		items = append(items, components.Item{Key: optAnnotations, Label: "Use annotations", Checked: true})
	}
	if w.outbound() {
		items = append(items, components.Item{Key: optCCI, Label: "Common Client Interface", Description: "Use javax.resource.cci connection types"})
		if w.version.Value() != codegen.Version10 {
			items = append(items, components.Item{Key: optRAAssociation, Label: "Associate connection factories with the resource adapter"})
		}
	}
	if w.atLeast(codegen.Version15) {
		items = append(items, components.Item{Key: optAdminObject, Label: "Admin object"})
	}
	items = append(items,
		components.Item{Key: optRaXML, Label: "Generate ra.xml", Checked: !annotations},
		components.Item{Key: optIronJacamar, Label: "Generate ironjacamar.xml", Checked: true},
		components.Item{Key: optMaven, Label: "Maven build", Description: "Generate pom.xml instead of build.xml"},
	)
	return components.NewChecklist("Options", items...)
}

func (w *DefinitionWizard) buildDefinition() {
	def := &codegen.Definition{
		Version:        w.version.Value(),
		Package:        w.names.FieldValue(0),
		Prefix:         w.names.FieldValue(1),
		Annotations:    w.options.Checked(optAnnotations),
		Outbound:       w.outbound(),
		Inbound:        w.inbound(),
		Transaction:    codegen.NoTransaction,
		CCI:            w.options.Checked(optCCI),
		RAAssociation:  w.options.Checked(optRAAssociation),
		RaXML:          w.options.Checked(optRaXML),
		IronJacamarXML: w.options.Checked(optIronJacamar),
		Build:          codegen.BuildAnt,
	}
	if def.Outbound {
		def.Transaction = w.transaction.Value()
	}
	if w.options.Checked(optMaven) {
		def.Build = codegen.BuildMaven
	}
	if w.options.Checked(optAdminObject) {
		def.AdminObjects = []codegen.AdminObjectDefinition{{}}
	}
	def.ApplyDefaults()

	w.def = def
	w.listIdx = 0
	w.lists = nil
	if def.ResourceAdapter != nil {
		w.lists = append(w.lists, propertyList{def.ResourceAdapter.Class, &def.ResourceAdapter.ConfigProperties})
	}
	for i := range def.ConnectionFactories {
		cf := &def.ConnectionFactories[i]
		w.lists = append(w.lists, propertyList{cf.MCFClass, &cf.ConfigProperties})
	}
	if def.MessageListener != nil {
		w.lists = append(w.lists, propertyList{def.MessageListener.ActivationSpec, &def.MessageListener.ConfigProperties})
	}
	for i := range def.AdminObjects {
		ao := &def.AdminObjects[i]
		w.lists = append(w.lists, propertyList{ao.Class, &ao.ConfigProperties})
	}
}

func (w *DefinitionWizard) newPropertyForm() tea.Cmd {
	list := w.lists[w.listIdx]
	existing := *list.props
	unique := func(name string) error {
		if !codegen.IsJavaIdentifier(name) {
			return errors.New("not a valid Java identifier")
		}
		for _, p := range existing {
			if p.Name == name {
				return fmt.Errorf("%s is already defined", name)
			}
		}
		return nil
	}
	w.props = components.NewForm(
		fmt.Sprintf("Config properties of %s", list.owner),
		components.NewTextField("Name", "leave empty to continue").
			WithValidator(unique),
		components.NewTextField("Type", "String").
			WithValue("String").
			WithRequired(true).
			WithHint(strings.Join(codegen.PropertyTypes, ", ")).
			WithValidator(validWith(codegen.IsPropertyType, "unsupported property type")),
		components.NewTextField("Default value", ""),
	)
	return w.props.Focus()
}

// updateProperties adds one property per submitted form. Enter on an empty
// name moves on to the next list.
func (w DefinitionWizard) updateProperties(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEnter &&
		w.props.FocusIndex() == propName && w.props.FieldValue(propName) == "" {
		w.listIdx++
		if w.listIdx >= len(w.lists) {
			return w.advance(stepConfirm)
		}
		cmd := w.newPropertyForm()
		return w, cmd
	}

	var cmd tea.Cmd
	w.props, cmd = w.props.Update(msg)
	if !w.props.Submitted() {
		return w, cmd
	}
	list := w.lists[w.listIdx]
	*list.props = append(*list.props, codegen.ConfigProperty{
		Name:     w.props.FieldValue(propName),
		Type:     w.props.FieldValue(propType),
		Value:    w.props.FieldValue(propValue),
		Required: w.atLeast(codegen.Version15) && w.props.FieldValue(propValue) == "",
	})
	cmd = w.newPropertyForm()
	return w, cmd
}

// View implements tea.Model.
func (w DefinitionWizard) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("jcagen: new resource adapter"))
	b.WriteString("\n")

	switch w.step {
	case stepVersion:
		b.WriteString(w.version.View())
	case stepKind:
		b.WriteString(w.kind.View())
	case stepTransaction:
		b.WriteString(w.transaction.View())
	case stepOptions:
		b.WriteString(w.options.View())
	case stepNames:
		b.WriteString(w.names.View())
	case stepProperties:
		b.WriteString(tui.SubtitleStyle.Render(fmt.Sprintf("%d of %d", w.listIdx+1, len(w.lists))))
		b.WriteString("\n")
		b.WriteString(w.props.View())
	case stepConfirm:
		b.WriteString(w.viewSummary())
	}

	b.WriteString("\n")
	if w.listStep() {
		b.WriteString(tui.HelpStyle.Render(w.keys.HelpText()))
	} else {
		b.WriteString(tui.HelpStyle.Render(w.keys.InputHelpText()))
	}
	return b.String()
}

func (w DefinitionWizard) viewSummary() string {
	def := w.def
	var b strings.Builder
	row := func(k, v string) {
		b.WriteString(tui.KeyStyle.Render(k))
		b.WriteString(v)
		b.WriteString("\n")
	}
	kind := w.kind.Value()
	if def.Version == codegen.Version10 {
		kind = kindOutbound
	}
	row("JCA version", def.Version)
	row("Kind", kind)
	row("Package", def.Package)
	if def.ResourceAdapter != nil {
		row("Resource adapter", def.ResourceAdapter.Class)
	}
	if def.Outbound {
		row("Transaction", def.Transaction)
		for _, cf := range def.ConnectionFactories {
			row("Connection factory", cf.CFInterface+" ("+cf.JndiName+")")
		}
	}
	if def.MessageListener != nil {
		row("Message listener", def.MessageListener.Listener)
	}
	for _, ao := range def.AdminObjects {
		row("Admin object", ao.Interface)
	}
	row("Build", def.Build)
	row("Output directory", w.names.FieldValue(2))

	body := strings.TrimSuffix(b.String(), "\n")
	return tui.SummaryStyle.Render(body) + "\n" +
		tui.SubtitleStyle.Render(tui.SymbolArrowRight+" enter generates the project")
}

// Result returns the wizard result.
func (w DefinitionWizard) Result() DefinitionResult {
	return w.result
}

// RunDefinitionWizard runs the wizard on the terminal.
func RunDefinitionWizard(outputDir string) (DefinitionResult, error) {
	p := tea.NewProgram(NewDefinitionWizard(outputDir), tea.WithAltScreen())

	model, err := p.Run()
	if err != nil {
		return DefinitionResult{Cancelled: true}, err
	}
	return model.(DefinitionWizard).Result(), nil
}
