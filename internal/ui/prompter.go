package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vvka-141/jcagen/internal/codegen"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// Prompter collects a codegen.Definition line by line. It is used when
// stdin is not a terminal, so every answer is one line and an empty line
// accepts the default shown in brackets.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	p   *message.Printer
}

// NewPrompter creates a Prompter printing in lang.
func NewPrompter(in io.Reader, out io.Writer, lang language.Tag) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		p:   NewPrinter(lang),
	}
}

// PromptDefinition asks for every part of a resource adapter definition.
// A config property list ends at the first empty property name.
func (pr *Prompter) PromptDefinition() (*codegen.Definition, error) {
	def := &codegen.Definition{}

	var err error
	if def.Version, err = pr.choice(msgVersion, jcagen.DefaultJCAVersion, codegen.Version17, codegen.Version16, codegen.Version15, codegen.Version10); err != nil {
		return nil, err
	}

	kind := "O"
	if def.Version != codegen.Version10 {
		if kind, err = pr.choice(msgType, "O", "O", "I", "B"); err != nil {
			return nil, err
		}
	}
	def.Outbound = kind == "O" || kind == "B"
	def.Inbound = kind == "I" || kind == "B"

	if def.AtLeast(codegen.Version16) {
		if def.Annotations, err = pr.yesNo(msgAnnotations, true); err != nil {
			return nil, err
		}
	}

	if def.Package, err = pr.name(msgPackage, "", codegen.IsJavaPackage); err != nil {
		return nil, err
	}
	if def.Prefix, err = pr.name(msgPrefix, codegen.DefaultPrefix, codegen.IsJavaIdentifier); err != nil {
		return nil, err
	}
	def.ApplyDefaults()

	if ra := def.ResourceAdapter; ra != nil {
		if ra.Class, err = pr.class(msgRAClass, ra.Class); err != nil {
			return nil, err
		}
		if ra.ConfigProperties, err = pr.properties(msgRAProps, def); err != nil {
			return nil, err
		}
	}

	if def.Outbound {
		if err := pr.outbound(def); err != nil {
			return nil, err
		}
	}
	if def.Inbound {
		if err := pr.inbound(def); err != nil {
			return nil, err
		}
	}
	if def.AtLeast(codegen.Version15) {
		if err := pr.adminObjects(def); err != nil {
			return nil, err
		}
	}

	if def.RaXML, err = pr.yesNo(msgRaXML, !def.UseAnnotations()); err != nil {
		return nil, err
	}
	if def.Build, err = pr.choice(msgBuild, jcagen.DefaultBuildType, codegen.BuildAnt, codegen.BuildMaven); err != nil {
		return nil, err
	}
	if def.Outbound || len(def.AdminObjects) > 0 {
		if def.IronJacamarXML, err = pr.yesNo(msgIronJacamar, true); err != nil {
			return nil, err
		}
	}
	return def, nil
}

func (pr *Prompter) outbound(def *codegen.Definition) error {
	cf := &def.ConnectionFactories[0]
	var err error
	if cf.MCFClass, err = pr.class(msgMCFClass, cf.MCFClass); err != nil {
		return err
	}
	if cf.ConfigProperties, err = pr.properties(msgMCFProps, def); err != nil {
		return err
	}
	if cf.MCClass, err = pr.class(msgMCClass, cf.MCClass); err != nil {
		return err
	}

	tx, err := pr.choice(msgTransaction, "N", "N", "L", "X")
	if err != nil {
		return err
	}
	def.Transaction = map[string]string{
		"N": codegen.NoTransaction,
		"L": codegen.LocalTransaction,
		"X": codegen.XATransaction,
	}[tx]

	if def.CCI, err = pr.yesNo(msgCCI, false); err != nil {
		return err
	}
	if !def.CCI {
		for _, q := range []struct {
			key string
			dst *string
		}{
			{msgCFInterface, &cf.CFInterface},
			{msgCFClass, &cf.CFClass},
			{msgConnInterface, &cf.ConnInterface},
			{msgConnClass, &cf.ConnClass},
		} {
			if *q.dst, err = pr.class(q.key, *q.dst); err != nil {
				return err
			}
		}
		cf.JndiName = "java:/eis/" + cf.CFInterface
	}

	if def.ResourceAdapter != nil {
		if def.RAAssociation, err = pr.yesNo(msgRAAssociation, true); err != nil {
			return err
		}
	}
	return nil
}

func (pr *Prompter) inbound(def *codegen.Definition) error {
	ml := def.MessageListener
	var err error
	if ml.Listener, err = pr.class(msgListener, ml.Listener); err != nil {
		return err
	}
	if ml.ActivationSpec, err = pr.class(msgActivationSpec, ml.ActivationSpec); err != nil {
		return err
	}
	if ml.ConfigProperties, err = pr.properties(msgActivationProp, def); err != nil {
		return err
	}
	ml.Activation, err = pr.class(msgActivation, ml.Activation)
	return err
}

func (pr *Prompter) adminObjects(def *codegen.Definition) error {
	more, err := pr.yesNo(msgAdminObject, false)
	if err != nil {
		return err
	}
	for i := 0; more; i++ {
		iface := def.Prefix + "AdminObject"
		if i > 0 {
			iface = fmt.Sprintf("%s%d", iface, i+1)
		}
		ao := codegen.AdminObjectDefinition{}
		if ao.Interface, err = pr.class(msgAOInterface, iface); err != nil {
			return err
		}
		if ao.Class, err = pr.class(msgAOClass, ao.Interface+"Impl"); err != nil {
			return err
		}
		if ao.ConfigProperties, err = pr.properties(msgAOProps, def); err != nil {
			return err
		}
		ao.JndiName = "java:/eis/ao/" + ao.Interface
		def.AdminObjects = append(def.AdminObjects, ao)

		if more, err = pr.yesNo(msgAnotherAO, false); err != nil {
			return err
		}
	}
	return nil
}

// properties reads config properties until an empty name.
func (pr *Prompter) properties(header string, def *codegen.Definition) ([]codegen.ConfigProperty, error) {
	pr.p.Fprintln(pr.out, pr.p.Sprintf(header))

	var props []codegen.ConfigProperty
	for {
		name, err := pr.ask(msgPropName, "")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return props, nil
		}
		if !codegen.IsJavaIdentifier(name) {
			pr.warn(msgInvalidName, name)
			continue
		}

		prop := codegen.ConfigProperty{Name: name}
		for {
			if prop.Type, err = pr.ask(msgPropType, "String"); err != nil {
				return nil, err
			}
			if codegen.IsPropertyType(prop.Type) {
				break
			}
			pr.warn(msgInvalidType, prop.Type, strings.Join(codegen.PropertyTypes, ", "))
		}
		if prop.Value, err = pr.ask(msgPropValue, ""); err != nil {
			return nil, err
		}
		if def.AtLeast(codegen.Version15) {
			if prop.Required, err = pr.yesNo(msgPropRequired, false); err != nil {
				return nil, err
			}
		}
		props = append(props, prop)
	}
}

func (pr *Prompter) class(key, def string) (string, error) {
	return pr.name(key, def, codegen.IsJavaIdentifier)
}

func (pr *Prompter) name(key, def string, valid func(string) bool) (string, error) {
	for {
		v, err := pr.ask(key, def)
		if err != nil {
			return "", err
		}
		switch {
		case v == "":
			pr.warn(msgRequired)
		case !valid(v):
			pr.warn(msgInvalidName, v)
		default:
			return v, nil
		}
	}
}

func (pr *Prompter) choice(key, def string, choices ...string) (string, error) {
	for {
		v, err := pr.ask(key, def)
		if err != nil {
			return "", err
		}
		for _, c := range choices {
			if strings.EqualFold(v, c) {
				return c, nil
			}
		}
		pr.warn(msgInvalidChoice, v, strings.Join(choices, "/"))
	}
}

func (pr *Prompter) yesNo(key string, def bool) (bool, error) {
	yes, no := pr.p.Sprintf(msgYes), pr.p.Sprintf(msgNo)
	d := no
	if def {
		d = yes
	}
	for {
		v, err := pr.ask(key, d)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(v) {
		case yes, "y", "yes":
			return true, nil
		case no, "n", "no":
			return false, nil
		}
		pr.warn(msgInvalidChoice, v, yes+"/"+no)
	}
}

// ask prints the prompt and returns the trimmed answer or def when the
// answer is empty. End of input is a usage error.
func (pr *Prompter) ask(key, def string) (string, error) {
	prompt := pr.p.Sprintf(key)
	if def != "" {
		prompt += " [" + def + "]"
	}
	fmt.Fprint(pr.out, prompt+": ")

	line, err := pr.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: input ended before the definition was complete", jcagen.ErrUsage)
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (pr *Prompter) warn(key string, args ...interface{}) {
	pr.p.Fprintf(pr.out, key, args...)
	fmt.Fprintln(pr.out)
}
