package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// PropertyTypes lists the Java types a JCA config-property may have.
var PropertyTypes = []string{
	"String", "Boolean", "Integer", "Double", "Byte", "Short", "Long", "Float", "Character",
}

var javaKeywords = map[string]struct{}{}

func init() {
	for _, kw := range strings.Fields(`abstract assert boolean break byte case catch char class const
		continue default do double else enum extends final finally float for goto if implements
		import instanceof int interface long native new package private protected public return
		short static strictfp super switch synchronized this throw throws transient try void
		volatile while true false null`) {
		javaKeywords[kw] = struct{}{}
	}
}

// IsJavaIdentifier reports whether s is a legal Java identifier.
func IsJavaIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if _, ok := javaKeywords[s]; ok {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// IsJavaPackage reports whether s is a dot-separated list of identifiers.
func IsJavaPackage(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !IsJavaIdentifier(part) {
			return false
		}
	}
	return true
}

// IsPropertyType reports whether t is an allowed config-property type.
func IsPropertyType(t string) bool {
	for _, pt := range PropertyTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// Validate checks the definition and returns every problem found, wrapped in
// jcagen.ErrInvalidDefinition. Call ApplyDefaults first.
func (d *Definition) Validate() error {
	var result *multierror.Error
	fail := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if versionRank(d.Version) == 0 {
		fail("unsupported JCA version %q (want 1.0, 1.5, 1.6 or 1.7)", d.Version)
	}
	if !IsJavaPackage(d.Package) {
		fail("package %q is not a valid Java package name", d.Package)
	}
	if d.Build != BuildAnt && d.Build != BuildMaven {
		fail("unsupported build type %q (want ant or maven)", d.Build)
	}
	switch d.Transaction {
	case NoTransaction, LocalTransaction, XATransaction:
	default:
		fail("unsupported transaction support %q", d.Transaction)
	}
	if d.Annotations && !d.AtLeast(Version16) {
		fail("annotations require JCA 1.6 or later")
	}
	if !d.Inbound && !d.Outbound {
		fail("at least one of inbound or outbound must be enabled")
	}
	if d.Inbound && !d.AtLeast(Version15) {
		fail("inbound support requires JCA 1.5 or later")
	}
	if d.Inbound && d.MessageListener == nil {
		fail("inbound support requires a message listener")
	}
	if d.Inbound && d.ResourceAdapter == nil {
		fail("inbound support requires a resource adapter class")
	}
	if d.Outbound && len(d.ConnectionFactories) == 0 {
		fail("outbound support requires at least one connection factory")
	}
	if len(d.AdminObjects) > 0 && !d.AtLeast(Version15) {
		fail("admin objects require JCA 1.5 or later")
	}
	if d.Version == Version10 && d.ResourceAdapter != nil {
		fail("JCA 1.0 has no resource adapter class")
	}

	classes := map[string]string{}
	class := func(owner, name string) {
		if !IsJavaIdentifier(name) {
			fail("%s: %q is not a valid Java class name", owner, name)
			return
		}
		if prev, dup := classes[name]; dup {
			fail("%s: class %s is already used by %s", owner, name, prev)
			return
		}
		classes[name] = owner
	}
	props := func(owner string, list []ConfigProperty) {
		seen := map[string]struct{}{}
		for _, p := range list {
			if strings.TrimSpace(p.Name) == "" {
				fail("%s: config property name must not be empty", owner)
				continue
			}
			if !IsJavaIdentifier(p.Name) {
				fail("%s: config property %q is not a valid Java identifier", owner, p.Name)
			}
			if _, dup := seen[p.Name]; dup {
				fail("%s: duplicate config property %q", owner, p.Name)
			}
			seen[p.Name] = struct{}{}
			if !IsPropertyType(p.Type) {
				fail("%s: config property %q has unsupported type %q", owner, p.Name, p.Type)
			}
		}
	}
	jndi := map[string]struct{}{}
	jndiName := func(owner, name string) {
		if name == "" {
			return
		}
		if _, dup := jndi[name]; dup {
			fail("%s: duplicate JNDI name %q", owner, name)
		}
		jndi[name] = struct{}{}
	}

	if ra := d.ResourceAdapter; ra != nil {
		class("resource adapter", ra.Class)
		props("resource adapter", ra.ConfigProperties)
	}
	if d.Outbound {
		for i := range d.ConnectionFactories {
			cf := &d.ConnectionFactories[i]
			owner := fmt.Sprintf("connection factory %d", i+1)
			class(owner, cf.MCFClass)
			class(owner, cf.MCClass)
			class(owner, cf.MCMetaDataClass())
			class(owner, cf.CFInterface)
			class(owner, cf.CFClass)
			class(owner, cf.ConnInterface)
			class(owner, cf.ConnClass)
			if d.CCI {
				class(owner, cf.ConnMetaDataClass())
				class(owner, cf.ConnSpecClass())
			}
			props(owner, cf.ConfigProperties)
			jndiName(owner, cf.JndiName)
		}
	}
	if d.Inbound && d.MessageListener != nil {
		ml := d.MessageListener
		class("message listener", ml.Listener)
		class("message listener", ml.ActivationSpec)
		class("message listener", ml.Activation)
		props("activation spec", ml.ConfigProperties)
	}
	for i := range d.AdminObjects {
		ao := &d.AdminObjects[i]
		owner := fmt.Sprintf("admin object %d", i+1)
		class(owner, ao.Interface)
		class(owner, ao.Class)
		props(owner, ao.ConfigProperties)
		jndiName(owner, ao.JndiName)
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", jcagen.ErrInvalidDefinition, err)
	}
	return nil
}
