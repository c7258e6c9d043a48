package codegen

import (
	"path"
	"strings"

	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// Supported JCA versions.
const (
	Version10 = "1.0"
	Version15 = "1.5"
	Version16 = "1.6"
	Version17 = "1.7"
)

// Build tools.
const (
	BuildAnt   = "ant"
	BuildMaven = "maven"
)

// Transaction support levels.
const (
	NoTransaction    = "NoTransaction"
	LocalTransaction = "LocalTransaction"
	XATransaction    = "XATransaction"
)

// DefaultPrefix is prepended to role names when a class name is not given.
const DefaultPrefix = "Acme"

// Definition describes the resource adapter to generate.
type Definition struct {
	Version             string                        `yaml:"version"`
	Package             string                        `yaml:"package"`
	Prefix              string                        `yaml:"prefix,omitempty"`
	Annotations         bool                          `yaml:"annotations"`
	Outbound            bool                          `yaml:"outbound"`
	Inbound             bool                          `yaml:"inbound"`
	Transaction         string                        `yaml:"transaction"`
	ResourceAdapter     *ResourceAdapterDefinition    `yaml:"resourceAdapter,omitempty"`
	ConnectionFactories []ConnectionFactoryDefinition `yaml:"connectionFactories,omitempty"`
	CCI                 bool                          `yaml:"cci"`
	RAAssociation       bool                          `yaml:"raAssociation"`
	MessageListener     *InboundDefinition            `yaml:"messageListener,omitempty"`
	AdminObjects        []AdminObjectDefinition       `yaml:"adminObjects,omitempty"`
	RaXML               bool                          `yaml:"raXml"`
	IronJacamarXML      bool                          `yaml:"ironjacamarXml"`
	Build               string                        `yaml:"build"`
}

// ConfigProperty is a JavaBean property exposed as a JCA config-property.
type ConfigProperty struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Value    string `yaml:"value,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

// ResourceAdapterDefinition names the ResourceAdapter JavaBean.
type ResourceAdapterDefinition struct {
	Class            string           `yaml:"class"`
	ConfigProperties []ConfigProperty `yaml:"configProperties,omitempty"`
}

// ConnectionFactoryDefinition describes one outbound connection definition.
type ConnectionFactoryDefinition struct {
	MCFClass         string           `yaml:"mcfClass"`
	MCClass          string           `yaml:"mcClass"`
	CFInterface      string           `yaml:"cfInterface"`
	CFClass          string           `yaml:"cfClass"`
	ConnInterface    string           `yaml:"connInterface"`
	ConnClass        string           `yaml:"connClass"`
	JndiName         string           `yaml:"jndiName,omitempty"`
	ConfigProperties []ConfigProperty `yaml:"configProperties,omitempty"`
}

// MCMetaDataClass is the ManagedConnectionMetaData implementation name.
func (cf *ConnectionFactoryDefinition) MCMetaDataClass() string { return cf.MCClass + "MetaData" }

// ConnMetaDataClass is the CCI ConnectionMetaData implementation name.
func (cf *ConnectionFactoryDefinition) ConnMetaDataClass() string { return cf.ConnClass + "MetaData" }

// ConnSpecClass is the CCI ConnectionSpec implementation name.
func (cf *ConnectionFactoryDefinition) ConnSpecClass() string { return cf.ConnClass + "Spec" }

// InboundDefinition describes the message inflow side of the adapter.
type InboundDefinition struct {
	Listener         string           `yaml:"listener"`
	ActivationSpec   string           `yaml:"activationSpec"`
	Activation       string           `yaml:"activation"`
	ConfigProperties []ConfigProperty `yaml:"configProperties,omitempty"`
}

// AdminObjectDefinition describes an administered object.
type AdminObjectDefinition struct {
	Interface        string           `yaml:"interface"`
	Class            string           `yaml:"class"`
	JndiName         string           `yaml:"jndiName,omitempty"`
	ConfigProperties []ConfigProperty `yaml:"configProperties,omitempty"`
}

// NewDefinition returns an outbound-only definition for package pkg with
// every class name derived from prefix.
func NewDefinition(pkg, prefix string) *Definition {
	d := &Definition{Package: pkg, Prefix: prefix, Outbound: true}
	d.ApplyDefaults()
	return d
}

// ApplyDefaults fills empty fields with conventional values. Class names are
// derived from Prefix.
func (d *Definition) ApplyDefaults() {
	if d.Version == "" {
		d.Version = jcagen.DefaultJCAVersion
	}
	if d.Build == "" {
		d.Build = jcagen.DefaultBuildType
	}
	if d.Transaction == "" {
		d.Transaction = NoTransaction
	}
	prefix := d.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	if d.ResourceAdapter == nil && d.Version != Version10 {
		d.ResourceAdapter = &ResourceAdapterDefinition{}
	}
	if d.ResourceAdapter != nil && d.ResourceAdapter.Class == "" {
		d.ResourceAdapter.Class = prefix + "ResourceAdapter"
	}

	if d.Outbound && len(d.ConnectionFactories) == 0 {
		d.ConnectionFactories = []ConnectionFactoryDefinition{{}}
	}
	for i := range d.ConnectionFactories {
		cf := &d.ConnectionFactories[i]
		p := prefix
		if i > 0 {
			p = prefix + strings.Repeat("X", i)
		}
		setDefault(&cf.MCFClass, p+"ManagedConnectionFactory")
		setDefault(&cf.MCClass, p+"ManagedConnection")
		setDefault(&cf.CFInterface, p+"ConnectionFactory")
		setDefault(&cf.CFClass, p+"ConnectionFactoryImpl")
		setDefault(&cf.ConnInterface, p+"Connection")
		setDefault(&cf.ConnClass, p+"ConnectionImpl")
		setDefault(&cf.JndiName, "java:/eis/"+cf.CFInterface)
	}

	if d.Inbound {
		if d.MessageListener == nil {
			d.MessageListener = &InboundDefinition{}
		}
		setDefault(&d.MessageListener.Listener, prefix+"MessageListener")
		setDefault(&d.MessageListener.ActivationSpec, prefix+"ActivationSpec")
		setDefault(&d.MessageListener.Activation, prefix+"Activation")
	}

	for i := range d.AdminObjects {
		ao := &d.AdminObjects[i]
		setDefault(&ao.Interface, prefix+"AdminObject")
		setDefault(&ao.Class, ao.Interface+"Impl")
		setDefault(&ao.JndiName, "java:/eis/ao/"+ao.Interface)
	}

	for _, props := range d.propertyLists() {
		for i := range *props {
			setDefault(&(*props)[i].Type, "String")
		}
	}
}

func setDefault(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// propertyLists returns every config-property list in the definition.
func (d *Definition) propertyLists() []*[]ConfigProperty {
	var lists []*[]ConfigProperty
	if d.ResourceAdapter != nil {
		lists = append(lists, &d.ResourceAdapter.ConfigProperties)
	}
	for i := range d.ConnectionFactories {
		lists = append(lists, &d.ConnectionFactories[i].ConfigProperties)
	}
	if d.MessageListener != nil {
		lists = append(lists, &d.MessageListener.ConfigProperties)
	}
	for i := range d.AdminObjects {
		lists = append(lists, &d.AdminObjects[i].ConfigProperties)
	}
	return lists
}

// AtLeast reports whether the definition targets version v or later.
func (d *Definition) AtLeast(v string) bool {
	return versionRank(d.Version) >= versionRank(v)
}

func versionRank(v string) int {
	switch v {
	case Version10:
		return 10
	case Version15:
		return 15
	case Version16:
		return 16
	case Version17:
		return 17
	}
	return 0
}

// UseAnnotations reports whether generated classes carry JCA annotations.
func (d *Definition) UseAnnotations() bool {
	return d.Annotations && d.AtLeast(Version16)
}

// PackageDir is the source directory of the package, relative to the
// project root.
func (d *Definition) PackageDir() string {
	return path.Join(append([]string{"src", "main", "java"}, strings.Split(d.Package, ".")...)...)
}

// JavaPath is the project-relative path of the source file for class.
func (d *Definition) JavaPath(class string) string {
	return path.Join(d.PackageDir(), class+".java")
}

// ArtifactName is the base name of the built archive.
func (d *Definition) ArtifactName() string {
	parts := strings.Split(d.Package, ".")
	return parts[len(parts)-1]
}
