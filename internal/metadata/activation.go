package metadata

import "fmt"

// TransactionSupport is the transaction level of a resource adapter.
type TransactionSupport int

const (
	TxUnset TransactionSupport = iota
	NoTransaction
	LocalTransaction
	XATransaction
)

var transactionSupportNames = [...]string{
	TxUnset:          "",
	NoTransaction:    "NoTransaction",
	LocalTransaction: "LocalTransaction",
	XATransaction:    "XATransaction",
}

func (t TransactionSupport) String() string {
	if t < 0 || int(t) >= len(transactionSupportNames) {
		return fmt.Sprintf("TransactionSupport(%d)", int(t))
	}
	return transactionSupportNames[t]
}

// ParseTransactionSupport maps a schema name to its value.
func ParseTransactionSupport(s string) (TransactionSupport, error) {
	for i, name := range transactionSupportNames {
		if i > 0 && name == s {
			return TransactionSupport(i), nil
		}
	}
	return TxUnset, fmt.Errorf("unknown transaction support %q", s)
}

// Schema is the namespace, schema location and version declared on a
// document element. The zero value writes a bare element.
type Schema struct {
	Namespace      string
	SchemaLocation string
	Version        string
}

// IsZero reports whether nothing was declared.
func (s Schema) IsZero() bool { return s == Schema{} }

// ActivationParams holds the fields of an Activation. Schema is only
// written for an ironjacamar document element.
type ActivationParams struct {
	Schema                Schema
	ID                    string
	Archive               string
	BeanValidationGroups  []string
	BootstrapContext      string
	ConfigProperties      map[string]string
	TransactionSupport    TransactionSupport
	ConnectionDefinitions []*ConnectionDefinition
	AdminObjects          []*AdminObject
	Expressions           map[string]string
}

// Activation is the deployment configuration of one resource adapter: the
// body of an ironjacamar.xml document or of a resource-adapter element.
type Activation struct {
	expressionHolder
	schema                Schema
	id                    string
	archive               string
	beanValidationGroups  []string
	bootstrapContext      string
	configProperties      map[string]string
	transactionSupport    TransactionSupport
	connectionDefinitions []*ConnectionDefinition
	adminObjects          []*AdminObject
}

// NewActivation validates p and returns an Activation. JNDI names must be
// unique across connection definitions and admin objects.
func NewActivation(p ActivationParams) (*Activation, error) {
	seen := make(map[string]string)
	for _, cd := range p.ConnectionDefinitions {
		if prev, ok := seen[cd.JndiName()]; ok {
			return nil, validationErr(ErrInconsistent, elemConnectionDefinition, attrJndiName,
				"jndi-name %q already used by %s", cd.JndiName(), prev)
		}
		seen[cd.JndiName()] = elemConnectionDefinition
	}
	for _, ao := range p.AdminObjects {
		if prev, ok := seen[ao.JndiName()]; ok {
			return nil, validationErr(ErrInconsistent, elemAdminObject, attrJndiName,
				"jndi-name %q already used by %s", ao.JndiName(), prev)
		}
		seen[ao.JndiName()] = elemAdminObject
	}
	return &Activation{
		expressionHolder:      expressionHolder{copyMap(p.Expressions)},
		schema:                p.Schema,
		id:                    p.ID,
		archive:               p.Archive,
		beanValidationGroups:  append([]string(nil), p.BeanValidationGroups...),
		bootstrapContext:      p.BootstrapContext,
		configProperties:      copyMap(p.ConfigProperties),
		transactionSupport:    p.TransactionSupport,
		connectionDefinitions: append([]*ConnectionDefinition(nil), p.ConnectionDefinitions...),
		adminObjects:          append([]*AdminObject(nil), p.AdminObjects...),
	}, nil
}

func (a *Activation) Schema() Schema                         { return a.schema }
func (a *Activation) ID() string                             { return a.id }
func (a *Activation) Archive() string                        { return a.archive }
func (a *Activation) BootstrapContext() string               { return a.bootstrapContext }
func (a *Activation) TransactionSupport() TransactionSupport { return a.transactionSupport }

func (a *Activation) BeanValidationGroups() []string {
	return append([]string(nil), a.beanValidationGroups...)
}

func (a *Activation) ConfigProperties() map[string]string { return copyMap(a.configProperties) }

func (a *Activation) ConnectionDefinitions() []*ConnectionDefinition {
	return append([]*ConnectionDefinition(nil), a.connectionDefinitions...)
}

func (a *Activation) AdminObjects() []*AdminObject {
	return append([]*AdminObject(nil), a.adminObjects...)
}

// ConnectionDefinition returns the connection definition bound to jndiName.
func (a *Activation) ConnectionDefinition(jndiName string) (*ConnectionDefinition, bool) {
	for _, cd := range a.connectionDefinitions {
		if cd.JndiName() == jndiName {
			return cd, true
		}
	}
	return nil, false
}

// Params copies the state of a.
func (a *Activation) Params() ActivationParams {
	return ActivationParams{
		Schema:                a.schema,
		ID:                    a.id,
		Archive:               a.archive,
		BeanValidationGroups:  a.BeanValidationGroups(),
		BootstrapContext:      a.bootstrapContext,
		ConfigProperties:      copyMap(a.configProperties),
		TransactionSupport:    a.transactionSupport,
		ConnectionDefinitions: a.ConnectionDefinitions(),
		AdminObjects:          a.AdminObjects(),
		Expressions:           copyMap(a.expressions),
	}
}

// WithConfigProperties returns a copy of a with its config properties
// replaced by props.
func (a *Activation) WithConfigProperties(props map[string]string) (*Activation, error) {
	p := a.Params()
	p.Expressions = replaceConfigProperties(p.Expressions, a.configProperties, props)
	p.ConfigProperties = props
	return NewActivation(p)
}

// WithConnectionDefinitions returns a copy of a with its connection
// definitions replaced by cds.
func (a *Activation) WithConnectionDefinitions(cds []*ConnectionDefinition) (*Activation, error) {
	p := a.Params()
	p.ConnectionDefinitions = cds
	return NewActivation(p)
}

// Document is a parsed descriptor: either a single ironjacamar.xml
// activation or a resource-adapters list.
type Document struct {
	Root        string // "ironjacamar" or "resource-adapters"
	Schema      Schema // declared on the document element
	Activations []*Activation
}

// IsResourceAdapters reports whether the document root is resource-adapters.
func (d *Document) IsResourceAdapters() bool { return d.Root == elemResourceAdapters }
