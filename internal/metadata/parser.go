package metadata

import (
	"encoding/xml"
	"io"

	"github.com/vvka-141/jcagen/internal/logging"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// Parser reads IronJacamar descriptors. Each parse consumes one document and
// returns fully validated value objects or an error; partial results are
// never returned.
type Parser struct {
	lookup Lookup
	logger jcagen.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLookup sets the property source for ${...} expressions.
func WithLookup(lookup Lookup) Option {
	return func(p *Parser) { p.lookup = lookup }
}

// WithLogger sets the logger that receives expression warnings.
func WithLogger(logger jcagen.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// NewParser creates a Parser resolving expressions against the process
// environment unless WithLookup is given.
func NewParser(opts ...Option) *Parser {
	p := &Parser{lookup: EnvLookup(), logger: logging.NewNullLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseIronJacamar parses an ironjacamar.xml document.
func (p *Parser) ParseIronJacamar(in io.Reader, path string) (*Activation, error) {
	return parseRoot(p, in, path, elemIronJacamar, (*reader).parseIronJacamar)
}

// ParseResourceAdapters parses a resource-adapters document.
func (p *Parser) ParseResourceAdapters(in io.Reader, path string) ([]*Activation, error) {
	return parseRoot(p, in, path, elemResourceAdapters, (*reader).parseResourceAdapters)
}

// ParseConnectionDefinition parses a document whose root is a single
// connection-definition element.
func (p *Parser) ParseConnectionDefinition(in io.Reader, path string) (*ConnectionDefinition, error) {
	return parseRoot(p, in, path, elemConnectionDefinition, (*reader).parseConnectionDefinition)
}

// ParseAdminObject parses a document whose root is a single admin-object
// element.
func (p *Parser) ParseAdminObject(in io.Reader, path string) (*AdminObject, error) {
	return parseRoot(p, in, path, elemAdminObject, (*reader).parseAdminObject)
}

// ParseDocument parses either an ironjacamar or a resource-adapters document,
// chosen by the root element.
func (p *Parser) ParseDocument(in io.Reader, path string) (*Document, error) {
	r := newReader(in, path, p.lookup, p.logger)
	start, err := r.rootElement()
	if err != nil {
		return nil, err
	}

	doc := &Document{Root: start.Name.Local, Schema: readSchema(start)}
	switch start.Name.Local {
	case elemIronJacamar:
		a, err := r.parseIronJacamar(start)
		if err != nil {
			return nil, err
		}
		doc.Activations = []*Activation{a}
	case elemResourceAdapters:
		doc.Activations, err = r.parseResourceAdapters(start)
		if err != nil {
			return nil, err
		}
	default:
		pe := r.unexpectedElement(start)
		pe.Hint = "Expected <ironjacamar> or <resource-adapters> as the document element."
		return nil, pe
	}
	if err := r.expectEOF(); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseRoot[T any](p *Parser, in io.Reader, path, root string, parse func(*reader, xml.StartElement) (T, error)) (T, error) {
	var zero T
	r := newReader(in, path, p.lookup, p.logger)
	start, err := r.rootElement()
	if err != nil {
		return zero, err
	}
	if start.Name.Local != root {
		pe := r.unexpectedElement(start)
		pe.Hint = "Expected <" + root + "> as the document element."
		return zero, pe
	}
	v, err := parse(r, start)
	if err != nil {
		return zero, err
	}
	if err := r.expectEOF(); err != nil {
		return zero, err
	}
	return v, nil
}

// children calls fn for every child element of the current element and
// returns once the end tag named name is read.
func (r *reader) children(name string, fn func(xml.StartElement) error) error {
	for {
		tok, err := r.nextTag()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local != name {
				return r.unexpectedEnd(t)
			}
			return nil
		}
	}
}

// readSchema returns what the document element declares about its schema.
// The namespace comes from the element name so a prefixed root is kept too.
func readSchema(start xml.StartElement) Schema {
	s := Schema{Namespace: start.Name.Space}
	s.Version, _ = findAttr(start, attrVersion)
	for _, attr := range start.Attr {
		if attr.Name.Space == xsiNamespace && attr.Name.Local == attrSchemaLocation {
			s.SchemaLocation = attr.Value
		}
	}
	return s
}

func (r *reader) parseResourceAdapters(start xml.StartElement) ([]*Activation, error) {
	if err := r.checkAttributes(start, attrVersion); err != nil {
		return nil, err
	}
	var adapters []*Activation
	err := r.children(elemResourceAdapters, func(child xml.StartElement) error {
		if child.Name.Local != elemResourceAdapter {
			return r.unexpectedElement(child)
		}
		a, err := r.parseActivation(child, true)
		if err != nil {
			return err
		}
		adapters = append(adapters, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adapters, nil
}

func (r *reader) parseIronJacamar(start xml.StartElement) (*Activation, error) {
	return r.parseActivation(start, false)
}

// parseActivation reads the body shared by <ironjacamar> and
// <resource-adapter>. Only the latter carries an id and an archive.
func (r *reader) parseActivation(start xml.StartElement, resourceAdapter bool) (*Activation, error) {
	name := start.Name.Local
	exprs := map[string]string{}
	params := ActivationParams{
		ConfigProperties: map[string]string{},
		Expressions:      exprs,
	}

	if resourceAdapter {
		if err := r.checkAttributes(start, attrID); err != nil {
			return nil, err
		}
		params.ID, _ = r.attrAsString(start, attrID, exprs)
	} else {
		if err := r.checkAttributes(start, attrVersion); err != nil {
			return nil, err
		}
		params.Schema = readSchema(start)
	}

	err := r.children(name, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case elemArchive:
			if !resourceAdapter {
				return r.unexpectedElement(child)
			}
			params.Archive, err = r.elementAsString(child, elemArchive, exprs)
		case elemBeanValidationGroups:
			params.BeanValidationGroups, err = r.parseBeanValidationGroups(child, exprs)
		case elemBootstrapContext:
			params.BootstrapContext, err = r.elementAsString(child, elemBootstrapContext, exprs)
		case elemConfigProperty:
			err = r.parseConfigProperty(child, params.ConfigProperties, exprs)
		case elemTransactionSupport:
			params.TransactionSupport, err = r.elementAsTransactionSupport(child, elemTransactionSupport, exprs)
		case elemConnectionDefinitions:
			params.ConnectionDefinitions, err = r.parseConnectionDefinitions(child)
		case elemAdminObjects:
			params.AdminObjects, err = r.parseAdminObjects(child)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if resourceAdapter && isBlank(params.Archive) {
		pe := r.missing(name, "<archive> element")
		pe.Hint = "A resource-adapter must name the .rar archive it activates."
		return nil, pe
	}
	v, err := NewActivation(params)
	return v, r.located(err)
}

// parseBeanValidationGroups records expressions by position since group
// names repeat the same element.
func (r *reader) parseBeanValidationGroups(start xml.StartElement, exprs map[string]string) ([]string, error) {
	var groups []string
	err := r.children(elemBeanValidationGroups, func(child xml.StartElement) error {
		if child.Name.Local != elemBeanValidationGroup {
			return r.unexpectedElement(child)
		}
		g, err := r.elementAsString(child, beanValidationGroupKey(len(groups)), exprs)
		if err != nil {
			return err
		}
		groups = append(groups, g)
		return nil
	})
	return groups, err
}

func (r *reader) parseConnectionDefinitions(start xml.StartElement) ([]*ConnectionDefinition, error) {
	var cds []*ConnectionDefinition
	err := r.children(elemConnectionDefinitions, func(child xml.StartElement) error {
		if child.Name.Local != elemConnectionDefinition {
			return r.unexpectedElement(child)
		}
		cd, err := r.parseConnectionDefinition(child)
		if err != nil {
			return err
		}
		cds = append(cds, cd)
		return nil
	})
	return cds, err
}

func (r *reader) parseAdminObjects(start xml.StartElement) ([]*AdminObject, error) {
	var aos []*AdminObject
	err := r.children(elemAdminObjects, func(child xml.StartElement) error {
		if child.Name.Local != elemAdminObject {
			return r.unexpectedElement(child)
		}
		ao, err := r.parseAdminObject(child)
		if err != nil {
			return err
		}
		aos = append(aos, ao)
		return nil
	})
	return aos, err
}

// parseConfigProperty stores the property value in props and records its raw
// text under configPropertyKey(name).
func (r *reader) parseConfigProperty(start xml.StartElement, props, exprs map[string]string) error {
	if err := r.checkAttributes(start, attrName); err != nil {
		return err
	}
	name, ok := r.attrAsString(start, attrName, nil)
	if !ok || name == "" {
		return r.missing(elemConfigProperty, "attribute \"name\"")
	}
	value, err := r.elementAsString(start, configPropertyKey(name), exprs)
	if err != nil {
		return err
	}
	props[name] = value
	return nil
}

type poolKind int

const (
	poolNone poolKind = iota
	poolNonXA
	poolXA
)

func (r *reader) parseConnectionDefinition(start xml.StartElement) (*ConnectionDefinition, error) {
	if err := r.checkAttributes(start,
		attrClassName, attrJndiName, attrID, attrPoolName, attrEnabled, attrUseJavaContext,
		attrUseCcm, attrSharable, attrEnlistment, attrConnectable, attrTracking,
	); err != nil {
		return nil, err
	}

	exprs := map[string]string{}
	params := ConnectionDefinitionParams{
		ConfigProperties: map[string]string{},
		Expressions:      exprs,
	}
	params.ClassName, _ = r.attrAsString(start, attrClassName, exprs)
	params.JndiName, _ = r.attrAsString(start, attrJndiName, exprs)
	if id, ok := r.attrAsString(start, attrID, exprs); ok {
		params.ID = id
	} else {
		params.ID, _ = r.attrAsString(start, attrPoolName, exprs)
	}

	flags := []struct {
		name string
		dst  **bool
	}{
		{attrEnabled, &params.Enabled},
		{attrUseJavaContext, &params.UseJavaContext},
		{attrUseCcm, &params.UseCcm},
		{attrSharable, &params.Sharable},
		{attrEnlistment, &params.Enlistment},
		{attrConnectable, &params.Connectable},
		{attrTracking, &params.Tracking},
	}
	for _, f := range flags {
		b, err := r.attrAsBool(start, f.name, exprs)
		if err != nil {
			return nil, err
		}
		*f.dst = b
	}

	if isBlank(params.JndiName) {
		pe := r.missing(elemConnectionDefinition, "attribute \"jndi-name\"")
		pe.Hint = "Every connection definition must be bound to a JNDI name, e.g. jndi-name=\"java:/eis/MyCF\"."
		return nil, pe
	}

	kind := poolNone
	err := r.children(elemConnectionDefinition, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case elemConfigProperty:
			err = r.parseConfigProperty(child, params.ConfigProperties, exprs)
		case elemPool, elemXaPool:
			if kind != poolNone {
				pe := r.errorf(ErrMultiplePools, child.Name.Local,
					"multiple pools: <%s> after an earlier pool element", child.Name.Local)
				pe.Hint = "A connection definition takes either <pool> or <xa-pool>, not both."
				return pe
			}
			if child.Name.Local == elemPool {
				kind = poolNonXA
				params.Pool, err = r.parsePool(child)
			} else {
				kind = poolXA
				params.XaPool, err = r.parseXaPool(child)
			}
		case elemSecurity:
			params.Security, err = r.parseSecurity(child)
		case elemTimeout:
			params.Timeout, err = r.parseTimeout(child, kind)
		case elemValidation:
			params.Validation, err = r.parseValidation(child)
		case elemRecovery:
			params.Recovery, err = r.parseRecovery(child)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	v, err := NewConnectionDefinition(params)
	return v, r.located(err)
}

func (r *reader) parseAdminObject(start xml.StartElement) (*AdminObject, error) {
	if err := r.checkAttributes(start,
		attrClassName, attrJndiName, attrID, attrPoolName, attrEnabled, attrUseJavaContext,
	); err != nil {
		return nil, err
	}

	exprs := map[string]string{}
	params := AdminObjectParams{
		ConfigProperties: map[string]string{},
		Expressions:      exprs,
	}
	params.ClassName, _ = r.attrAsString(start, attrClassName, exprs)
	params.JndiName, _ = r.attrAsString(start, attrJndiName, exprs)
	if id, ok := r.attrAsString(start, attrID, exprs); ok {
		params.ID = id
	} else {
		params.ID, _ = r.attrAsString(start, attrPoolName, exprs)
	}
	var err error
	if params.Enabled, err = r.attrAsBool(start, attrEnabled, exprs); err != nil {
		return nil, err
	}
	if params.UseJavaContext, err = r.attrAsBool(start, attrUseJavaContext, exprs); err != nil {
		return nil, err
	}

	if isBlank(params.JndiName) {
		pe := r.missing(elemAdminObject, "attribute \"jndi-name\"")
		pe.Hint = "Every admin object must be bound to a JNDI name, e.g. jndi-name=\"java:/eis/MyAO\"."
		return nil, pe
	}

	err = r.children(elemAdminObject, func(child xml.StartElement) error {
		if child.Name.Local != elemConfigProperty {
			return r.unexpectedElement(child)
		}
		return r.parseConfigProperty(child, params.ConfigProperties, exprs)
	})
	if err != nil {
		return nil, err
	}
	v, err := NewAdminObject(params)
	return v, r.located(err)
}

// poolChild reads an element common to <pool> and <xa-pool>. It reports
// false when the element is not one of them.
func (r *reader) poolChild(child xml.StartElement, p *PoolParams) (bool, error) {
	var err error
	exprs := p.Expressions
	switch child.Name.Local {
	case elemMinPoolSize:
		p.MinPoolSize, err = r.elementAsIntPtr(child, exprs)
	case elemInitialPoolSize:
		p.InitialPoolSize, err = r.elementAsIntPtr(child, exprs)
	case elemMaxPoolSize:
		p.MaxPoolSize, err = r.elementAsIntPtr(child, exprs)
	case elemPrefill:
		p.Prefill, err = r.elementAsBoolPtr(child, exprs)
	case elemUseStrictMin:
		p.UseStrictMin, err = r.elementAsBoolPtr(child, exprs)
	case elemFlushStrategy:
		p.FlushStrategy, err = r.elementAsFlushStrategy(child, elemFlushStrategy, exprs)
	case elemCapacity:
		p.Capacity, err = r.parseCapacity(child)
	default:
		return false, nil
	}
	return true, err
}

// poolAttributes reads the open attribute set of a pool. Unknown attributes
// are ignored.
func (r *reader) poolAttributes(start xml.StartElement, p *PoolParams) {
	p.Type, _ = r.attrAsString(start, attrType, p.Expressions)
	p.Janitor, _ = r.attrAsString(start, attrJanitor, p.Expressions)
}

func (r *reader) parsePool(start xml.StartElement) (*Pool, error) {
	params := PoolParams{FlushStrategy: DefaultFlushStrategy, Expressions: map[string]string{}}
	r.poolAttributes(start, &params)
	err := r.children(elemPool, func(child xml.StartElement) error {
		ok, err := r.poolChild(child, &params)
		if err != nil {
			return err
		}
		if !ok {
			return r.unexpectedElement(child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	v, err := NewPool(params)
	return v, r.located(err)
}

func (r *reader) parseXaPool(start xml.StartElement) (*XaPool, error) {
	params := XaPoolParams{
		PoolParams: PoolParams{FlushStrategy: DefaultFlushStrategy, Expressions: map[string]string{}},
	}
	r.poolAttributes(start, &params.PoolParams)
	exprs := params.Expressions
	err := r.children(elemXaPool, func(child xml.StartElement) error {
		ok, err := r.poolChild(child, &params.PoolParams)
		if ok || err != nil {
			return err
		}
		switch child.Name.Local {
		case elemIsSameRMOverride:
			params.IsSameRMOverride, err = r.elementAsBoolPtr(child, exprs)
		case elemInterleaving:
			params.Interleaving, err = r.elementAsBoolPtr(child, exprs)
		case elemNoTxSeparatePools:
			params.NoTxSeparatePool, err = r.elementAsBoolPtr(child, exprs)
		case elemPadXid:
			params.PadXid, err = r.elementAsBoolPtr(child, exprs)
		case elemWrapXaResource:
			params.WrapXaResource, err = r.elementAsBoolPtr(child, exprs)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	v, err := NewXaPool(params)
	return v, r.located(err)
}

func (r *reader) parseCapacity(start xml.StartElement) (*Capacity, error) {
	var params CapacityParams
	err := r.children(elemCapacity, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case elemIncrementer:
			params.Incrementer, err = r.parseExtension(child)
		case elemDecrementer:
			params.Decrementer, err = r.parseExtension(child)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	v, err := NewCapacity(params)
	return v, r.located(err)
}

// parseExtension reads any element with the extension shape: a class-name,
// optional module coordinates and config-property children.
func (r *reader) parseExtension(start xml.StartElement) (*Extension, error) {
	if err := r.checkAttributes(start, attrClassName, attrModuleName, attrModuleSlot); err != nil {
		return nil, err
	}
	exprs := map[string]string{}
	params := ExtensionParams{ConfigProperties: map[string]string{}, Expressions: exprs}
	params.ClassName, _ = r.attrAsString(start, attrClassName, exprs)
	params.ModuleName, _ = r.attrAsString(start, attrModuleName, exprs)
	params.ModuleSlot, _ = r.attrAsString(start, attrModuleSlot, exprs)
	if isBlank(params.ClassName) {
		return nil, r.missing(start.Name.Local, "attribute \"class-name\"")
	}

	name := start.Name.Local
	err := r.children(name, func(child xml.StartElement) error {
		if child.Name.Local != elemConfigProperty {
			return r.unexpectedElement(child)
		}
		return r.parseConfigProperty(child, params.ConfigProperties, exprs)
	})
	if err != nil {
		return nil, err
	}
	v, err := NewExtension(params)
	return v, r.located(err)
}

func (r *reader) parseSecurity(start xml.StartElement) (*Security, error) {
	exprs := map[string]string{}
	params := SecurityParams{Expressions: exprs}
	err := r.children(elemSecurity, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case elemApplication:
			params.Application, err = r.elementAsBool(child, elemApplication, exprs)
		case elemSecurityDomain:
			params.SecurityDomain, err = r.elementAsString(child, elemSecurityDomain, exprs)
		case elemSecurityDomainAndApplication:
			params.SecurityDomainAndApplication, err = r.elementAsString(child, elemSecurityDomainAndApplication, exprs)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	v, err := NewSecurity(params)
	return v, r.located(err)
}

func (r *reader) parseRecovery(start xml.StartElement) (*Recovery, error) {
	if err := r.checkAttributes(start, attrNoRecovery); err != nil {
		return nil, err
	}
	exprs := map[string]string{}
	params := RecoveryParams{Expressions: exprs}
	var err error
	if params.NoRecovery, err = r.attrAsBool(start, attrNoRecovery, exprs); err != nil {
		return nil, err
	}
	err = r.children(elemRecovery, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case elemRecoverCredential:
			params.Credential, err = r.parseCredential(child)
		case elemRecoverPlugin:
			params.Plugin, err = r.parseExtension(child)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	v, err := NewRecovery(params)
	return v, r.located(err)
}

func (r *reader) parseCredential(start xml.StartElement) (*Credential, error) {
	exprs := map[string]string{}
	params := CredentialParams{Expressions: exprs}
	err := r.children(start.Name.Local, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case elemUserName:
			params.UserName, err = r.elementAsString(child, elemUserName, exprs)
		case elemPassword:
			params.Password, err = r.elementAsString(child, elemPassword, exprs)
		case elemSecurityDomain:
			params.SecurityDomain, err = r.elementAsString(child, elemSecurityDomain, exprs)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	v, err := NewCredential(params)
	return v, r.located(err)
}

func (r *reader) parseTimeout(start xml.StartElement, kind poolKind) (*Timeout, error) {
	exprs := map[string]string{}
	params := TimeoutParams{Expressions: exprs}
	err := r.children(elemTimeout, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case elemBlockingTimeoutMillis:
			params.BlockingTimeoutMillis, err = r.elementAsLongPtr(child, exprs)
		case elemIdleTimeoutMinutes:
			params.IdleTimeoutMinutes, err = r.elementAsLongPtr(child, exprs)
		case elemAllocationRetry:
			params.AllocationRetry, err = r.elementAsIntPtr(child, exprs)
		case elemAllocationRetryWaitMillis:
			params.AllocationRetryWaitMillis, err = r.elementAsLongPtr(child, exprs)
		case elemXaResourceTimeout:
			if kind == poolNonXA {
				pe := r.unexpectedElement(child)
				pe.Message = "xa-resource-timeout is not allowed with a non-XA pool"
				pe.Hint = "Use <xa-pool> instead of <pool>, or remove <xa-resource-timeout>."
				return pe
			}
			params.XaResourceTimeout, err = r.elementAsIntPtr(child, exprs)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	v, err := NewTimeout(params)
	return v, r.located(err)
}

func (r *reader) parseValidation(start xml.StartElement) (*Validation, error) {
	exprs := map[string]string{}
	params := ValidationParams{Expressions: exprs}
	err := r.children(elemValidation, func(child xml.StartElement) error {
		var err error
		switch child.Name.Local {
		case elemValidateOnMatch:
			params.ValidateOnMatch, err = r.elementAsBoolPtr(child, exprs)
		case elemBackgroundValidation:
			params.BackgroundValidation, err = r.elementAsBoolPtr(child, exprs)
		case elemBackgroundValidationMillis:
			params.BackgroundValidationMillis, err = r.elementAsLongPtr(child, exprs)
		case elemUseFastFail:
			params.UseFastFail, err = r.elementAsBoolPtr(child, exprs)
		default:
			return r.unexpectedElement(child)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	v, err := NewValidation(params)
	return v, r.located(err)
}
