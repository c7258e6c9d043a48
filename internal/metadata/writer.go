package metadata

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
)

// Writer serializes value objects as XML in the element order the parser
// expects. Optional fields that are unset or equal to their schema default
// are omitted unless they were read from a ${...} expression, in which case
// the recorded expression is written instead of the resolved value.
type Writer struct {
	enc      *xml.Encoder
	resolved bool
	err      error
}

// WriterOption configures a Writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	prefix   string
	indent   string
	resolved bool
}

// WithResolvedValues writes resolved values instead of recorded expressions.
func WithResolvedValues() WriterOption {
	return func(c *writerConfig) { c.resolved = true }
}

// WithIndent sets the indentation used for nested elements.
func WithIndent(prefix, indent string) WriterOption {
	return func(c *writerConfig) { c.prefix, c.indent = prefix, indent }
}

// NewWriter returns a Writer that indents with four spaces by default.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	cfg := writerConfig{indent: "    "}
	for _, opt := range opts {
		opt(&cfg)
	}
	enc := xml.NewEncoder(w)
	enc.Indent(cfg.prefix, cfg.indent)
	return &Writer{enc: enc, resolved: cfg.resolved}
}

// WriteDocument writes d with an XML declaration.
func (w *Writer) WriteDocument(d *Document) error {
	w.declaration()
	if d.IsResourceAdapters() {
		w.resourceAdapters(d.Activations, d.Schema)
	} else {
		for _, a := range d.Activations {
			schema := a.schema
			if schema.IsZero() {
				schema = d.Schema
			}
			w.activation(elemIronJacamar, a, false, schema)
		}
	}
	return w.flush()
}

// WriteIronJacamar writes a as an ironjacamar.xml document with the schema
// declared by a.
func (w *Writer) WriteIronJacamar(a *Activation) error {
	w.declaration()
	w.activation(elemIronJacamar, a, false, a.schema)
	return w.flush()
}

// WriteResourceAdapters writes a resource-adapters document.
func (w *Writer) WriteResourceAdapters(adapters []*Activation) error {
	w.declaration()
	w.resourceAdapters(adapters, Schema{})
	return w.flush()
}

// WriteConnectionDefinition writes a single connection-definition element.
func (w *Writer) WriteConnectionDefinition(cd *ConnectionDefinition) error {
	w.connectionDefinition(cd)
	return w.flush()
}

// WriteAdminObject writes a single admin-object element.
func (w *Writer) WriteAdminObject(ao *AdminObject) error {
	w.adminObject(ao)
	return w.flush()
}

// MarshalIronJacamar renders a as an ironjacamar.xml document.
func MarshalIronJacamar(a *Activation, opts ...WriterOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, opts...).WriteIronJacamar(a); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// MarshalDocument renders d.
func MarshalDocument(d *Document, opts ...WriterOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewWriter(&buf, opts...).WriteDocument(d); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (w *Writer) flush() error {
	if w.err != nil {
		return w.err
	}
	return w.enc.Flush()
}

func (w *Writer) token(t xml.Token) {
	if w.err == nil {
		w.err = w.enc.EncodeToken(t)
	}
}

func (w *Writer) declaration() {
	w.token(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)})
	w.token(xml.CharData("\n"))
}

// schemaAttrs declares s on a document element. Prefixed names are written
// verbatim so the output keeps the conventional xsi prefix.
func schemaAttrs(s Schema) attrs {
	var as attrs
	as.add("xmlns", s.Namespace)
	if s.SchemaLocation != "" {
		as.add("xmlns:xsi", xsiNamespace)
		as.add("xsi:"+attrSchemaLocation, s.SchemaLocation)
	}
	as.add(attrVersion, s.Version)
	return as
}

func (w *Writer) start(name string, attrs ...xml.Attr) {
	w.token(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (w *Writer) end(name string) {
	w.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (w *Writer) textElement(name, text string, attrs ...xml.Attr) {
	w.start(name, attrs...)
	if text != "" {
		w.token(xml.CharData(text))
	}
	w.end(name)
}

// value prefers the recorded expression for key over the resolved value.
func (w *Writer) value(exprs expressionHolder, key, resolved string) string {
	if !w.resolved {
		if raw, ok := exprs.Expression(key); ok {
			return raw
		}
	}
	return resolved
}

// attrs collects attributes, skipping empty values.
type attrs []xml.Attr

func (a *attrs) add(name, value string) {
	if value != "" {
		*a = append(*a, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	}
}

// boolAttr adds a flag that differs from def or carries an expression.
func (w *Writer) boolAttr(a *attrs, h expressionHolder, name string, v, def bool) {
	if v != def || (!w.resolved && h.HasExpression(name)) {
		a.add(name, w.value(h, name, strconv.FormatBool(v)))
	}
}

func (w *Writer) stringElement(h expressionHolder, name, v string) {
	if v == "" && !h.HasExpression(name) {
		return
	}
	w.textElement(name, w.value(h, name, v))
}

func (w *Writer) boolElement(h expressionHolder, name string, v, def bool) {
	if v != def || (!w.resolved && h.HasExpression(name)) {
		w.textElement(name, w.value(h, name, strconv.FormatBool(v)))
	}
}

func (w *Writer) intElement(h expressionHolder, name string, v, def int) {
	if v != def || (!w.resolved && h.HasExpression(name)) {
		w.textElement(name, w.value(h, name, strconv.Itoa(v)))
	}
}

func (w *Writer) optBoolElement(h expressionHolder, name string, v *bool) {
	if v != nil {
		w.textElement(name, w.value(h, name, strconv.FormatBool(*v)))
	}
}

func (w *Writer) optIntElement(h expressionHolder, name string, v *int) {
	if v != nil {
		w.textElement(name, w.value(h, name, strconv.Itoa(*v)))
	}
}

func (w *Writer) optLongElement(h expressionHolder, name string, v *int64) {
	if v != nil {
		w.textElement(name, w.value(h, name, strconv.FormatInt(*v, 10)))
	}
}

// configProperties writes properties sorted by name.
func (w *Writer) configProperties(h expressionHolder, props map[string]string) {
	for _, name := range sortedKeys(props) {
		w.textElement(elemConfigProperty, w.value(h, configPropertyKey(name), props[name]),
			xml.Attr{Name: xml.Name{Local: attrName}, Value: name})
	}
}

func (w *Writer) resourceAdapters(adapters []*Activation, schema Schema) {
	w.start(elemResourceAdapters, schemaAttrs(schema)...)
	for _, a := range adapters {
		w.activation(elemResourceAdapter, a, true, Schema{})
	}
	w.end(elemResourceAdapters)
}

func (w *Writer) activation(name string, a *Activation, resourceAdapter bool, schema Schema) {
	h := a.expressionHolder
	as := schemaAttrs(schema)
	if resourceAdapter {
		as.add(attrID, w.value(h, attrID, a.id))
	}
	w.start(name, as...)
	if resourceAdapter {
		w.stringElement(h, elemArchive, a.archive)
	}
	if len(a.beanValidationGroups) > 0 {
		w.start(elemBeanValidationGroups)
		for i, g := range a.beanValidationGroups {
			w.textElement(elemBeanValidationGroup, w.value(h, beanValidationGroupKey(i), g))
		}
		w.end(elemBeanValidationGroups)
	}
	w.stringElement(h, elemBootstrapContext, a.bootstrapContext)
	w.configProperties(h, a.configProperties)
	if a.transactionSupport != TxUnset {
		w.textElement(elemTransactionSupport, w.value(h, elemTransactionSupport, a.transactionSupport.String()))
	}
	if len(a.connectionDefinitions) > 0 {
		w.start(elemConnectionDefinitions)
		for _, cd := range a.connectionDefinitions {
			w.connectionDefinition(cd)
		}
		w.end(elemConnectionDefinitions)
	}
	if len(a.adminObjects) > 0 {
		w.start(elemAdminObjects)
		for _, ao := range a.adminObjects {
			w.adminObject(ao)
		}
		w.end(elemAdminObjects)
	}
	w.end(name)
}

func (w *Writer) connectionDefinition(cd *ConnectionDefinition) {
	h := cd.expressionHolder
	var as attrs
	as.add(attrClassName, w.value(h, attrClassName, cd.className))
	as.add(attrJndiName, w.value(h, attrJndiName, cd.jndiName))
	as.add(attrID, w.value(h, attrID, w.value(h, attrPoolName, cd.id)))
	w.boolAttr(&as, h, attrEnabled, cd.enabled, DefaultEnabled)
	w.boolAttr(&as, h, attrUseJavaContext, cd.useJavaContext, DefaultUseJavaContext)
	w.boolAttr(&as, h, attrUseCcm, cd.useCcm, DefaultUseCcm)
	w.boolAttr(&as, h, attrSharable, cd.sharable, DefaultSharable)
	w.boolAttr(&as, h, attrEnlistment, cd.enlistment, DefaultEnlistment)
	w.boolAttr(&as, h, attrConnectable, cd.connectable, DefaultConnectable)
	if cd.tracking != nil {
		as.add(attrTracking, w.value(h, attrTracking, strconv.FormatBool(*cd.tracking)))
	}

	w.start(elemConnectionDefinition, as...)
	w.configProperties(h, cd.configProperties)
	switch {
	case cd.pool != nil:
		w.pool(cd.pool)
	case cd.xaPool != nil:
		w.xaPool(cd.xaPool)
	}
	if cd.security != nil {
		w.security(cd.security)
	}
	if cd.timeout != nil {
		w.timeout(cd.timeout)
	}
	if cd.validation != nil {
		w.validation(cd.validation)
	}
	if cd.recovery != nil {
		w.recovery(cd.recovery)
	}
	w.end(elemConnectionDefinition)
}

func (w *Writer) adminObject(ao *AdminObject) {
	h := ao.expressionHolder
	var as attrs
	as.add(attrClassName, w.value(h, attrClassName, ao.className))
	as.add(attrJndiName, w.value(h, attrJndiName, ao.jndiName))
	as.add(attrID, w.value(h, attrID, w.value(h, attrPoolName, ao.id)))
	w.boolAttr(&as, h, attrEnabled, ao.enabled, DefaultEnabled)
	w.boolAttr(&as, h, attrUseJavaContext, ao.useJavaContext, DefaultUseJavaContext)

	w.start(elemAdminObject, as...)
	w.configProperties(h, ao.configProperties)
	w.end(elemAdminObject)
}

func (w *Writer) poolAttrs(p *Pool) attrs {
	var as attrs
	as.add(attrType, w.value(p.expressionHolder, attrType, p.typ))
	as.add(attrJanitor, w.value(p.expressionHolder, attrJanitor, p.janitor))
	return as
}

func (w *Writer) poolBody(p *Pool) {
	h := p.expressionHolder
	w.intElement(h, elemMinPoolSize, p.minPoolSize, DefaultMinPoolSize)
	w.optIntElement(h, elemInitialPoolSize, p.initialPoolSize)
	w.intElement(h, elemMaxPoolSize, p.maxPoolSize, DefaultMaxPoolSize)
	w.boolElement(h, elemPrefill, p.prefill, DefaultPrefill)
	w.boolElement(h, elemUseStrictMin, p.useStrictMin, DefaultUseStrictMin)
	if p.flushStrategy != DefaultFlushStrategy || (!w.resolved && h.HasExpression(elemFlushStrategy)) {
		w.textElement(elemFlushStrategy, w.value(h, elemFlushStrategy, p.flushStrategy.String()))
	}
	if p.capacity != nil {
		w.capacity(p.capacity)
	}
}

func (w *Writer) pool(p *Pool) {
	w.start(elemPool, w.poolAttrs(p)...)
	w.poolBody(p)
	w.end(elemPool)
}

func (w *Writer) xaPool(p *XaPool) {
	h := p.expressionHolder
	w.start(elemXaPool, w.poolAttrs(&p.Pool)...)
	w.poolBody(&p.Pool)
	w.optBoolElement(h, elemIsSameRMOverride, p.isSameRMOverride)
	w.boolElement(h, elemInterleaving, p.interleaving, DefaultInterleaving)
	w.boolElement(h, elemNoTxSeparatePools, p.noTxSeparatePool, DefaultNoTxSeparate)
	w.boolElement(h, elemPadXid, p.padXid, DefaultPadXid)
	w.boolElement(h, elemWrapXaResource, p.wrapXaResource, DefaultWrapXaResource)
	w.end(elemXaPool)
}

func (w *Writer) capacity(c *Capacity) {
	w.start(elemCapacity)
	if c.incrementer != nil {
		w.extension(elemIncrementer, c.incrementer)
	}
	if c.decrementer != nil {
		w.extension(elemDecrementer, c.decrementer)
	}
	w.end(elemCapacity)
}

func (w *Writer) extension(name string, e *Extension) {
	h := e.expressionHolder
	var as attrs
	as.add(attrClassName, w.value(h, attrClassName, e.className))
	as.add(attrModuleName, w.value(h, attrModuleName, e.moduleName))
	as.add(attrModuleSlot, w.value(h, attrModuleSlot, e.moduleSlot))
	w.start(name, as...)
	w.configProperties(h, e.configProperties)
	w.end(name)
}

func (w *Writer) security(s *Security) {
	h := s.expressionHolder
	w.start(elemSecurity)
	switch {
	case s.application:
		w.textElement(elemApplication, w.value(h, elemApplication, ""))
	case s.securityDomain != "":
		w.textElement(elemSecurityDomain, w.value(h, elemSecurityDomain, s.securityDomain))
	default:
		w.textElement(elemSecurityDomainAndApplication,
			w.value(h, elemSecurityDomainAndApplication, s.securityDomainAndApplication))
	}
	w.end(elemSecurity)
}

func (w *Writer) recovery(r *Recovery) {
	h := r.expressionHolder
	var as attrs
	if r.noRecovery != nil {
		as.add(attrNoRecovery, w.value(h, attrNoRecovery, strconv.FormatBool(*r.noRecovery)))
	}
	w.start(elemRecovery, as...)
	if c := r.credential; c != nil {
		ch := c.expressionHolder
		w.start(elemRecoverCredential)
		w.stringElement(ch, elemUserName, c.userName)
		w.stringElement(ch, elemPassword, c.password)
		w.stringElement(ch, elemSecurityDomain, c.securityDomain)
		w.end(elemRecoverCredential)
	}
	if r.plugin != nil {
		w.extension(elemRecoverPlugin, r.plugin)
	}
	w.end(elemRecovery)
}

func (w *Writer) timeout(t *Timeout) {
	h := t.expressionHolder
	w.start(elemTimeout)
	w.optLongElement(h, elemBlockingTimeoutMillis, t.blockingTimeoutMillis)
	w.optLongElement(h, elemIdleTimeoutMinutes, t.idleTimeoutMinutes)
	w.optIntElement(h, elemAllocationRetry, t.allocationRetry)
	w.optLongElement(h, elemAllocationRetryWaitMillis, t.allocationRetryWaitMillis)
	w.optIntElement(h, elemXaResourceTimeout, t.xaResourceTimeout)
	w.end(elemTimeout)
}

func (w *Writer) validation(v *Validation) {
	h := v.expressionHolder
	w.start(elemValidation)
	w.optBoolElement(h, elemValidateOnMatch, v.validateOnMatch)
	w.optBoolElement(h, elemBackgroundValidation, v.backgroundValidation)
	w.optLongElement(h, elemBackgroundValidationMillis, v.backgroundValidationMillis)
	w.optBoolElement(h, elemUseFastFail, v.useFastFail)
	w.end(elemValidation)
}
