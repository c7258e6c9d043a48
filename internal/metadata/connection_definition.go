package metadata

// Connection definition defaults.
const (
	DefaultEnabled        = true
	DefaultUseJavaContext = true
	DefaultUseCcm         = true
	DefaultSharable       = true
	DefaultEnlistment     = true
	DefaultConnectable    = false
)

// ConnectionDefinitionParams holds the fields of a ConnectionDefinition.
// Nil flags take their defaults. Tracking has no default and stays unset.
type ConnectionDefinitionParams struct {
	ClassName        string
	JndiName         string
	ID               string
	Enabled          *bool
	UseJavaContext   *bool
	UseCcm           *bool
	Sharable         *bool
	Enlistment       *bool
	Connectable      *bool
	Tracking         *bool
	ConfigProperties map[string]string
	Pool             *Pool
	XaPool           *XaPool
	Security         *Security
	Timeout          *Timeout
	Validation       *Validation
	Recovery         *Recovery
	Expressions      map[string]string
}

// ConnectionDefinition binds a managed connection factory to a JNDI name
// together with its pool, security and recovery settings.
type ConnectionDefinition struct {
	expressionHolder
	className        string
	jndiName         string
	id               string
	enabled          bool
	useJavaContext   bool
	useCcm           bool
	sharable         bool
	enlistment       bool
	connectable      bool
	tracking         *bool
	configProperties map[string]string
	pool             *Pool
	xaPool           *XaPool
	security         *Security
	timeout          *Timeout
	validation       *Validation
	recovery         *Recovery
}

// NewConnectionDefinition validates p and returns a ConnectionDefinition.
func NewConnectionDefinition(p ConnectionDefinitionParams) (*ConnectionDefinition, error) {
	if isBlank(p.JndiName) {
		return nil, validationErr(ErrMissingRequired, elemConnectionDefinition, attrJndiName, "jndi-name is required")
	}
	if p.Pool != nil && p.XaPool != nil {
		return nil, validationErr(ErrMultiplePools, elemConnectionDefinition, "",
			"only one of pool or xa-pool may be set")
	}
	if p.Pool != nil && p.Timeout != nil && p.Timeout.xaResourceTimeout != nil {
		return nil, validationErr(ErrInconsistent, elemConnectionDefinition, elemXaResourceTimeout,
			"xa-resource-timeout requires an xa-pool")
	}
	return &ConnectionDefinition{
		expressionHolder: expressionHolder{copyMap(p.Expressions)},
		className:        p.ClassName,
		jndiName:         p.JndiName,
		id:               p.ID,
		enabled:          boolOr(p.Enabled, DefaultEnabled),
		useJavaContext:   boolOr(p.UseJavaContext, DefaultUseJavaContext),
		useCcm:           boolOr(p.UseCcm, DefaultUseCcm),
		sharable:         boolOr(p.Sharable, DefaultSharable),
		enlistment:       boolOr(p.Enlistment, DefaultEnlistment),
		connectable:      boolOr(p.Connectable, DefaultConnectable),
		tracking:         copyPtr(p.Tracking),
		configProperties: copyMap(p.ConfigProperties),
		pool:             p.Pool,
		xaPool:           p.XaPool,
		security:         p.Security,
		timeout:          p.Timeout,
		validation:       p.Validation,
		recovery:         p.Recovery,
	}, nil
}

func (cd *ConnectionDefinition) ClassName() string      { return cd.className }
func (cd *ConnectionDefinition) JndiName() string       { return cd.jndiName }
func (cd *ConnectionDefinition) ID() string             { return cd.id }
func (cd *ConnectionDefinition) IsEnabled() bool        { return cd.enabled }
func (cd *ConnectionDefinition) IsUseJavaContext() bool { return cd.useJavaContext }
func (cd *ConnectionDefinition) IsUseCcm() bool         { return cd.useCcm }
func (cd *ConnectionDefinition) IsSharable() bool       { return cd.sharable }
func (cd *ConnectionDefinition) IsEnlistment() bool     { return cd.enlistment }
func (cd *ConnectionDefinition) IsConnectable() bool    { return cd.connectable }

// Tracking returns the flag and whether it was set.
func (cd *ConnectionDefinition) Tracking() (bool, bool) {
	if cd.tracking == nil {
		return false, false
	}
	return *cd.tracking, true
}

// ConfigProperties returns a copy of the property map.
func (cd *ConnectionDefinition) ConfigProperties() map[string]string {
	return copyMap(cd.configProperties)
}

// ConfigPropertyNames returns the property names in sorted order.
func (cd *ConnectionDefinition) ConfigPropertyNames() []string {
	return sortedKeys(cd.configProperties)
}

// Pool returns the non-XA pool, or nil.
func (cd *ConnectionDefinition) Pool() *Pool { return cd.pool }

// XaPool returns the XA pool, or nil.
func (cd *ConnectionDefinition) XaPool() *XaPool { return cd.xaPool }

// IsXA reports whether the definition is configured with an xa-pool.
func (cd *ConnectionDefinition) IsXA() bool { return cd.xaPool != nil }

func (cd *ConnectionDefinition) Security() *Security     { return cd.security }
func (cd *ConnectionDefinition) Timeout() *Timeout       { return cd.timeout }
func (cd *ConnectionDefinition) Validation() *Validation { return cd.validation }
func (cd *ConnectionDefinition) Recovery() *Recovery     { return cd.recovery }

// Params copies the state of cd.
func (cd *ConnectionDefinition) Params() ConnectionDefinitionParams {
	enabled, javaCtx, ccm := cd.enabled, cd.useJavaContext, cd.useCcm
	sharable, enlistment, connectable := cd.sharable, cd.enlistment, cd.connectable
	return ConnectionDefinitionParams{
		ClassName:        cd.className,
		JndiName:         cd.jndiName,
		ID:               cd.id,
		Enabled:          &enabled,
		UseJavaContext:   &javaCtx,
		UseCcm:           &ccm,
		Sharable:         &sharable,
		Enlistment:       &enlistment,
		Connectable:      &connectable,
		Tracking:         copyPtr(cd.tracking),
		ConfigProperties: copyMap(cd.configProperties),
		Pool:             cd.pool,
		XaPool:           cd.xaPool,
		Security:         cd.security,
		Timeout:          cd.timeout,
		Validation:       cd.validation,
		Recovery:         cd.recovery,
		Expressions:      copyMap(cd.expressions),
	}
}

// With returns a new ConnectionDefinition built from a copy of the
// parameters of cd after applying mutate.
func (cd *ConnectionDefinition) With(mutate func(p *ConnectionDefinitionParams)) (*ConnectionDefinition, error) {
	p := cd.Params()
	mutate(&p)
	return NewConnectionDefinition(p)
}

// WithConfigProperties returns a copy of cd with its config properties
// replaced by props. Recorded expressions of changed properties are dropped.
func (cd *ConnectionDefinition) WithConfigProperties(props map[string]string) (*ConnectionDefinition, error) {
	return cd.With(func(p *ConnectionDefinitionParams) {
		p.Expressions = replaceConfigProperties(p.Expressions, cd.configProperties, props)
		p.ConfigProperties = props
	})
}

// WithJndiName returns a copy of cd bound to name.
func (cd *ConnectionDefinition) WithJndiName(name string) (*ConnectionDefinition, error) {
	return cd.With(func(p *ConnectionDefinitionParams) {
		delete(p.Expressions, attrJndiName)
		p.JndiName = name
	})
}
