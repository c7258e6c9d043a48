package metadata

// AdminObjectParams holds the fields of an AdminObject.
type AdminObjectParams struct {
	ClassName        string
	JndiName         string
	ID               string
	Enabled          *bool
	UseJavaContext   *bool
	ConfigProperties map[string]string
	Expressions      map[string]string
}

// AdminObject binds an administered object to a JNDI name.
type AdminObject struct {
	expressionHolder
	className        string
	jndiName         string
	id               string
	enabled          bool
	useJavaContext   bool
	configProperties map[string]string
}

// NewAdminObject validates p and returns an AdminObject. A blank JNDI name
// is treated as missing.
func NewAdminObject(p AdminObjectParams) (*AdminObject, error) {
	if isBlank(p.JndiName) {
		return nil, validationErr(ErrMissingRequired, elemAdminObject, attrJndiName, "jndi-name is required")
	}
	return &AdminObject{
		expressionHolder: expressionHolder{copyMap(p.Expressions)},
		className:        p.ClassName,
		jndiName:         p.JndiName,
		id:               p.ID,
		enabled:          boolOr(p.Enabled, DefaultEnabled),
		useJavaContext:   boolOr(p.UseJavaContext, DefaultUseJavaContext),
		configProperties: copyMap(p.ConfigProperties),
	}, nil
}

func (ao *AdminObject) ClassName() string      { return ao.className }
func (ao *AdminObject) JndiName() string       { return ao.jndiName }
func (ao *AdminObject) ID() string             { return ao.id }
func (ao *AdminObject) IsEnabled() bool        { return ao.enabled }
func (ao *AdminObject) IsUseJavaContext() bool { return ao.useJavaContext }

// ConfigProperties returns a copy of the property map.
func (ao *AdminObject) ConfigProperties() map[string]string { return copyMap(ao.configProperties) }

// Params copies the state of ao.
func (ao *AdminObject) Params() AdminObjectParams {
	enabled, javaCtx := ao.enabled, ao.useJavaContext
	return AdminObjectParams{
		ClassName:        ao.className,
		JndiName:         ao.jndiName,
		ID:               ao.id,
		Enabled:          &enabled,
		UseJavaContext:   &javaCtx,
		ConfigProperties: copyMap(ao.configProperties),
		Expressions:      copyMap(ao.expressions),
	}
}

// WithConfigProperties returns a copy of ao with its config properties
// replaced by props.
func (ao *AdminObject) WithConfigProperties(props map[string]string) (*AdminObject, error) {
	p := ao.Params()
	p.Expressions = replaceConfigProperties(p.Expressions, ao.configProperties, props)
	p.ConfigProperties = props
	return NewAdminObject(p)
}
