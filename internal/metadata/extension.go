package metadata

// ExtensionParams holds the fields of an Extension.
type ExtensionParams struct {
	ClassName        string
	ModuleName       string
	ModuleSlot       string
	ConfigProperties map[string]string
	Expressions      map[string]string
}

// Extension is a pluggable class reference with module coordinates and
// config properties, used by capacity policies and recovery plugins.
type Extension struct {
	expressionHolder
	className        string
	moduleName       string
	moduleSlot       string
	configProperties map[string]string
}

// NewExtension validates p and returns an Extension.
func NewExtension(p ExtensionParams) (*Extension, error) {
	if isBlank(p.ClassName) {
		return nil, validationErr(ErrMissingRequired, "extension", attrClassName, "class-name is required")
	}
	return &Extension{
		expressionHolder: expressionHolder{copyMap(p.Expressions)},
		className:        p.ClassName,
		moduleName:       p.ModuleName,
		moduleSlot:       p.ModuleSlot,
		configProperties: copyMap(p.ConfigProperties),
	}, nil
}

func (e *Extension) ClassName() string  { return e.className }
func (e *Extension) ModuleName() string { return e.moduleName }
func (e *Extension) ModuleSlot() string { return e.moduleSlot }

// ConfigProperties returns a copy of the property map.
func (e *Extension) ConfigProperties() map[string]string { return copyMap(e.configProperties) }

// Params copies the state of e.
func (e *Extension) Params() ExtensionParams {
	return ExtensionParams{
		ClassName:        e.className,
		ModuleName:       e.moduleName,
		ModuleSlot:       e.moduleSlot,
		ConfigProperties: copyMap(e.configProperties),
		Expressions:      copyMap(e.expressions),
	}
}

// WithConfigProperties returns a copy of e with its config properties
// replaced by props.
func (e *Extension) WithConfigProperties(props map[string]string) (*Extension, error) {
	p := e.Params()
	p.ConfigProperties = props
	p.Expressions = replaceConfigProperties(p.Expressions, e.configProperties, props)
	return NewExtension(p)
}

// CapacityParams holds the fields of a Capacity.
type CapacityParams struct {
	Incrementer *Extension
	Decrementer *Extension
}

// Capacity configures how a pool grows and shrinks.
type Capacity struct {
	incrementer *Extension
	decrementer *Extension
}

// NewCapacity returns a Capacity. Both policies are optional.
func NewCapacity(p CapacityParams) (*Capacity, error) {
	return &Capacity{incrementer: p.Incrementer, decrementer: p.Decrementer}, nil
}

func (c *Capacity) Incrementer() *Extension { return c.incrementer }
func (c *Capacity) Decrementer() *Extension { return c.decrementer }

func (c *Capacity) Params() CapacityParams {
	return CapacityParams{Incrementer: c.incrementer, Decrementer: c.decrementer}
}
