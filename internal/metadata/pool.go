package metadata

import "fmt"

// FlushStrategy controls which connections are destroyed when an error
// occurs in the pool.
type FlushStrategy int

const (
	FlushUnknown FlushStrategy = iota
	FlushFailingConnectionOnly
	FlushInvalidIdleConnections
	FlushIdleConnections
	FlushGracefully
	FlushEntirePool
	FlushAllInvalidIdleConnections
	FlushAllIdleConnections
	FlushAllGracefully
	FlushAllConnections
)

var flushStrategyNames = [...]string{
	FlushUnknown:                   "",
	FlushFailingConnectionOnly:     "FailingConnectionOnly",
	FlushInvalidIdleConnections:    "InvalidIdleConnections",
	FlushIdleConnections:           "IdleConnections",
	FlushGracefully:                "Gracefully",
	FlushEntirePool:                "EntirePool",
	FlushAllInvalidIdleConnections: "AllInvalidIdleConnections",
	FlushAllIdleConnections:        "AllIdleConnections",
	FlushAllGracefully:             "AllGracefully",
	FlushAllConnections:            "AllConnections",
}

func (f FlushStrategy) String() string {
	if f < 0 || int(f) >= len(flushStrategyNames) {
		return fmt.Sprintf("FlushStrategy(%d)", int(f))
	}
	return flushStrategyNames[f]
}

// ParseFlushStrategy maps the schema name of a strategy to its value.
func ParseFlushStrategy(s string) (FlushStrategy, error) {
	for i, name := range flushStrategyNames {
		if i > 0 && name == s {
			return FlushStrategy(i), nil
		}
	}
	return FlushUnknown, fmt.Errorf("unknown flush strategy %q", s)
}

// FlushStrategyNames lists the valid strategy names in schema order.
func FlushStrategyNames() []string {
	return append([]string(nil), flushStrategyNames[1:]...)
}

// Schema defaults.
const (
	DefaultMinPoolSize    = 0
	DefaultMaxPoolSize    = 20
	DefaultPrefill        = false
	DefaultUseStrictMin   = false
	DefaultFlushStrategy  = FlushFailingConnectionOnly
	DefaultInterleaving   = false
	DefaultNoTxSeparate   = false
	DefaultPadXid         = false
	DefaultWrapXaResource = true
)

// PoolParams holds the fields of a Pool. Nil pointers take the schema
// default. FlushStrategy has no default here; the parser supplies
// DefaultFlushStrategy when the element is absent.
type PoolParams struct {
	Type            string
	Janitor         string
	MinPoolSize     *int
	InitialPoolSize *int
	MaxPoolSize     *int
	Prefill         *bool
	UseStrictMin    *bool
	FlushStrategy   FlushStrategy
	Capacity        *Capacity
	Expressions     map[string]string
}

// Pool is the non-XA connection pool configuration of a connection
// definition.
type Pool struct {
	expressionHolder
	typ             string
	janitor         string
	minPoolSize     int
	initialPoolSize *int
	maxPoolSize     int
	prefill         bool
	useStrictMin    bool
	flushStrategy   FlushStrategy
	capacity        *Capacity
}

// NewPool validates p and returns a Pool.
func NewPool(p PoolParams) (*Pool, error) {
	pool, err := newPool(p, elemPool)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func newPool(p PoolParams, typ string) (Pool, error) {
	pool := Pool{
		expressionHolder: expressionHolder{copyMap(p.Expressions)},
		typ:              p.Type,
		janitor:          p.Janitor,
		minPoolSize:      DefaultMinPoolSize,
		initialPoolSize:  copyPtr(p.InitialPoolSize),
		maxPoolSize:      DefaultMaxPoolSize,
		prefill:          boolOr(p.Prefill, DefaultPrefill),
		useStrictMin:     boolOr(p.UseStrictMin, DefaultUseStrictMin),
		flushStrategy:    p.FlushStrategy,
		capacity:         p.Capacity,
	}
	if p.MinPoolSize != nil {
		pool.minPoolSize = *p.MinPoolSize
	}
	if p.MaxPoolSize != nil {
		pool.maxPoolSize = *p.MaxPoolSize
	}
	return pool, pool.validate(typ)
}

func (p *Pool) validate(typ string) error {
	if p.minPoolSize < 0 {
		return validationErr(ErrNegativeValue, typ, elemMinPoolSize, "min-pool-size must be non-negative, got %d", p.minPoolSize)
	}
	if p.maxPoolSize < 0 {
		return validationErr(ErrNegativeValue, typ, elemMaxPoolSize, "max-pool-size must be non-negative, got %d", p.maxPoolSize)
	}
	if p.minPoolSize > p.maxPoolSize {
		return validationErr(ErrInconsistent, typ, elemMinPoolSize,
			"min-pool-size (%d) exceeds max-pool-size (%d)", p.minPoolSize, p.maxPoolSize)
	}
	if p.initialPoolSize != nil {
		if *p.initialPoolSize < 0 {
			return validationErr(ErrNegativeValue, typ, elemInitialPoolSize,
				"initial-pool-size must be non-negative, got %d", *p.initialPoolSize)
		}
		if *p.initialPoolSize > p.maxPoolSize {
			return validationErr(ErrInconsistent, typ, elemInitialPoolSize,
				"initial-pool-size (%d) exceeds max-pool-size (%d)", *p.initialPoolSize, p.maxPoolSize)
		}
	}
	if p.flushStrategy <= FlushUnknown || p.flushStrategy > FlushAllConnections {
		return validationErr(ErrInvalidValue, typ, elemFlushStrategy, "flush-strategy must be set to a known strategy")
	}
	return nil
}

func (p *Pool) Type() string     { return p.typ }
func (p *Pool) Janitor() string  { return p.janitor }
func (p *Pool) MinPoolSize() int { return p.minPoolSize }
func (p *Pool) MaxPoolSize() int { return p.maxPoolSize }

// InitialPoolSize returns the initial size and whether it was set.
func (p *Pool) InitialPoolSize() (int, bool) {
	if p.initialPoolSize == nil {
		return 0, false
	}
	return *p.initialPoolSize, true
}

func (p *Pool) IsPrefill() bool              { return p.prefill }
func (p *Pool) IsUseStrictMin() bool         { return p.useStrictMin }
func (p *Pool) FlushStrategy() FlushStrategy { return p.flushStrategy }
func (p *Pool) Capacity() *Capacity          { return p.capacity }

// Params copies the state of p.
func (p *Pool) Params() PoolParams {
	minSize, maxSize := p.minPoolSize, p.maxPoolSize
	prefill, strict := p.prefill, p.useStrictMin
	return PoolParams{
		Type:            p.typ,
		Janitor:         p.janitor,
		MinPoolSize:     &minSize,
		InitialPoolSize: copyPtr(p.initialPoolSize),
		MaxPoolSize:     &maxSize,
		Prefill:         &prefill,
		UseStrictMin:    &strict,
		FlushStrategy:   p.flushStrategy,
		Capacity:        p.capacity,
		Expressions:     copyMap(p.expressions),
	}
}

// XaPoolParams holds the fields of an XaPool.
type XaPoolParams struct {
	PoolParams
	IsSameRMOverride *bool
	Interleaving     *bool
	NoTxSeparatePool *bool
	PadXid           *bool
	WrapXaResource   *bool
}

// XaPool is the pool configuration of an XA connection definition.
type XaPool struct {
	Pool
	isSameRMOverride *bool
	interleaving     bool
	noTxSeparatePool bool
	padXid           bool
	wrapXaResource   bool
}

// NewXaPool validates p and returns an XaPool.
func NewXaPool(p XaPoolParams) (*XaPool, error) {
	base, err := newPool(p.PoolParams, elemXaPool)
	if err != nil {
		return nil, err
	}
	return &XaPool{
		Pool:             base,
		isSameRMOverride: copyPtr(p.IsSameRMOverride),
		interleaving:     boolOr(p.Interleaving, DefaultInterleaving),
		noTxSeparatePool: boolOr(p.NoTxSeparatePool, DefaultNoTxSeparate),
		padXid:           boolOr(p.PadXid, DefaultPadXid),
		wrapXaResource:   boolOr(p.WrapXaResource, DefaultWrapXaResource),
	}, nil
}

// IsSameRMOverride returns the override and whether it was set.
func (p *XaPool) IsSameRMOverride() (bool, bool) {
	if p.isSameRMOverride == nil {
		return false, false
	}
	return *p.isSameRMOverride, true
}

func (p *XaPool) IsInterleaving() bool     { return p.interleaving }
func (p *XaPool) IsNoTxSeparatePool() bool { return p.noTxSeparatePool }
func (p *XaPool) IsPadXid() bool           { return p.padXid }
func (p *XaPool) IsWrapXaResource() bool   { return p.wrapXaResource }

// Params copies the state of p.
func (p *XaPool) Params() XaPoolParams {
	interleaving, noTx, pad, wrap := p.interleaving, p.noTxSeparatePool, p.padXid, p.wrapXaResource
	return XaPoolParams{
		PoolParams:       p.Pool.Params(),
		IsSameRMOverride: copyPtr(p.isSameRMOverride),
		Interleaving:     &interleaving,
		NoTxSeparatePool: &noTx,
		PadXid:           &pad,
		WrapXaResource:   &wrap,
	}
}
