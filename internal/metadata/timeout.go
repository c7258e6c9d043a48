package metadata

// TimeoutParams holds the fields of a Timeout element. Nil means unset.
type TimeoutParams struct {
	BlockingTimeoutMillis     *int64
	IdleTimeoutMinutes        *int64
	AllocationRetry           *int
	AllocationRetryWaitMillis *int64
	XaResourceTimeout         *int
	Expressions               map[string]string
}

// Timeout holds the pool timeouts of a connection definition.
type Timeout struct {
	expressionHolder
	blockingTimeoutMillis     *int64
	idleTimeoutMinutes        *int64
	allocationRetry           *int
	allocationRetryWaitMillis *int64
	xaResourceTimeout         *int
}

// NewTimeout validates p and returns a Timeout. Every value that is set must
// be non-negative.
func NewTimeout(p TimeoutParams) (*Timeout, error) {
	checks := []struct {
		field string
		value *int64
	}{
		{elemBlockingTimeoutMillis, p.BlockingTimeoutMillis},
		{elemIdleTimeoutMinutes, p.IdleTimeoutMinutes},
		{elemAllocationRetry, intToInt64(p.AllocationRetry)},
		{elemAllocationRetryWaitMillis, p.AllocationRetryWaitMillis},
		{elemXaResourceTimeout, intToInt64(p.XaResourceTimeout)},
	}
	for _, c := range checks {
		if c.value != nil && *c.value < 0 {
			return nil, validationErr(ErrNegativeValue, elemTimeout, c.field,
				"%s must be non-negative, got %d", c.field, *c.value)
		}
	}
	return &Timeout{
		expressionHolder:          expressionHolder{copyMap(p.Expressions)},
		blockingTimeoutMillis:     copyPtr(p.BlockingTimeoutMillis),
		idleTimeoutMinutes:        copyPtr(p.IdleTimeoutMinutes),
		allocationRetry:           copyPtr(p.AllocationRetry),
		allocationRetryWaitMillis: copyPtr(p.AllocationRetryWaitMillis),
		xaResourceTimeout:         copyPtr(p.XaResourceTimeout),
	}, nil
}

func intToInt64(p *int) *int64 {
	if p == nil {
		return nil
	}
	v := int64(*p)
	return &v
}

func (t *Timeout) BlockingTimeoutMillis() *int64     { return copyPtr(t.blockingTimeoutMillis) }
func (t *Timeout) IdleTimeoutMinutes() *int64        { return copyPtr(t.idleTimeoutMinutes) }
func (t *Timeout) AllocationRetry() *int             { return copyPtr(t.allocationRetry) }
func (t *Timeout) AllocationRetryWaitMillis() *int64 { return copyPtr(t.allocationRetryWaitMillis) }
func (t *Timeout) XaResourceTimeout() *int           { return copyPtr(t.xaResourceTimeout) }

// Params copies the state of t.
func (t *Timeout) Params() TimeoutParams {
	return TimeoutParams{
		BlockingTimeoutMillis:     copyPtr(t.blockingTimeoutMillis),
		IdleTimeoutMinutes:        copyPtr(t.idleTimeoutMinutes),
		AllocationRetry:           copyPtr(t.allocationRetry),
		AllocationRetryWaitMillis: copyPtr(t.allocationRetryWaitMillis),
		XaResourceTimeout:         copyPtr(t.xaResourceTimeout),
		Expressions:               copyMap(t.expressions),
	}
}
