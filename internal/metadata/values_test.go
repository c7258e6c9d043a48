package metadata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestNewPool_Invariants(t *testing.T) {
	tests := []struct {
		name   string
		params PoolParams
		kind   error
		field  string
	}{
		{
			name:   "min exceeds max",
			params: PoolParams{MinPoolSize: intPtr(10), MaxPoolSize: intPtr(5), FlushStrategy: DefaultFlushStrategy},
			kind:   ErrInconsistent,
			field:  "min-pool-size",
		},
		{
			name:   "unknown flush strategy",
			params: PoolParams{MinPoolSize: intPtr(1), MaxPoolSize: intPtr(5)},
			kind:   ErrInvalidValue,
			field:  "flush-strategy",
		},
		{
			name:   "out of range flush strategy",
			params: PoolParams{FlushStrategy: FlushStrategy(99)},
			kind:   ErrInvalidValue,
			field:  "flush-strategy",
		},
		{
			name:   "negative min",
			params: PoolParams{MinPoolSize: intPtr(-1), FlushStrategy: DefaultFlushStrategy},
			kind:   ErrNegativeValue,
			field:  "min-pool-size",
		},
		{
			name:   "negative max",
			params: PoolParams{MaxPoolSize: intPtr(-1), FlushStrategy: DefaultFlushStrategy},
			kind:   ErrNegativeValue,
			field:  "max-pool-size",
		},
		{
			name:   "initial exceeds max",
			params: PoolParams{InitialPoolSize: intPtr(30), FlushStrategy: DefaultFlushStrategy},
			kind:   ErrInconsistent,
			field:  "initial-pool-size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(tt.params)
			require.Error(t, err)
			assert.Nil(t, pool)
			assert.ErrorIs(t, err, tt.kind)
			assert.ErrorIs(t, err, ErrValidation)

			var ve *ValidateError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)

			_, err = NewXaPool(XaPoolParams{PoolParams: tt.params})
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestNewPool_Defaults(t *testing.T) {
	pool, err := NewPool(PoolParams{FlushStrategy: DefaultFlushStrategy})
	require.NoError(t, err)
	assert.Equal(t, DefaultMinPoolSize, pool.MinPoolSize())
	assert.Equal(t, DefaultMaxPoolSize, pool.MaxPoolSize())
	assert.False(t, pool.IsPrefill())
	assert.False(t, pool.IsUseStrictMin())
	_, set := pool.InitialPoolSize()
	assert.False(t, set)

	xa, err := NewXaPool(XaPoolParams{PoolParams: PoolParams{FlushStrategy: FlushIdleConnections}})
	require.NoError(t, err)
	assert.True(t, xa.IsWrapXaResource())
	assert.False(t, xa.IsPadXid())
	assert.False(t, xa.IsInterleaving())
	_, set = xa.IsSameRMOverride()
	assert.False(t, set)
}

func TestPool_ParamsRoundTrip(t *testing.T) {
	pool, err := NewPool(PoolParams{
		MinPoolSize:     intPtr(2),
		InitialPoolSize: intPtr(3),
		MaxPoolSize:     intPtr(4),
		FlushStrategy:   FlushGracefully,
		Expressions:     map[string]string{"max-pool-size": "${m:4}"},
	})
	require.NoError(t, err)

	params := pool.Params()
	params.Expressions["max-pool-size"] = "mutated"
	clone, err := NewPool(params)
	require.NoError(t, err)

	raw, _ := pool.Expression("max-pool-size")
	assert.Equal(t, "${m:4}", raw, "Params must not alias internal state")
	assert.Equal(t, 4, clone.MaxPoolSize())
}

func TestFlushStrategy_Names(t *testing.T) {
	for _, name := range FlushStrategyNames() {
		fs, err := ParseFlushStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, fs.String())
	}
	_, err := ParseFlushStrategy("")
	assert.Error(t, err)
	assert.Len(t, FlushStrategyNames(), 9)
}

func TestNewSecurity_ExactlyOne(t *testing.T) {
	_, err := NewSecurity(SecurityParams{})
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = NewSecurity(SecurityParams{SecurityDomain: "a", Application: true})
	assert.ErrorIs(t, err, ErrInconsistent)

	_, err = NewSecurity(SecurityParams{SecurityDomain: "a", SecurityDomainAndApplication: "b"})
	assert.ErrorIs(t, err, ErrInconsistent)

	s, err := NewSecurity(SecurityParams{SecurityDomainAndApplication: "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", s.SecurityDomainAndApplication())
}

func TestNewCredential(t *testing.T) {
	_, err := NewCredential(CredentialParams{})
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = NewCredential(CredentialParams{SecurityDomain: "d", UserName: "u"})
	assert.ErrorIs(t, err, ErrInconsistent)

	c, err := NewCredential(CredentialParams{UserName: "u"})
	require.NoError(t, err)
	assert.Equal(t, "", c.Password())
}

func TestNewTimeout_NonNegative(t *testing.T) {
	cases := map[string]TimeoutParams{
		"blocking-timeout-millis":      {BlockingTimeoutMillis: int64Ptr(-1)},
		"idle-timeout-minutes":         {IdleTimeoutMinutes: int64Ptr(-1)},
		"allocation-retry":             {AllocationRetry: intPtr(-1)},
		"allocation-retry-wait-millis": {AllocationRetryWaitMillis: int64Ptr(-1)},
		"xa-resource-timeout":          {XaResourceTimeout: intPtr(-1)},
	}
	for field, params := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := NewTimeout(params)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNegativeValue)
			var ve *ValidateError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, field, ve.Field)
		})
	}

	timeout, err := NewTimeout(TimeoutParams{BlockingTimeoutMillis: int64Ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), *timeout.BlockingTimeoutMillis())
	assert.Nil(t, timeout.IdleTimeoutMinutes())
}

func TestNewValidation_NonNegative(t *testing.T) {
	_, err := NewValidation(ValidationParams{BackgroundValidationMillis: int64Ptr(-5)})
	assert.ErrorIs(t, err, ErrNegativeValue)

	v, err := NewValidation(ValidationParams{UseFastFail: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, *v.UseFastFail())
}

func TestNewExtension_RequiresClassName(t *testing.T) {
	_, err := NewExtension(ExtensionParams{ModuleName: "m"})
	assert.ErrorIs(t, err, ErrMissingRequired)
}

func TestNewConnectionDefinition_Invariants(t *testing.T) {
	pool, err := NewPool(PoolParams{FlushStrategy: DefaultFlushStrategy})
	require.NoError(t, err)
	xa, err := NewXaPool(XaPoolParams{PoolParams: PoolParams{FlushStrategy: DefaultFlushStrategy}})
	require.NoError(t, err)
	xaTimeout, err := NewTimeout(TimeoutParams{XaResourceTimeout: intPtr(30)})
	require.NoError(t, err)

	_, err = NewConnectionDefinition(ConnectionDefinitionParams{JndiName: " "})
	assert.ErrorIs(t, err, ErrMissingRequired)

	_, err = NewConnectionDefinition(ConnectionDefinitionParams{JndiName: "java:/a", Pool: pool, XaPool: xa})
	assert.ErrorIs(t, err, ErrMultiplePools)

	_, err = NewConnectionDefinition(ConnectionDefinitionParams{JndiName: "java:/a", Pool: pool, Timeout: xaTimeout})
	assert.ErrorIs(t, err, ErrInconsistent)

	cd, err := NewConnectionDefinition(ConnectionDefinitionParams{JndiName: "java:/a", XaPool: xa, Timeout: xaTimeout})
	require.NoError(t, err)
	assert.True(t, cd.IsXA())
}

func TestConnectionDefinition_WithBuilders(t *testing.T) {
	cd, err := NewConnectionDefinition(ConnectionDefinitionParams{
		JndiName:         "java:/a",
		ConfigProperties: map[string]string{"x": "1"},
		Expressions:      map[string]string{"jndi-name": "${j:java:/a}"},
	})
	require.NoError(t, err)

	renamed, err := cd.WithJndiName("java:/b")
	require.NoError(t, err)
	assert.Equal(t, "java:/b", renamed.JndiName())
	assert.False(t, renamed.HasExpression("jndi-name"))
	assert.Equal(t, "java:/a", cd.JndiName())
	assert.True(t, cd.HasExpression("jndi-name"))

	_, err = cd.WithJndiName("")
	assert.ErrorIs(t, err, ErrMissingRequired)

	props := map[string]string{"y": "2"}
	replaced, err := cd.WithConfigProperties(props)
	require.NoError(t, err)
	props["y"] = "changed"
	assert.Equal(t, map[string]string{"y": "2"}, replaced.ConfigProperties())
	assert.Equal(t, map[string]string{"x": "1"}, cd.ConfigProperties())
}

func TestNewAdminObject(t *testing.T) {
	_, err := NewAdminObject(AdminObjectParams{ClassName: "my.AO"})
	assert.ErrorIs(t, err, ErrMissingRequired)

	ao, err := NewAdminObject(AdminObjectParams{JndiName: "java:/ao", Enabled: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, ao.IsEnabled())
	assert.True(t, ao.IsUseJavaContext())

	updated, err := ao.WithConfigProperties(map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.Equal(t, "v", updated.ConfigProperties()["k"])
	assert.Empty(t, ao.ConfigProperties())
}

func TestActivation_Builders(t *testing.T) {
	cd1, err := NewConnectionDefinition(ConnectionDefinitionParams{JndiName: "java:/one"})
	require.NoError(t, err)
	cd2, err := NewConnectionDefinition(ConnectionDefinitionParams{JndiName: "java:/two"})
	require.NoError(t, err)

	a, err := NewActivation(ActivationParams{ConnectionDefinitions: []*ConnectionDefinition{cd1}})
	require.NoError(t, err)

	b, err := a.WithConnectionDefinitions([]*ConnectionDefinition{cd1, cd2})
	require.NoError(t, err)
	assert.Len(t, a.ConnectionDefinitions(), 1)
	assert.Len(t, b.ConnectionDefinitions(), 2)

	_, err = a.WithConnectionDefinitions([]*ConnectionDefinition{cd1, cd1})
	assert.ErrorIs(t, err, ErrInconsistent)

	c, err := a.WithConfigProperties(map[string]string{"p": "1"})
	require.NoError(t, err)
	assert.Equal(t, "1", c.ConfigProperties()["p"])
}

func TestTransactionSupport_Parse(t *testing.T) {
	for _, ts := range []TransactionSupport{NoTransaction, LocalTransaction, XATransaction} {
		got, err := ParseTransactionSupport(ts.String())
		require.NoError(t, err)
		assert.Equal(t, ts, got)
	}
	_, err := ParseTransactionSupport("Sometimes")
	assert.Error(t, err)
}
