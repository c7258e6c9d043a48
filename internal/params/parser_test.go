package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyValuePairs(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
		want  map[string]string
		err   string
	}{
		{"none", nil, map[string]string{}, ""},
		{"one", []string{"eis.host=localhost"}, map[string]string{"eis.host": "localhost"}, ""},
		{"several", []string{"eis.host=db1", "pool.min=2"}, map[string]string{"eis.host": "db1", "pool.min": "2"}, ""},
		{"blank value", []string{"jndi="}, map[string]string{"jndi": ""}, ""},
		{"only first = splits", []string{"url=jdbc:h2:mem:t;MODE=Oracle"}, map[string]string{"url": "jdbc:h2:mem:t;MODE=Oracle"}, ""},
		{"expression kept verbatim", []string{"jndi=${base}/eis"}, map[string]string{"jndi": "${base}/eis"}, ""},
		{"key trimmed", []string{" eis.port =4711"}, map[string]string{"eis.port": "4711"}, ""},
		{"repeated key", []string{"mode=dev", "mode=prod"}, map[string]string{"mode": "prod"}, ""},
		{"no separator", []string{"eis.host"}, nil, "not in key=value format"},
		{"blank key", []string{"=4711"}, nil, "empty key"},
		{"later pair invalid", []string{"a=1", "b"}, nil, "not in key=value format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyValuePairs(tt.pairs)
			if tt.err != "" {
				assert.ErrorContains(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_LaterLayersWin(t *testing.T) {
	got := Merge(
		map[string]string{"a": "env", "b": "env"},
		nil,
		map[string]string{"b": "file", "c": "file"},
		map[string]string{"c": "flag"},
	)
	assert.Equal(t, map[string]string{"a": "env", "b": "file", "c": "flag"}, got)
}
