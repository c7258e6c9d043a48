package metadata

import (
	"sort"
	"strconv"
	"strings"
)

func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// configPropertyKey is the expressions key of a config-property value.
func configPropertyKey(name string) string {
	return "config-property|" + name
}

func beanValidationGroupKey(i int) string {
	return elemBeanValidationGroup + "|" + strconv.Itoa(i)
}

// replaceConfigProperties drops the recorded expression of every config
// property whose value differs between old and next.
func replaceConfigProperties(exprs, old, next map[string]string) map[string]string {
	out := copyMap(exprs)
	for name, v := range old {
		if nv, ok := next[name]; !ok || nv != v {
			delete(out, configPropertyKey(name))
		}
	}
	return out
}

// expressionHolder is embedded by every value object that records the raw
// text of attributes and elements containing ${...}.
type expressionHolder struct {
	expressions map[string]string
}

// Expressions returns a copy of the recorded raw expression strings keyed by
// attribute or element name.
func (h expressionHolder) Expressions() map[string]string {
	return copyMap(h.expressions)
}

// Expression returns the raw text recorded for key.
func (h expressionHolder) Expression(key string) (string, bool) {
	v, ok := h.expressions[key]
	return v, ok
}

// HasExpression reports whether key was read from a ${...} template.
func (h expressionHolder) HasExpression(key string) bool {
	_, ok := h.expressions[key]
	return ok
}
