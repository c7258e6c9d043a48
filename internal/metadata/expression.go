package metadata

import (
	"fmt"
	"os"
	"strings"
)

// Lookup resolves a property name to its value. The second result reports
// whether the property is defined.
type Lookup func(key string) (string, bool)

// EnvLookup resolves properties from the process environment. A key of the
// form "env.NAME" is looked up as NAME.
func EnvLookup() Lookup {
	return func(key string) (string, bool) {
		if name, ok := strings.CutPrefix(key, "env."); ok {
			key = name
		}
		return os.LookupEnv(key)
	}
}

// PropertiesLookup resolves from props first and falls back to fallback,
// which may be nil.
func PropertiesLookup(props map[string]string, fallback Lookup) Lookup {
	return func(key string) (string, bool) {
		if v, ok := props[key]; ok {
			return v, true
		}
		if fallback != nil {
			return fallback(key)
		}
		return "", false
	}
}

// Expression is a single ${key:default} placeholder after resolution.
type Expression struct {
	Key        string
	Default    string
	HasDefault bool
	Resolved   string
	Found      bool // Resolved came from the lookup
}

// Literal renders the placeholder as written: ${key} or ${key:default}.
func (e Expression) Literal() string {
	if e.HasDefault {
		return "${" + e.Key + ":" + e.Default + "}"
	}
	return "${" + e.Key + "}"
}

// ResolvedLiteral renders the placeholder with its default replaced by the
// resolved value. Unresolved placeholders render as Literal.
func (e Expression) ResolvedLiteral() string {
	if !e.Found {
		return e.Literal()
	}
	return "${" + e.Key + ":" + e.Resolved + "}"
}

// Value returns the resolved value, the default, or the literal form when the
// key is undefined and no default exists.
func (e Expression) Value() string {
	switch {
	case e.Found:
		return e.Resolved
	case e.HasDefault:
		return e.Default
	}
	return e.Literal()
}

const (
	markerOpen  = '\uE000'
	markerClose = '\uE001'

	maxTemplateDepth = 8
)

type templateEntry struct {
	key      string // may contain markers of nested placeholders
	def      string // may contain markers of nested placeholders
	hasDef   bool
	resolved string
	found    bool
}

// Template is a string with its ${...} placeholders replaced by markers.
type Template struct {
	raw       string
	template  string
	entries   map[string]*templateEntry
	order     []string
	lookup    Lookup
	depth     int
	complex   bool
	malformed bool
}

// ParseTemplate parses s, resolving placeholders against lookup. Placeholders
// are found right to left, so the innermost span of a nested expression is
// resolved first. An unbalanced "${" makes the whole string a literal and
// marks the template as malformed.
func ParseTemplate(s string, lookup Lookup) *Template {
	return parseTemplate(s, lookup, 0)
}

func parseTemplate(s string, lookup Lookup, depth int) *Template {
	if lookup == nil {
		lookup = EnvLookup()
	}
	t := &Template{
		raw:      s,
		template: s,
		entries:  make(map[string]*templateEntry),
		lookup:   lookup,
		depth:    depth,
	}
	work := s
	for {
		start := strings.LastIndex(work, "${")
		if start < 0 {
			break
		}
		rel := strings.IndexByte(work[start:], '}')
		if rel < 0 || rel == 2 {
			t.degrade()
			return t
		}
		end := start + rel
		entry := t.newEntry(work[start+2 : end])

		marker := fmt.Sprintf("%c%d%c", markerOpen, len(t.order), markerClose)
		t.entries[marker] = entry
		t.order = append(t.order, marker)
		if entry.found && strings.Contains(entry.resolved, "${") {
			t.complex = true
		}
		work = work[:start] + marker + work[end+1:]
	}
	t.template = work
	return t
}

func (t *Template) degrade() {
	t.template = t.raw
	t.entries = map[string]*templateEntry{}
	t.order = nil
	t.complex = false
	t.malformed = true
}

func (t *Template) newEntry(body string) *templateEntry {
	switch body {
	case "/":
		return &templateEntry{key: body, resolved: string(os.PathSeparator), found: true}
	case ":":
		return &templateEntry{key: body, resolved: string(os.PathListSeparator), found: true}
	}

	e := &templateEntry{key: body}
	if k, d, ok := strings.Cut(body, ":"); ok {
		e.key, e.def, e.hasDef = k, d, true
	}

	// ${a,b:default} tries each alternative in turn.
	key := t.render(e.key, t.valueOf)
	for _, alt := range strings.Split(key, ",") {
		if v, ok := t.lookup(strings.TrimSpace(alt)); ok {
			e.resolved, e.found = v, true
			break
		}
	}
	return e
}

// render replaces every marker in s using f.
func (t *Template) render(s string, f func(*templateEntry) string) string {
	if len(t.entries) == 0 || !strings.ContainsRune(s, markerOpen) {
		return s
	}
	var b strings.Builder
	for {
		i := strings.IndexRune(s, markerOpen)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		j := strings.IndexRune(s[i:], markerClose)
		if j < 0 {
			b.WriteString(s)
			return b.String()
		}
		j += i + len(string(markerClose))
		b.WriteString(s[:i])
		if e, ok := t.entries[s[i:j]]; ok {
			b.WriteString(f(e))
		} else {
			b.WriteString(s[i:j])
		}
		s = s[j:]
	}
}

func (t *Template) valueOf(e *templateEntry) string {
	if e.found {
		if t.complex && t.depth < maxTemplateDepth && strings.Contains(e.resolved, "${") {
			return parseTemplate(e.resolved, t.lookup, t.depth+1).Value()
		}
		return e.resolved
	}
	if e.hasDef {
		return t.render(e.def, t.valueOf)
	}
	return t.literalOf(e)
}

func (t *Template) literalOf(e *templateEntry) string {
	key := t.render(e.key, t.literalOf)
	if e.hasDef {
		return "${" + key + ":" + t.render(e.def, t.literalOf) + "}"
	}
	return "${" + key + "}"
}

// Raw returns the string the template was parsed from.
func (t *Template) Raw() string { return t.raw }

// Value returns the fully resolved string.
func (t *Template) Value() string {
	if len(t.entries) == 0 {
		return t.raw
	}
	return t.render(t.template, t.valueOf)
}

// Substitution returns the string with every placeholder in its literal
// ${...} form.
func (t *Template) Substitution() string {
	if len(t.entries) == 0 {
		return t.raw
	}
	return t.render(t.template, t.literalOf)
}

// IsComplex reports whether a resolved value is itself a template.
func (t *Template) IsComplex() bool { return t.complex }

// IsMalformed reports whether the input had unbalanced placeholder syntax.
func (t *Template) IsMalformed() bool { return t.malformed }

// HasExpressions reports whether at least one placeholder was found.
func (t *Template) HasExpressions() bool { return len(t.entries) > 0 }

// Expressions returns the placeholders in the order they were resolved,
// innermost first.
func (t *Template) Expressions() []Expression {
	out := make([]Expression, 0, len(t.order))
	for _, marker := range t.order {
		e := t.entries[marker]
		expr := Expression{
			Key:        t.render(e.key, t.literalOf),
			HasDefault: e.hasDef,
			Resolved:   e.resolved,
			Found:      e.found,
		}
		if e.hasDef {
			expr.Default = t.render(e.def, t.literalOf)
		}
		out = append(out, expr)
	}
	return out
}
