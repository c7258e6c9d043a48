package metadata

import (
	"os"
	"testing"
)

func mapLookup(m map[string]string) Lookup {
	return PropertiesLookup(m, nil)
}

// TestParseTemplate_Value tests resolution of plain, defaulted and nested
// placeholders.
func TestParseTemplate_Value(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"host":     "db.local",
		"port":     "5432",
		"name":     "host",
		"ref":      "${port}",
		"loop":     "${loop}",
		"env.HOME": "/home/x",
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no expression", "plain text", "plain text"},
		{"simple", "${host}", "db.local"},
		{"embedded", "jdbc://${host}:${port}/app", "jdbc://db.local:5432/app"},
		{"default unused", "${host:other}", "db.local"},
		{"default used", "${missing:fallback}", "fallback"},
		{"empty default", "${missing:}", ""},
		{"default with colon", "${missing:http://x:80}", "http://x:80"},
		{"undefined no default", "${missing}", "${missing}"},
		{"nested key", "${${name}}", "db.local"},
		{"nested default", "${missing:${port}}", "5432"},
		{"alternatives", "${nope,port}", "5432"},
		{"complex value", "${ref}", "5432"},
		{"self reference is bounded", "${loop}", "${loop}"},
		{"path separator", "a${/}b", "a" + string(os.PathSeparator) + "b"},
		{"path list separator", "a${:}b", "a" + string(os.PathListSeparator) + "b"},
		{"stray close brace", "a}b${port}", "a}b5432"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTemplate(tt.input, lookup).Value()
			if got != tt.want {
				t.Errorf("Value(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestParseTemplate_Substitution tests that the literal form is preserved.
func TestParseTemplate_Substitution(t *testing.T) {
	lookup := mapLookup(map[string]string{"port": "5432", "name": "port"})

	inputs := []string{
		"plain",
		"${port}",
		"${port:1}",
		"x-${missing:${port}}-y",
		"${${name}:7}",
	}
	for _, in := range inputs {
		if got := ParseTemplate(in, lookup).Substitution(); got != in {
			t.Errorf("Substitution(%q) = %q", in, got)
		}
	}
}

// TestParseTemplate_Malformed tests that unbalanced syntax degrades to a
// literal.
func TestParseTemplate_Malformed(t *testing.T) {
	lookup := mapLookup(map[string]string{"a": "1"})

	for _, in := range []string{"${a", "x ${a} ${b", "${}", "${a${a}"} {
		tmpl := ParseTemplate(in, lookup)
		if !tmpl.IsMalformed() {
			t.Errorf("%q: expected malformed", in)
		}
		if got := tmpl.Value(); got != in {
			t.Errorf("%q: Value() = %q, want literal", in, got)
		}
		if tmpl.HasExpressions() {
			t.Errorf("%q: malformed template should expose no expressions", in)
		}
	}
}

// TestParseTemplate_Idempotent tests that Value is stable across calls.
func TestParseTemplate_Idempotent(t *testing.T) {
	lookup := mapLookup(map[string]string{"a": "${b}", "b": "2"})
	tmpl := ParseTemplate("v=${a}/${c:3}", lookup)

	first := tmpl.Value()
	second := tmpl.Value()
	if first != second {
		t.Fatalf("Value() not idempotent: %q then %q", first, second)
	}
	if first != "v=2/3" {
		t.Errorf("Value() = %q, want %q", first, "v=2/3")
	}
	if !tmpl.IsComplex() {
		t.Error("expected complex template when a value is itself a template")
	}
}

func TestExpression_Renderings(t *testing.T) {
	lookup := mapLookup(map[string]string{"port": "5432"})
	exprs := ParseTemplate("${port:80}", lookup).Expressions()
	if len(exprs) != 1 {
		t.Fatalf("expected 1 expression, got %d", len(exprs))
	}
	e := exprs[0]

	if got := e.Literal(); got != "${port:80}" {
		t.Errorf("Literal() = %q", got)
	}
	if got := e.ResolvedLiteral(); got != "${port:5432}" {
		t.Errorf("ResolvedLiteral() = %q", got)
	}
	if got := e.Value(); got != "5432" {
		t.Errorf("Value() = %q", got)
	}

	unresolved := Expression{Key: "x", Default: "1", HasDefault: true}
	if got := unresolved.ResolvedLiteral(); got != "${x:1}" {
		t.Errorf("unresolved ResolvedLiteral() = %q", got)
	}
	if got := unresolved.Value(); got != "1" {
		t.Errorf("unresolved Value() = %q", got)
	}
}

func TestEnvLookup(t *testing.T) {
	t.Setenv("JCAGEN_TEST_VALUE", "from-env")
	lookup := EnvLookup()

	for _, key := range []string{"JCAGEN_TEST_VALUE", "env.JCAGEN_TEST_VALUE"} {
		v, ok := lookup(key)
		if !ok || v != "from-env" {
			t.Errorf("lookup(%q) = %q, %v", key, v, ok)
		}
	}
}

func TestPropertiesLookup_FallsBack(t *testing.T) {
	lookup := PropertiesLookup(
		map[string]string{"a": "1"},
		mapLookup(map[string]string{"a": "shadowed", "b": "2"}),
	)
	if v, _ := lookup("a"); v != "1" {
		t.Errorf("a = %q, want 1", v)
	}
	if v, _ := lookup("b"); v != "2" {
		t.Errorf("b = %q, want 2", v)
	}
	if _, ok := lookup("c"); ok {
		t.Error("c should be undefined")
	}
}
