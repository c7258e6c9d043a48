package metadata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalCD(t *testing.T, cd *ConnectionDefinition, opts ...WriterOption) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, opts...).WriteConnectionDefinition(cd))
	return buf.String()
}

func TestWriter_RoundTripIronJacamar(t *testing.T) {
	p := newTestParser(nil)
	a, err := p.ParseIronJacamar(strings.NewReader(fullIronJacamar), "in.xml")
	require.NoError(t, err)

	first, err := MarshalIronJacamar(a)
	require.NoError(t, err)

	again, err := p.ParseIronJacamar(bytes.NewReader(first), "out.xml")
	require.NoError(t, err)
	second, err := MarshalIronJacamar(again)
	require.NoError(t, err)

	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Errorf("serialization is not stable (-first +second):\n%s", diff)
	}

	out := string(first)
	assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<ironjacamar "), out)
	assert.Contains(t, out, `xmlns="http://www.ironjacamar.org/doc/schema"`)
	assert.Contains(t, out, `xsi:schemaLocation="http://www.ironjacamar.org/doc/schema ironjacamar_1_1.xsd"`)
	assert.Contains(t, out, `<config-property name="Server">${eis.host:localhost}</config-property>`)
	assert.Contains(t, out, `<max-pool-size>${pool.max:10}</max-pool-size>`)
	assert.Contains(t, out, `<flush-strategy>EntirePool</flush-strategy>`)
	assert.Contains(t, out, `use-ccm="false"`)
	assert.Contains(t, out, `<transaction-support>XATransaction</transaction-support>`)
	assert.Contains(t, out, `<wrap-xa-resource>false</wrap-xa-resource>`)
	assert.Contains(t, out, `<recovery no-recovery="false">`)
	assert.NotContains(t, out, `enabled="true"`)

	opts := cmp.Options{
		cmp.AllowUnexported(Pool{}, XaPool{}, Capacity{}, Extension{}, expressionHolder{}),
	}
	if diff := cmp.Diff(a.ConnectionDefinitions()[0].XaPool(), again.ConnectionDefinitions()[0].XaPool(), opts); diff != "" {
		t.Errorf("xa-pool changed across round trip (-want +got):\n%s", diff)
	}
}

func TestWriter_OmitsDefaults(t *testing.T) {
	cd, err := parseCD(t, `<connection-definition class-name="my.MCF" jndi-name="java:/MyDS" enabled="true"><pool><min-pool-size>5</min-pool-size><max-pool-size>20</max-pool-size><flush-strategy>FailingConnectionOnly</flush-strategy></pool></connection-definition>`)
	require.NoError(t, err)

	out := marshalCD(t, cd)
	assert.Contains(t, out, `<connection-definition class-name="my.MCF" jndi-name="java:/MyDS">`)
	assert.Contains(t, out, `<min-pool-size>5</min-pool-size>`)
	assert.NotContains(t, out, "max-pool-size")
	assert.NotContains(t, out, "flush-strategy")
	assert.NotContains(t, out, "enabled")

	again, err := parseCD(t, out)
	require.NoError(t, err)
	assert.Equal(t, cd.Pool().MinPoolSize(), again.Pool().MinPoolSize())
	assert.Equal(t, cd.Pool().MaxPoolSize(), again.Pool().MaxPoolSize())
	assert.Equal(t, cd.Pool().FlushStrategy(), again.Pool().FlushStrategy())
}

func TestWriter_ExpressionsPreservedOrResolved(t *testing.T) {
	p := newTestParser(map[string]string{"jndi": "java:/resolved"})
	cd, err := p.ParseConnectionDefinition(strings.NewReader(
		`<connection-definition jndi-name="${jndi}" enabled="${on:true}"><pool><min-pool-size>${min:2}</min-pool-size></pool></connection-definition>`), "")
	require.NoError(t, err)

	preserved := marshalCD(t, cd)
	assert.Contains(t, preserved, `jndi-name="${jndi}"`)
	assert.Contains(t, preserved, `enabled="${on:true}"`)
	assert.Contains(t, preserved, `<min-pool-size>${min:2}</min-pool-size>`)

	resolved := marshalCD(t, cd, WithResolvedValues())
	assert.Contains(t, resolved, `jndi-name="java:/resolved"`)
	assert.NotContains(t, resolved, "enabled")
	assert.Contains(t, resolved, `<min-pool-size>2</min-pool-size>`)
	assert.NotContains(t, resolved, "${")
}

func TestWriter_WithConfigPropertiesDropsStaleExpressions(t *testing.T) {
	cd, err := parseCD(t, `<connection-definition jndi-name="java:/a"><config-property name="Keep">${k:1}</config-property><config-property name="Change">${c:2}</config-property></connection-definition>`)
	require.NoError(t, err)

	updated, err := cd.WithConfigProperties(map[string]string{"Keep": "1", "Change": "3", "New": "4"})
	require.NoError(t, err)

	out := marshalCD(t, updated)
	assert.Contains(t, out, `<config-property name="Keep">${k:1}</config-property>`)
	assert.Contains(t, out, `<config-property name="Change">3</config-property>`)
	assert.Contains(t, out, `<config-property name="New">4</config-property>`)

	// The original is untouched.
	assert.Equal(t, map[string]string{"Keep": "1", "Change": "2"}, cd.ConfigProperties())
}

func TestWriter_ConfigPropertiesSorted(t *testing.T) {
	cd, err := parseCD(t, `<connection-definition jndi-name="java:/a"><config-property name="b">2</config-property><config-property name="a">1</config-property></connection-definition>`)
	require.NoError(t, err)

	out := marshalCD(t, cd)
	assert.Less(t, strings.Index(out, `name="a"`), strings.Index(out, `name="b"`))
}

func TestWriter_ResourceAdaptersDocument(t *testing.T) {
	doc := `<resource-adapters><resource-adapter id="ra1"><archive>ra1.rar</archive><admin-objects><admin-object class-name="x.AO" jndi-name="java:/ao" use-java-context="false"/></admin-objects></resource-adapter></resource-adapters>`
	parsed, err := newTestParser(nil).ParseDocument(strings.NewReader(doc), "ra.xml")
	require.NoError(t, err)

	out, err := MarshalDocument(parsed)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, `<resource-adapter id="ra1">`)
	assert.Contains(t, s, `<archive>ra1.rar</archive>`)
	assert.Contains(t, s, `use-java-context="false"`)

	again, err := newTestParser(nil).ParseDocument(bytes.NewReader(out), "ra.xml")
	require.NoError(t, err)
	require.Len(t, again.Activations, 1)
	assert.Equal(t, "ra1.rar", again.Activations[0].Archive())
}

func TestWriter_SecurityModes(t *testing.T) {
	for _, body := range []string{
		`<application></application>`,
		`<security-domain>d</security-domain>`,
		`<security-domain-and-application>d</security-domain-and-application>`,
	} {
		cd, err := parseCD(t, `<connection-definition jndi-name="java:/a"><security>`+body+`</security></connection-definition>`)
		require.NoError(t, err)
		assert.Contains(t, marshalCD(t, cd), body)
	}
}

func TestWriter_DeclarationOnItsOwnLine(t *testing.T) {
	a, err := newTestParser(nil).ParseIronJacamar(strings.NewReader(`<ironjacamar><bootstrap-context>ctx</bootstrap-context></ironjacamar>`), "")
	require.NoError(t, err)

	out, err := MarshalIronJacamar(a)
	require.NoError(t, err)
	lines := strings.Split(string(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?>`, lines[0])
	assert.Equal(t, "<ironjacamar>", lines[1])
}

func TestWriter_ActivationExpressionsPreservedOrResolved(t *testing.T) {
	p := newTestParser(map[string]string{"G": "grp.X", "H": "grp.Y", "A": "true"})
	a, err := p.ParseIronJacamar(strings.NewReader(`<ironjacamar>
  <bean-validation-groups>
    <bean-validation-group>${G}</bean-validation-group>
    <bean-validation-group>plain.Group</bean-validation-group>
    <bean-validation-group>${H}</bean-validation-group>
  </bean-validation-groups>
  <connection-definitions>
    <connection-definition jndi-name="java:/eis/A">
      <security><application>${A}</application></security>
    </connection-definition>
  </connection-definitions>
</ironjacamar>`), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"grp.X", "plain.Group", "grp.Y"}, a.BeanValidationGroups())
	assert.True(t, a.ConnectionDefinitions()[0].Security().IsApplication())

	tests := []struct {
		name     string
		opts     []WriterOption
		contains []string
	}{
		{
			name: "preserved",
			contains: []string{
				`<bean-validation-group>${G}</bean-validation-group>`,
				`<bean-validation-group>plain.Group</bean-validation-group>`,
				`<bean-validation-group>${H}</bean-validation-group>`,
				`<application>${A}</application>`,
			},
		},
		{
			name: "resolved",
			opts: []WriterOption{WithResolvedValues()},
			contains: []string{
				`<bean-validation-group>grp.X</bean-validation-group>`,
				`<bean-validation-group>grp.Y</bean-validation-group>`,
				`<application></application>`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MarshalIronJacamar(a, tt.opts...)
			require.NoError(t, err)
			s := string(out)
			for _, want := range tt.contains {
				assert.Contains(t, s, want)
			}
			if len(tt.opts) > 0 {
				assert.NotContains(t, s, "${")
			}

			again, err := p.ParseIronJacamar(bytes.NewReader(out), "")
			require.NoError(t, err)
			assert.Equal(t, a.BeanValidationGroups(), again.BeanValidationGroups())
			assert.True(t, again.ConnectionDefinitions()[0].Security().IsApplication())
		})
	}
}

func TestWriter_DocumentSchemaKept(t *testing.T) {
	const ns = "http://www.ironjacamar.org/doc/schema"
	tests := []struct {
		name     string
		in       string
		want     Schema
		contains []string
	}{
		{
			name: "ironjacamar with version",
			in:   `<ironjacamar xmlns="` + ns + `" version="1.1"><bootstrap-context>ctx</bootstrap-context></ironjacamar>`,
			want: Schema{Namespace: ns, Version: "1.1"},
			contains: []string{
				`<ironjacamar xmlns="` + ns + `" version="1.1">`,
			},
		},
		{
			name: "ironjacamar with schema location",
			in: `<ironjacamar xmlns="` + ns + `" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" ` +
				`xsi:schemaLocation="` + ns + ` ironjacamar_1_1.xsd"><bootstrap-context>ctx</bootstrap-context></ironjacamar>`,
			want: Schema{Namespace: ns, SchemaLocation: ns + " ironjacamar_1_1.xsd"},
			contains: []string{
				`xmlns="` + ns + `"`,
				`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"`,
				`xsi:schemaLocation="` + ns + ` ironjacamar_1_1.xsd"`,
			},
		},
		{
			name: "resource-adapters with version",
			in:   `<resource-adapters xmlns="` + ns + `" version="1.2"><resource-adapter id="ra"><archive>ra.rar</archive></resource-adapter></resource-adapters>`,
			want: Schema{Namespace: ns, Version: "1.2"},
			contains: []string{
				`<resource-adapters xmlns="` + ns + `" version="1.2">`,
				`<resource-adapter id="ra">`,
			},
		},
		{
			name:     "bare root",
			in:       `<ironjacamar><bootstrap-context>ctx</bootstrap-context></ironjacamar>`,
			contains: []string{"<ironjacamar>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(nil)
			doc, err := p.ParseDocument(strings.NewReader(tt.in), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.Schema)

			out, err := MarshalDocument(doc)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, string(out), want)
			}

			again, err := p.ParseDocument(bytes.NewReader(out), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, again.Schema)
		})
	}

	a, err := newTestParser(nil).ParseIronJacamar(strings.NewReader(
		`<ironjacamar xmlns="`+ns+`" version="1.1"><bootstrap-context>ctx</bootstrap-context></ironjacamar>`), "")
	require.NoError(t, err)
	assert.Equal(t, Schema{Namespace: ns, Version: "1.1"}, a.Schema())
}

// xmlNode is a document reduced to its element names, attributes and
// trimmed text. Comments and whitespace between elements are dropped.
type xmlNode struct {
	Space    string
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*xmlNode
}

func canonicalXML(t *testing.T, doc string) *xmlNode {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	var (
		root  *xmlNode
		stack []*xmlNode
		texts []*strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		switch tok := tok.(type) {
		case xml.StartElement:
			n := &xmlNode{Space: tok.Name.Space, Name: tok.Name.Local, Attrs: map[string]string{}}
			for _, attr := range tok.Attr {
				key := attr.Name.Local
				if attr.Name.Space != "" {
					key = attr.Name.Space + ":" + key
				}
				n.Attrs[key] = attr.Value
			}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
			texts = append(texts, &strings.Builder{})
		case xml.CharData:
			if len(texts) > 0 {
				texts[len(texts)-1].Write(tok)
			}
		case xml.EndElement:
			stack[len(stack)-1].Text = strings.TrimSpace(texts[len(texts)-1].String())
			stack = stack[:len(stack)-1]
			texts = texts[:len(texts)-1]
		}
	}
	require.NotNil(t, root, "document has no root element")
	return root
}

// The inputs list children in the order the writer emits them and leave
// out defaulted values, so a faithful round trip reproduces them exactly.
func TestWriter_RoundTripPreservesDocument(t *testing.T) {
	lookup := map[string]string{
		"G": "grp.X", "A": "true", "host": "eis.example.org", "min": "1",
		"user": "sa", "pw": "secret", "blocking": "5000", "bg": "true",
	}
	tests := []struct {
		name string
		in   string
	}{
		{
			name: "activation fields",
			in: `<?xml version="1.0" encoding="UTF-8"?>
<!-- activation-level settings -->
<ironjacamar xmlns="http://www.ironjacamar.org/doc/schema" version="1.1">
  <bean-validation-groups>
    <bean-validation-group>${G}</bean-validation-group>
    <bean-validation-group>javax.validation.groups.Default</bean-validation-group>
  </bean-validation-groups>
  <bootstrap-context>workmanager</bootstrap-context>
  <config-property name="Host">${host:localhost}</config-property>
  <config-property name="Port">4711</config-property>
  <transaction-support>LocalTransaction</transaction-support>
</ironjacamar>`,
		},
		{
			name: "application security with pool and timeout",
			in: `<ironjacamar>
  <connection-definitions>
    <connection-definition class-name="${mcf:org.example.MCF}" jndi-name="java:/eis/App" id="App" enabled="false" use-java-context="false" sharable="false" enlistment="false" connectable="true" tracking="true">
      <config-property name="A">1</config-property>
      <config-property name="B">${b:2}</config-property>
      <pool type="custom" janitor="org.example.Janitor">
        <min-pool-size>${min:0}</min-pool-size>
        <initial-pool-size>2</initial-pool-size>
        <max-pool-size>10</max-pool-size>
        <prefill>true</prefill>
        <use-strict-min>true</use-strict-min>
        <flush-strategy>IdleConnections</flush-strategy>
        <capacity>
          <incrementer class-name="org.example.Inc" module-name="org.example" module-slot="main">
            <config-property name="Size">2</config-property>
          </incrementer>
          <decrementer class-name="org.example.Dec"/>
        </capacity>
      </pool>
      <security>
        <application>${A}</application>
      </security>
      <timeout>
        <blocking-timeout-millis>${blocking:3000}</blocking-timeout-millis>
        <idle-timeout-minutes>15</idle-timeout-minutes>
        <allocation-retry>3</allocation-retry>
        <allocation-retry-wait-millis>100</allocation-retry-wait-millis>
      </timeout>
      <validation>
        <validate-on-match>true</validate-on-match>
        <background-validation>${bg:false}</background-validation>
        <background-validation-millis>60000</background-validation-millis>
        <use-fast-fail>true</use-fast-fail>
      </validation>
    </connection-definition>
  </connection-definitions>
</ironjacamar>`,
		},
		{
			name: "security domain with xa-pool and credential recovery",
			in: `<ironjacamar>
  <connection-definitions>
    <connection-definition class-name="org.example.XaMCF" jndi-name="java:/eis/Xa" id="Xa" use-ccm="false">
      <xa-pool>
        <min-pool-size>1</min-pool-size>
        <max-pool-size>5</max-pool-size>
        <flush-strategy>EntirePool</flush-strategy>
        <is-same-rm-override>false</is-same-rm-override>
        <interleaving>true</interleaving>
        <no-tx-separate-pools>true</no-tx-separate-pools>
        <pad-xid>true</pad-xid>
        <wrap-xa-resource>false</wrap-xa-resource>
      </xa-pool>
      <security>
        <security-domain>${domain:EisDomain}</security-domain>
      </security>
      <timeout>
        <xa-resource-timeout>300</xa-resource-timeout>
      </timeout>
      <recovery no-recovery="false">
        <recover-credential>
          <user-name>${user}</user-name>
          <password>${pw}</password>
        </recover-credential>
        <recover-plugin class-name="org.example.RecoveryPlugin">
          <config-property name="Mode">${mode:full}</config-property>
        </recover-plugin>
      </recovery>
    </connection-definition>
  </connection-definitions>
</ironjacamar>`,
		},
		{
			name: "security domain and application with domain recovery",
			in: `<ironjacamar>
  <connection-definitions>
    <connection-definition jndi-name="java:/eis/Both">
      <security>
        <security-domain-and-application>BothDomain</security-domain-and-application>
      </security>
      <recovery no-recovery="${norec:true}">
        <recover-credential>
          <security-domain>RecoveryDomain</security-domain>
        </recover-credential>
      </recovery>
    </connection-definition>
  </connection-definitions>
  <admin-objects>
    <admin-object class-name="org.example.MyAO" jndi-name="${ao:java:/eis/AO}" id="AO" enabled="false" use-java-context="false">
      <config-property name="Queue">orders</config-property>
    </admin-object>
  </admin-objects>
</ironjacamar>`,
		},
		{
			name: "resource adapters",
			in: `<resource-adapters xmlns="http://www.ironjacamar.org/doc/schema" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:schemaLocation="http://www.ironjacamar.org/doc/schema resource-adapters_1_1.xsd">
  <resource-adapter id="${ra:first}">
    <archive>first.rar</archive>
    <transaction-support>XATransaction</transaction-support>
    <connection-definitions>
      <connection-definition jndi-name="java:/eis/First" id="First"/>
    </connection-definitions>
  </resource-adapter>
  <resource-adapter id="second">
    <archive>${archive:second.rar}</archive>
    <bootstrap-context>ctx</bootstrap-context>
    <admin-objects>
      <admin-object jndi-name="java:/eis/SecondAO"/>
    </admin-objects>
  </resource-adapter>
</resource-adapters>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newTestParser(lookup).ParseDocument(strings.NewReader(tt.in), "in.xml")
			require.NoError(t, err)
			out, err := MarshalDocument(doc)
			require.NoError(t, err)

			if diff := cmp.Diff(canonicalXML(t, tt.in), canonicalXML(t, string(out))); diff != "" {
				t.Errorf("round trip changed the document (-in +out):\n%s\noutput:\n%s", diff, out)
			}
		})
	}
}
