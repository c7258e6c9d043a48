package codegen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/jcagen/pkg/jcagen"
)

func TestNewDefinition_Defaults(t *testing.T) {
	def := NewDefinition("org.example.acme", "")

	assert.Equal(t, jcagen.DefaultJCAVersion, def.Version)
	assert.Equal(t, BuildAnt, def.Build)
	assert.Equal(t, NoTransaction, def.Transaction)
	require.NotNil(t, def.ResourceAdapter)
	assert.Equal(t, "AcmeResourceAdapter", def.ResourceAdapter.Class)
	require.Len(t, def.ConnectionFactories, 1)

	cf := def.ConnectionFactories[0]
	assert.Equal(t, "AcmeManagedConnectionFactory", cf.MCFClass)
	assert.Equal(t, "AcmeManagedConnection", cf.MCClass)
	assert.Equal(t, "AcmeManagedConnectionMetaData", cf.MCMetaDataClass())
	assert.Equal(t, "AcmeConnectionFactory", cf.CFInterface)
	assert.Equal(t, "AcmeConnectionFactoryImpl", cf.CFClass)
	assert.Equal(t, "AcmeConnection", cf.ConnInterface)
	assert.Equal(t, "AcmeConnectionImpl", cf.ConnClass)
	assert.Equal(t, "java:/eis/AcmeConnectionFactory", cf.JndiName)
	assert.Nil(t, def.MessageListener)

	require.NoError(t, def.Validate())
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	def := &Definition{
		Package:  "com.corp",
		Prefix:   "Hello",
		Version:  Version16,
		Inbound:  true,
		Outbound: true,
		ConnectionFactories: []ConnectionFactoryDefinition{
			{MCFClass: "MyMCF"},
			{},
		},
		AdminObjects: []AdminObjectDefinition{
			{ConfigProperties: []ConfigProperty{{Name: "Topic"}}},
		},
	}
	def.ApplyDefaults()

	assert.Equal(t, Version16, def.Version)
	assert.Equal(t, "MyMCF", def.ConnectionFactories[0].MCFClass)
	assert.Equal(t, "HelloManagedConnection", def.ConnectionFactories[0].MCClass)
	assert.Equal(t, "HelloXManagedConnectionFactory", def.ConnectionFactories[1].MCFClass)
	require.NotNil(t, def.MessageListener)
	assert.Equal(t, "HelloActivationSpec", def.MessageListener.ActivationSpec)
	assert.Equal(t, "HelloAdminObject", def.AdminObjects[0].Interface)
	assert.Equal(t, "HelloAdminObjectImpl", def.AdminObjects[0].Class)
	assert.Equal(t, "String", def.AdminObjects[0].ConfigProperties[0].Type)

	require.NoError(t, def.Validate())
}

func TestApplyDefaults_Version10HasNoResourceAdapter(t *testing.T) {
	def := &Definition{Package: "old.school", Version: Version10, Outbound: true}
	def.ApplyDefaults()
	assert.Nil(t, def.ResourceAdapter)
	require.NoError(t, def.Validate())
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Definition)
		message string
	}{
		{
			name:    "bad package",
			mutate:  func(d *Definition) { d.Package = "org.1bad" },
			message: "not a valid Java package",
		},
		{
			name:    "keyword class name",
			mutate:  func(d *Definition) { d.ResourceAdapter.Class = "class" },
			message: "not a valid Java class name",
		},
		{
			name:    "unknown version",
			mutate:  func(d *Definition) { d.Version = "2.0" },
			message: "unsupported JCA version",
		},
		{
			name:    "unknown build",
			mutate:  func(d *Definition) { d.Build = "gradle" },
			message: "unsupported build type",
		},
		{
			name:    "unknown transaction",
			mutate:  func(d *Definition) { d.Transaction = "Sometimes" },
			message: "unsupported transaction support",
		},
		{
			name: "annotations before 1.6",
			mutate: func(d *Definition) {
				d.Version = Version15
				d.Annotations = true
			},
			message: "annotations require JCA 1.6",
		},
		{
			name:    "neither direction",
			mutate:  func(d *Definition) { d.Outbound = false },
			message: "at least one of inbound or outbound",
		},
		{
			name: "duplicate property",
			mutate: func(d *Definition) {
				d.ResourceAdapter.ConfigProperties = []ConfigProperty{
					{Name: "Host", Type: "String"},
					{Name: "Host", Type: "String"},
				}
			},
			message: `duplicate config property "Host"`,
		},
		{
			name: "empty property name",
			mutate: func(d *Definition) {
				d.ConnectionFactories[0].ConfigProperties = []ConfigProperty{{Name: " ", Type: "String"}}
			},
			message: "config property name must not be empty",
		},
		{
			name: "unsupported property type",
			mutate: func(d *Definition) {
				d.ConnectionFactories[0].ConfigProperties = []ConfigProperty{{Name: "Port", Type: "int"}}
			},
			message: `unsupported type "int"`,
		},
		{
			name:    "class used twice",
			mutate:  func(d *Definition) { d.ConnectionFactories[0].MCClass = d.ConnectionFactories[0].MCFClass },
			message: "is already used by",
		},
		{
			name: "duplicate jndi",
			mutate: func(d *Definition) {
				d.AdminObjects = []AdminObjectDefinition{
					{Interface: "Queue", Class: "QueueImpl", JndiName: d.ConnectionFactories[0].JndiName},
				}
			},
			message: "duplicate JNDI name",
		},
		{
			name: "inbound on 1.0",
			mutate: func(d *Definition) {
				d.Version = Version10
				d.ResourceAdapter = nil
				d.Inbound = true
				d.MessageListener = &InboundDefinition{Listener: "L", ActivationSpec: "S", Activation: "A"}
			},
			message: "inbound support requires JCA 1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := NewDefinition("org.example.acme", "Acme")
			tt.mutate(def)

			err := def.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, jcagen.ErrInvalidDefinition))
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, jcagen.ExitDefinitionError, jcagen.ExitCodeForError(err))
		})
	}
}

func TestDefinition_ValidateReportsEveryProblem(t *testing.T) {
	def := NewDefinition("org.example.acme", "Acme")
	def.Package = ""
	def.Build = "make"

	err := def.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package")
	assert.Contains(t, err.Error(), "build type")
}

func TestIsJavaIdentifier(t *testing.T) {
	for _, ok := range []string{"a", "_x", "$y", "Foo9", "ümlaut"} {
		assert.True(t, IsJavaIdentifier(ok), ok)
	}
	for _, bad := range []string{"", "9a", "a-b", "a.b", "int", "null"} {
		assert.False(t, IsJavaIdentifier(bad), bad)
	}
	assert.True(t, IsJavaPackage("org.example"))
	assert.False(t, IsJavaPackage("org..example"))
}

func TestDefinition_Paths(t *testing.T) {
	def := NewDefinition("org.example.acme", "Acme")
	assert.Equal(t, "src/main/java/org/example/acme", def.PackageDir())
	assert.Equal(t, "src/main/java/org/example/acme/Foo.java", def.JavaPath("Foo"))
	assert.Equal(t, "acme", def.ArtifactName())
	assert.True(t, def.AtLeast(Version15))
	assert.False(t, def.UseAnnotations())
}
