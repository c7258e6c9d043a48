package codegen

import (
	"fmt"
	"path"

	"github.com/vvka-141/jcagen/internal/metadata"
)

const metaInf = "src/main/resources/META-INF"

// descriptorData is the input of the build and deployment descriptor
// templates.
type descriptorData struct {
	*Definition
	Namespace   string
	Schema      string
	APIGroup    string
	APIArtifact string
	APIVersion  string
}

type connectorSchema struct {
	namespace, schema           string
	apiGroup, apiArtifact, apiV string
}

var connectorSchemas = map[string]connectorSchema{
	Version10: {"", "", "javax.resource", "connector", "1.0"},
	Version15: {
		"http://java.sun.com/xml/ns/j2ee", "http://java.sun.com/xml/ns/j2ee/connector_1_5.xsd",
		"javax.resource", "connector-api", "1.5",
	},
	Version16: {
		"http://java.sun.com/xml/ns/javaee", "http://java.sun.com/xml/ns/javaee/connector_1_6.xsd",
		"org.jboss.spec.javax.resource", "jboss-connector-api_1.6_spec", "1.0.1.Final",
	},
	Version17: {
		"http://xmlns.jcp.org/xml/ns/javaee", "http://xmlns.jcp.org/xml/ns/javaee/connector_1_7.xsd",
		"javax.resource", "javax.resource-api", "1.7.1",
	},
}

func newDescriptorData(def *Definition) descriptorData {
	s := connectorSchemas[def.Version]
	return descriptorData{
		Definition:  def,
		Namespace:   s.namespace,
		Schema:      s.schema,
		APIGroup:    s.apiGroup,
		APIArtifact: s.apiArtifact,
		APIVersion:  s.apiV,
	}
}

// descriptorJenny renders a single non-Java file when applies returns true.
type descriptorJenny struct {
	role    Role
	path    string
	tmpl    string
	applies func(def *Definition) bool
}

func (j descriptorJenny) JennyName() string { return j.role.String() }

func (j descriptorJenny) Generate(def *Definition) (*File, error) {
	if !j.applies(def) {
		return nil, nil
	}
	b, err := render(j.tmpl, newDescriptorData(def))
	if err != nil {
		return nil, err
	}
	return &File{RelativePath: j.path, Data: b}, nil
}

func buildsWithAnt(def *Definition) bool   { return def.Build == BuildAnt }
func buildsWithMaven(def *Definition) bool { return def.Build == BuildMaven }
func wantsRaXML(def *Definition) bool      { return def.RaXML }

// ironJacamarJenny writes ironjacamar.xml through the metadata writer.
type ironJacamarJenny struct{}

func (ironJacamarJenny) JennyName() string { return RoleIronJacamarXml.String() }

func (ironJacamarJenny) Generate(def *Definition) (*File, error) {
	if !def.IronJacamarXML {
		return nil, nil
	}
	a, err := IronJacamarActivation(def)
	if err != nil {
		return nil, err
	}
	b, err := metadata.MarshalIronJacamar(a)
	if err != nil {
		return nil, err
	}
	return &File{RelativePath: path.Join(metaInf, "ironjacamar.xml"), Data: b}, nil
}

// IronJacamarActivation builds the deployment metadata matching def: one
// connection definition per connection factory and one admin object per
// administered object, all with their default property values.
func IronJacamarActivation(def *Definition) (*metadata.Activation, error) {
	tx, err := metadata.ParseTransactionSupport(def.Transaction)
	if err != nil {
		return nil, err
	}

	var raProps map[string]string
	if def.ResourceAdapter != nil {
		raProps = propertyValues(def.ResourceAdapter.ConfigProperties)
	}

	var cds []*metadata.ConnectionDefinition
	if def.Outbound {
		for i := range def.ConnectionFactories {
			cf := &def.ConnectionFactories[i]
			params := metadata.ConnectionDefinitionParams{
				ClassName:        def.Package + "." + cf.MCFClass,
				JndiName:         cf.JndiName,
				ID:               cf.MCFClass,
				ConfigProperties: propertyValues(cf.ConfigProperties),
			}
			base := metadata.PoolParams{FlushStrategy: metadata.DefaultFlushStrategy}
			if def.Transaction == XATransaction {
				params.XaPool, err = metadata.NewXaPool(metadata.XaPoolParams{PoolParams: base})
			} else {
				params.Pool, err = metadata.NewPool(base)
			}
			if err != nil {
				return nil, err
			}
			cd, err := metadata.NewConnectionDefinition(params)
			if err != nil {
				return nil, fmt.Errorf("connection definition %s: %w", cf.MCFClass, err)
			}
			cds = append(cds, cd)
		}
	}

	aos := make([]*metadata.AdminObject, 0, len(def.AdminObjects))
	for i := range def.AdminObjects {
		ao := &def.AdminObjects[i]
		obj, err := metadata.NewAdminObject(metadata.AdminObjectParams{
			ClassName:        def.Package + "." + ao.Class,
			JndiName:         ao.JndiName,
			ID:               ao.Class,
			ConfigProperties: propertyValues(ao.ConfigProperties),
		})
		if err != nil {
			return nil, fmt.Errorf("admin object %s: %w", ao.Class, err)
		}
		aos = append(aos, obj)
	}

	return metadata.NewActivation(metadata.ActivationParams{
		ConfigProperties:      raProps,
		TransactionSupport:    tx,
		ConnectionDefinitions: cds,
		AdminObjects:          aos,
	})
}

// propertyValues keeps the properties that carry a default value.
func propertyValues(props []ConfigProperty) map[string]string {
	values := map[string]string{}
	for _, p := range props {
		if p.Value != "" {
			values[p.Name] = p.Value
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
