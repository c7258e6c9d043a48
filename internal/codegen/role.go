package codegen

import (
	"fmt"
	"strings"
)

// Role identifies one generated artifact kind.
type Role int

const (
	RoleResourceAdapter Role = iota + 1
	RoleManagedConnectionFactory
	RoleManagedConnection
	RoleManagedConnectionMetaData
	RoleConnectionFactoryInterface
	RoleConnectionFactoryImpl
	RoleConnectionInterface
	RoleConnectionImpl
	RoleCciConnectionFactory
	RoleCciConnection
	RoleConnectionMetaData
	RoleConnectionSpec
	RoleMessageListener
	RoleActivationSpec
	RoleActivation
	RoleAdminObjectInterface
	RoleAdminObjectImpl
	RoleBuildXml
	RolePomXml
	RoleRaXml
	RoleIronJacamarXml
)

var roleNames = map[Role]string{
	RoleResourceAdapter:            "ResourceAdapter",
	RoleManagedConnectionFactory:   "ManagedConnectionFactory",
	RoleManagedConnection:          "ManagedConnection",
	RoleManagedConnectionMetaData:  "ManagedConnectionMetaData",
	RoleConnectionFactoryInterface: "ConnectionFactoryInterface",
	RoleConnectionFactoryImpl:      "ConnectionFactoryImpl",
	RoleConnectionInterface:        "ConnectionInterface",
	RoleConnectionImpl:             "ConnectionImpl",
	RoleCciConnectionFactory:       "CciConnectionFactory",
	RoleCciConnection:              "CciConnection",
	RoleConnectionMetaData:         "ConnectionMetaData",
	RoleConnectionSpec:             "ConnectionSpec",
	RoleMessageListener:            "MessageListener",
	RoleActivationSpec:             "ActivationSpec",
	RoleActivation:                 "Activation",
	RoleAdminObjectInterface:       "AdminObjectInterface",
	RoleAdminObjectImpl:            "AdminObjectImpl",
	RoleBuildXml:                   "BuildXml",
	RolePomXml:                     "PomXml",
	RoleRaXml:                      "RaXml",
	RoleIronJacamarXml:             "IronJacamarXml",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole maps a role name, case-insensitively, to its Role.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown generator role %q", s)
}

// registry maps every role to the constructor of its jenny.
var registry = map[Role]func() Jenny{
	RoleResourceAdapter:            func() Jenny { return javaJenny{RoleResourceAdapter, resourceAdapterClasses} },
	RoleManagedConnectionFactory:   func() Jenny { return javaJenny{RoleManagedConnectionFactory, mcfClasses} },
	RoleManagedConnection:          func() Jenny { return javaJenny{RoleManagedConnection, mcClasses} },
	RoleManagedConnectionMetaData:  func() Jenny { return javaJenny{RoleManagedConnectionMetaData, mcMetaDataClasses} },
	RoleConnectionFactoryInterface: func() Jenny { return javaJenny{RoleConnectionFactoryInterface, cfInterfaceClasses} },
	RoleConnectionFactoryImpl:      func() Jenny { return javaJenny{RoleConnectionFactoryImpl, cfImplClasses} },
	RoleConnectionInterface:        func() Jenny { return javaJenny{RoleConnectionInterface, connInterfaceClasses} },
	RoleConnectionImpl:             func() Jenny { return javaJenny{RoleConnectionImpl, connImplClasses} },
	RoleCciConnectionFactory:       func() Jenny { return javaJenny{RoleCciConnectionFactory, cciCFClasses} },
	RoleCciConnection:              func() Jenny { return javaJenny{RoleCciConnection, cciConnClasses} },
	RoleConnectionMetaData:         func() Jenny { return javaJenny{RoleConnectionMetaData, connMetaDataClasses} },
	RoleConnectionSpec:             func() Jenny { return javaJenny{RoleConnectionSpec, connSpecClasses} },
	RoleMessageListener:            func() Jenny { return javaJenny{RoleMessageListener, listenerClasses} },
	RoleActivationSpec:             func() Jenny { return javaJenny{RoleActivationSpec, activationSpecClasses} },
	RoleActivation:                 func() Jenny { return javaJenny{RoleActivation, activationClasses} },
	RoleAdminObjectInterface:       func() Jenny { return javaJenny{RoleAdminObjectInterface, aoInterfaceClasses} },
	RoleAdminObjectImpl:            func() Jenny { return javaJenny{RoleAdminObjectImpl, aoImplClasses} },
	RoleBuildXml:                   func() Jenny { return descriptorJenny{RoleBuildXml, "build.xml", "build.xml.tmpl", buildsWithAnt} },
	RolePomXml:                     func() Jenny { return descriptorJenny{RolePomXml, "pom.xml", "pom.xml.tmpl", buildsWithMaven} },
	RoleRaXml:                      func() Jenny { return descriptorJenny{RoleRaXml, metaInf + "/ra.xml", "ra.xml.tmpl", wantsRaXML} },
	RoleIronJacamarXml:             func() Jenny { return ironJacamarJenny{} },
}

// Roles returns every registered role in generation order.
func Roles() []Role {
	roles := make([]Role, 0, len(registry))
	for r := RoleResourceAdapter; r <= RoleIronJacamarXml; r++ {
		if _, ok := registry[r]; ok {
			roles = append(roles, r)
		}
	}
	return roles
}

// NewJenny returns the jenny registered for role.
func NewJenny(role Role) (Jenny, error) {
	ctor, ok := registry[role]
	if !ok {
		return nil, fmt.Errorf("no generator registered for %s", role)
	}
	return ctor(), nil
}

// NewJennyListFor returns a JennyList with the jennies for roles, in order,
// and whitespace tidying applied to every file. With no roles, every
// registered role is included.
func NewJennyListFor(roles ...Role) (*JennyList, error) {
	if len(roles) == 0 {
		roles = Roles()
	}
	jl := NewJennyList()
	for _, r := range roles {
		j, err := NewJenny(r)
		if err != nil {
			return nil, err
		}
		jl.Append(j)
	}
	jl.AddPostprocessors(TidyWhitespace)
	return jl, nil
}
