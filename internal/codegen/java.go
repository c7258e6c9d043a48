package codegen

import "fmt"

// javaJenny renders one Java source file per class its selector returns.
// The role name doubles as the template name.
type javaJenny struct {
	role    Role
	classes func(def *Definition) []classData
}

func (j javaJenny) JennyName() string { return j.role.String() }

func (j javaJenny) Generate(def *Definition) (Files, error) {
	var files Files
	for _, data := range j.classes(def) {
		data.Def = def
		data.Package = def.Package
		data.SerialVersionUID = serialVersionUID(def.Package + "." + data.Class)

		b, err := render(j.role.String()+".java.tmpl", data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", data.Class, err)
		}
		files = append(files, File{RelativePath: def.JavaPath(data.Class), Data: b})
	}
	return files, nil
}

func resourceAdapterClasses(def *Definition) []classData {
	if def.ResourceAdapter == nil {
		return nil
	}
	return []classData{{Class: def.ResourceAdapter.Class, Props: def.ResourceAdapter.ConfigProperties}}
}

// perFactory builds one classData per connection factory when the adapter
// is outbound and cci matches the definition's CCI flag.
func perFactory(def *Definition, cci bool, name func(*ConnectionFactoryDefinition) string, props bool) []classData {
	if !def.Outbound || def.CCI != cci {
		return nil
	}
	out := make([]classData, 0, len(def.ConnectionFactories))
	for i := range def.ConnectionFactories {
		cf := &def.ConnectionFactories[i]
		data := classData{Class: name(cf), CF: cf}
		if props {
			data.Props = cf.ConfigProperties
		}
		out = append(out, data)
	}
	return out
}

// anyFactory is perFactory for roles generated in both CCI and non-CCI mode.
func anyFactory(def *Definition, name func(*ConnectionFactoryDefinition) string, props bool) []classData {
	return perFactory(def, def.CCI, name, props)
}

func mcfClasses(def *Definition) []classData {
	return anyFactory(def, func(cf *ConnectionFactoryDefinition) string { return cf.MCFClass }, true)
}

func mcClasses(def *Definition) []classData {
	return anyFactory(def, func(cf *ConnectionFactoryDefinition) string { return cf.MCClass }, false)
}

func mcMetaDataClasses(def *Definition) []classData {
	return anyFactory(def, (*ConnectionFactoryDefinition).MCMetaDataClass, false)
}

func cfInterfaceClasses(def *Definition) []classData {
	return perFactory(def, false, func(cf *ConnectionFactoryDefinition) string { return cf.CFInterface }, false)
}

func cfImplClasses(def *Definition) []classData {
	return perFactory(def, false, func(cf *ConnectionFactoryDefinition) string { return cf.CFClass }, false)
}

func connInterfaceClasses(def *Definition) []classData {
	return perFactory(def, false, func(cf *ConnectionFactoryDefinition) string { return cf.ConnInterface }, false)
}

func connImplClasses(def *Definition) []classData {
	return perFactory(def, false, func(cf *ConnectionFactoryDefinition) string { return cf.ConnClass }, false)
}

func cciCFClasses(def *Definition) []classData {
	return perFactory(def, true, func(cf *ConnectionFactoryDefinition) string { return cf.CFClass }, false)
}

func cciConnClasses(def *Definition) []classData {
	return perFactory(def, true, func(cf *ConnectionFactoryDefinition) string { return cf.ConnClass }, false)
}

func connMetaDataClasses(def *Definition) []classData {
	return perFactory(def, true, (*ConnectionFactoryDefinition).ConnMetaDataClass, false)
}

func connSpecClasses(def *Definition) []classData {
	return perFactory(def, true, (*ConnectionFactoryDefinition).ConnSpecClass, false)
}

func inbound(def *Definition, name func(*InboundDefinition) string, props bool) []classData {
	if !def.Inbound || def.MessageListener == nil {
		return nil
	}
	data := classData{Class: name(def.MessageListener)}
	if props {
		data.Props = def.MessageListener.ConfigProperties
	}
	return []classData{data}
}

func listenerClasses(def *Definition) []classData {
	return inbound(def, func(ml *InboundDefinition) string { return ml.Listener }, false)
}

func activationSpecClasses(def *Definition) []classData {
	return inbound(def, func(ml *InboundDefinition) string { return ml.ActivationSpec }, true)
}

func activationClasses(def *Definition) []classData {
	return inbound(def, func(ml *InboundDefinition) string { return ml.Activation }, false)
}

func aoInterfaceClasses(def *Definition) []classData {
	out := make([]classData, 0, len(def.AdminObjects))
	for i := range def.AdminObjects {
		ao := &def.AdminObjects[i]
		out = append(out, classData{Class: ao.Interface, AO: ao, Props: ao.ConfigProperties})
	}
	return out
}

func aoImplClasses(def *Definition) []classData {
	out := make([]classData, 0, len(def.AdminObjects))
	for i := range def.AdminObjects {
		ao := &def.AdminObjects[i]
		out = append(out, classData{Class: ao.Class, AO: ao, Props: ao.ConfigProperties})
	}
	return out
}
