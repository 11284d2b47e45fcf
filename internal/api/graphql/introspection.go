package graphql

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
)

const defaultDeprecationReason = "No longer supported"

// schemaObject answers __schema from the loaded schema definition
type schemaObject struct {
	schema *ast.Schema
}

func (o *schemaObject) typeName() string { return "__Schema" }

func (o *schemaObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	switch field {
	case "description":
		return optionalString(o.schema.Description), nil
	case "types":
		names := make([]string, 0, len(o.schema.Types))
		for name := range o.schema.Types {
			names = append(names, name)
		}
		sort.Strings(names)

		types := make([]object, len(names))
		for i, name := range names {
			types[i] = &typeObject{schema: o.schema, def: o.schema.Types[name]}
		}
		return types, nil
	case "queryType":
		return &typeObject{schema: o.schema, def: o.schema.Query}, nil
	case "mutationType":
		return namedTypeObject(o.schema, o.schema.Mutation), nil
	case "subscriptionType":
		return namedTypeObject(o.schema, o.schema.Subscription), nil
	case "directives":
		names := make([]string, 0, len(o.schema.Directives))
		for name := range o.schema.Directives {
			names = append(names, name)
		}
		sort.Strings(names)

		directives := make([]object, len(names))
		for i, name := range names {
			directives[i] = &directiveObject{schema: o.schema, def: o.schema.Directives[name]}
		}
		return directives, nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

// typeObject is a named type, or a LIST / NON_NULL wrapper around ofType
type typeObject struct {
	schema *ast.Schema
	def    *ast.Definition
	kind   string
	ofType *ast.Type
}

func newTypeObject(schema *ast.Schema, t *ast.Type) *typeObject {
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		return &typeObject{schema: schema, kind: "NON_NULL", ofType: &inner}
	}
	if t.Elem != nil {
		return &typeObject{schema: schema, kind: "LIST", ofType: t.Elem}
	}
	return &typeObject{schema: schema, def: schema.Types[t.NamedType]}
}

// namedTypeObject keeps a missing root type as a true nil
func namedTypeObject(schema *ast.Schema, def *ast.Definition) interface{} {
	if def == nil {
		return nil
	}
	return &typeObject{schema: schema, def: def}
}

func (o *typeObject) typeName() string { return "__Type" }

func (o *typeObject) resolve(_ context.Context, field string, args map[string]interface{}) (interface{}, error) {
	includeDeprecated, _ := args["includeDeprecated"].(bool)

	if o.def == nil {
		switch field {
		case "kind":
			return graphql.MarshalString(o.kind), nil
		case "ofType":
			return newTypeObject(o.schema, o.ofType), nil
		case "name", "description", "specifiedByURL", "fields", "interfaces",
			"possibleTypes", "enumValues", "inputFields", "isOneOf":
			return nil, nil
		}
		return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
	}

	def := o.def
	switch field {
	case "kind":
		return graphql.MarshalString(string(def.Kind)), nil
	case "name":
		return graphql.MarshalString(def.Name), nil
	case "description":
		return optionalString(def.Description), nil
	case "specifiedByURL":
		if d := def.Directives.ForName("specifiedBy"); d != nil {
			if arg := d.Arguments.ForName("url"); arg != nil {
				return graphql.MarshalString(arg.Value.Raw), nil
			}
		}
		return nil, nil
	case "fields":
		if def.Kind != ast.Object && def.Kind != ast.Interface {
			return nil, nil
		}
		fields := []object{}
		for _, f := range def.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue
			}
			if !includeDeprecated && f.Directives.ForName("deprecated") != nil {
				continue
			}
			fields = append(fields, &fieldObject{schema: o.schema, def: f})
		}
		return fields, nil
	case "interfaces":
		if def.Kind != ast.Object && def.Kind != ast.Interface {
			return nil, nil
		}
		interfaces := make([]object, len(def.Interfaces))
		for i, name := range def.Interfaces {
			interfaces[i] = &typeObject{schema: o.schema, def: o.schema.Types[name]}
		}
		return interfaces, nil
	case "possibleTypes":
		if !def.IsAbstractType() {
			return nil, nil
		}
		possible := o.schema.PossibleTypes[def.Name]
		types := make([]object, len(possible))
		for i, p := range possible {
			types[i] = &typeObject{schema: o.schema, def: p}
		}
		return types, nil
	case "enumValues":
		if def.Kind != ast.Enum {
			return nil, nil
		}
		values := []object{}
		for _, v := range def.EnumValues {
			if !includeDeprecated && v.Directives.ForName("deprecated") != nil {
				continue
			}
			values = append(values, &enumValueObject{def: v})
		}
		return values, nil
	case "inputFields":
		if def.Kind != ast.InputObject {
			return nil, nil
		}
		inputs := []object{}
		for _, f := range def.Fields {
			if !includeDeprecated && f.Directives.ForName("deprecated") != nil {
				continue
			}
			inputs = append(inputs, &inputValueObject{
				schema:       o.schema,
				name:         f.Name,
				description:  f.Description,
				typ:          f.Type,
				defaultValue: f.DefaultValue,
				directives:   f.Directives,
			})
		}
		return inputs, nil
	case "ofType":
		return nil, nil
	case "isOneOf":
		if def.Kind != ast.InputObject {
			return nil, nil
		}
		return graphql.MarshalBoolean(def.Directives.ForName("oneOf") != nil), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type fieldObject struct {
	schema *ast.Schema
	def    *ast.FieldDefinition
}

func (o *fieldObject) typeName() string { return "__Field" }

func (o *fieldObject) resolve(_ context.Context, field string, args map[string]interface{}) (interface{}, error) {
	switch field {
	case "name":
		return graphql.MarshalString(o.def.Name), nil
	case "description":
		return optionalString(o.def.Description), nil
	case "args":
		includeDeprecated, _ := args["includeDeprecated"].(bool)
		return argumentObjects(o.schema, o.def.Arguments, includeDeprecated), nil
	case "type":
		return newTypeObject(o.schema, o.def.Type), nil
	case "isDeprecated":
		return graphql.MarshalBoolean(o.def.Directives.ForName("deprecated") != nil), nil
	case "deprecationReason":
		return deprecationReason(o.def.Directives), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type inputValueObject struct {
	schema       *ast.Schema
	name         string
	description  string
	typ          *ast.Type
	defaultValue *ast.Value
	directives   ast.DirectiveList
}

func argumentObjects(schema *ast.Schema, defs ast.ArgumentDefinitionList, includeDeprecated bool) []object {
	args := []object{}
	for _, a := range defs {
		if !includeDeprecated && a.Directives.ForName("deprecated") != nil {
			continue
		}
		args = append(args, &inputValueObject{
			schema:       schema,
			name:         a.Name,
			description:  a.Description,
			typ:          a.Type,
			defaultValue: a.DefaultValue,
			directives:   a.Directives,
		})
	}
	return args
}

func (o *inputValueObject) typeName() string { return "__InputValue" }

func (o *inputValueObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	switch field {
	case "name":
		return graphql.MarshalString(o.name), nil
	case "description":
		return optionalString(o.description), nil
	case "type":
		return newTypeObject(o.schema, o.typ), nil
	case "defaultValue":
		if o.defaultValue == nil {
			return nil, nil
		}
		return graphql.MarshalString(o.defaultValue.String()), nil
	case "isDeprecated":
		return graphql.MarshalBoolean(o.directives.ForName("deprecated") != nil), nil
	case "deprecationReason":
		return deprecationReason(o.directives), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type enumValueObject struct {
	def *ast.EnumValueDefinition
}

func (o *enumValueObject) typeName() string { return "__EnumValue" }

func (o *enumValueObject) resolve(_ context.Context, field string, _ map[string]interface{}) (interface{}, error) {
	switch field {
	case "name":
		return graphql.MarshalString(o.def.Name), nil
	case "description":
		return optionalString(o.def.Description), nil
	case "isDeprecated":
		return graphql.MarshalBoolean(o.def.Directives.ForName("deprecated") != nil), nil
	case "deprecationReason":
		return deprecationReason(o.def.Directives), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

type directiveObject struct {
	schema *ast.Schema
	def    *ast.DirectiveDefinition
}

func (o *directiveObject) typeName() string { return "__Directive" }

func (o *directiveObject) resolve(_ context.Context, field string, args map[string]interface{}) (interface{}, error) {
	switch field {
	case "name":
		return graphql.MarshalString(o.def.Name), nil
	case "description":
		return optionalString(o.def.Description), nil
	case "isRepeatable":
		return graphql.MarshalBoolean(o.def.IsRepeatable), nil
	case "locations":
		locations := make([]graphql.Marshaler, len(o.def.Locations))
		for i, l := range o.def.Locations {
			locations[i] = graphql.MarshalString(string(l))
		}
		return locations, nil
	case "args":
		includeDeprecated, _ := args["includeDeprecated"].(bool)
		return argumentObjects(o.schema, o.def.Arguments, includeDeprecated), nil
	}
	return nil, fmt.Errorf("unknown field %s.%s", o.typeName(), field)
}

func deprecationReason(directives ast.DirectiveList) interface{} {
	d := directives.ForName("deprecated")
	if d == nil {
		return nil
	}
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		return graphql.MarshalString(arg.Value.Raw)
	}
	return graphql.MarshalString(defaultDeprecationReason)
}
