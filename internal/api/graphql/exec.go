package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
)

// object is a resolved GraphQL object value.
// resolve returns nil, a graphql.Marshaler leaf, an object or a list of either.
type object interface {
	typeName() string
	resolve(ctx context.Context, field string, args map[string]interface{}) (interface{}, error)
}

// collectedField groups the selections sharing one response key
type collectedField struct {
	alias  string
	fields []*ast.Field
}

// execution holds the state of a single operation
type execution struct {
	schema    *ast.Schema
	doc       *ast.QueryDocument
	vars      map[string]interface{}
	presenter func(ctx context.Context, err error) *gqlerror.Error
	errors    gqlerror.List
}

var errNonNull = errors.New("must not be null")

// execute parses, validates and runs params against root
func execute(ctx context.Context, schema *ast.Schema, root object, params *graphql.RawParams) *graphql.Response {
	doc, errs := gqlparser.LoadQueryWithRules(schema, params.Query, nil)
	if len(errs) > 0 {
		return &graphql.Response{Errors: errs}
	}

	op := doc.Operations.ForName(params.OperationName)
	if op == nil {
		if params.OperationName == "" {
			return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("operation name is required when the document holds several operations")}}
		}
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("operation %s not found", params.OperationName)}}
	}
	if op.Operation != ast.Query {
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("%s operations are not supported", op.Operation)}}
	}

	vars, err := validator.VariableValues(schema, op, params.Variables)
	if err != nil {
		var gqlErr *gqlerror.Error
		if errors.As(err, &gqlErr) {
			return &graphql.Response{Errors: gqlerror.List{gqlErr}}
		}
		return &graphql.Response{Errors: gqlerror.List{gqlerror.Wrap(err)}}
	}

	ex := &execution{
		schema:    schema,
		doc:       doc,
		vars:      vars,
		presenter: ErrorPresenter,
	}

	data, ok := ex.executeSelectionSet(ctx, root, op.SelectionSet, nil)
	if !ok {
		data = json.RawMessage("null")
	}

	return &graphql.Response{Data: data, Errors: ex.errors}
}

// executeSelectionSet resolves every collected field of obj in document order.
// It reports false when a non-null field resolved to null, which nulls the object itself.
func (ex *execution) executeSelectionSet(ctx context.Context, obj object, set ast.SelectionSet, path ast.Path) (json.RawMessage, bool) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cf := range ex.collectFields(set, obj.typeName()) {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(cf.alias)
		buf.Write(key)
		buf.WriteByte(':')

		value, ok := ex.executeField(ctx, obj, cf, appendPath(path, ast.PathName(cf.alias)))
		if !ok {
			return nil, false
		}
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), true
}

func (ex *execution) executeField(ctx context.Context, obj object, cf collectedField, path ast.Path) (json.RawMessage, bool) {
	field := cf.fields[0]
	if field.Name == "__typename" {
		return marshal(graphql.MarshalString(obj.typeName())), true
	}

	value, err := obj.resolve(ctx, field.Name, field.ArgumentMap(ex.vars))
	if err != nil {
		ex.addError(ctx, path, err)
		return json.RawMessage("null"), !field.Definition.Type.NonNull
	}

	var selections ast.SelectionSet
	for _, f := range cf.fields {
		selections = append(selections, f.SelectionSet...)
	}

	return ex.completeValue(ctx, field.Definition.Type, value, selections, path)
}

// completeValue serializes value as typ, applying null propagation for non-null types
func (ex *execution) completeValue(ctx context.Context, typ *ast.Type, value interface{}, selections ast.SelectionSet, path ast.Path) (json.RawMessage, bool) {
	if value == nil {
		if typ.NonNull {
			ex.addError(ctx, path, errNonNull)
			return nil, false
		}
		return json.RawMessage("null"), true
	}

	switch v := value.(type) {
	case graphql.Marshaler:
		return marshal(v), true

	case object:
		data, ok := ex.executeSelectionSet(ctx, v, selections, path)
		if !ok {
			if typ.NonNull {
				return nil, false
			}
			return json.RawMessage("null"), true
		}
		return data, true

	case []object:
		items := make([]interface{}, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return ex.completeList(ctx, typ, items, selections, path)

	case []graphql.Marshaler:
		items := make([]interface{}, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return ex.completeList(ctx, typ, items, selections, path)

	default:
		ex.addError(ctx, path, fmt.Errorf("unexpected value %T for %s", value, typ.String()))
		return nil, false
	}
}

func (ex *execution) completeList(ctx context.Context, typ *ast.Type, items []interface{}, selections ast.SelectionSet, path ast.Path) (json.RawMessage, bool) {
	if typ.Elem == nil {
		ex.addError(ctx, path, fmt.Errorf("list returned for %s", typ.String()))
		return nil, false
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, ok := ex.completeValue(ctx, typ.Elem, item, selections, appendPath(path, ast.PathIndex(i)))
		if !ok {
			if typ.NonNull {
				return nil, false
			}
			return json.RawMessage("null"), true
		}
		buf.Write(data)
	}
	buf.WriteByte(']')

	return buf.Bytes(), true
}

// collectFields flattens fragments and applies @skip and @include for an object of typeName
func (ex *execution) collectFields(set ast.SelectionSet, typeName string) []collectedField {
	var fields []collectedField
	index := map[string]int{}
	visited := map[string]bool{}

	var collect func(set ast.SelectionSet)
	collect = func(set ast.SelectionSet) {
		for _, sel := range set {
			switch sel := sel.(type) {
			case *ast.Field:
				if !ex.shouldInclude(sel.Directives) {
					continue
				}
				alias := sel.Alias
				if alias == "" {
					alias = sel.Name
				}
				if i, ok := index[alias]; ok {
					fields[i].fields = append(fields[i].fields, sel)
					continue
				}
				index[alias] = len(fields)
				fields = append(fields, collectedField{alias: alias, fields: []*ast.Field{sel}})

			case *ast.InlineFragment:
				if !ex.shouldInclude(sel.Directives) {
					continue
				}
				if sel.TypeCondition != "" && sel.TypeCondition != typeName {
					continue
				}
				collect(sel.SelectionSet)

			case *ast.FragmentSpread:
				if !ex.shouldInclude(sel.Directives) || visited[sel.Name] {
					continue
				}
				visited[sel.Name] = true
				fragment := sel.Definition
				if fragment == nil {
					fragment = ex.doc.Fragments.ForName(sel.Name)
				}
				if fragment == nil || fragment.TypeCondition != typeName {
					continue
				}
				collect(fragment.SelectionSet)
			}
		}
	}
	collect(set)

	return fields
}

func (ex *execution) shouldInclude(directives ast.DirectiveList) bool {
	if d := directives.ForName("skip"); d != nil {
		if skip, _ := d.ArgumentMap(ex.vars)["if"].(bool); skip {
			return false
		}
	}
	if d := directives.ForName("include"); d != nil {
		if include, _ := d.ArgumentMap(ex.vars)["if"].(bool); !include {
			return false
		}
	}
	return true
}

func (ex *execution) addError(ctx context.Context, path ast.Path, err error) {
	gqlErr := ex.presenter(ctx, err)
	gqlErr.Path = path
	ex.errors = append(ex.errors, gqlErr)
}

func marshal(m graphql.Marshaler) json.RawMessage {
	var buf bytes.Buffer
	m.MarshalGQL(&buf)
	return buf.Bytes()
}

func appendPath(path ast.Path, elem ast.PathElement) ast.Path {
	next := make(ast.Path, len(path), len(path)+1)
	copy(next, path)
	return append(next, elem)
}
