// Package control exposes the compositor's parameters and effect selection as a GraphQL
// API.
package control

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/graphql-go/graphql"

	"github.com/peragwin/camfx/compositor"
	"github.com/peragwin/camfx/effects"
)

// Target is what the API controls. *compositor.Compositor implements it.
type Target interface {
	Params() compositor.Parameters
	SetParams(compositor.Parameters) error
	State() *compositor.FilterState
}

// Server answers GraphQL queries against a Target.
type Server struct {
	target Target
	schema graphql.Schema
}

// New builds the schema for target.
func New(target Target) (*Server, error) {
	s := &Server{target: target}
	if err := s.initGraphql(); err != nil {
		return nil, fmt.Errorf("control: %w", err)
	}
	return s, nil
}

// Query runs a query or mutation.
func (s *Server) Query(query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		VariableValues: vars,
	})
}

var effectType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Effect",
	Fields: graphql.Fields{
		"key":    &graphql.Field{Type: graphql.String},
		"id":     &graphql.Field{Type: graphql.Int},
		"masked": &graphql.Field{Type: graphql.Boolean},
	},
})

var stateType = graphql.NewObject(graphql.ObjectConfig{
	Name: "State",
	Fields: graphql.Fields{
		"effect":  &graphql.Field{Type: graphql.String},
		"masked":  &graphql.Field{Type: graphql.Boolean},
		"palette": &graphql.Field{Type: graphql.Int},
		"elapsed": &graphql.Field{Type: graphql.Float},
	},
})

func effectValue(e effects.Entry) map[string]interface{} {
	return map[string]interface{}{"key": e.Key, "id": int(e.ID), "masked": e.Masked}
}

func (s *Server) stateValue() map[string]interface{} {
	st := s.target.State()
	key := st.Effect()
	return map[string]interface{}{
		"effect":  key,
		"masked":  effects.IsMasked(key),
		"palette": st.Palette(),
		"elapsed": st.Elapsed(),
	}
}

func (s *Server) initGraphql() error {
	paramType, paramMut := NewGraphqlType("Params", compositor.Parameters{},
		func() interface{} { return s.target.Params() },
		func(v interface{}) error { return s.target.SetParams(v.(compositor.Parameters)) },
	)

	step := func(next func() string) *graphql.Field {
		return &graphql.Field{
			Type: graphql.String,
			Resolve: func(graphql.ResolveParams) (interface{}, error) {
				return next(), nil
			},
		}
	}

	rootQuery := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootQuery",
			Fields: graphql.Fields{
				"params": &graphql.Field{
					Type: paramType,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return s.target.Params(), nil
					},
				},
				"effects": &graphql.Field{
					Type: graphql.NewList(effectType),
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						var out []map[string]interface{}
						for _, e := range effects.Catalog() {
							out = append(out, effectValue(e))
						}
						return out, nil
					},
				},
				"state": &graphql.Field{
					Type: stateType,
					Resolve: func(graphql.ResolveParams) (interface{}, error) {
						return s.stateValue(), nil
					},
				},
			},
		},
	)
	rootMut := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootMut",
			Fields: graphql.Fields{
				"params": paramMut,
				"selectEffect": &graphql.Field{
					Type: graphql.String,
					Args: graphql.FieldConfigArgument{
						"key": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					},
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						key, ok := p.Args["key"].(string)
						if !ok {
							return nil, errors.New("missing arg: key")
						}
						if err := s.target.State().Select(key); err != nil {
							return nil, err
						}
						return key, nil
					},
				},
				"nextEffect": step(func() string { return s.target.State().Next() }),
				"prevEffect": step(func() string { return s.target.State().Prev() }),
			},
		},
	)
	schema, err := graphql.NewSchema(
		graphql.SchemaConfig{
			Query:    rootQuery,
			Mutation: rootMut,
		},
	)
	if err != nil {
		return err
	}
	s.schema = schema
	return nil
}

// NewGraphqlType builds an object type and an update mutation for the struct type of
// proto from its json tags. get returns the current struct value; set stores an updated
// copy. Only bool, int, float and string fields are supported.
func NewGraphqlType(name string, proto interface{},
	get func() interface{}, set func(interface{}) error) (*graphql.Object, *graphql.Field) {

	fields := graphql.Fields{}
	inputFields := graphql.InputObjectConfigFieldMap{}

	ref := reflect.TypeOf(proto)
	tagMap := newJSONTagFieldMap(ref)

	resolver := func(field int) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			v := reflect.ValueOf(p.Source)
			if v.Kind() == reflect.Ptr {
				v = v.Elem()
			}
			if v.Type() != ref {
				return nil, fmt.Errorf("unexpected source %#v", p.Source)
			}
			return v.Field(field).Interface(), nil
		}
	}

	for tag, i := range tagMap {
		typ := graphqlType(ref.Field(i).Type)
		fields[tag] = &graphql.Field{Type: typ, Resolve: resolver(i)}
		inputFields[tag] = &graphql.InputObjectFieldConfig{Type: typ}
	}

	objType := graphql.NewObject(
		graphql.ObjectConfig{
			Name:   name,
			Fields: fields,
		})
	inputType := graphql.NewInputObject(
		graphql.InputObjectConfig{
			Name:   "input" + name,
			Fields: inputFields,
		})
	mut := &graphql.Field{
		Type: objType,
		Args: graphql.FieldConfigArgument{
			"params": &graphql.ArgumentConfig{Type: inputType},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			args, _ := p.Args["params"].(map[string]interface{})
			cur := reflect.New(ref).Elem()
			cur.Set(reflect.ValueOf(get()))
			for arg, val := range args {
				i, ok := tagMap[arg]
				if !ok || val == nil {
					continue
				}
				f := cur.Field(i)
				v := reflect.ValueOf(val)
				if !v.Type().ConvertibleTo(f.Type()) {
					return nil, fmt.Errorf("%s: cannot use %T", arg, val)
				}
				f.Set(v.Convert(f.Type()))
			}
			if err := set(cur.Interface()); err != nil {
				return nil, err
			}
			return get(), nil
		},
	}
	return objType, mut
}

func graphqlType(t reflect.Type) *graphql.Scalar {
	switch t.Kind() {
	case reflect.Bool:
		return graphql.Boolean
	case reflect.Float32, reflect.Float64:
		return graphql.Float
	case reflect.String:
		return graphql.String
	case reflect.Int, reflect.Int8, reflect.Int32, reflect.Int64:
		return graphql.Int
	}
	panic(fmt.Sprint("unsupported type ", t))
}

func jsonTag(f *reflect.StructField) string {
	t := f.Tag.Get("json")
	return strings.Split(t, ",")[0]
}

func newJSONTagFieldMap(t reflect.Type) map[string]int {
	m := make(map[string]int)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if tag := jsonTag(&f); tag != "" && tag != "-" {
			m[tag] = i
		}
	}
	return m
}
