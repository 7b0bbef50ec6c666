package graph

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"

	typedboard "github.com/GauBen/typed-board"
	"github.com/GauBen/typed-board/schema"
	"github.com/GauBen/typed-board/schema/field"
)

// Names of the shared types generated once per graph.
const (
	// OrderDirectionEnum is the shared ordering direction enum.
	OrderDirectionEnum = "OrderDirection"
)

// Shared ordering direction values.
const (
	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// Build derives the schema graph from the given entity declarations.
//
// Building happens once, synchronously, at process start. Declaring the
// same public type name twice is tolerated only when the exposed field
// sets are identical; a conflicting redeclaration fails with a SchemaError
// so misconfiguration surfaces at startup, never at request time.
func Build(entities ...schema.Entity) (*Graph, error) {
	if len(entities) == 0 {
		return nil, typedboard.NewSchemaError("", "", "no entities declared", nil)
	}

	g := &Graph{index: make(map[string]*Object)}
	g.enums = append(g.enums, &Enum{
		Name:   OrderDirectionEnum,
		Values: []string{OrderAsc, OrderDesc},
	})

	for _, ent := range entities {
		obj, err := buildObject(ent)
		if err != nil {
			return nil, err
		}
		if prev, ok := g.index[obj.Name]; ok {
			if !sameFields(prev, obj) {
				return nil, typedboard.NewSchemaError(obj.Name, "",
					"redeclared with a conflicting field set", nil)
			}
			continue
		}
		g.index[obj.Name] = obj
		g.objects = append(g.objects, obj)

		orderInput, orderField := buildOrdering(obj)
		g.enums = append(g.enums, orderField)
		g.inputs = append(g.inputs, orderInput)

		g.queries = append(g.queries, buildGetOp(obj), buildListOp(obj, orderInput))
		g.mutations = append(g.mutations, buildCreateOp(obj))
	}

	return g, nil
}

// MustBuild is like Build but panics on error. Schema construction errors
// are configuration errors that must block startup entirely.
func MustBuild(entities ...schema.Entity) *Graph {
	g, err := Build(entities...)
	if err != nil {
		panic(err)
	}
	return g
}

// buildObject derives the exposed object type for one entity, keeping only
// the whitelisted fields.
func buildObject(ent schema.Entity) (*Object, error) {
	name := ent.Name()
	if name == "" {
		return nil, typedboard.NewSchemaError("", "", "entity with empty name", nil)
	}

	obj := &Object{Name: name}
	seen := make(map[string]bool)
	var ids int

	for _, b := range ent.Fields() {
		d := b.Descriptor()
		if !d.Kind.Valid() {
			return nil, typedboard.NewSchemaError(name, d.Name, "invalid field kind", nil)
		}
		if d.Kind == field.KindID {
			ids++
			if d.Internal {
				return nil, typedboard.NewSchemaError(name, d.Name, "identifier cannot be internal", nil)
			}
		}
		if d.Internal {
			continue
		}
		gqlName := fieldName(d.Name)
		if seen[gqlName] {
			return nil, typedboard.NewSchemaError(name, gqlName, "duplicate field", nil)
		}
		seen[gqlName] = true
		obj.Fields = append(obj.Fields, Field{
			Name:        gqlName,
			Column:      d.Name,
			Scalar:      d.Kind.GraphQL(),
			NonNull:     !d.Optional,
			Description: d.Comment,
		})
	}

	if ids != 1 {
		return nil, typedboard.NewSchemaError(name, "",
			fmt.Sprintf("expected exactly one identifier field, got %d", ids), nil)
	}
	return obj, nil
}

// buildOrdering derives the per-entity order input and order field enum.
// Only the identifier is orderable; the input makes ordering an explicit
// part of the public list contract.
func buildOrdering(obj *Object) (*Input, *Enum) {
	orderField := &Enum{
		Name:   obj.Name + "OrderField",
		Values: []string{"ID"},
	}
	orderInput := &Input{
		Name: obj.Name + "Order",
		Fields: []InputField{
			{Name: "field", Type: orderField.Name, NonNull: true},
			{Name: "direction", Type: OrderDirectionEnum, NonNull: true},
		},
	}
	return orderInput, orderField
}

func buildGetOp(obj *Object) *Operation {
	return &Operation{
		Name:   fieldName(obj.Name),
		Kind:   OpGet,
		Entity: obj.Name,
		Args: []Argument{
			{Name: "id", Type: "ID", NonNull: true},
		},
		Description: fmt.Sprintf("One %s by identifier, null when absent.",
			strings.ToLower(obj.Name)),
	}
}

func buildListOp(obj *Object, order *Input) *Operation {
	return &Operation{
		Name:   listFieldName(obj.Name),
		Kind:   OpList,
		Entity: obj.Name,
		Args: []Argument{
			{Name: "orderBy", Type: order.Name},
			{Name: "limit", Type: "Int"},
		},
		Description: fmt.Sprintf("All %s entities, newest first unless ordered explicitly.",
			strings.ToLower(obj.Name)),
	}
}

func buildCreateOp(obj *Object) *Operation {
	op := &Operation{
		Name:        "create" + obj.Name,
		Kind:        OpCreate,
		Entity:      obj.Name,
		Description: fmt.Sprintf("Create a %s and return it in full.", strings.ToLower(obj.Name)),
	}
	for _, f := range obj.Fields {
		if f.Scalar == "ID" {
			continue // assigned by the store
		}
		op.Args = append(op.Args, Argument{
			Name:    f.Name,
			Type:    f.Scalar,
			NonNull: f.NonNull,
		})
	}
	return op
}

// sameFields reports whether two objects expose the same ordered field set.
func sameFields(a, b *Object) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if a.Fields[i] != b.Fields[i] {
			return false
		}
	}
	return true
}

// fieldName converts a column name to its GraphQL field name,
// e.g. "created_at" becomes "createdAt".
func fieldName(column string) string {
	return inflect.CamelizeDownFirst(column)
}

// listFieldName derives the Query list field name for a type,
// e.g. "Post" becomes "posts".
func listFieldName(typeName string) string {
	return inflect.CamelizeDownFirst(inflect.Pluralize(typeName))
}
