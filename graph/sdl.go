package graph

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// SDL converts the graph into a gqlparser schema document. The document is
// fully deterministic: definitions appear in declaration order with Query
// before Mutation, so formatting the same graph twice yields identical
// bytes.
func (g *Graph) SDL() *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}

	for _, o := range g.objects {
		doc.Definitions = append(doc.Definitions, objectDefinition(o))
	}
	for _, e := range g.enums {
		doc.Definitions = append(doc.Definitions, enumDefinition(e))
	}
	for _, in := range g.inputs {
		doc.Definitions = append(doc.Definitions, inputDefinition(in))
	}

	doc.Definitions = append(doc.Definitions,
		rootDefinition("Query", g.queries),
		rootDefinition("Mutation", g.mutations),
	)
	return doc
}

func objectDefinition(o *Object) *ast.Definition {
	def := &ast.Definition{
		Kind:        ast.Object,
		Name:        o.Name,
		Description: o.Description,
	}
	for _, f := range o.Fields {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name:        f.Name,
			Description: f.Description,
			Type:        scalarType(f.Scalar, f.NonNull),
		})
	}
	return def
}

func enumDefinition(e *Enum) *ast.Definition {
	def := &ast.Definition{
		Kind: ast.Enum,
		Name: e.Name,
	}
	for _, v := range e.Values {
		def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v})
	}
	return def
}

func inputDefinition(in *Input) *ast.Definition {
	def := &ast.Definition{
		Kind: ast.InputObject,
		Name: in.Name,
	}
	for _, f := range in.Fields {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: f.Name,
			Type: scalarType(f.Type, f.NonNull),
		})
	}
	return def
}

func rootDefinition(name string, ops []*Operation) *ast.Definition {
	def := &ast.Definition{
		Kind: ast.Object,
		Name: name,
	}
	for _, op := range ops {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name:        op.Name,
			Description: op.Description,
			Arguments:   argumentDefinitions(op.Args),
			Type:        resultType(op),
		})
	}
	return def
}

func argumentDefinitions(args []Argument) ast.ArgumentDefinitionList {
	var defs ast.ArgumentDefinitionList
	for _, a := range args {
		defs = append(defs, &ast.ArgumentDefinition{
			Name: a.Name,
			Type: scalarType(a.Type, a.NonNull),
		})
	}
	return defs
}

// resultType maps an operation to its result type reference: lists are
// [T!]!, lookups by identifier are nullable T, everything else T!.
func resultType(op *Operation) *ast.Type {
	switch {
	case op.List():
		return ast.NonNullListType(ast.NonNullNamedType(op.Entity, nil), nil)
	case op.Kind == OpGet:
		return ast.NamedType(op.Entity, nil)
	default:
		return ast.NonNullNamedType(op.Entity, nil)
	}
}

func scalarType(name string, nonNull bool) *ast.Type {
	if nonNull {
		return ast.NonNullNamedType(name, nil)
	}
	return ast.NamedType(name, nil)
}
