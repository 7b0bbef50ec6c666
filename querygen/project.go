package querygen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	typedboard "github.com/GauBen/typed-board"
)

// opSpec is the generation plan for one operation: the canonical operation
// text plus the variable and result type shapes derived from it.
type opSpec struct {
	Name    string        // operation name, e.g. GetPosts
	Kind    ast.Operation // query or mutation
	Text    string        // canonical operation text sent over the wire
	Vars    []varSpec
	Structs []structSpec // result types, root response first
}

// varSpec is one variable of the operation.
type varSpec struct {
	GoName   string
	GQLName  string
	GoType   string // base Go type
	Optional bool   // nullable variable, emitted as a pointer
}

// structSpec is one generated result struct.
type structSpec struct {
	Name    string
	Comment string
	Fields  []fieldSpec
}

// fieldSpec is one field of a generated result struct.
type fieldSpec struct {
	GoName   string
	JSONName string
	// Exactly one of GoType and StructName is set: a scalar maps to a Go
	// base type, a composite selection maps to a generated struct.
	GoType     string
	StructName string
	List       bool
	Optional   bool // nullable in the schema, emitted as a pointer
}

// project derives the generation plan for one validated operation. The
// result shape is a pure function of the schema's root field signatures and
// the operation's selection shape.
func project(schema *ast.Schema, op *ast.OperationDefinition) (*opSpec, error) {
	spec := &opSpec{
		Name: op.Name,
		Kind: op.Operation,
		Text: operationText(op),
	}

	for _, v := range op.VariableDefinitions {
		goType, ok := scalarGoType(schema, v.Type.Name())
		if !ok {
			return nil, typedboard.NewGenerateError(op.Name,
				fmt.Sprintf("variable $%s has unsupported type %s", v.Variable, v.Type.String()), nil)
		}
		spec.Vars = append(spec.Vars, varSpec{
			GoName:   goName(v.Variable),
			GQLName:  v.Variable,
			GoType:   goType,
			Optional: !v.Type.NonNull,
		})
	}

	root := schema.Query
	if op.Operation == ast.Mutation {
		root = schema.Mutation
	}
	if root == nil {
		return nil, typedboard.NewGenerateError(op.Name, "schema has no matching root type", nil)
	}

	p := &projector{schema: schema, op: op.Name}
	if err := p.walk(op.Name+"Response", op.Name+" result, narrowed to the selected fields.", op.SelectionSet, root); err != nil {
		return nil, err
	}
	spec.Structs = p.structs
	return spec, nil
}

// projector accumulates the result structs while walking a selection set.
type projector struct {
	schema  *ast.Schema
	op      string
	structs []structSpec
}

// walk projects one selection set over def into a named struct, recursing
// into composite sub-selections. Selected fields appear in selection order;
// nothing else is added.
func (p *projector) walk(name, comment string, sel ast.SelectionSet, def *ast.Definition) error {
	if len(sel) == 0 {
		return typedboard.NewGenerateError(p.op,
			fmt.Sprintf("empty selection on %s", def.Name), nil)
	}

	s := structSpec{Name: name, Comment: comment}
	// Reserve the slot so parent structs precede their children.
	idx := len(p.structs)
	p.structs = append(p.structs, s)

	for _, selection := range sel {
		f, ok := selection.(*ast.Field)
		if !ok {
			return typedboard.NewGenerateError(p.op, "fragments are not supported", nil)
		}

		alias := f.Alias
		if alias == "" {
			alias = f.Name
		}

		if f.Name == "__typename" {
			s.Fields = append(s.Fields, fieldSpec{
				GoName:   goName(alias),
				JSONName: alias,
				GoType:   "string",
			})
			continue
		}

		fieldDef := def.Fields.ForName(f.Name)
		if fieldDef == nil {
			return typedboard.NewGenerateError(p.op,
				fmt.Sprintf("field %s not found on %s", f.Name, def.Name), nil)
		}

		typ := fieldDef.Type
		elem := typ
		list := typ.Elem != nil
		if list {
			elem = typ.Elem
		}

		fs := fieldSpec{
			GoName:   goName(alias),
			JSONName: alias,
			List:     list,
			Optional: !typ.NonNull,
		}

		target := p.schema.Types[elem.Name()]
		if target != nil && target.IsCompositeType() {
			childName := p.op + goName(childTypeName(alias, list))
			fs.StructName = childName
			if list {
				// Element nullability applies inside the list.
				fs.Optional = !elem.NonNull
			}
			if err := p.walk(childName,
				fmt.Sprintf("%s is the %s selection of %s.", childName, alias, p.op),
				f.SelectionSet, target); err != nil {
				return err
			}
		} else {
			goType, ok := scalarGoType(p.schema, elem.Name())
			if !ok {
				return typedboard.NewGenerateError(p.op,
					fmt.Sprintf("field %s has unsupported type %s", f.Name, typ.String()), nil)
			}
			fs.GoType = goType
			if list {
				// Element nullability applies inside the list.
				fs.Optional = !elem.NonNull
			}
		}
		s.Fields = append(s.Fields, fs)
	}

	p.structs[idx] = s
	return nil
}

// childTypeName names the struct generated for a composite selection:
// list selections use the singular of the alias ("posts" -> "post").
func childTypeName(alias string, list bool) string {
	if list {
		return inflect.Singularize(alias)
	}
	return alias
}

// scalarGoType maps a GraphQL scalar or enum to its Go type.
func scalarGoType(schema *ast.Schema, name string) (string, bool) {
	switch name {
	case "ID", "String":
		return "string", true
	case "Int":
		return "int", true
	case "Float":
		return "float64", true
	case "Boolean":
		return "bool", true
	}
	if def, ok := schema.Types[name]; ok && def.Kind == ast.Enum {
		return "string", true
	}
	return "", false
}

// operationText prints the canonical form of one operation, so semantically
// identical documents always produce the same wire text.
func operationText(op *ast.OperationDefinition) string {
	doc := &ast.QueryDocument{Operations: ast.OperationList{op}}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)
	return strings.TrimSpace(buf.String())
}

// initialisms kept uppercase in generated identifiers.
var initialisms = []struct{ from, to string }{
	{"Id", "ID"},
	{"Url", "URL"},
	{"Uri", "URI"},
	{"Json", "JSON"},
	{"Html", "HTML"},
}

// goName converts a GraphQL name to an exported Go identifier,
// e.g. "createdAt" becomes "CreatedAt" and "id" becomes "ID".
func goName(name string) string {
	pascal := inflect.Camelize(inflect.Underscore(name))
	for _, in := range initialisms {
		if strings.HasSuffix(pascal, in.from) {
			return strings.TrimSuffix(pascal, in.from) + in.to
		}
	}
	return pascal
}
