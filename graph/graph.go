// Package graph derives an immutable schema graph from the code-first
// entity declarations in the schema package.
//
// The graph is built once at process start via Build and is read-only
// afterwards: object types expose only the whitelisted (non-internal)
// fields, and the two root types carry one list query and one create
// mutation per entity. The publish package serializes the graph into the
// SDL interchange artifact consumed by the request generator.
package graph

// A Field is a single exposed field of an object type.
type Field struct {
	Name        string // GraphQL field name (camelCase)
	Column      string // backing store column (snake_case)
	Scalar      string // GraphQL scalar: ID, String, Int, Boolean
	NonNull     bool
	Description string
}

// An Object is an exposed object type.
type Object struct {
	Name        string
	Fields      []Field
	Description string
}

// Field returns the field with the given GraphQL name.
func (o *Object) Field(name string) (Field, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// An Enum is an exposed enum type.
type Enum struct {
	Name   string
	Values []string
}

// An InputField is a single field of an input type.
type InputField struct {
	Name    string
	Type    string // scalar or named type reference
	NonNull bool
}

// An Input is an exposed input object type.
type Input struct {
	Name   string
	Fields []InputField
}

// An Argument is a single argument of a root field.
type Argument struct {
	Name    string
	Type    string // scalar or named type reference
	NonNull bool
}

// OpKind distinguishes the generated root field shapes.
type OpKind int

const (
	// OpList is a Query field returning an ordered, limitable list of
	// entities.
	OpList OpKind = iota
	// OpCreate is a Mutation field creating one entity and returning it
	// in full.
	OpCreate
	// OpGet is a Query field returning one entity by identifier, null
	// when absent.
	OpGet
)

// An Operation is one root field of Query or Mutation.
type Operation struct {
	Name        string // root field name, e.g. "posts", "createPost"
	Kind        OpKind
	Entity      string // name of the result object type
	Args        []Argument
	Description string
}

// List reports whether the operation returns a list of the entity type.
func (op *Operation) List() bool { return op.Kind == OpList }

// Graph is the complete, read-only typed map of exposed types and
// operations.
type Graph struct {
	objects   []*Object
	enums     []*Enum
	inputs    []*Input
	queries   []*Operation
	mutations []*Operation

	index map[string]*Object
}

// Objects returns the exposed object types in declaration order.
func (g *Graph) Objects() []*Object { return g.objects }

// Enums returns the exposed enum types.
func (g *Graph) Enums() []*Enum { return g.enums }

// Inputs returns the exposed input types.
func (g *Graph) Inputs() []*Input { return g.inputs }

// Queries returns the Query root fields.
func (g *Graph) Queries() []*Operation { return g.queries }

// Mutations returns the Mutation root fields.
func (g *Graph) Mutations() []*Operation { return g.mutations }

// Object returns the object type with the given name.
func (g *Graph) Object(name string) (*Object, bool) {
	o, ok := g.index[name]
	return o, ok
}

// Query returns the Query root field with the given name.
func (g *Graph) Query(name string) (*Operation, bool) {
	return findOp(g.queries, name)
}

// Mutation returns the Mutation root field with the given name.
func (g *Graph) Mutation(name string) (*Operation, bool) {
	return findOp(g.mutations, name)
}

func findOp(ops []*Operation, name string) (*Operation, bool) {
	for _, op := range ops {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}
