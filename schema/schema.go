// Package schema contains the code-first entity declarations backing the
// board. Each entity names its public type and declares its fields inline
// with the builders from schema/field; the graph package turns the
// declarations into an immutable schema graph at startup.
package schema

import "github.com/GauBen/typed-board/schema/field"

// Entity is implemented by every declared entity.
type Entity interface {
	// Name returns the public type name exposed through the schema.
	Name() string

	// Fields returns the field declarations, in order. The identifier
	// field must come first.
	Fields() []*field.Builder
}

// Entities returns all entity declarations of the board, in declaration
// order. The schema graph is built from this set once at process start.
func Entities() []Entity {
	return []Entity{
		Post{},
	}
}
