package schema

import "github.com/GauBen/typed-board/schema/field"

// Post holds the declaration for the Post entity: a board message with a
// title and an optional body.
type Post struct{}

// Name of the public type.
func (Post) Name() string { return "Post" }

// Fields of the Post. created_at stays in the store only.
func (Post) Fields() []*field.Builder {
	return []*field.Builder{
		field.ID("id"),
		field.String("title"),
		field.Text("body").Optional(),
		field.Time("created_at").Internal(),
	}
}
