// Package field provides fluent builders for declaring entity fields.
//
// Field names follow database conventions (snake_case); GraphQL and Go
// names are derived during schema construction:
//
//	field.ID("id")
//	field.String("title")
//	field.Text("body").Optional()
//	field.Time("created_at").Internal()
//
// A field is part of the public API surface unless marked Internal. Internal
// fields stay in the backing store but never appear in the derived schema;
// this is the narrowing point where storage shape and API shape diverge.
package field

// A Kind classifies the scalar stored in a field.
type Kind int

const (
	// KindInvalid is the zero Kind.
	KindInvalid Kind = iota
	// KindID is the entity identifier.
	KindID
	// KindString is short text.
	KindString
	// KindText is long-form text.
	KindText
	// KindInt is a 64-bit integer.
	KindInt
	// KindBool is a boolean.
	KindBool
	// KindTime is a timestamp.
	KindTime
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// GraphQL returns the GraphQL scalar this kind maps to.
func (k Kind) GraphQL() string {
	switch k {
	case KindID:
		return "ID"
	case KindString, KindText, KindTime:
		return "String"
	case KindInt:
		return "Int"
	case KindBool:
		return "Boolean"
	default:
		return ""
	}
}

// Valid reports whether the kind is one of the declared kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k <= KindTime
}

// Descriptor is the immutable description of a single declared field.
// It is produced once by a Builder and never modified afterwards.
type Descriptor struct {
	Name      string // column name (snake_case)
	Kind      Kind
	Optional  bool   // nullable in the public API, may be omitted on create
	Internal  bool   // stored but never exposed through the schema
	Immutable bool   // cannot be changed after create
	Comment   string // optional documentation, carried into the schema
}

// A Builder constructs a field Descriptor. Builders are single-use: declare
// the field inline in an entity's Fields method and do not retain them.
type Builder struct {
	desc Descriptor
}

// ID declares the entity identifier field. ID fields are immutable and
// assigned by the store.
func ID(name string) *Builder {
	return &Builder{desc: Descriptor{Name: name, Kind: KindID, Immutable: true}}
}

// String declares a short text field.
func String(name string) *Builder {
	return &Builder{desc: Descriptor{Name: name, Kind: KindString}}
}

// Text declares a long-form text field.
func Text(name string) *Builder {
	return &Builder{desc: Descriptor{Name: name, Kind: KindText}}
}

// Int declares a 64-bit integer field.
func Int(name string) *Builder {
	return &Builder{desc: Descriptor{Name: name, Kind: KindInt}}
}

// Bool declares a boolean field.
func Bool(name string) *Builder {
	return &Builder{desc: Descriptor{Name: name, Kind: KindBool}}
}

// Time declares a timestamp field.
func Time(name string) *Builder {
	return &Builder{desc: Descriptor{Name: name, Kind: KindTime}}
}

// Optional marks the field nullable in the public API: it may be omitted on
// create and its GraphQL type is nullable.
func (b *Builder) Optional() *Builder {
	b.desc.Optional = true
	return b
}

// Internal keeps the field in the backing store but excludes it from the
// derived schema.
func (b *Builder) Internal() *Builder {
	b.desc.Internal = true
	return b
}

// Immutable marks the field as write-once: it is settable on create only.
func (b *Builder) Immutable() *Builder {
	b.desc.Immutable = true
	return b
}

// Comment attaches documentation to the field, carried into the schema
// artifact as a description.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the built descriptor.
func (b *Builder) Descriptor() Descriptor {
	return b.desc
}
