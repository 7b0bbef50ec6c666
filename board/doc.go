// Package board contains the typed request builders generated from
// queries.graphql against the published schema. Regenerate after changing
// either input.
//
//go:generate go run github.com/GauBen/typed-board/cmd/typedboard generate
package board
