// Package publish serializes the schema graph into its SDL interchange
// artifact.
//
// The artifact is the sole coupling point between the schema-owning process
// and the client generation step: it is produced at server build time,
// consumed at client build time, and never mutated at runtime. Publishing
// is idempotent; the same graph always produces byte-identical output so
// diffs and build caches stay stable.
package publish

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/vektah/gqlparser/v2/formatter"

	typedboard "github.com/GauBen/typed-board"
	"github.com/GauBen/typed-board/graph"
)

// DefaultPath is the well-known artifact location.
const DefaultPath = "schema.graphql"

// Format renders the graph as UTF-8 SDL text.
func Format(g *graph.Graph) []byte {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(g.SDL())
	return buf.Bytes()
}

// Write formats the graph and writes it atomically to path, creating
// intermediate directories as needed. Failures surface as a PublishError
// to the invoking build step; they are never swallowed.
func Write(g *graph.Graph, path string) error {
	sdl := Format(g)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return typedboard.NewPublishError(path, err)
	}

	// Write-then-rename keeps concurrent readers from ever observing a
	// partial artifact.
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return typedboard.NewPublishError(path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(sdl); err != nil {
		tmp.Close()
		return typedboard.NewPublishError(path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return typedboard.NewPublishError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return typedboard.NewPublishError(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return typedboard.NewPublishError(path, err)
	}
	return nil
}
