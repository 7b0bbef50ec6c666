package publish_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	typedboard "github.com/GauBen/typed-board"
	"github.com/GauBen/typed-board/graph"
	"github.com/GauBen/typed-board/publish"
	"github.com/GauBen/typed-board/schema"
)

func TestFormatIdempotent(t *testing.T) {
	t.Parallel()

	g, err := graph.Build(schema.Post{})
	require.NoError(t, err)

	first := publish.Format(g)
	second := publish.Format(g)
	assert.Equal(t, first, second, "same graph must serialize to identical bytes")

	// Two independent builds of the same declarations also agree.
	other, err := graph.Build(schema.Post{})
	require.NoError(t, err)
	assert.Equal(t, first, publish.Format(other))
}

func TestFormatContent(t *testing.T) {
	t.Parallel()

	g, err := graph.Build(schema.Post{})
	require.NoError(t, err)

	sdl := string(publish.Format(g))
	assert.Contains(t, sdl, "type Post")
	assert.Contains(t, sdl, "type Query")
	assert.Contains(t, sdl, "type Mutation")
	assert.Contains(t, sdl, "createPost(title: String!, body: String): Post!")
	assert.Contains(t, sdl, "posts(orderBy: PostOrder, limit: Int): [Post!]!")
	assert.Contains(t, sdl, "post(id: ID!): Post")
	assert.NotContains(t, sdl, "createdAt", "internal columns never reach the artifact")
}

func TestWriteCreatesDirectories(t *testing.T) {
	t.Parallel()

	g, err := graph.Build(schema.Post{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "build", "graphql", "schema.graphql")
	require.NoError(t, publish.Write(g, path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, publish.Format(g), got)
}

func TestWriteIdempotent(t *testing.T) {
	t.Parallel()

	g, err := graph.Build(schema.Post{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schema.graphql")
	require.NoError(t, publish.Write(g, path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, publish.Write(g, path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "re-publishing an unchanged graph is byte-identical")
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	g, err := graph.Build(schema.Post{})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, publish.Write(g, filepath.Join(dir, "schema.graphql")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestWriteUnwritableTarget(t *testing.T) {
	t.Parallel()

	g, err := graph.Build(schema.Post{})
	require.NoError(t, err)

	// A regular file where a directory is needed makes MkdirAll fail.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "build")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))

	err = publish.Write(g, filepath.Join(blocker, "schema.graphql"))
	require.Error(t, err)
	assert.True(t, typedboard.IsPublishError(err))
}
