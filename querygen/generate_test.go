package querygen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	typedboard "github.com/GauBen/typed-board"
	"github.com/GauBen/typed-board/graph"
	"github.com/GauBen/typed-board/publish"
	"github.com/GauBen/typed-board/querygen"
	"github.com/GauBen/typed-board/schema"
)

// writeInputs publishes the board schema and writes the given operation
// document into a fresh directory, returning a ready-to-run config.
func writeInputs(t *testing.T, operations string) querygen.Config {
	t.Helper()
	dir := t.TempDir()

	g, err := graph.Build(schema.Post{})
	require.NoError(t, err)

	artifact := filepath.Join(dir, "schema.graphql")
	require.NoError(t, publish.Write(g, artifact))

	queries := filepath.Join(dir, "queries.graphql")
	require.NoError(t, os.WriteFile(queries, []byte(operations), 0o644))

	return querygen.Config{
		Artifact: artifact,
		Queries:  []string{queries},
		Target:   filepath.Join(dir, "board"),
		Package:  "board",
	}
}

const boardOperations = `
query GetPosts($limit: Int) {
	posts(orderBy: { field: ID, direction: DESC }, limit: $limit) {
		id
		title
		body
	}
}

mutation CreatePost($title: String!, $body: String) {
	createPost(title: $title, body: $body) {
		id
	}
}
`

func TestGenerate(t *testing.T) {
	t.Parallel()

	cfg := writeInputs(t, boardOperations)
	res, err := querygen.Generate(cfg)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, []string{"create_post_gen.go", "get_posts_gen.go"}, res.Files)

	posts, err := os.ReadFile(filepath.Join(cfg.Target, "get_posts_gen.go"))
	require.NoError(t, err)
	src := string(posts)

	assert.Contains(t, src, "Code generated by typedboard. DO NOT EDIT.")
	assert.Contains(t, src, "package board")
	assert.Contains(t, src, "GetPostsOperation")
	assert.Contains(t, src, "type GetPostsResponse struct")
	assert.Contains(t, src, "type GetPostsPost struct")
	// Exactly the selected fields with nullability preserved.
	assert.Contains(t, src, "ID string `json:\"id\"`")
	assert.Contains(t, src, "Title string `json:\"title\"`")
	assert.Contains(t, src, "Body *string `json:\"body\"`")

	create, err := os.ReadFile(filepath.Join(cfg.Target, "create_post_gen.go"))
	require.NoError(t, err)
	src = string(create)

	assert.Contains(t, src, "type CreatePostVariables struct")
	assert.Contains(t, src, "Body *string")
	assert.Contains(t, src, "type CreatePostCreatePost struct")
	assert.Contains(t, src, "func CreatePost(ctx context.Context")
	// The create selection was {id} only: title must not leak in.
	assert.NotContains(t, src, "Title string `json:\"title\"`")
}

func TestGenerateCache(t *testing.T) {
	t.Parallel()

	cfg := writeInputs(t, boardOperations)

	first, err := querygen.Generate(cfg)
	require.NoError(t, err)
	assert.False(t, first.Skipped)

	// Unchanged inputs skip regeneration.
	second, err := querygen.Generate(cfg)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Files, second.Files)

	// Changing a document invalidates the cache.
	require.NoError(t, os.WriteFile(cfg.Queries[0], []byte(`
query GetPosts { posts { id } }
`), 0o644))
	third, err := querygen.Generate(cfg)
	require.NoError(t, err)
	assert.False(t, third.Skipped)
	assert.Equal(t, []string{"get_posts_gen.go"}, third.Files)
}

func TestGenerateByteStable(t *testing.T) {
	t.Parallel()

	cfg := writeInputs(t, boardOperations)
	_, err := querygen.Generate(cfg)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(cfg.Target, "get_posts_gen.go"))
	require.NoError(t, err)

	// Force a fresh run by dropping the manifest.
	require.NoError(t, os.Remove(filepath.Join(cfg.Target, ".typedboard.cache")))
	_, err = querygen.Generate(cfg)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(cfg.Target, "get_posts_gen.go"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateRejectsInvalidSelections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		operations string
	}{
		{
			// Zero fields selected from a non-scalar type must fail at
			// generation time, not produce an empty type.
			name:       "empty selection",
			operations: `query GetPosts { posts }`,
		},
		{
			name:       "unknown field",
			operations: `query GetPosts { posts { id secret } }`,
		},
		{
			name:       "anonymous operation",
			operations: `{ posts { id } }`,
		},
		{
			name: "duplicate operation names",
			operations: `
query GetPosts { posts { id } }
query GetPosts { posts { title } }
`,
		},
		{
			name:       "unknown root field",
			operations: `query GetUsers { users { id } }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := writeInputs(t, tt.operations)
			_, err := querygen.Generate(cfg)
			require.Error(t, err)
			assert.True(t, typedboard.IsGenerateError(err))
		})
	}
}

func TestGenerateConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := querygen.Generate(querygen.Config{})
	assert.True(t, typedboard.IsGenerateError(err))

	_, err = querygen.Generate(querygen.Config{Artifact: "schema.graphql"})
	assert.True(t, typedboard.IsGenerateError(err))

	_, err = querygen.Generate(querygen.Config{
		Artifact: "does-not-exist.graphql",
		Queries:  []string{"also-missing.graphql"},
		Target:   t.TempDir(),
	})
	assert.True(t, typedboard.IsGenerateError(err))
}
