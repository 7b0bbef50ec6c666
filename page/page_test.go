package page_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GauBen/typed-board/graph"
	"github.com/GauBen/typed-board/page"
	"github.com/GauBen/typed-board/schema"
	"github.com/GauBen/typed-board/server"
	"github.com/GauBen/typed-board/store"
)

func newTestEndpoint(t *testing.T) string {
	t.Helper()

	st, err := store.Open("sqlite", filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv, err := server.New(st, graph.MustBuild(schema.Entities()...), log.New(io.Discard))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL + "/graphql"
}

// countingDoer proves the request-scoped transport is the one actually used.
type countingDoer struct {
	calls int
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.calls++
	return http.DefaultClient.Do(req)
}

func TestLoadEmptyBoard(t *testing.T) {
	t.Parallel()

	endpoint := newTestEndpoint(t)
	data, err := page.Load(context.Background(), nil, endpoint)
	require.NoError(t, err)
	assert.Empty(t, data.Posts)
}

func TestSubmitThenLoad(t *testing.T) {
	t.Parallel()

	endpoint := newTestEndpoint(t)
	ctx := context.Background()
	doer := &countingDoer{}

	body := "First post"
	created, err := page.Submit(ctx, doer, endpoint, "Hello", &body)
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)

	_, err = page.Submit(ctx, doer, endpoint, "Second", nil)
	require.NoError(t, err)

	data, err := page.Load(ctx, doer, endpoint)
	require.NoError(t, err)
	require.Len(t, data.Posts, 2)
	assert.Equal(t, "Second", data.Posts[0].Title)
	assert.Equal(t, "Hello", data.Posts[1].Title)

	assert.Equal(t, 3, doer.calls)
}

func TestLoadTransportFailure(t *testing.T) {
	t.Parallel()

	_, err := page.Load(context.Background(), nil, "http://127.0.0.1:1/graphql")
	require.Error(t, err)
}
