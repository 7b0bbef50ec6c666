// Package page implements the server-side load contract of the board page.
//
// Load is the explicit-fetch call pattern: the caller hands over the
// request-scoped HTTP client and the board endpoint, and receives the data
// the page needs in one call. The ambient-fetch pattern (a process-wide
// client) is covered by gqlclient.New with its default transport.
package page

import (
	"context"

	"github.com/GauBen/typed-board/board"
	"github.com/GauBen/typed-board/gqlclient"
)

// DefaultLimit bounds the number of posts fetched for the board page.
const DefaultLimit = 50

// Data is everything the board page renders.
type Data struct {
	Posts []board.GetPostsPost
}

// Load fetches the page data through the given transport. doer carries the
// request-scoped fetch (cookies, deadlines); pass nil to use the ambient
// default client.
func Load(ctx context.Context, doer gqlclient.Doer, endpoint string) (*Data, error) {
	opts := []gqlclient.Option{}
	if doer != nil {
		opts = append(opts, gqlclient.WithDoer(doer))
	}
	client := gqlclient.New(endpoint, opts...)

	limit := DefaultLimit
	resp, err := board.GetPosts(ctx, client, board.GetPostsVariables{Limit: &limit})
	if err != nil {
		return nil, err
	}
	return &Data{Posts: resp.Posts}, nil
}

// Submit creates a post through the given transport and returns the created
// entry as the page shows it.
func Submit(ctx context.Context, doer gqlclient.Doer, endpoint, title string, body *string) (*board.CreatePostCreatePost, error) {
	opts := []gqlclient.Option{}
	if doer != nil {
		opts = append(opts, gqlclient.WithDoer(doer))
	}
	client := gqlclient.New(endpoint, opts...)

	resp, err := board.CreatePost(ctx, client, board.CreatePostVariables{Title: title, Body: body})
	if err != nil {
		return nil, err
	}
	return &resp.CreatePost, nil
}
