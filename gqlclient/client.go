// Package gqlclient issues GraphQL operations over HTTP.
//
// Every operation is a single POST of {"query": ..., "variables": ...} to a
// fixed endpoint. The network capability is explicit: code that may run
// without an ambient HTTP client (server-side rendering) injects a Doer via
// WithDoer, while client-initiated calls rely on the ambient default. Each
// call constructs and sends its request independently; there is no shared
// in-flight state between concurrent requests.
package gqlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	typedboard "github.com/GauBen/typed-board"
)

// Doer is the explicit network-fetch capability. *http.Client implements it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client executes GraphQL operations against one endpoint.
type Client struct {
	endpoint string
	doer     Doer
}

// Option configures a Client.
type Option func(*Client)

// WithDoer injects the network capability. Use this on every call path that
// may run in a context lacking ambient network access.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// New returns a client for the given endpoint. Without options it uses the
// ambient http.DefaultClient, which is only appropriate at the outermost
// client-side call sites.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{endpoint: endpoint, doer: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Location is a position inside the operation text.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is a single GraphQL-level error returned by the server. Unlike a
// transport failure it is not retryable: the operation was received and
// rejected or partially executed.
type Error struct {
	Message   string     `json:"message"`
	Path      []any      `json:"path,omitempty"`
	Locations []Location `json:"locations,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Path) > 0 {
		parts := make([]string, len(e.Path))
		for i, p := range e.Path {
			parts[i] = fmt.Sprint(p)
		}
		return fmt.Sprintf("%s (path: %s)", e.Message, strings.Join(parts, "."))
	}
	return e.Message
}

// ErrorList is the errors array of a GraphQL response.
type ErrorList []*Error

// Error implements the error interface.
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "gqlclient: no errors"
	case 1:
		return "gqlclient: " + l[0].Error()
	default:
		var b strings.Builder
		b.WriteString("gqlclient: multiple errors:")
		for _, e := range l {
			b.WriteString("\n  ")
			b.WriteString(e.Error())
		}
		return b.String()
	}
}

// requestBody is the wire form of one operation.
type requestBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// responseBody is the wire form of a response envelope.
type responseBody struct {
	Data   json.RawMessage `json:"data"`
	Errors ErrorList       `json:"errors"`
}

// Exec sends one operation and decodes the data field of the response into
// into. Failures are distinguished:
//
//   - the request never yields a usable envelope: *typedboard.TransportError
//     (retryable by the caller);
//   - the envelope carries an errors array: ErrorList, not retryable. When
//     the response also carries partial data it is still decoded into into
//     before the ErrorList is returned.
func (c *Client) Exec(ctx context.Context, query string, vars map[string]any, into any) error {
	payload, err := json.Marshal(requestBody{Query: query, Variables: vars})
	if err != nil {
		return typedboard.NewTransportError(0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return typedboard.NewTransportError(0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.doer.Do(req)
	if err != nil {
		return typedboard.NewTransportError(0, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return typedboard.NewTransportError(res.StatusCode, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return typedboard.NewTransportError(res.StatusCode,
			fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}

	var envelope responseBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return typedboard.NewTransportError(res.StatusCode, err)
	}

	if len(envelope.Data) > 0 && string(envelope.Data) != "null" && into != nil {
		if err := json.Unmarshal(envelope.Data, into); err != nil {
			return typedboard.NewTransportError(res.StatusCode, err)
		}
	}
	if len(envelope.Errors) > 0 {
		return envelope.Errors
	}
	return nil
}
