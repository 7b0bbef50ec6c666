// Package server exposes the board schema over HTTP.
//
// A single POST /graphql endpoint accepts the standard request envelope
// {"query": ..., "variables": ...}, validates the operation against the
// published schema and dispatches the root fields to the store. Requests
// that fail validation or execution answer with a GraphQL error list, not
// a transport error.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/GauBen/typed-board/graph"
	"github.com/GauBen/typed-board/publish"
	"github.com/GauBen/typed-board/store"
)

// Server executes board operations against a store.
type Server struct {
	store  *store.Store
	schema *ast.Schema
	logger *log.Logger
}

// New builds a server for the given graph. The executable schema is loaded
// from the same SDL the publisher writes, so server and artifact cannot
// drift apart.
func New(st *store.Store, g *graph.Graph, logger *log.Logger) (*Server, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{
		Name:  publish.DefaultPath,
		Input: string(publish.Format(g)),
	})
	if err != nil {
		return nil, fmt.Errorf("server: load schema: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, schema: schema, logger: logger}, nil
}

// Handler returns the HTTP handler with request-id, logging and panic
// recovery middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(logRequests(s.logger))
	r.Use(recoverer(s.logger))
	r.Post("/graphql", s.serveGraphQL)
	return r
}

// request is the standard GraphQL HTTP envelope.
type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// response is the standard GraphQL HTTP envelope. Data is kept even when
// errors are present so partial results survive.
type response struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors gqlerror.List  `json:"errors,omitempty"`
}

func (s *Server) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Errors: gqlerror.List{gqlerror.Errorf("invalid request body: %s", err)},
		})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, response{
			Errors: gqlerror.List{gqlerror.Errorf("no query provided")},
		})
		return
	}

	doc, errs := gqlparser.LoadQuery(s.schema, req.Query)
	if len(errs) > 0 {
		writeJSON(w, http.StatusOK, response{Errors: errs})
		return
	}

	op := pickOperation(doc, req.OperationName)
	if op == nil {
		writeJSON(w, http.StatusOK, response{
			Errors: gqlerror.List{gqlerror.Errorf("operation %q not found", req.OperationName)},
		})
		return
	}

	data, execErrs := s.exec(r.Context(), op, req.Variables)
	writeJSON(w, http.StatusOK, response{Data: data, Errors: execErrs})
}

func pickOperation(doc *ast.QueryDocument, name string) *ast.OperationDefinition {
	if name == "" {
		if len(doc.Operations) == 1 {
			return doc.Operations[0]
		}
		return nil
	}
	return doc.Operations.ForName(name)
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
