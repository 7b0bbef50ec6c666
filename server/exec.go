package server

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	typedboard "github.com/GauBen/typed-board"
	"github.com/GauBen/typed-board/graph"
	"github.com/GauBen/typed-board/store"
)

// exec runs a validated operation. Execution errors are collected into a
// GraphQL error list; data already produced is returned alongside them.
func (s *Server) exec(ctx context.Context, op *ast.OperationDefinition, vars map[string]any) (map[string]any, gqlerror.List) {
	if vars == nil {
		vars = map[string]any{}
	}

	data := map[string]any{}
	var errs gqlerror.List
	for _, sel := range op.SelectionSet {
		field, ok := sel.(*ast.Field)
		if !ok {
			errs = append(errs, gqlerror.Errorf("unsupported selection"))
			continue
		}
		key := field.Alias
		if key == "" {
			key = field.Name
		}

		var (
			value any
			err   error
		)
		switch field.Name {
		case "__typename":
			value = rootTypename(op.Operation)
		case "post":
			value, err = s.execPost(ctx, field, vars)
		case "posts":
			value, err = s.execPosts(ctx, field, vars)
		case "createPost":
			value, err = s.execCreatePost(ctx, field, vars)
		default:
			err = fmt.Errorf("unknown root field %q", field.Name)
		}
		if err != nil {
			errs = append(errs, gqlerror.Wrap(err))
			data[key] = nil
			continue
		}
		data[key] = value
	}
	return data, errs
}

func rootTypename(op ast.Operation) string {
	if op == ast.Mutation {
		return "Mutation"
	}
	return "Query"
}

func (s *Server) execPost(ctx context.Context, field *ast.Field, vars map[string]any) (any, error) {
	arg := field.Arguments.ForName("id")
	if arg == nil {
		return nil, fmt.Errorf("post: id is required")
	}
	raw, err := arg.Value.Value(vars)
	if err != nil {
		return nil, err
	}
	id, err := toID(raw)
	if err != nil {
		return nil, fmt.Errorf("post: %w", err)
	}

	post, err := s.store.GetPost(ctx, id)
	if typedboard.IsNotFound(err) {
		// The lookup field is nullable: absence is null, not an error.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return projectPost(post, field.SelectionSet), nil
}

func (s *Server) execPosts(ctx context.Context, field *ast.Field, vars map[string]any) (any, error) {
	order := store.Order{}
	limit := 0

	if arg := field.Arguments.ForName("orderBy"); arg != nil {
		raw, err := arg.Value.Value(vars)
		if err != nil {
			return nil, err
		}
		if raw != nil {
			obj, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("orderBy must be a PostOrder input")
			}
			dir, _ := obj["direction"].(string)
			switch dir {
			case graph.OrderAsc:
				order.Direction = store.Asc
			case graph.OrderDesc:
				order.Direction = store.Desc
			default:
				return nil, fmt.Errorf("invalid order direction %q", dir)
			}
		}
	}
	if arg := field.Arguments.ForName("limit"); arg != nil {
		raw, err := arg.Value.Value(vars)
		if err != nil {
			return nil, err
		}
		if raw != nil {
			n, err := toInt(raw)
			if err != nil {
				return nil, fmt.Errorf("limit: %w", err)
			}
			limit = n
		}
	}

	posts, err := s.store.ListPosts(ctx, order, limit)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(posts))
	for i, p := range posts {
		out[i] = projectPost(p, field.SelectionSet)
	}
	return out, nil
}

func (s *Server) execCreatePost(ctx context.Context, field *ast.Field, vars map[string]any) (any, error) {
	arg := field.Arguments.ForName("title")
	if arg == nil {
		return nil, fmt.Errorf("createPost: title is required")
	}
	raw, err := arg.Value.Value(vars)
	if err != nil {
		return nil, err
	}
	title, ok := raw.(string)
	if !ok || title == "" {
		return nil, fmt.Errorf("createPost: title must be a non-empty string")
	}

	var body *string
	if arg := field.Arguments.ForName("body"); arg != nil {
		raw, err := arg.Value.Value(vars)
		if err != nil {
			return nil, err
		}
		if text, ok := raw.(string); ok {
			body = &text
		}
	}

	post, err := s.store.CreatePost(ctx, title, body)
	if err != nil {
		return nil, err
	}
	return projectPost(post, field.SelectionSet), nil
}

// projectPost renders a post through the validated selection set, so the
// response carries exactly the fields the client asked for.
func projectPost(p *store.Post, selections ast.SelectionSet) map[string]any {
	out := map[string]any{}
	for _, sel := range selections {
		field, ok := sel.(*ast.Field)
		if !ok {
			continue
		}
		key := field.Alias
		if key == "" {
			key = field.Name
		}
		switch field.Name {
		case "__typename":
			out[key] = "Post"
		case "id":
			out[key] = strconv.FormatInt(p.ID, 10)
		case "title":
			out[key] = p.Title
		case "body":
			if p.Body == nil {
				out[key] = nil
			} else {
				out[key] = *p.Body
			}
		}
	}
	return out
}

// toID accepts the shapes an ID argument arrives in: strings from variables
// and string literals, int64 from bare integer literals.
func toID(v any) (int64, error) {
	switch id := v.(type) {
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid identifier %q", id)
		}
		return n, nil
	case int64:
		return id, nil
	case float64:
		return int64(id), nil
	}
	return 0, fmt.Errorf("invalid identifier %v", v)
}

// toInt accepts the numeric shapes produced by literals (int64) and by
// JSON-decoded variables (float64).
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("expected an integer, got %v", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}
