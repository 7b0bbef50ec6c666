// Package store implements the board's persistence layer on database/sql.
//
// The store exposes the create/list data-access contract consumed by the
// schema layer: posts are created with a title and optional body and listed
// with an explicit order and limit. Supported drivers are sqlite (default),
// postgres and mysql; migrations are embedded and run on Open.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	typedboard "github.com/GauBen/typed-board"
)

// A Post is one stored board entry. CreatedAt is internal to the store and
// never exposed through the schema.
type Post struct {
	ID        int64
	Title     string
	Body      *string
	CreatedAt time.Time
}

// Direction is a list ordering direction.
type Direction string

// Ordering directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is the explicit ordering of a list operation. The zero value
// orders by identifier, descending (newest first).
type Order struct {
	Direction Direction
}

// Store provides access to the board's backing database.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database, verifies the connection and runs all
// pending migrations. driver is one of "sqlite", "postgres" or "mysql".
// mysql DSNs must include parseTime=true so created_at scans into time.Time.
func Open(driver, dsn string) (*Store, error) {
	if !supportedDriver(driver) {
		return nil, fmt.Errorf("store: unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driver, err)
	}
	s := New(db, driver)
	if err := s.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection without running migrations. Useful for
// tests that manage their own schema or use a mock connection.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreatePost inserts a post and returns it in full, so one round trip
// yields both confirmation and fresh state.
func (s *Store) CreatePost(ctx context.Context, title string, body *string) (*Post, error) {
	now := time.Now().UTC().Truncate(time.Second)
	const insert = "INSERT INTO posts (title, body, created_at) VALUES (?, ?, ?)"

	var id int64
	if s.driver == "postgres" {
		// lib/pq has no LastInsertId; the id comes back through RETURNING.
		err := s.db.QueryRowContext(ctx, s.rebind(insert+" RETURNING id"),
			title, body, now).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("store: create post: %w", err)
		}
	} else {
		res, err := s.db.ExecContext(ctx, insert, title, body, now)
		if err != nil {
			return nil, fmt.Errorf("store: create post: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("store: create post: %w", err)
		}
	}
	return &Post{ID: id, Title: title, Body: body, CreatedAt: now}, nil
}

// ListPosts returns posts in the requested order. A limit <= 0 means no
// limit.
func (s *Store) ListPosts(ctx context.Context, order Order, limit int) ([]*Post, error) {
	dir := order.Direction
	if dir == "" {
		dir = Desc
	}
	if dir != Asc && dir != Desc {
		return nil, fmt.Errorf("store: invalid order direction %q", dir)
	}

	var q strings.Builder
	q.WriteString("SELECT id, title, body, created_at FROM posts ORDER BY id ")
	q.WriteString(string(dir))
	if limit > 0 {
		q.WriteString(" LIMIT ")
		q.WriteString(strconv.Itoa(limit))
	}

	rows, err := s.db.QueryContext(ctx, q.String())
	if err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: list posts: %w", err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list posts: %w", err)
	}
	return posts, nil
}

// GetPost returns one post by identifier.
func (s *Store) GetPost(ctx context.Context, id int64) (*Post, error) {
	var p Post
	err := s.db.QueryRowContext(ctx,
		s.rebind("SELECT id, title, body, created_at FROM posts WHERE id = ?"), id,
	).Scan(&p.ID, &p.Title, &p.Body, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, typedboard.NewNotFoundErrorWithID("Post", id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get post: %w", err)
	}
	return &p, nil
}

// rebind rewrites ? placeholders into the driver's native form.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func supportedDriver(driver string) bool {
	switch driver {
	case "sqlite", "postgres", "mysql":
		return true
	}
	return false
}
