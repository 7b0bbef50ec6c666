package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	typedboard "github.com/GauBen/typed-board"
	"github.com/GauBen/typed-board/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("sqlite", filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strptr(s string) *string { return &s }

func TestOpenUnsupportedDriver(t *testing.T) {
	t.Parallel()

	_, err := store.Open("oracle", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestCreatePost(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.CreatePost(ctx, "Hello", strptr("First post"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Hello", created.Title)
	require.NotNil(t, created.Body)
	assert.Equal(t, "First post", *created.Body)
	assert.False(t, created.CreatedAt.IsZero())

	// A nil body stays nil all the way through.
	bare, err := s.CreatePost(ctx, "Second", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), bare.ID)
	assert.Nil(t, bare.Body)

	got, err := s.GetPost(ctx, bare.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Title)
	assert.Nil(t, got.Body)
}

func TestGetPostNotFound(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	_, err := s.GetPost(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, typedboard.IsNotFound(err))
}

func TestListPosts(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()
	for _, title := range []string{"P1", "P2", "P3"} {
		_, err := s.CreatePost(ctx, title, nil)
		require.NoError(t, err)
	}

	titles := func(posts []*store.Post) []string {
		out := make([]string, len(posts))
		for i, p := range posts {
			out[i] = p.Title
		}
		return out
	}

	tests := []struct {
		name  string
		order store.Order
		limit int
		want  []string
	}{
		{
			name:  "default order is newest first",
			limit: 10,
			want:  []string{"P3", "P2", "P1"},
		},
		{
			name:  "ascending",
			order: store.Order{Direction: store.Asc},
			limit: 10,
			want:  []string{"P1", "P2", "P3"},
		},
		{
			name:  "limit truncates",
			order: store.Order{Direction: store.Desc},
			limit: 2,
			want:  []string{"P3", "P2"},
		},
		{
			name:  "zero limit means no limit",
			order: store.Order{Direction: store.Asc},
			limit: 0,
			want:  []string{"P1", "P2", "P3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := s.ListPosts(ctx, tt.order, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(posts))
		})
	}
}

func TestListPostsInvalidDirection(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	_, err := s.ListPosts(context.Background(), store.Order{Direction: "SIDEWAYS"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order direction")
}

func TestCreatePostPostgresReturning(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Postgres inserts go through RETURNING with rebound placeholders,
	// never through LastInsertId.
	mock.ExpectQuery(`INSERT INTO posts \(title, body, created_at\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	s := store.New(db, "postgres")
	created, err := s.CreatePost(context.Background(), "Hello", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostMySQLLastInsertID(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO posts \(title, body, created_at\) VALUES \(\?, \?, \?\)`).
		WillReturnResult(sqlmock.NewResult(5, 1))

	s := store.New(db, "mysql")
	created, err := s.CreatePost(context.Background(), "Hello", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPostPostgresPlaceholders(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, body, created_at FROM posts WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "body", "created_at"}).
			AddRow(int64(3), "Hello", nil, time.Now()))

	s := store.New(db, "postgres")
	got, err := s.GetPost(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostDatabaseError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk full")
	mock.ExpectExec("INSERT INTO posts").WillReturnError(boom)

	s := store.New(db, "sqlite")
	_, err = s.CreatePost(context.Background(), "Hello", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPostsDatabaseError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT id, title, body, created_at FROM posts").WillReturnError(boom)

	s := store.New(db, "sqlite")
	_, err = s.ListPosts(context.Background(), store.Order{}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
