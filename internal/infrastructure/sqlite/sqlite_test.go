package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := &entity.User{Email: "ann@example.com", Password: "hash", Name: "Ann"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	err := repo.Create(ctx, &entity.User{Email: "ann@example.com", Password: "x", Name: "Other"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	names, err := repo.NamesByID(ctx, []entity.UserID{u.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[entity.UserID]string{u.ID: "Ann"}, names)
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository(newTestDB(t))

	var ids []entity.PostID
	for _, title := range []string{"first", "second", "third"} {
		p := &entity.Post{Title: title, Content: "body", Categories: []string{"tech", "go"}, Author: entity.AuthorRef{ID: "u1"}}
		require.NoError(t, repo.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	page, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "third", page[0].Title)
	assert.Equal(t, "second", page[1].Title)

	page, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "first", page[0].Title)

	page, err = repo.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)

	got, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"tech", "go"}, got.Categories)
	assert.Equal(t, entity.UserID("u1"), got.Author.ID)

	got.Title, got.Categories, got.Image = "renamed", nil, "/uploads/ignored.png"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Empty(t, got.Categories)
	assert.Equal(t, "", got.Image)

	require.NoError(t, repo.Delete(ctx, ids[0]))
	assert.ErrorIs(t, repo.Delete(ctx, ids[0]), repository.ErrNotFound)
	_, err = repo.GetByID(ctx, ids[0])
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entity.Post{ID: "missing"}), repository.ErrNotFound)
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository(newTestDB(t))

	for _, content := range []string{"one", "two"} {
		require.NoError(t, repo.Create(ctx, &entity.Comment{PostID: "X", Content: content, Author: entity.AuthorRef{ID: "u1"}}))
	}
	other := &entity.Comment{PostID: "Y", Content: "elsewhere", Author: entity.AuthorRef{ID: "u2"}}
	require.NoError(t, repo.Create(ctx, other))

	list, err := repo.ListByPost(ctx, "X")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Content)
	assert.Equal(t, "two", list[1].Content)

	list, err = repo.ListByPost(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, list)

	other.Content = "edited"
	require.NoError(t, repo.Update(ctx, other))
	got, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, entity.PostID("Y"), got.PostID)

	require.NoError(t, repo.Delete(ctx, other.ID))
	_, err = repo.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)
	const insert = `INSERT INTO users (id, email, password_hash, name, created_at, updated_at) VALUES (?, ?, ?, ?, 0, 0)`

	_, err := db.Exec(insert, "u1", "a@example.com", "h", "A")
	require.NoError(t, err)

	_, err = db.Exec(insert, "u1", "b@example.com", "h", "B")
	assert.True(t, isUniqueViolation(err), "primary key")

	_, err = db.Exec(insert, "u2", "a@example.com", "h", "B")
	assert.True(t, isUniqueViolation(err), "unique email")

	_, err = db.Exec(insert, "u3", "c@example.com", nil, "C")
	require.Error(t, err)
	assert.False(t, isUniqueViolation(err), "not null")

	assert.False(t, isUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, isUniqueViolation(nil))
}
