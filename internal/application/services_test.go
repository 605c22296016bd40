package application

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-ddd-blog-api/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog-api/pkg/mailer"
)

type services struct {
	auth     *AuthService
	posts    *PostService
	comments *CommentService
	pub      *fakePublisher
	db       *sql.DB
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body)
	return p.err
}

func newServices(t *testing.T) *services {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := sqlite.Open("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := helpers.NewDiscardLogger()
	users := sqlite.NewUserRepository(db)
	pub := &fakePublisher{}
	return &services{
		auth:     NewAuthService(users, helpers.NewJWTManager("secret", time.Hour), logger),
		posts:    NewPostService(sqlite.NewPostRepository(db), users, logger, nil, ""),
		comments: NewCommentService(sqlite.NewCommentRepository(db), users, logger, pub),
		pub:      pub,
		db:       db,
	}
}

func (s *services) user(t *testing.T, name string) entity.UserID {
	t.Helper()
	sess, err := s.auth.Register(context.Background(), name, strings.ToLower(name)+"@example.com", "password123")
	require.NoError(t, err)
	return sess.User.ID
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	sess, err := s.auth.Register(ctx, " Ann ", " Ann@Example.com ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "Ann", sess.User.Name)
	assert.Equal(t, "ann@example.com", sess.User.Email)
	assert.NotEqual(t, "password123", sess.User.Password)
	assert.NotEmpty(t, sess.AccessToken)

	_, err = s.auth.Register(ctx, "Other", "ANN@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = s.auth.Login(ctx, "ann@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := s.auth.Login(ctx, "ANN@example.com", "password123")
	require.NoError(t, err)
	claims, err := s.auth.JWT.ParseToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(sess.User.ID), claims.UserID)

	u, err := s.auth.Profile(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", u.Email)
	_, err = s.auth.Profile(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostLifecycle(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u1 := s.user(t, "Ann")
	u2 := s.user(t, "Bob")

	p, err := s.posts.Create(ctx, u1, CreatePostInput{Title: "A", Content: "c", Categories: []string{"x"}, Image: "/uploads/image-1.png"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuthorRef{ID: u1, Name: "Ann"}, got.Author)

	_, err = s.posts.Update(ctx, u2, p.ID, UpdatePostInput{Title: "B", Content: "c"})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	up, err := s.posts.Update(ctx, u1, p.ID, UpdatePostInput{Title: "B", Content: "d", Categories: []string{"y"}})
	require.NoError(t, err)
	assert.Equal(t, "B", up.Title)
	assert.Equal(t, "/uploads/image-1.png", up.Image)
	assert.Equal(t, u1, up.Author.ID)

	_, err = s.posts.Update(ctx, u1, p.ID, UpdatePostInput{Title: "", Content: "d"})
	assert.ErrorIs(t, err, entity.ErrTitleRequired)

	assert.ErrorIs(t, s.posts.Delete(ctx, u2, p.ID), ErrNotAuthorized)
	require.NoError(t, s.posts.Delete(ctx, u1, p.ID))

	_, err = s.posts.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.posts.Delete(ctx, u2, p.ID), ErrNotFound)
}

func TestPostCreateRequiresFields(t *testing.T) {
	s := newServices(t)
	u := s.user(t, "Ann")

	_, err := s.posts.Create(context.Background(), u, CreatePostInput{Content: "c"})
	assert.ErrorIs(t, err, entity.ErrTitleRequired)
	_, err = s.posts.Create(context.Background(), u, CreatePostInput{Title: "t"})
	assert.ErrorIs(t, err, entity.ErrContentRequired)
}

func TestPostListPaging(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u := s.user(t, "Ann")
	for i := 0; i < 7; i++ {
		_, err := s.posts.Create(ctx, u, CreatePostInput{Title: "t", Content: "c"})
		require.NoError(t, err)
	}

	tests := []struct {
		page, limit        int
		wantLen, wantPages int
		wantPage           int
	}{
		{1, 3, 3, 3, 1},
		{3, 3, 1, 3, 3},
		{4, 3, 0, 3, 4},
		{0, 0, 7, 1, 1},
		{-1, 7, 7, 1, 1},
		{1024819115206086202, 9, 0, 1, 1024819115206086202},
		{math.MaxInt, 9, 0, 1, math.MaxInt},
		{math.MaxInt, math.MaxInt, 0, 1, math.MaxInt},
	}
	for _, tt := range tests {
		pg, err := s.posts.List(ctx, tt.page, tt.limit)
		require.NoError(t, err)
		assert.Len(t, pg.Posts, tt.wantLen)
		assert.NotNil(t, pg.Posts)
		assert.Equal(t, tt.wantPages, pg.TotalPages)
		assert.Equal(t, tt.wantPage, pg.CurrentPage)
	}
}

func TestLoginStoreFailureIsNotInvalidCredentials(t *testing.T) {
	s := newServices(t)
	s.user(t, "Ann")
	require.NoError(t, s.db.Close())

	_, err := s.auth.Login(context.Background(), "ann@example.com", "password123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestSearchDisabled(t *testing.T) {
	s := newServices(t)
	hits, err := s.posts.Search(context.Background(), "go", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCommentLifecycle(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	u1 := s.user(t, "Ann")
	u2 := s.user(t, "Bob")
	p, err := s.posts.Create(ctx, u1, CreatePostInput{Title: "A", Content: "c"})
	require.NoError(t, err)

	c, err := s.comments.Create(ctx, u2, p.ID, "hello")
	require.NoError(t, err)
	require.Len(t, s.pub.jobs, 1)
	job := s.pub.jobs[0].(mailer.CommentCreatedJob)
	assert.Equal(t, string(c.ID), job.CommentID)
	assert.Equal(t, string(p.ID), job.PostID)
	assert.Equal(t, string(u2), job.AuthorID)

	_, err = s.comments.Create(ctx, u2, p.ID, "  ")
	assert.ErrorIs(t, err, entity.ErrContentRequired)

	list, err := s.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob", list[0].Author.Name)

	_, err = s.comments.Update(ctx, u1, c.ID, "hijack")
	assert.ErrorIs(t, err, ErrNotAuthorized)
	up, err := s.comments.Update(ctx, u2, c.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", up.Content)

	// Orphans survive post deletion.
	require.NoError(t, s.posts.Delete(ctx, u1, p.ID))
	list, err = s.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.ErrorIs(t, s.comments.Delete(ctx, u1, c.ID), ErrNotAuthorized)
	require.NoError(t, s.comments.Delete(ctx, u2, c.ID))
	assert.ErrorIs(t, s.comments.Delete(ctx, u2, c.ID), ErrNotFound)

	list, err = s.comments.ListByPost(ctx, "nothing-here")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCommentPublishFailureDoesNotFailCreate(t *testing.T) {
	s := newServices(t)
	s.pub.err = errors.New("broker down")
	u := s.user(t, "Ann")

	c, err := s.comments.Create(context.Background(), u, "X", "still saved")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
}
