package application

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 9
)

type PostService struct {
	Posts        repo.PostRepository
	Users        repo.UserRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESPostsIndex string
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esPostsIndex string) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger, ES: es, ESPostsIndex: esPostsIndex}
}

type CreatePostInput struct {
	Title      string
	Content    string
	Categories []string
	Image      string
}

type UpdatePostInput struct {
	Title      string
	Content    string
	Categories []string
}

// Create stores a new post authored by requester.
func (s *PostService) Create(ctx context.Context, requester entity.UserID, in CreatePostInput) (*entity.Post, error) {
	p := &entity.Post{
		Title:      in.Title,
		Content:    in.Content,
		Categories: in.Categories,
		Image:      in.Image,
		Author:     entity.AuthorRef{ID: requester},
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	_ = s.indexPost(ctx, p)
	return p, nil
}

// List returns one page of posts, newest first. Non-positive page or limit
// fall back to the defaults; a page past the end is empty.
func (s *PostService) List(ctx context.Context, page, limit int) (*entity.Page, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	total, err := s.Posts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	// Past the last page nothing is queried, so (page-1)*limit stays below total.
	if page > totalPages {
		return &entity.Page{Posts: []entity.Post{}, TotalPages: totalPages, CurrentPage: page}, nil
	}

	posts, err := s.Posts.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []entity.Post{}
	}
	refs := make([]*entity.AuthorRef, len(posts))
	for i := range posts {
		refs[i] = &posts[i].Author
	}
	if err := resolveAuthorNames(ctx, s.Users, refs); err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}
	return &entity.Page{
		Posts:       posts,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

// Get returns the post with its author name resolved.
func (s *PostService) Get(ctx context.Context, id entity.PostID) (*entity.Post, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := resolveAuthorNames(ctx, s.Users, []*entity.AuthorRef{&p.Author}); err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	return p, nil
}

// Update overwrites title, content and categories. Image and author are kept.
func (s *PostService) Update(ctx context.Context, requester entity.UserID, id entity.PostID, in UpdatePostInput) (*entity.Post, error) {
	p, err := s.owned(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	p.Title = in.Title
	p.Content = in.Content
	p.Categories = in.Categories
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if err := s.Posts.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	_ = s.indexPost(ctx, p)
	return p, nil
}

// Delete removes the post. Comments referencing it are left in place.
func (s *PostService) Delete(ctx context.Context, requester entity.UserID, id entity.PostID) error {
	if _, err := s.owned(ctx, requester, id); err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	_ = s.unindexPost(ctx, id)
	return nil
}

func (s *PostService) load(ctx context.Context, id entity.PostID) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return p, nil
}

// owned loads the post and checks requester is its author. A missing post
// wins over a foreign one.
func (s *PostService) owned(ctx context.Context, requester entity.UserID, id entity.PostID) (*entity.Post, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(requester) {
		return nil, ErrNotAuthorized
	}
	return p, nil
}
