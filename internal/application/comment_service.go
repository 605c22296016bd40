package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog-api/pkg/mailer"
)

// JobPublisher enqueues background jobs; helpers.RabbitPublisher implements it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type CommentService struct {
	Comments repo.CommentRepository
	Users    repo.UserRepository
	Logger   *logrus.Logger
	// Pub is optional. When set, every new comment enqueues a notification job.
	Pub JobPublisher
}

func NewCommentService(comments repo.CommentRepository, users repo.UserRepository, logger *logrus.Logger, pub JobPublisher) *CommentService {
	return &CommentService{Comments: comments, Users: users, Logger: logger, Pub: pub}
}

// Create stores a comment on postID. The post is not looked up.
func (s *CommentService) Create(ctx context.Context, requester entity.UserID, postID entity.PostID, content string) (*entity.Comment, error) {
	c := &entity.Comment{
		PostID:  postID,
		Author:  entity.AuthorRef{ID: requester},
		Content: content,
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.notify(ctx, c)
	return c, nil
}

// ListByPost returns the comments of postID in insertion order.
func (s *CommentService) ListByPost(ctx context.Context, postID entity.PostID) ([]entity.Comment, error) {
	comments, err := s.Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []entity.Comment{}
	}
	refs := make([]*entity.AuthorRef, len(comments))
	for i := range comments {
		refs[i] = &comments[i].Author
	}
	if err := resolveAuthorNames(ctx, s.Users, refs); err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}
	return comments, nil
}

// Update overwrites the comment content.
func (s *CommentService) Update(ctx context.Context, requester entity.UserID, id entity.CommentID, content string) (*entity.Comment, error) {
	c, err := s.owned(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	c.Content = content
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if err := s.Comments.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return c, nil
}

func (s *CommentService) Delete(ctx context.Context, requester entity.UserID, id entity.CommentID) error {
	if _, err := s.owned(ctx, requester, id); err != nil {
		return err
	}
	if err := s.Comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *CommentService) owned(ctx context.Context, requester entity.UserID, id entity.CommentID) (*entity.Comment, error) {
	c, err := s.Comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load comment: %w", err)
	}
	if !c.IsOwnedBy(requester) {
		return nil, ErrNotAuthorized
	}
	return c, nil
}

func (s *CommentService) notify(ctx context.Context, c *entity.Comment) {
	if s.Pub == nil {
		return
	}
	job := mailer.CommentCreatedJob{
		Type:      mailer.CommentCreated,
		PostID:    string(c.PostID),
		CommentID: string(c.ID),
		AuthorID:  string(c.Author.ID),
		Content:   c.Content,
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("comment_id", c.ID).Warn("failed to publish comment notification")
	}
}
