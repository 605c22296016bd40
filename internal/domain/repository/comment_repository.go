package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
)

// CommentRepository stores comments. ListByPost returns insertion order.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id entity.CommentID) (*entity.Comment, error)
	ListByPost(ctx context.Context, postID entity.PostID) ([]entity.Comment, error)
	// Update overwrites content only.
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id entity.CommentID) error
}
