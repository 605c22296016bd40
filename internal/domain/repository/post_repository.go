package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
)

// PostRepository stores posts. List returns newest first.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id entity.PostID) (*entity.Post, error)
	List(ctx context.Context, skip, limit int) ([]entity.Post, error)
	Count(ctx context.Context) (int64, error)
	// Update overwrites title, content and categories only.
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id entity.PostID) error
}
