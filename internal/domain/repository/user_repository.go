package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id entity.UserID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// NamesByID returns display names for the given ids; unknown ids are absent from the map.
	NamesByID(ctx context.Context, ids []entity.UserID) (map[entity.UserID]string, error)
}
