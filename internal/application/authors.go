package application

import (
	"context"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
)

// resolveAuthorNames fills AuthorRef.Name for every ref in refs with one lookup.
// Authors that no longer exist keep an empty name.
func resolveAuthorNames(ctx context.Context, users repo.UserRepository, refs []*entity.AuthorRef) error {
	if len(refs) == 0 {
		return nil
	}
	seen := make(map[entity.UserID]struct{}, len(refs))
	ids := make([]entity.UserID, 0, len(refs))
	for _, r := range refs {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		ids = append(ids, r.ID)
	}
	names, err := users.NamesByID(ctx, ids)
	if err != nil {
		return err
	}
	for _, r := range refs {
		r.Name = names[r.ID]
	}
	return nil
}
