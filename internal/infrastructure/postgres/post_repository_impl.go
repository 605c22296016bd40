package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

const postColumns = `id, title, content, categories, image, author_id, created_at, updated_at`

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	if p.Categories == nil {
		p.Categories = []string{}
	}
	var id string
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, content, categories, image, author_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Content, p.Categories, p.Image, string(p.Author.ID))
	if err := row.Scan(&id, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	p.ID = entity.PostID(id)
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id entity.PostID) (*entity.Post, error) {
	if !validID(string(id)) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, string(id))
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context, skip, limit int) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+` FROM posts
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []entity.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	if !validID(string(p.ID)) {
		return repository.ErrNotFound
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	err := r.pool.QueryRow(ctx, `
		UPDATE posts
		SET title = $1, content = $2, categories = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, p.Title, p.Content, p.Categories, string(p.ID)).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func (r *PostRepository) Delete(ctx context.Context, id entity.PostID) error {
	if !validID(string(id)) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	var p entity.Post
	var id, author string
	if err := row.Scan(&id, &p.Title, &p.Content, &p.Categories, &p.Image, &author, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.ID = entity.PostID(id)
	p.Author = entity.AuthorRef{ID: entity.UserID(author)}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	return &p, nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
