package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `id, title, content, categories, image, author_id, created_at, updated_at`

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	cats, err := encodeCategories(p.Categories)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	id := entity.PostID(uuid.NewString())
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (`+postColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, string(id), p.Title, p.Content, cats, p.Image, string(p.Author.ID), toUnix(now), toUnix(now)); err != nil {
		return err
	}
	p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	if p.Categories == nil {
		p.Categories = []string{}
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id entity.PostID) (*entity.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, string(id))
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context, skip, limit int) ([]entity.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&n)
	return n, err
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	cats, err := encodeCategories(p.Categories)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE posts SET title = ?, content = ?, categories = ?, updated_at = ?
		WHERE id = ?
	`, p.Title, p.Content, cats, toUnix(p.UpdatedAt), string(p.ID))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PostRepository) Delete(ctx context.Context, id entity.PostID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*entity.Post, error) {
	var p entity.Post
	var id, cats, author string
	var created, updated int64
	if err := s.Scan(&id, &p.Title, &p.Content, &cats, &p.Image, &author, &created, &updated); err != nil {
		return nil, err
	}
	p.ID = entity.PostID(id)
	p.Categories = decodeCategories(cats)
	p.Author = entity.AuthorRef{ID: entity.UserID(author)}
	p.CreatedAt, p.UpdatedAt = fromUnix(created), fromUnix(updated)
	return &p, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
