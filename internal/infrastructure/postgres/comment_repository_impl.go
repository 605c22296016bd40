package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

const commentColumns = `id, post_id, author_id, content, created_at, updated_at`

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	var id string
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, string(c.PostID), string(c.Author.ID), c.Content)
	if err := row.Scan(&id, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	c.ID = entity.CommentID(id)
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id entity.CommentID) (*entity.Comment, error) {
	if !validID(string(id)) {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, string(id))
	c, err := scanComment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID entity.PostID) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE post_id = $1
		ORDER BY seq ASC
	`, string(postID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []entity.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	if !validID(string(c.ID)) {
		return repository.ErrNotFound
	}
	err := r.pool.QueryRow(ctx, `
		UPDATE comments SET content = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`, c.Content, string(c.ID)).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func (r *CommentRepository) Delete(ctx context.Context, id entity.CommentID) error {
	if !validID(string(id)) {
		return repository.ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, string(id))
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var c entity.Comment
	var id, postID, author string
	if err := row.Scan(&id, &postID, &author, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.ID = entity.CommentID(id)
	c.PostID = entity.PostID(postID)
	c.Author = entity.AuthorRef{ID: entity.UserID(author)}
	return &c, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
