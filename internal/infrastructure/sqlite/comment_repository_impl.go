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

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `id, post_id, author_id, content, created_at, updated_at`

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	now := time.Now().UTC()
	id := entity.CommentID(uuid.NewString())
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (`+commentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(id), string(c.PostID), string(c.Author.ID), c.Content, toUnix(now), toUnix(now)); err != nil {
		return err
	}
	c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id entity.CommentID) (*entity.Comment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = ?`, string(id))
	c, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID entity.PostID) ([]entity.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+commentColumns+` FROM comments
		WHERE post_id = ?
		ORDER BY rowid ASC
	`, string(postID))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

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
	c.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE comments SET content = ?, updated_at = ? WHERE id = ?
	`, c.Content, toUnix(c.UpdatedAt), string(c.ID))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *CommentRepository) Delete(ctx context.Context, id entity.CommentID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func scanComment(s scanner) (*entity.Comment, error) {
	var c entity.Comment
	var id, postID, author string
	var created, updated int64
	if err := s.Scan(&id, &postID, &author, &c.Content, &created, &updated); err != nil {
		return nil, err
	}
	c.ID = entity.CommentID(id)
	c.PostID = entity.PostID(postID)
	c.Author = entity.AuthorRef{ID: entity.UserID(author)}
	c.CreatedAt, c.UpdatedAt = fromUnix(created), fromUnix(updated)
	return &c, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
