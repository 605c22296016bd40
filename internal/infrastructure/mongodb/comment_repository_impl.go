package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oksasatya/go-ddd-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog-api/internal/domain/repository"
)

// postId is kept as the caller supplied it; no lookup against posts.
type commentDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	PostID    string        `bson:"postId"`
	Author    bson.ObjectID `bson:"author"`
	Content   string        `bson:"content"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d commentDoc) toEntity() entity.Comment {
	return entity.Comment{
		ID:        entity.CommentID(d.ID.Hex()),
		PostID:    entity.PostID(d.PostID),
		Author:    entity.AuthorRef{ID: entity.UserID(d.Author.Hex())},
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection)}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	author, ok := objectID(string(c.Author.ID))
	if !ok {
		return fmt.Errorf("invalid author id %q", c.Author.ID)
	}
	now := time.Now().UTC()
	doc := commentDoc{ID: bson.NewObjectID(), PostID: string(c.PostID), Author: author, Content: c.Content, CreatedAt: now, UpdatedAt: now}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	c.ID, c.CreatedAt, c.UpdatedAt = entity.CommentID(doc.ID.Hex()), now, now
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id entity.CommentID) (*entity.Comment, error) {
	oid, ok := objectID(string(id))
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc commentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c := doc.toEntity()
	return &c, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID entity.PostID) ([]entity.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"postId": string(postID)}, opts)
	if err != nil {
		return nil, err
	}
	var docs []commentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	comments := make([]entity.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, d.toEntity())
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	oid, ok := objectID(string(c.ID))
	if !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"content":   c.Content,
		"updatedAt": c.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id entity.CommentID) error {
	oid, ok := objectID(string(id))
	if !ok {
		return repository.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
