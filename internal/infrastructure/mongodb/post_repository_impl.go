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

type postDoc struct {
	ID         bson.ObjectID `bson:"_id"`
	Title      string        `bson:"title"`
	Content    string        `bson:"content"`
	Categories []string      `bson:"categories"`
	Image      string        `bson:"image"`
	Author     bson.ObjectID `bson:"author"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}

func (d postDoc) toEntity() entity.Post {
	cats := d.Categories
	if cats == nil {
		cats = []string{}
	}
	return entity.Post{
		ID:         entity.PostID(d.ID.Hex()),
		Title:      d.Title,
		Content:    d.Content,
		Categories: cats,
		Image:      d.Image,
		Author:     entity.AuthorRef{ID: entity.UserID(d.Author.Hex())},
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	author, ok := objectID(string(p.Author.ID))
	if !ok {
		return fmt.Errorf("invalid author id %q", p.Author.ID)
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	now := time.Now().UTC()
	doc := postDoc{
		ID:         bson.NewObjectID(),
		Title:      p.Title,
		Content:    p.Content,
		Categories: p.Categories,
		Image:      p.Image,
		Author:     author,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	p.ID, p.CreatedAt, p.UpdatedAt = entity.PostID(doc.ID.Hex()), now, now
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id entity.PostID) (*entity.Post, error) {
	oid, ok := objectID(string(id))
	if !ok {
		return nil, repository.ErrNotFound
	}
	var doc postDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p := doc.toEntity()
	return &p, nil
}

func (r *PostRepository) List(ctx context.Context, skip, limit int) ([]entity.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	posts := make([]entity.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toEntity())
	}
	return posts, nil
}

func (r *PostRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	oid, ok := objectID(string(p.ID))
	if !ok {
		return repository.ErrNotFound
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	p.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":      p.Title,
		"content":    p.Content,
		"categories": p.Categories,
		"updatedAt":  p.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id entity.PostID) error {
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

var _ repository.PostRepository = (*PostRepository)(nil)
