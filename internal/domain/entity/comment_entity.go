package entity

import (
	"strings"
	"time"
)

// Comment belongs to a post by id only; the post is not required to exist.
type Comment struct {
	ID        CommentID `json:"id"`
	PostID    PostID    `json:"postId"`
	Author    AuthorRef `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) IsOwnedBy(uid UserID) bool {
	return c.Author.ID == uid
}

func (c *Comment) Validate() error {
	if strings.TrimSpace(string(c.PostID)) == "" {
		return ErrPostIDRequired
	}
	if strings.TrimSpace(c.Content) == "" {
		return ErrContentRequired
	}
	return nil
}
