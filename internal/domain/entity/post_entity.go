package entity

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
	ErrPostIDRequired  = errors.New("postId is required")
)

// Post is a blog entry. Author is fixed at creation.
type Post struct {
	ID         PostID    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Categories []string  `json:"categories"`
	Image      string    `json:"image"`
	Author     AuthorRef `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IsOwnedBy reports whether uid created the post.
func (p *Post) IsOwnedBy(uid UserID) bool {
	return p.Author.ID == uid
}

// Validate enforces the fields every stored post must carry.
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrContentRequired
	}
	return nil
}

// Page is one slice of the post listing.
type Page struct {
	Posts       []Post `json:"posts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
}
