package entity

// UserID, PostID and CommentID are opaque identifiers issued by the store.
// They compare by value; ownership checks never go through string coercion.
type (
	UserID    string
	PostID    string
	CommentID string
)

func (id UserID) String() string    { return string(id) }
func (id PostID) String() string    { return string(id) }
func (id CommentID) String() string { return string(id) }

// AuthorRef is the author reference as exposed to readers: the id is always
// set, the display name only when it has been resolved.
type AuthorRef struct {
	ID   UserID `json:"id"`
	Name string `json:"name,omitempty"`
}
