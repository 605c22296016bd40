package entity

import (
	"time"
)

// User is the account that authors posts and comments.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        UserID
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
