package models

import "time"

// Like marks that a user liked a post. (PostID, AuthorID) is unique, which
// is what makes the toggle operation safe under double submission.
type Like struct {
	ID        string
	PostID    string
	AuthorID  string
	CreatedAt time.Time
}
