package models

import "time"

// Comment belongs to a post. IsAdmin is computed at read time by comparing
// the author against the admin identity; it is never persisted.
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time

	AuthorName     string
	AuthorUsername *string
	AuthorAvatar   string

	// AuthorEmail and AuthorRole feed the IsAdmin derivation and are not
	// exposed over the API.
	AuthorEmail string
	AuthorRole  string
	IsAdmin     bool
}
