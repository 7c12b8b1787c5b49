package models

import "time"

// Post is an article going through the moderation workflow. A post starts
// unpublished (pending review) and becomes publicly visible only after an
// admin approves it.
type Post struct {
	ID        string
	Title     string
	Content   *string
	Slug      string
	ImageURL  string
	AuthorID  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized author display fields.
	AuthorName     string
	AuthorUsername *string
	AuthorAvatar   string
	AuthorVerified bool

	// Aggregates for rendering.
	LikeCount     int64
	CommentCount  int64
	LikedByViewer bool
}
