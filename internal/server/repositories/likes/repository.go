// Package likes persists post likes. The unique constraint on
// (post_id, author_id) is the concurrency mechanism behind the toggle.
package likes

import (
	"context"

	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

type Repository interface {
	// InsertIfAbsent adds a like and reports whether a row was created.
	// A unique-constraint hit means "already liked" and is not an error.
	InsertIfAbsent(ctx context.Context, l *models.Like) (bool, error)

	// Delete removes the caller's like and returns the rows affected.
	Delete(ctx context.Context, postID, authorID string) (int64, error)

	CountByPost(ctx context.Context, postID string) (int64, error)
	Exists(ctx context.Context, postID, authorID string) (bool, error)
	DeleteByPost(ctx context.Context, postID string) error
}
