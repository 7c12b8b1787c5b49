// Package comments persists post comments.
package comments

import (
	"context"

	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)

	// Delete removes a comment regardless of its author (admin path).
	Delete(ctx context.Context, id string) (int64, error)

	// DeleteOwned removes a comment only when authorID matches; a non-owner
	// affects zero rows.
	DeleteOwned(ctx context.Context, id, authorID string) (int64, error)

	DeleteByPost(ctx context.Context, postID string) error
}
