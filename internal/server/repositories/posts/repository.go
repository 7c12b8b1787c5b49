// Package posts persists posts and their moderation state.
package posts

import (
	"context"

	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug, viewerID string) (*models.Post, error)

	// Update rewrites title/content/image for the post owned by authorID and
	// clears the published flag in the same statement (re-review on edit).
	// Returns the number of rows affected.
	Update(ctx context.Context, id, authorID, title string, content *string, imageURL string) (int64, error)

	// Approve publishes a pending post. Returns false when the post was
	// already published (idempotent no-op).
	Approve(ctx context.Context, id string) (bool, error)

	Delete(ctx context.Context, id string) (int64, error)

	ListPublished(ctx context.Context, viewerID string) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error)
	ListPending(ctx context.Context) ([]*models.Post, error)
	PendingCount(ctx context.Context) (int64, error)
}
