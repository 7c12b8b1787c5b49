// Package profiles persists the public-facing user records and the
// credentials of the identity shim.
package profiles

import (
	"context"

	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

// Credentials is the subset of a profile needed to verify a login.
type Credentials struct {
	ID           string
	PasswordHash string
}

type Repository interface {
	Create(ctx context.Context, p *models.Profile, passwordHash string) (*models.Profile, error)
	Upsert(ctx context.Context, id, email, name string) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	GetCredentials(ctx context.Context, email string) (*Credentials, error)
	UpdateProfile(ctx context.Context, id, name string, username *string, bio, avatarURL string) error
	SetBanned(ctx context.Context, id string, banned bool) error
	SetRole(ctx context.Context, id, role string) error
	SetVerified(ctx context.Context, id string, verified bool) error
	Search(ctx context.Context, query string, limit int) ([]*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Stats(ctx context.Context, id string) (*models.ProfileStats, error)
}
