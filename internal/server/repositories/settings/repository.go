// Package settings persists the flat key/value store of site-wide
// configuration (site name, logo, description).
package settings

import (
	"context"

	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (*models.Setting, error)
	GetAll(ctx context.Context) ([]*models.Setting, error)
}
