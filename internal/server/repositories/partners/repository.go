// Package partners persists partner logos shown in the site shell.
package partners

import (
	"context"

	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Partner) (*models.Partner, error)
	List(ctx context.Context) ([]*models.Partner, error)
	Update(ctx context.Context, p *models.Partner) error
	Delete(ctx context.Context, id string) error
}
