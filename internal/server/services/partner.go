package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PartnerService implements the admin-only partner logo CRUD.
type PartnerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gate        *authz.Gate
}

func NewPartnerService(db *sql.DB, m repomanager.RepositoryManager, gate *authz.Gate) *PartnerService {
	return &PartnerService{db: db, repomanager: m, gate: gate}
}

func (s *PartnerService) Create(ctx context.Context, caller *models.Profile, name, logoURL string, sortOrder int) (*models.Partner, error) {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	p := &models.Partner{ID: uuid.NewString(), Name: name, LogoURL: logoURL, SortOrder: sortOrder}

	created, err := s.repomanager.Partners(s.db).Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("error creating partner: %w", err)
	}

	return created, nil
}

// List is public: partner logos render in the site shell.
func (s *PartnerService) List(ctx context.Context) ([]*models.Partner, error) {
	return s.repomanager.Partners(s.db).List(ctx)
}

func (s *PartnerService) Update(ctx context.Context, caller *models.Profile, id, name, logoURL string, sortOrder int) error {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	return s.repomanager.Partners(s.db).Update(ctx, &models.Partner{
		ID: id, Name: name, LogoURL: logoURL, SortOrder: sortOrder,
	})
}

func (s *PartnerService) Delete(ctx context.Context, caller *models.Profile, id string) error {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return err
	}
	return s.repomanager.Partners(s.db).Delete(ctx, id)
}
