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
)

// SettingService manages the site-wide key/value settings. Reads are
// public (the site shell needs them); writes are admin-only upserts.
type SettingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gate        *authz.Gate
}

func NewSettingService(db *sql.DB, m repomanager.RepositoryManager, gate *authz.Gate) *SettingService {
	return &SettingService{db: db, repomanager: m, gate: gate}
}

func (s *SettingService) Upsert(ctx context.Context, caller *models.Profile, key, value string) error {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: key is required", common.ErrorValidation)
	}

	return s.repomanager.Settings(s.db).Upsert(ctx, key, value)
}

func (s *SettingService) Get(ctx context.Context, key string) (*models.Setting, error) {
	return s.repomanager.Settings(s.db).Get(ctx, key)
}

func (s *SettingService) GetAll(ctx context.Context) ([]*models.Setting, error) {
	return s.repomanager.Settings(s.db).GetAll(ctx)
}
