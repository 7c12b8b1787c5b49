package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/repomanager"
)

// AccountService implements the admin-only account controls: ban, role,
// and verification. All three are set-to-value operations, so applying the
// same state twice is a no-op success.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gate        *authz.Gate
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, gate *authz.Gate) *AccountService {
	return &AccountService{db: db, repomanager: m, gate: gate}
}

// SetBanned bans or unbans a user. An admin can never ban their own
// account, and the root admin can never be banned.
func (s *AccountService) SetBanned(ctx context.Context, caller *models.Profile, targetID string, banned bool) error {
	target, err := s.guardTarget(ctx, caller, targetID)
	if err != nil {
		return err
	}
	if s.gate.IsRootAdmin(target) {
		return common.ErrorForbidden
	}

	return s.repomanager.Profiles(s.db).SetBanned(ctx, targetID, banned)
}

// SetRole assigns USER or ADMIN. Self-demotion and any role change on the
// root admin are rejected.
func (s *AccountService) SetRole(ctx context.Context, caller *models.Profile, targetID, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return fmt.Errorf("%w: unknown role", common.ErrorValidation)
	}

	target, err := s.guardTarget(ctx, caller, targetID)
	if err != nil {
		return err
	}
	if s.gate.IsRootAdmin(target) {
		return common.ErrorForbidden
	}

	return s.repomanager.Profiles(s.db).SetRole(ctx, targetID, role)
}

// SetVerified toggles the verified badge. Unlike ban/role there is no
// self-protection rule here.
func (s *AccountService) SetVerified(ctx context.Context, caller *models.Profile, targetID string, verified bool) error {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return err
	}
	if _, err := s.repomanager.Profiles(s.db).GetByID(ctx, targetID); err != nil {
		return err
	}

	return s.repomanager.Profiles(s.db).SetVerified(ctx, targetID, verified)
}

// ListUsers returns every profile for the admin user table.
func (s *AccountService) ListUsers(ctx context.Context, caller *models.Profile) ([]*models.Profile, error) {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repomanager.Profiles(s.db).List(ctx)
}

// guardTarget runs the admin gate, the self-protection rule, and loads the
// target profile.
func (s *AccountService) guardTarget(ctx context.Context, caller *models.Profile, targetID string) (*models.Profile, error) {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return nil, err
	}
	if caller.ID == targetID {
		return nil, fmt.Errorf("%w: cannot target own account", common.ErrorForbidden)
	}

	target, err := s.repomanager.Profiles(s.db).GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return target, nil
}
