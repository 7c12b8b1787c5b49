// Package services contains server-side business logic. This file implements
// IdentityService: registration, login, the idempotent profile upsert run on
// every session-establishing flow, and profile reads/updates.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/auth"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/config"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// usernameRe is the allowed onboarding username shape.
var usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

const minPasswordLen = 8

// IdentityService provides authentication-related operations and profile
// management for the signed-in user.
type IdentityService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	gate            *authz.Gate
	jwtSecret       []byte
	sessionValidity time.Duration
}

// NewIdentityService constructs an IdentityService using repositories,
// the authorization gate, and server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, gate *authz.Gate, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:              db,
		repomanager:     m,
		gate:            gate,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Register creates a profile for a new identity and issues a session token.
func (s *IdentityService) Register(ctx context.Context, email, password, name string) (*models.Profile, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < minPasswordLen {
		return nil, "", fmt.Errorf("%w: password too short", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	profile := &models.Profile{
		ID:    uuid.NewString(),
		Email: email,
		Name:  strings.TrimSpace(name),
		Role:  models.RoleUser,
	}

	repo := s.repomanager.Profiles(s.db)
	created, err := repo.Create(ctx, profile, string(hash))
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, "", common.ErrorConflict
		}
		return nil, "", fmt.Errorf("error creating profile: %w", err)
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return created, token, nil
}

// Login verifies the credentials and issues a session token. A banned
// identity can still sign in; the gate restricts what it may do afterwards.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*models.Profile, string, error) {
	repo := s.repomanager.Profiles(s.db)

	creds, err := repo.GetCredentials(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return nil, "", common.ErrorUnauthorized
	}

	profile, err := repo.GetByID(ctx, creds.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	token, err := s.issueToken(profile)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return profile, token, nil
}

// EnsureProfile is the idempotent "create if absent" upsert keyed by
// identity id. It is safe to call on every session-establishing flow and
// never downgrades an existing profile.
func (s *IdentityService) EnsureProfile(ctx context.Context, id, email, name string) (*models.Profile, error) {
	if id == "" || email == "" {
		return nil, fmt.Errorf("%w: missing identity", common.ErrorValidation)
	}

	repo := s.repomanager.Profiles(s.db)
	p, err := repo.Upsert(ctx, id, email, name)
	if err != nil {
		return nil, fmt.Errorf("error syncing profile: %w", err)
	}

	return p, nil
}

// GetProfile loads a profile by id.
func (s *IdentityService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByID(ctx, id)
}

// UpdateOwnProfile updates the caller's public profile. The username can be
// chosen once during onboarding; changing an already-set username is
// rejected, and a taken username surfaces as a conflict.
func (s *IdentityService) UpdateOwnProfile(ctx context.Context, caller *models.Profile, name string, username *string, bio, avatarURL string) (*models.Profile, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}

	if username != nil {
		u := strings.ToLower(strings.TrimSpace(*username))
		if !usernameRe.MatchString(u) {
			return nil, fmt.Errorf("%w: malformed username", common.ErrorValidation)
		}
		if caller.Username != nil && *caller.Username != u {
			return nil, fmt.Errorf("%w: username cannot be changed", common.ErrorValidation)
		}
		username = &u
	}

	repo := s.repomanager.Profiles(s.db)
	if err := repo.UpdateProfile(ctx, caller.ID, name, username, bio, avatarURL); err != nil {
		return nil, err
	}

	return repo.GetByID(ctx, caller.ID)
}

// PublicProfile returns the profile and its public activity counts for a
// profile page. A profile with no published activity renders with zero
// counts, not an error.
func (s *IdentityService) PublicProfile(ctx context.Context, username string) (*models.Profile, *models.ProfileStats, error) {
	repo := s.repomanager.Profiles(s.db)

	p, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	stats, err := repo.Stats(ctx, p.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading profile stats: %w", err)
	}

	return p, stats, nil
}

func (s *IdentityService) issueToken(p *models.Profile) (string, error) {
	return auth.GenerateToken(p.ID, p.Email, s.jwtSecret, s.sessionValidity)
}
