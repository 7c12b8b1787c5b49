package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/dbx"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/repomanager"
	"github.com/Bangbenzzz/blogerz-sub000/internal/slugx"
	"github.com/google/uuid"
)

// slugAttempts bounds retries when a derived slug collides. The random
// suffix makes collisions vanishingly rare; the loop exists so a collision
// is retried instead of surfaced.
const slugAttempts = 3

// ModerationService owns the post lifecycle and its visibility rules:
// a post is created pending, edits send it back to review, and only an
// admin can publish it.
type ModerationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gate        *authz.Gate
}

func NewModerationService(db *sql.DB, m repomanager.RepositoryManager, gate *authz.Gate) *ModerationService {
	return &ModerationService{db: db, repomanager: m, gate: gate}
}

// Create stores a new post in the pending state.
func (s *ModerationService) Create(ctx context.Context, caller *models.Profile, title string, content *string, imageURL string) (*models.Post, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	repo := s.repomanager.Posts(s.db)

	var created *models.Post
	var err error
	for i := 0; i < slugAttempts; i++ {
		post := &models.Post{
			ID:       uuid.NewString(),
			Title:    title,
			Content:  content,
			Slug:     slugx.Make(title),
			ImageURL: imageURL,
			AuthorID: caller.ID,
		}
		created, err = repo.Create(ctx, post)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, common.ErrorConflict) {
			return nil, fmt.Errorf("error creating post: %w", err)
		}
	}

	return nil, fmt.Errorf("error creating post: %w", err)
}

// Get returns a post by slug. A pending post is visible only to its author
// and to admins; everyone else gets NotFound so existence does not leak.
func (s *ModerationService) Get(ctx context.Context, caller *models.Profile, slug string) (*models.Post, error) {
	viewerID := ""
	if caller != nil {
		viewerID = caller.ID
	}

	post, err := s.repomanager.Posts(s.db).GetBySlug(ctx, slug, viewerID)
	if err != nil {
		return nil, err
	}

	if !post.Published && !s.canModerate(caller, post.AuthorID) {
		return nil, common.ErrorNotFound
	}

	return post, nil
}

// Update rewrites an owned post and sends it back to review: every
// successful edit clears the published flag. Ownership travels in the
// UPDATE's WHERE clause; a zero-row result is classified afterwards.
func (s *ModerationService) Update(ctx context.Context, caller *models.Profile, postID, title string, content *string, imageURL string) (*models.Post, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	repo := s.repomanager.Posts(s.db)

	n, err := repo.Update(ctx, postID, caller.ID, title, content, imageURL)
	if err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}
	if n == 0 {
		if _, err := repo.GetByID(ctx, postID); err != nil {
			return nil, err // NotFound
		}
		return nil, common.ErrorForbidden
	}

	return repo.GetByID(ctx, postID)
}

// Approve publishes a pending post. Approving an already-published post is
// an idempotent no-op: changed=false, no error, no duplicate side effects.
func (s *ModerationService) Approve(ctx context.Context, caller *models.Profile, postID string) (bool, error) {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return false, err
	}

	repo := s.repomanager.Posts(s.db)

	changed, err := repo.Approve(ctx, postID)
	if err != nil {
		return false, fmt.Errorf("error approving post: %w", err)
	}
	if !changed {
		if _, err := repo.GetByID(ctx, postID); err != nil {
			return false, err // NotFound
		}
	}

	return changed, nil
}

// Delete removes a post together with its comments and likes in one
// transaction, so a partial failure cannot leave orphaned rows.
func (s *ModerationService) Delete(ctx context.Context, caller *models.Profile, postID string) error {
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.gate.RequireOwnerOrAdmin(caller, post.AuthorID); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Likes(tx).DeleteByPost(ctx, postID); err != nil {
			return err
		}
		if err := s.repomanager.Comments(tx).DeleteByPost(ctx, postID); err != nil {
			return err
		}
		n, err := s.repomanager.Posts(tx).Delete(ctx, postID)
		if err != nil {
			return err
		}
		if n == 0 {
			return common.ErrorNotFound
		}
		return nil
	})
}

// ListPublished returns the public feed.
func (s *ModerationService) ListPublished(ctx context.Context, caller *models.Profile) ([]*models.Post, error) {
	viewerID := ""
	if caller != nil {
		viewerID = caller.ID
	}
	return s.repomanager.Posts(s.db).ListPublished(ctx, viewerID)
}

// ListMine returns the caller's posts including pending ones.
func (s *ModerationService) ListMine(ctx context.Context, caller *models.Profile) ([]*models.Post, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return nil, err
	}
	return s.repomanager.Posts(s.db).ListByAuthor(ctx, caller.ID)
}

// ListPending returns the review queue, oldest first.
func (s *ModerationService) ListPending(ctx context.Context, caller *models.Profile) ([]*models.Post, error) {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.repomanager.Posts(s.db).ListPending(ctx)
}

// PendingCount feeds the polled admin notification badge.
func (s *ModerationService) PendingCount(ctx context.Context, caller *models.Profile) (int64, error) {
	if err := s.gate.RequireAdmin(caller); err != nil {
		return 0, err
	}
	return s.repomanager.Posts(s.db).PendingCount(ctx)
}

func (s *ModerationService) canModerate(caller *models.Profile, authorID string) bool {
	if caller == nil {
		return false
	}
	return caller.ID == authorID || s.gate.IsAdmin(caller)
}
