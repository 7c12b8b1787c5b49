package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// InteractionService implements likes and comments on posts.
type InteractionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	gate        *authz.Gate
}

func NewInteractionService(db *sql.DB, m repomanager.RepositoryManager, gate *authz.Gate) *InteractionService {
	return &InteractionService{db: db, repomanager: m, gate: gate}
}

// ToggleLike creates a like if absent and removes it otherwise. The unique
// constraint on (post_id, author_id) makes concurrent double submission by
// the same user converge on at most one row.
func (s *InteractionService) ToggleLike(ctx context.Context, caller *models.Profile, postID string) (bool, int64, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return false, 0, err
	}

	if err := s.requireVisiblePost(ctx, caller, postID); err != nil {
		return false, 0, err
	}

	likeRepo := s.repomanager.Likes(s.db)

	created, err := likeRepo.InsertIfAbsent(ctx, &models.Like{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: caller.ID,
	})
	if err != nil {
		return false, 0, fmt.Errorf("error toggling like: %w", err)
	}

	liked := created
	if !created {
		if _, err := likeRepo.Delete(ctx, postID, caller.ID); err != nil {
			return false, 0, fmt.Errorf("error toggling like: %w", err)
		}
		liked = false
	}

	count, err := likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return false, 0, fmt.Errorf("error counting likes: %w", err)
	}

	return liked, count, nil
}

// AddComment stores a comment and returns it with the denormalized author
// display fields for optimistic UI append. The admin tag is derived here,
// never persisted.
func (s *InteractionService) AddComment(ctx context.Context, caller *models.Profile, postID, content string) (*models.Comment, error) {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment is empty", common.ErrorValidation)
	}

	if err := s.requireVisiblePost(ctx, caller, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: caller.ID,
		Content:  content,
	}

	created, err := s.repomanager.Comments(s.db).Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	created.AuthorName = caller.Name
	created.AuthorUsername = caller.Username
	created.AuthorAvatar = caller.AvatarURL
	created.AuthorEmail = caller.Email
	created.AuthorRole = caller.Role
	created.IsAdmin = s.gate.IsAdmin(caller)

	return created, nil
}

// ListComments returns a post's comments with the admin tag derived per
// author.
func (s *InteractionService) ListComments(ctx context.Context, caller *models.Profile, postID string) ([]*models.Comment, error) {
	if err := s.requireVisiblePost(ctx, caller, postID); err != nil {
		return nil, err
	}

	list, err := s.repomanager.Comments(s.db).ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	for _, c := range list {
		c.IsAdmin = s.gate.IsAdmin(&models.Profile{Email: c.AuthorEmail, Role: c.AuthorRole})
	}

	return list, nil
}

// DeleteComment removes a comment. Owners use a conditional delete so a
// non-owner's attempt affects zero rows; the zero-row case is then
// classified as NotFound or Forbidden.
func (s *InteractionService) DeleteComment(ctx context.Context, caller *models.Profile, commentID string) error {
	if err := s.gate.RequireAuthenticated(caller); err != nil {
		return err
	}

	repo := s.repomanager.Comments(s.db)

	if s.gate.IsAdmin(caller) {
		n, err := repo.Delete(ctx, commentID)
		if err != nil {
			return fmt.Errorf("error deleting comment: %w", err)
		}
		if n == 0 {
			return common.ErrorNotFound
		}
		return nil
	}

	n, err := repo.DeleteOwned(ctx, commentID, caller.ID)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if n == 0 {
		if _, err := repo.GetByID(ctx, commentID); err != nil {
			return err // NotFound
		}
		return common.ErrorForbidden
	}

	return nil
}

// requireVisiblePost checks the post exists and is visible to the caller.
func (s *InteractionService) requireVisiblePost(ctx context.Context, caller *models.Profile, postID string) error {
	post, err := s.repomanager.Posts(s.db).GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading post: %w", err)
	}

	if post.Published {
		return nil
	}
	if caller != nil && (caller.ID == post.AuthorID || s.gate.IsAdmin(caller)) {
		return nil
	}
	return common.ErrorNotFound
}
