package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/repomanager"
)

// searchLimit caps the typeahead result size.
const searchLimit = 5

// DirectoryService backs the user-search typeahead: an unranked,
// unpaginated substring match over name or username.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDirectoryService(db *sql.DB, m repomanager.RepositoryManager) *DirectoryService {
	return &DirectoryService{db: db, repomanager: m}
}

// Search requires at least one non-space character and returns at most five
// profiles in storage order. Users without a username are matched by name
// so they remain discoverable.
func (s *DirectoryService) Search(ctx context.Context, query string) ([]*models.Profile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", common.ErrorValidation)
	}

	list, err := s.repomanager.Profiles(s.db).Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}

	return list, nil
}
