package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/dbx"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

// postSelect joins author display fields and per-post aggregates. $1 is the
// viewer id (empty string for anonymous readers).
const postSelect = `
	SELECT p.id, p.title, p.content, p.slug, p.image_url, p.author_id, p.published,
	       p.created_at, p.updated_at,
	       a.name, a.username, a.avatar_url, a.is_verified,
	       (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id),
	       EXISTS(SELECT 1 FROM likes l2 WHERE l2.post_id = p.id AND l2.author_id::text = $1)
	FROM posts p
	JOIN profiles a ON a.id = p.author_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanPost(row interface{ Scan(dest ...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Slug, &p.ImageURL, &p.AuthorID, &p.Published,
		&p.CreatedAt, &p.UpdatedAt,
		&p.AuthorName, &p.AuthorUsername, &p.AuthorAvatar, &p.AuthorVerified,
		&p.LikeCount, &p.CommentCount, &p.LikedByViewer)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (id, title, content, slug, image_url, author_id, published)
		 VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Content, p.Slug, p.ImageURL, p.AuthorID).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	p.Published = false
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := postSelect + ` WHERE p.id = $2`

	p, err := scanPost(r.db.QueryRowContext(ctx, query, "", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug, viewerID string) (*models.Post, error) {
	query := postSelect + ` WHERE p.slug = $2`

	p, err := scanPost(r.db.QueryRowContext(ctx, query, viewerID, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// Update is a conditional write: the WHERE clause carries the ownership
// check so a non-owner affects zero rows instead of racing a prior read.
// Published is cleared in the same statement; every edit goes back to
// review.
func (r *PostgresRepository) Update(ctx context.Context, id, authorID, title string, content *string, imageURL string) (int64, error) {

	query :=
		`UPDATE posts
		 SET title = $3, content = $4, image_url = $5, published = FALSE, updated_at = now()
		 WHERE id = $1 AND author_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, authorID, title, content, imageURL)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) Approve(ctx context.Context, id string) (bool, error) {

	query :=
		`UPDATE posts
		 SET published = TRUE, updated_at = now()
		 WHERE id = $1 AND NOT published`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {

	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) ListPublished(ctx context.Context, viewerID string) ([]*models.Post, error) {
	query := postSelect + ` WHERE p.published ORDER BY p.created_at DESC`
	return r.list(ctx, query, viewerID)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Post, error) {
	query := postSelect + ` WHERE p.author_id = $2 ORDER BY p.created_at DESC`
	return r.list(ctx, query, authorID, authorID)
}

func (r *PostgresRepository) ListPending(ctx context.Context) ([]*models.Post, error) {
	query := postSelect + ` WHERE NOT p.published ORDER BY p.created_at ASC`
	return r.list(ctx, query, "")
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) PendingCount(ctx context.Context) (int64, error) {

	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE NOT published`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
