package comments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/dbx"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

const commentSelect = `
	SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
	       a.name, a.username, a.avatar_url, a.email, a.role
	FROM comments c
	JOIN profiles a ON a.id = c.author_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanComment(row interface{ Scan(dest ...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt,
		&c.AuthorName, &c.AuthorUsername, &c.AuthorAvatar, &c.AuthorEmail, &c.AuthorRole)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {

	query :=
		`INSERT INTO comments (id, post_id, author_id, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, c.ID, c.PostID, c.AuthorID, c.Content).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`

	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := commentSelect + ` WHERE c.post_id = $1 ORDER BY c.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (int64, error) {
	return r.exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, authorID string) (int64, error) {
	return r.exec(ctx, `DELETE FROM comments WHERE id = $1 AND author_id = $2`, id, authorID)
}

func (r *PostgresRepository) DeleteByPost(ctx context.Context, postID string) error {
	_, err := r.exec(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	return err
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
