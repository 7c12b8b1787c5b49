package likes

import (
	"context"
	"fmt"

	"github.com/Bangbenzzz/blogerz-sub000/internal/dbx"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, l *models.Like) (bool, error) {

	query :=
		`INSERT INTO likes (id, post_id, author_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (post_id, author_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, l.ID, l.PostID, l.AuthorID)
	if err != nil {
		// a concurrent insert can still surface the constraint directly
		if dbx.IsUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, postID, authorID string) (int64, error) {

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE post_id = $1 AND author_id = $2`, postID, authorID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) CountByPost(ctx context.Context, postID string) (int64, error) {

	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, postID, authorID string) (bool, error) {

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE post_id = $1 AND author_id = $2)`,
		postID, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) DeleteByPost(ctx context.Context, postID string) error {

	_, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
