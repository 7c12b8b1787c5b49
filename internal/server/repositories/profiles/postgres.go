package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bangbenzzz/blogerz-sub000/internal/common"
	"github.com/Bangbenzzz/blogerz-sub000/internal/dbx"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/models"
)

const profileColumns = `id, email, name, username, bio, avatar_url, role, is_verified, is_banned, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanProfile(row interface{ Scan(dest ...any) error }) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Username, &p.Bio, &p.AvatarURL,
		&p.Role, &p.IsVerified, &p.IsBanned, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile, passwordHash string) (*models.Profile, error) {

	query :=
		`INSERT INTO profiles (id, email, password_hash, name, role)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING ` + profileColumns

	created, err := scanProfile(r.db.QueryRowContext(ctx, query,
		p.ID, p.Email, passwordHash, p.Name, p.Role))

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

// Upsert creates the profile row for an identity if it does not exist yet
// and refreshes the email otherwise. The role and flags are never touched
// by the upsert, so repeated sign-ins cannot downgrade an admin.
func (r *PostgresRepository) Upsert(ctx context.Context, id, email, name string) (*models.Profile, error) {

	query :=
		`INSERT INTO profiles (id, email, password_hash, name)
		 VALUES ($1, $2, '', $3)
		 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, updated_at = now()
		 RETURNING ` + profileColumns

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id, email, name))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) GetCredentials(ctx context.Context, email string) (*Credentials, error) {
	query := `SELECT id, password_hash FROM profiles WHERE lower(email) = lower($1)`

	c := &Credentials{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, id, name string, username *string, bio, avatarURL string) error {

	query :=
		`UPDATE profiles
		 SET name = $2, username = COALESCE($3, username), bio = $4, avatar_url = $5, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, name, username, bio, avatarURL)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// set-to-value updates: applying the same state twice is a no-op success.

func (r *PostgresRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	return r.setFlag(ctx, `UPDATE profiles SET is_banned = $2, updated_at = now() WHERE id = $1`, id, banned)
}

func (r *PostgresRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return r.setFlag(ctx, `UPDATE profiles SET is_verified = $2, updated_at = now() WHERE id = $1`, id, verified)
}

func (r *PostgresRepository) SetRole(ctx context.Context, id, role string) error {
	return r.setFlag(ctx, `UPDATE profiles SET role = $2, updated_at = now() WHERE id = $1`, id, role)
}

func (r *PostgresRepository) setFlag(ctx context.Context, query, id string, value any) error {
	res, err := r.db.ExecContext(ctx, query, id, value)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// Search matches a case-insensitive substring over name or username.
// Profiles without a username are still matched by name so newly joined
// users stay discoverable.
func (r *PostgresRepository) Search(ctx context.Context, query string, limit int) ([]*models.Profile, error) {

	q := `SELECT ` + profileColumns + `
		 FROM profiles
		 WHERE name ILIKE '%' || $1 || '%' OR username ILIKE '%' || $1 || '%'
		 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, q, query, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func collectProfiles(rows *sql.Rows) ([]*models.Profile, error) {
	result := []*models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
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

// Stats returns the published-post, received-like, and received-comment
// counts for a profile page. Only published posts contribute.
func (r *PostgresRepository) Stats(ctx context.Context, id string) (*models.ProfileStats, error) {

	query :=
		`SELECT
		   (SELECT COUNT(*) FROM posts WHERE author_id = $1 AND published),
		   (SELECT COUNT(*) FROM likes l JOIN posts p ON p.id = l.post_id WHERE p.author_id = $1 AND p.published),
		   (SELECT COUNT(*) FROM comments c JOIN posts p ON p.id = c.post_id WHERE p.author_id = $1 AND p.published)`

	s := &models.ProfileStats{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.PostCount, &s.LikeCount, &s.CommentCount)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}
