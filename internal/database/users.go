package database

import (
	"context"
	"errors"

	"vidtube/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateUser = errors.New("user with the username or email already exists")

const userColumns = `
	id,
	username,
	email,
	full_name,
	password_hash,
	avatar_url,
	cover_image_url,
	refresh_token,
	created_at,
	updated_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

type CreateUserParams struct {
	Username      string
	Email         string
	FullName      string
	PasswordHash  string
	AvatarURL     string
	CoverImageURL *string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, full_name, password_hash, avatar_url, cover_image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	row := q.db.QueryRow(ctx, query,
		arg.Username,
		arg.Email,
		arg.FullName,
		arg.PasswordHash,
		arg.AvatarURL,
		arg.CoverImageURL,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return user, nil
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(q.db.QueryRow(ctx, query, id))
}

// GetUserByUsernameOrEmail matches either identifier. Callers pass both values
// lowercased; an empty identifier matches nothing.
func (q *Queries) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2 LIMIT 1`
	return scanUser(q.db.QueryRow(ctx, query, username, email))
}

// SetRefreshToken overwrites the single refresh-token slot. Used on login,
// where any previously active session is superseded.
func (q *Queries) SetRefreshToken(ctx context.Context, userID int64, token string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`
	_, err := q.db.Exec(ctx, query, userID, token)
	return err
}

// RotateRefreshToken swaps the stored refresh token only if it still equals
// oldToken. Returns false when the slot was already rotated or cleared, which
// callers must treat as a reused token.
func (q *Queries) RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) (bool, error) {
	query := `
		UPDATE users
		SET refresh_token = $3, updated_at = now()
		WHERE id = $1 AND refresh_token = $2
	`
	res, err := q.db.Exec(ctx, query, userID, oldToken, newToken)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

// ClearRefreshToken is idempotent; clearing an already empty slot is fine.
func (q *Queries) ClearRefreshToken(ctx context.Context, userID int64) error {
	query := `UPDATE users SET refresh_token = NULL, updated_at = now() WHERE id = $1`
	_, err := q.db.Exec(ctx, query, userID)
	return err
}

func (q *Queries) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`
	_, err := q.db.Exec(ctx, query, userID, passwordHash)
	return err
}

func (q *Queries) UpdateAccountDetails(ctx context.Context, userID int64, fullName, email string) (*models.User, error) {
	query := `
		UPDATE users
		SET full_name = $2, email = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns

	user, err := scanUser(q.db.QueryRow(ctx, query, userID, fullName, email))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return user, nil
}

func (q *Queries) UpdateUserAvatar(ctx context.Context, userID int64, avatarURL string) (*models.User, error) {
	query := `
		UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(q.db.QueryRow(ctx, query, userID, avatarURL))
}

func (q *Queries) UpdateUserCoverImage(ctx context.Context, userID int64, coverImageURL string) (*models.User, error) {
	query := `
		UPDATE users SET cover_image_url = $2, updated_at = now() WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(q.db.QueryRow(ctx, query, userID, coverImageURL))
}
