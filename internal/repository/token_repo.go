package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog_api/internal/models"
)

type TokenSQLite struct {
	db *sql.DB
}

func NewTokenSQLite(db *sql.DB) *TokenSQLite { return &TokenSQLite{db: db} }

var _ TokenRepo = (*TokenSQLite)(nil)

const (
	insertTokenSQL = `INSERT INTO tokens (token, user_id, created_at) VALUES (?, ?, ?)`

	selectUserByTokenSQL = `
		SELECT u.id, u.name, u.location, u.age, u.email, u.password_hash
		FROM tokens t JOIN users u ON u.id = t.user_id
		WHERE t.token = ?
	`

	deleteTokenSQL        = `DELETE FROM tokens WHERE token = ?`
	deleteTokensByUserSQL = `DELETE FROM tokens WHERE user_id = ?`
)

// Create stores a token. CreatedAt defaults to now (UTC).
func (r *TokenSQLite) Create(ctx context.Context, t models.Token) (int, error) {
	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	} else {
		createdAt = createdAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertTokenSQL, t.Value, t.UserID, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert token for user %d: %w", t.UserID, classify(err))
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for token: %w", err)
	}
	return int(lastID), nil
}

// GetUserByToken resolves the user bound to token. Returns (nil, nil) if the token is unknown.
func (r *TokenSQLite) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByTokenSQL, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		// never put the token itself into the error
		return nil, fmt.Errorf("select user by token: %w", err)
	}
	return &u, nil
}

func (r *TokenSQLite) Delete(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx, deleteTokenSQL, token)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *TokenSQLite) DeleteByUser(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, deleteTokensByUserSQL, userID); err != nil {
		return fmt.Errorf("delete tokens of user %d: %w", userID, err)
	}
	return nil
}
