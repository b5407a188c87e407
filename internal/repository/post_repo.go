package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog_api/internal/models"
)

type PostSQLite struct {
	db *sql.DB
}

func NewPostSQLite(db *sql.DB) *PostSQLite { return &PostSQLite{db: db} }

var _ PostRepo = (*PostSQLite)(nil)

const (
	insertPostSQL     = `INSERT INTO posts (content, user_id) VALUES (?, ?)`
	selectPostColumns = `SELECT id, content, user_id FROM posts`
	selectPostByIDSQL = selectPostColumns + ` WHERE id = ?`
	selectPostsSQL    = selectPostColumns + ` ORDER BY id`
	selectPostsByUser = selectPostColumns + ` WHERE user_id = ? ORDER BY id`
	updatePostSQL     = `UPDATE posts SET content = ? WHERE id = ?`
	deletePostSQL     = `DELETE FROM posts WHERE id = ?`
	deleteAllPostsSQL = `DELETE FROM posts`
)

// Create inserts a post. A missing owner surfaces as ErrReference.
func (r *PostSQLite) Create(ctx context.Context, p models.Post) (int, error) {
	res, err := r.db.ExecContext(ctx, insertPostSQL, p.Content, p.UserID)
	if err != nil {
		return 0, fmt.Errorf("insert post for user %d: %w", p.UserID, classify(err))
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for post: %w", err)
	}
	return int(lastID), nil
}

// GetByID returns (nil, nil) if the post does not exist.
func (r *PostSQLite) GetByID(ctx context.Context, id int) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, selectPostByIDSQL, id).Scan(&p.ID, &p.Content, &p.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %d: %w", id, err)
	}
	return &p, nil
}

func (r *PostSQLite) List(ctx context.Context) ([]models.Post, error) {
	return r.query(ctx, selectPostsSQL)
}

func (r *PostSQLite) ListByUser(ctx context.Context, userID int) ([]models.Post, error) {
	return r.query(ctx, selectPostsByUser, userID)
}

func (r *PostSQLite) query(ctx context.Context, q string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Post, 0, 16)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Content, &p.UserID); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

// Update persists the content only; ownership never changes.
func (r *PostSQLite) Update(ctx context.Context, p models.Post) error {
	res, err := r.db.ExecContext(ctx, updatePostSQL, p.Content, p.ID)
	if err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	return nil
}

func (r *PostSQLite) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deletePostSQL, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if err := checkAffected(res.RowsAffected()); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}

func (r *PostSQLite) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteAllPostsSQL); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	return nil
}
