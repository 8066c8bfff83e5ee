package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/JonMunkholm/leadpipe/internal/auth"
)

// CreateUser persists a new user. A duplicate email surfaces as
// auth.ErrEmailTaken.
func (s *Store) CreateUser(ctx context.Context, user auth.User) error {
	_, err := s.db.Exec(ctx, `
INSERT INTO users (id, email, password_hash, created_at)
VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (auth.User, error) {
	return s.scanUser(s.db.QueryRow(ctx, `
SELECT id, email, password_hash, created_at FROM users WHERE id = $1`, id))
}

// GetUserByEmail loads a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	return s.scanUser(s.db.QueryRow(ctx, `
SELECT id, email, password_hash, created_at FROM users WHERE email = $1`, email))
}

func (s *Store) scanUser(row pgx.Row) (auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
