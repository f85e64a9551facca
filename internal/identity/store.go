package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const timeLayout = time.RFC3339Nano

// Store persists users and password-reset tokens in SQLite.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name, email, password_hash, created_at FROM users WHERE id = ?`, id.String())
	return scanUser(row)
}

// CreateResetToken stores a single-use password reset token.
func (s *Store) CreateResetToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO password_resets (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID.String(), expiresAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// ResetPassword consumes token and sets the user's password hash in one transaction.
func (s *Store) ResetPassword(ctx context.Context, token, passwordHash string, now time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var (
		userID    string
		expiresAt string
		usedAt    sql.NullString
	)
	err = tx.QueryRowContext(ctx,
		`SELECT user_id, expires_at, used_at FROM password_resets WHERE token = ?`, token,
	).Scan(&userID, &expiresAt, &usedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select reset token: %w", err)
	}
	if usedAt.Valid {
		return ErrTokenConsumed
	}
	exp, err := time.Parse(timeLayout, expiresAt)
	if err != nil {
		return fmt.Errorf("parse expires_at: %w", err)
	}
	if !now.Before(exp) {
		return ErrTokenExpired
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE password_resets SET used_at = ? WHERE token = ?`, now.UTC().Format(timeLayout), token,
	); err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID,
	); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return tx.Commit()
}

func scanUser(row *sql.Row) (*User, error) {
	var (
		u         User
		id        string
		createdAt string
	)
	err := row.Scan(&id, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if u.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	if u.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
