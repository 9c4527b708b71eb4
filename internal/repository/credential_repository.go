package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
)

// CredentialRepository defines the interface for admin credential lookup.
// There is a single shared admin password, not a user/roles system.
type CredentialRepository interface {
	FindPasswordHash(ctx context.Context, username string) (string, error)
}

type credentialRepository struct {
	db *sql.DB
}

// NewCredentialRepository creates a new instance of CredentialRepository
func NewCredentialRepository(db *sql.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// FindPasswordHash retrieves the bcrypt hash stored for a username
func (r *credentialRepository) FindPasswordHash(ctx context.Context, username string) (string, error) {
	query := `SELECT password_hash FROM admin_credentials WHERE username = $1`

	var hash string
	err := r.db.QueryRowContext(ctx, query, username).Scan(&hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrCredentialNotFound
		}
		return "", fmt.Errorf("failed to find credential: %w", err)
	}

	return hash, nil
}
