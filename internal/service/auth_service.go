package service

import (
	"context"
	"errors"
	"fmt"

	"oraya/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminUsername is the single credential row the shared admin password lives under.
const AdminUsername = "admin"

// AuthService defines the interface for admin password verification
type AuthService interface {
	VerifyPassword(ctx context.Context, candidate string) error
}

type authService struct {
	credentialRepo repository.CredentialRepository
	hashOverride   string
	logger         *zap.Logger
}

// NewAuthService creates a new instance of AuthService. A non-empty
// hashOverride (from configuration) takes precedence over the stored
// credential, matching the environment-variable escape hatch of the admin
// panel deployment.
func NewAuthService(credentialRepo repository.CredentialRepository, hashOverride string, logger *zap.Logger) AuthService {
	return &authService{
		credentialRepo: credentialRepo,
		hashOverride:   hashOverride,
		logger:         logger,
	}
}

// VerifyPassword compares candidate against the stored bcrypt hash. bcrypt's
// comparison is salted, slow and constant-time. On success the caller grants
// the admin capability flag to its session.
func (s *authService) VerifyPassword(ctx context.Context, candidate string) error {
	hash := s.hashOverride
	if hash == "" {
		var err error
		hash, err = s.credentialRepo.FindPasswordHash(ctx, AdminUsername)
		if err != nil {
			if errors.Is(err, repository.ErrCredentialNotFound) {
				s.logger.Warn("admin credential missing")
				return ErrInvalidPassword
			}
			return fmt.Errorf("failed to load admin credential: %w", err)
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)); err != nil {
		return ErrInvalidPassword
	}

	return nil
}
