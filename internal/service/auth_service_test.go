package service

import (
	"context"
	"errors"
	"testing"

	"oraya/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockCredentialRepository struct {
	hashes map[string]string
}

func (m *mockCredentialRepository) FindPasswordHash(ctx context.Context, username string) (string, error) {
	hash, ok := m.hashes[username]
	if !ok {
		return "", repository.ErrCredentialNotFound
	}
	return hash, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestVerifyPassword(t *testing.T) {
	repo := &mockCredentialRepository{hashes: map[string]string{
		AdminUsername: mustHash(t, "admin123"),
	}}
	svc := NewAuthService(repo, "", zap.NewNop())
	ctx := context.Background()

	if err := svc.VerifyPassword(ctx, "admin123"); err != nil {
		t.Errorf("expected correct password to verify, got %v", err)
	}

	if err := svc.VerifyPassword(ctx, "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestVerifyPassword_ConfigOverride(t *testing.T) {
	// The stored credential must be ignored when an override hash is set.
	repo := &mockCredentialRepository{hashes: map[string]string{
		AdminUsername: mustHash(t, "stored-password"),
	}}
	svc := NewAuthService(repo, mustHash(t, "override-password"), zap.NewNop())
	ctx := context.Background()

	if err := svc.VerifyPassword(ctx, "override-password"); err != nil {
		t.Errorf("expected override password to verify, got %v", err)
	}

	if err := svc.VerifyPassword(ctx, "stored-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("expected stored password to be rejected, got %v", err)
	}
}

func TestVerifyPassword_MissingCredential(t *testing.T) {
	svc := NewAuthService(&mockCredentialRepository{hashes: map[string]string{}}, "", zap.NewNop())

	err := svc.VerifyPassword(context.Background(), "anything")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword when no credential exists, got %v", err)
	}
}
