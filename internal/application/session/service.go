// Package session issues admin API tokens.
package session

import (
	"context"
	"fmt"

	"github.com/adesao-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// TokenSigner issues signed API tokens.
type TokenSigner interface {
	Sign(username, role string) (string, error)
}

type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type service struct {
	signer       TokenSigner
	username     string
	passwordHash string
}

type ServiceDeps struct {
	Signer       TokenSigner
	Username     string
	PasswordHash string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		signer:       deps.Signer,
		username:     deps.Username,
		passwordHash: deps.PasswordHash,
	}
}

// Login verifies the admin credentials and returns a signed token. The
// password is compared against the configured bcrypt hash.
func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	if s.signer == nil || s.username == "" {
		return "", fmt.Errorf("admin login disabled: %w", domain.ErrUnauthorized)
	}
	if username != s.username {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(username, "admin")
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
