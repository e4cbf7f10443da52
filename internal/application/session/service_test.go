package session

import (
	"context"
	"testing"

	"github.com/adesao-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(username, role string) (string, error) {
	args := m.Called(username, role)
	return args.String(0), args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin_HappyPath(t *testing.T) {
	signer := &mockSigner{}
	signer.On("Sign", "admin", "admin").Return("signed-token", nil)
	svc := NewService(ServiceDeps{Signer: signer, Username: "admin", PasswordHash: hashOf(t, "s3cret")})

	token, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	signer.AssertExpectations(t)
}

func TestLogin_WrongUsername(t *testing.T) {
	svc := NewService(ServiceDeps{Signer: &mockSigner{}, Username: "admin", PasswordHash: hashOf(t, "s3cret")})
	_, err := svc.Login(context.Background(), "root", "s3cret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewService(ServiceDeps{Signer: &mockSigner{}, Username: "admin", PasswordHash: hashOf(t, "s3cret")})
	_, err := svc.Login(context.Background(), "admin", "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_DisabledWithoutSigner(t *testing.T) {
	svc := NewService(ServiceDeps{Username: "admin", PasswordHash: hashOf(t, "s3cret")})
	_, err := svc.Login(context.Background(), "admin", "s3cret")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
