package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stayfinder/stayfinder-api/internal/domain"
	"github.com/stayfinder/stayfinder-api/internal/repo/postgres"
	"github.com/stayfinder/stayfinder-api/pkg/auth"
	"github.com/stayfinder/stayfinder-api/pkg/config"
)

// CredentialService hashes and verifies passwords and issues and verifies the
// bearer tokens that gate mutating operations.
type CredentialService interface {
	Login(ctx context.Context, req *domain.LoginRequest) (string, error)
	HashPassword(plaintext string) (string, error)
	VerifyPassword(plaintext, hash string) bool
	IssueToken(principalID, username string) (string, error)
	VerifyToken(token string) (*auth.Claims, error)
}

type credentialService struct {
	users postgres.UserRepository
	cfg   *config.Config
}

func NewCredentialService(users postgres.UserRepository, cfg *config.Config) CredentialService {
	return &credentialService{users: users, cfg: cfg}
}

func (s *credentialService) Login(ctx context.Context, req *domain.LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", domain.ValidationError("username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrUnknownUser
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.VerifyPassword(req.Password, user.PasswordHash) {
		return "", domain.ErrWrongPassword
	}

	return s.IssueToken(user.ID, user.Username)
}

func (s *credentialService) HashPassword(plaintext string) (string, error) {
	return auth.HashPassword(plaintext, s.cfg.Auth.BcryptCost)
}

func (s *credentialService) VerifyPassword(plaintext, hash string) bool {
	return auth.VerifyPassword(plaintext, hash)
}

func (s *credentialService) IssueToken(principalID, username string) (string, error) {
	return auth.NewAccessToken(principalID, username, s.cfg.Auth.JWTSecret, s.cfg.Auth.TokenTTL)
}

func (s *credentialService) VerifyToken(token string) (*auth.Claims, error) {
	return auth.Parse(token, s.cfg.Auth.JWTSecret)
}
