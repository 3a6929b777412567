package domain

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"github.com/Vovarama1992/reels-analyzer/internal/ports"
)

var ErrInvalidPassword = errors.New("invalid password")

type authService struct {
	secret   string
	password string
}

// NewAuthService returns an authenticator that is disabled when secret is
// empty; every token is then accepted.
func NewAuthService(secret, password string) ports.AuthService {
	return &authService{
		secret:   secret,
		password: password,
	}
}

func (s *authService) Enabled() bool { return s.secret != "" }

func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if !s.Enabled() {
		return "", errors.New("auth disabled")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", ErrInvalidPassword
	}
	return s.sign("allowed"), nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (bool, error) {
	if !s.Enabled() {
		return true, nil
	}
	return hmac.Equal([]byte(token), []byte(s.sign("allowed"))), nil
}

func (s *authService) sign(msg string) string {
	h := hmac.New(sha256.New, []byte(s.secret))
	h.Write([]byte(msg))
	return hex.EncodeToString(h.Sum(nil))
}
