package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nkhangg/gostore/internal/hash"
	"github.com/nkhangg/gostore/internal/logging"
	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/repo"
)

const TokenTTL = time.Hour

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func NewAuthService(r *repo.GormRepo, jwtSecret []byte) *AuthService {
	return &AuthService{Repo: r, JWTSecret: jwtSecret}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if _, err := s.Repo.FindUserByEmail(ctx, email); err == nil {
		l.Warn("register_failed", "status", 409, "reason", "email already exists")
		return nil, fmt.Errorf("%w: email already exists", ErrConflict)
	} else if !errors.Is(err, repo.ErrNotFound) {
		l.Error("register_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		l.Error("register_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues an HS256 token carrying the user id
// and email, valid for one hour. Unknown email and wrong password come back
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
			return "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
		return "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	if len(s.JWTSecret) == 0 {
		// Misconfiguration, not an auth failure. Keep the log line distinct.
		l.Error("login_failed", "status", 500, "reason", "JWT_SECRET is not configured")
		return "", fmt.Errorf("%w: missing signing key", ErrInternal)
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	l.Info("login_success", "user_id", user.ID)
	return signed, nil
}
