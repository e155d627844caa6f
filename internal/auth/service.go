package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"simwarga/pkg/domainerr"
	"simwarga/pkg/platform/sentinel"
)

// Service authenticates accounts and manages token lifecycle.
type Service struct {
	store  Store
	tokens *TokenService
	trl    TokenRevocationList
}

func NewService(store Store, tokens *TokenService, trl TokenRevocationList) *Service {
	return &Service{store: store, tokens: tokens, trl: trl}
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords produce the same error so the endpoint does not leak
// which accounts exist.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, domainerr.New(domainerr.CodeBadRequest, "username and password are required")
	}

	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerr.New(domainerr.CodeUnauthorized, "invalid username or password")
		}
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domainerr.New(domainerr.CodeUnauthorized, "invalid username or password")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	return &LoginResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

// Logout revokes the presented token for its remaining lifetime.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.parseClaims(tokenString)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	if err := s.trl.Revoke(ctx, claims.ID, ttl); err != nil {
		return domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}
	return nil
}

// EnsureUser creates an account if the username is not taken. Used at boot to
// seed the first adminSistem account; a concurrent boot losing the race is
// fine, the account exists either way.
func (s *Service) EnsureUser(ctx context.Context, username, password string, role Role) error {
	if username == "" || password == "" {
		return nil
	}
	if !role.Valid() {
		return domainerr.New(domainerr.CodeBadRequest, "invalid role: "+string(role))
	}

	if _, err := s.store.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}

	err = s.store.Insert(ctx, User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil && !errors.Is(err, sentinel.ErrConflict) {
		return domainerr.Wrap(domainerr.CodeInternal, "Internal server error", err)
	}
	return nil
}
