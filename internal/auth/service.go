package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foryourmind/server/internal/common"
	"github.com/foryourmind/server/internal/config"
	"github.com/foryourmind/server/internal/logging"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
)

// TokenPair is a freshly issued access/refresh token couple.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service owns the authentication flows on top of the storage contract.
type Service struct {
	store      storage.Store
	log        logging.Logger
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(store storage.Store, cfg config.JWTConfig, log logging.Logger) *Service {
	return &Service{
		store:      store,
		log:        log.With("component", "auth"),
		jwtSecret:  []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL(),
		refreshTTL: cfg.RefreshTTL(),
	}
}

// RefreshTTL exposes the refresh token lifetime for cookie expiry.
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

// Register creates the account, provisions its default wellness assessment
// and issues a token pair. A taken email surfaces as common.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password, displayName, role string) (*models.User, *TokenPair, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	if role == "" {
		role = models.RoleIndividual
	}

	user, err := s.store.CreateUser(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         role,
	})
	if err != nil {
		return nil, nil, err
	}

	if _, err := s.store.EnsureDefaultAssessment(ctx, user.ID); err != nil {
		s.log.Warn(ctx, "default assessment provisioning failed", "user_id", user.ID, "error", err)
	}

	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.store.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, common.ErrInternal
	}

	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates the refresh token: the presented token is deleted and a new
// pair is issued, so a replayed token fails. An expired token is deleted as
// well before the error is returned.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	token, err := s.store.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnauthorized
		}
		return nil, nil, common.ErrInternal
	}

	if token.ExpiresAt.Before(time.Now()) {
		if err := s.store.DeleteRefreshToken(ctx, refreshToken); err != nil {
			s.log.Warn(ctx, "expired refresh token cleanup failed", "error", err)
		}
		return nil, nil, common.ErrRefreshTokenExpired
	}

	user, err := s.store.GetUser(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnauthorized
		}
		return nil, nil, common.ErrInternal
	}

	if err := s.store.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, common.ErrInternal
	}
	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Logout revokes the refresh token. Revoking an unknown token succeeds.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.store.DeleteRefreshToken(ctx, refreshToken)
}

// ValidateAccess verifies an access token and returns its claims.
func (s *Service) ValidateAccess(tokenString string) (*Claims, error) {
	return ValidateToken(tokenString, s.jwtSecret)
}

func (s *Service) generateTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, err := GenerateToken(user.ID, user.Email, user.Role, s.jwtSecret, s.accessTTL)
	if err != nil {
		return nil, common.ErrInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrInternal
	}

	err = s.store.CreateRefreshToken(ctx, &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.refreshTTL),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, common.ErrInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
