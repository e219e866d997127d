package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArtemSukhotko/ai-astro-tarot/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const revokedKeyPrefix = "auth:revoked:"

type tokenClaims struct {
	jwt.RegisteredClaims
}

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + tokenID
}

func (s *Service) issue(user *domain.User) (*domain.Session, error) {
	now := s.Now()
	expires := now.Add(s.Cfg.TokenTTL)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Cfg.Issuer,
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.Cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.Session{
		Token:     signed,
		ExpiresAt: expires.UTC(),
		User:      user,
	}, nil
}

func (s *Service) parse(token string) (*domain.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.Cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.Cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: token invalid", domain.ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrUnauthorized)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: token has no id", domain.ErrUnauthorized)
	}

	return &domain.TokenClaims{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Authenticate проверяет токен и возвращает его владельца
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, *domain.TokenClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, nil, domain.WrapBusinessError(err)
	}

	revoked, err := s.Cache.Exists(ctx, revokedKey(claims.TokenID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, nil, domain.WrapBusinessError(fmt.Errorf("%w: token revoked", domain.ErrUnauthorized))
	}

	user, err := s.UserRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.WrapBusinessError(fmt.Errorf("%w: user no longer exists", domain.ErrUnauthorized))
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, claims, nil
}

// Logout отзывает токен до истечения его срока
func (s *Service) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	ttl := claims.ExpiresAt.Sub(s.Now())
	if ttl <= 0 {
		return nil
	}
	if err := s.Cache.Set(ctx, revokedKey(claims.TokenID), claims.UserID.String(), ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.Log.Info("user logged out", "user_id", claims.UserID)
	return nil
}
