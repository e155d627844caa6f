package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"simwarga/internal/platform/middleware"
	"simwarga/pkg/domainerr"
)

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 access tokens.
type TokenService struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewTokenService(signingKey string, tokenTTL time.Duration) *TokenService {
	return &TokenService{
		signingKey: []byte(signingKey),
		issuer:     "simwarga",
		tokenTTL:   tokenTTL,
	}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.tokenTTL
}

// Generate signs a token for the given user. Every token carries a fresh jti
// so it can be revoked individually at logout.
func (s *TokenService) Generate(user *User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})

	return token.SignedString(s.signingKey)
}

// ValidateToken implements middleware.JWTValidator.
func (s *TokenService) ValidateToken(tokenString string) (*middleware.JWTClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerr.New(domainerr.CodeUnauthorized, "token has expired")
		}
		return nil, domainerr.New(domainerr.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domainerr.New(domainerr.CodeUnauthorized, "invalid token claims")
	}

	return &middleware.JWTClaims{
		UserID:   claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
		JTI:      claims.ID,
	}, nil
}

// parseClaims revalidates a raw token and returns the internal claims,
// including expiry, which the middleware-facing view drops.
func (s *TokenService) parseClaims(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domainerr.New(domainerr.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, domainerr.New(domainerr.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
