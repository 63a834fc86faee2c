package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/anonto42/night-walker/backend/internal/util"
	"github.com/golang-jwt/jwt/v4"
)

// TokenIssuer signs and parses HS256 session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  util.Clock
}

// NewTokenIssuer checks expiry against clock, the same clock that stamps issued tokens
func NewTokenIssuer(secret string, ttl time.Duration, clock util.Clock) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, clock: clock}
}

// Issue generates a JWT bound to userID and sessionID
func (t *TokenIssuer) Issue(userID, sessionID string, now time.Time) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and expiry of tokenString
func (t *TokenIssuer) Parse(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v: %w", err, apperrors.ErrUnauthenticated)
	}
	if !token.Valid || claims.UserID == "" || claims.ID == "" {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthenticated)
	}

	now := t.clock.Now()
	if !claims.VerifyExpiresAt(now, true) {
		return nil, fmt.Errorf("token expired: %w", apperrors.ErrUnauthenticated)
	}
	if !claims.VerifyIssuedAt(now, true) {
		return nil, fmt.Errorf("token used before issued: %w", apperrors.ErrUnauthenticated)
	}
	return claims, nil
}

func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}
