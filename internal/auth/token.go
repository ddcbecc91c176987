package auth

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/fleetops/maintenance-service/internal/domain"
)

// TokenManager validates actor tokens issued by the fleet's identity
// system. This service never issues tokens or stores credentials; it
// only needs the actor's identity and role for audit rows and the two
// admin-gated transitions.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims describes the actor token payload.
type Claims struct {
	ActorName string           `json:"name,omitempty"`
	Role      domain.ActorRole `json:"role"`
	jwt.RegisteredClaims
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}
	return claims, nil
}
