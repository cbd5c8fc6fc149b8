package jwtutil

import (
	"time"

	"catalog-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	signingKey      []byte
	expirationHours int
)

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	Email  string   `json:"email"`
	UserID uint     `json:"user_id"`
	Perms  []string `json:"perms,omitempty"` // granted permission names, e.g. catalog.edit_product_category
	jwt.RegisteredClaims
}

// HasPerm reports whether the claims carry the named permission
func (c *UserClaims) HasPerm(name string) bool {
	for _, p := range c.Perms {
		if p == name {
			return true
		}
	}
	return false
}

// Initialize configures the JWT utility from application configuration
func Initialize(cfg *config.JWTConfig) {
	signingKey = []byte(cfg.SigningKey)
	expirationHours = cfg.ExpirationHours
	if expirationHours <= 0 {
		expirationHours = 24
	}
}

// GenerateToken creates a signed token for the given user.
// Used by tests and operator tooling; the login flow lives in a separate service.
func GenerateToken(userID uint, email string, perms []string) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		Email:  email,
		UserID: userID,
		Perms:  perms,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expirationHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
