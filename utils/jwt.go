package utils

import (
	"errors"
	"time"

	"homeserve/config"

	"github.com/golang-jwt/jwt"
)

const devSecret = "homeserve-dev-secret"

// secretKey reads the signing secret from config. Outside production an empty
// secret falls back to a fixed development value.
func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" && !config.IsProduction() {
		secret = devSecret
	}
	return []byte(secret)
}

// TokenClaims are the identity facts carried by an access token.
type TokenClaims struct {
	Subject string
	Role    string
}

// GenerateToken creates a signed JWT token for subject (a user ID) and role.
// The token expires after the specified duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	key := secretKey()
	if len(key) == 0 {
		return "", errors.New("jwt secret is not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaims validates tokenString and returns its subject and role.
func ExtractClaims(tokenString string) (*TokenClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)

	return &TokenClaims{Subject: sub, Role: role}, nil
}
