// File: internal/auth/jwt.go
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "pillai"

// GenerateSessionToken signs a session identifier for the session cookie.
func GenerateSessionToken(sessionID string, secretKey []byte, ttl time.Duration) (string, error) {
	if sessionID == "" {
		return "", errors.New("session ID cannot be empty")
	}
	if len(secretKey) == 0 {
		return "", errors.New("session secret cannot be empty")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sessionID,
		"iss": sessionIssuer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateSessionToken checks the signature and expiry and returns the session ID.
func ValidateSessionToken(tokenString string, secretKey []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if sessionID, ok := claims["sub"].(string); ok && sessionID != "" {
			return sessionID, nil
		}
	}

	return "", errors.New("invalid token")
}
