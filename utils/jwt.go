package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// AdminScope is the only scope an ops token can carry today.
const AdminScope = "admin:jobs"

// GenerateAdminToken creates a signed HS256 token for the ops endpoints.
// The token expires after the specified duration.
func GenerateAdminToken(secret []byte, subject string, duration time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("admin token secret is not configured")
	}
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": AdminScope,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAdminToken parses the token, checks signature, expiry and scope and
// returns the subject.
func ValidateAdminToken(secret []byte, tokenString string) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("admin token secret is not configured")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if scope, _ := claims["scope"].(string); scope != AdminScope {
		return "", errors.New("token lacks admin scope")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
