package jwt

import (
	"errors"

	"github.com/golang-jwt/jwt"
)

// Decode reads the claims of an access token without verifying its signature.
// The client never holds the signing key; the API verifies every request itself.
func Decode(accessToken string) (*Payload, error) {
	if accessToken == "" {
		return nil, errors.New("empty access token")
	}

	claims := &Payload{}

	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, err
	}

	if claims.ExpiresAt == 0 {
		return nil, errors.New("access token has no exp claim")
	}

	return claims, nil
}
