package jwt

import (
	"time"

	"github.com/golang-jwt/jwt"

	"wgdash/internal/app/user"
)

// Token is the credential pair issued by the VPN manager's /oauth endpoints.
// It is the only authentication state the client keeps.
type Token struct {
	// TokenType is the Authorization scheme, normally "Bearer".
	TokenType string `json:"token_type"`

	// AccessToken is the signed JWT.
	AccessToken string `json:"access_token"`
}

// AuthorizationHeader returns the value for the Authorization request header.
func (t Token) AuthorizationHeader() string {
	return t.TokenType + " " + t.AccessToken
}

// Payload defines the claims of a VPN manager access token: the account data plus the
// standard iat and exp fields (epoch seconds).
type Payload struct {
	user.UserData

	jwt.StandardClaims
}

// ExpiresAtTime returns the exp claim as a time.
func (p *Payload) ExpiresAtTime() time.Time {
	return time.Unix(p.ExpiresAt, 0)
}

// IssuedAtTime returns the iat claim as a time.
func (p *Payload) IssuedAtTime() time.Time {
	return time.Unix(p.IssuedAt, 0)
}

// Expired reports whether the token is past its expiry at now.
func (p *Payload) Expired(now time.Time) bool {
	return p.ExpiresAtTime().Before(now)
}

// ExpiresWithin reports whether the token expires less than d after now.
func (p *Payload) ExpiresWithin(d time.Duration, now time.Time) bool {
	return p.ExpiresAtTime().Sub(now) < d
}
