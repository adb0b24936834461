package jwt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wgdash/internal/app/user"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-only-secret"))
	require.NoError(t, err)
	return token
}

func TestDecodeReadsClaimsWithoutKey(t *testing.T) {
	now := time.Now()
	token := signed(t, jwt.MapClaims{
		"discord_id":     "42",
		"username":       "alice",
		"global_name":    nil,
		"avatar":         "abc",
		"display_name":   "Alice",
		"display_avatar": "https://cdn.discordapp.com/avatars/42/abc.png",
		"iat":            now.Unix(),
		"exp":            now.Add(7 * 24 * time.Hour).Unix(),
	})

	payload, err := Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "42", payload.DiscordID)
	assert.Equal(t, "Alice", payload.DisplayName)
	assert.Empty(t, payload.GlobalName)
	assert.Equal(t, now.Unix(), payload.IssuedAt)
	assert.False(t, payload.Expired(now))
	assert.False(t, payload.ExpiresWithin(72*time.Hour, now))
}

func TestDecodeAcceptsExpiredToken(t *testing.T) {
	now := time.Now()
	token := signed(t, jwt.MapClaims{
		"discord_id": "42",
		"iat":        now.Add(-8 * 24 * time.Hour).Unix(),
		"exp":        now.Add(-time.Hour).Unix(),
	})

	payload, err := Decode(token)
	require.NoError(t, err)
	assert.True(t, payload.Expired(now))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("")
	assert.Error(t, err)

	_, err = Decode("not.a.jwt")
	assert.Error(t, err)

	_, err = Decode(signed(t, jwt.MapClaims{"discord_id": "42"}))
	assert.Error(t, err, "tokens without exp must be rejected")
}

func TestExpiresWithin(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	payload := &Payload{StandardClaims: jwt.StandardClaims{ExpiresAt: now.Add(71 * time.Hour).Unix()}}

	assert.True(t, payload.ExpiresWithin(72*time.Hour, now))
	assert.False(t, payload.ExpiresWithin(70*time.Hour, now))
}

func TestAuthorizationHeader(t *testing.T) {
	assert.Equal(t, "Bearer abc", Token{TokenType: "Bearer", AccessToken: "abc"}.AuthorizationHeader())
}

type resolverFunc func(ctx context.Context) (*Payload, error)

func (f resolverFunc) Resolve(ctx context.Context) (*Payload, error) { return f(ctx) }

func TestSessionMiddleware(t *testing.T) {
	want := &Payload{UserData: user.UserData{DiscordID: "42"}}
	failed := false

	handler := func(resolve resolverFunc) http.Handler {
		mw := SessionMiddleware(resolve, func(w http.ResponseWriter, r *http.Request, err error) {
			failed = true
			w.WriteHeader(http.StatusUnauthorized)
		})
		return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Same(t, want, GetPayloadFromContext(r))
			w.WriteHeader(http.StatusNoContent)
		}))
	}

	rec := httptest.NewRecorder()
	handler(func(context.Context) (*Payload, error) { return want, nil }).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, failed)

	rec = httptest.NewRecorder()
	handler(func(context.Context) (*Payload, error) { return nil, errors.New("expired") }).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.True(t, failed)
}

func TestGetPayloadFromContextMissing(t *testing.T) {
	assert.Nil(t, GetPayloadFromContext(httptest.NewRequest(http.MethodGet, "/", nil)))
}
