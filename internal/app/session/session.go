/*
Package session resolves the locally stored credential into the signed-in account.

Resolution reads the token pair from local storage, decodes its claims, rejects an expired
token and silently refreshes one that is close to expiry. Any failure means the user has
to go through the login flow again.
*/
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"wgdash/internal/app/storage"
	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/errs"
	"wgdash/internal/pkg/logx"
)

// RefreshWindow is how long before expiry a token gets refreshed.
const RefreshWindow = 72 * time.Hour

// Refresher exchanges the current token for a new pair.
type Refresher interface {
	Refresh(ctx context.Context) (*jwt.Token, error)
}

// Manager owns the local session.
type Manager struct {
	store     storage.Store
	refresher Refresher
	now       func() time.Time
	logger    zerolog.Logger
}

// NewManager returns a Manager reading from store and refreshing through refresher.
func NewManager(store storage.Store, refresher Refresher) *Manager {
	return &Manager{
		store:     store,
		refresher: refresher,
		now:       time.Now,
		logger:    logx.Component("session"),
	}
}

// SetClock replaces the time source.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Resolve returns the claims of the current session.
// A token expiring within RefreshWindow is refreshed, persisted and decoded again first.
func (m *Manager) Resolve(ctx context.Context) (*jwt.Payload, error) {
	token, err := storage.LoadToken(m.store)
	if err != nil {
		return nil, err
	}

	payload, err := jwt.Decode(token.AccessToken)
	if err != nil {
		return nil, errs.Wrap(errs.ErrSessionInvalid, err)
	}

	now := m.now()
	if payload.Expired(now) {
		m.logger.Info().
			Str("discord_id", payload.DiscordID).
			Time("expired_at", payload.ExpiresAtTime()).
			Msg("Stored token expired")
		return nil, errs.NewError(errs.ErrSessionExpired)
	}

	if !payload.ExpiresWithin(RefreshWindow, now) {
		return payload, nil
	}

	m.logger.Info().
		Str("discord_id", payload.DiscordID).
		Time("current_expiry", payload.ExpiresAtTime()).
		Dur("refresh_window", RefreshWindow).
		Msg("Token is nearing expiry, refreshing.")

	fresh, err := m.refresher.Refresh(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrRefreshFailed, err)
	}

	refreshed, err := m.Save(*fresh)
	if err != nil {
		return nil, errs.Wrap(errs.ErrRefreshFailed, err)
	}

	return refreshed, nil
}

// Save decodes and persists a token pair received from the API.
// Nothing is persisted when the token cannot be decoded.
func (m *Manager) Save(token jwt.Token) (*jwt.Payload, error) {
	payload, err := jwt.Decode(token.AccessToken)
	if err != nil {
		return nil, errs.Wrap(errs.ErrSessionInvalid, err)
	}

	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}

	if err := storage.SaveToken(m.store, token); err != nil {
		return nil, err
	}

	return payload, nil
}

// AccessToken returns the stored access token, for the status channel handshake.
func (m *Manager) AccessToken() (string, error) {
	token, err := storage.LoadToken(m.store)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// Logout forgets the stored token pair.
func (m *Manager) Logout() error {
	m.logger.Info().Msg("Clearing stored session")
	return storage.ClearToken(m.store)
}
