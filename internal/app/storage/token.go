package storage

import (
	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/errs"
)

// LoadToken reads the stored token pair. Both keys must be present.
func LoadToken(s Store) (jwt.Token, error) {
	tokenType, okType, err := s.Get(KeyTokenType)
	if err != nil {
		return jwt.Token{}, errs.Wrap(errs.ErrStorageFailed, err)
	}

	accessToken, okAccess, err := s.Get(KeyAccessToken)
	if err != nil {
		return jwt.Token{}, errs.Wrap(errs.ErrStorageFailed, err)
	}

	if !okType || !okAccess || accessToken == "" {
		return jwt.Token{}, errs.NewError(errs.ErrSessionMissing)
	}

	return jwt.Token{TokenType: tokenType, AccessToken: accessToken}, nil
}

// SaveToken persists a token pair in one write, replacing the previous one.
func SaveToken(s Store, token jwt.Token) error {
	err := s.SetMany(map[string]string{
		KeyTokenType:   token.TokenType,
		KeyAccessToken: token.AccessToken,
	})
	if err != nil {
		return errs.Wrap(errs.ErrStorageFailed, err)
	}
	return nil
}

// ClearToken removes the stored token pair.
func ClearToken(s Store) error {
	if err := s.Remove(KeyTokenType, KeyAccessToken); err != nil {
		return errs.Wrap(errs.ErrStorageFailed, err)
	}
	return nil
}
