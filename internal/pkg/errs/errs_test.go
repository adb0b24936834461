package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorUsesTemplate(t *testing.T) {
	err := NewError(ErrJoinKeyWrong)

	assert.Equal(t, ErrJoinKeyWrong, err.Code)
	assert.Equal(t, "The join key is wrong.", err.Message)
	assert.Equal(t, http.StatusForbidden, err.Status)
}

func TestNewErrorFormatsDetails(t *testing.T) {
	err := NewError(ErrPeerNotFound, "1234")

	assert.Equal(t, "Peer 1234 not found.", err.Message)
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(424242)

	assert.Equal(t, ErrUnknown, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewErrorDefaultsStatus(t *testing.T) {
	err := NewError(ErrStorageFailed)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(ErrAPIUnavailable, cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("resolve: %w", NewError(ErrSessionExpired))

	assert.ErrorIs(t, err, NewError(ErrSessionExpired))
	assert.NotErrorIs(t, err, NewError(ErrSessionMissing))
}

func TestHasCodeLooksThroughCauses(t *testing.T) {
	err := Wrap(ErrRefreshFailed, NewError(ErrUnauthorized))

	assert.True(t, HasCode(err, ErrRefreshFailed))
	assert.True(t, HasCode(err, ErrUnauthorized))
	assert.False(t, HasCode(err, ErrJoinKeyWrong))
	assert.False(t, HasCode(errors.New("plain"), ErrUnknown))
	assert.False(t, HasCode(nil, ErrUnknown))
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(nil))

	custom := NewError(ErrNoConnection)
	assert.Same(t, custom, From(custom))

	foreign := From(errors.New("boom"))
	assert.Equal(t, ErrUnknown, foreign.Code)
}
