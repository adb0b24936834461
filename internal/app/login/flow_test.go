package login

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wgdash/internal/app/user"
	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/errs"
)

type fakeAuth struct {
	code, joinKey string
	calls         int
	err           error
}

func (f *fakeAuth) Login(ctx context.Context, code, joinKey string) (*jwt.Token, error) {
	f.calls++
	f.code, f.joinKey = code, joinKey
	if f.err != nil {
		return nil, f.err
	}
	return &jwt.Token{TokenType: "Bearer", AccessToken: "issued"}, nil
}

type fakeSaver struct {
	saved []jwt.Token
}

func (f *fakeSaver) Save(token jwt.Token) (*jwt.Payload, error) {
	f.saved = append(f.saved, token)
	return &jwt.Payload{UserData: user.UserData{DiscordID: "42"}}, nil
}

func TestFlowSuccess(t *testing.T) {
	auth, saver := &fakeAuth{}, &fakeSaver{}
	f := NewFlow(auth, saver)
	assert.Equal(t, NoCode, f.State())

	f.ReceiveCode("abc")
	f.SetJoinKey("door")
	assert.Equal(t, CodeReceived, f.State())

	payload, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", payload.DiscordID)

	assert.Equal(t, "abc", auth.code)
	assert.Equal(t, "door", auth.joinKey)
	require.Len(t, saver.saved, 1)
	assert.Equal(t, "issued", saver.saved[0].AccessToken)

	assert.Equal(t, LoggedIn, f.State())
	assert.False(t, f.HasCode())
}

func TestFlowEmptyJoinKeyIsSent(t *testing.T) {
	auth := &fakeAuth{}
	f := NewFlow(auth, &fakeSaver{})

	f.ReceiveCode("abc")
	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", auth.joinKey)
}

func TestFlowFailureResets(t *testing.T) {
	auth, saver := &fakeAuth{err: errs.NewError(errs.ErrJoinKeyWrong)}, &fakeSaver{}
	f := NewFlow(auth, saver)

	f.ReceiveCode("abc")
	f.SetJoinKey("wrong")

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.ErrJoinKeyWrong))

	assert.Equal(t, NoCode, f.State())
	assert.False(t, f.HasCode())
	assert.Empty(t, f.JoinKey())
	assert.Empty(t, saver.saved)

	// retry with a new code
	auth.err = nil
	f.ReceiveCode("def")
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "def", auth.code)
}

func TestFlowKeepsFirstCode(t *testing.T) {
	auth := &fakeAuth{}
	f := NewFlow(auth, &fakeSaver{})

	f.ReceiveCode("")
	assert.Equal(t, NoCode, f.State())

	f.ReceiveCode("first")
	f.ReceiveCode("second")

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", auth.code)
}

func TestFlowSubmitWithoutCode(t *testing.T) {
	auth := &fakeAuth{}
	f := NewFlow(auth, &fakeSaver{})

	_, err := f.Submit(context.Background())
	assert.True(t, errs.HasCode(err, errs.ErrCodeMissing))
	assert.Zero(t, auth.calls)
}

func TestFlowReset(t *testing.T) {
	f := NewFlow(&fakeAuth{}, &fakeSaver{})
	f.ReceiveCode("abc")
	f.SetJoinKey("k")

	f.Reset()
	assert.Equal(t, NoCode, f.State())
	assert.False(t, f.HasCode())
	assert.Empty(t, f.JoinKey())
}
