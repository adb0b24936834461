/*
Package login drives the two-step sign-in: the OAuth authorization code arrives through
the redirect, the user optionally adds a join key, and the pair is exchanged for an access
token. A failed exchange resets the flow so the user can start over.
*/
package login

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/errs"
	"wgdash/internal/pkg/logx"
)

// State is the step the flow is at.
type State int

const (
	// NoCode shows the external authorization link.
	NoCode State = iota

	// CodeReceived prompts for the optional join key.
	CodeReceived

	// Submitting is the exchange in flight.
	Submitting

	// LoggedIn means the token was persisted.
	LoggedIn
)

func (s State) String() string {
	switch s {
	case CodeReceived:
		return "code_received"
	case Submitting:
		return "submitting"
	case LoggedIn:
		return "logged_in"
	default:
		return "no_code"
	}
}

// Authenticator exchanges an authorization code and join key for a token.
type Authenticator interface {
	Login(ctx context.Context, code, joinKey string) (*jwt.Token, error)
}

// TokenSaver persists a freshly issued token.
type TokenSaver interface {
	Save(token jwt.Token) (*jwt.Payload, error)
}

// Flow is the login state machine. It is safe for concurrent use.
type Flow struct {
	auth  Authenticator
	saver TokenSaver

	mu      sync.Mutex
	state   State
	code    string
	joinKey string

	logger zerolog.Logger
}

// NewFlow returns a flow waiting for an authorization code.
func NewFlow(auth Authenticator, saver TokenSaver) *Flow {
	return &Flow{
		auth:   auth,
		saver:  saver,
		state:  NoCode,
		logger: logx.Component("login"),
	}
}

// ReceiveCode captures the authorization code from the OAuth redirect.
// Empty codes are ignored and a code already held is kept.
func (f *Flow) ReceiveCode(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if code == "" || f.code != "" {
		return
	}

	f.code = code
	f.state = CodeReceived
	f.logger.Debug().Msg("Authorization code received")
}

// SetJoinKey records the join key typed by the user.
func (f *Flow) SetJoinKey(joinKey string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.joinKey = joinKey
}

// Submit exchanges the held code and join key. On success the token is saved and the
// flow ends in LoggedIn; on failure code and join key are cleared and the flow returns
// to NoCode.
func (f *Flow) Submit(ctx context.Context) (*jwt.Payload, error) {
	f.mu.Lock()
	if f.code == "" {
		f.mu.Unlock()
		return nil, errs.NewError(errs.ErrCodeMissing)
	}
	if f.state == Submitting {
		f.mu.Unlock()
		return nil, errs.NewError(errs.ErrInvalidParams)
	}
	code, joinKey := f.code, f.joinKey
	f.state = Submitting
	f.mu.Unlock()

	payload, err := f.exchange(ctx, code, joinKey)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.logger.Warn().Err(err).Msg("Login failed, resetting flow")
		f.reset()
		return nil, err
	}

	f.code = ""
	f.joinKey = ""
	f.state = LoggedIn
	f.logger.Info().Str("discord_id", payload.DiscordID).Msg("Logged in")

	return payload, nil
}

func (f *Flow) exchange(ctx context.Context, code, joinKey string) (*jwt.Payload, error) {
	token, err := f.auth.Login(ctx, code, joinKey)
	if err != nil {
		return nil, err
	}

	return f.saver.Save(*token)
}

// Reset drops any held code and join key.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Flow) reset() {
	f.code = ""
	f.joinKey = ""
	f.state = NoCode
}

// State returns the current step.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// HasCode reports whether an authorization code is held.
func (f *Flow) HasCode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code != ""
}

// JoinKey returns the join key typed so far.
func (f *Flow) JoinKey() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.joinKey
}
