/*
Package status follows the VPN manager's live peer status.

Channel keeps a WebSocket open to the status endpoint: it authenticates by sending the
access token as the first frame, then receives full JSON snapshots of every peer's last
handshake. Whenever the socket closes or fails it reconnects after a fixed delay, until
its context is cancelled.
*/
package status

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"wgdash/internal/pkg/logx"
)

// ReconnectDelay is the fixed pause between a closed socket and the next attempt.
const ReconnectDelay = 1000 * time.Millisecond

const (
	// timeout for the authentication write.
	writeWait = 10 * time.Second

	// maximum accepted snapshot size.
	maxMessageSize = 1 << 20
)

// State is the connection state of a Channel.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "idle"
	}
}

// TokenSource returns the access token to authenticate with. It is called on every
// connect so a refreshed token is picked up.
type TokenSource func() (string, error)

// Channel is a self-reconnecting subscription to the status endpoint.
type Channel struct {
	url            string
	token          TokenSource
	dialer         *websocket.Dialer
	reconnectDelay time.Duration

	// mu protects state, snapshot and the observer lists.
	mu         sync.RWMutex
	state      State
	snapshot   StatusMap
	onSnapshot []func(StatusMap)
	onState    []func(State)

	// runMu protects cancel and done of the background run started by Start.
	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	logger zerolog.Logger
}

// NewChannel returns an idle Channel for the status socket at url.
func NewChannel(url string, token TokenSource) *Channel {
	return &Channel{
		url:            url,
		token:          token,
		dialer:         websocket.DefaultDialer,
		reconnectDelay: ReconnectDelay,
		state:          StateIdle,
		logger:         logx.Component("status").With().Str("url", url).Logger(),
	}
}

// OnSnapshot registers fn to receive every snapshot. Observers run on the reading
// goroutine and must not block.
func (c *Channel) OnSnapshot(fn func(StatusMap)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSnapshot = append(c.onSnapshot, fn)
}

// OnState registers fn to receive every state change.
func (c *Channel) OnState(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onState = append(c.onState, fn)
}

// Snapshot returns the latest status map, or nil before the first one arrived.
func (c *Channel) Snapshot() StatusMap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// State returns the current connection state.
func (c *Channel) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Start runs the channel in the background, bound to ctx. It is a no-op while a
// previous run is still active and reports whether a new run was started.
func (c *Channel) Start(ctx context.Context) bool {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	if c.done != nil {
		select {
		case <-c.done:
		default:
			return false
		}
		c.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		c.Run(runCtx)
	}()

	return true
}

// Stop cancels a run started by Start and waits for it to finish.
func (c *Channel) Stop() {
	c.runMu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.runMu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done

	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

// Run connects, reads snapshots and reconnects after ReconnectDelay until ctx is done.
// There is no backoff growth and no attempt limit.
func (c *Channel) Run(ctx context.Context) error {
	defer c.setState(StateIdle)

	for {
		err := c.runOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.Debug().Err(err).Dur("delay", c.reconnectDelay).Msg("Status socket closed, reconnecting")

		timer := time.NewTimer(c.reconnectDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// runOnce drives one connection through CONNECTING, OPEN and CLOSED.
func (c *Channel) runOnce(ctx context.Context) error {
	c.setState(StateConnecting)
	defer c.setState(StateClosed)

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}

	// closing the connection unblocks ReadMessage once ctx is cancelled
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	defer conn.Close()

	c.setState(StateOpen)

	token, err := c.token()
	if err != nil {
		c.logger.Warn().Err(err).Msg("No access token for the status socket, sending an empty one")
		token = ""
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(token)); err != nil {
		return err
	}

	conn.SetReadLimit(maxMessageSize)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("Status socket read failed")
			}
			return err
		}

		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}

		var snapshot StatusMap
		if err := json.Unmarshal(data, &snapshot); err != nil {
			c.logger.Warn().Err(err).Int("bytes", len(data)).Msg("Ignoring malformed status snapshot")
			continue
		}
		if snapshot == nil {
			snapshot = StatusMap{}
		}

		c.apply(snapshot)
	}
}

// apply replaces the current snapshot and notifies observers.
func (c *Channel) apply(snapshot StatusMap) {
	c.mu.Lock()
	c.snapshot = snapshot
	observers := slices.Clone(c.onSnapshot)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

func (c *Channel) setState(state State) {
	c.mu.Lock()
	if c.state == state {
		c.mu.Unlock()
		return
	}
	c.state = state
	observers := slices.Clone(c.onState)
	c.mu.Unlock()

	c.logger.Debug().Str("state", state.String()).Msg("Status channel state changed")

	for _, fn := range observers {
		fn(state)
	}
}
