package relay

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// timeout for writing to the browser socket.
	writeWait = 10 * time.Second

	// time allowed to read the next pong from the browser.
	pongWait = 60 * time.Second

	// ping period, shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// browsers only send control frames.
	maxMessageSize = 512
)

// Subscriber is one browser socket attached to the hub.
type Subscriber struct {
	ID string

	hub  *Hub
	conn *websocket.Conn

	// queued snapshots, closed by the hub when the subscriber is removed.
	send chan []byte

	logger zerolog.Logger
}

func newSubscriber(hub *Hub, conn *websocket.Conn) *Subscriber {
	id := uuid.NewString()

	return &Subscriber{
		ID:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendChannelBuffer),
		logger: hub.logger.With().Str("subscriber_id", id).Logger(),
	}
}

// ReadPump discards inbound messages and keeps the read deadline fresh. It unregisters
// the subscriber when the socket closes.
func (s *Subscriber) ReadPump() {
	defer func() {
		select {
		case s.hub.unregister <- s:
		case <-s.hub.done:
		}
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug().Err(err).Msg("Browser socket closed unexpectedly")
			}
			return
		}
	}
}

// WritePump writes queued snapshots and periodic pings to the socket.
func (s *Subscriber) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case message, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Debug().Err(err).Msg("Error writing snapshot")
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.logger.Debug().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}
