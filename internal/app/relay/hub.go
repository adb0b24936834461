/*
Package relay fans live status snapshots out to the dashboard's browser sockets.

The Hub is the single owner of the subscriber set: subscribers join and leave through
channels and every published snapshot is queued on each subscriber's send buffer. A
subscriber whose buffer is full is dropped rather than slowing the others down. New
subscribers receive the latest snapshot right away.
*/
package relay

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"wgdash/internal/app/status"
	"wgdash/internal/pkg/logx"
)

const (
	broadcastChannelBuffer = 64

	sendChannelBuffer = 16
)

// Hub tracks browser subscribers and broadcasts snapshots to them.
type Hub struct {
	// connected subscribers keyed by ID.
	subscribers map[string]*Subscriber

	// a buffered channel of encoded snapshots to send to every subscriber.
	broadcast chan []byte

	// subscribers requesting to join.
	register chan *Subscriber

	// subscribers requesting to leave.
	unregister chan *Subscriber

	// closed when Run returns.
	done chan struct{}

	// mu protects latest and the subscribers map for Count.
	mu     sync.RWMutex
	latest []byte

	logger zerolog.Logger
}

// NewHub returns a hub that is not running yet.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		broadcast:   make(chan []byte, broadcastChannelBuffer),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		done:        make(chan struct{}),
		logger:      logx.Component("relay"),
	}
}

// Run is the hub's event loop. It returns when ctx is cancelled, closing every
// subscriber's send queue.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for id, sub := range h.subscribers {
			close(sub.send)
			delete(h.subscribers, id)
		}
		h.mu.Unlock()

		close(h.done)
		h.logger.Info().Msg("Relay hub stopped.")
	}()

	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub.ID] = sub
			latest := h.latest
			total := len(h.subscribers)
			h.mu.Unlock()

			h.logger.Debug().Str("subscriber_id", sub.ID).Int("total", total).Msg("Subscriber joined.")

			if latest != nil {
				h.deliver(sub, latest)
			}

		case sub := <-h.unregister:
			h.remove(sub)

		case message := <-h.broadcast:
			h.mu.RLock()
			targets := make([]*Subscriber, 0, len(h.subscribers))
			for _, sub := range h.subscribers {
				targets = append(targets, sub)
			}
			h.mu.RUnlock()

			for _, sub := range targets {
				h.deliver(sub, message)
			}

		case <-ctx.Done():
			return
		}
	}
}

// deliver queues message for sub and drops sub if its queue is full.
func (h *Hub) deliver(sub *Subscriber, message []byte) {
	select {
	case sub.send <- message:
	default:
		h.logger.Warn().Str("subscriber_id", sub.ID).Msg("Subscriber send queue full, dropping subscriber.")
		h.remove(sub)
	}
}

func (h *Hub) remove(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.subscribers[sub.ID]; ok && current == sub {
		delete(h.subscribers, sub.ID)
		close(sub.send)

		h.logger.Debug().Str("subscriber_id", sub.ID).Int("total", len(h.subscribers)).Msg("Subscriber left.")
	}
}

// Publish records snapshot as the latest one and broadcasts it. It is meant to be
// registered as a status channel observer and never blocks.
func (h *Hub) Publish(snapshot status.StatusMap) {
	message, err := json.Marshal(snapshot)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode status snapshot.")
		return
	}

	h.mu.Lock()
	h.latest = message
	h.mu.Unlock()

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().Msg("Broadcast channel full, snapshot skipped.")
	}
}

// Reset forgets the latest snapshot, e.g. after logout.
func (h *Hub) Reset() {
	h.mu.Lock()
	h.latest = nil
	h.mu.Unlock()
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Serve attaches conn to the hub and pumps snapshots to it until either side closes.
// It blocks until the connection is finished.
func (h *Hub) Serve(conn *websocket.Conn) {
	sub := newSubscriber(h, conn)

	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}

	go sub.WritePump()
	sub.ReadPump()
}
