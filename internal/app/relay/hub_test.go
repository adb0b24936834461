package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wgdash/internal/app/status"
)

func startHub(t *testing.T) (*Hub, string, context.CancelFunc) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn)
	}))

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http"), cancel
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) status.StatusMap {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var m status.StatusMap
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestHubSendsLatestOnJoin(t *testing.T) {
	hub, url, _ := startHub(t)

	hub.Publish(status.StatusMap{"pk": 1})

	conn := dial(t, url)
	assert.Equal(t, status.StatusMap{"pk": 1}, readSnapshot(t, conn))
}

func TestHubBroadcastsToAllSubscribers(t *testing.T) {
	hub, url, _ := startHub(t)

	a := dial(t, url)
	b := dial(t, url)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, 2*time.Second, 5*time.Millisecond)

	hub.Publish(status.StatusMap{"pk": 2})

	assert.Equal(t, status.StatusMap{"pk": 2}, readSnapshot(t, a))
	assert.Equal(t, status.StatusMap{"pk": 2}, readSnapshot(t, b))
}

func TestHubForgetsClosedSubscriber(t *testing.T) {
	hub, url, _ := startHub(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHubResetDropsLatest(t *testing.T) {
	hub, url, _ := startHub(t)

	hub.Publish(status.StatusMap{"pk": 1})
	hub.Reset()

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "no snapshot expected after reset")
}

func TestHubStopClosesSubscribers(t *testing.T) {
	hub, url, cancel := startHub(t)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 5*time.Millisecond)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Count())
}
