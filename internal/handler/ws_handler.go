package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"wgdash/internal/pkg/logx"
)

// HandleWebSocket upgrades a browser connection and attaches it to the relay hub.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		logx.Debug("Browser status socket connected")

		deps.Hub.Serve(conn)
	}
}
