package websocket

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/SatyamS-71/rmcs/domain"
)

const compressionLevel = 3

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
	CheckOrigin:       func(r *http.Request) bool { return true },
}

// Handler upgrades the request and hands the connection, under a fresh id, to
// the registry and message handler.
func Handler(r domain.Registry, h domain.MessageHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ws, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			slog.Error("upgrade error", "error", err)
			return
		}
		if err := ws.SetCompressionLevel(compressionLevel); err != nil {
			slog.Warn("compression level", "error", err)
		}

		NewConn(uuid.NewString(), ws, r, h).Start()
	}
}
