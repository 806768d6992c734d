package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ainnoce10/ebf-console/internal/models"
)

const (
	socketWriteWait   = 10 * time.Second
	socketPingPeriod  = 30 * time.Second
	socketEventBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The console UI may be served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleSocket upgrades the connection and pushes each newly submitted
// message to the client as JSON until the client disconnects. The
// subscription is disposed when the connection goes away.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("socket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events := make(chan models.Message, socketEventBuffer)
	unsubscribe := s.config.Messages.Subscribe(func(m models.Message) {
		select {
		case events <- m:
		default:
			// A stalled client drops events rather than blocking the
			// synchronous fan-out.
		}
	})
	defer unsubscribe()

	// Reader goroutine: its only job is to notice the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(socketPingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg := <-events:
			conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
			if err := conn.WriteJSON(messageToResponse(msg)); err != nil {
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(socketWriteWait)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
