package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"daily-vocab-service/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type leaderboardFrame struct {
	Type        string              `json:"type"`
	Leaderboard []domain.UserRecord `json:"leaderboard"`
}

// serveLeaderboardWS streams every freshly ranked leaderboard to the
// client. Frames only arrive while ranking-phase reads recompute ranks.
func (h *Handler) serveLeaderboardWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.service.SubscribeLeaderboard()
	defer cancel()

	// Reader goroutine: drains control frames and unblocks the writer
	// loop when the peer goes away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case leaderboard, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(leaderboardFrame{Type: "leaderboard", Leaderboard: leaderboard}); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
