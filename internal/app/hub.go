package app

import (
	"sync"

	"daily-vocab-service/internal/domain"
)

// leaderboardHub fans fresh leaderboards out to websocket subscribers.
type leaderboardHub struct {
	mu          sync.Mutex
	subscribers map[chan []domain.UserRecord]struct{}
	last        []domain.UserRecord
}

func newLeaderboardHub() *leaderboardHub {
	return &leaderboardHub{
		subscribers: make(map[chan []domain.UserRecord]struct{}),
	}
}

func (h *leaderboardHub) subscribe() (<-chan []domain.UserRecord, func()) {
	ch := make(chan []domain.UserRecord, 8)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	if h.last != nil {
		ch <- h.last
	}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *leaderboardHub) broadcast(leaderboard []domain.UserRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = leaderboard
	for ch := range h.subscribers {
		select {
		case ch <- leaderboard:
		default:
			// Drop the stale update so a slow client never blocks the rest.
			select {
			case <-ch:
			default:
			}
			ch <- leaderboard
		}
	}
}
