package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"politix/internal/feed"
	"politix/internal/gateway/service/topics"
)

const (
	feedWSWriteWait = 10 * time.Second
	feedWSPongWait  = 60 * time.Second
	feedWSPingEvery = (feedWSPongWait * 9) / 10

	feedInitialItems = 5
	feedPushInterval = 8 * time.Second
	feedItemsPerPush = 1
)

var feedWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type feedWSOutbound struct {
	Type  string      `json:"type"`
	Items []feed.Item `json:"items,omitempty"`
}

// HandleFeedWS serves GET /api/feed/ws: a live stream of mock feed items for
// the caller's followed topics (all topics when nothing is followed yet). An
// initial batch is sent on connect, then items trickle in on an interval.
func (s *Service) HandleFeedWS(w http.ResponseWriter, r *http.Request) {
	followed, err := s.topics.List(r.Context(), topics.ListQuery{
		IDs: s.state.SelectedTopicIDs(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(followed) == 0 {
		followed, err = s.topics.List(r.Context(), topics.ListQuery{})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	conn, err := feedWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(feedWSPongWait)); err != nil {
		log.Printf("feed ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedWSPongWait))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Drain client frames so pings/pongs and close frames are processed.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(out feedWSOutbound) bool {
		if err := conn.SetWriteDeadline(time.Now().Add(feedWSWriteWait)); err != nil {
			return false
		}
		return conn.WriteJSON(out) == nil
	}

	if !write(feedWSOutbound{Type: "batch", Items: s.feed.Batch(followed, feedInitialItems)}) {
		return
	}

	pushTicker := time.NewTicker(feedPushInterval)
	defer pushTicker.Stop()
	pingTicker := time.NewTicker(feedWSPingEvery)
	defer pingTicker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-pushTicker.C:
			if !write(feedWSOutbound{Type: "items", Items: s.feed.Batch(followed, feedItemsPerPush)}) {
				return
			}
		case <-pingTicker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(feedWSWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
