// Package server exposes a websocket feed of order book snapshots for
// dashboards and other observers.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	match "github.com/tradesim/matchbook"
)

const (
	writeWait      = 10 * time.Second
	defaultBuffer  = 8
	defaultRefresh = 500 * time.Millisecond
)

// Update is one snapshot pushed to every subscriber.
type Update struct {
	Bids         []match.DepthItem `json:"bids"`
	Asks         []match.DepthItem `json:"asks"`
	Trades       []match.Trade     `json:"trades"`
	Imbalance    float64           `json:"imbalance"`
	PendingStops int64             `json:"pending_stops"`
	Time         time.Time         `json:"time"`
}

// Feed periodically snapshots the book and broadcasts the result to all
// connected websocket clients.
type Feed struct {
	book     *match.OrderBook
	hub      *hub
	upgrader websocket.Upgrader
	refresh  time.Duration
	depth    int
	log      *slog.Logger
}

// NewFeed creates a feed over book. refresh <= 0 uses the default of 500ms.
func NewFeed(book *match.OrderBook, refresh time.Duration, log *slog.Logger) *Feed {
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	if log == nil {
		log = slog.Default()
	}

	return &Feed{
		book:     book,
		hub:      newHub(),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		refresh:  refresh,
		depth:    match.DefaultDepthLimit,
		log:      log,
	}
}

// Run broadcasts snapshots until the context is cancelled.
func (f *Feed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			bids, asks := f.book.Snapshot(f.depth)
			update := Update{
				Bids:         bids,
				Asks:         asks,
				Trades:       f.book.LastTrades(),
				Imbalance:    f.book.Imbalance(),
				PendingStops: f.book.PendingStops(),
				Time:         now,
			}

			payload, err := json.Marshal(update)
			if err != nil {
				f.log.Error("marshal update", "error", err)
				continue
			}
			f.hub.broadcast(payload)
		}
	}
}

// Handler upgrades the request to a websocket and streams updates to it.
func (f *Feed) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := f.upgrader.Upgrade(w, r, nil)
		if err != nil {
			f.log.Warn("websocket upgrade failed", "error", err)
			return
		}

		sub := f.hub.subscribe(defaultBuffer)

		// Reader: discard inbound frames, detect close.
		go func() {
			defer f.hub.unsubscribe(sub)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		go f.writePump(conn, sub)
	})
}

func (f *Feed) writePump(conn *websocket.Conn, sub *subscription) {
	defer conn.Close()

	for payload := range sub.ch {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
