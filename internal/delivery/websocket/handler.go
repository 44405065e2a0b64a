package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"journal-backend/internal/domain"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EntryLister lists a profile's trade entries, newest first.
type EntryLister interface {
	ListTradeEntries(ctx context.Context, profileID int64) ([]domain.TradeEntry, error)
}

// Handler streams a profile's trade entries to a websocket client, once on
// connect and then every interval.
type Handler struct {
	entries  EntryLister
	interval time.Duration
	logger   *slog.Logger
}

func NewHandler(entries EntryLister, interval time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		entries:  entries,
		interval: interval,
		logger:   logger,
	}
}

// Handle serves /ws/trade-entries/{profileId}.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	profileID, err := strconv.ParseInt(r.PathValue("profileId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid profile ID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	// Drop the read deadline the HTTP server set for the handshake request.
	conn.SetReadDeadline(time.Time{})

	logger := h.logger.With("profile_id", profileID, "remote", r.RemoteAddr)
	logger.Info("feed client connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go readUntilClosed(conn, cancel)

	if !h.push(ctx, conn, profileID, logger) {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("feed client disconnected")
			return
		case <-ticker.C:
			if !h.push(ctx, conn, profileID, logger) {
				return
			}
		}
	}
}

func (h *Handler) push(ctx context.Context, conn *websocket.Conn, profileID int64, logger *slog.Logger) bool {
	entries, err := h.entries.ListTradeEntries(ctx, profileID)
	if err != nil {
		logger.Error("list trade entries failed", "error", err)
		return false
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(entries); err != nil {
		logger.Warn("feed write failed", "error", err)
		return false
	}
	return true
}

// readUntilClosed drains client frames so close messages are processed, and
// cancels once the connection goes away.
func readUntilClosed(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
