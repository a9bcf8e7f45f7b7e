package handler

import (
	"encoding/json"

	"shipment-tracker/internal/core/logger"
	shipments "shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/subscriptions/domain"
	"shipment-tracker/internal/features/subscriptions/service"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubscriptionHandler owns the WebSocket subscriber sessions. Each connection
// becomes one hub session: the client sends "track <id>" / "untrack <id>"
// control commands and receives full shipment snapshots as push messages.
type SubscriptionHandler struct {
	hub *service.Hub
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(hub *service.Hub) *SubscriptionHandler {
	return &SubscriptionHandler{
		hub: hub,
	}
}

// UpgradeRequired gates the WebSocket route: plain HTTP requests get 426.
func (h *SubscriptionHandler) UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle returns the WebSocket handler for the subscriber endpoint.
func (h *SubscriptionHandler) Handle() fiber.Handler {
	return websocket.New(h.serve)
}

// serve runs one subscriber session until the transport closes. The session
// is registered with the hub on entry and removed, with its whole interest
// set, on exit.
func (h *SubscriptionHandler) serve(conn *websocket.Conn) {
	sessionID := uuid.NewString()
	snapshots := h.hub.Register(sessionID)
	defer h.hub.Disconnect(sessionID)

	// Single writer: the pump is the only goroutine writing to the
	// connection, so pushes for this session stay in publish order.
	go h.pump(sessionID, conn, snapshots)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		cmd, err := domain.ParseCommand(string(msg))
		if err != nil {
			logger.Get().Debug("Ignoring malformed control command",
				zap.String("session_id", sessionID),
				zap.String("raw", string(msg)),
				zap.Error(err),
			)
			continue
		}

		switch cmd.Action {
		case domain.ActionTrack:
			h.hub.Track(sessionID, cmd.ShipmentID)
		case domain.ActionUntrack:
			h.hub.Untrack(sessionID, cmd.ShipmentID)
		}
	}
}

// pump forwards hub snapshots to the connection until the hub closes the
// channel or a write fails. A failed write closes the connection, which also
// unblocks the read loop.
func (h *SubscriptionHandler) pump(sessionID string, conn *websocket.Conn, snapshots <-chan *shipments.Shipment) {
	for shipment := range snapshots {
		msg := domain.PushMessage{
			Type:     domain.PushTypeShipmentUpdate,
			Shipment: shipment,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			logger.Get().Error("Failed to marshal push message", zap.Error(err))
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.Get().Debug("Push write failed, closing session",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			_ = conn.Close()
			return
		}
	}
}
