package service

import (
	"sync"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/core/metrics"
	"shipment-tracker/internal/features/shipments/domain"

	"go.uber.org/zap"
)

// defaultBufferSize is the per-session snapshot buffer when none is configured.
const defaultBufferSize = 64

// Hub is the notification fan-out: it tracks which sessions are interested in
// which shipment ids and pushes snapshots of changed shipments to them.
//
// Delivery is best-effort and never blocks the publisher: each session has a
// buffered channel drained by its own transport, so a slow or dead session
// only loses its own messages. Per-session ordering is preserved because all
// of a session's pushes go through its single channel.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	buffer   int
}

type session struct {
	snapshots chan *domain.Shipment
	interests map[string]struct{}
}

// NewHub creates a Hub with the given per-session buffer size.
func NewHub(bufferSize int) *Hub {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &Hub{
		sessions: make(map[string]*session),
		buffer:   bufferSize,
	}
}

// Register creates a session with an empty interest set and returns the
// channel its snapshots will arrive on. The channel is closed by Disconnect.
func (h *Hub) Register(sessionID string) <-chan *domain.Shipment {
	s := &session{
		snapshots: make(chan *domain.Shipment, h.buffer),
		interests: make(map[string]struct{}),
	}

	h.mu.Lock()
	h.sessions[sessionID] = s
	h.mu.Unlock()

	metrics.ActiveSubscribers.Inc()
	logger.Get().Info("Subscriber connected", zap.String("session_id", sessionID))
	return s.snapshots
}

// Track adds a shipment id to the session's interest set.
func (h *Hub) Track(sessionID, shipmentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[sessionID]; ok {
		s.interests[shipmentID] = struct{}{}
		logger.Get().Debug("Subscriber tracking shipment",
			zap.String("session_id", sessionID),
			zap.String("shipment_id", shipmentID),
		)
	}
}

// Untrack removes a shipment id from the session's interest set.
func (h *Hub) Untrack(sessionID, shipmentID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.sessions[sessionID]; ok {
		delete(s.interests, shipmentID)
	}
}

// Disconnect removes the session, drops its whole interest set and closes its
// snapshot channel. No further pushes are attempted for it.
func (h *Hub) Disconnect(sessionID string) {
	h.mu.Lock()
	s, ok := h.sessions[sessionID]
	if ok {
		delete(h.sessions, sessionID)
		close(s.snapshots)
	}
	h.mu.Unlock()

	if ok {
		metrics.ActiveSubscribers.Dec()
		logger.Get().Info("Subscriber disconnected", zap.String("session_id", sessionID))
	}
}

// Publish pushes the snapshot to every session interested in its shipment id.
// Snapshots are store-owned copies and must be treated as read-only by
// receivers. A session whose buffer is full loses this snapshot rather than
// blocking the publisher or the other sessions.
func (h *Hub) Publish(shipment *domain.Shipment) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sessionID, s := range h.sessions {
		if _, interested := s.interests[shipment.ID]; !interested {
			continue
		}
		select {
		case s.snapshots <- shipment:
			metrics.PushesDeliveredTotal.Inc()
		default:
			metrics.PushesDroppedTotal.Inc()
			logger.Get().Warn("Subscriber buffer full, snapshot dropped",
				zap.String("session_id", sessionID),
				zap.String("shipment_id", shipment.ID),
			)
		}
	}
}

// SessionCount returns the number of connected sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
