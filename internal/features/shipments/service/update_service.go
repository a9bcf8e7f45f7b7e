package service

import (
	"errors"
	"fmt"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/core/metrics"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/ports"

	"go.uber.org/zap"
)

// ProcessResult is the outcome of a successfully processed update event.
type ProcessResult struct {
	// Shipment is the snapshot after the event.
	Shipment *domain.Shipment `json:"shipment"`
	// Applied reports whether the event changed observable state. False for
	// rules that treat a rejection as a silent no-op success.
	Applied bool `json:"applied"`
	// Violation reports that the event forced the shipment to EXCEPTION
	// because its delivery date broke the variant's plausibility rule.
	Violation bool `json:"violation"`
}

// UpdateService is the update processor: it validates events, dispatches to
// the matching transition rule, commits through the store and fans applied
// snapshots out to the publishers.
type UpdateService struct {
	store      ports.ShipmentStore
	publishers []ports.SnapshotPublisher
	rules      map[string]transitionRule
}

// NewUpdateService creates an UpdateService with the given store and publishers.
func NewUpdateService(store ports.ShipmentStore, publishers []ports.SnapshotPublisher) *UpdateService {
	return &UpdateService{
		store:      store,
		publishers: publishers,
		rules:      newRuleTable(),
	}
}

// Process applies one update event. On any failure the store is untouched,
// nothing is published, and a taxonomy error is returned; an event is never
// partially applied.
func (s *UpdateService) Process(ev domain.UpdateEvent) (*ProcessResult, error) {
	if err := ev.Validate(); err != nil {
		metrics.UpdatesProcessedTotal.WithLabelValues(ev.NormalizedType(), "invalid").Inc()
		return nil, err
	}

	updateType := ev.NormalizedType()
	rule, ok := s.rules[updateType]
	if !ok {
		metrics.UpdatesProcessedTotal.WithLabelValues(updateType, "unknown_type").Inc()
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownUpdateType, updateType)
	}

	var outcome *ruleOutcome
	snapshot, err := s.store.Apply(ev.ShipmentID, func(current *domain.Shipment) (*domain.Shipment, error) {
		if current == nil && updateType != "CREATED" {
			return nil, fmt.Errorf("%w: %s", domain.ErrShipmentNotFound, ev.ShipmentID)
		}
		var ruleErr error
		outcome, ruleErr = rule(current, ev)
		if ruleErr != nil {
			return nil, ruleErr
		}
		return outcome.shipment, nil
	}, func(committed *domain.Shipment) {
		// Publishing inside the per-id critical section keeps publish order
		// equal to commit order for each shipment; the publishers themselves
		// never block.
		if !outcome.applied {
			return
		}
		for _, p := range s.publishers {
			p.Publish(committed)
		}
	})
	if err != nil {
		metrics.UpdatesProcessedTotal.WithLabelValues(updateType, resultLabel(err)).Inc()
		return nil, err
	}

	if outcome.applied {
		metrics.UpdatesProcessedTotal.WithLabelValues(updateType, "applied").Inc()
	} else {
		metrics.UpdatesProcessedTotal.WithLabelValues(updateType, "noop").Inc()
	}

	if outcome.violation {
		logger.Get().Warn("Delivery plausibility violation",
			zap.String("shipment_id", snapshot.ID),
			zap.String("variant", string(snapshot.Variant)),
		)
	}

	return &ProcessResult{
		Shipment:  snapshot,
		Applied:   outcome.applied,
		Violation: outcome.violation,
	}, nil
}

// ProcessLine parses a delimited ingress line and processes it.
func (s *UpdateService) ProcessLine(line string) (*ProcessResult, error) {
	ev, err := domain.ParseUpdateLine(line)
	if err != nil {
		metrics.UpdatesProcessedTotal.WithLabelValues("", "invalid").Inc()
		return nil, err
	}
	return s.Process(ev)
}

// GetShipment returns a snapshot of one shipment.
func (s *UpdateService) GetShipment(id string) (*domain.Shipment, error) {
	shipment, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrShipmentNotFound, id)
	}
	return shipment, nil
}

// ListShipments returns a point-in-time snapshot of all shipments.
func (s *UpdateService) ListShipments() []*domain.Shipment {
	return s.store.List()
}

// Reset clears all shipment state, as when a new simulation run starts.
func (s *UpdateService) Reset() {
	s.store.Clear()
	logger.Get().Info("Shipment store cleared")
}

// resultLabel maps a processing error to its metrics label.
func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrShipmentNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUpdateRejected):
		return "rejected"
	case errors.Is(err, domain.ErrInvalidUpdate):
		return "invalid"
	default:
		return "error"
	}
}
