package ports

import "shipment-tracker/internal/features/shipments/domain"

// ShipmentStore is the authoritative registry of shipments. Implementations
// must serialize mutations per shipment id and only ever hand out snapshot
// copies.
type ShipmentStore interface {
	// Get returns a snapshot of the shipment, or false if it does not exist.
	Get(id string) (*domain.Shipment, bool)

	// List returns a point-in-time snapshot of all shipments, never a live view.
	List() []*domain.Shipment

	// Apply runs fn under per-id mutual exclusion. fn receives a working copy
	// of the current shipment, or nil if the id is absent, and returns the
	// shipment to commit. When fn returns an error nothing is committed.
	// fn may run more than once when the store is cleared concurrently; only
	// the final run's result is committed.
	//
	// onCommit, when non-nil, runs with a snapshot of the committed shipment
	// before the per-id lock is released, so callers can order side effects
	// with commit order. Apply returns a snapshot of the committed shipment.
	Apply(id string, fn func(current *domain.Shipment) (*domain.Shipment, error), onCommit func(committed *domain.Shipment)) (*domain.Shipment, error)

	// Clear removes all shipments. Used by the simulation reset.
	Clear()
}

// SnapshotPublisher receives the snapshot of a shipment after an applied
// transition. Publish must not block the caller: delivery is best-effort and
// asynchronous relative to the transition that produced the snapshot.
type SnapshotPublisher interface {
	Publish(shipment *domain.Shipment)
}
