package domain

import "errors"

var (
	// ErrInvalidUpdate is returned when an update event fails shape validation.
	ErrInvalidUpdate = errors.New("invalid update event")
	// ErrUnknownUpdateType is returned when no rule matches the update type.
	ErrUnknownUpdateType = errors.New("unknown update type")
	// ErrShipmentNotFound is returned when an update targets a shipment that
	// was never created.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrUpdateRejected is returned when a transition is semantically
	// disallowed for the shipment's current status.
	ErrUpdateRejected = errors.New("update rejected")
)
