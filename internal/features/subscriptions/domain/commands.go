package domain

import (
	"errors"
	"strings"

	shipments "shipment-tracker/internal/features/shipments/domain"
)

// Action is a subscriber control verb.
type Action string

const (
	// ActionTrack adds a shipment id to the session's interest set.
	ActionTrack Action = "track"
	// ActionUntrack removes a shipment id from the session's interest set.
	ActionUntrack Action = "untrack"
)

var (
	// ErrInvalidCommand is returned for a malformed control command.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrUnknownAction is returned for a well-formed command with an
	// unrecognized verb.
	ErrUnknownAction = errors.New("unknown action")
)

// Command is one parsed subscriber control command.
type Command struct {
	// Action is the control verb.
	Action Action
	// ShipmentID is the shipment the command refers to.
	ShipmentID string
}

// ParseCommand parses the wire format "track <shipmentId>" / "untrack <shipmentId>".
func ParseCommand(raw string) (Command, error) {
	fields := strings.Fields(raw)
	if len(fields) != 2 {
		return Command{}, ErrInvalidCommand
	}

	action := Action(strings.ToLower(fields[0]))
	if action != ActionTrack && action != ActionUntrack {
		return Command{}, ErrUnknownAction
	}

	return Command{Action: action, ShipmentID: fields[1]}, nil
}

// PushMessage is the envelope sent to a subscriber whenever a shipment in its
// interest set changes. It carries the full snapshot, not a diff.
type PushMessage struct {
	// Type identifies the message kind for clients.
	Type string `json:"type"`
	// Shipment is the full snapshot after the change.
	Shipment *shipments.Shipment `json:"shipment"`
}

// PushTypeShipmentUpdate is the Type of every snapshot push.
const PushTypeShipmentUpdate = "shipment_update"
