package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// UpdateEvent is one requested state transition for a shipment. It is built by
// an ingress adapter, validated, consumed by exactly one rule application and
// then discarded.
type UpdateEvent struct {
	// Type is the update type, matched case-insensitively against the rule table.
	Type string `json:"update_type"`
	// ShipmentID is the target shipment.
	ShipmentID string `json:"shipment_id"`
	// Timestamp is the epoch-millisecond time of the update. Must be positive.
	Timestamp int64 `json:"timestamp"`
	// OtherInfo carries the type-specific payload (location, note, delivery
	// date, variant, ...). May be empty.
	OtherInfo string `json:"other_info,omitempty"`
}

// NormalizedType returns the update type in canonical upper-case form.
func (e UpdateEvent) NormalizedType() string {
	return strings.ToUpper(strings.TrimSpace(e.Type))
}

// Validate checks the minimal event shape shared by all update types.
func (e UpdateEvent) Validate() error {
	if strings.TrimSpace(e.Type) == "" {
		return fmt.Errorf("%w: update type is required", ErrInvalidUpdate)
	}
	if strings.TrimSpace(e.ShipmentID) == "" {
		return fmt.Errorf("%w: shipment id is required", ErrInvalidUpdate)
	}
	if e.Timestamp <= 0 {
		return fmt.Errorf("%w: timestamp must be positive", ErrInvalidUpdate)
	}
	return nil
}

// ParseUpdateLine parses the delimited ingress format
// "updateType,shipmentId,timestamp[,otherInfo]". OtherInfo is the last field
// and may itself contain commas.
func ParseUpdateLine(line string) (UpdateEvent, error) {
	parts := strings.SplitN(strings.TrimSpace(line), ",", 4)
	if len(parts) < 3 {
		return UpdateEvent{}, fmt.Errorf("%w: expected at least 3 comma-separated fields", ErrInvalidUpdate)
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return UpdateEvent{}, fmt.Errorf("%w: timestamp %q is not numeric", ErrInvalidUpdate, parts[2])
	}

	ev := UpdateEvent{
		Type:       strings.TrimSpace(parts[0]),
		ShipmentID: strings.TrimSpace(parts[1]),
		Timestamp:  ts,
	}
	if len(parts) == 4 {
		ev.OtherInfo = strings.TrimSpace(parts[3])
	}

	if err := ev.Validate(); err != nil {
		return UpdateEvent{}, err
	}
	return ev, nil
}
