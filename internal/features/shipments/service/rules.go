package service

import (
	"fmt"
	"strconv"
	"strings"

	"shipment-tracker/internal/features/shipments/domain"
)

// ruleOutcome is the result of one transition rule application.
type ruleOutcome struct {
	// shipment is the state to commit.
	shipment *domain.Shipment
	// applied reports whether the rule changed observable state. Idempotent
	// re-creation and cancel/lose on a delivered shipment succeed without
	// applying anything.
	applied bool
	// violation reports that the delivery-plausibility check failed and the
	// shipment was forced to EXCEPTION.
	violation bool
}

// transitionRule applies one update type to a shipment. current is a working
// copy owned by the rule (nil only for CREATED); a returned error means
// nothing is committed.
type transitionRule func(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error)

// newRuleTable builds the update-type dispatch table. One rule per type;
// dispatch is by canonical upper-case type name.
func newRuleTable() map[string]transitionRule {
	return map[string]transitionRule{
		"CREATED":   applyCreated,
		"SHIPPED":   applyShipped,
		"LOCATION":  applyLocation,
		"DELAYED":   applyDelayed,
		"DELIVERED": applyDelivered,
		"CANCELED":  applyCanceled,
		"LOST":      applyLost,
		"NOTEADDED": applyNoteAdded,
	}
}

// record appends the transition record for this rule application.
func record(s *domain.Shipment, prev domain.ShipmentStatus, ev domain.UpdateEvent, note string) {
	s.AddRecord(domain.ShippingUpdateRecord{
		PreviousStatus: prev,
		NewStatus:      s.Status,
		Timestamp:      ev.Timestamp,
		Location:       s.CurrentLocation,
		Notes:          note,
	})
}

// applyCreated creates the shipment. Re-creating an existing id is an
// idempotent no-op: the pre-existing shipment is returned unchanged.
func applyCreated(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error) {
	if current != nil {
		return &ruleOutcome{shipment: current}, nil
	}

	s := domain.NewShipment(ev.ShipmentID, domain.ParseVariant(ev.OtherInfo), ev.Timestamp)
	record(s, domain.StatusCreated, ev, "")
	return &ruleOutcome{shipment: s, applied: true}, nil
}

// applyShipped commits a delivery date and moves the shipment to SHIPPED,
// or to EXCEPTION when the date breaks the variant's plausibility rule.
func applyShipped(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error) {
	if current.Status == domain.StatusDelivered || current.Status == domain.StatusCanceled {
		return nil, fmt.Errorf("%w: cannot ship a %s shipment", domain.ErrUpdateRejected, current.Status)
	}

	deliveryAt, err := strconv.ParseInt(strings.TrimSpace(ev.OtherInfo), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: SHIPPED requires a delivery timestamp, got %q", domain.ErrUpdateRejected, ev.OtherInfo)
	}

	prev := current.Status
	current.Status = domain.StatusShipped
	current.ExpectedDeliveryAt = deliveryAt

	// The plausibility check is skipped for shipments that were already
	// flagged as delayed before this update.
	note := ""
	violation := false
	if prev != domain.StatusDelayed {
		if v := current.Variant.ValidateExpectedDelivery(current.CreatedAt, deliveryAt); v != "" {
			current.Status = domain.StatusException
			current.AddNote(v)
			note = v
			violation = true
		}
	}

	record(current, prev, ev, note)
	return &ruleOutcome{shipment: current, applied: true, violation: violation}, nil
}

// applyLocation updates the current location without touching the status.
func applyLocation(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error) {
	location := strings.TrimSpace(ev.OtherInfo)
	if location == "" {
		return nil, fmt.Errorf("%w: LOCATION requires a location", domain.ErrInvalidUpdate)
	}

	prev := current.Status
	current.CurrentLocation = location
	record(current, prev, ev, "Location updated to: "+location)
	return &ruleOutcome{shipment: current, applied: true}, nil
}

// applyDelayed marks the shipment delayed, optionally with a new delivery date.
func applyDelayed(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error) {
	if current.Status == domain.StatusDelivered {
		return nil, fmt.Errorf("%w: cannot delay a delivered shipment", domain.ErrUpdateRejected)
	}

	prev := current.Status
	current.Status = domain.StatusDelayed

	note := ""
	if deliveryAt, err := strconv.ParseInt(strings.TrimSpace(ev.OtherInfo), 10, 64); err == nil {
		current.ExpectedDeliveryAt = deliveryAt
	} else {
		note = "Delayed without a new delivery date."
		current.AddNote(note)
	}

	record(current, prev, ev, note)
	return &ruleOutcome{shipment: current, applied: true}, nil
}

// applyDelivered terminates any in-flight state with DELIVERED.
func applyDelivered(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error) {
	prev := current.Status
	current.Status = domain.StatusDelivered
	if location := strings.TrimSpace(ev.OtherInfo); location != "" {
		current.CurrentLocation = location
	}

	record(current, prev, ev, "")
	return &ruleOutcome{shipment: current, applied: true}, nil
}

// applyCanceled cancels the shipment. Canceling a delivered shipment is a
// no-op success, not an error.
func applyCanceled(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error) {
	if current.Status == domain.StatusDelivered {
		return &ruleOutcome{shipment: current}, nil
	}

	prev := current.Status
	current.Status = domain.StatusCanceled

	note := ""
	if reason := strings.TrimSpace(ev.OtherInfo); reason != "" {
		note = "Cancellation reason: " + reason
		current.AddNote(note)
	}

	record(current, prev, ev, note)
	return &ruleOutcome{shipment: current, applied: true}, nil
}

// applyLost marks the shipment lost, recording the last known location when
// provided. Losing a delivered shipment is a no-op success.
func applyLost(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error) {
	if current.Status == domain.StatusDelivered {
		return &ruleOutcome{shipment: current}, nil
	}

	prev := current.Status
	current.Status = domain.StatusLost

	note := "Shipment lost"
	if location := strings.TrimSpace(ev.OtherInfo); location != "" {
		current.CurrentLocation = location
		note = "Shipment lost. Last known location: " + location
	}

	record(current, prev, ev, note)
	return &ruleOutcome{shipment: current, applied: true}, nil
}

// applyNoteAdded appends a note without changing the status.
func applyNoteAdded(current *domain.Shipment, ev domain.UpdateEvent) (*ruleOutcome, error) {
	note := strings.TrimSpace(ev.OtherInfo)
	if note == "" {
		return nil, fmt.Errorf("%w: NOTEADDED requires a note", domain.ErrInvalidUpdate)
	}

	prev := current.Status
	current.AddNote(note)
	record(current, prev, ev, "Note added: "+note)
	return &ruleOutcome{shipment: current, applied: true}, nil
}
