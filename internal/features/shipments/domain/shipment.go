package domain

// ShippingUpdateRecord is one entry in a shipment's history, written once per
// successfully applied transition and never modified afterwards.
type ShippingUpdateRecord struct {
	// PreviousStatus is the status before the transition.
	PreviousStatus ShipmentStatus `json:"previous_status"`
	// NewStatus is the status after the transition.
	NewStatus ShipmentStatus `json:"new_status"`
	// Timestamp is the epoch-millisecond timestamp of the update event.
	Timestamp int64 `json:"timestamp"`
	// Location is the shipment's location as of this transition, if known.
	Location string `json:"location,omitempty"`
	// Notes is the rule-specific note for this transition, if any.
	Notes string `json:"notes,omitempty"`
}

// Shipment is the authoritative state of one tracked shipment. It is owned by
// the shipment store once created; callers only ever see snapshot copies.
type Shipment struct {
	// ID uniquely identifies the shipment.
	ID string `json:"id"`
	// Status is the current lifecycle state.
	Status ShipmentStatus `json:"status"`
	// Variant is the service class, fixed at creation.
	Variant Variant `json:"variant"`
	// CreatedAt is the epoch-millisecond creation time, fixed at creation.
	CreatedAt int64 `json:"created_at"`
	// ExpectedDeliveryAt is the committed delivery time in epoch milliseconds.
	// Zero means no delivery date has been committed yet.
	ExpectedDeliveryAt int64 `json:"expected_delivery_at,omitempty"`
	// CurrentLocation is the last reported location. Empty means unknown.
	CurrentLocation string `json:"current_location,omitempty"`
	// Notes is the append-only audit trail, in insertion order.
	Notes []string `json:"notes,omitempty"`
	// History holds one record per applied transition, in application order.
	History []ShippingUpdateRecord `json:"history"`
}

// NewShipment creates a shipment in the CREATED state.
func NewShipment(id string, variant Variant, createdAt int64) *Shipment {
	return &Shipment{
		ID:        id,
		Status:    StatusCreated,
		Variant:   variant,
		CreatedAt: createdAt,
	}
}

// AddNote appends a note to the audit trail.
func (s *Shipment) AddNote(note string) {
	s.Notes = append(s.Notes, note)
}

// AddRecord appends a transition record to the history.
func (s *Shipment) AddRecord(rec ShippingUpdateRecord) {
	s.History = append(s.History, rec)
}

// Clone returns a deep copy of the shipment. The store hands clones to
// callers so nobody can mutate authoritative state behind its back.
func (s *Shipment) Clone() *Shipment {
	if s == nil {
		return nil
	}
	out := *s
	if s.Notes != nil {
		out.Notes = make([]string, len(s.Notes))
		copy(out.Notes, s.Notes)
	}
	if s.History != nil {
		out.History = make([]ShippingUpdateRecord, len(s.History))
		copy(out.History, s.History)
	}
	return &out
}
