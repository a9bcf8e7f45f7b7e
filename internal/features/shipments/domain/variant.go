package domain

import "strings"

// Variant is the service class of a shipment. It determines how plausible a
// committed delivery date has to be relative to the creation time.
type Variant string

const (
	// VariantStandard has no delivery-date constraint.
	VariantStandard Variant = "STANDARD"
	// VariantExpress must be delivered within 3 days of creation.
	VariantExpress Variant = "EXPRESS"
	// VariantOvernight must be delivered within 24 hours of creation.
	VariantOvernight Variant = "OVERNIGHT"
	// VariantBulk must not be delivered sooner than 3 days after creation.
	VariantBulk Variant = "BULK"
)

// dayMillis is one day in epoch milliseconds, the unit of all timestamps.
const dayMillis = int64(24 * 60 * 60 * 1000)

// ParseVariant parses a service class name case-insensitively.
// Unknown or empty input falls back to VariantStandard.
func ParseVariant(s string) Variant {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(VariantExpress):
		return VariantExpress
	case string(VariantOvernight):
		return VariantOvernight
	case string(VariantBulk):
		return VariantBulk
	default:
		return VariantStandard
	}
}

// ValidateExpectedDelivery checks the committed delivery date against the
// variant's plausibility rule. It returns a violation note, or an empty
// string when the date is plausible.
func (v Variant) ValidateExpectedDelivery(createdAt, expectedDeliveryAt int64) string {
	switch v {
	case VariantExpress:
		if expectedDeliveryAt > createdAt+3*dayMillis {
			return "An express shipment was updated to include a delivery date more than 3 days after it was created."
		}
	case VariantOvernight:
		if expectedDeliveryAt > createdAt+dayMillis {
			return "An overnight shipment was updated to include a delivery date later than 24 hours after it was created."
		}
	case VariantBulk:
		if expectedDeliveryAt < createdAt+3*dayMillis {
			return "A bulk shipment was updated to include a delivery date fewer than 3 days after it was created."
		}
	}
	return ""
}
