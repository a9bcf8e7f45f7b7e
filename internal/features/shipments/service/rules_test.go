package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-tracker/internal/features/shipments/domain"
)

func created(variant domain.Variant) *domain.Shipment {
	return domain.NewShipment("S1", variant, 1000)
}

// TestApplyCreated verifies shipment creation and idempotent re-creation.
func TestApplyCreated(t *testing.T) {
	out, err := applyCreated(nil, domain.UpdateEvent{Type: "created", ShipmentID: "S1", Timestamp: 1000, OtherInfo: "express"})
	require.NoError(t, err)
	assert.True(t, out.applied)
	assert.Equal(t, domain.StatusCreated, out.shipment.Status)
	assert.Equal(t, domain.VariantExpress, out.shipment.Variant)
	assert.Len(t, out.shipment.History, 1)

	// Duplicate CREATED succeeds but applies nothing.
	again, err := applyCreated(out.shipment, domain.UpdateEvent{Type: "created", ShipmentID: "S1", Timestamp: 2000})
	require.NoError(t, err)
	assert.False(t, again.applied)
	assert.Len(t, again.shipment.History, 1)
}

// TestApplyShipped verifies the happy path to SHIPPED.
func TestApplyShipped(t *testing.T) {
	out, err := applyShipped(created(domain.VariantStandard), domain.UpdateEvent{Type: "shipped", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "5000"})
	require.NoError(t, err)
	assert.True(t, out.applied)
	assert.False(t, out.violation)
	assert.Equal(t, domain.StatusShipped, out.shipment.Status)
	assert.Equal(t, int64(5000), out.shipment.ExpectedDeliveryAt)

	require.Len(t, out.shipment.History, 1)
	assert.Equal(t, domain.StatusCreated, out.shipment.History[0].PreviousStatus)
	assert.Equal(t, domain.StatusShipped, out.shipment.History[0].NewStatus)
}

// TestApplyShipped_PlausibilityViolation verifies that an implausible delivery
// date forces the shipment to EXCEPTION.
func TestApplyShipped_PlausibilityViolation(t *testing.T) {
	s := domain.NewShipment("S1", domain.VariantExpress, 0)
	out, err := applyShipped(s, domain.UpdateEvent{Type: "shipped", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "300000000"})
	require.NoError(t, err)
	assert.True(t, out.applied)
	assert.True(t, out.violation)
	assert.Equal(t, domain.StatusException, out.shipment.Status)
	assert.NotEmpty(t, out.shipment.Notes)
}

// TestApplyShipped_SkipsCheckAfterDelay verifies that a previously delayed
// shipment is not re-checked for plausibility.
func TestApplyShipped_SkipsCheckAfterDelay(t *testing.T) {
	s := domain.NewShipment("S1", domain.VariantExpress, 0)
	s.Status = domain.StatusDelayed

	out, err := applyShipped(s, domain.UpdateEvent{Type: "shipped", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "300000000"})
	require.NoError(t, err)
	assert.False(t, out.violation)
	assert.Equal(t, domain.StatusShipped, out.shipment.Status)
}

// TestApplyShipped_Rejections verifies the hard SHIPPED rejections.
func TestApplyShipped_Rejections(t *testing.T) {
	delivered := created(domain.VariantStandard)
	delivered.Status = domain.StatusDelivered
	_, err := applyShipped(delivered, domain.UpdateEvent{Type: "shipped", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "5000"})
	assert.ErrorIs(t, err, domain.ErrUpdateRejected)

	canceled := created(domain.VariantStandard)
	canceled.Status = domain.StatusCanceled
	_, err = applyShipped(canceled, domain.UpdateEvent{Type: "shipped", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "5000"})
	assert.ErrorIs(t, err, domain.ErrUpdateRejected)

	_, err = applyShipped(created(domain.VariantStandard), domain.UpdateEvent{Type: "shipped", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "next tuesday"})
	assert.ErrorIs(t, err, domain.ErrUpdateRejected)
}

// TestApplyLocation verifies location updates and the empty-location rejection.
func TestApplyLocation(t *testing.T) {
	out, err := applyLocation(created(domain.VariantStandard), domain.UpdateEvent{Type: "location", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "Rotterdam"})
	require.NoError(t, err)
	assert.True(t, out.applied)
	assert.Equal(t, domain.StatusCreated, out.shipment.Status)
	assert.Equal(t, "Rotterdam", out.shipment.CurrentLocation)
	require.Len(t, out.shipment.History, 1)
	assert.Equal(t, "Location updated to: Rotterdam", out.shipment.History[0].Notes)

	_, err = applyLocation(created(domain.VariantStandard), domain.UpdateEvent{Type: "location", ShipmentID: "S1", Timestamp: 2000})
	assert.ErrorIs(t, err, domain.ErrInvalidUpdate)
}

// TestApplyDelayed verifies delays with and without a new delivery date.
func TestApplyDelayed(t *testing.T) {
	out, err := applyDelayed(created(domain.VariantStandard), domain.UpdateEvent{Type: "delayed", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "9000"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelayed, out.shipment.Status)
	assert.Equal(t, int64(9000), out.shipment.ExpectedDeliveryAt)
	assert.Empty(t, out.shipment.Notes)

	out, err = applyDelayed(created(domain.VariantStandard), domain.UpdateEvent{Type: "delayed", ShipmentID: "S1", Timestamp: 2000})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelayed, out.shipment.Status)
	assert.Contains(t, out.shipment.Notes, "Delayed without a new delivery date.")

	delivered := created(domain.VariantStandard)
	delivered.Status = domain.StatusDelivered
	_, err = applyDelayed(delivered, domain.UpdateEvent{Type: "delayed", ShipmentID: "S1", Timestamp: 2000})
	assert.ErrorIs(t, err, domain.ErrUpdateRejected)
}

// TestApplyDelivered verifies delivery from any in-flight state.
func TestApplyDelivered(t *testing.T) {
	s := created(domain.VariantStandard)
	s.Status = domain.StatusDelayed

	out, err := applyDelivered(s, domain.UpdateEvent{Type: "delivered", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "Oslo"})
	require.NoError(t, err)
	assert.True(t, out.applied)
	assert.Equal(t, domain.StatusDelivered, out.shipment.Status)
	assert.Equal(t, "Oslo", out.shipment.CurrentLocation)
	require.Len(t, out.shipment.History, 1)
	assert.Equal(t, domain.StatusDelayed, out.shipment.History[0].PreviousStatus)
}

// TestApplyCanceled verifies cancellation and the delivered no-op.
func TestApplyCanceled(t *testing.T) {
	out, err := applyCanceled(created(domain.VariantStandard), domain.UpdateEvent{Type: "canceled", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "customer request"})
	require.NoError(t, err)
	assert.True(t, out.applied)
	assert.Equal(t, domain.StatusCanceled, out.shipment.Status)
	assert.Contains(t, out.shipment.Notes, "Cancellation reason: customer request")

	delivered := created(domain.VariantStandard)
	delivered.Status = domain.StatusDelivered
	out, err = applyCanceled(delivered, domain.UpdateEvent{Type: "canceled", ShipmentID: "S1", Timestamp: 2000})
	require.NoError(t, err)
	assert.False(t, out.applied)
	assert.Equal(t, domain.StatusDelivered, out.shipment.Status)
	assert.Empty(t, out.shipment.History)
}

// TestApplyLost verifies loss with and without a last known location, and the
// delivered no-op.
func TestApplyLost(t *testing.T) {
	out, err := applyLost(created(domain.VariantStandard), domain.UpdateEvent{Type: "lost", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "Hamburg"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLost, out.shipment.Status)
	assert.Equal(t, "Hamburg", out.shipment.CurrentLocation)
	require.Len(t, out.shipment.History, 1)
	assert.Equal(t, "Shipment lost. Last known location: Hamburg", out.shipment.History[0].Notes)

	out, err = applyLost(created(domain.VariantStandard), domain.UpdateEvent{Type: "lost", ShipmentID: "S1", Timestamp: 2000})
	require.NoError(t, err)
	require.Len(t, out.shipment.History, 1)
	assert.Equal(t, "Shipment lost", out.shipment.History[0].Notes)

	delivered := created(domain.VariantStandard)
	delivered.Status = domain.StatusDelivered
	out, err = applyLost(delivered, domain.UpdateEvent{Type: "lost", ShipmentID: "S1", Timestamp: 2000})
	require.NoError(t, err)
	assert.False(t, out.applied)
	assert.Equal(t, domain.StatusDelivered, out.shipment.Status)
}

// TestApplyNoteAdded verifies note appending and the empty-note rejection.
func TestApplyNoteAdded(t *testing.T) {
	out, err := applyNoteAdded(created(domain.VariantStandard), domain.UpdateEvent{Type: "noteadded", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "fragile"})
	require.NoError(t, err)
	assert.True(t, out.applied)
	assert.Equal(t, domain.StatusCreated, out.shipment.Status)
	assert.Contains(t, out.shipment.Notes, "fragile")
	require.Len(t, out.shipment.History, 1)
	assert.Equal(t, "Note added: fragile", out.shipment.History[0].Notes)

	_, err = applyNoteAdded(created(domain.VariantStandard), domain.UpdateEvent{Type: "noteadded", ShipmentID: "S1", Timestamp: 2000, OtherInfo: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidUpdate)
}
