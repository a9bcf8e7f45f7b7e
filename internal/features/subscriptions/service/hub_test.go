package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-tracker/internal/features/shipments/domain"
)

func snapshot(id string) *domain.Shipment {
	return domain.NewShipment(id, domain.VariantStandard, 1000)
}

func receive(t *testing.T, ch <-chan *domain.Shipment) *domain.Shipment {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

// TestHub_TrackedSessionReceivesSnapshot verifies the basic fan-out path.
func TestHub_TrackedSessionReceivesSnapshot(t *testing.T) {
	hub := NewHub(8)
	ch := hub.Register("session-1")
	hub.Track("session-1", "S1")

	hub.Publish(snapshot("S1"))

	got := receive(t, ch)
	assert.Equal(t, "S1", got.ID)
}

// TestHub_UntrackedShipmentIsFiltered verifies that sessions only receive
// shipments in their interest set.
func TestHub_UntrackedShipmentIsFiltered(t *testing.T) {
	hub := NewHub(8)
	ch := hub.Register("session-1")
	hub.Track("session-1", "S1")

	hub.Publish(snapshot("S2"))
	hub.Publish(snapshot("S1"))

	got := receive(t, ch)
	assert.Equal(t, "S1", got.ID)
	assert.Empty(t, ch)
}

// TestHub_Untrack verifies that untracking stops delivery for that id.
func TestHub_Untrack(t *testing.T) {
	hub := NewHub(8)
	ch := hub.Register("session-1")
	hub.Track("session-1", "S1")
	hub.Untrack("session-1", "S1")

	hub.Publish(snapshot("S1"))
	assert.Empty(t, ch)
}

// TestHub_MultipleSessions verifies independent interest sets.
func TestHub_MultipleSessions(t *testing.T) {
	hub := NewHub(8)
	ch1 := hub.Register("session-1")
	ch2 := hub.Register("session-2")
	hub.Track("session-1", "S1")
	hub.Track("session-2", "S1")
	hub.Track("session-2", "S2")

	hub.Publish(snapshot("S1"))
	hub.Publish(snapshot("S2"))

	assert.Equal(t, "S1", receive(t, ch1).ID)
	assert.Empty(t, ch1)

	assert.Equal(t, "S1", receive(t, ch2).ID)
	assert.Equal(t, "S2", receive(t, ch2).ID)
}

// TestHub_PerSessionOrdering verifies that one session sees pushes in publish
// order.
func TestHub_PerSessionOrdering(t *testing.T) {
	hub := NewHub(16)
	ch := hub.Register("session-1")
	hub.Track("session-1", "S1")

	for i := int64(1); i <= 5; i++ {
		s := snapshot("S1")
		s.CreatedAt = i
		hub.Publish(s)
	}

	for i := int64(1); i <= 5; i++ {
		assert.Equal(t, i, receive(t, ch).CreatedAt)
	}
}

// TestHub_FullBufferDropsInsteadOfBlocking verifies the slow-subscriber policy.
func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(2)
	ch := hub.Register("session-1")
	hub.Track("session-1", "S1")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			hub.Publish(snapshot("S1"))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full session buffer")
	}
	assert.Len(t, ch, 2)
}

// TestHub_Disconnect verifies session teardown and channel closure.
func TestHub_Disconnect(t *testing.T) {
	hub := NewHub(8)
	ch := hub.Register("session-1")
	hub.Track("session-1", "S1")
	require.Equal(t, 1, hub.SessionCount())

	hub.Disconnect("session-1")
	assert.Equal(t, 0, hub.SessionCount())

	_, open := <-ch
	assert.False(t, open)

	// Publishing after disconnect must not panic or deliver anywhere.
	hub.Publish(snapshot("S1"))

	// Disconnecting twice is harmless.
	hub.Disconnect("session-1")
}

// TestHub_CommandsForUnknownSessionAreIgnored verifies that stale session ids
// are a no-op.
func TestHub_CommandsForUnknownSessionAreIgnored(t *testing.T) {
	hub := NewHub(8)
	hub.Track("ghost", "S1")
	hub.Untrack("ghost", "S1")
	assert.Equal(t, 0, hub.SessionCount())
}
