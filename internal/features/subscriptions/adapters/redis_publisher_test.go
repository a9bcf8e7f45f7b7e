package adapters

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shipments "shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/subscriptions/domain"
)

// TestNewRedisPublisher_InvalidURL verifies that a bad URL fails fast.
func TestNewRedisPublisher_InvalidURL(t *testing.T) {
	_, err := NewRedisPublisher("not-a-redis-url", "shipment-updates", 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse Redis URL")
}

// TestRedisPublisher_Ping verifies connectivity checks against a live server.
func TestRedisPublisher_Ping(t *testing.T) {
	mr := miniredis.RunT(t)

	pub, err := NewRedisPublisher("redis://"+mr.Addr(), "shipment-updates", 16)
	require.NoError(t, err)
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, pub.Ping(ctx))
}

// TestRedisPublisher_PublishMirrorsSnapshot verifies that an enqueued snapshot
// arrives on the configured channel as a push message envelope.
func TestRedisPublisher_PublishMirrorsSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)

	pub, err := NewRedisPublisher("redis://"+mr.Addr(), "shipment-updates", 16)
	require.NoError(t, err)
	defer pub.Close()

	opts, err := redis.ParseURL("redis://" + mr.Addr())
	require.NoError(t, err)
	sub := redis.NewClient(opts)
	defer sub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pubsub := sub.Subscribe(ctx, "shipment-updates")
	defer pubsub.Close()
	_, err = pubsub.Receive(ctx)
	require.NoError(t, err)

	s := shipments.NewShipment("S1", shipments.VariantExpress, 1000)
	pub.Publish(s)

	msg, err := pubsub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var envelope domain.PushMessage
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &envelope))
	assert.Equal(t, domain.PushTypeShipmentUpdate, envelope.Type)
	require.NotNil(t, envelope.Shipment)
	assert.Equal(t, "S1", envelope.Shipment.ID)
	assert.Equal(t, shipments.VariantExpress, envelope.Shipment.Variant)
}

// TestRedisPublisher_CloseIsIdempotent verifies repeated Close calls.
func TestRedisPublisher_CloseIsIdempotent(t *testing.T) {
	mr := miniredis.RunT(t)

	pub, err := NewRedisPublisher("redis://"+mr.Addr(), "shipment-updates", 16)
	require.NoError(t, err)

	assert.NoError(t, pub.Close())
	assert.Error(t, pub.Close())
}
