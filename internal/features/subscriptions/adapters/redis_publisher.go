package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/core/metrics"
	shipments "shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/subscriptions/domain"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher mirrors applied shipment snapshots onto a Redis pub/sub
// channel for out-of-process observers. It holds no authoritative state: the
// in-memory store stays the single source of truth.
//
// Publish only enqueues; a single worker goroutine performs the PUBLISH calls
// so Redis latency never blocks the transition that produced the snapshot,
// and channel ordering matches enqueue ordering.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	queue   chan *shipments.Shipment

	closeOnce sync.Once
	done      chan struct{}
}

// NewRedisPublisher creates a publisher for the given channel and starts its
// worker. The redisURL should be in the format: redis://[:password@]host[:port][/database]
func NewRedisPublisher(redisURL, channel string, queueSize int) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if queueSize <= 0 {
		queueSize = 256
	}

	p := &RedisPublisher{
		client:  redis.NewClient(opts),
		channel: channel,
		queue:   make(chan *shipments.Shipment, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p, nil
}

// Publish enqueues a snapshot for mirroring. It never blocks: when the queue
// is full the snapshot is dropped and counted.
func (p *RedisPublisher) Publish(shipment *shipments.Shipment) {
	select {
	case p.queue <- shipment:
	default:
		metrics.PushesDroppedTotal.Inc()
		logger.Get().Warn("Redis publish queue full, snapshot dropped",
			zap.String("shipment_id", shipment.ID),
		)
	}
}

// Ping checks if Redis is reachable.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close stops the worker, drains nothing further and closes the connection.
func (p *RedisPublisher) Close() error {
	p.closeOnce.Do(func() {
		close(p.queue)
		<-p.done
	})
	return p.client.Close()
}

// run drains the queue until Close. Publish failures are logged and swallowed;
// they must never propagate to the event submitter.
func (p *RedisPublisher) run() {
	defer close(p.done)
	ctx := context.Background()

	for shipment := range p.queue {
		msg := domain.PushMessage{
			Type:     domain.PushTypeShipmentUpdate,
			Shipment: shipment,
		}
		data, err := json.Marshal(msg)
		if err != nil {
			logger.Get().Error("Failed to marshal snapshot", zap.Error(err))
			continue
		}
		if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
			logger.Get().Error("Failed to publish snapshot to Redis",
				zap.String("shipment_id", shipment.ID),
				zap.Error(err),
			)
		}
	}
}
