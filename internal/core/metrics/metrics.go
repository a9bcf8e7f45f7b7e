package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// UpdatesProcessedTotal counts processed update events by type and result.
	UpdatesProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shipment_updates_processed_total",
		Help: "Total update events processed, by update type and result",
	}, []string{"type", "result"})

	// PushesDeliveredTotal counts snapshots handed to subscriber sessions.
	PushesDeliveredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shipment_pushes_delivered_total",
		Help: "Total shipment snapshots enqueued to subscriber sessions",
	})

	// PushesDroppedTotal counts snapshots dropped because a subscriber's
	// buffer was full or the external bridge queue overflowed.
	PushesDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shipment_pushes_dropped_total",
		Help: "Total shipment snapshots dropped on overflow",
	})

	// ActiveSubscribers tracks currently connected subscriber sessions.
	ActiveSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shipment_active_subscribers",
		Help: "Number of connected subscriber sessions",
	})
)

func init() {
	prometheus.MustRegister(UpdatesProcessedTotal, PushesDeliveredTotal, PushesDroppedTotal, ActiveSubscribers)
}
