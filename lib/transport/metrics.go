package transport

import (
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterEventMetrics exposes how many hub events slow subscribers missed.
func RegisterEventMetrics(registerer prometheus.Registerer, pubsub *service.Pubsub) error {
	return registerer.Register(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "royaltyhub",
		Name:      "events_dropped_total",
		Help:      "Events not delivered to subscribers that were not keeping up.",
	}, func() float64 {
		return float64(pubsub.Dropped())
	}))
}
