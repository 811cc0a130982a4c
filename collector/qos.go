package collector

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/cache"
	"github.com/swoga/cpehal/qos"
)

// AddMetricsQoS exports the queue counters of ifnames. Counters of
// read-and-reset drivers are summed up in totals between probes. An empty
// queues list selects every queue.
func AddMetricsQoS(ctx context.Context, registry prometheus.Registerer, d *qos.Dispatcher, totals *cache.Cache, ifnames []string, queues []int, log zerolog.Logger) error {
	registry = prometheus.WrapRegistererWithPrefix("qos_queue_", registry)

	labels := []string{"interface", "queue"}
	txPacketsCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tx_packets_total",
	}, labels)
	registry.MustRegister(txPacketsCounterVec)
	txBytesCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tx_bytes_total",
	}, labels)
	registry.MustRegister(txBytesCounterVec)
	droppedPacketsCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tx_dropped_packets_total",
	}, labels)
	registry.MustRegister(droppedPacketsCounterVec)
	droppedBytesCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tx_dropped_bytes_total",
	}, labels)
	registry.MustRegister(droppedBytesCounterVec)

	if len(queues) == 0 {
		for q := 0; q < qos.MaxQueues; q++ {
			queues = append(queues, q)
		}
	}

	var firstErr error
	for _, ifname := range ifnames {
		for _, q := range queues {
			s, err := d.QueueStats(ctx, ifname, q)
			if err != nil {
				log.Error().Err(err).Str("ifname", ifname).Int("queue", q).Msg("error reading queue stats")
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			s = totals.Add(cache.Key(ifname, q), s)

			queue := strconv.Itoa(q)
			txPacketsCounterVec.WithLabelValues(ifname, queue).Add(float64(s.TxPackets))
			txBytesCounterVec.WithLabelValues(ifname, queue).Add(float64(s.TxBytes))
			droppedPacketsCounterVec.WithLabelValues(ifname, queue).Add(float64(s.TxDroppedPackets))
			droppedBytesCounterVec.WithLabelValues(ifname, queue).Add(float64(s.TxDroppedBytes))
		}
	}
	return firstErr
}
