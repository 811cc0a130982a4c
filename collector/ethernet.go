package collector

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/ethernet"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

type counterSpec struct {
	name  string
	value func(model.EthStats) uint64
}

var ethCounters = []counterSpec{
	{"rx_bytes_total", func(s model.EthStats) uint64 { return s.RxBytes }},
	{"rx_packets_total", func(s model.EthStats) uint64 { return s.RxPackets }},
	{"rx_errors_total", func(s model.EthStats) uint64 { return s.RxErrors }},
	{"rx_unicast_packets_total", func(s model.EthStats) uint64 { return s.RxUcastPackets }},
	{"rx_multicast_packets_total", func(s model.EthStats) uint64 { return s.RxMcastPackets }},
	{"rx_broadcast_packets_total", func(s model.EthStats) uint64 { return s.RxBcastPackets }},
	{"rx_discard_packets_total", func(s model.EthStats) uint64 { return s.RxDiscardPackets }},
	{"rx_unknown_packets_total", func(s model.EthStats) uint64 { return s.RxUnknownPackets }},
	{"tx_bytes_total", func(s model.EthStats) uint64 { return s.TxBytes }},
	{"tx_packets_total", func(s model.EthStats) uint64 { return s.TxPackets }},
	{"tx_errors_total", func(s model.EthStats) uint64 { return s.TxErrors }},
	{"tx_unicast_packets_total", func(s model.EthStats) uint64 { return s.TxUcastPackets }},
	{"tx_multicast_packets_total", func(s model.EthStats) uint64 { return s.TxMcastPackets }},
	{"tx_broadcast_packets_total", func(s model.EthStats) uint64 { return s.TxBcastPackets }},
	{"tx_discard_packets_total", func(s model.EthStats) uint64 { return s.TxDiscardPackets }},
}

func AddMetricsEthernet(ctx context.Context, registry prometheus.Registerer, d *ethernet.Dispatcher, ifnames []string, rmon bool, log zerolog.Logger) error {
	registry = prometheus.WrapRegistererWithPrefix("ethernet_", registry)

	operUpGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "oper_up",
		Help: "Whether the interface operational state is up.",
	}, []string{"interface"})
	registry.MustRegister(operUpGaugeVec)
	speedGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "link_speed_mbps",
	}, []string{"interface"})
	registry.MustRegister(speedGaugeVec)
	fullDuplexGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "link_full_duplex",
	}, []string{"interface"})
	registry.MustRegister(fullDuplexGaugeVec)

	counterVecs := make([]*prometheus.CounterVec, len(ethCounters))
	for i, c := range ethCounters {
		counterVecs[i] = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: c.name,
		}, []string{"interface"})
		registry.MustRegister(counterVecs[i])
	}

	var rmonVecs *rmonMetrics
	if rmon {
		rmonVecs = newRMONMetrics(prometheus.WrapRegistererWithPrefix("rmon_", registry))
	}

	var firstErr error
	for _, ifname := range ifnames {
		log := log.With().Str("ifname", ifname).Logger()

		if state, err := d.OperState(ctx, ifname); err == nil {
			var up float64
			if state == model.OperUp {
				up = 1
			}
			operUpGaugeVec.WithLabelValues(ifname).Set(up)
		} else if !halerr.Is(err, halerr.NotSupported) {
			log.Debug().Err(err).Msg("no operstate")
		}

		if link, err := d.LinkSettings(ctx, ifname); err == nil {
			speedGaugeVec.WithLabelValues(ifname).Set(float64(link.Speed))
			var full float64
			if link.FullDuplex {
				full = 1
			}
			fullDuplexGaugeVec.WithLabelValues(ifname).Set(full)
		} else if !halerr.Is(err, halerr.NotSupported) {
			log.Debug().Err(err).Msg("no link settings")
		}

		stats, err := d.Stats(ctx, ifname)
		if err != nil {
			log.Error().Err(err).Msg("error reading interface stats")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for i, c := range ethCounters {
			counterVecs[i].WithLabelValues(ifname).Add(float64(c.value(stats)))
		}

		if rmonVecs == nil {
			continue
		}
		r, err := d.RMONStats(ctx, ifname, model.TxQueueAll)
		if err != nil {
			if !halerr.Is(err, halerr.NotSupported) {
				log.Error().Err(err).Msg("error reading rmon stats")
			}
			continue
		}
		rmonVecs.add(ifname, "tx", r.Tx)
		rmonVecs.add(ifname, "rx", r.Rx)
	}
	return firstErr
}

type rmonMetrics struct {
	bytes     *prometheus.CounterVec
	packets   *prometheus.CounterVec
	dropped   *prometheus.CounterVec
	crcErrors *prometheus.CounterVec
	sizes     *prometheus.CounterVec
}

func newRMONMetrics(registry prometheus.Registerer) *rmonMetrics {
	labels := []string{"interface", "direction"}
	m := &rmonMetrics{
		bytes:     prometheus.NewCounterVec(prometheus.CounterOpts{Name: "bytes_total"}, labels),
		packets:   prometheus.NewCounterVec(prometheus.CounterOpts{Name: "packets_total"}, labels),
		dropped:   prometheus.NewCounterVec(prometheus.CounterOpts{Name: "drop_events_total"}, labels),
		crcErrors: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "crc_errors_total"}, labels),
		sizes:     prometheus.NewCounterVec(prometheus.CounterOpts{Name: "size_packets_total"}, append(labels, "size")),
	}
	registry.MustRegister(m.bytes, m.packets, m.dropped, m.crcErrors, m.sizes)
	return m
}

func (m *rmonMetrics) add(ifname, dir string, c model.RMONCounters) {
	m.bytes.WithLabelValues(ifname, dir).Add(float64(c.Bytes))
	m.packets.WithLabelValues(ifname, dir).Add(float64(c.Packets))
	m.dropped.WithLabelValues(ifname, dir).Add(float64(c.DropEvents))
	m.crcErrors.WithLabelValues(ifname, dir).Add(float64(c.CRCErrPackets))

	sizes := []struct {
		label string
		value uint64
	}{
		{"undersize", uint64(c.UnderSizePackets)},
		{"64", c.Packets64},
		{"65-127", c.Packets65to127},
		{"128-255", c.Packets128to255},
		{"256-511", c.Packets256to511},
		{"512-1023", c.Packets512to1023},
		{"1024-1518", c.Packets1024to1518},
		{"oversize", uint64(c.OverSizePackets)},
	}
	for _, s := range sizes {
		m.sizes.WithLabelValues(ifname, dir, s.label).Add(float64(s.value))
	}
}
