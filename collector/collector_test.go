package collector

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/cache"
	"github.com/swoga/cpehal/dsl"
	dslstub "github.com/swoga/cpehal/dsl/stub"
	"github.com/swoga/cpehal/ethernet"
	ethstub "github.com/swoga/cpehal/ethernet/stub"
	"github.com/swoga/cpehal/qos"
	qosstub "github.com/swoga/cpehal/qos/stub"
)

// value returns the sample of name whose labels contain all of labels.
func value(t *testing.T, registry *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metrics:
		for _, m := range f.GetMetric() {
			found := map[string]string{}
			for _, l := range m.GetLabel() {
				found[l.GetName()] = l.GetValue()
			}
			for k, v := range labels {
				if found[k] != v {
					continue metrics
				}
			}
			if m.GetCounter() != nil {
				return m.GetCounter().GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	t.Fatalf("no sample %s%v", name, labels)
	return 0
}

func TestAddMetricsDSL(t *testing.T) {
	log := zerolog.Nop()
	hal := dsl.New(dslstub.New(log), dsl.DefaultLimits())
	registry := prometheus.NewRegistry()

	require.NoError(t, AddMetricsDSL(context.Background(), registry, hal, log))

	expected := `
# HELP dsl_line_up Whether the line is in showtime.
# TYPE dsl_line_up gauge
dsl_line_up{line="0"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "dsl_line_up"))

	tests := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"dsl_line_max_bitrate_kbps", map[string]string{"direction": "ds"}, 148444},
		{"dsl_line_noise_margin_db", map[string]string{"direction": "ds"}, 17.7},
		{"dsl_line_noise_margin_db", map[string]string{"direction": "us"}, 14.6},
		{"dsl_line_attenuation_db", map[string]string{"direction": "ds"}, 4.8},
		{"dsl_line_power_dbm", map[string]string{"direction": "us"}, 12.3},
		{"dsl_channel_rate_kbps", map[string]string{"direction": "ds"}, 100120},
		{"dsl_channel_net_data_rate_kbps", map[string]string{"direction": "us"}, 59999},
		{"dsl_channel_crc_errors_total", map[string]string{"unit": "xtur"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, value(t, registry, tt.name, tt.labels), 0.0001)
		})
	}

	// HEC counters are invalid on the stub and must not be exported.
	n, err := testutil.GatherAndCount(registry, "dsl_channel_hec_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestAddMetricsEthernet(t *testing.T) {
	log := zerolog.Nop()
	d := ethernet.NewDispatcher([]ethernet.Backend{ethstub.New(log)}, nil, nil, log, ethernet.Options{})

	t.Run("without rmon", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		require.NoError(t, AddMetricsEthernet(context.Background(), registry, d, []string{"eth0"}, false, log))

		assert.Equal(t, float64(1200), value(t, registry, "ethernet_rx_bytes_total", map[string]string{"interface": "eth0"}))
		assert.Equal(t, float64(9), value(t, registry, "ethernet_rx_unknown_packets_total", nil))
		assert.Equal(t, float64(1000), value(t, registry, "ethernet_link_speed_mbps", nil))
		assert.Equal(t, float64(1), value(t, registry, "ethernet_link_full_duplex", nil))

		n, err := testutil.GatherAndCount(registry, "ethernet_oper_up", "ethernet_rmon_bytes_total")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("with rmon", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		require.NoError(t, AddMetricsEthernet(context.Background(), registry, d, []string{"eth1"}, true, log))

		assert.Equal(t, float64(230000), value(t, registry, "ethernet_rmon_bytes_total", map[string]string{"direction": "tx"}))
		assert.Equal(t, float64(6000), value(t, registry, "ethernet_rmon_crc_errors_total", map[string]string{"direction": "rx"}))
		assert.Equal(t, float64(4500), value(t, registry, "ethernet_rmon_size_packets_total", map[string]string{"direction": "rx", "size": "oversize"}))
	})

	t.Run("unknown interface", func(t *testing.T) {
		registry := prometheus.NewRegistry()
		err := AddMetricsEthernet(context.Background(), registry, d, []string{"wl0"}, false, log)
		assert.Error(t, err)
	})
}

func TestAddMetricsQoS(t *testing.T) {
	log := zerolog.Nop()
	d := qos.NewDispatcher([]qos.Backend{qosstub.New()}, log)
	totals := cache.New()

	probe := func() *prometheus.Registry {
		registry := prometheus.NewRegistry()
		require.NoError(t, AddMetricsQoS(context.Background(), registry, d, totals, []string{"eth0"}, []int{0, 3}, log))
		return registry
	}

	registry := probe()
	assert.Equal(t, float64(1000), value(t, registry, "qos_queue_tx_packets_total", map[string]string{"queue": "0"}))
	assert.Equal(t, float64(60000), value(t, registry, "qos_queue_tx_dropped_bytes_total", map[string]string{"queue": "3"}))
	n, err := testutil.GatherAndCount(registry, "qos_queue_tx_bytes_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// the stub clears on read, so the second probe reports the running total
	registry = probe()
	assert.Equal(t, float64(2000), value(t, registry, "qos_queue_tx_packets_total", map[string]string{"queue": "0"}))
	assert.Equal(t, float64(3000000), value(t, registry, "qos_queue_tx_bytes_total", map[string]string{"queue": "0"}))
}

func TestAddMetricsQoSAllQueues(t *testing.T) {
	log := zerolog.Nop()
	d := qos.NewDispatcher([]qos.Backend{qosstub.New()}, log)
	registry := prometheus.NewRegistry()

	require.NoError(t, AddMetricsQoS(context.Background(), registry, d, cache.New(), []string{"eth4"}, nil, log))
	n, err := testutil.GatherAndCount(registry, "qos_queue_tx_packets_total")
	require.NoError(t, err)
	assert.Equal(t, qos.MaxQueues, n)
	assert.Equal(t, float64(8000), value(t, registry, "qos_queue_tx_packets_total", map[string]string{"queue": "7"}))
}
