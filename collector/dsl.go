package collector

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/dsl"
	"github.com/swoga/cpehal/model"
)

func AddMetricsDSL(ctx context.Context, registry prometheus.Registerer, hal *dsl.HAL, log zerolog.Logger) error {
	registry = prometheus.WrapRegistererWithPrefix("dsl_", registry)
	lineErr := addMetricsDSLLines(ctx, prometheus.WrapRegistererWithPrefix("line_", registry), hal, log)
	channelErr := addMetricsDSLChannels(ctx, prometheus.WrapRegistererWithPrefix("channel_", registry), hal, log)
	if lineErr != nil {
		return lineErr
	}
	return channelErr
}

// tenths converts the 0.1 dB units used by the line accessors.
func tenths(v int64) float64 {
	return float64(v) / 10
}

func addMetricsDSLLines(ctx context.Context, registry prometheus.Registerer, hal *dsl.HAL, log zerolog.Logger) error {
	upGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "up",
		Help: "Whether the line is in showtime.",
	}, []string{"line"})
	registry.MustRegister(upGaugeVec)
	infoGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "info",
	}, []string{"line", "link_status", "firmware_version"})
	registry.MustRegister(infoGaugeVec)

	maxBitrateGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "max_bitrate_kbps",
	}, []string{"line", "direction"})
	registry.MustRegister(maxBitrateGaugeVec)
	noiseMarginGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "noise_margin_db",
	}, []string{"line", "direction"})
	registry.MustRegister(noiseMarginGaugeVec)
	attenuationGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "attenuation_db",
	}, []string{"line", "direction"})
	registry.MustRegister(attenuationGaugeVec)
	powerGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "power_dbm",
	}, []string{"line", "direction"})
	registry.MustRegister(powerGaugeVec)

	erroredSecsCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "errored_seconds_total",
	}, []string{"line"})
	registry.MustRegister(erroredSecsCounterVec)
	severelyErroredSecsCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "severely_errored_seconds_total",
	}, []string{"line"})
	registry.MustRegister(severelyErroredSecsCounterVec)

	var firstErr error
	for i := 0; i < hal.Lines(); i++ {
		id := strconv.Itoa(i)
		line, err := hal.LineInfo(ctx, i)
		if err != nil {
			log.Error().Err(err).Int("line", i).Msg("error reading line info")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		var up float64
		if line.Status == model.IfUp {
			up = 1
		}
		upGaugeVec.WithLabelValues(id).Set(up)
		infoGaugeVec.WithLabelValues(id, line.LinkStatus.String(), line.FirmwareVersion).Set(1)

		maxBitrateGaugeVec.WithLabelValues(id, "us").Set(float64(line.MaxBitRate.US))
		maxBitrateGaugeVec.WithLabelValues(id, "ds").Set(float64(line.MaxBitRate.DS))
		noiseMarginGaugeVec.WithLabelValues(id, "us").Set(tenths(line.NoiseMargin.US))
		noiseMarginGaugeVec.WithLabelValues(id, "ds").Set(tenths(line.NoiseMargin.DS))
		attenuationGaugeVec.WithLabelValues(id, "us").Set(tenths(line.Attenuation.US))
		attenuationGaugeVec.WithLabelValues(id, "ds").Set(tenths(line.Attenuation.DS))
		powerGaugeVec.WithLabelValues(id, "us").Set(tenths(line.Power.US))
		powerGaugeVec.WithLabelValues(id, "ds").Set(tenths(line.Power.DS))

		interval, err := hal.LineStatsInterval(ctx, i, model.StatsTotal)
		if err != nil {
			log.Debug().Err(err).Int("line", i).Msg("no line interval stats")
			continue
		}
		if interval.ErroredSecs != model.InvalidCounter {
			erroredSecsCounterVec.WithLabelValues(id).Add(float64(interval.ErroredSecs))
		}
		if interval.SeverelyErroredSecs != model.InvalidCounter {
			severelyErroredSecsCounterVec.WithLabelValues(id).Add(float64(interval.SeverelyErroredSecs))
		}
	}
	return firstErr
}

func addMetricsDSLChannels(ctx context.Context, registry prometheus.Registerer, hal *dsl.HAL, log zerolog.Logger) error {
	rateGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rate_kbps",
	}, []string{"channel", "direction"})
	registry.MustRegister(rateGaugeVec)
	ndrGaugeVec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "net_data_rate_kbps",
	}, []string{"channel", "direction"})
	registry.MustRegister(ndrGaugeVec)

	fecCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fec_errors_total",
	}, []string{"channel", "unit"})
	registry.MustRegister(fecCounterVec)
	hecCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hec_errors_total",
	}, []string{"channel", "unit"})
	registry.MustRegister(hecCounterVec)
	crcCounterVec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crc_errors_total",
	}, []string{"channel", "unit"})
	registry.MustRegister(crcCounterVec)

	add := func(vec *prometheus.CounterVec, id, unit string, v uint32) {
		if v != model.InvalidCounter {
			vec.WithLabelValues(id, unit).Add(float64(v))
		}
	}

	var firstErr error
	for i := 0; i < hal.Channels(); i++ {
		id := strconv.Itoa(i)
		ch, err := hal.ChannelInfo(ctx, i)
		if err != nil {
			log.Error().Err(err).Int("channel", i).Msg("error reading channel info")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		rateGaugeVec.WithLabelValues(id, "us").Set(float64(ch.CurrRate.US))
		rateGaugeVec.WithLabelValues(id, "ds").Set(float64(ch.CurrRate.DS))
		ndrGaugeVec.WithLabelValues(id, "us").Set(float64(ch.ActNDR.US))
		ndrGaugeVec.WithLabelValues(id, "ds").Set(float64(ch.ActNDR.DS))

		s, err := hal.ChannelStatsInterval(ctx, i, model.StatsTotal)
		if err != nil {
			log.Debug().Err(err).Int("channel", i).Msg("no channel interval stats")
			continue
		}
		add(fecCounterVec, id, "xtur", s.XTURFECErrors)
		add(fecCounterVec, id, "xtuc", s.XTUCFECErrors)
		add(hecCounterVec, id, "xtur", s.XTURHECErrors)
		add(hecCounterVec, id, "xtuc", s.XTUCHECErrors)
		add(crcCounterVec, id, "xtur", s.XTURCRCErrors)
		add(crcCounterVec, id, "xtuc", s.XTUCCRCErrors)
	}
	return firstErr
}
