package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/api"
	"github.com/swoga/cpehal/cache"
	"github.com/swoga/cpehal/collector"
	"github.com/swoga/cpehal/config"
	"github.com/swoga/cpehal/platform"
)

const exporterName = "cpehal_exporter"

var (
	sc          *config.SafeConfig
	queueTotals = cache.New()
	log         zerolog.Logger
	hw          = &hardware{}
)

// hardware holds the active platform and rebuilds it when the hardware
// settings of the config change.
type hardware struct {
	sync.RWMutex
	name     string
	opts     platform.Options
	platform *platform.Platform
}

func (h *hardware) Get() *platform.Platform {
	h.RLock()
	defer h.RUnlock()
	return h.platform
}

func (h *hardware) apply(c *config.Config) error {
	opts := c.PlatformOptions()

	h.Lock()
	defer h.Unlock()
	if h.platform != nil && h.name == c.Platform && h.opts == opts {
		return nil
	}

	p, err := platform.New(c.Platform, opts, log)
	if err != nil {
		return err
	}
	h.name, h.opts, h.platform = c.Platform, opts, p
	queueTotals.Reset()
	log.Info().Str("platform", c.Platform).Msg("using platform")
	return nil
}

func main() {
	// parse command line args
	configFile := flag.String("config.file", "cpehal-exporter.yml", "")
	debug := flag.Bool("debug", false, "")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	log.Info().Str("version", version.Info()).Str("build_context", version.BuildContext()).Msg("starting cpehal-exporter")

	prometheus.MustRegister(versioncollector.NewCollector(exporterName))

	// inital config load
	sc = config.New(*configFile)
	if err := sc.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	if err := hw.apply(sc.Get()); err != nil {
		log.Fatal().Err(err).Msg("error initializing platform")
	}

	// setup config reload
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	reloadRequest := make(chan chan error)
	go func() {
		for {
			var reloadResult chan error
			select {
			case <-hup:
				log.Debug().Msg("config reload triggered by SIGHUP")
			case reloadResult = <-reloadRequest:
				log.Debug().Msg("config reload triggered by API")
			}
			err := reload()
			if err != nil {
				log.Error().Err(err).Msg("error reloading config")
			} else {
				log.Info().Msg("reloaded config file")
			}
			if reloadResult != nil {
				reloadResult <- err
			}
		}
	}()

	http.HandleFunc("/-/reload", func(w http.ResponseWriter, r *http.Request) {
		reloadResult := make(chan error)
		reloadRequest <- reloadResult
		err := <-reloadResult
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to reload config: %s", err), http.StatusInternalServerError)
		}
	})

	// start http server
	config := sc.Get()
	http.Handle(config.MetricsPath, promhttp.Handler())
	http.HandleFunc(config.ProbePath, handleRequest)
	http.Handle(config.APIPath, api.New(config.APIPath, hw.Get, log))

	log.Info().Str("metrics_path", config.MetricsPath).Str("probe_path", config.ProbePath).Str("api_path", config.APIPath).Str("listen", config.Listen).Msg("starting http server")

	if err := http.ListenAndServe(config.Listen, nil); err != nil {
		log.Fatal().Err(err).Msg("error starting http server")
	}
}

// reload reads the config file and rebuilds the platform if needed. Paths
// and the listen address only change on restart.
func reload() error {
	if err := sc.LoadConfig(); err != nil {
		return err
	}
	return hw.apply(sc.Get())
}

func handleRequest(w http.ResponseWriter, r *http.Request) {
	config := sc.Get()
	name := r.URL.Query().Get("target")
	if name == "" {
		log.Error().Msg("request with missing target")
		http.Error(w, "?target= missing", http.StatusBadRequest)
		return
	}

	log := log.With().Str("target", name).Logger()

	target, ok := config.Targets[name]
	if !ok {
		log.Error().Msg("unknown target")
		http.Error(w, "unknown target", http.StatusBadRequest)
		return
	}

	timeout := getTimeout(config, r)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(timeout*float64(time.Second)))
	defer cancel()
	r = r.WithContext(ctx)

	start := time.Now()
	registry := prometheus.NewRegistry()
	exporterRegistry := prometheus.WrapRegistererWithPrefix("cpehal_", registry)

	err := probeTarget(ctx, log, target, exporterRegistry)
	var success float64 = 1
	if err != nil {
		log.Error().Err(err).Msg("error probing target")
		success = 0
	}

	probeDurationGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "probe_duration_seconds",
		Help: "Returns how long the probe took to complete in seconds",
	})
	registry.MustRegister(probeDurationGauge)
	duration := time.Since(start).Seconds()
	probeDurationGauge.Set(duration)

	probeSuccessGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "probe_success",
		Help: "Displays whether or not the probe was a success",
	})
	registry.MustRegister(probeSuccessGauge)
	probeSuccessGauge.Set(success)

	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	h.ServeHTTP(w, r)
}

func getTimeout(config *config.Config, r *http.Request) float64 {
	value := r.Header.Get("X-Prometheus-Scrape-Timeout-Seconds")
	if value != "" {
		timeout, err := strconv.ParseFloat(value, 64)
		if err == nil && timeout > 0 {
			return timeout
		}
	}
	return config.Timeout
}

func probeTarget(ctx context.Context, log zerolog.Logger, target *config.Target, registry prometheus.Registerer) error {
	p := hw.Get()
	opts := target.Options

	var errs []error
	if opts.ExportDSL && p.DSL != nil {
		errs = append(errs, collector.AddMetricsDSL(ctx, registry, p.DSL, log))
	}
	if opts.ExportEthernet {
		errs = append(errs, collector.AddMetricsEthernet(ctx, registry, p.Ethernet, target.Interfaces, opts.ExportRMON, log))
	}
	if opts.ExportQoS {
		errs = append(errs, collector.AddMetricsQoS(ctx, registry, p.QoS, queueTotals, target.Interfaces, target.Queues, log))
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
