// Package api serves the accessors of the active platform as JSON endpoints,
// e.g. GET /api/ethernet/eth0/stats or GET /api/qos/eth0/3. DSL line and
// ATM link settings are written with POST /api/dsl/{line,atm}/<n>/configure.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
	"github.com/swoga/cpehal/platform"
)

type Handler struct {
	prefix   string
	platform func() *platform.Platform
	log      zerolog.Logger
}

// New returns a handler for requests below prefix. The platform is looked
// up on every request so a config reload can replace it.
func New(prefix string, get func() *platform.Platform, log zerolog.Logger) *Handler {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Handler{
		prefix:   prefix,
		platform: get,
		log:      log.With().Str("component", "api").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, h.prefix), "/")
	parts := strings.Split(path, "/")
	log := h.log.With().Str("path", path).Str("method", r.Method).Logger()
	log.Debug().Msg("api request")

	configure := parts[len(parts)-1] == "configure"
	if (configure && r.Method != http.MethodPost) || (!configure && r.Method != http.MethodGet) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := h.platform()
	if p == nil {
		http.Error(w, "no platform", http.StatusServiceUnavailable)
		return
	}

	var (
		data interface{}
		err  error
	)
	switch {
	case configure && parts[0] == "dsl":
		err = configureRequest(r.Context(), p, parts[1:], r.Body)
	case configure:
		http.NotFound(w, r)
		return
	case parts[0] == "ethernet":
		data, err = ethernetRequest(r.Context(), p, parts[1:], r)
	case parts[0] == "qos":
		data, err = qosRequest(r.Context(), p, parts[1:])
	case parts[0] == "dsl":
		data, err = dslRequest(r.Context(), p, parts[1:])
	default:
		http.NotFound(w, r)
		return
	}
	if err == errNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("api request failed")
		http.Error(w, err.Error(), statusCode(err))
		return
	}
	if configure {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		log.Error().Err(err).Msg("error writing response")
	}
}

var errNotFound = errors.New("not found")

func statusCode(err error) int {
	switch halerr.KindOf(err) {
	case halerr.InvalidArgument:
		return http.StatusBadRequest
	case halerr.NotSupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func index(op, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, halerr.Errorf(halerr.InvalidArgument, op, "invalid index %q", s)
	}
	return n, nil
}

// ethernetRequest handles <ifname>/{stats,link,operstate,info,rmon}.
func ethernetRequest(ctx context.Context, p *platform.Platform, parts []string, r *http.Request) (interface{}, error) {
	if len(parts) != 2 {
		return nil, errNotFound
	}
	ifname := parts[0]
	d := p.Ethernet
	switch parts[1] {
	case "stats":
		return d.Stats(ctx, ifname)
	case "link":
		return d.LinkSettings(ctx, ifname)
	case "operstate":
		s, err := d.OperState(ctx, ifname)
		if err != nil {
			return nil, err
		}
		return map[string]string{"operstate": s.String()}, nil
	case "info":
		return d.Info(ctx, ifname)
	case "rmon":
		txq := model.TxQueueAll
		if q := r.URL.Query().Get("txq"); q != "" {
			var err error
			if txq, err = index("api.rmon", q); err != nil {
				return nil, err
			}
		}
		return d.RMONStats(ctx, ifname, txq)
	}
	return nil, errNotFound
}

// qosRequest handles <ifname>/<queue>.
func qosRequest(ctx context.Context, p *platform.Platform, parts []string) (interface{}, error) {
	if len(parts) != 2 {
		return nil, errNotFound
	}
	queue, err := index("api.qos", parts[1])
	if err != nil {
		return nil, err
	}
	return p.QoS.QueueStats(ctx, parts[0], queue)
}

// dslRequest handles {line,channel,fast}/<n>[/stats].
func dslRequest(ctx context.Context, p *platform.Platform, parts []string) (interface{}, error) {
	if p.DSL == nil {
		return nil, halerr.New(halerr.NotSupported, "api.dsl", nil)
	}
	if len(parts) < 2 || len(parts) > 3 {
		return nil, errNotFound
	}
	n, err := index("api.dsl", parts[1])
	if err != nil {
		return nil, err
	}
	stats := len(parts) == 3
	if stats && parts[2] != "stats" {
		return nil, errNotFound
	}

	hal := p.DSL
	switch {
	case parts[0] == "line" && stats:
		return hal.LineStats(ctx, n)
	case parts[0] == "line":
		return hal.LineInfo(ctx, n)
	case parts[0] == "channel" && stats:
		return hal.ChannelStats(ctx, n)
	case parts[0] == "channel":
		return hal.ChannelInfo(ctx, n)
	case parts[0] == "fast" && stats:
		return hal.FastLineStats(ctx, n)
	case parts[0] == "fast":
		return hal.FastLineInfo(ctx, n)
	}
	return nil, errNotFound
}
