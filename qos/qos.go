// Package qos reads per-queue egress counters through the vendor backend
// responsible for an interface.
package qos

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

// MaxQueues is the number of egress queues addressable per interface.
const MaxQueues = 8

type Backend interface {
	// Prefixes lists the interface name prefixes the backend handles.
	Prefixes() []string
	QueueStats(ctx context.Context, ifname string, queue int) (model.QueueStats, error)
}

type Dispatcher struct {
	backends []Backend
	log      zerolog.Logger
}

func NewDispatcher(backends []Backend, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		backends: backends,
		log:      log.With().Str("component", "qos").Logger(),
	}
}

// Resolve returns the first backend with a prefix of ifname.
func (d *Dispatcher) Resolve(ifname string) (Backend, bool) {
	for _, b := range d.backends {
		for _, p := range b.Prefixes() {
			if strings.HasPrefix(ifname, p) {
				return b, true
			}
		}
	}
	return nil, false
}

func (d *Dispatcher) QueueStats(ctx context.Context, ifname string, queue int) (model.QueueStats, error) {
	b, ok := d.Resolve(ifname)
	if !ok {
		d.log.Debug().Str("ifname", ifname).Msg("no qos backend")
		return model.QueueStats{}, halerr.Errorf(halerr.NotSupported, "qos.QueueStats", "no backend for %s", ifname)
	}
	s, err := b.QueueStats(ctx, ifname, queue)
	if err != nil && halerr.KindOf(err) == halerr.Unknown {
		err = halerr.New(halerr.Query, "qos.QueueStats", err)
	}
	return s, err
}

// CheckQueue rejects queue ids outside 0..MaxQueues-1.
func CheckQueue(op string, queue int) error {
	if queue < 0 || queue >= MaxQueues {
		return halerr.Errorf(halerr.InvalidArgument, op, "queue %d out of range", queue)
	}
	return nil
}
