// Package linuxqos reads queue counters from the Linux traffic control tree.
package linuxqos

import (
	"context"
	"net"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
	"github.com/swoga/cpehal/qos"
)

type Dumper interface {
	Dump(ifindex int) ([]Object, error)
}

type Backend struct {
	dumper  Dumper
	prefix  string
	ifindex func(ifname string) (int, error)
	log     zerolog.Logger
}

// New returns a backend for interfaces starting with prefix, "lan" on
// generic Linux and "eth" on IPQ95xx.
func New(dumper Dumper, prefix string, log zerolog.Logger) *Backend {
	return &Backend{
		dumper:  dumper,
		prefix:  prefix,
		ifindex: interfaceIndex,
		log:     log.With().Str("backend", "linux-qos").Logger(),
	}
}

func interfaceIndex(ifname string) (int, error) {
	ifi, err := net.InterfaceByName(ifname)
	if err != nil {
		return 0, err
	}
	return ifi.Index, nil
}

func (b *Backend) Prefixes() []string {
	return []string{b.prefix}
}

func (b *Backend) QueueStats(ctx context.Context, ifname string, queue int) (model.QueueStats, error) {
	const op = "linuxqos.QueueStats"
	if err := qos.CheckQueue(op, queue); err != nil {
		return model.QueueStats{}, err
	}
	idx, err := b.ifindex(ifname)
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("interface lookup failed")
		return model.QueueStats{}, halerr.New(halerr.InvalidArgument, op, err)
	}
	objs, err := b.dumper.Dump(idx)
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("tc dump failed")
		return model.QueueStats{}, halerr.New(halerr.Query, op, err)
	}
	ring := Walk(objs, idx)
	b.log.Debug().Str("ifname", ifname).Int("objects", len(objs)).Int("queue", queue).Msg("walked tc tree")
	return ring[queue], nil
}
