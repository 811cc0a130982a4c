// Package ipq95xx implements the Ethernet backend for Qualcomm IPQ95xx
// boards, which expose their ports as plain netdevs.
package ipq95xx

import (
	"context"

	"github.com/prometheus/procfs"
	"github.com/rs/zerolog"
	"github.com/safchain/ethtool"
	"github.com/swoga/cpehal/ethernet"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

const (
	duplexHalf = 0
	duplexFull = 1
)

// Ethtool is the subset of *ethtool.Ethtool used for link settings.
type Ethtool interface {
	CmdGet(ecmd *ethtool.EthtoolCmd, intf string) (uint32, error)
	CmdSet(ecmd *ethtool.EthtoolCmd, intf string) (uint32, error)
	Close()
}

// Opener returns a new ethtool handle. Every accessor opens its own handle
// and closes it before returning.
type Opener func() (Ethtool, error)

// Open opens an ethtool socket.
func Open() (Ethtool, error) {
	et, err := ethtool.NewEthtool()
	if err != nil {
		return nil, err
	}
	return et, nil
}

// Counters reads the kernel interface counters.
type Counters interface {
	Line(ifname string) (procfs.NetDevLine, error)
}

type Backend struct {
	open     Opener
	counters Counters
	mii      ethernet.MII
	log      zerolog.Logger
}

func New(open Opener, counters Counters, mii ethernet.MII, log zerolog.Logger) *Backend {
	return &Backend{
		open:     open,
		counters: counters,
		mii:      mii,
		log:      log.With().Str("backend", "ipq95xx-eth").Logger(),
	}
}

func (b *Backend) Prefixes() []string {
	return []string{"eth"}
}

// withEthtool runs fn on a freshly opened handle and always closes it.
func (b *Backend) withEthtool(op, ifname string, fn func(Ethtool) error) error {
	et, err := b.open()
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("failed to open ethtool socket")
		return halerr.New(halerr.HandleOpen, op, err)
	}
	defer et.Close()
	return fn(et)
}

func (b *Backend) get(et Ethtool, op, ifname string) (*ethtool.EthtoolCmd, error) {
	var cmd ethtool.EthtoolCmd
	if _, err := et.CmdGet(&cmd, ifname); err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("ethtool get settings failed")
		return nil, halerr.New(halerr.Query, op, err)
	}
	return &cmd, nil
}

func (b *Backend) LinkSettings(ctx context.Context, ifname string) (model.EthLink, error) {
	const op = "ipq95xx.LinkSettings"
	var link model.EthLink
	err := b.withEthtool(op, ifname, func(et Ethtool) error {
		cmd, err := b.get(et, op, ifname)
		if err != nil {
			return err
		}
		link = model.EthLink{
			PortID:     int(cmd.Port),
			Speed:      uint32(cmd.Speed) | uint32(cmd.Speed_hi)<<16,
			Autoneg:    cmd.Autoneg != 0,
			FullDuplex: cmd.Duplex == duplexFull,
		}
		return nil
	})
	return link, err
}

// SetLinkSettings applies port, speed, autoneg and duplex of link on top of
// the current settings.
func (b *Backend) SetLinkSettings(ctx context.Context, ifname string, link model.EthLink) error {
	const op = "ipq95xx.SetLinkSettings"
	return b.withEthtool(op, ifname, func(et Ethtool) error {
		cmd, err := b.get(et, op, ifname)
		if err != nil {
			return err
		}
		if link.PortID != model.PortUndefined {
			cmd.Port = uint8(link.PortID)
		}
		cmd.Speed = uint16(link.Speed)
		cmd.Speed_hi = uint16(link.Speed >> 16)
		cmd.Autoneg = 0
		if link.Autoneg {
			cmd.Autoneg = 1
		}
		cmd.Duplex = duplexHalf
		if link.FullDuplex {
			cmd.Duplex = duplexFull
		}
		if _, err := et.CmdSet(cmd, ifname); err != nil {
			b.log.Error().Err(err).Str("ifname", ifname).Msg("ethtool set settings failed")
			return halerr.New(halerr.Query, op, err)
		}
		return nil
	})
}

func (b *Backend) ResetPHY(ctx context.Context, ifname string, phyID int) error {
	if b.mii == nil {
		return halerr.New(halerr.NotSupported, "ipq95xx.ResetPHY", nil)
	}
	return b.mii.ResetPHY(ifname, phyID)
}

func (b *Backend) Stats(ctx context.Context, ifname string) (model.EthStats, error) {
	l, err := b.counters.Line(ifname)
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("error reading stats")
		return model.EthStats{}, halerr.New(halerr.Query, "ipq95xx.Stats", err)
	}
	return model.EthStats{
		RxPackets:        l.RxPackets,
		TxPackets:        l.TxPackets,
		RxBytes:          l.RxBytes,
		TxBytes:          l.TxBytes,
		RxErrors:         l.RxErrors,
		TxErrors:         l.TxErrors,
		RxDiscardPackets: l.RxDropped,
		TxDiscardPackets: l.TxDropped,
	}, nil
}
