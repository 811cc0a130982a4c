// Package econet implements the Ethernet backend for EcoNet SoCs on top of
// the vendor switch manager.
package econet

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

type Backend struct {
	sw      SwitchManager
	portMap string
	log     zerolog.Logger
}

func New(sw SwitchManager, log zerolog.Logger) *Backend {
	return &Backend{
		sw:      sw,
		portMap: PortMapPath,
		log:     log.With().Str("backend", "econet-eth").Logger(),
	}
}

// Prefixes covers the LAN ports and both WAN flavours.
func (b *Backend) Prefixes() []string {
	return []string{"eth", nasPrefix, aeWANPrefix}
}

func (b *Backend) port(op, ifname string) (uint8, error) {
	p, err := portNum(b.portMap, ifname)
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("invalid port number")
		return 0, halerr.New(halerr.InvalidArgument, op, err)
	}
	if p < 0 || p >= MaxPort {
		b.log.Error().Int("port", p).Str("ifname", ifname).Msg("switch port out of range")
		return 0, halerr.Errorf(halerr.InvalidArgument, op, "switch port %d out of range", p)
	}
	return uint8(p), nil
}

func (b *Backend) query(op string, err error) error {
	b.log.Error().Err(err).Str("op", op).Msg("switch manager call failed")
	if halerr.KindOf(err) == halerr.Unknown {
		err = halerr.New(halerr.Query, op, err)
	}
	return err
}

func (b *Backend) LinkSettings(ctx context.Context, ifname string) (model.EthLink, error) {
	const op = "econet.LinkSettings"
	port, err := b.port(op, ifname)
	if err != nil {
		return model.EthLink{}, err
	}

	// admin state has no EthLink field but must be readable
	if _, err := b.sw.PortAdmin(port); err != nil {
		return model.EthLink{}, b.query(op, err)
	}
	autoneg, err := b.sw.PortAutoneg(port)
	if err != nil {
		return model.EthLink{}, b.query(op, err)
	}
	up, speed, err := b.sw.PortLinkState(port)
	if err != nil {
		return model.EthLink{}, b.query(op, err)
	}
	duplex, err := b.sw.PortDuplex(port)
	if err != nil {
		return model.EthLink{}, b.query(op, err)
	}
	bitrate, err := b.sw.PortMaxBitrate(port)
	if err != nil {
		return model.EthLink{}, b.query(op, err)
	}

	return model.EthLink{
		PortID:     int(port),
		Capability: bitrateCapability(bitrate, duplex),
		Autoneg:    autoneg,
		Speed:      speed.Mbps(),
		FullDuplex: duplex == "Full",
		Down:       !up,
	}, nil
}

// SetLinkSettings is accepted without effect, the switch manager has no
// speed or duplex setter.
func (b *Backend) SetLinkSettings(ctx context.Context, ifname string, link model.EthLink) error {
	b.log.Warn().Str("ifname", ifname).Msg("link settings cannot be changed on this platform")
	return nil
}

func (b *Backend) PowerOnPHY(ctx context.Context, ifname string, phy model.EthPHY) error {
	return b.setAdmin("econet.PowerOnPHY", ifname, true)
}

func (b *Backend) PowerOffPHY(ctx context.Context, ifname string, phy model.EthPHY) error {
	return b.setAdmin("econet.PowerOffPHY", ifname, false)
}

func (b *Backend) setAdmin(op, ifname string, up bool) error {
	port, err := b.port(op, ifname)
	if err != nil {
		return err
	}
	if err := b.sw.SetPortAdmin(port, up); err != nil {
		return b.query(op, err)
	}
	return nil
}

// ResetPHY is accepted without effect.
func (b *Backend) ResetPHY(ctx context.Context, ifname string, phyID int) error {
	b.log.Warn().Str("ifname", ifname).Msg("PHY reset is not available on this platform")
	return nil
}

func (b *Backend) Stats(ctx context.Context, ifname string) (model.EthStats, error) {
	const op = "econet.Stats"
	port, err := b.port(op, ifname)
	if err != nil {
		return model.EthStats{}, err
	}
	c, err := b.sw.PortStatistics(port)
	if err != nil {
		return model.EthStats{}, b.query(op, err)
	}
	return model.EthStats{
		TxBytes:          uint64(c.TxBytesLo),
		RxBytes:          uint64(c.RxBytesLo),
		TxPackets:        uint64(c.TxPkts),
		RxPackets:        uint64(c.RxPkts),
		TxUcastPackets:   uint64(c.TxUniPkts),
		RxUcastPackets:   uint64(c.RxUniPkts),
		TxMcastPackets:   uint64(c.TxMultiPkts),
		RxMcastPackets:   uint64(c.RxMultiPkts),
		TxBcastPackets:   uint64(c.TxBroadPkts),
		RxBcastPackets:   uint64(c.RxBroadPkts),
		TxDiscardPackets: uint64(c.TxDropFrames),
		RxDiscardPackets: uint64(c.RxDropFrames),
	}, nil
}

// RMONStats has no per-queue view; txq is echoed back. The switch has no
// 128..255 bucket.
func (b *Backend) RMONStats(ctx context.Context, ifname string, txq int) (model.RMONStats, error) {
	const op = "econet.RMONStats"
	port, err := b.port(op, ifname)
	if err != nil {
		return model.RMONStats{}, err
	}
	c, err := b.sw.PortStatistics(port)
	if err != nil {
		return model.RMONStats{}, b.query(op, err)
	}
	return model.RMONStats{
		TxQueue: txq,
		Status:  model.RMONEnabled,
		Tx: model.RMONCounters{
			DropEvents:        c.TxDropFrames,
			Bytes:             uint64(c.TxBytesLo),
			Packets:           uint64(c.TxPkts),
			BcastPackets:      uint64(c.TxBroadPkts),
			McastPackets:      uint64(c.TxMultiPkts),
			CRCErrPackets:     c.TxCRCFrames,
			UnderSizePackets:  c.TxUnderSizePkts,
			OverSizePackets:   c.TxOverSizePkts,
			Packets64:         uint64(c.Tx64BytePkts),
			Packets65to127:    uint64(c.Tx65To127BytePkts),
			Packets256to511:   uint64(c.Tx256To511BytePkts),
			Packets512to1023:  uint64(c.Tx512To1023BytePkts),
			Packets1024to1518: uint64(c.Tx1024To1518Pkts),
		},
		Rx: model.RMONCounters{
			DropEvents:        c.RxDropFrames,
			Bytes:             uint64(c.RxBytesLo),
			Packets:           uint64(c.RxPkts),
			BcastPackets:      uint64(c.RxBroadPkts),
			McastPackets:      uint64(c.RxMultiPkts),
			CRCErrPackets:     c.RxCRCFrames,
			UnderSizePackets:  c.RxUnderSizePkts,
			OverSizePackets:   c.RxOverSizePkts,
			Packets64:         uint64(c.Rx64BytePkts),
			Packets65to127:    uint64(c.Rx65To127BytePkts),
			Packets256to511:   uint64(c.Rx256To511BytePkts),
			Packets512to1023:  uint64(c.Rx512To1023BytePkts),
			Packets1024to1518: uint64(c.Rx1024To1518Pkts),
		},
	}, nil
}
