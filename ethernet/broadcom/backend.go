// Package broadcom implements the Ethernet backend for Broadcom switches.
package broadcom

import (
	"context"
	"math/bits"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/ethernet"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

type Backend struct {
	sw       Switch
	links    ethernet.Links
	mii      ethernet.MII
	extStats string
	log      zerolog.Logger
}

// New creates the backend. links is used to find bridge members and may be
// nil, in which case bridges are read like any other interface.
func New(sw Switch, links ethernet.Links, mii ethernet.MII, log zerolog.Logger) *Backend {
	return &Backend{
		sw:       sw,
		links:    links,
		mii:      mii,
		extStats: ExtStatsPath,
		log:      log.With().Str("backend", "broadcom-eth").Logger(),
	}
}

func (b *Backend) Prefixes() []string {
	return []string{"eth"}
}

func (b *Backend) do(op, ifname string, req *Request) error {
	if err := b.sw.Do(ifname, req); err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Int32("op", int32(req.Op)).Msg("ethswctl failed")
		if halerr.KindOf(err) == halerr.Unknown {
			err = halerr.New(halerr.Query, op, err)
		}
		return err
	}
	return nil
}

// unitPort resolves the switch unit and port of ifname. A zero port with a
// port map selects the lowest mapped port.
func (b *Backend) unitPort(op, ifname string) (int32, int32, error) {
	req := Request{Op: OpUnitPort}
	if err := b.do(op, ifname, &req); err != nil {
		return 0, 0, err
	}
	port := req.Port
	if port == 0 && req.PortMap != 0 {
		port = int32(bits.TrailingZeros32(req.PortMap))
	}
	return req.Unit, port, nil
}

func capabilities(phycfg uint32) model.EthSpeed {
	var c model.EthSpeed
	for _, m := range []struct {
		bit uint32
		cap model.EthSpeed
	}{
		{phyCfg1000FD, model.Eth1000Full},
		{phyCfg1000HD, model.Eth1000Half},
		{phyCfg100FD, model.Eth100Full},
		{phyCfg100HD, model.Eth100Half},
		{phyCfg10FD, model.Eth10Full},
		{phyCfg10HD, model.Eth10Half},
		{phyCfg5000FD, model.Eth5000Full},
		{phyCfg10000FD, model.Eth10000Full},
	} {
		if phycfg&m.bit != 0 {
			c |= m.cap
		}
	}
	return c
}

func (b *Backend) LinkSettings(ctx context.Context, ifname string) (model.EthLink, error) {
	const op = "broadcom.LinkSettings"
	unit, port, err := b.unitPort(op, ifname)
	if err != nil {
		return model.EthLink{}, err
	}

	mode := Request{Op: OpPHYMode, Unit: unit, Port: port}
	if err := b.do(op, ifname, &mode); err != nil {
		return model.EthLink{}, err
	}
	an := Request{Op: OpPHYAutoneg, Unit: unit, Port: port}
	if err := b.do(op, ifname, &an); err != nil {
		return model.EthLink{}, err
	}
	st := Request{Op: OpLinkStatus, Unit: unit, Port: port}
	if err := b.do(op, ifname, &st); err != nil {
		return model.EthLink{}, err
	}

	return model.EthLink{
		PortID:     int(port),
		Capability: capabilities(mode.PHYCfg),
		Autoneg:    an.AutonegInfo != 0,
		Speed:      uint32(mode.Speed),
		// 1 is half duplex
		FullDuplex: mode.Duplex != 1,
		Down:       st.Status == 0,
	}, nil
}

// SetLinkSettings has no driver operation on this platform and is accepted
// without effect.
func (b *Backend) SetLinkSettings(ctx context.Context, ifname string, link model.EthLink) error {
	b.log.Warn().Str("ifname", ifname).Msg("link settings cannot be changed on this platform")
	return nil
}

func (b *Backend) PowerOnPHY(ctx context.Context, ifname string, phy model.EthPHY) error {
	return b.phyPower(ifname, true)
}

func (b *Backend) PowerOffPHY(ctx context.Context, ifname string, phy model.EthPHY) error {
	return b.phyPower(ifname, false)
}

func (b *Backend) phyPower(ifname string, on bool) error {
	if err := b.sw.SetPHYPower(ifname, on); err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Bool("on", on).Msg("failed to switch PHY power")
		return err
	}
	return nil
}

func (b *Backend) ResetPHY(ctx context.Context, ifname string, phyID int) error {
	if b.mii == nil {
		return halerr.New(halerr.NotSupported, "broadcom.ResetPHY", nil)
	}
	return b.mii.ResetPHY(ifname, ethernet.PHYAddr(phyID))
}

// readStats prefers the extended proc counters and falls back to the MAC
// counters of the switch port.
func (b *Backend) readStats(ifname string) (model.EthStats, error) {
	const op = "broadcom.Stats"
	s, err := readExtStats(b.extStats, ifname)
	if err == nil {
		return s, nil
	}
	b.log.Debug().Err(err).Str("ifname", ifname).Msg("extended stats unavailable, using EMAC counters")

	unit, port, err := b.unitPort(op, ifname)
	if err != nil {
		return model.EthStats{}, err
	}
	req := Request{Op: OpEMACGet, Unit: unit, Port: port, Queue: model.TxQueueAll}
	if err := b.do(op, ifname, &req); err != nil {
		return model.EthStats{}, err
	}
	e := req.EMAC
	rxErrors := uint64(e.RxFCSError) + uint64(e.RxAlignmentError) + uint64(e.RxFrameLengthError) +
		uint64(e.RxCodeError) + uint64(e.RxCarrierSenseError) + uint64(e.RxUndersizePacket) +
		uint64(e.RxOversizePacket)
	return model.EthStats{
		TxBytes:          e.TxByte,
		RxBytes:          e.RxByte,
		TxPackets:        e.TxPacket,
		RxPackets:        e.RxPacket,
		TxErrors:         e.TxError,
		RxErrors:         rxErrors,
		TxUcastPackets:   e.TxUnicastPacket,
		RxUcastPackets:   e.RxUnicastPacket,
		TxMcastPackets:   e.TxMulticastPacket,
		RxMcastPackets:   e.RxMulticastPacket,
		TxBcastPackets:   e.TxBroadcastPacket,
		RxBcastPackets:   e.RxBroadcastPacket,
		RxUnknownPackets: e.RxUnknownOpcode,
	}, nil
}

// Stats reads the counters of ifname. For a bridge the per-cast counters
// are the sum over its Ethernet members.
func (b *Backend) Stats(ctx context.Context, ifname string) (model.EthStats, error) {
	s, err := b.readStats(ifname)
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("error reading stats")
		return model.EthStats{}, err
	}
	if b.links == nil || !b.links.IsBridge(ifname) {
		return s, nil
	}

	members, err := b.links.BridgeMembers(ifname)
	if err != nil {
		return s, nil
	}
	return ethernet.AggregateBridge(s, members, func(m string) (model.EthStats, error) {
		ms, err := b.readStats(m)
		if err != nil {
			b.log.Error().Err(err).Str("ifname", m).Msg("error reading bridge member stats")
		}
		return ms, err
	}), nil
}

func (b *Backend) RMONStats(ctx context.Context, ifname string, txq int) (model.RMONStats, error) {
	const op = "broadcom.RMONStats"
	unit, port, err := b.unitPort(op, ifname)
	if err != nil {
		return model.RMONStats{}, err
	}
	if txq < 0 {
		txq = model.TxQueueAll
	}
	req := Request{Op: OpEMACGet, Unit: unit, Port: port, Queue: int32(txq)}
	if err := b.do(op, ifname, &req); err != nil {
		return model.RMONStats{}, err
	}
	e := req.EMAC
	return model.RMONStats{
		TxQueue: txq,
		Status:  model.RMONEnabled,
		Tx: model.RMONCounters{
			Bytes:             e.TxByte,
			Packets:           e.TxPacket,
			BcastPackets:      e.TxBroadcastPacket,
			McastPackets:      e.TxMulticastPacket,
			CRCErrPackets:     e.TxFCSError,
			UnderSizePackets:  e.TxUndersizeFrame,
			OverSizePackets:   e.TxOversizeFrame,
			Packets64:         e.TxFrame64,
			Packets65to127:    e.TxFrame65To127,
			Packets128to255:   e.TxFrame128To255,
			Packets256to511:   e.TxFrame256To511,
			Packets512to1023:  e.TxFrame512To1023,
			Packets1024to1518: e.TxFrame1024To1518,
		},
		Rx: model.RMONCounters{
			Bytes:             e.RxByte,
			Packets:           e.RxPacket,
			BcastPackets:      e.RxBroadcastPacket,
			McastPackets:      e.RxMulticastPacket,
			CRCErrPackets:     e.RxFCSError,
			UnderSizePackets:  e.RxUndersizePacket,
			OverSizePackets:   e.RxOversizePacket,
			Packets64:         e.RxFrame64,
			Packets65to127:    e.RxFrame65To127,
			Packets128to255:   e.RxFrame128To255,
			Packets256to511:   e.RxFrame256To511,
			Packets512to1023:  e.RxFrame512To1023,
			Packets1024to1518: e.RxFrame1024To1518,
		},
	}, nil
}
