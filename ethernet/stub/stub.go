// Package stub is the Ethernet backend of the test platform. Every call
// succeeds with fixed counters.
package stub

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/model"
)

type Backend struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Backend {
	return &Backend{log: log.With().Str("backend", "stub-eth").Logger()}
}

func (b *Backend) Prefixes() []string {
	return []string{"eth"}
}

func (b *Backend) LinkSettings(ctx context.Context, ifname string) (model.EthLink, error) {
	return model.EthLink{
		PortID:     model.PortUndefined,
		Capability: model.Eth1000Full | model.Eth100Full | model.Eth10Full,
		Autoneg:    true,
		Speed:      1000,
		FullDuplex: true,
	}, nil
}

func (b *Backend) SetLinkSettings(ctx context.Context, ifname string, link model.EthLink) error {
	b.log.Debug().Str("ifname", ifname).Uint32("speed", link.Speed).Bool("autoneg", link.Autoneg).Msg("set link settings")
	return nil
}

func (b *Backend) PowerOnPHY(ctx context.Context, ifname string, phy model.EthPHY) error {
	return nil
}

func (b *Backend) PowerOffPHY(ctx context.Context, ifname string, phy model.EthPHY) error {
	return nil
}

func (b *Backend) ResetPHY(ctx context.Context, ifname string, phyID int) error {
	return nil
}

func (b *Backend) Stats(ctx context.Context, ifname string) (model.EthStats, error) {
	return model.EthStats{
		TxBytes:          100,
		RxBytes:          1200,
		TxPackets:        900,
		RxPackets:        100,
		TxErrors:         10,
		RxErrors:         20,
		TxUcastPackets:   1,
		RxUcastPackets:   2,
		TxMcastPackets:   3,
		RxMcastPackets:   4,
		TxBcastPackets:   5,
		RxBcastPackets:   6,
		TxDiscardPackets: 7,
		RxDiscardPackets: 8,
		RxUnknownPackets: 9,
	}, nil
}

func (b *Backend) RMONStats(ctx context.Context, ifname string, txq int) (model.RMONStats, error) {
	return model.RMONStats{
		TxQueue: txq,
		Status:  model.RMONEnabled,
		Tx: model.RMONCounters{
			Bytes:             230000,
			Packets:           355000,
			BcastPackets:      2300,
			McastPackets:      3,
			CRCErrPackets:     43,
			UnderSizePackets:  2,
			OverSizePackets:   300,
			Packets64:         900000,
			Packets65to127:    8200,
			Packets128to255:   120000,
			Packets256to511:   2400,
			Packets512to1023:  100000,
			Packets1024to1518: 27000,
		},
		Rx: model.RMONCounters{
			Bytes:             12000,
			Packets:           800000,
			BcastPackets:      3,
			McastPackets:      4,
			CRCErrPackets:     6000,
			UnderSizePackets:  24,
			OverSizePackets:   4500,
			Packets64:         6000,
			Packets65to127:    41000,
			Packets128to255:   3000000,
			Packets256to511:   4500,
			Packets512to1023:  560000,
			Packets1024to1518: 34000,
		},
	}, nil
}
