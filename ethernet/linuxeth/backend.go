// Package linuxeth implements the Ethernet backend for generic Linux
// switches whose driver publishes per-port counters through ethtool.
package linuxeth

import (
	"context"

	"github.com/prometheus/procfs"
	"github.com/rs/zerolog"
	"github.com/safchain/ethtool"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

// Ethtool reads the driver statistics by name, as *ethtool.Ethtool does.
type Ethtool interface {
	Stats(intf string) (map[string]uint64, error)
	Close()
}

// Opener returns a new ethtool handle for a single accessor call.
type Opener func() (Ethtool, error)

func Open() (Ethtool, error) {
	et, err := ethtool.NewEthtool()
	if err != nil {
		return nil, err
	}
	return et, nil
}

type Counters interface {
	Line(ifname string) (procfs.NetDevLine, error)
}

type Backend struct {
	open     Opener
	counters Counters
	log      zerolog.Logger
}

func New(open Opener, counters Counters, log zerolog.Logger) *Backend {
	return &Backend{
		open:     open,
		counters: counters,
		log:      log.With().Str("backend", "linux-eth").Logger(),
	}
}

func (b *Backend) Prefixes() []string {
	return []string{"lan"}
}

func (b *Backend) read(op, ifname string) (procfs.NetDevLine, map[string]uint64, error) {
	l, err := b.counters.Line(ifname)
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("error reading interface counters")
		return procfs.NetDevLine{}, nil, halerr.New(halerr.Query, op, err)
	}
	et, err := b.open()
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("failed to open ethtool socket")
		return procfs.NetDevLine{}, nil, halerr.New(halerr.HandleOpen, op, err)
	}
	defer et.Close()
	st, err := et.Stats(ifname)
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Msg("nic_stats collection failed")
		return procfs.NetDevLine{}, nil, halerr.New(halerr.Query, op, err)
	}
	return l, st, nil
}

// Stats takes bytes and errors from the kernel and the packet counters from
// the switch driver.
func (b *Backend) Stats(ctx context.Context, ifname string) (model.EthStats, error) {
	l, st, err := b.read("linuxeth.Stats", ifname)
	if err != nil {
		return model.EthStats{}, err
	}
	return model.EthStats{
		TxBytes:          l.TxBytes,
		TxPackets:        l.TxPackets,
		TxErrors:         l.TxErrors,
		TxUcastPackets:   st["TxUnicast"],
		TxMcastPackets:   st["TxMulticast"],
		TxBcastPackets:   st["TxBroadcast"],
		TxDiscardPackets: st["TxDrop"],
		RxBytes:          l.RxBytes,
		RxPackets:        st["rx_packets"],
		RxErrors:         l.RxErrors,
		RxUcastPackets:   st["RxUnicast"],
		RxMcastPackets:   st["RxMulticast"],
		RxBcastPackets:   st["RxBroadcast"],
		RxDiscardPackets: st["RxDrop"],
	}, nil
}

func (b *Backend) RMONStats(ctx context.Context, ifname string, txq int) (model.RMONStats, error) {
	_, st, err := b.read("linuxeth.RMONStats", ifname)
	if err != nil {
		return model.RMONStats{}, err
	}
	return model.RMONStats{
		TxQueue: txq,
		Status:  model.RMONEnabled,
		Tx: model.RMONCounters{
			Packets:           st["tx_packets"],
			Bytes:             st["tx_bytes"],
			CRCErrPackets:     uint32(st["TxCrcErr"]),
			Packets64:         st["TxPktSz64"],
			Packets65to127:    st["TxPktSz65To127"],
			Packets128to255:   st["TxPktSz128To255"],
			Packets256to511:   st["TxPktSz256To511"],
			Packets512to1023:  st["TxPktSz512To1023"],
			Packets1024to1518: st["Tx1024ToMax"],
		},
		Rx: model.RMONCounters{
			Bytes:             st["RxBytes"],
			Packets:           st["rx_packets"],
			BcastPackets:      st["RxBroadcast"],
			McastPackets:      st["RxMulticast"],
			CRCErrPackets:     uint32(st["RxCrcErr"]),
			UnderSizePackets:  uint32(st["RxUnderSizeErr"]),
			OverSizePackets:   uint32(st["RxOverSzErr"]),
			Packets64:         st["RxPktSz64"],
			Packets65to127:    st["RxPktSz65To127"],
			Packets128to255:   st["RxPktSz128To255"],
			Packets256to511:   st["RxPktSz256To511"],
			Packets512to1023:  st["RxPktSz512To1023"],
			Packets1024to1518: st["RxPktSz1024ToMax"],
		},
	}, nil
}
