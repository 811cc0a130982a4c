// Package broadcom reads egress queue counters on Broadcom BCA platforms,
// either from the Runner traffic manager or from the Archer packet
// accelerator.
package broadcom

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
	"github.com/swoga/cpehal/qos"
)

const (
	RDPAUserPath = "/dev/rdpa_user"
	ArcherPath   = "/dev/archer"
	BoardPath    = "/dev/brcmboard"
)

// Handle is a kernel side bdmf object handle.
type Handle uint64

type Counter struct {
	Packets uint32
	Bytes   uint32
}

// Stat1Way holds the passed and discarded counters of rdpa_stat_1way_t.
type Stat1Way struct {
	Passed    Counter
	Discarded Counter
}

// RDPA is the Runner management API behind /dev/rdpa_user.
type RDPA interface {
	// PortOwner returns the rdpa port object of ifname.
	PortOwner(ifname string) (Handle, error)
	// RootTM returns the root scheduler of a port.
	RootTM(port Handle) (Handle, error)
	// QueueLocation returns the egress TM holding queue and its index there.
	QueueLocation(root Handle, queue int) (Handle, int, error)
	QueueStat(tm Handle, idx int) (Stat1Way, error)
}

// Archer reads the per queue counters kept by the Archer driver.
type Archer interface {
	TxQueueStats(ifname string, queue int) (model.QueueStats, error)
}

type Board interface {
	ChipID() (uint32, error)
}

type Backend struct {
	rdpa   RDPA
	archer Archer
	board  Board
	log    zerolog.Logger
}

// NewRunner returns a backend reading through the Runner traffic manager.
func NewRunner(rdpa RDPA, board Board, log zerolog.Logger) *Backend {
	return &Backend{
		rdpa:  rdpa,
		board: board,
		log:   log.With().Str("backend", "bcm-runner-qos").Logger(),
	}
}

// NewArcher returns a backend reading through the Archer driver.
func NewArcher(archer Archer, log zerolog.Logger) *Backend {
	return &Backend{
		archer: archer,
		log:    log.With().Str("backend", "bcm-archer-qos").Logger(),
	}
}

func (b *Backend) Prefixes() []string {
	return []string{"eth"}
}

func (b *Backend) QueueStats(ctx context.Context, ifname string, queue int) (model.QueueStats, error) {
	const op = "broadcom.QueueStats"
	if err := qos.CheckQueue(op, queue); err != nil {
		return model.QueueStats{}, err
	}
	if b.archer != nil {
		s, err := b.archer.TxQueueStats(ifname, queue)
		if err != nil {
			b.log.Error().Err(err).Str("ifname", ifname).Int("queue", queue).Msg("archer txq stats failed")
			return model.QueueStats{}, wrap(op, err)
		}
		s.ReadAndReset = false
		return s, nil
	}

	st, err := b.runnerStat(ifname, queue)
	if err != nil {
		b.log.Error().Err(err).Str("ifname", ifname).Int("queue", queue).Msg("cannot find queue stats")
		return model.QueueStats{}, wrap(op, err)
	}
	b.log.Debug().Str("ifname", ifname).Int("queue", queue).
		Uint32("passed_packets", st.Passed.Packets).
		Uint32("discarded_packets", st.Discarded.Packets).
		Msg("runner queue stats")
	return model.QueueStats{
		TxPackets:        uint64(st.Passed.Packets),
		TxBytes:          uint64(st.Passed.Bytes),
		TxDroppedPackets: uint64(st.Discarded.Packets),
		TxDroppedBytes:   uint64(st.Discarded.Bytes),
		ReadAndReset:     b.readAndReset(),
	}, nil
}

func wrap(op string, err error) error {
	if halerr.KindOf(err) == halerr.Unknown {
		return halerr.New(halerr.Query, op, err)
	}
	return err
}

func (b *Backend) runnerStat(ifname string, queue int) (Stat1Way, error) {
	owner, err := b.rdpa.PortOwner(ifname)
	if err != nil {
		return Stat1Way{}, fmt.Errorf("error reading tm owner: %w", err)
	}
	root, err := b.rdpa.RootTM(owner)
	if err != nil {
		return Stat1Way{}, fmt.Errorf("error getting root tm: %w", err)
	}
	tm, idx, err := b.rdpa.QueueLocation(root, queue)
	if err != nil {
		return Stat1Way{}, fmt.Errorf("error getting queue tm: %w", err)
	}
	st, err := b.rdpa.QueueStat(tm, idx)
	if err != nil {
		return Stat1Way{}, fmt.Errorf("error reading queue stat: %w", err)
	}
	return st, nil
}

// readAndReset reports whether the Runner clears the counters on read.
// Without a chip id the counters are treated as accumulating.
func (b *Backend) readAndReset() bool {
	if b.board == nil {
		return false
	}
	id, err := b.board.ChipID()
	if err != nil {
		b.log.Debug().Err(err).Msg("chip id unavailable")
		return false
	}
	return !accumulates(id)
}

// accumulates reports the chip families whose Runner keeps running totals:
// 68xx, 675x and 6315.
func accumulates(chipID uint32) bool {
	hex := fmt.Sprintf("%X", chipID)
	for _, p := range []string{"68", "675", "6315"} {
		if strings.HasPrefix(hex, p) {
			return true
		}
	}
	return false
}
