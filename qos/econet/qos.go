// Package econet reads QDMA queue counters on EcoNet SoCs. The driver only
// prints them to the kernel log, so every read triggers a dump and scrapes
// the ring buffer.
package econet

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
	"github.com/swoga/cpehal/qos"
)

const (
	// CountersPath prints the QDMA ring counters to the kernel log when read.
	CountersPath = "/proc/qdma_wan/counters"

	rings = 8
	// maxKlogSize caps the kernel log buffer read per call.
	maxKlogSize = 20 << 20
)

// KernelLog returns the current contents of the kernel ring buffer.
type KernelLog interface {
	Read() ([]byte, error)
}

type Backend struct {
	// mu serializes trigger and scrape, the dump lines of two readers
	// would interleave otherwise.
	mu       sync.Mutex
	klog     KernelLog
	counters string
	exists   func(ifname string) bool
	log      zerolog.Logger
}

func New(klog KernelLog, log zerolog.Logger) *Backend {
	return &Backend{
		klog:     klog,
		counters: CountersPath,
		exists:   interfaceExists,
		log:      log.With().Str("backend", "econet-qos").Logger(),
	}
}

func interfaceExists(ifname string) bool {
	_, err := net.InterfaceByName(ifname)
	return err == nil
}

func (b *Backend) Prefixes() []string {
	return []string{"eth", "nas", "ae_wan"}
}

// trigger reads one byte of the counters file, which makes the driver
// print the counters.
func (b *Backend) trigger() error {
	f, err := os.Open(b.counters)
	if err != nil {
		return err
	}
	defer f.Close()
	var buf [1]byte
	if _, err := f.Read(buf[:]); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// hwQueue maps a queue id onto the QDMA numbering, which runs backwards
// for queues 1..7.
func hwQueue(queue int) int {
	if queue > 0 && queue < rings {
		return rings - queue
	}
	return queue
}

func (b *Backend) QueueStats(ctx context.Context, ifname string, queue int) (model.QueueStats, error) {
	const op = "econet.QueueStats"
	if err := qos.CheckQueue(op, queue); err != nil {
		return model.QueueStats{}, err
	}
	if !b.exists(ifname) {
		return model.QueueStats{}, halerr.Errorf(halerr.InvalidArgument, op, "no such interface %s", ifname)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.trigger(); err != nil {
		b.log.Error().Err(err).Str("path", b.counters).Msg("error triggering counter dump")
		return model.QueueStats{}, halerr.New(halerr.HandleOpen, op, err)
	}
	buf, err := b.klog.Read()
	if err != nil {
		b.log.Error().Err(err).Msg("error reading kernel log")
		return model.QueueStats{}, halerr.New(halerr.Query, op, err)
	}

	return scrape(string(buf), hwQueue(queue)), nil
}

// scrape sums the last printed counters of queue over all rings.
func scrape(klog string, queue int) model.QueueStats {
	var s model.QueueStats
	for ring := 0; ring < rings; ring++ {
		c := lastCounters(klog, fmt.Sprintf("Ring %d Queue %d", ring, queue))
		s.TxPackets += c[0]
		s.TxBytes += c[1]
		s.TxDroppedPackets += c[2]
		s.TxDroppedBytes += c[3]
	}
	return s
}

// lastCounters parses the line following the last occurrence of name. Lines
// that do not carry all four counters count as zero.
func lastCounters(klog, name string) [4]uint64 {
	var c [4]uint64
	i := strings.LastIndex(klog, name)
	if i < 0 {
		return c
	}
	rest := klog[i+len(name):]
	if len(rest) > 0 {
		rest = rest[1:]
	}
	if j := strings.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	rest = strings.TrimLeft(rest, " ")

	n, err := fmt.Sscanf(rest, "tx Counts: %d, tx Bytes: %d, tx drop Counts: %d, tx drop Bytes: %d", &c[0], &c[1], &c[2], &c[3])
	if err != nil || n != 4 {
		return [4]uint64{}
	}
	return c
}
