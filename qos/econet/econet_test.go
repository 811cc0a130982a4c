package econet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

const klogDump = `<6>[  10.1] Ring 0 Queue 7: tx Counts: 1, tx Bytes: 10, tx drop Counts: 0, tx drop Bytes: 0
<6>[  10.2] Ring 1 Queue 7: tx Counts: 2, tx Bytes: 20, tx drop Counts: 1, tx drop Bytes: 5
<6>[  20.1] Ring 0 Queue 7: tx Counts: 5, tx Bytes: 50, tx drop Counts: 0, tx drop Bytes: 0
<6>[  20.2] Ring 3 Queue 0: tx Counts: 9, tx Bytes: 90, tx drop Counts: 3, tx drop Bytes: 30
<6>[  20.3] Ring 4 Queue 7: garbled
`

type fakeKlog struct {
	data  string
	err   error
	reads int
}

func (k *fakeKlog) Read() ([]byte, error) {
	k.reads++
	return []byte(k.data), k.err
}

func newTestBackend(t *testing.T, klog KernelLog) *Backend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counters")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	b := New(klog, zerolog.Nop())
	b.counters = path
	b.exists = func(ifname string) bool { return ifname != "nas9" }
	return b
}

func TestHWQueue(t *testing.T) {
	for q, want := range map[int]int{0: 0, 1: 7, 4: 4, 7: 1} {
		assert.Equal(t, want, hwQueue(q), "queue %d", q)
	}
}

func TestScrape(t *testing.T) {
	assert.Equal(t, model.QueueStats{
		TxPackets:        7,
		TxBytes:          70,
		TxDroppedPackets: 1,
		TxDroppedBytes:   5,
	}, scrape(klogDump, 7))

	assert.Equal(t, model.QueueStats{
		TxPackets:        9,
		TxBytes:          90,
		TxDroppedPackets: 3,
		TxDroppedBytes:   30,
	}, scrape(klogDump, 0))

	assert.Zero(t, scrape(klogDump, 5))
}

func TestQueueStats(t *testing.T) {
	k := &fakeKlog{data: klogDump}
	b := newTestBackend(t, k)
	ctx := context.Background()

	s, err := b.QueueStats(ctx, "nas0", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.TxPackets)
	assert.False(t, s.ReadAndReset)

	_, err = b.QueueStats(ctx, "nas9", 1)
	assert.ErrorIs(t, err, halerr.ErrInvalidArgument)

	_, err = b.QueueStats(ctx, "nas0", 8)
	assert.ErrorIs(t, err, halerr.ErrInvalidArgument)
	assert.Equal(t, 1, k.reads)

	k.err = errors.New("EPERM")
	_, err = b.QueueStats(ctx, "nas0", 0)
	assert.ErrorIs(t, err, halerr.ErrQuery)

	b.counters = filepath.Join(t.TempDir(), "missing")
	_, err = b.QueueStats(ctx, "nas0", 0)
	assert.ErrorIs(t, err, halerr.ErrHandleOpen)
}
