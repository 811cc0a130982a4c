package broadcom

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

type fakeRDPA struct {
	owners map[string]Handle
	stats  map[int]Stat1Way
	// failAt names the step that returns an error
	failAt string
	trace  []string
}

func (r *fakeRDPA) step(name string) error {
	r.trace = append(r.trace, name)
	if r.failAt == name {
		return errors.New(name + " failed")
	}
	return nil
}

func (r *fakeRDPA) PortOwner(ifname string) (Handle, error) {
	if err := r.step("owner"); err != nil {
		return 0, err
	}
	h, ok := r.owners[ifname]
	if !ok {
		return 0, errors.New("no port")
	}
	return h, nil
}

func (r *fakeRDPA) RootTM(port Handle) (Handle, error) {
	return port + 0x100, r.step("root")
}

func (r *fakeRDPA) QueueLocation(root Handle, queue int) (Handle, int, error) {
	return root + Handle(queue/4), queue % 4, r.step("location")
}

func (r *fakeRDPA) QueueStat(tm Handle, idx int) (Stat1Way, error) {
	if err := r.step("stat"); err != nil {
		return Stat1Way{}, err
	}
	return r.stats[int(tm)*10+idx], nil
}

type fakeBoard struct {
	id  uint32
	err error
}

func (b fakeBoard) ChipID() (uint32, error) { return b.id, b.err }

type fakeArcher struct {
	stats model.QueueStats
	err   error
}

func (a *fakeArcher) TxQueueStats(ifname string, queue int) (model.QueueStats, error) {
	return a.stats, a.err
}

func TestAccumulates(t *testing.T) {
	tests := []struct {
		chip uint32
		want bool
	}{
		{0x68880, true},
		{0x6858, true},
		{0x6755, true},
		{0x63158, true},
		{0x63138, false},
		{0x4908, false},
		{0x6750, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, accumulates(tt.chip), "chip %X", tt.chip)
	}
}

func TestRunnerQueueStats(t *testing.T) {
	// queue 5 of eth0 lives at tm 0x102, index 1
	r := &fakeRDPA{
		owners: map[string]Handle{"eth0": 1},
		stats:  map[int]Stat1Way{0x102*10 + 1: {Passed: Counter{Packets: 10, Bytes: 1000}, Discarded: Counter{Packets: 2, Bytes: 200}}},
	}
	b := NewRunner(r, fakeBoard{id: 0x63138}, zerolog.Nop())

	s, err := b.QueueStats(context.Background(), "eth0", 5)
	require.NoError(t, err)
	assert.Equal(t, model.QueueStats{
		TxPackets:        10,
		TxBytes:          1000,
		TxDroppedPackets: 2,
		TxDroppedBytes:   200,
		ReadAndReset:     true,
	}, s)
	assert.Equal(t, []string{"owner", "root", "location", "stat"}, r.trace)
}

func TestRunnerReadAndReset(t *testing.T) {
	r := &fakeRDPA{owners: map[string]Handle{"eth1": 2}}
	ctx := context.Background()

	s, err := NewRunner(r, fakeBoard{id: 0x68880}, zerolog.Nop()).QueueStats(ctx, "eth1", 0)
	require.NoError(t, err)
	assert.False(t, s.ReadAndReset)

	s, err = NewRunner(r, fakeBoard{err: errors.New("no board")}, zerolog.Nop()).QueueStats(ctx, "eth1", 0)
	require.NoError(t, err)
	assert.False(t, s.ReadAndReset)
}

func TestRunnerErrors(t *testing.T) {
	for _, step := range []string{"owner", "root", "location", "stat"} {
		t.Run(step, func(t *testing.T) {
			r := &fakeRDPA{owners: map[string]Handle{"eth0": 1}, failAt: step}
			_, err := NewRunner(r, nil, zerolog.Nop()).QueueStats(context.Background(), "eth0", 0)
			assert.ErrorIs(t, err, halerr.ErrQuery)
		})
	}

	r := &fakeRDPA{failAt: "owner"}
	_, err := NewRunner(r, nil, zerolog.Nop()).QueueStats(context.Background(), "eth0", 9)
	assert.ErrorIs(t, err, halerr.ErrInvalidArgument)
	assert.Empty(t, r.trace)
}

func TestArcherQueueStats(t *testing.T) {
	a := &fakeArcher{stats: model.QueueStats{TxPackets: 3, TxBytes: 300, ReadAndReset: true}}
	b := NewArcher(a, zerolog.Nop())

	s, err := b.QueueStats(context.Background(), "eth2", 1)
	require.NoError(t, err)
	assert.Equal(t, model.QueueStats{TxPackets: 3, TxBytes: 300}, s)

	a.err = halerr.Errorf(halerr.HandleOpen, "test", "no /dev/archer")
	_, err = b.QueueStats(context.Background(), "eth2", 1)
	assert.ErrorIs(t, err, halerr.ErrHandleOpen)
}
