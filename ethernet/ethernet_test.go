package ethernet

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

type statsOnly struct {
	name     string
	prefixes []string
}

func (b *statsOnly) Prefixes() []string { return b.prefixes }

func (b *statsOnly) Stats(ctx context.Context, ifname string) (model.EthStats, error) {
	return model.EthStats{TxBytes: uint64(len(b.name))}, nil
}

type fullBackend struct {
	statsOnly
	resets []int
}

func (b *fullBackend) Up(ctx context.Context, ifname string) error   { return nil }
func (b *fullBackend) Down(ctx context.Context, ifname string) error { return nil }

func (b *fullBackend) ResetPHY(ctx context.Context, ifname string, phyID int) error {
	b.resets = append(b.resets, phyID)
	return nil
}

type fakeLinks struct {
	bridges map[string][]string
	state   model.OperState
	err     error
}

func (l *fakeLinks) OperState(ifname string) (model.OperState, error) { return l.state, l.err }

func (l *fakeLinks) IsBridge(ifname string) bool {
	_, ok := l.bridges[ifname]
	return ok
}

func (l *fakeLinks) BridgeMembers(ifname string) ([]string, error) { return l.bridges[ifname], nil }

type fakeMII struct {
	resets []int
}

func (m *fakeMII) PHYID(ifname string, port int) (int, error) { return port + 16, nil }

func (m *fakeMII) Read(ifname string, phyID int, reg uint16) (uint16, error) { return 0, nil }

func (m *fakeMII) Write(ifname string, phyID int, reg uint16, val uint16) error { return nil }

func (m *fakeMII) ResetPHY(ifname string, phyID int) error {
	m.resets = append(m.resets, phyID)
	return nil
}

func TestResolve(t *testing.T) {
	first := &statsOnly{name: "first", prefixes: []string{"eth"}}
	second := &statsOnly{name: "second", prefixes: []string{"ethwan", "nas"}}
	links := &fakeLinks{bridges: map[string][]string{"br-lan": {"eth0", "eth1"}}}

	tests := []struct {
		name     string
		fallback bool
		ifname   string
		want     Backend
	}{
		{"first prefix wins", false, "ethwan0", first},
		{"second backend", false, "nas0", second},
		{"bridge without fallback", false, "br-lan", nil},
		{"bridge with fallback", true, "br-lan", first},
		{"unknown with fallback", true, "wlan0", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher([]Backend{first, second}, links, nil, zerolog.Nop(), Options{BridgeFallback: tt.fallback})
			got, ok := d.Resolve(tt.ifname)
			if tt.want == nil {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestDispatchNotSupported(t *testing.T) {
	d := NewDispatcher([]Backend{&statsOnly{prefixes: []string{"eth"}}}, &fakeLinks{}, nil, zerolog.Nop(), Options{})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"up", func() error { return d.Up(ctx, "eth0") }},
		{"link settings", func() error { _, err := d.LinkSettings(ctx, "eth0"); return err }},
		{"set link settings", func() error { return d.SetLinkSettings(ctx, "eth0", model.EthLink{}) }},
		{"power on", func() error { return d.PowerOnPHY(ctx, "eth0", model.EthPHY{}) }},
		{"rmon", func() error { _, err := d.RMONStats(ctx, "eth0", model.TxQueueAll); return err }},
		{"info", func() error { _, err := d.Info(ctx, "eth0"); return err }},
		{"no backend", func() error { _, err := d.Stats(ctx, "wlan0"); return err }},
		{"set operstate", func() error { return d.SetOperState(ctx, "eth0", model.OperUp) }},
		{"reset without mii", func() error { return d.ResetPHY(ctx, "eth0", 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), halerr.ErrNotSupported)
		})
	}
}

func TestResetPHYFallsBackToMII(t *testing.T) {
	full := &fullBackend{statsOnly: statsOnly{prefixes: []string{"eth"}}}
	mii := &fakeMII{}
	d := NewDispatcher([]Backend{full}, &fakeLinks{}, mii, zerolog.Nop(), Options{})
	ctx := context.Background()

	require.NoError(t, d.ResetPHY(ctx, "eth0", 3))
	require.NoError(t, d.ResetPHY(ctx, "wlan0", 5))
	assert.Equal(t, []int{3}, full.resets)
	assert.Equal(t, []int{5}, mii.resets)

	id, err := d.PHYID(ctx, "eth0", 2)
	require.NoError(t, err)
	assert.Equal(t, 18, id)
	assert.NoError(t, d.Up(ctx, "eth0"))
}

func TestOperState(t *testing.T) {
	links := &fakeLinks{state: model.OperDormant}
	d := NewDispatcher(nil, links, nil, zerolog.Nop(), Options{})

	s, err := d.OperState(context.Background(), "eth0")
	require.NoError(t, err)
	assert.Equal(t, model.OperDormant, s)

	links.err = errors.New("no such device")
	_, err = d.OperState(context.Background(), "eth9")
	assert.ErrorIs(t, err, halerr.ErrQuery)
}

func TestAggregateBridge(t *testing.T) {
	base := model.EthStats{
		TxBytes:          1000,
		RxBytes:          2000,
		TxUcastPackets:   77,
		RxUnknownPackets: 5,
	}
	members := map[string]model.EthStats{
		"eth0": {TxUcastPackets: 1, RxMcastPackets: 2, RxBcastPackets: 3, RxUnknownPackets: 1},
		"eth1": {TxUcastPackets: 10, RxMcastPackets: 20, RxBcastPackets: 30},
		"wl0":  {TxUcastPackets: 100},
	}
	read := func(ifname string) (model.EthStats, error) {
		if ifname == "eth2" {
			return model.EthStats{TxUcastPackets: 1000}, errors.New("gone")
		}
		return members[ifname], nil
	}

	t.Run("members", func(t *testing.T) {
		got := AggregateBridge(base, []string{"eth0", "eth1", "eth2", "wl0"}, read)
		assert.Equal(t, model.EthStats{
			TxBytes:          1000,
			RxBytes:          2000,
			TxUcastPackets:   11,
			RxMcastPackets:   22,
			RxBcastPackets:   33,
			RxUnknownPackets: 1,
		}, got)
	})

	t.Run("empty bridge", func(t *testing.T) {
		assert.Equal(t, base, AggregateBridge(base, nil, read))
	})
}

func TestSysfs(t *testing.T) {
	root := t.TempDir()
	net := filepath.Join(root, "class", "net")
	require.NoError(t, os.MkdirAll(filepath.Join(net, "br-lan", "bridge"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(net, "br-lan", "brif", "eth0"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(net, "br-lan", "brif", "eth1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(net, "eth0"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(net, "eth0", "operstate"), []byte("up\n"), 0o644))

	s, err := NewSysfs(root)
	require.NoError(t, err)

	assert.True(t, s.IsBridge("br-lan"))
	assert.False(t, s.IsBridge("eth0"))

	members, err := s.BridgeMembers("br-lan")
	require.NoError(t, err)
	assert.Equal(t, []string{"eth0", "eth1"}, members)

	st, err := s.OperState("eth0")
	require.NoError(t, err)
	assert.Equal(t, model.OperUp, st)
}

func TestNetDev(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "net"), 0o755))
	dev := "Inter-|   Receive                                                |  Transmit\n" +
		" face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed\n" +
		"  eth0:    1000      10    1    2    0     0          0         0     2000      20    3    4    0     0       0          0\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "net", "dev"), []byte(dev), 0o644))

	n, err := NewNetDev(root)
	require.NoError(t, err)

	l, err := n.Line("eth0")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), l.RxBytes)
	assert.Equal(t, uint64(2), l.RxDropped)
	assert.Equal(t, uint64(4), l.TxDropped)

	_, err = n.Line("eth1")
	assert.Error(t, err)
}
