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

const portMap = `5
lan_port_map
0 1 2 3
switch_port_map
0 3
1 2
2 1
3 0
`

func TestParsePortMap(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wan     bool
		lan     int
		want    int
		wantErr bool
	}{
		{name: "wan", data: portMap, wan: true, want: 5},
		{name: "lan first", data: portMap, lan: 0, want: 3},
		{name: "lan last", data: portMap, lan: 3, want: 0},
		{name: "lan missing", data: portMap, lan: 7, wantErr: true},
		{name: "no section", data: "5\n", lan: 0, wantErr: true},
		{name: "empty", data: "", wan: true, wantErr: true},
		{name: "garbage stops scan", data: "switch_port_map\n0 4\nx y\n1 5\n", lan: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePortMap(tt.data, tt.wan, tt.lan)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPortNum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eth_portmap")
	require.NoError(t, os.WriteFile(path, []byte(portMap), 0o644))

	tests := []struct {
		ifname  string
		want    int
		wantErr bool
	}{
		{ifname: "eth0.2", want: 1},
		{ifname: "nas0", want: 5},
		{ifname: "ae_wan", want: 5},
		{ifname: "eth0.x", wantErr: true},
		{ifname: "eth0.1.5", wantErr: true},
		{ifname: "eth1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ifname, func(t *testing.T) {
			got, err := portNum(path, tt.ifname)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBitrateCapability(t *testing.T) {
	tests := []struct {
		bitrate string
		duplex  string
		want    model.EthSpeed
	}{
		{"1000", "Full", model.Eth1000Full},
		{"1000", "Half", model.Eth1000Half},
		{"2500", "Half", model.Eth2500Full},
		{"10000", "Full", model.Eth10000Full},
		{"100", "Half", model.Eth100Half},
		{"10", "Full", model.Eth10Full},
		{"Auto", "Full", model.Eth100Full},
		{"Auto", "Half", model.Eth100Half},
		{"5", "Full", model.Eth100Full},
	}
	for _, tt := range tests {
		t.Run(tt.bitrate+"/"+tt.duplex, func(t *testing.T) {
			assert.Equal(t, tt.want, bitrateCapability(tt.bitrate, tt.duplex))
		})
	}
}

type fakeSwitchManager struct {
	stats   map[uint8]PortStatistics
	admin   map[uint8]bool
	duplex  string
	bitrate string
	speed   LinkSpeed
	up      bool
	err     error
}

func (m *fakeSwitchManager) PortStatistics(port uint8) (PortStatistics, error) {
	if m.err != nil {
		return PortStatistics{}, m.err
	}
	return m.stats[port], nil
}

func (m *fakeSwitchManager) PortAdmin(port uint8) (bool, error) { return m.admin[port], m.err }

func (m *fakeSwitchManager) SetPortAdmin(port uint8, up bool) error {
	if m.admin == nil {
		m.admin = map[uint8]bool{}
	}
	m.admin[port] = up
	return m.err
}

func (m *fakeSwitchManager) PortAutoneg(port uint8) (bool, error) { return true, m.err }

func (m *fakeSwitchManager) PortLinkState(port uint8) (bool, LinkSpeed, error) {
	return m.up, m.speed, m.err
}

func (m *fakeSwitchManager) PortDuplex(port uint8) (string, error) { return m.duplex, m.err }

func (m *fakeSwitchManager) PortMaxBitrate(port uint8) (string, error) { return m.bitrate, m.err }

func newTestBackend(t *testing.T, sw SwitchManager, portMapData string) *Backend {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eth_portmap")
	require.NoError(t, os.WriteFile(path, []byte(portMapData), 0o644))
	b := New(sw, zerolog.Nop())
	b.portMap = path
	return b
}

func TestLinkSettings(t *testing.T) {
	sw := &fakeSwitchManager{duplex: "Full", bitrate: "1000", speed: Speed1000, up: true}
	b := newTestBackend(t, sw, portMap)

	link, err := b.LinkSettings(context.Background(), "eth0.0")
	require.NoError(t, err)
	assert.Equal(t, model.EthLink{
		PortID:     3,
		Capability: model.Eth1000Full,
		Autoneg:    true,
		Speed:      1000,
		FullDuplex: true,
	}, link)

	sw.err = errors.New("switchmgr down")
	_, err = b.LinkSettings(context.Background(), "eth0.0")
	assert.ErrorIs(t, err, halerr.ErrQuery)
}

func TestStatsAndRMON(t *testing.T) {
	sw := &fakeSwitchManager{stats: map[uint8]PortStatistics{5: {
		TxBytesLo:        1000,
		RxBytesLo:        2000,
		TxUniPkts:        3,
		RxMultiPkts:      4,
		TxDropFrames:     5,
		RxDropFrames:     6,
		RxCRCFrames:      7,
		Tx1024To1518Pkts: 8,
	}}}
	b := newTestBackend(t, sw, portMap)
	ctx := context.Background()

	s, err := b.Stats(ctx, "nas10")
	require.NoError(t, err)
	assert.Equal(t, model.EthStats{
		TxBytes:          1000,
		RxBytes:          2000,
		TxUcastPackets:   3,
		RxMcastPackets:   4,
		TxDiscardPackets: 5,
		RxDiscardPackets: 6,
	}, s)

	r, err := b.RMONStats(ctx, "ae_wan", model.TxQueueAll)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), r.Tx.DropEvents)
	assert.Equal(t, uint32(6), r.Rx.DropEvents)
	assert.Equal(t, uint32(7), r.Rx.CRCErrPackets)
	assert.Equal(t, uint64(8), r.Tx.Packets1024to1518)
	assert.Zero(t, r.Tx.Packets128to255)
}

func TestPortOutOfRange(t *testing.T) {
	b := newTestBackend(t, &fakeSwitchManager{}, "300\n")
	_, err := b.Stats(context.Background(), "nas0")
	assert.ErrorIs(t, err, halerr.ErrInvalidArgument)

	_, err = b.Stats(context.Background(), "eth0.9")
	assert.ErrorIs(t, err, halerr.ErrInvalidArgument)
}

func TestPHYPowerSetsAdmin(t *testing.T) {
	sw := &fakeSwitchManager{}
	b := newTestBackend(t, sw, portMap)
	ctx := context.Background()

	require.NoError(t, b.PowerOffPHY(ctx, "eth0.1", model.EthPHY{}))
	assert.False(t, sw.admin[2])
	require.NoError(t, b.PowerOnPHY(ctx, "eth0.1", model.EthPHY{}))
	assert.True(t, sw.admin[2])
}
