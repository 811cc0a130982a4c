package ipq95xx

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/procfs"
	"github.com/rs/zerolog"
	"github.com/safchain/ethtool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

type fakeEthtool struct {
	cur    ethtool.EthtoolCmd
	set    *ethtool.EthtoolCmd
	err    error
	opened int
	closed int
}

func (f *fakeEthtool) open() (Ethtool, error) {
	f.opened++
	return f, nil
}

func (f *fakeEthtool) Close() {
	f.closed++
}

func (f *fakeEthtool) CmdGet(ecmd *ethtool.EthtoolCmd, intf string) (uint32, error) {
	if f.err != nil {
		return 0, f.err
	}
	*ecmd = f.cur
	return uint32(f.cur.Speed), nil
}

func (f *fakeEthtool) CmdSet(ecmd *ethtool.EthtoolCmd, intf string) (uint32, error) {
	c := *ecmd
	f.set = &c
	return 0, nil
}

type fakeCounters map[string]procfs.NetDevLine

func (c fakeCounters) Line(ifname string) (procfs.NetDevLine, error) {
	l, ok := c[ifname]
	if !ok {
		return procfs.NetDevLine{}, errors.New("no such interface")
	}
	return l, nil
}

func TestLinkSettings(t *testing.T) {
	et := &fakeEthtool{cur: ethtool.EthtoolCmd{Speed: 10000, Duplex: duplexFull, Port: 3, Autoneg: 1}}
	b := New(et.open, fakeCounters{}, nil, zerolog.Nop())

	link, err := b.LinkSettings(context.Background(), "eth0")
	require.NoError(t, err)
	assert.Equal(t, model.EthLink{PortID: 3, Speed: 10000, Autoneg: true, FullDuplex: true}, link)

	et.err = errors.New("EOPNOTSUPP")
	_, err = b.LinkSettings(context.Background(), "eth0")
	assert.ErrorIs(t, err, halerr.ErrQuery)
}

func TestSetLinkSettingsAppliesRequest(t *testing.T) {
	et := &fakeEthtool{cur: ethtool.EthtoolCmd{Speed: 1000, Duplex: duplexFull, Port: 1, Autoneg: 1, Advertising: 0x2f}}
	b := New(et.open, fakeCounters{}, nil, zerolog.Nop())

	err := b.SetLinkSettings(context.Background(), "eth1", model.EthLink{PortID: model.PortUndefined, Speed: 100})
	require.NoError(t, err)
	require.NotNil(t, et.set)
	assert.Equal(t, uint16(100), et.set.Speed)
	assert.Equal(t, uint8(duplexHalf), et.set.Duplex)
	assert.Equal(t, uint8(0), et.set.Autoneg)
	assert.Equal(t, uint8(1), et.set.Port)
	assert.Equal(t, uint32(0x2f), et.set.Advertising)
}

func TestStats(t *testing.T) {
	b := New((&fakeEthtool{}).open, fakeCounters{"eth2": {
		RxBytes:   100,
		RxPackets: 10,
		RxErrors:  1,
		RxDropped: 2,
		TxBytes:   200,
		TxPackets: 20,
		TxErrors:  3,
		TxDropped: 4,
	}}, nil, zerolog.Nop())

	s, err := b.Stats(context.Background(), "eth2")
	require.NoError(t, err)
	assert.Equal(t, model.EthStats{
		RxBytes:          100,
		RxPackets:        10,
		RxErrors:         1,
		RxDiscardPackets: 2,
		TxBytes:          200,
		TxPackets:        20,
		TxErrors:         3,
		TxDiscardPackets: 4,
	}, s)

	_, err = b.Stats(context.Background(), "eth3")
	assert.ErrorIs(t, err, halerr.ErrQuery)
}

func TestHandlePerCall(t *testing.T) {
	et := &fakeEthtool{cur: ethtool.EthtoolCmd{Speed: 1000}}
	b := New(et.open, fakeCounters{}, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := b.LinkSettings(ctx, "eth0")
	require.NoError(t, err)
	require.NoError(t, b.SetLinkSettings(ctx, "eth0", model.EthLink{PortID: model.PortUndefined, Speed: 100}))
	et.err = errors.New("EOPNOTSUPP")
	_, err = b.LinkSettings(ctx, "eth0")
	require.Error(t, err)

	assert.Equal(t, 3, et.opened)
	assert.Equal(t, et.opened, et.closed)
}

func TestOpenFailure(t *testing.T) {
	open := func() (Ethtool, error) { return nil, errors.New("socket: permission denied") }
	b := New(open, fakeCounters{}, nil, zerolog.Nop())

	_, err := b.LinkSettings(context.Background(), "eth0")
	assert.ErrorIs(t, err, halerr.ErrHandleOpen)
	err = b.SetLinkSettings(context.Background(), "eth0", model.EthLink{})
	assert.ErrorIs(t, err, halerr.ErrHandleOpen)
}
