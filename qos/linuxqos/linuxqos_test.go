package linuxqos

import (
	"context"
	"errors"
	"testing"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

func tcmsg(t *testing.T, ifindex int32, handle, parent uint32, attrs func(ae *netlink.AttributeEncoder)) []byte {
	t.Helper()
	b := make([]byte, tcmsgLen)
	nlenc.PutInt32(b[4:8], ifindex)
	nlenc.PutUint32(b[8:12], handle)
	nlenc.PutUint32(b[12:16], parent)

	ae := netlink.NewAttributeEncoder()
	attrs(ae)
	a, err := ae.Encode()
	require.NoError(t, err)
	return append(b, a...)
}

func TestParseObject(t *testing.T) {
	basic := make([]byte, 16)
	nlenc.PutUint64(basic[0:8], 123456)
	nlenc.PutUint32(basic[8:12], 789)
	queue := make([]byte, 20)
	nlenc.PutUint32(queue[8:12], 12)

	legacy := make([]byte, 36)
	nlenc.PutUint64(legacy[0:8], 1)
	nlenc.PutUint32(legacy[8:12], 2)
	nlenc.PutUint32(legacy[12:16], 3)

	t.Run("stats2", func(t *testing.T) {
		b := tcmsg(t, 4, 0x10000, handleRoot, func(ae *netlink.AttributeEncoder) {
			ae.String(tcaKind, "htb")
			ae.Bytes(tcaStats, legacy)
			ae.Nested(tcaStats2, func(nae *netlink.AttributeEncoder) error {
				nae.Bytes(tcaStatsBasic, basic)
				nae.Bytes(tcaStatsQueue, queue)
				return nil
			})
		})
		o, err := ParseObject(b, false)
		require.NoError(t, err)
		assert.Equal(t, Object{
			Kind:    "htb",
			Ifindex: 4,
			Handle:  0x10000,
			Parent:  handleRoot,
			Stats:   Counters{Bytes: 123456, Packets: 789, Drops: 12},
		}, o)
	})

	t.Run("legacy stats", func(t *testing.T) {
		b := tcmsg(t, 4, 0x10010, 0x10001, func(ae *netlink.AttributeEncoder) {
			ae.String(tcaKind, "htb")
			ae.Bytes(tcaStats, legacy)
		})
		o, err := ParseObject(b, true)
		require.NoError(t, err)
		assert.True(t, o.Class)
		assert.Equal(t, Counters{Bytes: 1, Packets: 2, Drops: 3}, o.Stats)
	})

	t.Run("short", func(t *testing.T) {
		_, err := ParseObject(make([]byte, 8), false)
		assert.Error(t, err)
	})
}

func obj(class bool, handle, parent uint32, packets uint64) Object {
	return Object{Class: class, Ifindex: 2, Handle: handle, Parent: parent, Stats: Counters{Packets: packets, Bytes: packets * 100}}
}

func TestWalkOrder(t *testing.T) {
	objs := []Object{
		obj(false, 0x10000, handleRoot, 100),
		obj(false, 0x100000, 0x10010, 40),
		{Ifindex: 3, Handle: 0x10000, Parent: handleRoot, Stats: Counters{Packets: 999}},
		obj(true, 0x10001, 0x10000, 10),
		obj(true, 0x10010, 0x10001, 20),
		obj(true, 0x10020, 0x10001, 30),
	}

	ring := Walk(objs, 2)
	var got []uint64
	for _, s := range ring {
		got = append(got, s.TxPackets)
	}
	assert.Equal(t, []uint64{100, 40, 20, 30, 10, 0, 0, 0}, got)
	assert.Equal(t, uint64(4000), ring[1].TxBytes)
	assert.Zero(t, ring[1].TxDroppedBytes)
}

func TestWalkWraps(t *testing.T) {
	objs := []Object{obj(false, 0x10000, handleRoot, 100)}
	for i := uint32(1); i <= 9; i++ {
		objs = append(objs, obj(true, 0x10000+i, 0x10000, uint64(i)))
	}
	ring := Walk(objs, 2)
	assert.Equal(t, uint64(8), ring[0].TxPackets)
	assert.Equal(t, uint64(9), ring[1].TxPackets)
	assert.Equal(t, uint64(2), ring[2].TxPackets)
}

func TestWalkEmpty(t *testing.T) {
	assert.Equal(t, [8]model.QueueStats{}, Walk(nil, 2))
}

type fakeDumper struct {
	objs []Object
	err  error
}

func (d *fakeDumper) Dump(ifindex int) ([]Object, error) { return d.objs, d.err }

func TestQueueStats(t *testing.T) {
	d := &fakeDumper{objs: []Object{
		obj(false, 0x10000, handleRoot, 100),
		obj(true, 0x10001, 0x10000, 10),
	}}
	b := New(d, "lan", zerolog.Nop())
	b.ifindex = func(ifname string) (int, error) {
		if ifname != "lan1" {
			return 0, errors.New("no such network interface")
		}
		return 2, nil
	}
	ctx := context.Background()

	s, err := b.QueueStats(ctx, "lan1", 1)
	require.NoError(t, err)
	assert.Equal(t, model.QueueStats{TxPackets: 10, TxBytes: 1000}, s)

	_, err = b.QueueStats(ctx, "lan1", 8)
	assert.ErrorIs(t, err, halerr.ErrInvalidArgument)

	_, err = b.QueueStats(ctx, "lan9", 0)
	assert.ErrorIs(t, err, halerr.ErrInvalidArgument)

	d.err = errors.New("EPERM")
	_, err = b.QueueStats(ctx, "lan1", 0)
	assert.ErrorIs(t, err, halerr.ErrQuery)
}
