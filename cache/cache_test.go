package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swoga/cpehal/model"
)

func TestAddReadAndReset(t *testing.T) {
	c := New()
	k := Key("eth0", 3)
	assert.Equal(t, "eth0/3", k)

	c.Add(k, model.QueueStats{TxPackets: 10, TxBytes: 100, ReadAndReset: true})
	got := c.Add(k, model.QueueStats{TxPackets: 5, TxDroppedBytes: 7, ReadAndReset: true})
	assert.Equal(t, model.QueueStats{TxPackets: 15, TxBytes: 100, TxDroppedBytes: 7}, got)
	assert.Equal(t, got, c.Get(k))

	c.Remove(k)
	assert.Zero(t, c.Get(k))
}

func TestAddTotals(t *testing.T) {
	c := New()
	k := Key("lan1", 0)
	c.Add(k, model.QueueStats{TxPackets: 10})
	got := c.Add(k, model.QueueStats{TxPackets: 12})
	assert.Equal(t, uint64(12), got.TxPackets)

	c.Reset()
	assert.Zero(t, c.Get(k))
}
