// Package cache keeps running totals for queue counters of drivers that
// clear them on every read, so they can be exported as Prometheus counters.
package cache

import (
	"strconv"
	"sync"

	"github.com/swoga/cpehal/model"
)

type Cache struct {
	values map[string]model.QueueStats
	mutex  sync.RWMutex
}

func New() *Cache {
	return &Cache{
		values: map[string]model.QueueStats{},
	}
}

func Key(ifname string, queue int) string {
	return ifname + "/" + strconv.Itoa(queue)
}

func (c *Cache) Get(key string) model.QueueStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.values[key]
}

// Add folds s into the total for key and returns the new total. Stats
// that are not read-and-reset are already totals and replace the entry.
func (c *Cache) Add(key string, s model.QueueStats) model.QueueStats {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if !s.ReadAndReset {
		c.values[key] = s
		return s
	}
	t := c.values[key]
	t.TxPackets += s.TxPackets
	t.TxBytes += s.TxBytes
	t.TxDroppedPackets += s.TxDroppedPackets
	t.TxDroppedBytes += s.TxDroppedBytes
	t.ReadAndReset = false
	c.values[key] = t
	return t
}

func (c *Cache) Remove(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.values, key)
}

// Reset drops all totals, e.g. after the config changed.
func (c *Cache) Reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.values = map[string]model.QueueStats{}
}
