// Package stub is the QoS backend of the test platform.
package stub

import (
	"context"

	"github.com/swoga/cpehal/model"
	"github.com/swoga/cpehal/qos"
)

type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Prefixes() []string {
	return []string{"eth"}
}

// QueueStats returns counters that grow with the queue id.
func (b *Backend) QueueStats(ctx context.Context, ifname string, queue int) (model.QueueStats, error) {
	if err := qos.CheckQueue("stub.QueueStats", queue); err != nil {
		return model.QueueStats{}, err
	}
	n := uint64(queue + 1)
	return model.QueueStats{
		TxPackets:        1000 * n,
		TxBytes:          1500000 * n,
		TxDroppedPackets: 10 * n,
		TxDroppedBytes:   15000 * n,
		ReadAndReset:     true,
	}, nil
}
