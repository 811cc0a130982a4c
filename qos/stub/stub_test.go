package stub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/halerr"
)

func TestQueueStats(t *testing.T) {
	b := New()
	s, err := b.QueueStats(context.Background(), "eth0", 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3000), s.TxPackets)
	assert.Equal(t, uint64(45000), s.TxDroppedBytes)
	assert.True(t, s.ReadAndReset)

	_, err = b.QueueStats(context.Background(), "eth0", 8)
	assert.ErrorIs(t, err, halerr.ErrInvalidArgument)
}
