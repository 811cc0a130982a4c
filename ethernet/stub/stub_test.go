package stub

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/ethernet"
	"github.com/swoga/cpehal/model"
)

func TestDispatchToStub(t *testing.T) {
	d := ethernet.NewDispatcher([]ethernet.Backend{New(zerolog.Nop())}, nil, nil, zerolog.Nop(), ethernet.Options{})
	ctx := context.Background()

	s, err := d.Stats(ctx, "eth0")
	require.NoError(t, err)
	assert.Equal(t, uint64(1200), s.RxBytes)
	assert.Equal(t, uint64(9), s.RxUnknownPackets)

	r, err := d.RMONStats(ctx, "eth0", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.TxQueue)
	assert.Equal(t, uint64(3000000), r.Rx.Packets128to255)

	require.NoError(t, d.ResetPHY(ctx, "eth0", 1))
	require.NoError(t, d.PowerOffPHY(ctx, "eth0", model.EthPHY{}))

	_, err = d.Stats(ctx, "lan0")
	assert.Error(t, err)
}
