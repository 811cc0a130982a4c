//go:build !(broadcom && cgo)

package broadcom

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

func TestIoctlSwitchWithoutSDK(t *testing.T) {
	var sw IoctlSwitch
	assert.ErrorIs(t, sw.Do("eth0", &Request{Op: OpUnitPort}), halerr.ErrNotSupported)
	assert.ErrorIs(t, sw.SetPHYPower("eth0", true), halerr.ErrNotSupported)

	b := New(sw, nil, nil, zerolog.Nop())
	_, err := b.LinkSettings(context.Background(), "eth0")
	assert.ErrorIs(t, err, halerr.ErrNotSupported)
	_, err = b.RMONStats(context.Background(), "eth0", model.TxQueueAll)
	assert.ErrorIs(t, err, halerr.ErrNotSupported)
}
