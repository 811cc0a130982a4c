//go:build !(broadcom && cgo)

package broadcom

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/swoga/cpehal/halerr"
)

func TestDevicesWithoutSDK(t *testing.T) {
	tests := []struct {
		name string
		b    *Backend
	}{
		{"runner", NewRunner(DeviceRDPA{}, DeviceBoard{}, zerolog.Nop())},
		{"archer", NewArcher(DeviceArcher{}, zerolog.Nop())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.QueueStats(context.Background(), "eth0", 0)
			assert.ErrorIs(t, err, halerr.ErrNotSupported)
		})
	}

	_, err := DeviceBoard{}.ChipID()
	assert.ErrorIs(t, err, halerr.ErrNotSupported)
}
