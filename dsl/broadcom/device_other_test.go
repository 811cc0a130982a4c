//go:build !(broadcom && cgo)

package broadcom

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/swoga/cpehal/halerr"
)

func TestOpenWithoutSDK(t *testing.T) {
	dev, err := Open()
	assert.Nil(t, dev)
	assert.ErrorIs(t, err, halerr.ErrNotSupported)

	b := New(Open, zerolog.Nop(), Options{})
	tests := []struct {
		name string
		call func() error
	}{
		{"line info", func() error { _, err := b.LineInfo(context.Background(), 0); return err }},
		{"channel stats", func() error { _, err := b.ChannelStats(context.Background(), 0); return err }},
		{"oem parameter", func() error { return b.SetOEMParameter(context.Background(), 1, []byte{1}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), halerr.ErrNotSupported)
		})
	}
}
