package halerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"plain", errors.New("boom"), Unknown},
		{"direct", New(Query, "op", errors.New("ioctl")), Query},
		{"wrapped", fmt.Errorf("outer: %w", New(Parse, "op", nil)), Parse},
		{"formatted", Errorf(InvalidArgument, "op", "line %d", 3), InvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.True(t, Is(tt.err, tt.kind))
		})
	}
}

func TestSentinelMatch(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", New(NotSupported, "eth.ResetPHY", nil))
	assert.ErrorIs(t, err, ErrNotSupported)
	assert.NotErrorIs(t, err, ErrQuery)
}

func TestErrorMessage(t *testing.T) {
	err := New(HandleOpen, "broadcom.open", errors.New("no such device"))
	assert.Equal(t, "broadcom.open: handle open: no such device", err.Error())
	assert.Equal(t, "x: not supported", New(NotSupported, "x", nil).Error())
}
