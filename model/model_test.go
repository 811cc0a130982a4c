package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXTSE(t *testing.T) {
	var x XTSE
	assert.True(t, x.IsZero())

	x.Set(XTSET1413)
	x.Set(XTSEG9932NorthAmerica)
	x.Set(0)
	x.Set(65)

	assert.Equal(t, XTSE{0x01, 0, 0, 0, 0, 0, 0, 0x01}, x)
	assert.True(t, x.Has(XTSEG9932NorthAmerica))
	assert.False(t, x.Has(XTSEG9932Europe))
	assert.Equal(t, 2, x.OnesCount())
	assert.Equal(t, []XTSEBit{1, 57}, x.Bits())
}

func TestStandardOnesCount(t *testing.T) {
	tests := []struct {
		name string
		s    Standard
		want int
	}{
		{"mode", ModeStandard(ModG9932AnnexA | ModG9932AnnexB), 2},
		{"empty mode", ModeStandard(0), 0},
		{"xtse", XTSEStandard{XTSE{0x0c}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.OnesCount())
		})
	}
}

func TestBandsTruncates(t *testing.T) {
	in := make([]int64, 30)
	for i := range in {
		in[i] = int64(i)
	}
	out := Bands(in)
	assert.Len(t, out, MaxBands)
	assert.Equal(t, int64(23), out[23])

	assert.Equal(t, []uint64{1, 2}, Bands([]uint64{1, 2}))
	assert.Empty(t, Bands[uint64](nil))
}

func TestParseOperState(t *testing.T) {
	assert.Equal(t, OperUp, ParseOperState("up"))
	assert.Equal(t, OperLowerLayerDown, ParseOperState("lowerlayerdown"))
	assert.Equal(t, OperUnknown, ParseOperState("bogus"))
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "LowerLayerDown", IfLowerLayerDown.String())
	assert.Equal(t, "EstablishingLink", LinkEstablishing.String())
	assert.Equal(t, "L2.1", FastL21.String())
	assert.Equal(t, "LastShowtime", StatsLastShowtime.String())
	assert.Equal(t, "Error_Other", DiagErrorOther.String())
	assert.False(t, StatsType(0).Valid())
}
