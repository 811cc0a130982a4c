package mapping

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

func TestTableLookup(t *testing.T) {
	assert.Equal(t, int(model.VDSL2Profile30a), VDSL2Profiles.Value("30A"))
	assert.Equal(t, NotFound, VDSL2Profiles.Value("99z"))

	name, ok := ATMQoSClasses.Name(int(model.ATMQoSVBRnrt))
	assert.True(t, ok)
	assert.Equal(t, "vbr_nrt", name)

	_, ok = ATMEncapsulations.Name(42)
	assert.False(t, ok)
}

func TestTableRoundTrip(t *testing.T) {
	tables := []struct {
		name  string
		table Table
	}{
		{"vdsl2 profiles", VDSL2Profiles},
		{"fast profiles", FastProfiles},
		{"atm link types", ATMLinkTypes},
		{"atm encapsulations", ATMEncapsulations},
		{"atm qos classes", ATMQoSClasses},
	}
	for _, tt := range tables {
		t.Run(tt.name, func(t *testing.T) {
			require.NotEmpty(t, tt.table)
			for _, e := range tt.table {
				assert.Equal(t, e.Value, tt.table.Value(e.Name), e.Name)
				assert.Equal(t, e.Value, tt.table.Value(strings.ToUpper(e.Name)), e.Name)
				name, ok := tt.table.Name(e.Value)
				assert.True(t, ok, e.Name)
				assert.Equal(t, e.Name, name)
			}
			assert.Equal(t, NotFound, tt.table.Value("no-such-entry"))
		})
	}
}

func TestMaskRoundTrip(t *testing.T) {
	mask := uint32(model.VDSL2Profile8a | model.VDSL2Profile17a | model.VDSL2Profile35b)
	list := VDSL2Profiles.JoinNames(mask)
	assert.Equal(t, "8a,17a,35b", list)

	parsed, unknown := VDSL2Profiles.ParseMask(list + ", bogus")
	assert.Equal(t, mask, parsed)
	assert.Equal(t, []string{"bogus"}, unknown)
}

func TestAggregateRate(t *testing.T) {
	tests := []struct {
		name   string
		f      Framing
		double bool
		want   uint32
	}{
		{"plain", Framing{L: 1000, N: 255, R: 16}, false, 3734},
		{"30a doubles", Framing{L: 1000, N: 255, R: 16}, true, 7468},
		{"retransmission", Framing{L: 1000, N: 255, R: 16, RtxMode: 1}, false, 3718},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AggregateRate(tt.f, tt.double)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregateRateErrors(t *testing.T) {
	tests := []struct {
		name   string
		f      Framing
		double bool
		err    error
	}{
		{"zero codeword", Framing{L: 1000}, false, halerr.ErrDivByZero},
		{"zero codeword 30a", Framing{L: 1000}, true, halerr.ErrDivByZero},
		{"redundancy fills codeword", Framing{L: 1000, N: 16, R: 16}, false, halerr.ErrParse},
		{"retransmission fills codeword", Framing{L: 1000, N: 16, R: 15, RtxMode: 1}, false, halerr.ErrParse},
		{"retransmission past codeword", Framing{L: 1000, N: 16, R: 16, RtxMode: 1}, false, halerr.ErrParse},
		{"redundancy past codeword", Framing{L: 1000, N: 8, R: 16}, true, halerr.ErrParse},
		{"rate overflow", Framing{L: 0xffffffff, N: 255, R: 0}, true, halerr.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AggregateRate(tt.f, tt.double)
			assert.ErrorIs(t, err, tt.err)
			assert.Zero(t, got)
		})
	}
}

func TestVendorHex(t *testing.T) {
	assert.Equal(t, "4244434D", VendorHex([]byte{0xB5, 0x00, 0x42, 0x44, 0x43, 0x4D, 0x00, 0x00}))
	assert.Equal(t, "", VendorHex([]byte{0xB5, 0x00}))
}
