package mapping

import (
	"fmt"
	"math"

	"github.com/swoga/cpehal/halerr"
)

// Framing holds the latency path parameters used for the aggregate rate.
type Framing struct {
	// L is the number of bits per symbol.
	L uint32
	// N is the RS codeword size and R the redundancy octets per codeword.
	N uint32
	R uint32
	// RtxMode is 1 when G.inp retransmission is active.
	RtxMode uint32
}

// AggregateRate returns the physical layer aggregate rate in kbps.
// Double is set for VDSL2 profile 30a, which uses twice the symbol rate.
// A codeword without payload octets (N <= R, or N <= R+1 with
// retransmission) is reported as a Parse error.
func AggregateRate(f Framing, double bool) (uint32, error) {
	const op = "mapping.AggregateRate"
	if f.N == 0 {
		return 0, halerr.New(halerr.DivByZero, op, fmt.Errorf("codeword size N is 0"))
	}

	var phyR int64
	if f.RtxMode == 1 {
		phyR = 1
	}
	payload := int64(f.N) - int64(f.R) - phyR
	if payload <= 0 {
		return 0, halerr.Errorf(halerr.Parse, op, "codeword size N=%d leaves no payload with R=%d", f.N, f.R)
	}
	num := 1024 * int64(f.L) * payload
	if double {
		num *= 2
	}
	rate := num / (int64(f.N) * 257)
	if rate > math.MaxUint32 {
		return 0, halerr.Errorf(halerr.Parse, op, "rate %d kbps out of range", rate)
	}
	return uint32(rate), nil
}
