package ethernet

import (
	"strings"

	"github.com/swoga/cpehal/model"
)

// MemberPrefix selects the bridge members whose extended counters are summed.
const MemberPrefix = "eth"

// AggregateBridge returns the bridge counters in base with the per-cast
// counters replaced by the sum over the Ethernet members. The kernel keeps
// byte, packet and error counters for a bridge but not the extended ones.
// Members that fail to read are skipped.
func AggregateBridge(base model.EthStats, members []string, read func(ifname string) (model.EthStats, error)) model.EthStats {
	if len(members) == 0 {
		return base
	}

	s := base
	s.TxUcastPackets, s.RxUcastPackets = 0, 0
	s.TxMcastPackets, s.RxMcastPackets = 0, 0
	s.TxBcastPackets, s.RxBcastPackets = 0, 0
	s.RxUnknownPackets = 0

	for _, m := range members {
		if !strings.HasPrefix(m, MemberPrefix) {
			continue
		}
		ms, err := read(m)
		if err != nil {
			continue
		}
		s.TxUcastPackets += ms.TxUcastPackets
		s.RxUcastPackets += ms.RxUcastPackets
		s.TxMcastPackets += ms.TxMcastPackets
		s.RxMcastPackets += ms.RxMcastPackets
		s.TxBcastPackets += ms.TxBcastPackets
		s.RxBcastPackets += ms.RxBcastPackets
		s.RxUnknownPackets += ms.RxUnknownPackets
	}
	return s
}
