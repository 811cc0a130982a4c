package econet

import (
	"strconv"

	"github.com/swoga/cpehal/model"
)

// PortStatistics holds the switch manager port counters. Byte counters
// are the low 32 bits kept by the switch.
type PortStatistics struct {
	TxDropFrames        uint32
	TxBytesLo           uint32
	TxPkts              uint32
	TxBroadPkts         uint32
	TxMultiPkts         uint32
	TxUniPkts           uint32
	TxCRCFrames         uint32
	TxUnderSizePkts     uint32
	TxOverSizePkts      uint32
	Tx64BytePkts        uint32
	Tx65To127BytePkts   uint32
	Tx256To511BytePkts  uint32
	Tx512To1023BytePkts uint32
	Tx1024To1518Pkts    uint32
	RxDropFrames        uint32
	RxBytesLo           uint32
	RxPkts              uint32
	RxBroadPkts         uint32
	RxMultiPkts         uint32
	RxUniPkts           uint32
	RxCRCFrames         uint32
	RxUnderSizePkts     uint32
	RxOverSizePkts      uint32
	Rx64BytePkts        uint32
	Rx65To127BytePkts   uint32
	Rx256To511BytePkts  uint32
	Rx512To1023BytePkts uint32
	Rx1024To1518Pkts    uint32
}

// LinkSpeed is the switch manager link speed code.
type LinkSpeed int

const (
	Speed10 LinkSpeed = iota
	Speed100
	Speed1000
	Speed2500
	Speed5000
	Speed10000
)

// SwitchManager is the EcoNet switch manager library.
type SwitchManager interface {
	PortStatistics(port uint8) (PortStatistics, error)
	PortAdmin(port uint8) (bool, error)
	SetPortAdmin(port uint8, up bool) error
	PortAutoneg(port uint8) (bool, error)
	PortLinkState(port uint8) (up bool, speed LinkSpeed, err error)
	// PortDuplex returns "Full" or "Half".
	PortDuplex(port uint8) (string, error)
	// PortMaxBitrate returns the configured rate in Mbps or "Auto".
	PortMaxBitrate(port uint8) (string, error)
}

// Mbps reports the speed in Mbps, 10 for unknown codes.
func (s LinkSpeed) Mbps() uint32 {
	switch s {
	case Speed100:
		return 100
	case Speed1000:
		return 1000
	case Speed2500:
		return 2500
	case Speed5000:
		return 5000
	case Speed10000:
		return 10000
	}
	return 10
}

var bitrateCapabilities = []struct {
	bound uint64
	full  model.EthSpeed
	half  model.EthSpeed
}{
	{10000, model.Eth10000Full, model.Eth10000Full},
	{5000, model.Eth5000Full, model.Eth5000Full},
	{2500, model.Eth2500Full, model.Eth2500Full},
	{1000, model.Eth1000Full, model.Eth1000Half},
	{100, model.Eth100Full, model.Eth100Half},
	{10, model.Eth10Full, model.Eth10Half},
}

// bitrateCapability maps the configured maximum bitrate to the highest
// capability it reaches. "Auto" and unparsable rates fall back to 100 Mbps.
func bitrateCapability(bitrate, duplex string) model.EthSpeed {
	full := duplex == "Full"
	fallback := model.Eth100Half
	if full {
		fallback = model.Eth100Full
	}
	speed, err := strconv.ParseUint(bitrate, 10, 32)
	if err != nil {
		return fallback
	}
	for _, c := range bitrateCapabilities {
		if speed >= c.bound {
			if full {
				return c.full
			}
			return c.half
		}
	}
	return fallback
}
