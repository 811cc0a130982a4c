package model

// OperState follows the RFC 2863 ifOperStatus values as exposed by the kernel.
type OperState int

const (
	OperUnknown OperState = iota
	OperNotPresent
	OperDown
	OperLowerLayerDown
	OperTesting
	OperDormant
	OperUp
)

func (s OperState) String() string {
	switch s {
	case OperNotPresent:
		return "notpresent"
	case OperDown:
		return "down"
	case OperLowerLayerDown:
		return "lowerlayerdown"
	case OperTesting:
		return "testing"
	case OperDormant:
		return "dormant"
	case OperUp:
		return "up"
	}
	return "unknown"
}

// ParseOperState maps the content of /sys/class/net/<if>/operstate.
func ParseOperState(s string) OperState {
	for st := OperNotPresent; st <= OperUp; st++ {
		if st.String() == s {
			return st
		}
	}
	return OperUnknown
}

type Duplex int

const (
	DuplexAuto Duplex = iota
	DuplexHalf
	DuplexFull
)

// EthSpeed is a link capability bit.
type EthSpeed uint32

const (
	Eth10Half    EthSpeed = 1 << 0
	Eth10Full    EthSpeed = 1 << 1
	Eth100Half   EthSpeed = 1 << 2
	Eth100Full   EthSpeed = 1 << 3
	Eth1000Half  EthSpeed = 1 << 4
	Eth1000Full  EthSpeed = 1 << 5
	Eth2500Full  EthSpeed = 1 << 7
	Eth5000Full  EthSpeed = 1 << 11
	Eth10000Full EthSpeed = 1 << 15
	Eth20000Full EthSpeed = 1 << 23
)

// PortUndefined marks an EthLink whose port is not known.
const PortUndefined = -1

type EthLink struct {
	PortID     int
	Capability EthSpeed
	Autoneg    bool
	// Speed is in Mbps.
	Speed      uint32
	FullDuplex bool
	Down       bool
	PrioTagged bool
	Stats      EthStats
}

type EthPHY struct {
	Address uint8
	PortIdx int
}

type EthInfo struct {
	PHYPortMap  int
	PHYNumPorts int
}

type EthStats struct {
	TxBytes          uint64
	RxBytes          uint64
	TxPackets        uint64
	RxPackets        uint64
	TxErrors         uint64
	RxErrors         uint64
	TxUcastPackets   uint64
	RxUcastPackets   uint64
	TxMcastPackets   uint64
	RxMcastPackets   uint64
	TxBcastPackets   uint64
	RxBcastPackets   uint64
	TxDiscardPackets uint64
	RxDiscardPackets uint64
	RxUnknownPackets uint64
}

type RMONStatus int

const (
	RMONDisabled RMONStatus = iota
	RMONEnabled
	RMONErrMisconf
	RMONErr
)

// TxQueueAll selects every transmit queue in RMONStats.TxQueue.
const TxQueueAll = -1

type RMONCounters struct {
	DropEvents        uint32
	Bytes             uint64
	Packets           uint64
	BcastPackets      uint64
	McastPackets      uint64
	CRCErrPackets     uint32
	UnderSizePackets  uint32
	OverSizePackets   uint32
	Packets64         uint64
	Packets65to127    uint64
	Packets128to255   uint64
	Packets256to511   uint64
	Packets512to1023  uint64
	Packets1024to1518 uint64
}

type RMONStats struct {
	TxQueue int
	VLANID  uint16
	Status  RMONStatus
	Tx      RMONCounters
	Rx      RMONCounters
}
