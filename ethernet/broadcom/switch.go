package broadcom

// Op selects the ethswctl operation.
type Op int32

const (
	OpEMACGet    Op = 67
	OpUnitPort   Op = 72
	OpPHYMode    Op = 75
	OpPHYAutoneg Op = 87
	OpLinkStatus Op = 89
)

const typeGet int32 = 0

// PHY configuration bits reported by OpPHYMode.
const (
	phyCfg1000FD  = 1 << 0
	phyCfg1000HD  = 1 << 1
	phyCfg100FD   = 1 << 2
	phyCfg100HD   = 1 << 3
	phyCfg10FD    = 1 << 4
	phyCfg10HD    = 1 << 5
	phyCfg2500FD  = 1 << 6
	phyCfg5000FD  = 1 << 7
	phyCfg10000FD = 1 << 8
)

// EMACStats holds the per-port MAC counters of OpEMACGet.
type EMACStats struct {
	RxByte              uint64
	RxPacket            uint64
	RxFrame64           uint64
	RxFrame65To127      uint64
	RxFrame128To255     uint64
	RxFrame256To511     uint64
	RxFrame512To1023    uint64
	RxFrame1024To1518   uint64
	RxUnicastPacket     uint64
	RxMulticastPacket   uint64
	RxBroadcastPacket   uint64
	RxUnknownOpcode     uint64
	RxFCSError          uint32
	RxAlignmentError    uint32
	RxFrameLengthError  uint32
	RxCodeError         uint32
	RxCarrierSenseError uint32
	RxUndersizePacket   uint32
	RxOversizePacket    uint32
	TxByte              uint64
	TxPacket            uint64
	TxFrame64           uint64
	TxFrame65To127      uint64
	TxFrame128To255     uint64
	TxFrame256To511     uint64
	TxFrame512To1023    uint64
	TxFrame1024To1518   uint64
	TxUnicastPacket     uint64
	TxMulticastPacket   uint64
	TxBroadcastPacket   uint64
	TxError             uint64
	TxFCSError          uint32
	TxUndersizeFrame    uint32
	TxOversizeFrame     uint32
}

// Request is the decoded form of one ethswctl call. Callers set Op, Unit,
// Port and Queue; the switch fills the remaining fields.
type Request struct {
	Op          Op
	Unit        int32
	Port        int32
	PortMap     uint32
	Queue       int32
	Speed       int32
	Duplex      int32
	PHYCfg      uint32
	AutonegInfo int32
	Status      int32
	EMAC        EMACStats
}

// Switch is the Broadcom Ethernet switch control channel.
type Switch interface {
	Do(ifname string, req *Request) error
	SetPHYPower(ifname string, on bool) error
}
