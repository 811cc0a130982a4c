package model

import "net"

type ATMLinkType int

const (
	ATMLinkUnconfigured ATMLinkType = iota
	ATMLinkEoA
	ATMLinkIPoA
	ATMLinkPPPoA
	ATMLinkCIP
)

type ATMEncapsulation int

const (
	ATMEncapLLC ATMEncapsulation = iota + 1
	ATMEncapVCMux
)

type ATMAAL int

const (
	ATMAAL1 ATMAAL = iota + 1
	ATMAAL2
	ATMAAL3
	ATMAAL4
	ATMAAL5
)

type ATMQoSClass int

const (
	ATMQoSUBR ATMQoSClass = iota + 1
	ATMQoSCBR
	ATMQoSGFR
	ATMQoSVBRnrt
	ATMQoSVBRrt
	ATMQoSUBRPlus
	ATMQoSABR
)

type ATMDestAddr struct {
	VPI uint32
	VCI uint32
}

// ATMLink is the configuration and status of a PVC. Status, AutoConfig and AAL are read-only.
type ATMLink struct {
	Status        IfStatus
	LinkType      ATMLinkType
	AutoConfig    bool
	DestAddr      ATMDestAddr
	Encapsulation ATMEncapsulation
	FCSPreserved  bool
	VCSearchList  []ATMDestAddr
	AAL           ATMAAL
}

type ATMLinkQoS struct {
	Class               ATMQoSClass
	PeakCellRate        uint32
	MaxBurstSize        uint32
	SustainableCellRate uint32
}

type ATMLinkStats struct {
	TransmittedBlocks uint32
	ReceivedBlocks    uint32
	CRCErrors         uint32
}

// ATMDiagLoopback is an F5 OAM loopback test. Repetitions and Timeout are inputs.
type ATMDiagLoopback struct {
	Repetitions  uint32
	Timeout      uint32
	SuccessCount uint32
	FailureCount uint32
	AvgRespTime  uint32
	MinRespTime  uint32
	MaxRespTime  uint32
}

type PTMLink struct {
	Status     IfStatus
	MACAddress net.HardwareAddr
}
