package model

import "math/bits"

type LinkStatus int

const (
	LinkUp LinkStatus = iota + 1
	LinkInitializing
	LinkEstablishing
	LinkNoSignal
	LinkDisabled
	LinkError
)

func (s LinkStatus) String() string {
	switch s {
	case LinkUp:
		return "Up"
	case LinkInitializing:
		return "Initializing"
	case LinkEstablishing:
		return "EstablishingLink"
	case LinkNoSignal:
		return "NoSignal"
	case LinkDisabled:
		return "Disabled"
	case LinkError:
		return "Error"
	}
	return ""
}

// ModType is a bit in the legacy mode word of a Standard.
type ModType uint64

const (
	ModG9221AnnexA ModType = 1 << iota
	ModG9221AnnexB
	ModG9221AnnexC
	ModT1413
	ModT1413i2
	ModETSI101388
	ModG9922
	ModG9923AnnexA
	ModG9923AnnexB
	ModG9923AnnexC
	ModG9923AnnexI
	ModG9923AnnexJ
	ModG9923AnnexL
	ModG9923AnnexM
	ModG9924
	ModG9925AnnexA
	ModG9925AnnexB
	ModG9925AnnexC
	ModG9925AnnexI
	ModG9925AnnexJ
	ModG9925AnnexM
	ModG9931
	ModG9931AnnexA
	ModG9932AnnexA
	ModG9932AnnexB
	ModG9932AnnexC
)

// XTSEBit is a 1-based bit position in the G.997.1 XTSE bitmap.
type XTSEBit uint8

const (
	XTSET1413                    XTSEBit = 1
	XTSEETSI101388               XTSEBit = 2
	XTSEG9921PotsNonOverlapped   XTSEBit = 3
	XTSEG9921PotsOverlapped      XTSEBit = 4
	XTSEG9921IsdnNonOverlapped   XTSEBit = 5
	XTSEG9921IsdnOverlapped      XTSEBit = 6
	XTSEG9921TcmNonOverlapped    XTSEBit = 7
	XTSEG9921TcmOverlapped       XTSEBit = 8
	XTSEG9922PotsNonOverlapped   XTSEBit = 9
	XTSEG9922PotsOverlapped      XTSEBit = 10
	XTSEG9922TcmNonOverlapped    XTSEBit = 11
	XTSEG9922TcmOverlapped       XTSEBit = 12
	XTSEG9923PotsNonOverlapped   XTSEBit = 19
	XTSEG9923PotsOverlapped      XTSEBit = 20
	XTSEG9923IsdnNonOverlapped   XTSEBit = 21
	XTSEG9923IsdnOverlapped      XTSEBit = 22
	XTSEG9923TcmNonOverlapped    XTSEBit = 23
	XTSEG9923TcmOverlapped       XTSEBit = 24
	XTSEG9924PotsNonOverlapped   XTSEBit = 25
	XTSEG9924PotsOverlapped      XTSEBit = 26
	XTSEG9923AnnexINonOverlapped XTSEBit = 29
	XTSEG9923AnnexIOverlapped    XTSEBit = 30
	XTSEG9923AnnexJNonOverlapped XTSEBit = 31
	XTSEG9923AnnexJOverlapped    XTSEBit = 32
	XTSEG9924AnnexINonOverlapped XTSEBit = 33
	XTSEG9924AnnexIOverlapped    XTSEBit = 34
	XTSEG9923PotsMode1           XTSEBit = 35
	XTSEG9923PotsMode2           XTSEBit = 36
	XTSEG9923PotsMode3           XTSEBit = 37
	XTSEG9923PotsMode4           XTSEBit = 38
	XTSEG9923ExtPotsNonOverlap   XTSEBit = 39
	XTSEG9923ExtPotsOverlapped   XTSEBit = 40
	XTSEG9925PotsNonOverlapped   XTSEBit = 41
	XTSEG9925PotsOverlapped      XTSEBit = 42
	XTSEG9925IsdnNonOverlapped   XTSEBit = 43
	XTSEG9925IsdnOverlapped      XTSEBit = 44
	XTSEG9925TcmNonOverlapped    XTSEBit = 45
	XTSEG9925TcmOverlapped       XTSEBit = 46
	XTSEG9925AnnexINonOverlapped XTSEBit = 47
	XTSEG9925AnnexIOverlapped    XTSEBit = 48
	XTSEG9925AnnexJNonOverlapped XTSEBit = 49
	XTSEG9925AnnexJOverlapped    XTSEBit = 50
	XTSEG9925ExtPotsNonOverlap   XTSEBit = 51
	XTSEG9925ExtPotsOverlapped   XTSEBit = 52
	XTSEG9932NorthAmerica        XTSEBit = 57
	XTSEG9932Europe              XTSEBit = 58
	XTSEG9932Japan               XTSEBit = 59
)

// XTSE is the 8 octet transmission system bitmap.
type XTSE [8]byte

func (x *XTSE) Set(bit XTSEBit) {
	if bit == 0 || bit > 64 {
		return
	}
	x[(bit-1)/8] |= 1 << ((bit - 1) % 8)
}

func (x XTSE) Has(bit XTSEBit) bool {
	if bit == 0 || bit > 64 {
		return false
	}
	return x[(bit-1)/8]&(1<<((bit-1)%8)) != 0
}

func (x XTSE) OnesCount() int {
	n := 0
	for _, b := range x {
		n += bits.OnesCount8(b)
	}
	return n
}

func (x XTSE) IsZero() bool {
	return x == XTSE{}
}

// Bits lists the set positions in ascending order.
func (x XTSE) Bits() []XTSEBit {
	var out []XTSEBit
	for i := XTSEBit(1); i <= 64; i++ {
		if x.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

// Standard is either a ModeStandard or an XTSEStandard. A nil Standard is empty.
type Standard interface {
	OnesCount() int
	isStandard()
}

type ModeStandard ModType

func (m ModeStandard) OnesCount() int { return bits.OnesCount64(uint64(m)) }
func (ModeStandard) isStandard()      {}

type XTSEStandard struct {
	XTSE
}

func (XTSEStandard) isStandard() {}

type LineEncoding int

const (
	EncodingDMT LineEncoding = iota + 1
	EncodingCAP
	Encoding2B1Q
	Encoding43BT
	EncodingPAM
	EncodingQAM
)

func (e LineEncoding) String() string {
	switch e {
	case EncodingDMT:
		return "DMT"
	case EncodingCAP:
		return "CAP"
	case Encoding2B1Q:
		return "2B1Q"
	case Encoding43BT:
		return "43BT"
	case EncodingPAM:
		return "PAM"
	case EncodingQAM:
		return "QAM"
	}
	return ""
}

// Profile is a VDSL2 profile bit.
type Profile uint32

const (
	VDSL2Profile8a Profile = 1 << iota
	VDSL2Profile8b
	VDSL2Profile8c
	VDSL2Profile8d
	VDSL2Profile12a
	VDSL2Profile12b
	VDSL2Profile17a
	VDSL2Profile30a
	VDSL2Profile35b
)

type PowerState int

const (
	PowerL0 PowerState = iota + 1
	PowerL1
	PowerL2
	PowerL3
	PowerL4
)

func (p PowerState) String() string {
	switch p {
	case PowerL0:
		return "L0"
	case PowerL1:
		return "L1"
	case PowerL2:
		return "L2"
	case PowerL3:
		return "L3"
	case PowerL4:
		return "L4"
	}
	return ""
}

type Line struct {
	Status            IfStatus
	Upstream          bool
	FirmwareVersion   string
	LinkStatus        LinkStatus
	StandardSupported Standard
	// StandardUsed has at most one bit set.
	StandardUsed         Standard
	LineEncoding         LineEncoding
	AllowedProfiles      Profile
	CurrentProfile       Profile
	PowerManagementState PowerState
	SuccessFailureCause  uint32
	UPBOKLER             uint32
	UPBOKLEPerBand       []uint64
	UPBOKLERPerBand      []uint64
	RxThreshDS           []uint64
	ActRAMode            UpDown[uint64]
	ActINPROC            UpDown[uint64]
	SNRMROC              UpDown[uint64]
	LastStateTransmitted UpDown[uint64]
	UPBOKLE              uint32
	LimitMask            uint32
	US0Mask              uint32
	Trellis              UpDown[int64]
	ActSNRMode           UpDown[uint64]
	ActualCE             uint32
	LineNumber           int
	// MaxBitRate is in kbps.
	MaxBitRate UpDown[uint64]
	// NoiseMargin, Attenuation and Power are in 0.1 dB.
	NoiseMargin    UpDown[int64]
	SNRMPerBandUS  []int64
	SNRMPerBandDS  []int64
	INMIATOffsetDS uint32
	INMIATStepDS   uint32
	INMCCDS        uint32
	INMINPEqModeDS uint32
	Attenuation    UpDown[int64]
	Power          UpDown[int64]
	XTURVendor     string
	XTURCountry    string
	XTURANSIStd    uint32
	XTURANSIRev    uint32
	XTUCVendor     string
	XTUCCountry    string
	XTUCANSIStd    uint32
	XTUCANSIRev    uint32
}

// LineChannelStats holds elapsed seconds per statistics window. It is shared by DSL lines, channels and FAST lines.
type LineChannelStats struct {
	TotalStart        uint32
	ShowtimeStart     uint32
	LastShowtimeStart uint32
	CurrentDayStart   uint32
	QuarterHourStart  uint32
}

type LineStatsInterval struct {
	ErroredSecs         uint32
	SeverelyErroredSecs uint32
}

type StatsType int

const (
	StatsTotal StatsType = iota + 1
	StatsShowtime
	StatsLastShowtime
	StatsCurrentDay
	StatsQuarterHour
)

func (s StatsType) String() string {
	switch s {
	case StatsTotal:
		return "Total"
	case StatsShowtime:
		return "Showtime"
	case StatsLastShowtime:
		return "LastShowtime"
	case StatsCurrentDay:
		return "CurrentDay"
	case StatsQuarterHour:
		return "QuarterHour"
	}
	return ""
}

func (s StatsType) Valid() bool {
	return s >= StatsTotal && s <= StatsQuarterHour
}

var StatsTypes = []StatsType{StatsTotal, StatsShowtime, StatsLastShowtime, StatsCurrentDay, StatsQuarterHour}

type LineTestParams struct {
	HLOGG    UpDown[uint64]
	HLOGpsDS []uint64
	HLOGpsUS []uint64
	HLOGMT   UpDown[uint64]
	QLNG     UpDown[uint64]
	QLNpsDS  []uint64
	QLNpsUS  []uint64
	QLNMT    UpDown[uint64]
	SNRG     UpDown[uint64]
	SNRpsDS  []uint64
	SNRpsUS  []uint64
	SNRMT    UpDown[uint64]
	LATNDS   []uint64
	LATNUS   []uint64
	SATNDS   []uint64
	SATNUS   []uint64
}

type DataGathering struct {
	LoggingDepthR    uint32
	ActLoggingDepthR uint32
}

type LinkEncapsulation uint32

const (
	EncapG9923AnnexKATM LinkEncapsulation = 1 << iota
	EncapG9923AnnexKPTM
	EncapG9932AnnexKATM
	EncapG9932AnnexKPTM
	EncapG9941Auto
)

func (e LinkEncapsulation) String() string {
	switch e {
	case EncapG9923AnnexKATM:
		return "G.992.3_Annex_K_ATM"
	case EncapG9923AnnexKPTM:
		return "G.992.3_Annex_K_PTM"
	case EncapG9932AnnexKATM:
		return "G.993.2_Annex_K_ATM"
	case EncapG9932AnnexKPTM:
		return "G.993.2_Annex_K_PTM"
	case EncapG9941Auto:
		return "G.994.1"
	}
	return ""
}

type Channel struct {
	Status                     IfStatus
	LinkEncapsulationSupported LinkEncapsulation
	LinkEncapsulationUsed      LinkEncapsulation
	LPath                      uint32
	IntlvDepth                 uint32
	IntlvBlock                 int32
	ActualInterleavingDelay    uint32
	ActINP                     int32
	INPReport                  bool
	NFEC                       int32
	RFEC                       int32
	LSYMB                      int32
	CurrRate                   UpDown[uint64]
	ActNDR                     UpDown[uint64]
	ActINPREIN                 UpDown[uint64]
}

// ChannelStatsInterval counters hold InvalidCounter when not available.
type ChannelStatsInterval struct {
	XTURFECErrors uint32
	XTUCFECErrors uint32
	XTURHECErrors uint32
	XTUCHECErrors uint32
	XTURCRCErrors uint32
	XTUCCRCErrors uint32
}

type ADSLLineTest struct {
	ActPSD   UpDown[int64]
	ActATP   UpDown[int64]
	HLINSC   UpDown[int64]
	HLING    UpDown[uint64]
	HLOGG    UpDown[uint64]
	HLOGpsDS []uint64
	HLOGpsUS []uint64
	HLOGMT   UpDown[uint64]
	LATNpbDS []uint64
	LATNpbUS []uint64
	SATNDS   []uint64
	SATNUS   []uint64
	HLINpsDS []uint64
	HLINpsUS []uint64
	QLNG     UpDown[uint64]
	QLNpsDS  []uint64
	QLNpsUS  []uint64
	QLNMT    UpDown[uint64]
	SNRG     UpDown[uint64]
	SNRpsDS  []uint64
	SNRpsUS  []uint64
	SNRMT    UpDown[uint64]
	BITSpsDS []uint64
	BITSpsUS []uint64
}

type SELTUER struct {
	MaxDuration    uint32
	ExtBandwidthOp bool
	UER            []uint64
	ScaleFactor    uint32
	GroupSize      uint32
	UERVar         []uint64
}

type SELTQLN struct {
	MaxMeasurementDuration uint32
	ExtBandwidthOp         bool
	QLN                    []uint64
	GroupSize              uint32
}

type LoopTermination int

const (
	LoopOpen LoopTermination = iota
	LoopShort
	LoopPoweredOn
	LoopUnknown
)

func (l LoopTermination) String() string {
	switch l {
	case LoopOpen:
		return "Open"
	case LoopShort:
		return "Short"
	case LoopPoweredOn:
		return "PoweredOn"
	}
	return "Unknown"
}

// MaxLoopSegments caps SELTP.LoopTopology.
const MaxLoopSegments = 256

type LoopSegment struct {
	Length     uint32
	BridgeTaps uint32
}

type SELTP struct {
	CapacityEstimateEnable     bool
	CapacitySignalPSD          []uint64
	CapacityNoisePSD           []uint64
	CapacityTargetMargin       uint32
	LoopTermination            LoopTermination
	LoopLength                 uint32
	LoopTopology               []LoopSegment
	AttenuationCharacteristics []uint64
	MissingFilter              bool
	CapacityEstimate           uint32
}

// FastProfile is a G.fast profile bit.
type FastProfile uint32

const (
	FastProfile106a FastProfile = 1 << iota
	FastProfile106b
	FastProfile106c
	FastProfile212a
	FastProfile212c
)

type FastPowerState int

const (
	FastL0 FastPowerState = iota + 1
	FastL21
	FastL22
	FastL3
)

func (p FastPowerState) String() string {
	switch p {
	case FastL0:
		return "L0"
	case FastL21:
		return "L2.1"
	case FastL22:
		return "L2.2"
	case FastL3:
		return "L3"
	}
	return ""
}

type FastLine struct {
	Status                IfStatus
	Upstream              bool
	FirmwareVersion       string
	LinkStatus            LinkStatus
	AllowedProfiles       FastProfile
	CurrentProfile        FastProfile
	PowerManagementState  FastPowerState
	SuccessFailureCause   uint32
	UPBOKLER              uint32
	LastTransmittedSignal UpDown[uint64]
	UPBOKLE               uint32
	LineNumber            int
	MaxBitRate            UpDown[uint64]
	NoiseMargin           UpDown[int64]
	Attenuation           UpDown[int64]
	Power                 UpDown[int64]
	SNRMRMC               UpDown[int64]
	BitsRMCpsDS           []uint64
	BitsRMCpsUS           []uint64
	FEXTToCancelEnable    UpDown[bool]
	ETR                   UpDown[uint64]
	AttETR                UpDown[uint64]
	MinEFTR               UpDown[uint64]
}

type FastLineStatsInterval struct {
	ErroredSecs         uint32
	SeverelyErroredSecs uint32
	LOSS                uint32
	LORS                uint32
	UAS                 uint32
	RTXUC               uint32
	RTXTX               uint32
	SuccessBSW          uint32
	SuccessSRA          uint32
	SuccessFRA          uint32
	SuccessRPA          uint32
	SuccessTIGA         uint32
}

type FastLineTestParams struct {
	SNRG       UpDown[uint64]
	SNRpsDS    []uint64
	SNRpsUS    []uint64
	SNRMT      UpDown[uint64]
	ActINP     uint32
	NFEC       uint32
	RFEC       int32
	CurrRate   UpDown[uint64]
	ActINPREIN uint32
}

type ConfigParams struct {
	XTSE                XTSE
	VDSL2Profiles       Profile
	FastProfiles        FastProfile
	EnableDataGathering bool
	LimitMask           uint32
	US0Mask             uint32
}
