package broadcom

// The types in this file hold the fields of the driver's MIB, config profile
// and version objects that the backend reads. They are not the driver layout;
// device_cgo.go copies them out of the SDK structs and checks the constants
// below against the SDK headers.

type ModType uint32

const (
	ModGdmt ModType = iota
	ModT1413
	ModGlite
	ModAnnexI
	ModAdsl2
	ModAdsl2p
	ModReAdsl2
	ModVdsl2
	ModGfast
)

type Annex uint32

const (
	AnnexUnknown Annex = iota
	AnnexA
	AnnexB
	AnnexC
	AnnexSADSL
	AnnexI
	AnnexAB
	AnnexJ
	AnnexM
	AnnexL
)

type TrainingState int32

const (
	TrainingIdle TrainingState = iota
	TrainingG994
	TrainingG992Started
	TrainingG992ChanAnalysis
	TrainingG992Exchange
	TrainingConnected
	TrainingG993Started
	TrainingG993ChanAnalysis
	TrainingG993Exchange
)

const PhysStatusNoDefect uint32 = 0

// line coding, RFC 2662 adslLineCoding
const (
	LineCodingOther uint32 = iota + 1
	LineCodingDMT
	LineCodingCAP
	LineCodingQAM
)

const (
	IntlChannel uint32 = 0
	FastChannel uint32 = 1
)

// transport mode of a latency path
const (
	DataATM uint8 = iota
	DataPTM
	DataRaw
	DataNitro
)

const (
	TrellisOn = 1

	Adsl2TrellisTxEnabled = 0x1
	Adsl2TrellisRxEnabled = 0x2
)

// modulation bits of adslAnnexAParam / adslAnnexCParam
const (
	CfgModT1413Only   uint32 = 0x00000004
	CfgModGdmtOnly    uint32 = 0x00000008
	CfgModGliteOnly   uint32 = 0x00000010
	CfgModAnnexIOnly  uint32 = 0x00000020
	CfgModAdsl2Only   uint32 = 0x00002000
	CfgModAdsl2pOnly  uint32 = 0x00004000
	CfgModVdsl2Only   uint32 = 0x00400000
	CfgModVdsl2LROnly uint32 = 0x00800000
	CfgModGfastOnly   uint32 = 0x01000000
)

// adsl2Param and xdslMode bits
const (
	Adsl2CfgReachExOn      uint32 = 0x00000001
	Adsl2CfgAnnexLUpWide   uint32 = 0x00000002
	Adsl2CfgAnnexLUpNarrow uint32 = 0x00000004
	Adsl2CfgAnnexMp3       uint32 = 0x00000010
	Adsl2CfgAnnexMp5       uint32 = 0x00000040
	Adsl2ModeAnnexLUpWide  uint32 = 0x00000400
	Adsl2ModeAnnexMask     uint32 = 0x00000800
)

// XdslModeAnnexShift extracts the annex from a mode word.
const XdslModeAnnexShift = 8

// VDSL2 profile bits, used both in vdslParam and as the current profile value
const (
	VdslProfile8a  uint32 = 0x001
	VdslProfile8b  uint32 = 0x002
	VdslProfile8c  uint32 = 0x004
	VdslProfile8d  uint32 = 0x008
	VdslProfile12a uint32 = 0x010
	VdslProfile12b uint32 = 0x020
	VdslProfile17a uint32 = 0x040
	VdslProfile30a uint32 = 0x080
	VdslProfile35b uint32 = 0x200
)

// G.fast profile disable bits in vdslParam and current profile values
const (
	GfastProfile106aDisable uint32 = 0x00010000
	GfastProfile212aDisable uint32 = 0x00020000
	GfastProfile106bDisable uint32 = 0x00040000
	GfastProfile106cDisable uint32 = 0x00080000
	GfastProfile212cDisable uint32 = 0x00100000

	GfastProfile106a uint32 = 0x01
	GfastProfile212a uint32 = 0x02
	GfastProfile106b uint32 = 0x04
	GfastProfile106c uint32 = 0x08
	GfastProfile212c uint32 = 0x10
)

// VdslUS0Mask is the US0 PSD mask set reported for Annex A operation.
const VdslUS0Mask uint32 = 0x7f0000

// MaxNumBands is the number of per-band entries the driver reports.
const MaxNumBands = 5

type ConnectionInfo struct {
	ModType        ModType
	TrellisCoding  uint32
	TrellisCoding2 uint32
	ChType         uint32
}

type PhysEntry struct {
	CurrStatus         uint32
	SNRMode            uint32
	CurrAttainableRate uint32
	CurrSnrMgn         int32
	CurrAtn            int32
	CurrOutputPwr      int32
	VendorID           [8]byte
	VersionNumber      [16]byte
}

type XdslPhysEntry struct {
	UPBOkle            uint32
	UPBOkleCpe         uint32
	SNRMode            uint32
	SNRMRoc            uint32
	NumKl0BandReported uint32
	Kl0PerBand         [MaxNumBands]uint32
}

type FramingInfo struct {
	TMType   [4]uint8
	PathID   uint32
	D        uint32
	I        uint32
	Delay    uint32
	INP      uint32
	INPRein  uint32
	N        uint32
	L        uint32
	R        uint32
	RtxMode  uint32
	DataRate uint32
}

type DirectionInfo struct {
	LPInfo [2]FramingInfo
}

type XdslInfo struct {
	XdslMode     uint32
	VDSL2Profile uint32
	PwrState     uint32
	DirInfo      [2]DirectionInfo
}

type VdslInfo struct {
	VDSL2Mode    uint32
	VDSL2Profile uint32
	PwrState     uint32
}

type PerfCounters struct {
	ESs  uint32
	SES  uint32
	UAS  uint32
	Loss uint32
	Lors uint32
}

type PerfData struct {
	SinceDrvStartedTimeElapsed uint32
	SinceLinkTimeElapsed       uint32
	SincePrevLinkTimeElapsed   uint32
	Curr1DayTimeElapsed        uint32
	Curr15MinTimeElapsed       uint32
	Total                      PerfCounters
	SinceShowTime              PerfCounters
	Curr1Day                   PerfCounters
	Curr15Min                  PerfCounters
}

type ChanPerfCounters struct {
	TxFEC         uint32
	CorrectedBlks uint32
	TxCRC         uint32
	UncorrectBlks uint32
}

type ChanPerfData struct {
	Curr1DayTimeElapsed  uint32
	Curr15MinTimeElapsed uint32
	Total                ChanPerfCounters
	Curr1Day             ChanPerfCounters
	Curr15Min            ChanPerfCounters
}

type DirStat struct {
	RSCor uint32
	SFErr uint32
}

type ATMDirStat struct {
	HEC uint32
}

type RtxCounters struct {
	UC uint32
	TX uint32
}

type RtxPeriods struct {
	Total         RtxCounters
	SinceShowTime RtxCounters
	Curr1Day      RtxCounters
	Curr15Min     RtxCounters
}

type OlrCounters struct {
	BSW  uint32
	SRA  uint32
	FRA  uint32
	RPA  uint32
	TIGA uint32
}

type OlrPeriods struct {
	Total         OlrCounters
	SinceShowTime OlrCounters
	Curr1Day      OlrCounters
	Curr15Min     OlrCounters
}

type PerBand struct {
	CurrSnrMgn int32
}

// MIB holds the adslMibInfo fields the backend reads.
type MIB struct {
	Connection          ConnectionInfo
	Phys                PhysEntry
	AtucPhys            PhysEntry
	XdslPhys            XdslPhysEntry
	XdslAtucPhys        XdslPhysEntry
	LineCoding          uint32
	TrainingState       TrainingState
	InitializationCause uint32
	ThreshFastRateDown  uint32
	VdslInfo            [2]VdslInfo
	XdslInfo            XdslInfo
	PerBandUS           [MaxNumBands]PerBand
	PerBandDS           [MaxNumBands]PerBand
	Perf                PerfData
	ChanIntlPerf        ChanPerfData
	ChanFastPerf        ChanPerfData
	XdslChanPerf        [2]ChanPerfData
	LP2Active           uint8
	LP2TxActive         uint8
	XmtStat             DirStat
	RcvStat             DirStat
	ATMStat2LP          [2]struct{ Xmt, Rcv ATMDirStat }
	RtxDS               RtxPeriods
	GfastOlrDS          OlrPeriods
}

// CfgProfile holds the adslCfgProfile modulation words.
type CfgProfile struct {
	AnnexAParam uint32
	AnnexCParam uint32
	Adsl2Param  uint32
	VDSLParam   uint32
}

// VersionInfo holds the PHY type and firmware string of adslVersionInfo.
type VersionInfo struct {
	PhyType   Annex
	PhyVerStr [64]byte
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
