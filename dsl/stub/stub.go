// Package stub is the DSL backend of the test platform. It returns fixed
// values and logs the parameters of write operations.
package stub

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/rs/zerolog"
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/mapping"
	"github.com/swoga/cpehal/model"
)

type Backend struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Backend {
	return &Backend{log: log.With().Str("backend", "stub-dsl").Logger()}
}

var supportedModes = model.ModeStandard(model.ModG9221AnnexA | model.ModG9221AnnexB | model.ModG9221AnnexC |
	model.ModG9922 | model.ModT1413 | model.ModT1413i2 |
	model.ModG9923AnnexA | model.ModG9923AnnexB | model.ModG9923AnnexC | model.ModG9923AnnexI |
	model.ModG9923AnnexJ | model.ModG9923AnnexL | model.ModG9923AnnexM |
	model.ModG9925AnnexA | model.ModG9925AnnexB | model.ModG9925AnnexC |
	model.ModG9925AnnexI | model.ModG9925AnnexJ | model.ModG9925AnnexM |
	model.ModG9932AnnexA | model.ModG9932AnnexB | model.ModG9932AnnexC)

const allProfiles = model.VDSL2Profile8a | model.VDSL2Profile8b | model.VDSL2Profile8c | model.VDSL2Profile8d |
	model.VDSL2Profile12a | model.VDSL2Profile12b | model.VDSL2Profile17a | model.VDSL2Profile30a | model.VDSL2Profile35b

const allEncapsulations = model.EncapG9923AnnexKATM | model.EncapG9923AnnexKPTM |
	model.EncapG9932AnnexKATM | model.EncapG9932AnnexKPTM | model.EncapG9941Auto

func (b *Backend) LineInfo(ctx context.Context, line int) (model.Line, error) {
	return model.Line{
		Status:               model.IfUp,
		Upstream:             true,
		FirmwareVersion:      "A2pvfbH045k.d27f",
		LinkStatus:           model.LinkUp,
		StandardSupported:    supportedModes,
		StandardUsed:         model.ModeStandard(model.ModG9932AnnexA),
		LineEncoding:         model.EncodingDMT,
		AllowedProfiles:      allProfiles,
		CurrentProfile:       model.VDSL2Profile17a,
		PowerManagementState: model.PowerL0,
		UPBOKLERPerBand:      []uint64{180},
		RxThreshDS:           []uint64{0},
		US0Mask:              0x7f0000,
		Trellis:              model.UpDown[int64]{US: 1, DS: 1},
		ActSNRMode:           model.UpDown[uint64]{US: 1, DS: 1},
		MaxBitRate:           model.UpDown[uint64]{US: 65329, DS: 148444},
		NoiseMargin:          model.UpDown[int64]{US: 146, DS: 177},
		SNRMPerBandUS:        []int64{127, 183, 131, 0},
		SNRMPerBandDS:        []int64{176, 177, 177, 0},
		Attenuation:          model.UpDown[int64]{US: 0, DS: 48},
		Power:                model.UpDown[int64]{US: 123, DS: 106},
		XTURVendor:           "B5004244434D0000",
		XTUCVendor:           "B5004244434DA491",
		XTUCANSIRev:          0xa491,
		XTURCountry:          "0000",
		XTUCCountry:          "0000",
	}, nil
}

func (b *Backend) LineStats(ctx context.Context, line int) (model.LineChannelStats, error) {
	return model.LineChannelStats{
		TotalStart:        397,
		ShowtimeStart:     349,
		LastShowtimeStart: 349,
		CurrentDayStart:   397,
		QuarterHourStart:  397,
	}, nil
}

func (b *Backend) LineStatsInterval(ctx context.Context, line int, t model.StatsType) (model.LineStatsInterval, error) {
	switch t {
	case model.StatsLastShowtime:
		return model.LineStatsInterval{ErroredSecs: model.InvalidCounter, SeverelyErroredSecs: model.InvalidCounter}, nil
	case model.StatsTotal, model.StatsShowtime, model.StatsCurrentDay, model.StatsQuarterHour:
		return model.LineStatsInterval{}, nil
	}
	b.log.Error().Int("type", int(t)).Msg("unknown interval type for DSL line statistics")
	return model.LineStatsInterval{}, halerr.Errorf(halerr.InvalidArgument, "stub.LineStatsInterval", "unknown interval type %d", t)
}

func (b *Backend) ChannelInfo(ctx context.Context, channel int) (model.Channel, error) {
	return model.Channel{
		Status:                     model.IfUp,
		LinkEncapsulationSupported: allEncapsulations,
		LinkEncapsulationUsed:      model.EncapG9932AnnexKPTM,
		IntlvDepth:                 1,
		IntlvBlock:                 120,
		NFEC:                       240,
		LSYMB:                      15080,
		CurrRate:                   model.UpDown[uint64]{US: 60085, DS: 100120},
		ActNDR:                     model.UpDown[uint64]{US: 59999, DS: 99976},
		RFEC:                       -1,
	}, nil
}

func (b *Backend) ChannelStats(ctx context.Context, channel int) (model.LineChannelStats, error) {
	return model.LineChannelStats{CurrentDayStart: 397, QuarterHourStart: 397}, nil
}

func (b *Backend) ChannelStatsInterval(ctx context.Context, channel int, t model.StatsType) (model.ChannelStatsInterval, error) {
	s := model.ChannelStatsInterval{
		XTURFECErrors: model.InvalidCounter,
		XTUCFECErrors: model.InvalidCounter,
		XTURHECErrors: model.InvalidCounter,
		XTUCHECErrors: model.InvalidCounter,
		XTURCRCErrors: model.InvalidCounter,
		XTUCCRCErrors: model.InvalidCounter,
	}
	switch t {
	case model.StatsShowtime:
		return model.ChannelStatsInterval{}, nil
	case model.StatsTotal, model.StatsCurrentDay, model.StatsQuarterHour:
		s.XTURFECErrors, s.XTUCFECErrors, s.XTURCRCErrors, s.XTUCCRCErrors = 0, 0, 0, 0
		return s, nil
	case model.StatsLastShowtime:
		return s, nil
	}
	b.log.Error().Int("type", int(t)).Msg("unknown interval type for DSL channel statistics")
	return model.ChannelStatsInterval{}, halerr.Errorf(halerr.InvalidArgument, "stub.ChannelStatsInterval", "unknown interval type %d", t)
}

func (b *Backend) LineTestParams(ctx context.Context, line int) (model.LineTestParams, error) {
	return model.LineTestParams{
		HLOGG:    model.UpDown[uint64]{US: 2, DS: 1},
		HLOGpsDS: []uint64{1, 2, 3, 4},
		HLOGpsUS: []uint64{1, 2, 3, 4},
		HLOGMT:   model.UpDown[uint64]{US: 2, DS: 1},
		QLNG:     model.UpDown[uint64]{US: 4, DS: 3},
		QLNpsDS:  []uint64{1, 2, 3, 4},
		QLNpsUS:  []uint64{1, 2, 3, 4},
		QLNMT:    model.UpDown[uint64]{US: 4, DS: 3},
		SNRG:     model.UpDown[uint64]{US: 2, DS: 1},
		SNRpsDS:  []uint64{1, 2, 3, 4},
		SNRpsUS:  []uint64{1, 2, 3, 4},
		SNRMT:    model.UpDown[uint64]{US: 2, DS: 1},
		LATNDS:   []uint64{1, 2, 3, 4},
		LATNUS:   []uint64{1, 2, 3, 4},
		SATNDS:   []uint64{1, 2, 3, 4},
		SATNUS:   []uint64{1, 2, 3, 4},
	}, nil
}

func (b *Backend) DataGathering(ctx context.Context, line int) (model.DataGathering, error) {
	return model.DataGathering{LoggingDepthR: 64, ActLoggingDepthR: 32}, nil
}

func (b *Backend) LineTest(ctx context.Context, line int, start bool) error {
	b.log.Info().Int("line", line).Bool("start", start).Msg("line test")
	return nil
}

func (b *Backend) LineTestResults(ctx context.Context, line int) (model.ADSLLineTest, model.DiagState, error) {
	elements := []uint64{1, 3, 5, 7}
	array := []uint64{2, 4, 6}
	return model.ADSLLineTest{
		ActPSD:   model.UpDown[int64]{US: 2, DS: 1},
		ActATP:   model.UpDown[int64]{US: 4, DS: 3},
		HLINSC:   model.UpDown[int64]{US: -2, DS: -1},
		HLING:    model.UpDown[uint64]{US: 4, DS: 3},
		HLOGG:    model.UpDown[uint64]{US: 2, DS: 1},
		HLOGpsDS: elements,
		HLOGpsUS: elements,
		HLOGMT:   model.UpDown[uint64]{US: 4, DS: 3},
		LATNpbDS: array,
		LATNpbUS: array,
		SATNDS:   array,
		SATNUS:   array,
		HLINpsDS: elements,
		HLINpsUS: elements,
		QLNG:     model.UpDown[uint64]{US: 2, DS: 1},
		QLNpsDS:  elements,
		QLNpsUS:  elements,
		QLNMT:    model.UpDown[uint64]{US: 2, DS: 1},
		SNRG:     model.UpDown[uint64]{US: 2, DS: 1},
		SNRpsDS:  elements,
		SNRpsUS:  elements,
		SNRMT:    model.UpDown[uint64]{US: 2, DS: 1},
		BITSpsDS: elements,
		BITSpsUS: elements,
	}, model.DiagComplete, nil
}

func (b *Backend) SELTUERTest(ctx context.Context, line int, cfg model.SELTUER, start bool) error {
	return nil
}

func (b *Backend) SELTUERResults(ctx context.Context, line int) (model.SELTUER, model.DiagState, error) {
	return model.SELTUER{
		MaxDuration:    120,
		ExtBandwidthOp: true,
		UER:            []uint64{1, 3, 5, 7},
		ScaleFactor:    8,
		GroupSize:      1,
		UERVar:         []uint64{1, 3, 5, 7},
	}, model.DiagComplete, nil
}

func (b *Backend) SELTQLNTest(ctx context.Context, line int, cfg model.SELTQLN, start bool) error {
	return nil
}

func (b *Backend) SELTQLNResults(ctx context.Context, line int) (model.SELTQLN, model.DiagState, error) {
	return model.SELTQLN{
		MaxMeasurementDuration: 180,
		ExtBandwidthOp:         true,
		QLN:                    []uint64{1, 3, 5, 7},
		GroupSize:              1,
	}, model.DiagComplete, nil
}

func (b *Backend) SELTPTest(ctx context.Context, line int, cfg model.SELTP, start bool) error {
	return nil
}

func (b *Backend) SELTPResults(ctx context.Context, line int) (model.SELTP, model.DiagState, error) {
	p := model.SELTP{
		CapacityEstimateEnable:     true,
		CapacitySignalPSD:          []uint64{1, 3, 5, 7},
		CapacityNoisePSD:           []uint64{1, 3, 5, 7},
		CapacityTargetMargin:       16,
		LoopTermination:            model.LoopPoweredOn,
		LoopLength:                 8,
		AttenuationCharacteristics: []uint64{1, 3, 5, 7},
		MissingFilter:              true,
		CapacityEstimate:           12,
	}
	for i := uint32(1); i <= 4; i++ {
		p.LoopTopology = append(p.LoopTopology, model.LoopSegment{Length: i, BridgeTaps: 2 * i})
	}
	return p, model.DiagComplete, nil
}

func (b *Backend) FastLineInfo(ctx context.Context, line int) (model.FastLine, error) {
	return model.FastLine{
		Status:                model.IfUp,
		Upstream:              true,
		FirmwareVersion:       "A2pvfbH045k.d28a",
		LinkStatus:            model.LinkUp,
		AllowedProfiles:       model.FastProfile106a | model.FastProfile212a,
		CurrentProfile:        model.FastProfile106a,
		PowerManagementState:  model.FastL0,
		UPBOKLER:              180,
		LastTransmittedSignal: model.UpDown[uint64]{US: 100, DS: 200},
		UPBOKLE:               160,
		LineNumber:            1,
		MaxBitRate:            model.UpDown[uint64]{US: 201000, DS: 402000},
		NoiseMargin:           model.UpDown[int64]{US: 146, DS: 177},
		Attenuation:           model.UpDown[int64]{US: 0, DS: 48},
		Power:                 model.UpDown[int64]{US: 123, DS: 106},
		SNRMRMC:               model.UpDown[int64]{US: 12, DS: 14},
		BitsRMCpsDS:           []uint64{1, 3, 5, 7},
		BitsRMCpsUS:           []uint64{1, 3, 5, 7},
		FEXTToCancelEnable:    model.UpDown[bool]{US: true, DS: true},
		ETR:                   model.UpDown[uint64]{US: 250000, DS: 350000},
		AttETR:                model.UpDown[uint64]{US: 225000, DS: 325000},
		MinEFTR:               model.UpDown[uint64]{US: 200000, DS: 300000},
	}, nil
}

func (b *Backend) FastLineStats(ctx context.Context, line int) (model.LineChannelStats, error) {
	return b.LineStats(ctx, line)
}

func (b *Backend) FastLineStatsInterval(ctx context.Context, line int, t model.StatsType) (model.FastLineStatsInterval, error) {
	return model.FastLineStatsInterval{
		ErroredSecs:         20,
		SeverelyErroredSecs: 5,
		LOSS:                1,
		LORS:                model.InvalidCounter,
		UAS:                 1,
		RTXUC:               model.InvalidCounter,
		SuccessBSW:          1024,
		SuccessSRA:          2048,
		SuccessFRA:          1024,
		SuccessRPA:          2048,
		SuccessTIGA:         1024,
	}, nil
}

func (b *Backend) FastLineTestParams(ctx context.Context, line int) (model.FastLineTestParams, error) {
	return model.FastLineTestParams{
		SNRG:       model.UpDown[uint64]{US: 1, DS: 1},
		SNRpsDS:    []uint64{1, 3, 5, 7},
		SNRpsUS:    []uint64{1, 3, 5, 7},
		SNRMT:      model.UpDown[uint64]{US: 128, DS: 192},
		ActINP:     4,
		NFEC:       2,
		CurrRate:   model.UpDown[uint64]{US: 251000, DS: 423000},
		ActINPREIN: 5,
	}, nil
}

func xtseString(x model.XTSE) string {
	parts := make([]string, len(x))
	for i, b := range x {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ",")
}

// Configure accepts any parameters with a non-empty XTSE and at least one
// profile. The input is logged either way.
func (b *Backend) Configure(ctx context.Context, line int, params model.ConfigParams) error {
	var err error
	if params.XTSE.IsZero() || (params.VDSL2Profiles == 0 && params.FastProfiles == 0) {
		err = halerr.Errorf(halerr.InvalidArgument, "stub.Configure", "no transmission system or profile enabled")
	}
	b.log.Info().
		AnErr("result", err).
		Str("xtse", xtseString(params.XTSE)).
		Str("vdsl2_profiles", mapping.VDSL2Profiles.JoinNames(uint32(params.VDSL2Profiles))).
		Str("fast_profiles", mapping.FastProfiles.JoinNames(uint32(params.FastProfiles))).
		Bool("data_gathering", params.EnableDataGathering).
		Uint32("limit_mask", params.LimitMask).
		Uint32("us0_mask", params.US0Mask).
		Msg("configure")
	return err
}

func (b *Backend) ATMConfigure(ctx context.Context, link int, cfg model.ATMLink, qos model.ATMLinkQoS) error {
	var err error
	if cfg.LinkType == model.ATMLinkUnconfigured || cfg.DestAddr.VPI == 0 || cfg.DestAddr.VCI == 0 || qos.Class == 0 {
		err = halerr.Errorf(halerr.InvalidArgument, "stub.ATMConfigure", "incomplete link configuration")
	}
	linkType, _ := mapping.ATMLinkTypes.Name(int(cfg.LinkType))
	encap, _ := mapping.ATMEncapsulations.Name(int(cfg.Encapsulation))
	class, _ := mapping.ATMQoSClasses.Name(int(qos.Class))
	b.log.Info().
		AnErr("result", err).
		Str("link_type", linkType).
		Uint32("vpi", cfg.DestAddr.VPI).
		Uint32("vci", cfg.DestAddr.VCI).
		Str("encapsulation", encap).
		Str("qos_class", class).
		Uint32("peak_cell_rate", qos.PeakCellRate).
		Uint32("max_burst_size", qos.MaxBurstSize).
		Uint32("sustainable_cell_rate", qos.SustainableCellRate).
		Msg("atm configure")
	return err
}

func (b *Backend) ATMLinkInfo(ctx context.Context, link int) (model.ATMLink, model.ATMLinkQoS, error) {
	l := model.ATMLink{
		Status:        model.IfUp,
		LinkType:      model.ATMLinkEoA,
		AutoConfig:    true,
		DestAddr:      model.ATMDestAddr{VPI: 8, VCI: 35},
		Encapsulation: model.ATMEncapLLC,
		FCSPreserved:  true,
		VCSearchList:  []model.ATMDestAddr{{VPI: 8, VCI: 36}, {VPI: 8, VCI: 37}},
		AAL:           model.ATMAAL5,
	}
	// 8 Mbit/s in cells, burst 1.2x and sustained 0.8x of the peak rate
	q := model.ATMLinkQoS{
		Class:               model.ATMQoSUBR,
		PeakCellRate:        18867,
		MaxBurstSize:        22640,
		SustainableCellRate: 15093,
	}
	return l, q, nil
}

func (b *Backend) ATMLinkStats(ctx context.Context, link int) (model.ATMLinkStats, error) {
	return model.ATMLinkStats{TransmittedBlocks: 12345678, ReceivedBlocks: 87654321, CRCErrors: 12}, nil
}

func (b *Backend) ATMLoopbackTest(ctx context.Context, link int, cfg model.ATMDiagLoopback, start bool) error {
	return nil
}

func (b *Backend) ATMLoopbackResults(ctx context.Context, link int) (model.ATMDiagLoopback, model.DiagState, error) {
	return model.ATMDiagLoopback{}, model.DiagComplete, nil
}

func (b *Backend) PTMLinkInfo(ctx context.Context, link int) (model.PTMLink, error) {
	return model.PTMLink{
		Status:     model.IfUp,
		MACAddress: net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
	}, nil
}
