package broadcom

import (
	"context"

	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/mapping"
	"github.com/swoga/cpehal/model"
)

const supportedEncapsulations = model.EncapG9923AnnexKATM | model.EncapG9923AnnexKPTM |
	model.EncapG9932AnnexKATM | model.EncapG9932AnnexKPTM | model.EncapG9941Auto

func encapsulation(tm uint8, isVDSL bool) model.LinkEncapsulation {
	switch tm {
	case DataPTM:
		if isVDSL {
			return model.EncapG9932AnnexKPTM
		}
		return model.EncapG9923AnnexKPTM
	case DataATM, DataNitro:
		if isVDSL {
			return model.EncapG9932AnnexKATM
		}
		return model.EncapG9923AnnexKATM
	case DataRaw:
		return model.EncapG9941Auto
	}
	return 0
}

// aggrRate computes the aggregate rate of one latency path. A path without
// codewords reports 0.
func (b *Backend) aggrRate(f FramingInfo, double bool) uint64 {
	rate, err := mapping.AggregateRate(mapping.Framing{L: f.L, N: f.N, R: f.R, RtxMode: f.RtxMode}, double)
	if err != nil {
		b.log.Debug().Err(err).Msg("aggregate rate not available")
		return 0
	}
	return uint64(rate)
}

func (b *Backend) ChannelInfo(ctx context.Context, channel int) (model.Channel, error) {
	mib, err := b.mib(ctx, "broadcom.ChannelInfo")
	if err != nil {
		return model.Channel{}, err
	}

	mod := mib.Connection.ModType
	isVDSL := mod == ModVdsl2
	us := mib.XdslInfo.DirInfo[1].LPInfo[0]
	ds := mib.XdslInfo.DirInfo[0].LPInfo[0]

	c := model.Channel{
		Status:                     model.IfLowerLayerDown,
		LinkEncapsulationSupported: supportedEncapsulations,
		LinkEncapsulationUsed:      encapsulation(us.TMType[0], isVDSL),
		LPath:                      us.PathID,
		IntlvDepth:                 us.D,
		IntlvBlock:                 int32(us.I),
		ActualInterleavingDelay:    us.Delay,
		ActINP:                     int32(us.INP),
		NFEC:                       int32(us.N),
		LSYMB:                      int32(us.L),
		ActNDR:                     model.UpDown[uint64]{US: uint64(us.DataRate), DS: uint64(ds.DataRate)},
		ActINPREIN:                 model.UpDown[uint64]{US: uint64(us.INPRein), DS: uint64(ds.INPRein)},
		INPReport:                  false,
		RFEC:                       -1,
	}
	if mib.Phys.CurrStatus == PhysStatusNoDefect && mod != ModGfast {
		c.Status = model.IfUp
	}

	double := isVDSL && mib.VdslInfo[0].VDSL2Profile == VdslProfile30a
	c.CurrRate = model.UpDown[uint64]{US: b.aggrRate(us, double), DS: b.aggrRate(ds, double)}
	return c, nil
}

// chanPerf selects the performance block of the active bearer. With G.inp
// the counters live in the first bearer entry.
func chanPerf(mib *MIB) *ChanPerfData {
	if mib.LP2Active != 0 || mib.LP2TxActive != 0 {
		return &mib.XdslChanPerf[0]
	}
	if mib.Connection.ChType == IntlChannel {
		return &mib.ChanIntlPerf
	}
	return &mib.ChanFastPerf
}

func (b *Backend) ChannelStats(ctx context.Context, channel int) (model.LineChannelStats, error) {
	mib, err := b.mib(ctx, "broadcom.ChannelStats")
	if err != nil {
		return model.LineChannelStats{}, err
	}
	perf := chanPerf(mib)
	return model.LineChannelStats{
		CurrentDayStart:  perf.Curr1DayTimeElapsed,
		QuarterHourStart: perf.Curr15MinTimeElapsed,
	}, nil
}

func (b *Backend) ChannelStatsInterval(ctx context.Context, channel int, t model.StatsType) (model.ChannelStatsInterval, error) {
	const op = "broadcom.ChannelStatsInterval"
	mib, err := b.mib(ctx, op)
	if err != nil {
		return model.ChannelStatsInterval{}, err
	}

	s := model.ChannelStatsInterval{
		XTURFECErrors: model.InvalidCounter,
		XTUCFECErrors: model.InvalidCounter,
		XTURHECErrors: model.InvalidCounter,
		XTUCHECErrors: model.InvalidCounter,
		XTURCRCErrors: model.InvalidCounter,
		XTUCCRCErrors: model.InvalidCounter,
	}
	perf := chanPerf(mib)
	fromCounters := func(c ChanPerfCounters) {
		s.XTURFECErrors = c.TxFEC
		s.XTUCFECErrors = c.CorrectedBlks
		s.XTURCRCErrors = c.TxCRC
		s.XTUCCRCErrors = c.UncorrectBlks
	}

	switch t {
	case model.StatsTotal:
		fromCounters(perf.Total)
	case model.StatsShowtime:
		// HEC is only kept since showtime
		s.XTURFECErrors = mib.XmtStat.RSCor
		s.XTUCFECErrors = mib.RcvStat.RSCor
		s.XTURHECErrors = mib.ATMStat2LP[0].Xmt.HEC
		s.XTUCHECErrors = mib.ATMStat2LP[0].Rcv.HEC
		s.XTURCRCErrors = mib.XmtStat.SFErr
		s.XTUCCRCErrors = mib.RcvStat.SFErr
	case model.StatsLastShowtime:
	case model.StatsCurrentDay:
		fromCounters(perf.Curr1Day)
	case model.StatsQuarterHour:
		fromCounters(perf.Curr15Min)
	default:
		b.log.Error().Int("type", int(t)).Msg("unknown interval type for DSL channel statistics")
		return model.ChannelStatsInterval{}, halerr.Errorf(halerr.InvalidArgument, op, "unknown interval type %d", t)
	}
	return s, nil
}
