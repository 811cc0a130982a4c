package broadcom

import (
	"context"

	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

func (b *Backend) fastAllowedProfiles(vdslParam uint32) model.FastProfile {
	// the driver stores disable bits
	p := model.FastProfile(0)
	enabled := func(disable uint32) bool { return vdslParam&disable == 0 }
	if enabled(GfastProfile106aDisable) {
		p |= model.FastProfile106a
	}
	if enabled(GfastProfile106bDisable) {
		p |= model.FastProfile106b
	}
	if b.opts.BCM63138 {
		return p
	}
	if enabled(GfastProfile212aDisable) {
		p |= model.FastProfile212a
	}
	if enabled(GfastProfile106cDisable) {
		p |= model.FastProfile106c
	}
	if enabled(GfastProfile212cDisable) {
		p |= model.FastProfile212c
	}
	return p
}

func fastCurrentProfile(v uint32) model.FastProfile {
	switch v {
	case GfastProfile106a:
		return model.FastProfile106a
	case GfastProfile212a:
		return model.FastProfile212a
	case GfastProfile106b:
		return model.FastProfile106b
	case GfastProfile106c:
		return model.FastProfile106c
	case GfastProfile212c:
		return model.FastProfile212c
	}
	return 0
}

func (b *Backend) FastLineInfo(ctx context.Context, line int) (model.FastLine, error) {
	var l model.FastLine
	err := b.withDevice(ctx, "broadcom.FastLineInfo", func(dev Device) error {
		mib, err := dev.MIB()
		if err != nil {
			return err
		}
		cfg, err := dev.CfgProfile()
		if err != nil {
			return err
		}
		ver, err := dev.Version()
		if err != nil {
			b.log.Warn().Err(err).Msg("failed to read DSL version")
			ver = &VersionInfo{}
		}
		l = b.fastLineFromMIB(mib, cfg, ver)
		return nil
	})
	if err != nil {
		return model.FastLine{}, err
	}
	return l, nil
}

func (b *Backend) fastLineFromMIB(mib *MIB, cfg *CfgProfile, ver *VersionInfo) model.FastLine {
	l := model.FastLine{
		Status:          model.IfDown,
		Upstream:        true,
		FirmwareVersion: cstring(ver.PhyVerStr[:]),
		LinkStatus:      linkStatus(mib.TrainingState),
	}
	if mib.Phys.CurrStatus == PhysStatusNoDefect && mib.Connection.ModType == ModGfast {
		l.Status = model.IfUp
	}

	if cfgParam(cfg, ver.PhyType)&CfgModGfastOnly != 0 {
		l.AllowedProfiles = b.fastAllowedProfiles(cfg.VDSLParam)
	}
	l.CurrentProfile = fastCurrentProfile(mib.XdslInfo.VDSL2Profile)

	pwr := mib.XdslInfo.PwrState
	if l.Status == model.IfUp && pwr > 0 && pwr <= 4 {
		l.PowerManagementState = model.FastL0 + model.FastPowerState(pwr)
	} else {
		l.PowerManagementState = model.FastL3
	}

	l.SuccessFailureCause = mib.InitializationCause
	l.UPBOKLER = mib.XdslPhys.UPBOkle
	l.UPBOKLE = mib.XdslPhys.UPBOkleCpe
	l.MaxBitRate = model.UpDown[uint64]{
		US: uint64(mib.AtucPhys.CurrAttainableRate / 1000),
		DS: uint64(mib.Phys.CurrAttainableRate / 1000),
	}
	l.NoiseMargin = model.UpDown[int64]{US: int64(mib.AtucPhys.CurrSnrMgn), DS: int64(mib.Phys.CurrSnrMgn)}
	l.Attenuation = model.UpDown[int64]{US: int64(mib.AtucPhys.CurrAtn), DS: int64(mib.Phys.CurrAtn)}
	l.Power = model.UpDown[int64]{US: int64(mib.Phys.CurrOutputPwr), DS: int64(mib.AtucPhys.CurrOutputPwr)}
	l.SNRMRMC = model.UpDown[int64]{US: int64(mib.XdslAtucPhys.SNRMRoc), DS: int64(mib.XdslPhys.SNRMRoc)}

	// innermost pair
	l.LineNumber = 1
	return l
}

func (b *Backend) FastLineStats(ctx context.Context, line int) (model.LineChannelStats, error) {
	mib, err := b.mib(ctx, "broadcom.FastLineStats")
	if err != nil {
		return model.LineChannelStats{}, err
	}
	return lineStats(mib), nil
}

func (b *Backend) FastLineStatsInterval(ctx context.Context, line int, t model.StatsType) (model.FastLineStatsInterval, error) {
	const op = "broadcom.FastLineStatsInterval"
	mib, err := b.mib(ctx, op)
	if err != nil {
		return model.FastLineStatsInterval{}, err
	}

	invalid := model.FastLineStatsInterval{
		ErroredSecs:         model.InvalidCounter,
		SeverelyErroredSecs: model.InvalidCounter,
		LOSS:                model.InvalidCounter,
		LORS:                model.InvalidCounter,
		UAS:                 model.InvalidCounter,
		RTXUC:               model.InvalidCounter,
		RTXTX:               model.InvalidCounter,
		SuccessBSW:          model.InvalidCounter,
		SuccessSRA:          model.InvalidCounter,
		SuccessFRA:          model.InvalidCounter,
		SuccessRPA:          model.InvalidCounter,
		SuccessTIGA:         model.InvalidCounter,
	}

	var (
		perf PerfCounters
		rtx  RtxCounters
		olr  OlrCounters
	)
	switch t {
	case model.StatsTotal:
		perf, rtx, olr = mib.Perf.Total, mib.RtxDS.Total, mib.GfastOlrDS.Total
	case model.StatsShowtime:
		perf, rtx, olr = mib.Perf.SinceShowTime, mib.RtxDS.SinceShowTime, mib.GfastOlrDS.SinceShowTime
	case model.StatsLastShowtime:
		return invalid, nil
	case model.StatsCurrentDay:
		perf, rtx, olr = mib.Perf.Curr1Day, mib.RtxDS.Curr1Day, mib.GfastOlrDS.Curr1Day
	case model.StatsQuarterHour:
		perf, rtx, olr = mib.Perf.Curr15Min, mib.RtxDS.Curr15Min, mib.GfastOlrDS.Curr15Min
	default:
		b.log.Error().Int("type", int(t)).Msg("unknown interval type for FAST line statistics")
		return model.FastLineStatsInterval{}, halerr.Errorf(halerr.InvalidArgument, op, "unknown interval type %d", t)
	}

	return model.FastLineStatsInterval{
		ErroredSecs:         perf.ESs,
		SeverelyErroredSecs: perf.SES,
		LOSS:                perf.Loss,
		LORS:                perf.Lors,
		UAS:                 perf.UAS,
		RTXUC:               rtx.UC,
		RTXTX:               rtx.TX,
		SuccessBSW:          olr.BSW,
		SuccessSRA:          olr.SRA,
		SuccessFRA:          olr.FRA,
		SuccessRPA:          olr.RPA,
		SuccessTIGA:         olr.TIGA,
	}, nil
}
