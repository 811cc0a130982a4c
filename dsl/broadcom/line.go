package broadcom

import (
	"context"

	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/mapping"
	"github.com/swoga/cpehal/model"
)

// annex derives the annex of the running mode. Telling Annex J apart from
// Annex M needs one extra version query.
func annex(mod ModType, mode uint32, version func() (*VersionInfo, error)) Annex {
	if mod == ModVdsl2 {
		return Annex(mode >> XdslModeAnnexShift)
	}
	if mode&Adsl2ModeAnnexMask != 0 {
		if v, err := version(); err == nil && v.PhyType == AnnexB {
			return AnnexJ
		}
		return AnnexM
	}
	return Annex(mode >> XdslModeAnnexShift)
}

func linkStatus(s TrainingState) model.LinkStatus {
	switch s {
	case TrainingIdle:
		return model.LinkNoSignal
	case TrainingG994, TrainingG992Started, TrainingG993Started:
		return model.LinkInitializing
	case TrainingG992ChanAnalysis, TrainingG992Exchange, TrainingG993ChanAnalysis, TrainingG993Exchange:
		return model.LinkEstablishing
	case TrainingConnected:
		return model.LinkUp
	}
	return model.LinkError
}

func cfgParam(cfg *CfgProfile, phy Annex) uint32 {
	if phy == AnnexC {
		return cfg.AnnexCParam
	}
	return cfg.AnnexAParam
}

// supportedXTSE maps the enabled modulations onto XTSE bits. Overlapped and
// non-overlapped variants are always set together. Unmapped combinations are
// ignored.
func supportedXTSE(param uint32, adsl2Param uint32, phy Annex) model.XTSE {
	var x model.XTSE
	set := func(bits ...model.XTSEBit) {
		for _, b := range bits {
			x.Set(b)
		}
	}

	if param&CfgModT1413Only != 0 {
		set(model.XTSET1413)
	}
	if param&CfgModGdmtOnly != 0 {
		switch phy {
		case AnnexA:
			set(model.XTSEG9921PotsNonOverlapped, model.XTSEG9921PotsOverlapped)
		case AnnexB:
			set(model.XTSEG9921IsdnNonOverlapped, model.XTSEG9921IsdnOverlapped)
		case AnnexC:
			set(model.XTSEG9921TcmNonOverlapped, model.XTSEG9921TcmOverlapped)
		}
	}
	if param&CfgModGliteOnly != 0 {
		switch phy {
		case AnnexA:
			set(model.XTSEG9922PotsNonOverlapped, model.XTSEG9922PotsOverlapped)
		case AnnexC:
			set(model.XTSEG9922TcmNonOverlapped, model.XTSEG9922TcmOverlapped)
		}
	}
	if param&CfgModAdsl2Only != 0 {
		switch phy {
		case AnnexA:
			set(model.XTSEG9923PotsNonOverlapped, model.XTSEG9923PotsOverlapped)
		case AnnexB:
			set(model.XTSEG9923IsdnNonOverlapped, model.XTSEG9923IsdnOverlapped)
		case AnnexC:
			set(model.XTSEG9923TcmNonOverlapped, model.XTSEG9923TcmOverlapped)
		}
		// G.992.4 and the all digital modes are not reported by the driver
		if adsl2Param&Adsl2CfgReachExOn != 0 {
			if adsl2Param&Adsl2CfgAnnexLUpWide != 0 {
				set(model.XTSEG9923PotsMode1, model.XTSEG9923PotsMode3)
			}
			if adsl2Param&Adsl2CfgAnnexLUpNarrow != 0 {
				set(model.XTSEG9923PotsMode2, model.XTSEG9923PotsMode4)
			}
		}
		if adsl2Param&Adsl2CfgAnnexMp3 != 0 {
			set(model.XTSEG9923ExtPotsNonOverlap, model.XTSEG9923ExtPotsOverlapped)
		}
	}
	if param&CfgModAdsl2pOnly != 0 {
		switch phy {
		case AnnexA:
			set(model.XTSEG9925PotsNonOverlapped, model.XTSEG9925PotsOverlapped)
		case AnnexB:
			set(model.XTSEG9925IsdnNonOverlapped, model.XTSEG9925IsdnOverlapped)
		case AnnexC:
			set(model.XTSEG9925TcmNonOverlapped, model.XTSEG9925TcmOverlapped)
		}
		if adsl2Param&Adsl2CfgAnnexMp5 != 0 {
			set(model.XTSEG9925ExtPotsNonOverlap, model.XTSEG9925ExtPotsOverlapped)
		}
	}
	// only Annex A is defined for G.993.2 in the driver
	if param&(CfgModVdsl2Only|CfgModVdsl2LROnly) != 0 {
		set(model.XTSEG9932NorthAmerica)
	}
	return x
}

// usedXTSE selects the single XTSE bit of the running standard. Overlapped
// variants are assumed.
func usedXTSE(mod ModType, a Annex, xdslMode uint32) model.XTSE {
	var x model.XTSE
	switch mod {
	case ModGdmt:
		switch a {
		case AnnexB:
			x.Set(model.XTSEG9921IsdnOverlapped)
		case AnnexC:
			x.Set(model.XTSEG9921TcmOverlapped)
		default:
			x.Set(model.XTSEG9921PotsOverlapped)
		}
	case ModT1413:
		x.Set(model.XTSET1413)
	case ModGlite:
		switch a {
		case AnnexC:
			x.Set(model.XTSEG9922TcmOverlapped)
		default:
			x.Set(model.XTSEG9922PotsOverlapped)
		}
	case ModAnnexI:
		// not reported by current drivers
		x.Set(model.XTSEG9923AnnexIOverlapped)
	case ModAdsl2, ModReAdsl2:
		switch a {
		case AnnexB:
			x.Set(model.XTSEG9923IsdnOverlapped)
		case AnnexC:
			x.Set(model.XTSEG9923TcmOverlapped)
		case AnnexI:
			x.Set(model.XTSEG9923AnnexIOverlapped)
		case AnnexJ:
			x.Set(model.XTSEG9923AnnexJOverlapped)
		case AnnexL:
			if xdslMode&Adsl2ModeAnnexLUpWide != 0 {
				x.Set(model.XTSEG9923PotsMode3)
			} else {
				x.Set(model.XTSEG9923PotsMode4)
			}
		case AnnexM:
			x.Set(model.XTSEG9923ExtPotsOverlapped)
		default:
			x.Set(model.XTSEG9923PotsOverlapped)
		}
	case ModAdsl2p:
		switch a {
		case AnnexB:
			x.Set(model.XTSEG9925IsdnOverlapped)
		case AnnexC:
			x.Set(model.XTSEG9925TcmOverlapped)
		case AnnexI:
			x.Set(model.XTSEG9925AnnexIOverlapped)
		case AnnexJ:
			x.Set(model.XTSEG9925AnnexJOverlapped)
		case AnnexM:
			x.Set(model.XTSEG9925ExtPotsOverlapped)
		default:
			x.Set(model.XTSEG9925PotsOverlapped)
		}
	case ModVdsl2:
		switch a {
		case AnnexB:
			x.Set(model.XTSEG9932Europe)
		case AnnexC:
			x.Set(model.XTSEG9932Japan)
		default:
			x.Set(model.XTSEG9932NorthAmerica)
		}
	}
	return x
}

var vdslProfiles = []struct {
	vendor  uint32
	profile model.Profile
}{
	{VdslProfile8a, model.VDSL2Profile8a},
	{VdslProfile8b, model.VDSL2Profile8b},
	{VdslProfile8c, model.VDSL2Profile8c},
	{VdslProfile8d, model.VDSL2Profile8d},
	{VdslProfile12a, model.VDSL2Profile12a},
	{VdslProfile12b, model.VDSL2Profile12b},
	{VdslProfile17a, model.VDSL2Profile17a},
	{VdslProfile30a, model.VDSL2Profile30a},
	{VdslProfile35b, model.VDSL2Profile35b},
}

func allowedProfiles(vdslParam uint32) model.Profile {
	var p model.Profile
	for _, e := range vdslProfiles {
		if vdslParam&e.vendor != 0 {
			p |= e.profile
		}
	}
	return p
}

func currentProfile(vendor uint32) model.Profile {
	for _, e := range vdslProfiles {
		if vendor == e.vendor {
			return e.profile
		}
	}
	return 0
}

func lineEncoding(coding uint32) model.LineEncoding {
	switch coding {
	case LineCodingDMT:
		return model.EncodingDMT
	case LineCodingCAP:
		return model.EncodingCAP
	case LineCodingQAM:
		return model.EncodingQAM
	}
	return 0
}

func (b *Backend) LineInfo(ctx context.Context, line int) (model.Line, error) {
	var l model.Line
	err := b.withDevice(ctx, "broadcom.LineInfo", func(dev Device) error {
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
		l = lineFromMIB(mib, cfg, ver, dev.Version)
		return nil
	})
	if err != nil {
		return model.Line{}, err
	}
	return l, nil
}

func lineFromMIB(mib *MIB, cfg *CfgProfile, ver *VersionInfo, version func() (*VersionInfo, error)) model.Line {
	mod := mib.Connection.ModType
	isVDSL := mod == ModVdsl2

	l := model.Line{
		Status:          model.IfDown,
		Upstream:        true,
		FirmwareVersion: cstring(ver.PhyVerStr[:]),
		LinkStatus:      linkStatus(mib.TrainingState),
	}
	if mib.Phys.CurrStatus == PhysStatusNoDefect && mod != ModGfast {
		l.Status = model.IfUp
	}
	if mod == ModGfast {
		l.LinkStatus = model.LinkNoSignal
	}

	param := cfgParam(cfg, ver.PhyType)
	l.StandardSupported = model.XTSEStandard{XTSE: supportedXTSE(param, cfg.Adsl2Param, ver.PhyType)}
	var used model.XTSE
	if l.Status == model.IfUp {
		a := annex(mod, mib.VdslInfo[0].VDSL2Mode, version)
		used = usedXTSE(mod, a, mib.XdslInfo.XdslMode)
	}
	l.StandardUsed = model.XTSEStandard{XTSE: used}

	l.LineEncoding = lineEncoding(mib.LineCoding)
	if param&CfgModVdsl2Only != 0 {
		l.AllowedProfiles = allowedProfiles(cfg.VDSLParam)
	}
	if isVDSL {
		l.CurrentProfile = currentProfile(mib.VdslInfo[0].VDSL2Profile)
	}

	pwr := mib.VdslInfo[0].PwrState
	if l.Status == model.IfUp && pwr > 0 && pwr <= 4 {
		l.PowerManagementState = model.PowerL0 + model.PowerState(pwr)
	} else {
		l.PowerManagementState = model.PowerL3
	}

	l.SuccessFailureCause = mib.InitializationCause
	l.UPBOKLER = mib.XdslPhys.UPBOkle
	l.UPBOKLEPerBand = kl0Bands(mib.XdslAtucPhys)
	l.UPBOKLERPerBand = kl0Bands(mib.XdslPhys)
	l.RxThreshDS = []uint64{uint64(mib.ThreshFastRateDown)}
	l.SNRMROC = model.UpDown[uint64]{US: uint64(mib.XdslAtucPhys.SNRMRoc), DS: uint64(mib.XdslPhys.SNRMRoc)}
	l.LastStateTransmitted = model.UpDown[uint64]{US: uint64(mib.InitializationCause), DS: uint64(mib.InitializationCause)}
	l.UPBOKLE = mib.XdslPhys.UPBOkleCpe
	l.US0Mask = VdslUS0Mask

	if mod < ModAdsl2 {
		if mib.Connection.TrellisCoding == TrellisOn {
			l.Trellis = model.UpDown[int64]{US: 1, DS: 1}
		}
	} else {
		if mib.Connection.TrellisCoding2&Adsl2TrellisTxEnabled != 0 {
			l.Trellis.US = 1
		}
		if mib.Connection.TrellisCoding2&Adsl2TrellisRxEnabled != 0 {
			l.Trellis.DS = 1
		}
	}

	snrMode := mib.Phys.SNRMode
	if isVDSL {
		snrMode = mib.XdslPhys.SNRMode
	}
	l.ActSNRMode = model.UpDown[uint64]{US: uint64(snrMode), DS: uint64(snrMode)}

	if l.Status == model.IfUp {
		l.MaxBitRate = model.UpDown[uint64]{
			US: uint64(mib.AtucPhys.CurrAttainableRate / 1000),
			DS: uint64(mib.Phys.CurrAttainableRate / 1000),
		}
		l.NoiseMargin = model.UpDown[int64]{US: int64(mib.AtucPhys.CurrSnrMgn), DS: int64(mib.Phys.CurrSnrMgn)}
	}

	l.SNRMPerBandUS = model.Bands(snrBands(mib.PerBandUS[:]))
	l.SNRMPerBandDS = model.Bands(snrBands(mib.PerBandDS[:]))

	l.Attenuation = model.UpDown[int64]{US: int64(mib.AtucPhys.CurrAtn), DS: int64(mib.Phys.CurrAtn)}
	l.Power = model.UpDown[int64]{US: int64(mib.Phys.CurrOutputPwr), DS: int64(mib.AtucPhys.CurrOutputPwr)}

	l.XTURVendor = mapping.VendorHex(mib.Phys.VendorID[:])
	l.XTUCVendor = mapping.VendorHex(mib.AtucPhys.VendorID[:])
	l.XTUCANSIRev = parseUint(cstring(mib.AtucPhys.VersionNumber[:]))

	// not available from the driver
	l.ActRAMode = model.UpDown[uint64]{US: 1, DS: 1}
	l.LineNumber = 1
	l.XTURCountry = "0000"
	l.XTUCCountry = "0000"
	return l
}

func kl0Bands(p XdslPhysEntry) []uint64 {
	n := int(p.NumKl0BandReported)
	if n > len(p.Kl0PerBand) {
		n = len(p.Kl0PerBand)
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(p.Kl0PerBand[i])
	}
	return model.Bands(out)
}

func snrBands(bands []PerBand) []int64 {
	out := make([]int64, len(bands))
	for i, band := range bands {
		out[i] = int64(band.CurrSnrMgn)
	}
	return out
}

func (b *Backend) mib(ctx context.Context, op string) (*MIB, error) {
	var mib *MIB
	err := b.withDevice(ctx, op, func(dev Device) error {
		var err error
		mib, err = dev.MIB()
		return err
	})
	return mib, err
}

func (b *Backend) LineStats(ctx context.Context, line int) (model.LineChannelStats, error) {
	mib, err := b.mib(ctx, "broadcom.LineStats")
	if err != nil {
		return model.LineChannelStats{}, err
	}
	if mib.Connection.ModType == ModGfast {
		return model.LineChannelStats{}, nil
	}
	return lineStats(mib), nil
}

func lineStats(mib *MIB) model.LineChannelStats {
	return model.LineChannelStats{
		TotalStart:        mib.Perf.SinceDrvStartedTimeElapsed,
		ShowtimeStart:     mib.Perf.SinceLinkTimeElapsed,
		LastShowtimeStart: mib.Perf.SincePrevLinkTimeElapsed,
		CurrentDayStart:   mib.Perf.Curr1DayTimeElapsed,
		QuarterHourStart:  mib.Perf.Curr15MinTimeElapsed,
	}
}

func (b *Backend) LineStatsInterval(ctx context.Context, line int, t model.StatsType) (model.LineStatsInterval, error) {
	const op = "broadcom.LineStatsInterval"
	mib, err := b.mib(ctx, op)
	if err != nil {
		return model.LineStatsInterval{}, err
	}
	if mib.Connection.ModType == ModGfast {
		return model.LineStatsInterval{}, nil
	}

	var c PerfCounters
	switch t {
	case model.StatsTotal:
		c = mib.Perf.Total
	case model.StatsShowtime:
		c = mib.Perf.SinceShowTime
	case model.StatsLastShowtime:
		return model.LineStatsInterval{
			ErroredSecs:         model.InvalidCounter,
			SeverelyErroredSecs: model.InvalidCounter,
		}, nil
	case model.StatsCurrentDay:
		c = mib.Perf.Curr1Day
	case model.StatsQuarterHour:
		c = mib.Perf.Curr15Min
	default:
		b.log.Error().Int("type", int(t)).Msg("unknown interval type for DSL line statistics")
		return model.LineStatsInterval{}, halerr.Errorf(halerr.InvalidArgument, op, "unknown interval type %d", t)
	}
	return model.LineStatsInterval{ErroredSecs: c.ESs, SeverelyErroredSecs: c.SES}, nil
}
