//go:build broadcom && cgo

package broadcom

/*
#include <string.h>
#include <sys/ioctl.h>
#include "adsldrv.h"
#include "AdslMibDef.h"

typedef __typeof__(((adslMibInfo *)0)->adslPhys) phys_entry_t;
typedef __typeof__(((adslMibInfo *)0)->xdslPhys) xdsl_phys_entry_t;
typedef __typeof__(((adslMibInfo *)0)->adslPerfData) perf_data_t;
typedef __typeof__(((adslMibInfo *)0)->adslStat.xmtStat) dir_stat_t;
typedef __typeof__(((adslChanPerfDataEntry *)0)->perfTotal) chan_counters_t;

static int adsl_get_obj(int fd, char *oid, int oid_len, void *buf, unsigned long len)
{
	ADSLDRV_GET_OBJ arg;

	memset(&arg, 0, sizeof(arg));
	arg.bvStatus = BCMADSL_STATUS_ERROR;
	arg.objId = oid;
	arg.objIdLen = oid_len;
	arg.dataBuf = buf;
	arg.dataBufLen = len;
	if (ioctl(fd, ADSLIOCTL_GET_OBJ_VALUE, &arg) != 0)
		return -1;
	return arg.bvStatus == BCMADSL_STATUS_ERROR ? -1 : 0;
}

static int adsl_get_version(int fd, adslVersionInfo *ver)
{
	ADSLDRV_GET_VERSION arg;

	memset(&arg, 0, sizeof(arg));
	arg.pAdslVer = ver;
	arg.bvStatus = BCMADSL_STATUS_ERROR;
	if (ioctl(fd, ADSLIOCTL_GET_VERSION, &arg) != 0)
		return -1;
	return arg.bvStatus == BCMADSL_STATUS_ERROR ? -1 : 0;
}

static int adsl_set_oem_param(int fd, int id, void *buf, int len)
{
	ADSLDRV_SET_OEM_PARAM arg;

	memset(&arg, 0, sizeof(arg));
	arg.paramId = id;
	arg.buf = buf;
	arg.len = len;
	arg.bvStatus = BCMADSL_STATUS_ERROR;
	if (ioctl(fd, ADSLIOCTL_SET_OEM_PARAM, &arg) != 0)
		return -1;
	return arg.bvStatus == BCMADSL_STATUS_ERROR ? -1 : 0;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/swoga/cpehal/halerr"
	"golang.org/x/sys/unix"
)

func _() {
	// An "invalid array index" compiler error signifies that the SDK values
	// changed and the constants in mib.go need an update.
	var x [1]struct{}
	_ = x[ModGdmt-C.kAdslModGdmt]
	_ = x[ModT1413-C.kAdslModT1413]
	_ = x[ModGlite-C.kAdslModGlite]
	_ = x[ModAnnexI-C.kAdslModAnnexI]
	_ = x[ModAdsl2-C.kAdslModAdsl2]
	_ = x[ModAdsl2p-C.kAdslModAdsl2p]
	_ = x[ModReAdsl2-C.kAdslModReAdsl2]
	_ = x[ModVdsl2-C.kVdslModVdsl2]
	_ = x[ModGfast-C.kXdslModGfast]
	_ = x[AnnexA-C.kAdslTypeAnnexA]
	_ = x[AnnexB-C.kAdslTypeAnnexB]
	_ = x[AnnexC-C.kAdslTypeAnnexC]
	_ = x[AnnexI-C.kAdslTypeAnnexI]
	_ = x[AnnexJ-C.kAdslTypeAnnexJ]
	_ = x[AnnexM-C.kAdslTypeAnnexM]
	_ = x[AnnexL-C.kAdslTypeAnnexL]
	_ = x[TrainingIdle-C.kAdslTrainingIdle]
	_ = x[TrainingG994-C.kAdslTrainingG994]
	_ = x[TrainingG992Started-C.kAdslTrainingG992Started]
	_ = x[TrainingG992ChanAnalysis-C.kAdslTrainingG992ChanAnalysis]
	_ = x[TrainingG992Exchange-C.kAdslTrainingG992Exchange]
	_ = x[TrainingConnected-C.kAdslTrainingConnected]
	_ = x[TrainingG993Started-C.kAdslTrainingG993Started]
	_ = x[TrainingG993ChanAnalysis-C.kAdslTrainingG993ChanAnalysis]
	_ = x[TrainingG993Exchange-C.kAdslTrainingG993Exchange]
	_ = x[PhysStatusNoDefect-C.kAdslPhysStatusNoDefect]
	_ = x[LineCodingDMT-C.kAdslLineCodingDMT]
	_ = x[LineCodingCAP-C.kAdslLineCodingCAP]
	_ = x[LineCodingQAM-C.kAdslLineCodingQAM]
	_ = x[IntlChannel-C.kAdslIntlChannel]
	_ = x[DataATM-C.kXdslDataAtm]
	_ = x[DataPTM-C.kXdslDataPtm]
	_ = x[DataRaw-C.kXdslDataRaw]
	_ = x[DataNitro-C.kXdslDataNitro]
	_ = x[TrellisOn-C.kAdslTrellisOn]
	_ = x[Adsl2TrellisTxEnabled-C.kAdsl2TrellisTxEnabled]
	_ = x[Adsl2TrellisRxEnabled-C.kAdsl2TrellisRxEnabled]
	_ = x[CfgModT1413Only-C.kAdslCfgModT1413Only]
	_ = x[CfgModGdmtOnly-C.kAdslCfgModGdmtOnly]
	_ = x[CfgModGliteOnly-C.kAdslCfgModGliteOnly]
	_ = x[CfgModAdsl2Only-C.kAdslCfgModAdsl2Only]
	_ = x[CfgModAdsl2pOnly-C.kAdslCfgModAdsl2pOnly]
	_ = x[CfgModVdsl2Only-C.kDslCfgModVdsl2Only]
	_ = x[CfgModVdsl2LROnly-C.kDslCfgModVdsl2LROnly]
	_ = x[CfgModGfastOnly-C.kDslCfgModGfastOnly]
	_ = x[Adsl2CfgReachExOn-C.kAdsl2CfgReachExOn]
	_ = x[Adsl2CfgAnnexLUpWide-C.kAdsl2CfgAnnexLUpWide]
	_ = x[Adsl2CfgAnnexLUpNarrow-C.kAdsl2CfgAnnexLUpNarrow]
	_ = x[Adsl2CfgAnnexMp3-C.kAdsl2CfgAnnexMp3]
	_ = x[Adsl2CfgAnnexMp5-C.kAdsl2CfgAnnexMp5]
	_ = x[Adsl2ModeAnnexLUpWide-C.kAdsl2ModeAnnexLUpWide]
	_ = x[Adsl2ModeAnnexMask-C.kAdsl2ModeAnnexMask]
	_ = x[XdslModeAnnexShift-C.kXdslModeAnnexShift]
	_ = x[VdslProfile8a-C.kVdslProfile8a]
	_ = x[VdslProfile8b-C.kVdslProfile8b]
	_ = x[VdslProfile8c-C.kVdslProfile8c]
	_ = x[VdslProfile8d-C.kVdslProfile8d]
	_ = x[VdslProfile12a-C.kVdslProfile12a]
	_ = x[VdslProfile12b-C.kVdslProfile12b]
	_ = x[VdslProfile17a-C.kVdslProfile17a]
	_ = x[VdslProfile30a-C.kVdslProfile30a]
	_ = x[VdslProfile35b-C.kVdslProfile35b]
	_ = x[GfastProfile106aDisable-C.kGfastProfile106aDisable]
	_ = x[GfastProfile212aDisable-C.kGfastProfile212aDisable]
	_ = x[GfastProfile106bDisable-C.kGfastProfile106bDisable]
	_ = x[GfastProfile106cDisable-C.kGfastProfile106cDisable]
	_ = x[GfastProfile212cDisable-C.kGfastProfile212cDisable]
	_ = x[GfastProfile106a-C.kGfastProfile106a]
	_ = x[GfastProfile212a-C.kGfastProfile212a]
	_ = x[GfastProfile106b-C.kGfastProfile106b]
	_ = x[GfastProfile106c-C.kGfastProfile106c]
	_ = x[GfastProfile212c-C.kGfastProfile212c]
	_ = x[VdslUS0Mask-C.kVdslUS0Mask]
}

type cgoDevice struct {
	fd int
}

// Open opens DevicePath.
func Open() (Device, error) {
	fd, err := unix.Open(DevicePath, unix.O_RDWR, 0)
	if err != nil {
		return nil, halerr.New(halerr.HandleOpen, "broadcom.Open", fmt.Errorf("error opening %s: %s", DevicePath, err))
	}
	return &cgoDevice{fd: fd}, nil
}

func (d *cgoDevice) getObject(oid []C.char, buf unsafe.Pointer, size C.ulong) error {
	var p *C.char
	if len(oid) > 0 {
		p = &oid[0]
	}
	ret, err := C.adsl_get_obj(C.int(d.fd), p, C.int(len(oid)), buf, size)
	if ret != 0 {
		return halerr.New(halerr.Query, "broadcom.GetObjValue", fmt.Errorf("ioctl failed: %v", err))
	}
	return nil
}

func (d *cgoDevice) MIB() (*MIB, error) {
	var c C.adslMibInfo
	if err := d.getObject(nil, unsafe.Pointer(&c), C.ulong(C.sizeof_adslMibInfo)); err != nil {
		return nil, err
	}
	return mibFromC(&c), nil
}

func (d *cgoDevice) CfgProfile() (*CfgProfile, error) {
	var c C.adslCfgProfile
	oid := []C.char{C.kOidAdslPhyCfg}
	if err := d.getObject(oid, unsafe.Pointer(&c), C.ulong(C.sizeof_adslCfgProfile)); err != nil {
		return nil, err
	}
	return &CfgProfile{
		AnnexAParam: uint32(c.adslAnnexAParam),
		AnnexCParam: uint32(c.adslAnnexCParam),
		Adsl2Param:  uint32(c.adsl2Param),
		VDSLParam:   uint32(c.vdslParam),
	}, nil
}

func (d *cgoDevice) Version() (*VersionInfo, error) {
	var c C.adslVersionInfo
	ret, err := C.adsl_get_version(C.int(d.fd), &c)
	if ret != 0 {
		return nil, halerr.New(halerr.Query, "broadcom.GetVersion", fmt.Errorf("ioctl failed: %v", err))
	}

	v := &VersionInfo{PhyType: Annex(c.phyType)}
	for i := 0; i < min(len(v.PhyVerStr), len(c.phyVerStr)); i++ {
		v.PhyVerStr[i] = byte(c.phyVerStr[i])
	}
	return v, nil
}

func (d *cgoDevice) SetOEMParameter(id int, value []byte) error {
	if len(value) == 0 {
		return halerr.Errorf(halerr.InvalidArgument, "broadcom.SetOEMParameter", "empty value")
	}
	ret, err := C.adsl_set_oem_param(C.int(d.fd), C.int(id), unsafe.Pointer(&value[0]), C.int(len(value)))
	if ret != 0 {
		return halerr.New(halerr.Query, "broadcom.SetOEMParameter", fmt.Errorf("ioctl failed: %v", err))
	}
	return nil
}

func (d *cgoDevice) Close() error {
	return unix.Close(d.fd)
}

func mibFromC(c *C.adslMibInfo) *MIB {
	m := &MIB{}
	m.Connection = ConnectionInfo{
		ModType:        ModType(c.adslConnection.modType),
		TrellisCoding:  uint32(c.adslConnection.trellisCoding),
		TrellisCoding2: uint32(c.adslConnection.trellisCoding2),
		ChType:         uint32(c.adslConnection.chType),
	}
	m.Phys = physFromC(&c.adslPhys)
	m.AtucPhys = physFromC(&c.adslAtucPhys)
	m.XdslPhys = xdslPhysFromC(&c.xdslPhys)
	m.XdslAtucPhys = xdslPhysFromC(&c.xdslAtucPhys)
	m.LineCoding = uint32(c.adslLine.adslLineCoding)
	m.TrainingState = TrainingState(c.adslTrainingState)
	m.InitializationCause = uint32(c.xdslInitializationCause)
	m.ThreshFastRateDown = uint32(c.adslAlarm.adslThreshFastRateDown)

	for i := 0; i < min(len(m.VdslInfo), len(c.vdslInfo)); i++ {
		m.VdslInfo[i] = VdslInfo{
			VDSL2Mode:    uint32(c.vdslInfo[i].vdsl2Mode),
			VDSL2Profile: uint32(c.vdslInfo[i].vdsl2Profile),
			PwrState:     uint32(c.vdslInfo[i].pwrState),
		}
	}

	m.XdslInfo.XdslMode = uint32(c.xdslInfo.xdslMode)
	m.XdslInfo.VDSL2Profile = uint32(c.xdslInfo.vdsl2Profile)
	m.XdslInfo.PwrState = uint32(c.xdslInfo.pwrState)
	for d := 0; d < min(len(m.XdslInfo.DirInfo), len(c.xdslInfo.dirInfo)); d++ {
		lp := &c.xdslInfo.dirInfo[d].lpInfo
		for p := 0; p < min(len(m.XdslInfo.DirInfo[d].LPInfo), len(lp)); p++ {
			m.XdslInfo.DirInfo[d].LPInfo[p] = framingFromC(&lp[p])
		}
	}

	for i := 0; i < min(len(m.PerBandUS), len(c.perbandDataUs)); i++ {
		m.PerBandUS[i].CurrSnrMgn = int32(c.perbandDataUs[i].adslCurrSnrMgn)
	}
	for i := 0; i < min(len(m.PerBandDS), len(c.perbandDataDs)); i++ {
		m.PerBandDS[i].CurrSnrMgn = int32(c.perbandDataDs[i].adslCurrSnrMgn)
	}

	m.Perf = perfFromC(&c.adslPerfData)
	m.ChanIntlPerf = chanPerfFromC(&c.adslChanIntlPerfData)
	m.ChanFastPerf = chanPerfFromC(&c.adslChanFastPerfData)
	for i := 0; i < min(len(m.XdslChanPerf), len(c.xdslChanPerfData)); i++ {
		m.XdslChanPerf[i] = chanPerfFromC(&c.xdslChanPerfData[i])
	}
	m.LP2Active = uint8(c.lp2Active)
	m.LP2TxActive = uint8(c.lp2TxActive)

	m.XmtStat = dirStatFromC(&c.adslStat.xmtStat)
	m.RcvStat = dirStatFromC(&c.adslStat.rcvStat)
	for i := 0; i < min(len(m.ATMStat2LP), len(c.atmStat2lp)); i++ {
		m.ATMStat2LP[i].Xmt.HEC = uint32(c.atmStat2lp[i].xmtStat.cntHEC)
		m.ATMStat2LP[i].Rcv.HEC = uint32(c.atmStat2lp[i].rcvStat.cntHEC)
	}

	rtx := &c.rtxCounterData.cntDS
	m.RtxDS = RtxPeriods{
		Total:         rtxFromC(&rtx.perfTotal),
		SinceShowTime: rtxFromC(&rtx.perfSinceShowTime),
		Curr1Day:      rtxFromC(&rtx.perfCurr1Day),
		Curr15Min:     rtxFromC(&rtx.perfCurr15Min),
	}
	olr := &c.gfastOlrCounterData.cntDS
	m.GfastOlrDS = OlrPeriods{
		Total:         olrFromC(&olr.perfTotal),
		SinceShowTime: olrFromC(&olr.perfSinceShowTime),
		Curr1Day:      olrFromC(&olr.perfCurr1Day),
		Curr15Min:     olrFromC(&olr.perfCurr15Min),
	}
	return m
}

func physFromC(c *C.phys_entry_t) PhysEntry {
	p := PhysEntry{
		CurrStatus:         uint32(c.adslCurrStatus),
		SNRMode:            uint32(c.SNRmode),
		CurrAttainableRate: uint32(c.adslCurrAttainableRate),
		CurrSnrMgn:         int32(c.adslCurrSnrMgn),
		CurrAtn:            int32(c.adslCurrAtn),
		CurrOutputPwr:      int32(c.adslCurrOutputPwr),
	}
	for i := 0; i < min(len(p.VendorID), len(c.adslVendorID)); i++ {
		p.VendorID[i] = byte(c.adslVendorID[i])
	}
	for i := 0; i < min(len(p.VersionNumber), len(c.adslVersionNumber)); i++ {
		p.VersionNumber[i] = byte(c.adslVersionNumber[i])
	}
	return p
}

func xdslPhysFromC(c *C.xdsl_phys_entry_t) XdslPhysEntry {
	p := XdslPhysEntry{
		UPBOkle:            uint32(c.UPBOkle),
		UPBOkleCpe:         uint32(c.UPBOkleCpe),
		SNRMode:            uint32(c.SNRmode),
		SNRMRoc:            uint32(c.snrmRoc),
		NumKl0BandReported: uint32(c.numKl0BandReported),
	}
	for i := 0; i < min(len(p.Kl0PerBand), len(c.kl0PerBand)); i++ {
		p.Kl0PerBand[i] = uint32(c.kl0PerBand[i])
	}
	return p
}

func framingFromC(c *C.xdslFramingInfo) FramingInfo {
	f := FramingInfo{
		PathID:   uint32(c.pathId),
		D:        uint32(c.D),
		I:        uint32(c.I),
		Delay:    uint32(c.delay),
		INP:      uint32(c.INP),
		INPRein:  uint32(c.INPrein),
		N:        uint32(c.N),
		L:        uint32(c.L),
		R:        uint32(c.R),
		RtxMode:  uint32(c.rtxMode),
		DataRate: uint32(c.dataRate),
	}
	for i := 0; i < min(len(f.TMType), len(c.tmType)); i++ {
		f.TMType[i] = uint8(c.tmType[i])
	}
	return f
}

func perfCountersFromC(c *C.adslPerfCounters) PerfCounters {
	return PerfCounters{
		ESs:  uint32(c.adslESs),
		SES:  uint32(c.adslSES),
		UAS:  uint32(c.adslUAS),
		Loss: uint32(c.adslLoss),
		Lors: uint32(c.xdslLors),
	}
}

func perfFromC(c *C.perf_data_t) PerfData {
	return PerfData{
		SinceDrvStartedTimeElapsed: uint32(c.adslSinceDrvStartedTimeElapsed),
		SinceLinkTimeElapsed:       uint32(c.adslSinceLinkTimeElapsed),
		SincePrevLinkTimeElapsed:   uint32(c.adslSincePrevLinkTimeElapsed),
		Curr1DayTimeElapsed:        uint32(c.adslPerfCurr1DayTimeElapsed),
		Curr15MinTimeElapsed:       uint32(c.adslPerfCurr15MinTimeElapsed),
		Total:                      perfCountersFromC(&c.perfTotal),
		SinceShowTime:              perfCountersFromC(&c.perfSinceShowTime),
		Curr1Day:                   perfCountersFromC(&c.perfCurr1Day),
		Curr15Min:                  perfCountersFromC(&c.perfCurr15Min),
	}
}

func chanCountersFromC(c *C.chan_counters_t) ChanPerfCounters {
	return ChanPerfCounters{
		TxFEC:         uint32(c.adslChanTxFEC),
		CorrectedBlks: uint32(c.adslChanCorrectedBlks),
		TxCRC:         uint32(c.adslChanTxCRC),
		UncorrectBlks: uint32(c.adslChanUncorrectBlks),
	}
}

func chanPerfFromC(c *C.adslChanPerfDataEntry) ChanPerfData {
	return ChanPerfData{
		Curr1DayTimeElapsed:  uint32(c.adslPerfCurr1DayTimeElapsed),
		Curr15MinTimeElapsed: uint32(c.adslPerfCurr15MinTimeElapsed),
		Total:                chanCountersFromC(&c.perfTotal),
		Curr1Day:             chanCountersFromC(&c.perfCurr1Day),
		Curr15Min:            chanCountersFromC(&c.perfCurr15Min),
	}
}

func dirStatFromC(c *C.dir_stat_t) DirStat {
	return DirStat{
		RSCor: uint32(c.cntRSCor),
		SFErr: uint32(c.cntSFErr),
	}
}

func rtxFromC(c *C.rtxCounters) RtxCounters {
	return RtxCounters{
		UC: uint32(c.rtx_uc),
		TX: uint32(c.rtx_tx),
	}
}

func olrFromC(c *C.gfastOlrCounters) OlrCounters {
	return OlrCounters{
		BSW:  uint32(c.bswCompleted),
		SRA:  uint32(c.sraCompleted),
		FRA:  uint32(c.fraCompleted),
		RPA:  uint32(c.rpaCompleted),
		TIGA: uint32(c.tigaCompleted),
	}
}
