//go:build broadcom && cgo

package broadcom

/*
#include <stdlib.h>
#include <string.h>
#include <net/if.h>
#include "bcmswapitypes.h"
#include "bcmnet.h"

typedef __typeof__(((struct ethswctl_data *)0)->emac_stats_s) emac_stats_t;

struct swctl_req {
	int op;
	int unit;
	int port;
	int queue;
	unsigned int port_map;
	int speed;
	int duplex;
	unsigned int phycfg;
	int autoneg_info;
	int status;
	emac_stats_t emac;
};

static void swctl_encode(struct ethswctl_data *d, const struct swctl_req *r, const char *ifname)
{
	memset(d, 0, sizeof(*d));
	d->op = r->op;
	d->type = TYPE_GET;
	d->unit = r->unit;
	d->port = r->port;
	d->queue = r->queue;
	strncpy(d->ifname, ifname, sizeof(d->ifname) - 1);
}

static void swctl_decode(const struct ethswctl_data *d, struct swctl_req *r)
{
	r->unit = d->unit;
	r->port = d->port;
	r->port_map = d->port_map;
	r->speed = d->speed;
	r->duplex = d->duplex;
	r->phycfg = d->phycfg;
	r->autoneg_info = d->autoneg_info;
	r->status = d->status;
	r->emac = d->emac_stats_s;
}

static void ethctl_phy_power(struct ethctl_data *d, int on)
{
	memset(d, 0, sizeof(*d));
	d->op = on ? ETHSETPHYPWRON : ETHSETPHYPWROFF;
}
*/
import "C"

import (
	"unsafe"

	"github.com/swoga/cpehal/ethernet"
)

func _() {
	// An "invalid array index" compiler error signifies that the SDK values
	// changed and the constants in switch.go need an update.
	var x [1]struct{}
	_ = x[OpEMACGet-C.ETHSWEMACGET]
	_ = x[OpUnitPort-C.ETHSWUNITPORT]
	_ = x[OpPHYMode-C.ETHSWPHYMODE]
	_ = x[OpPHYAutoneg-C.ETHSWPHYAUTONEG]
	_ = x[OpLinkStatus-C.ETHSWLINKSTATUS]
	_ = x[typeGet-C.TYPE_GET]
	_ = x[phyCfg1000FD-C.PHY_CFG_1000FD]
	_ = x[phyCfg1000HD-C.PHY_CFG_1000HD]
	_ = x[phyCfg100FD-C.PHY_CFG_100FD]
	_ = x[phyCfg100HD-C.PHY_CFG_100HD]
	_ = x[phyCfg10FD-C.PHY_CFG_10FD]
	_ = x[phyCfg10HD-C.PHY_CFG_10HD]
	_ = x[phyCfg5000FD-C.PHY_CFG_5000FD]
	_ = x[phyCfg10000FD-C.PHY_CFG_10000FD]
}

// IoctlSwitch implements Switch with the SIOCETHSWCTLOPS ioctl.
type IoctlSwitch struct{}

func (IoctlSwitch) Do(ifname string, req *Request) error {
	name := C.CString(ifname)
	defer C.free(unsafe.Pointer(name))

	r := C.struct_swctl_req{
		op:    C.int(req.Op),
		unit:  C.int(req.Unit),
		port:  C.int(req.Port),
		queue: C.int(req.Queue),
	}
	var d C.struct_ethswctl_data
	C.swctl_encode(&d, &r, name)
	if err := ethernet.IoctlData(ifname, C.SIOCETHSWCTLOPS, unsafe.Pointer(&d)); err != nil {
		return err
	}
	C.swctl_decode(&d, &r)

	req.Unit = int32(r.unit)
	req.Port = int32(r.port)
	req.PortMap = uint32(r.port_map)
	req.Speed = int32(r.speed)
	req.Duplex = int32(r.duplex)
	req.PHYCfg = uint32(r.phycfg)
	req.AutonegInfo = int32(r.autoneg_info)
	req.Status = int32(r.status)
	req.EMAC = emacFromC(&r.emac)
	return nil
}

func (IoctlSwitch) SetPHYPower(ifname string, on bool) error {
	var d C.struct_ethctl_data
	v := C.int(0)
	if on {
		v = 1
	}
	C.ethctl_phy_power(&d, v)
	return ethernet.IoctlData(ifname, C.SIOCETHCTLOPS, unsafe.Pointer(&d))
}

func emacFromC(c *C.emac_stats_t) EMACStats {
	return EMACStats{
		RxByte:              uint64(c.rx_byte),
		RxPacket:            uint64(c.rx_packet),
		RxFrame64:           uint64(c.rx_frame_64),
		RxFrame65To127:      uint64(c.rx_frame_65_127),
		RxFrame128To255:     uint64(c.rx_frame_128_255),
		RxFrame256To511:     uint64(c.rx_frame_256_511),
		RxFrame512To1023:    uint64(c.rx_frame_512_1023),
		RxFrame1024To1518:   uint64(c.rx_frame_1024_1518),
		RxUnicastPacket:     uint64(c.rx_unicast_packet),
		RxMulticastPacket:   uint64(c.rx_multicast_packet),
		RxBroadcastPacket:   uint64(c.rx_broadcast_packet),
		RxUnknownOpcode:     uint64(c.rx_unknown_opcode),
		RxFCSError:          uint32(c.rx_fcs_error),
		RxAlignmentError:    uint32(c.rx_alignment_error),
		RxFrameLengthError:  uint32(c.rx_frame_length_error),
		RxCodeError:         uint32(c.rx_code_error),
		RxCarrierSenseError: uint32(c.rx_carrier_sense_error),
		RxUndersizePacket:   uint32(c.rx_undersize_packet),
		RxOversizePacket:    uint32(c.rx_oversize_packet),
		TxByte:              uint64(c.tx_byte),
		TxPacket:            uint64(c.tx_packet),
		TxFrame64:           uint64(c.tx_frame_64),
		TxFrame65To127:      uint64(c.tx_frame_65_127),
		TxFrame128To255:     uint64(c.tx_frame_128_255),
		TxFrame256To511:     uint64(c.tx_frame_256_511),
		TxFrame512To1023:    uint64(c.tx_frame_512_1023),
		TxFrame1024To1518:   uint64(c.tx_frame_1024_1518),
		TxUnicastPacket:     uint64(c.tx_unicast_packet),
		TxMulticastPacket:   uint64(c.tx_multicast_packet),
		TxBroadcastPacket:   uint64(c.tx_broadcast_packet),
		TxError:             uint64(c.tx_error),
		TxFCSError:          uint32(c.tx_fcs_error),
		TxUndersizeFrame:    uint32(c.tx_undersize_frame),
		TxOversizeFrame:     uint32(c.tx_oversize_frame),
	}
}
