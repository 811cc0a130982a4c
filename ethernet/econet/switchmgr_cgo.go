//go:build econet && cgo

package econet

/*
#cgo LDFLAGS: -lapi_lib_switchmgr
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include "libapi_lib_switchmgr.h"

int switchmgr_lib_get_port_link_state(uint8_t port,
	ECNT_SWITCHMGR_LINK_STATE *p_link_state,
	ECNT_SWITCHMGR_LINK_SPEED *p_speed);
*/
import "C"

import (
	"fmt"
	"unsafe"
)

const strLen = 32

// LibSwitchManager binds the vendor libapi_lib_switchmgr.
type LibSwitchManager struct{}

func check(fn string, ret C.int) error {
	if ret != C.ECNT_SWITCHMGR_SUCCESS {
		return fmt.Errorf("%s returned %d", fn, int(ret))
	}
	return nil
}

func (LibSwitchManager) PortStatistics(port uint8) (PortStatistics, error) {
	var c C.ECNT_SWITCHMGR_PORT_STATISTICS
	if err := check("switchmgr_lib_get_port_statistics", C.int(C.switchmgr_lib_get_port_statistics(C.uint8_t(port), &c))); err != nil {
		return PortStatistics{}, err
	}
	return PortStatistics{
		TxDropFrames:        uint32(c.TxDropFramesCnt),
		TxBytesLo:           uint32(c.TxBytesCnt_Lo),
		TxPkts:              uint32(c.TxPktsCnt),
		TxBroadPkts:         uint32(c.TxBroadPktsCnt),
		TxMultiPkts:         uint32(c.TxMultiPktsCnt),
		TxUniPkts:           uint32(c.TxUniPktsCnt),
		TxCRCFrames:         uint32(c.TxCRCFramesCnt),
		TxUnderSizePkts:     uint32(c.TxUnderSizePktsCnt),
		TxOverSizePkts:      uint32(c.TxOverSizePktsCnt),
		Tx64BytePkts:        uint32(c.Tx64BytePktsCnt),
		Tx65To127BytePkts:   uint32(c.Tx65_127BytePktsCnt),
		Tx256To511BytePkts:  uint32(c.Tx256_511BytePktsCnt),
		Tx512To1023BytePkts: uint32(c.Tx512_1023BytePktsCnt),
		Tx1024To1518Pkts:    uint32(c.Tx1024_1518BytePktsCnt),
		RxDropFrames:        uint32(c.RxDropFramesCnt),
		RxBytesLo:           uint32(c.RxBytesCnt_Lo),
		RxPkts:              uint32(c.RxPktsCnt),
		RxBroadPkts:         uint32(c.RxBroadPktsCnt),
		RxMultiPkts:         uint32(c.RxMultiPktsCnt),
		RxUniPkts:           uint32(c.RxUniPktsCnt),
		RxCRCFrames:         uint32(c.RxCRCFramesCnt),
		RxUnderSizePkts:     uint32(c.RxUnderSizePktsCnt),
		RxOverSizePkts:      uint32(c.RxOverSizePktsCnt),
		Rx64BytePkts:        uint32(c.Rx64BytePktsCnt),
		Rx65To127BytePkts:   uint32(c.Rx65_127BytePktsCnt),
		Rx256To511BytePkts:  uint32(c.Rx256_511BytePktsCnt),
		Rx512To1023BytePkts: uint32(c.Rx512_1023BytePktsCnt),
		Rx1024To1518Pkts:    uint32(c.Rx1024_1518BytePktsCnt),
	}, nil
}

func (LibSwitchManager) PortAdmin(port uint8) (bool, error) {
	var up C.uint8_t
	err := check("switchmgr_lib_get_port_admin", C.int(C.switchmgr_lib_get_port_admin(C.uint8_t(port), &up)))
	return up != 0, err
}

func (LibSwitchManager) SetPortAdmin(port uint8, up bool) error {
	v := C.uint8_t(0)
	if up {
		v = 1
	}
	return check("switchmgr_lib_set_port_admin", C.int(C.switchmgr_lib_set_port_admin(C.uint8_t(port), v)))
}

func (LibSwitchManager) PortAutoneg(port uint8) (bool, error) {
	var an C.uint8_t
	err := check("switchmgr_lib_get_port_autoneg_enable", C.int(C.switchmgr_lib_get_port_autoneg_enable(C.uint8_t(port), &an)))
	return an != 0, err
}

func (LibSwitchManager) PortLinkState(port uint8) (bool, LinkSpeed, error) {
	var (
		state C.ECNT_SWITCHMGR_LINK_STATE
		speed C.ECNT_SWITCHMGR_LINK_SPEED
	)
	err := check("switchmgr_lib_get_port_link_state", C.int(C.switchmgr_lib_get_port_link_state(C.uint8_t(port), &state, &speed)))
	return state == C.ECNT_SWITCHMGR_LINK_UP, LinkSpeed(speed), err
}

func (LibSwitchManager) str(fn string, call func(*C.char) C.int) (string, error) {
	buf := (*C.char)(C.calloc(strLen, 1))
	defer C.free(unsafe.Pointer(buf))
	if err := check(fn, call(buf)); err != nil {
		return "", err
	}
	return C.GoStringN(buf, C.int(C.strnlen(buf, strLen-1))), nil
}

func (m LibSwitchManager) PortDuplex(port uint8) (string, error) {
	return m.str("switchmgr_lib_get_port_duplex", func(buf *C.char) C.int {
		return C.int(C.switchmgr_lib_get_port_duplex(C.int(port), buf))
	})
}

func (m LibSwitchManager) PortMaxBitrate(port uint8) (string, error) {
	return m.str("switchmgr_lib_get_port_max_bitrate", func(buf *C.char) C.int {
		return C.int(C.switchmgr_lib_get_port_max_bitrate(C.int(port), buf))
	})
}
