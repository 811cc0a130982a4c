//go:build broadcom && cgo

package broadcom

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <sys/ioctl.h>
#include <rdpa_types.h>
#include <rdpa_user.h>
#include <rdpa_port.h>
#include <rdpa_egress_tm.h>
#include <rdpa_port_user_ioctl_ag.h>
#include <rdpa_egress_tm_user_ioctl_ag.h>
#include <archer.h>
#include <board.h>

static int rdpa_cmd(int fd, unsigned long req, int cmd, unsigned long long mo, long ai, void *ptr,
	unsigned long long *out_mo, int *rdpa_ret)
{
	rdpa_ioctl_cmd_t pa;

	memset(&pa, 0, sizeof(pa));
	pa.cmd = cmd;
	pa.mo = (bdmf_object_handle)(uintptr_t)mo;
	pa.ai = (bdmf_index)ai;
	pa.ptr = (bdmf_ptr)(uintptr_t)ptr;
	if (ioctl(fd, req, &pa) != 0)
		return -1;
	if (out_mo)
		*out_mo = (uintptr_t)pa.mo;
	*rdpa_ret = pa.ret;
	return 0;
}

static int rdpa_port_owner(int fd, char *ifname, unsigned long long *port, int *rdpa_ret)
{
	return rdpa_cmd(fd, RDPA_PORT_IOCTL, RDPA_PORT_GET, 0, 0, ifname, port, rdpa_ret);
}

static int rdpa_root_tm(int fd, unsigned long long port, unsigned long long *sched, int *rdpa_ret)
{
	rdpa_port_tm_cfg_t cfg;

	memset(&cfg, 0, sizeof(cfg));
	if (rdpa_cmd(fd, RDPA_PORT_IOCTL, RDPA_PORT_TM_CFG_GET, port, 0, &cfg, NULL, rdpa_ret) != 0)
		return -1;
	*sched = (uintptr_t)cfg.sched;
	return 0;
}

static int rdpa_queue_location(int fd, unsigned long long root, int queue,
	unsigned long long *tm, int *idx, int *rdpa_ret)
{
	rdpa_tm_queue_location_t loc;

	memset(&loc, 0, sizeof(loc));
	if (rdpa_cmd(fd, RDPA_EGRESS_TM_IOCTL, RDPA_EGRESS_TM_QUEUE_LOCATION_GET, root, queue, &loc, NULL, rdpa_ret) != 0)
		return -1;
	*tm = (uintptr_t)loc.queue_tm;
	*idx = loc.queue_idx;
	return 0;
}

static int rdpa_queue_stat(int fd, unsigned long long tm, int idx, rdpa_stat_1way_t *st, int *rdpa_ret)
{
	memset(st, 0, sizeof(*st));
	return rdpa_cmd(fd, RDPA_EGRESS_TM_IOCTL, RDPA_EGRESS_TM_QUEUE_STAT_GET, tm, idx, st, NULL, rdpa_ret);
}

static int archer_txq_stats(int fd, const char *ifname, int queue, archer_txq_stats_ioctl_t *s)
{
	memset(s, 0, sizeof(*s));
	strncpy(s->if_name, ifname, sizeof(s->if_name) - 1);
	s->queue_id = queue;
	return ioctl(fd, ARCHER_IOC_ENETTXQSTATS_GET, s);
}

static int board_chip_id(int fd, unsigned int *id)
{
	BOARD_IOCTL_PARMS p;

	memset(&p, 0, sizeof(p));
	p.buf = (char *)"";
	if (ioctl(fd, BOARD_IOCTL_GET_CHIP_ID, &p) < 0)
		return -1;
	*id = p.result;
	return 0;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
	"golang.org/x/sys/unix"
)

// withFD opens path for a single request.
func withFD(op, path string, fn func(fd C.int) error) error {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return halerr.New(halerr.HandleOpen, op, fmt.Errorf("%s: %w", path, err))
	}
	defer unix.Close(fd)
	return fn(C.int(fd))
}

func rdpaResult(op string, rc C.int, err error, ret C.int) error {
	if rc != 0 {
		return halerr.New(halerr.Query, op, err)
	}
	if ret != 0 {
		return halerr.Errorf(halerr.Query, op, "rdpa returned %d", int(ret))
	}
	return nil
}

// DeviceRDPA implements RDPA with ioctls on RDPAUserPath.
type DeviceRDPA struct{}

func (DeviceRDPA) PortOwner(ifname string) (Handle, error) {
	const op = "broadcom.PortOwner"
	name := C.CString(ifname)
	defer C.free(unsafe.Pointer(name))

	var port C.ulonglong
	err := withFD(op, RDPAUserPath, func(fd C.int) error {
		var ret C.int
		rc, err := C.rdpa_port_owner(fd, name, &port, &ret)
		return rdpaResult(op, rc, err, ret)
	})
	return Handle(port), err
}

func (DeviceRDPA) RootTM(port Handle) (Handle, error) {
	const op = "broadcom.RootTM"
	var sched C.ulonglong
	err := withFD(op, RDPAUserPath, func(fd C.int) error {
		var ret C.int
		rc, err := C.rdpa_root_tm(fd, C.ulonglong(port), &sched, &ret)
		return rdpaResult(op, rc, err, ret)
	})
	return Handle(sched), err
}

func (DeviceRDPA) QueueLocation(root Handle, queue int) (Handle, int, error) {
	const op = "broadcom.QueueLocation"
	var (
		tm  C.ulonglong
		idx C.int
	)
	err := withFD(op, RDPAUserPath, func(fd C.int) error {
		var ret C.int
		rc, err := C.rdpa_queue_location(fd, C.ulonglong(root), C.int(queue), &tm, &idx, &ret)
		return rdpaResult(op, rc, err, ret)
	})
	return Handle(tm), int(idx), err
}

func (DeviceRDPA) QueueStat(tm Handle, idx int) (Stat1Way, error) {
	const op = "broadcom.QueueStat"
	var st C.rdpa_stat_1way_t
	err := withFD(op, RDPAUserPath, func(fd C.int) error {
		var ret C.int
		rc, err := C.rdpa_queue_stat(fd, C.ulonglong(tm), C.int(idx), &st, &ret)
		return rdpaResult(op, rc, err, ret)
	})
	if err != nil {
		return Stat1Way{}, err
	}
	return Stat1Way{
		Passed:    Counter{Packets: uint32(st.passed.packets), Bytes: uint32(st.passed.bytes)},
		Discarded: Counter{Packets: uint32(st.discarded.packets), Bytes: uint32(st.discarded.bytes)},
	}, nil
}

// DeviceArcher implements Archer with ioctls on ArcherPath.
type DeviceArcher struct{}

func (DeviceArcher) TxQueueStats(ifname string, queue int) (model.QueueStats, error) {
	const op = "broadcom.TxQueueStats"
	name := C.CString(ifname)
	defer C.free(unsafe.Pointer(name))

	var s C.archer_txq_stats_ioctl_t
	err := withFD(op, ArcherPath, func(fd C.int) error {
		if rc, err := C.archer_txq_stats(fd, name, C.int(queue), &s); rc != 0 {
			return halerr.New(halerr.Query, op, err)
		}
		return nil
	})
	if err != nil {
		return model.QueueStats{}, err
	}
	return model.QueueStats{
		TxPackets:        uint64(s.stats.txPackets),
		TxBytes:          uint64(s.stats.txBytes),
		TxDroppedPackets: uint64(s.stats.droppedPackets),
		TxDroppedBytes:   uint64(s.stats.droppedBytes),
	}, nil
}

// DeviceBoard reads the chip id from BoardPath.
type DeviceBoard struct{}

func (DeviceBoard) ChipID() (uint32, error) {
	const op = "broadcom.ChipID"
	var id C.uint
	err := withFD(op, BoardPath, func(fd C.int) error {
		if rc, err := C.board_chip_id(fd, &id); rc != 0 {
			return halerr.New(halerr.Query, op, err)
		}
		return nil
	})
	return uint32(id), err
}
