//go:build linux

package ethernet

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/swoga/cpehal/halerr"
	"golang.org/x/sys/unix"
)

const ifreqUnionSize = 24

type ifreqData struct {
	name [unix.IFNAMSIZ]byte
	data uintptr
	_    [ifreqUnionSize - unsafe.Sizeof(uintptr(0))]byte
}

type ifreqMII struct {
	name   [unix.IFNAMSIZ]byte
	phyID  uint16
	regNum uint16
	valIn  uint16
	valOut uint16
	_      [ifreqUnionSize - 8]byte
}

// ifreqSocket opens a datagram socket and checks that ifname exists.
func ifreqSocket(ifname string) (int, error) {
	ifr, err := unix.NewIfreq(ifname)
	if err != nil {
		return -1, err
	}
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, err
	}
	if err := unix.IoctlIfreq(fd, unix.SIOCGIFINDEX, ifr); err != nil {
		unix.Close(fd)
		return -1, fmt.Errorf("SIOCGIFINDEX %s: %w", ifname, err)
	}
	return fd, nil
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// IoctlData issues req on ifname with ifr_data pointing at arg.
func IoctlData(ifname string, req uintptr, arg unsafe.Pointer) error {
	fd, err := ifreqSocket(ifname)
	if err != nil {
		return halerr.New(halerr.HandleOpen, "ethernet.IoctlData", err)
	}
	defer unix.Close(fd)

	var ifr ifreqData
	copy(ifr.name[:unix.IFNAMSIZ-1], ifname)
	ifr.data = uintptr(arg)
	err = ioctl(fd, req, unsafe.Pointer(&ifr))
	runtime.KeepAlive(arg)
	if err != nil {
		return halerr.Errorf(halerr.Query, "ethernet.IoctlData", "ioctl 0x%x on %s: %v", req, ifname, err)
	}
	return nil
}
