//go:build linux

package ethernet

import (
	"unsafe"

	"github.com/swoga/cpehal/halerr"
	"golang.org/x/sys/unix"
)

const (
	miiBMCR   = 0x00
	bmcrReset = 0x8000
)

// MIIBus implements MII with the kernel MII ioctls.
type MIIBus struct{}

func (MIIBus) do(op, ifname string, req uintptr, mii *ifreqMII) error {
	fd, err := ifreqSocket(ifname)
	if err != nil {
		return halerr.New(halerr.HandleOpen, op, err)
	}
	defer unix.Close(fd)

	copy(mii.name[:unix.IFNAMSIZ-1], ifname)
	if err := ioctl(fd, req, unsafe.Pointer(mii)); err != nil {
		return halerr.Errorf(halerr.Query, op, "MII cmd on %s failed: %v", ifname, err)
	}
	return nil
}

func (m MIIBus) PHYID(ifname string, port int) (int, error) {
	req := ifreqMII{valIn: uint16(port)}
	if err := m.do("ethernet.MII.PHYID", ifname, unix.SIOCGMIIPHY, &req); err != nil {
		return 0, err
	}
	return int(req.phyID), nil
}

func (m MIIBus) Read(ifname string, phyID int, reg uint16) (uint16, error) {
	req := ifreqMII{phyID: uint16(phyID), regNum: reg}
	if err := m.do("ethernet.MII.Read", ifname, unix.SIOCGMIIREG, &req); err != nil {
		return 0, err
	}
	return req.valOut, nil
}

func (m MIIBus) Write(ifname string, phyID int, reg uint16, val uint16) error {
	req := ifreqMII{phyID: uint16(phyID), regNum: reg, valIn: val}
	return m.do("ethernet.MII.Write", ifname, unix.SIOCSMIIREG, &req)
}

// ResetPHY sets the self-clearing reset bit in the control register.
func (m MIIBus) ResetPHY(ifname string, phyID int) error {
	req := ifreqMII{phyID: uint16(phyID), regNum: miiBMCR, valIn: bmcrReset}
	return m.do("ethernet.MII.ResetPHY", ifname, unix.SIOCSMIIREG, &req)
}
