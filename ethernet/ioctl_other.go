//go:build !linux

package ethernet

import (
	"unsafe"

	"github.com/swoga/cpehal/halerr"
)

func IoctlData(ifname string, req uintptr, arg unsafe.Pointer) error {
	return halerr.New(halerr.NotSupported, "ethernet.IoctlData", nil)
}

// MIIBus is unavailable outside linux.
type MIIBus struct{}

func (MIIBus) PHYID(ifname string, port int) (int, error) {
	return 0, halerr.New(halerr.NotSupported, "ethernet.MII.PHYID", nil)
}

func (MIIBus) Read(ifname string, phyID int, reg uint16) (uint16, error) {
	return 0, halerr.New(halerr.NotSupported, "ethernet.MII.Read", nil)
}

func (MIIBus) Write(ifname string, phyID int, reg uint16, val uint16) error {
	return halerr.New(halerr.NotSupported, "ethernet.MII.Write", nil)
}

func (MIIBus) ResetPHY(ifname string, phyID int) error {
	return halerr.New(halerr.NotSupported, "ethernet.MII.ResetPHY", nil)
}
