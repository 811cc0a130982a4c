//go:build !(econet && cgo)

package econet

import "github.com/swoga/cpehal/halerr"

// LibSwitchManager needs the vendor library; build with the econet tag and
// cgo enabled.
type LibSwitchManager struct{}

func notSupported(op string) error {
	return halerr.New(halerr.NotSupported, op, nil)
}

func (LibSwitchManager) PortStatistics(port uint8) (PortStatistics, error) {
	return PortStatistics{}, notSupported("econet.PortStatistics")
}

func (LibSwitchManager) PortAdmin(port uint8) (bool, error) {
	return false, notSupported("econet.PortAdmin")
}

func (LibSwitchManager) SetPortAdmin(port uint8, up bool) error {
	return notSupported("econet.SetPortAdmin")
}

func (LibSwitchManager) PortAutoneg(port uint8) (bool, error) {
	return false, notSupported("econet.PortAutoneg")
}

func (LibSwitchManager) PortLinkState(port uint8) (bool, LinkSpeed, error) {
	return false, Speed10, notSupported("econet.PortLinkState")
}

func (LibSwitchManager) PortDuplex(port uint8) (string, error) {
	return "", notSupported("econet.PortDuplex")
}

func (LibSwitchManager) PortMaxBitrate(port uint8) (string, error) {
	return "", notSupported("econet.PortMaxBitrate")
}
