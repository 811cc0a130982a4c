//go:build !(broadcom && cgo)

package broadcom

import "github.com/swoga/cpehal/halerr"

// IoctlSwitch needs the SDK headers; build with the broadcom tag and cgo
// enabled.
type IoctlSwitch struct{}

func (IoctlSwitch) Do(ifname string, req *Request) error {
	return halerr.New(halerr.NotSupported, "broadcom.Do", nil)
}

func (IoctlSwitch) SetPHYPower(ifname string, on bool) error {
	return halerr.New(halerr.NotSupported, "broadcom.SetPHYPower", nil)
}
