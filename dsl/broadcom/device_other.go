//go:build !(broadcom && cgo)

package broadcom

import "github.com/swoga/cpehal/halerr"

// Open needs the SDK headers; build with the broadcom tag and cgo enabled.
func Open() (Device, error) {
	return nil, halerr.New(halerr.NotSupported, "broadcom.Open", nil)
}
