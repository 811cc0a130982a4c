//go:build !(broadcom && cgo)

package broadcom

import (
	"github.com/swoga/cpehal/halerr"
	"github.com/swoga/cpehal/model"
)

// DeviceRDPA, DeviceArcher and DeviceBoard need the SDK headers; build with
// the broadcom tag and cgo enabled.
type DeviceRDPA struct{}

func (DeviceRDPA) PortOwner(ifname string) (Handle, error) {
	return 0, halerr.Errorf(halerr.NotSupported, "broadcom.PortOwner", "built without the rdpa SDK")
}

func (DeviceRDPA) RootTM(port Handle) (Handle, error) {
	return 0, halerr.Errorf(halerr.NotSupported, "broadcom.RootTM", "built without the rdpa SDK")
}

func (DeviceRDPA) QueueLocation(root Handle, queue int) (Handle, int, error) {
	return 0, 0, halerr.Errorf(halerr.NotSupported, "broadcom.QueueLocation", "built without the rdpa SDK")
}

func (DeviceRDPA) QueueStat(tm Handle, idx int) (Stat1Way, error) {
	return Stat1Way{}, halerr.Errorf(halerr.NotSupported, "broadcom.QueueStat", "built without the rdpa SDK")
}

type DeviceArcher struct{}

func (DeviceArcher) TxQueueStats(ifname string, queue int) (model.QueueStats, error) {
	return model.QueueStats{}, halerr.Errorf(halerr.NotSupported, "broadcom.TxQueueStats", "built without the archer SDK")
}

type DeviceBoard struct{}

func (DeviceBoard) ChipID() (uint32, error) {
	return 0, halerr.Errorf(halerr.NotSupported, "broadcom.ChipID", "built without the board SDK")
}
