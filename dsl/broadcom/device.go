package broadcom

// Device is an open handle on the xDSL driver. Every accessor opens one
// Device and closes it before returning.
type Device interface {
	MIB() (*MIB, error)
	CfgProfile() (*CfgProfile, error)
	Version() (*VersionInfo, error)
	SetOEMParameter(id int, value []byte) error
	Close() error
}

// Opener returns a fresh Device.
type Opener func() (Device, error)

// DevicePath is the xDSL driver node.
const DevicePath = "/dev/bcmadsl0"
