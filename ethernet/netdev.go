package ethernet

import (
	"fmt"

	"github.com/prometheus/procfs"
)

// NetDev reads interface counters from /proc/net/dev.
type NetDev struct {
	fs procfs.FS
}

// NewNetDev opens the proc mount at mountPoint, usually procfs.DefaultMountPoint.
func NewNetDev(mountPoint string) (*NetDev, error) {
	fs, err := procfs.NewFS(mountPoint)
	if err != nil {
		return nil, err
	}
	return &NetDev{fs: fs}, nil
}

// Line returns the counters of ifname.
func (n *NetDev) Line(ifname string) (procfs.NetDevLine, error) {
	devs, err := n.fs.NetDev()
	if err != nil {
		return procfs.NetDevLine{}, err
	}
	l, ok := devs[ifname]
	if !ok {
		return procfs.NetDevLine{}, fmt.Errorf("no /proc/net/dev entry for %s", ifname)
	}
	return l, nil
}
