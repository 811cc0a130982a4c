package ethernet

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/procfs/sysfs"
	"github.com/swoga/cpehal/model"
)

// Sysfs implements Links on top of /sys/class/net.
type Sysfs struct {
	root string
	fs   sysfs.FS
}

// NewSysfs opens the sysfs mount at mountPoint, usually sysfs.DefaultMountPoint.
func NewSysfs(mountPoint string) (*Sysfs, error) {
	fs, err := sysfs.NewFS(mountPoint)
	if err != nil {
		return nil, err
	}
	return &Sysfs{root: mountPoint, fs: fs}, nil
}

func (s *Sysfs) OperState(ifname string) (model.OperState, error) {
	iface, err := s.fs.NetClassByIface(ifname)
	if err != nil {
		return model.OperUnknown, err
	}
	return model.ParseOperState(strings.TrimSpace(iface.OperState)), nil
}

func (s *Sysfs) IsBridge(ifname string) bool {
	fi, err := os.Stat(filepath.Join(s.root, "class", "net", ifname, "bridge"))
	return err == nil && fi.IsDir()
}

func (s *Sysfs) BridgeMembers(ifname string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, "class", "net", ifname, "brif"))
	if err != nil {
		return nil, err
	}
	members := make([]string, 0, len(entries))
	for _, e := range entries {
		members = append(members, e.Name())
	}
	return members, nil
}

// Interfaces lists every interface under /sys/class/net.
func (s *Sysfs) Interfaces() ([]string, error) {
	return s.fs.NetClassDevices()
}
