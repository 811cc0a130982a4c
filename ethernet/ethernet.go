// Package ethernet exposes Ethernet link, PHY and counter accessors and
// routes each call to the vendor backend owning the interface name.
package ethernet

import (
	"context"

	"github.com/swoga/cpehal/model"
)

// Backend is implemented by every Ethernet platform. Prefixes lists the
// interface name prefixes the backend owns.
type Backend interface {
	Prefixes() []string
	Stats(ctx context.Context, ifname string) (model.EthStats, error)
}

type Uplinker interface {
	Up(ctx context.Context, ifname string) error
	Down(ctx context.Context, ifname string) error
}

type LinkReader interface {
	LinkSettings(ctx context.Context, ifname string) (model.EthLink, error)
}

type LinkWriter interface {
	SetLinkSettings(ctx context.Context, ifname string, link model.EthLink) error
}

type PHYPower interface {
	PowerOnPHY(ctx context.Context, ifname string, phy model.EthPHY) error
	PowerOffPHY(ctx context.Context, ifname string, phy model.EthPHY) error
}

type PHYResetter interface {
	ResetPHY(ctx context.Context, ifname string, phyID int) error
}

type PHYIdentifier interface {
	PHYID(ctx context.Context, ifname string, port int) (int, error)
}

// RMONReader reads RMON counters. txq selects a transmit queue or
// model.TxQueueAll.
type RMONReader interface {
	RMONStats(ctx context.Context, ifname string, txq int) (model.RMONStats, error)
}

type InfoReader interface {
	Info(ctx context.Context, ifname string) (model.EthInfo, error)
}

// Links is the kernel view of network interfaces.
type Links interface {
	OperState(ifname string) (model.OperState, error)
	IsBridge(ifname string) bool
	BridgeMembers(ifname string) ([]string, error)
}

// MII talks to a PHY through the SIOCxMIIxxx ioctls.
type MII interface {
	PHYID(ifname string, port int) (int, error)
	Read(ifname string, phyID int, reg uint16) (uint16, error)
	Write(ifname string, phyID int, reg uint16, val uint16) error
	ResetPHY(ifname string, phyID int) error
}

// PHYAddr strips the switch bits from a Broadcom style PHY id.
func PHYAddr(phyID int) int {
	return phyID & 0x1f
}
