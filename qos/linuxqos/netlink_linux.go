//go:build linux

package linuxqos

import (
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"golang.org/x/sys/unix"
)

// RouteDumper dumps qdiscs and classes over an rtnetlink socket.
type RouteDumper struct{}

func (RouteDumper) Dump(ifindex int) ([]Object, error) {
	c, err := netlink.Dial(unix.NETLINK_ROUTE, nil)
	if err != nil {
		return nil, fmt.Errorf("dial rtnetlink: %w", err)
	}
	defer c.Close()

	qdiscs, err := dump(c, unix.RTM_GETQDISC, ifindex, false)
	if err != nil {
		return nil, err
	}
	classes, err := dump(c, unix.RTM_GETTCLASS, ifindex, true)
	if err != nil {
		return nil, err
	}
	return append(qdiscs, classes...), nil
}

func dump(c *netlink.Conn, typ netlink.HeaderType, ifindex int, class bool) ([]Object, error) {
	req := make([]byte, tcmsgLen)
	req[0] = unix.AF_UNSPEC
	nlenc.PutInt32(req[4:8], int32(ifindex))

	msgs, err := c.Execute(netlink.Message{
		Header: netlink.Header{
			Type:  typ,
			Flags: netlink.Request | netlink.Dump,
		},
		Data: req,
	})
	if err != nil {
		return nil, fmt.Errorf("tc dump %d: %w", typ, err)
	}

	objs := make([]Object, 0, len(msgs))
	for _, m := range msgs {
		o, err := ParseObject(m.Data, class)
		if err != nil {
			return nil, err
		}
		if o.Ifindex == ifindex {
			objs = append(objs, o)
		}
	}
	return objs, nil
}
