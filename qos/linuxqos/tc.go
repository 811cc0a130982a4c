package linuxqos

import (
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/swoga/cpehal/model"
	"github.com/swoga/cpehal/qos"
)

const (
	tcmsgLen = 20

	tcaKind   = 1
	tcaStats  = 3
	tcaStats2 = 7

	tcaStatsBasic = 1
	tcaStatsQueue = 3

	// TC_H_ROOT
	handleRoot uint32 = 0xffffffff
)

type Counters struct {
	Bytes   uint64
	Packets uint64
	Drops   uint64
}

// Object is one qdisc or class of a traffic control dump.
type Object struct {
	Class   bool
	Kind    string
	Ifindex int
	Handle  uint32
	Parent  uint32
	Stats   Counters
}

// ParseObject decodes the payload of an RTM_NEWQDISC or RTM_NEWTCLASS message.
func ParseObject(b []byte, class bool) (Object, error) {
	if len(b) < tcmsgLen {
		return Object{}, fmt.Errorf("tcmsg too short: %d bytes", len(b))
	}
	o := Object{
		Class:   class,
		Ifindex: int(nlenc.Int32(b[4:8])),
		Handle:  nlenc.Uint32(b[8:12]),
		Parent:  nlenc.Uint32(b[12:16]),
	}

	ad, err := netlink.NewAttributeDecoder(b[tcmsgLen:])
	if err != nil {
		return Object{}, err
	}
	var legacy, modern bool
	var old Counters
	for ad.Next() {
		switch ad.Type() {
		case tcaKind:
			o.Kind = ad.String()
		case tcaStats:
			old, legacy = parseLegacyStats(ad.Bytes())
		case tcaStats2:
			modern = true
			ad.Nested(func(nad *netlink.AttributeDecoder) error {
				for nad.Next() {
					switch nad.Type() {
					case tcaStatsBasic:
						// struct gnet_stats_basic
						if v := nad.Bytes(); len(v) >= 12 {
							o.Stats.Bytes = nlenc.Uint64(v[0:8])
							o.Stats.Packets = uint64(nlenc.Uint32(v[8:12]))
						}
					case tcaStatsQueue:
						// struct gnet_stats_queue
						if v := nad.Bytes(); len(v) >= 12 {
							o.Stats.Drops = uint64(nlenc.Uint32(v[8:12]))
						}
					}
				}
				return nil
			})
		}
	}
	if err := ad.Err(); err != nil {
		return Object{}, err
	}
	if !modern && legacy {
		o.Stats = old
	}
	return o, nil
}

// parseLegacyStats decodes struct tc_stats.
func parseLegacyStats(v []byte) (Counters, bool) {
	if len(v) < 16 {
		return Counters{}, false
	}
	return Counters{
		Bytes:   nlenc.Uint64(v[0:8]),
		Packets: uint64(nlenc.Uint32(v[8:12])),
		Drops:   uint64(nlenc.Uint32(v[12:16])),
	}, true
}

type objKey struct {
	class  bool
	handle uint32
}

// visitor walks the tc tree of one interface and records the counters of
// every visited object into a ring of qos.MaxQueues slots.
type visitor struct {
	ifindex int
	objs    []Object
	ring    [qos.MaxQueues]model.QueueStats
	count   int
	visited map[objKey]bool
}

// Walk maps the tc tree of ifindex onto queue slots. The root qdisc takes
// slot 0; each class then contributes its leaf qdisc, its child classes and
// finally itself, wrapping after the last slot. An interface without
// qdiscs leaves every slot zero.
func Walk(objs []Object, ifindex int) [qos.MaxQueues]model.QueueStats {
	v := &visitor{ifindex: ifindex, objs: objs, visited: map[objKey]bool{}}

	if root, ok := v.qdiscByParent(handleRoot); ok {
		v.stat(root)
		v.qdisc(root, false)
	}
	if q, ok := v.qdiscByParent(0); ok {
		v.qdisc(q, false)
	}
	return v.ring
}

func (v *visitor) qdiscByParent(parent uint32) (Object, bool) {
	for _, o := range v.objs {
		if !o.Class && o.Ifindex == v.ifindex && o.Parent == parent {
			return o, true
		}
	}
	return Object{}, false
}

func (v *visitor) stat(o Object) {
	if o.Ifindex != v.ifindex {
		return
	}
	v.ring[v.count] = model.QueueStats{
		TxPackets:        o.Stats.Packets,
		TxBytes:          o.Stats.Bytes,
		TxDroppedPackets: o.Stats.Drops,
	}
	v.count = (v.count + 1) & (qos.MaxQueues - 1)
}

func (v *visitor) qdisc(q Object, withStat bool) {
	if withStat {
		v.stat(q)
	}
	v.children(q)
}

func (v *visitor) children(parent Object) {
	for _, o := range v.objs {
		if o.Class && o.Ifindex == parent.Ifindex && o.Parent == parent.Handle {
			v.class(o)
		}
	}
}

func (v *visitor) class(c Object) {
	k := objKey{class: true, handle: c.Handle}
	if v.visited[k] {
		return
	}
	v.visited[k] = true

	if leaf, ok := v.qdiscByParent(c.Handle); ok && !v.visited[objKey{handle: leaf.Handle}] {
		v.visited[objKey{handle: leaf.Handle}] = true
		v.qdisc(leaf, true)
	}
	v.children(c)
	v.stat(c)
}
