// Package mapping holds the lookup tables and converters shared by the vendor backends.
package mapping

import (
	"strings"

	"github.com/swoga/cpehal/model"
)

// NotFound is returned by Table.Value for unknown names.
const NotFound = -1

type Entry struct {
	Name  string
	Value int
}

// Table is a small ordered name/value association. Lookups are linear.
type Table []Entry

// Value matches name case-insensitively and returns NotFound if absent.
func (t Table) Value(name string) int {
	for _, e := range t {
		if strings.EqualFold(e.Name, name) {
			return e.Value
		}
	}
	return NotFound
}

func (t Table) Name(value int) (string, bool) {
	for _, e := range t {
		if e.Value == value {
			return e.Name, true
		}
	}
	return "", false
}

// JoinNames lists the names of all entries whose bit is set in mask.
func (t Table) JoinNames(mask uint32) string {
	var names []string
	for _, e := range t {
		if e.Value > 0 && mask&uint32(e.Value) != 0 {
			names = append(names, e.Name)
		}
	}
	return strings.Join(names, ",")
}

// ParseMask ORs the values of a comma separated name list. Unknown names are returned separately.
func (t Table) ParseMask(list string) (mask uint32, unknown []string) {
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		v := t.Value(name)
		if v <= 0 {
			unknown = append(unknown, name)
			continue
		}
		mask |= uint32(v)
	}
	return mask, unknown
}

var VDSL2Profiles = Table{
	{"8a", int(model.VDSL2Profile8a)},
	{"8b", int(model.VDSL2Profile8b)},
	{"8c", int(model.VDSL2Profile8c)},
	{"8d", int(model.VDSL2Profile8d)},
	{"12a", int(model.VDSL2Profile12a)},
	{"12b", int(model.VDSL2Profile12b)},
	{"17a", int(model.VDSL2Profile17a)},
	{"30a", int(model.VDSL2Profile30a)},
	{"35b", int(model.VDSL2Profile35b)},
}

var FastProfiles = Table{
	{"106a", int(model.FastProfile106a)},
	{"106b", int(model.FastProfile106b)},
	{"106c", int(model.FastProfile106c)},
	{"212a", int(model.FastProfile212a)},
	{"212c", int(model.FastProfile212c)},
}

var ATMLinkTypes = Table{
	{"unconfigured", int(model.ATMLinkUnconfigured)},
	{"eoa", int(model.ATMLinkEoA)},
	{"ipoa", int(model.ATMLinkIPoA)},
	{"pppoa", int(model.ATMLinkPPPoA)},
	{"cip", int(model.ATMLinkCIP)},
}

var ATMEncapsulations = Table{
	{"llc", int(model.ATMEncapLLC)},
	{"vcmux", int(model.ATMEncapVCMux)},
}

var ATMQoSClasses = Table{
	{"ubr", int(model.ATMQoSUBR)},
	{"cbr", int(model.ATMQoSCBR)},
	{"gfr", int(model.ATMQoSGFR)},
	{"vbr_nrt", int(model.ATMQoSVBRnrt)},
	{"vbr_rt", int(model.ATMQoSVBRrt)},
	{"ubr_plus", int(model.ATMQoSUBRPlus)},
	{"abr", int(model.ATMQoSABR)},
}
