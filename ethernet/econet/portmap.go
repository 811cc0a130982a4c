package econet

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PortMapPath lists the WAN switch port first, followed by a
// switch_port_map section of "<lan port> <switch port>" pairs.
const PortMapPath = "/proc/tc3162/eth_portmap"

const (
	lanPrefix   = "eth0."
	nasPrefix   = "nas"
	aeWANPrefix = "ae_wan"
)

// MaxPort bounds the switch port numbers accepted by the switch manager.
const MaxPort = 256

// portNum maps ifname to its switch port. eth0.N is LAN port N; nas* and
// ae_wan* are the WAN port.
func portNum(path, ifname string) (int, error) {
	var (
		wan bool
		lan int
		err error
	)
	switch {
	case strings.HasPrefix(ifname, lanPrefix):
		lan, err = strconv.Atoi(ifname[len(lanPrefix):])
		if err != nil {
			return 0, fmt.Errorf("no LAN port number in %s", ifname)
		}
	case strings.HasPrefix(ifname, nasPrefix), strings.HasPrefix(ifname, aeWANPrefix):
		wan = true
	default:
		return 0, fmt.Errorf("no switch port for %s", ifname)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return parsePortMap(string(data), wan, lan)
}

func parsePortMap(data string, wan bool, lan int) (int, error) {
	if wan {
		fields := strings.Fields(data)
		if len(fields) == 0 {
			return 0, fmt.Errorf("%s: empty", PortMapPath)
		}
		p, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, fmt.Errorf("%s: bad WAN port %q", PortMapPath, fields[0])
		}
		return p, nil
	}

	i := strings.Index(data, "switch_port_map")
	if i < 0 {
		return 0, fmt.Errorf("%s: no switch_port_map", PortMapPath)
	}
	rest := data[i:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		rest = ""
	}

	fields := strings.Fields(rest)
	for j := 0; j+1 < len(fields); j += 2 {
		port, err := strconv.Atoi(fields[j])
		if err != nil {
			break
		}
		swport, err := strconv.Atoi(fields[j+1])
		if err != nil {
			break
		}
		if port == lan {
			return swport, nil
		}
	}
	return 0, fmt.Errorf("%s: LAN port %d not mapped", PortMapPath, lan)
}
