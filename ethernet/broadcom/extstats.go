package broadcom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/swoga/cpehal/model"
)

// ExtStatsPath is the Broadcom extension of /proc/net/dev with per-cast
// counters appended to the 16 standard columns.
const ExtStatsPath = "/proc/net/dev_extstats"

const minExtStatsFields = 16

func readExtStats(path, ifname string) (model.EthStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.EthStats{}, err
	}
	defer f.Close()
	return parseExtStats(f, ifname)
}

// parseExtStats reads the row of ifname. Parsing stops at the first column
// that is not a number; at least the standard columns must be present.
func parseExtStats(r io.Reader, ifname string) (model.EthStats, error) {
	prefix := ifname + ":"
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		var v [24]uint64
		n := 0
		for _, field := range strings.Fields(line[len(prefix):]) {
			if n == len(v) {
				break
			}
			x, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				break
			}
			v[n] = x
			n++
		}
		if n < minExtStatsFields {
			return model.EthStats{}, fmt.Errorf("%s: %d columns for %s, need %d", ExtStatsPath, n, ifname, minExtStatsFields)
		}

		// rx: bytes packets errs drop fifo frame compressed multicast
		// tx: bytes packets errs drop fifo colls carrier compressed
		// ext: tx_mcast rx_mcast_bytes tx_mcast_bytes rx_ucast tx_ucast
		//      rx_bcast tx_bcast rx_unknown
		// rx multicast is only reported in bytes and stays 0
		return model.EthStats{
			RxBytes:          v[0],
			RxPackets:        v[1],
			RxErrors:         v[2],
			RxDiscardPackets: v[3],
			TxBytes:          v[8],
			TxPackets:        v[9],
			TxErrors:         v[10],
			TxDiscardPackets: v[11],
			TxMcastPackets:   v[16],
			RxUcastPackets:   v[19],
			TxUcastPackets:   v[20],
			RxBcastPackets:   v[21],
			TxBcastPackets:   v[22],
			RxUnknownPackets: v[23],
		}, nil
	}
	if err := sc.Err(); err != nil {
		return model.EthStats{}, err
	}
	return model.EthStats{}, fmt.Errorf("%s: no row for %s", ExtStatsPath, ifname)
}
