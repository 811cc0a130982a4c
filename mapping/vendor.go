package mapping

import "fmt"

// VendorHex formats octets 2 to 5 of a G.994.1 vendor ID as upper case hex.
// The first two octets hold the T.35 country code.
func VendorHex(id []byte) string {
	if len(id) < 6 {
		return ""
	}
	return fmt.Sprintf("%02X%02X%02X%02X", id[2], id[3], id[4], id[5])
}
