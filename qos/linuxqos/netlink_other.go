//go:build !linux

package linuxqos

import "errors"

type RouteDumper struct{}

func (RouteDumper) Dump(ifindex int) ([]Object, error) {
	return nil, errors.New("rtnetlink is only available on linux")
}
