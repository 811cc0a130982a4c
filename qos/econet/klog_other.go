//go:build !linux

package econet

import "errors"

type Klog struct{}

func (Klog) Read() ([]byte, error) {
	return nil, errors.New("kernel log is only available on linux")
}
