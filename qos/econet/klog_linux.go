//go:build linux

package econet

import "golang.org/x/sys/unix"

const (
	syslogActionReadAll    = 3
	syslogActionSizeBuffer = 10
)

// Klog reads the kernel ring buffer with syslog(2).
type Klog struct{}

func (Klog) Read() ([]byte, error) {
	size, err := unix.Klogctl(syslogActionSizeBuffer, nil)
	if err != nil {
		return nil, err
	}
	if size <= 0 || size > maxKlogSize {
		size = maxKlogSize
	}
	buf := make([]byte, size)
	n, err := unix.Klogctl(syslogActionReadAll, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
