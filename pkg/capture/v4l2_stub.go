//go:build !linux

package capture

import "fmt"

// OpenV4L2 returns an error on non-Linux platforms.
func OpenV4L2(path string, target Resolution, prefs []FourCC, buffers uint32) (Device, Mode, error) {
	return nil, Mode{}, fmt.Errorf("capture: V4L2 devices are only available on Linux")
}
