//go:build linux

package capture

import (
	"fmt"

	"github.com/blackjack/webcam"
)

// waitTimeout is how long a single wait on the driver may take before
// it is retried, in seconds. Next blocks indefinitely across retries.
const waitTimeout = 5

// V4L2Device is the production capture backend, reading frames from a
// Video4Linux2 device.
type V4L2Device struct {
	cam  *webcam.Webcam
	path string
}

// OpenV4L2 opens the V4L2 device at path, negotiates the capture mode
// closest to target among the preferred formats, starts streaming and
// discards one warm-up frame. The returned mode is what the driver
// actually applied.
func OpenV4L2(path string, target Resolution, prefs []FourCC, buffers uint32) (Device, Mode, error) {
	cam, err := webcam.Open(path)
	if err != nil {
		return nil, Mode{}, fmt.Errorf("capture: open %s: %w", path, err)
	}
	dev := &V4L2Device{cam: cam, path: path}

	mode, err := Negotiate(dev, target, prefs)
	if err != nil {
		cam.Close()
		return nil, Mode{}, err
	}
	if buffers > 0 {
		if err := cam.SetBufferCount(buffers); err != nil {
			cam.Close()
			return nil, Mode{}, fmt.Errorf("capture: set buffer count: %w", err)
		}
	}
	if err := cam.StartStreaming(); err != nil {
		cam.Close()
		return nil, Mode{}, fmt.Errorf("capture: start streaming: %w", err)
	}

	// First frame after streaming starts is often stale or underexposed.
	if _, err := dev.Next(); err != nil {
		cam.Close()
		return nil, Mode{}, fmt.Errorf("capture: warm-up frame: %w", err)
	}
	return dev, mode, nil
}

// Candidates enumerates the supported modes for the preferred formats,
// in preference order. Stepwise ranges are resolved to the discrete
// size nearest the target.
func (d *V4L2Device) Candidates(prefs []FourCC, target Resolution) ([]CandidateMode, error) {
	supported := d.cam.GetSupportedFormats()
	var out []CandidateMode
	for _, f := range prefs {
		pf := webcam.PixelFormat(f.Code())
		if _, ok := supported[pf]; !ok {
			continue
		}
		for _, fs := range d.cam.GetSupportedFrameSizes(pf) {
			r := SizeRange{
				MinWidth:   fs.MinWidth,
				MaxWidth:   fs.MaxWidth,
				StepWidth:  fs.StepWidth,
				MinHeight:  fs.MinHeight,
				MaxHeight:  fs.MaxHeight,
				StepHeight: fs.StepHeight,
			}
			size, ok := r.Nearest(target)
			if !ok {
				continue
			}
			out = append(out, CandidateMode{Format: f, Size: size})
		}
	}
	return out, nil
}

// Apply requests the mode from the driver and returns what it applied.
func (d *V4L2Device) Apply(m Mode) (Mode, error) {
	pf, w, h, err := d.cam.SetImageFormat(webcam.PixelFormat(m.Format.Code()), m.Width, m.Height)
	if err != nil {
		return Mode{}, err
	}
	return Mode{Format: FourCCFromCode(uint32(pf)), Width: w, Height: h}, nil
}

// Next blocks until the driver delivers a frame and returns a copy of
// it. The driver recycles its mmap ring, so nothing returned here
// references driver storage.
func (d *V4L2Device) Next() ([]byte, error) {
	for {
		err := d.cam.WaitForFrame(waitTimeout)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			continue
		default:
			return nil, fmt.Errorf("capture: wait for frame on %s: %w", d.path, err)
		}

		// ReadFrame copies the mmap buffer and releases it back to
		// the driver before returning.
		frame, err := d.cam.ReadFrame()
		if err != nil {
			return nil, fmt.Errorf("capture: read frame from %s: %w", d.path, err)
		}
		if len(frame) == 0 {
			continue
		}
		return frame, nil
	}
}

// Close stops streaming and releases the device.
func (d *V4L2Device) Close() error {
	d.cam.StopStreaming()
	return d.cam.Close()
}

var _ Device = (*V4L2Device)(nil)
