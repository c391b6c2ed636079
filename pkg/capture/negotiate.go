package capture

import (
	"fmt"
	"math"
)

// ChooseMode selects the advertised mode closest to the target size.
//
// Each candidate is scored with cost = dh² + dw² + dh·dw over the
// per-axis absolute differences. Smaller frames decode faster, but the
// cross term penalizes extreme aspect ratio mismatches harder than
// either axis alone, so a modestly larger squarer frame beats a very
// thin or very wide one. Replacement requires a strictly smaller cost,
// so on ties the first candidate in enumeration order wins; callers
// that care about format priority must enumerate preferred formats
// first.
func ChooseMode(candidates []CandidateMode, target Resolution) (Mode, error) {
	var best Mode
	bestCost := uint64(math.MaxUint64)
	found := false
	for _, c := range candidates {
		if c.Size.Width == 0 || c.Size.Height == 0 {
			continue
		}
		cost := modeCost(
			absDiff(target.Height, c.Size.Height),
			absDiff(target.Width, c.Size.Width),
		)
		if cost < bestCost {
			best = Mode{Format: c.Format, Width: c.Size.Width, Height: c.Size.Height}
			bestCost = cost
			found = true
		}
	}
	if !found {
		return Mode{}, ErrNoSupportedFormat
	}
	return best, nil
}

func modeCost(dh, dw uint64) uint64 {
	return dh*dh + dw*dw + dh*dw
}

func absDiff(a, b uint32) uint64 {
	if a > b {
		return uint64(a - b)
	}
	return uint64(b - a)
}

// Negotiate picks a capture mode for the device and applies it.
// The driver may adjust the frame size, but substituting a different
// pixel format is fatal: the conversion path is bound to the requested
// format before capture starts.
func Negotiate(dev Device, target Resolution, prefs []FourCC) (Mode, error) {
	candidates, err := dev.Candidates(prefs, target)
	if err != nil {
		return Mode{}, fmt.Errorf("capture: enumerate formats: %w", err)
	}
	want, err := ChooseMode(candidates, target)
	if err != nil {
		return Mode{}, err
	}
	applied, err := dev.Apply(want)
	if err != nil {
		return Mode{}, fmt.Errorf("capture: set format %s: %w", want, err)
	}
	if applied.Format != want.Format {
		return Mode{}, fmt.Errorf("%w: requested %s, got %s",
			ErrFormatNotHonored, want.Format, applied.Format)
	}
	return applied, nil
}
