package render

import "fmt"

// ScaleRate converts a frequency in Hz to KHz or MHz. Both bounds are
// exclusive, so exactly 1000 and exactly 1000000 stay in Hz.
func ScaleRate(hz float64) (float64, string) {
	switch {
	case hz > 1000 && hz < 1000000:
		return hz / 1000, "KHz"
	case hz > 1000000:
		return hz / 1000000, "MHz"
	default:
		return hz, "Hz"
	}
}

// FormatRate renders a frequency with two decimals and its unit.
func FormatRate(hz int64) string {
	v, unit := ScaleRate(float64(hz))
	return fmt.Sprintf("%.2f %s", v, unit)
}
