// Package viewport computes which slice of a flattened list fits on screen
// so that the highlighted row stays visible.
package viewport

// Delta is the index of the first visible row when row r is highlighted on
// a screen of height rows. It stays 0 until r reaches the last screen line
// and then scrolls one line per step.
func Delta(r, height int) int {
	if height <= 0 {
		return r
	}
	if r >= height {
		return r - (height - 1)
	}
	return 0
}

// Window returns the half-open range [start, end) of the total rows to draw.
func Window(total, height, r int) (start, end int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	start = Delta(Clamp(r, total), height)
	end = start + height
	if end > total {
		end = total
	}
	return start, end
}

// Clamp bounds r to [0, total-1]. An empty list clamps to 0.
func Clamp(r, total int) int {
	if r >= total {
		r = total - 1
	}
	if r < 0 {
		r = 0
	}
	return r
}
