package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelta(t *testing.T) {
	tests := []struct {
		name      string
		r, height int
		want      int
	}{
		{"top", 0, 20, 0},
		{"last visible line", 19, 20, 0},
		{"first scrolled", 20, 20, 1},
		{"deep", 45, 20, 26},
		{"height one", 7, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delta(tt.r, tt.height))
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		total, height, r   int
		wantStart, wantEnd int
	}{
		{"scrolled", 50, 20, 45, 26, 46},
		{"top", 50, 20, 5, 0, 20},
		{"short list", 5, 20, 3, 0, 5},
		{"row past end is clamped", 50, 20, 99, 30, 50},
		{"empty", 0, 20, 0, 0, 0},
		{"no height", 10, 0, 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.total, tt.height, tt.r)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 10))
	assert.Equal(t, 9, Clamp(12, 10))
	assert.Equal(t, 4, Clamp(4, 10))
	assert.Equal(t, 0, Clamp(3, 0))
}

func TestWindowKeepsHighlightVisible(t *testing.T) {
	for total := 1; total < 40; total++ {
		for height := 1; height < 12; height++ {
			for r := 0; r < total; r++ {
				start, end := Window(total, height, r)
				assert.True(t, start <= r && r < end, "total=%d height=%d r=%d -> [%d,%d)", total, height, r, start, end)
				assert.LessOrEqual(t, end-start, height)
			}
		}
	}
}
