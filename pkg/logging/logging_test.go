package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCLIModeWritesSubsystem(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Info("clock", "loaded %d nodes", 3)
	Error("gpio", errors.New("boom"), "write failed")

	out := buf.String()
	assert.Contains(t, out, "loaded 3 nodes")
	assert.Contains(t, out, "subsystem=clock")
	assert.Contains(t, out, "error=boom")
}

func TestTUIModeFiltersAndNeverBlocks(t *testing.T) {
	ch := Setup(ModeTUI, LevelInfo, nil, 2)
	defer CloseTUIChannel()

	Debug("tree", "hidden")
	Info("tree", "first")
	Warn("tree", "second")
	Info("tree", "third")

	require.Len(t, ch, 2)
	e := <-ch
	assert.Equal(t, "first", e.Message)
	assert.Equal(t, LevelInfo, e.Level)
	assert.Equal(t, "tree", e.Subsystem)
	assert.Equal(t, 1, Dropped())
}

func TestCloseTUIChannelFallsBack(t *testing.T) {
	var buf bytes.Buffer
	ch := Setup(ModeTUI, LevelDebug, &buf, 4)
	CloseTUIChannel()

	_, open := <-ch
	assert.False(t, open)

	Warn("watcher", "after close")
	assert.Contains(t, buf.String(), "after close")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", LogLevel(9).String())
}
