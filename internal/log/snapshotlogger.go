package log

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/btn0s/prototype-playground/source"
)

// SnapshotLogger traces every snapshot handed to the normalizer.
type SnapshotLogger interface {
	Log(snap *source.Snapshot)
}

// snapshotLogger implements SnapshotLogger with thread-safe writes.
type snapshotLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewSnapshotLogger creates a SnapshotLogger. If writer is nil, returns a no-op logger.
func NewSnapshotLogger(w io.Writer) SnapshotLogger {
	return &snapshotLogger{w: w}
}

// Log emits a single line with the timestamp, device, a pressed-button mask
// (one digit per button index) and the axis values.
func (l *snapshotLogger) Log(snap *source.Snapshot) {
	if snap == nil || l.w == nil {
		return
	}

	var mask strings.Builder
	for _, b := range snap.Buttons {
		if b.Pressed {
			mask.WriteByte('1')
		} else {
			mask.WriteByte('0')
		}
	}
	axes := make([]string, len(snap.Axes))
	for i, a := range snap.Axes {
		axes[i] = strconv.FormatFloat(a, 'f', 3, 64)
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	line := fmt.Sprintf("%s pad %d %q buttons: %s axes: [%s]\n",
		ts.Format("2006/01/02 15:04:05.000"),
		snap.Index,
		snap.ID,
		mask.String(),
		strings.Join(axes, " "))

	l.mu.Lock()
	_, _ = l.w.Write([]byte(line))
	l.mu.Unlock()
}
