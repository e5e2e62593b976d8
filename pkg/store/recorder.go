package store

import (
	"io"
	"math"
	"time"

	. "src.retui.sh/pkg/store/storedefs"
)

// Recorder is an io.Writer that records each write as a frame. It is meant to
// sit behind a terminal driver, which writes each paint at once.
type Recorder struct {
	st Store
}

// NewRecorder creates a Recorder that adds frames to st.
func NewRecorder(st Store) *Recorder {
	return &Recorder{st}
}

// Write implements io.Writer.
func (r *Recorder) Write(p []byte) (int, error) {
	if _, err := r.st.AddFrame(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Replay writes all frames recorded in st to w, in order, waiting for delay
// between frames.
func Replay(st Store, w io.Writer, delay time.Duration) error {
	first := true
	return st.IterateFrames(0, math.MaxInt, func(f Frame) error {
		if !first && delay > 0 {
			time.Sleep(delay)
		}
		first = false
		_, err := w.Write(f.Data)
		return err
	})
}
