package output

import (
	"fmt"
	"strings"
)

// Guard decides whether a Handle may still print. It is implemented by the
// owner of the handle.
type Guard interface {
	// Do calls f and returns true if the owner is alive. The owner must not be
	// destroyed while f runs.
	Do(f func()) bool
}

// Handle prints lines above the dynamic region. Its methods never block on
// the render loop and may be called from any goroutine.
//
// Text is only queued once a line is complete; a partial line printed without
// a trailing newline is held by the Handle until it is completed, so lines
// printed from different goroutines never tear. Lines from all handles of a
// Splitter are written in the order they are completed.
type Handle struct {
	s       *Splitter
	stream  Stream
	guard   Guard
	partial string
	closed  bool
}

// NewHandle creates a Handle for the given stream. If guard is non-nil,
// printing has no effect once the guard reports its owner as dead.
func (s *Splitter) NewHandle(stream Stream, guard Guard) *Handle {
	h := &Handle{s: s, stream: stream, guard: guard}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.handles = append(s.handles, h)
	return h
}

// Stream returns the stream of the handle.
func (h *Handle) Stream() Stream { return h.stream }

// Print prints text without adding a newline.
func (h *Handle) Print(text string) {
	queued := false
	do := func() { queued = h.s.queueText(h, text) }
	if h.guard != nil {
		if !h.guard.Do(do) {
			return
		}
	} else {
		do()
	}
	if queued && h.s.onPrint != nil {
		h.s.onPrint()
	}
}

// Println prints text followed by a newline.
func (h *Handle) Println(text string) { h.Print(text + "\n") }

// Printf prints formatted text without adding a newline.
func (h *Handle) Printf(format string, args ...any) {
	h.Print(fmt.Sprintf(format, args...))
}

// Write implements io.Writer, so that a Handle can be used with fmt.Fprint
// and log.Logger.
func (h *Handle) Write(p []byte) (int, error) {
	h.Print(string(p))
	return len(p), nil
}

// Adds text to the partial line of h, and moves all completed lines to the
// queue. It reports whether any line was queued.
func (s *Splitter) queueText(h *Handle, text string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if h.closed {
		return false
	}
	text = h.partial + text
	lines := strings.Split(text, "\n")
	h.partial = lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		s.queue = append(s.queue, printed{h.stream, line})
	}
	return len(lines) > 1
}

// Close detaches the handle from the Splitter. A partial line held by the
// handle is queued as if it were completed. Printing to a closed handle has
// no effect.
func (h *Handle) Close() {
	s := h.s
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	if h.partial != "" {
		s.queue = append(s.queue, printed{h.stream, h.partial})
		h.partial = ""
	}
	for i, h2 := range s.handles {
		if h2 == h {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			break
		}
	}
}
