// Package output owns the terminal output of a session.
//
// The terminal is split into two regions. The static region holds lines that
// are written once and never touched again; it grows upwards into the
// scrollback as more lines are committed. The dynamic region sits below it and
// is repainted on every pass. Lines printed through a [Handle] are inserted
// into the static region, above the dynamic region.
//
// All writes to the terminal go through a [Splitter], which gives them a total
// order.
package output

import (
	"fmt"
	"io"
	"sync"

	"src.retui.sh/pkg/logutil"
	"src.retui.sh/pkg/term"
)

var logger = logutil.GetLogger("[output] ")

var logPaintDetail = false

// Stream identifies the destination of a printed line.
type Stream uint8

// Possible values of Stream.
const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

type printed struct {
	stream Stream
	text   string
}

// Splitter maintains the static and dynamic regions of the terminal.
//
// Paint, CommitStatic and Finish must be called from a single goroutine, the
// one running the render loop. Handles may be used from any goroutine.
type Splitter struct {
	driver      term.Driver
	stderr      io.Writer
	interactive bool

	// Guards queue, handles and the partial lines of handles.
	mutex   sync.Mutex
	queue   []printed
	handles []*Handle
	onPrint func()

	static     []term.Line
	nUnwritten int
	frame      []term.Line
	width      int
	painted    bool
}

// Opts keeps options for NewSplitter.
type Opts struct {
	// Stderr receives lines printed to Stderr handles. If nil, they are
	// written to the driver like lines printed to Stdout handles.
	Stderr io.Writer
	// NonInteractive disables repainting. The dynamic region is only written
	// once, by Finish. It is meant for output that is not a terminal.
	NonInteractive bool
	// OnPrint is called, without any lock held, after a complete line has been
	// queued by a Handle.
	OnPrint func()
}

// NewSplitter creates a new Splitter writing to the given driver.
func NewSplitter(d term.Driver, opts Opts) *Splitter {
	return &Splitter{
		driver: d, stderr: opts.Stderr, interactive: !opts.NonInteractive,
		onPrint: opts.OnPrint,
	}
}

// CommitStatic appends lines to the static region. They are written to the
// terminal by the next Paint, in the order they were committed. The lines are
// copied; later changes to the arguments have no effect.
func (s *Splitter) CommitStatic(lines ...term.Line) {
	for _, line := range lines {
		s.static = append(s.static, line.Clone())
	}
	s.nUnwritten += len(lines)
}

// Static returns a copy of all lines committed to the static region so far.
func (s *Splitter) Static() []term.Line {
	return append([]term.Line(nil), s.static...)
}

// Pending reports whether there are printed lines or static lines that have
// not been written yet.
func (s *Splitter) Pending() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.queue) > 0 || s.nUnwritten > 0
}

func (s *Splitter) popQueue() []printed {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	q := s.queue
	s.queue = nil
	return q
}

// Paint updates the terminal. Printed lines queued since the last Paint and
// static lines committed since the last Paint are written above the dynamic
// region, in that order, and the dynamic region is replaced with frame, which
// must not have lines wider than width.
//
// When nothing is written above the dynamic region and the width has not
// changed, only the lines from the first one that differs from the previous
// frame are repainted; if frame is identical to the previous frame, nothing is
// written at all.
func (s *Splitter) Paint(frame []term.Line, width int) error {
	queue := s.popQueue()
	full := len(queue) > 0 || s.nUnwritten > 0 || (s.painted && width != s.width)

	keep := 0
	if s.interactive && !full {
		keep = commonPrefix(s.frame, frame)
		if keep == len(s.frame) && keep == len(frame) && s.painted {
			return nil
		}
	}
	if logPaintDetail {
		logger.Printf("paint: %d printed, %d static, %d/%d lines kept",
			len(queue), s.nUnwritten, keep, len(frame))
	}

	if s.interactive {
		if err := s.driver.ClearLines(len(s.frame) - keep); err != nil {
			return wrapIOError(err)
		}
	}
	if err := s.writeAbove(queue); err != nil {
		return err
	}
	if s.interactive {
		for _, line := range frame[keep:] {
			if err := s.driver.WriteLine(line.VTString()); err != nil {
				return wrapIOError(err)
			}
		}
	}
	if err := s.driver.Flush(); err != nil {
		return wrapIOError(err)
	}
	s.frame = cloneLines(frame)
	s.width = width
	s.painted = true
	return nil
}

// Writes queued printed lines and unwritten static lines. The dynamic region
// must have been erased.
func (s *Splitter) writeAbove(queue []printed) error {
	for _, p := range queue {
		if p.stream == Stderr && s.stderr != nil {
			// Make sure everything before the line is on the terminal before
			// writing to another file.
			if err := s.driver.Flush(); err != nil {
				return wrapIOError(err)
			}
			if _, err := io.WriteString(s.stderr, p.text+"\n"); err != nil {
				return wrapIOError(err)
			}
			continue
		}
		if err := s.driver.WriteLine(p.text); err != nil {
			return wrapIOError(err)
		}
	}
	for _, line := range s.static[len(s.static)-s.nUnwritten:] {
		if err := s.driver.WriteLine(line.VTString()); err != nil {
			return wrapIOError(err)
		}
	}
	s.nUnwritten = 0
	return nil
}

// Finish completes the output of a session: partial lines of all handles are
// terminated and written, along with anything else that is pending, and the
// final frame stays on the terminal. In non-interactive mode, this is the only
// time the dynamic region is written.
func (s *Splitter) Finish(frame []term.Line, width int) error {
	s.mutex.Lock()
	for _, h := range s.handles {
		if h.partial != "" {
			s.queue = append(s.queue, printed{h.stream, h.partial})
			h.partial = ""
		}
	}
	s.mutex.Unlock()

	if err := s.Paint(frame, width); err != nil {
		return err
	}
	if !s.interactive {
		for _, line := range frame {
			if err := s.driver.WriteLine(line.VTString()); err != nil {
				return wrapIOError(err)
			}
		}
		if err := s.driver.Flush(); err != nil {
			return wrapIOError(err)
		}
	}
	return nil
}

func commonPrefix(a, b []term.Line) int {
	i := 0
	for i < len(a) && i < len(b) && a[i].Equal(b[i]) {
		i++
	}
	return i
}

func cloneLines(lines []term.Line) []term.Line {
	cloned := make([]term.Line, len(lines))
	for i, line := range lines {
		cloned[i] = line.Clone()
	}
	return cloned
}

// IOError wraps an error from the terminal.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("write to terminal: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

func wrapIOError(err error) error {
	return &IOError{err}
}
