// Package termtest provides a fake terminal for testing code that writes to a
// [term.Driver].
package termtest

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"src.retui.sh/pkg/term"
	"src.retui.sh/pkg/testutil"
)

// Terminal is a fake terminal that implements [term.Driver]. It keeps every
// line ever written, including lines that have scrolled off the screen, so
// that tests can inspect the full output of a session.
type Terminal struct {
	mutex   sync.Mutex
	lines   []string
	pending []string
	cursor  int
	ops     []string
	flushes int
	err     error
	flushCh chan struct{}
}

var _ term.Driver = (*Terminal)(nil)

// NewTerminal creates a new fake Terminal.
func NewTerminal() *Terminal {
	return &Terminal{flushCh: make(chan struct{}, 1)}
}

// WriteLine records the line at the cursor and advances the cursor.
func (t *Terminal) WriteLine(text string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.ops = append(t.ops, "write "+term.StripSGR(text))
	t.pending = append(t.pending, "w"+text)
	return nil
}

// ClearLines moves the cursor up and discards everything from the cursor on.
func (t *Terminal) ClearLines(n int) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if n > 0 {
		t.ops = append(t.ops, fmt.Sprintf("clear %d", n))
		t.pending = append(t.pending, fmt.Sprintf("c%d", n))
	}
	return nil
}

// MoveCursorUp moves the cursor up.
func (t *Terminal) MoveCursorUp(n int) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.ops = append(t.ops, fmt.Sprintf("up %d", n))
	t.pending = append(t.pending, fmt.Sprintf("u%d", n))
	return nil
}

// Flush applies all buffered operations to the screen, unless an error has
// been injected with SetError.
func (t *Terminal) Flush() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.err != nil {
		t.pending = nil
		return t.err
	}
	if len(t.pending) == 0 {
		return nil
	}
	for _, op := range t.pending {
		switch op[0] {
		case 'w':
			if t.cursor < len(t.lines) {
				t.lines[t.cursor] = op[1:]
			} else {
				t.lines = append(t.lines, op[1:])
			}
			t.cursor++
		case 'c':
			var n int
			fmt.Sscanf(op[1:], "%d", &n)
			t.cursor = max(t.cursor-n, 0)
			t.lines = t.lines[:t.cursor]
		case 'u':
			var n int
			fmt.Sscanf(op[1:], "%d", &n)
			t.cursor = max(t.cursor-n, 0)
		}
	}
	t.pending = nil
	t.flushes++
	t.ops = append(t.ops, "flush")
	select {
	case t.flushCh <- struct{}{}:
	default:
	}
	return nil
}

// SetError makes all subsequent Flush calls fail with err.
func (t *Terminal) SetError(err error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.err = err
}

// Lines returns all lines on the terminal, including the scrollback, with SGR
// sequences stripped.
func (t *Terminal) Lines() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	lines := make([]string, len(t.lines))
	for i, line := range t.lines {
		lines[i] = term.StripSGR(line)
	}
	return lines
}

// RawLines returns all lines on the terminal as written, SGR sequences
// included.
func (t *Terminal) RawLines() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return append([]string(nil), t.lines...)
}

// String returns the content of the terminal, each line followed by a
// newline.
func (t *Terminal) String() string {
	var sb strings.Builder
	for _, line := range t.Lines() {
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// Ops returns the log of operations, and clears it.
func (t *Terminal) Ops() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	ops := t.ops
	t.ops = nil
	return ops
}

// Flushes returns how many Flush calls have changed the screen.
func (t *Terminal) Flushes() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.flushes
}

// WaitTimeout is the default time to wait in WaitLines, before scaling.
var WaitTimeout = 2 * time.Second

// WaitLines waits until the content of the terminal, as returned by Lines,
// satisfies pred. It fails the test if that does not happen in time.
func (t *Terminal) WaitLines(tb testing.TB, pred func([]string) bool) {
	tb.Helper()
	timeout := time.After(testutil.Scaled(WaitTimeout))
	for {
		if pred(t.Lines()) {
			return
		}
		select {
		case <-t.flushCh:
		case <-timeout:
			tb.Fatalf("timed out waiting for terminal, content:\n%s", t.String())
		}
	}
}

// Contains returns a predicate for WaitLines that is satisfied when any line
// equals s.
func Contains(s string) func([]string) bool {
	return func(lines []string) bool {
		for _, line := range lines {
			if line == s {
				return true
			}
		}
		return false
	}
}
