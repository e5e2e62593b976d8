package comp

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"src.retui.sh/pkg/layout"
	"src.retui.sh/pkg/output"
	"src.retui.sh/pkg/term"
)

// session holds everything shared by the instances of one tree.
type session struct {
	// Parent of the contexts of all instances.
	ctx     context.Context
	cancel  context.CancelFunc
	tasks   *errgroup.Group
	running atomic.Int64

	// Receives a value when something needs another pass. Signals sent while
	// a value is pending are coalesced.
	wakeCh chan struct{}
	exit   atomic.Bool

	// Guards dirty and failure.
	mutex   sync.Mutex
	dirty   []committer
	failure error

	splitter *output.Splitter
	width    int
	// Maximum height of the dynamic region; negative if unlimited.
	maxHeight int

	top   []*instance
	frame []term.Line
}

type committer interface{ commit() }

func newSession(ctx context.Context, width, maxHeight int, newSplitter func(onPrint func()) *output.Splitter) *session {
	ctx, cancel := context.WithCancel(ctx)
	tasks, ctx := errgroup.WithContext(ctx)
	s := &session{
		ctx: ctx, cancel: cancel, tasks: tasks,
		wakeCh: make(chan struct{}, 1),
		width:  width, maxHeight: maxHeight,
	}
	s.splitter = newSplitter(s.Wake)
	return s
}

// Wake implements Waker.
func (s *session) Wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

func (s *session) markDirty(c committer) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.dirty = append(s.dirty, c)
}

func (s *session) commitStates() {
	s.mutex.Lock()
	dirty := s.dirty
	s.dirty = nil
	s.mutex.Unlock()
	for _, c := range dirty {
		c.commit()
	}
}

func (s *session) fail(err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.failure == nil {
		logger.Println("task failed:", err)
		s.failure = err
	}
	s.Wake()
}

func (s *session) getFailure() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.failure
}

// Runs one pass over the tree and returns the resulting frame. The frame is
// not painted.
func (s *session) pass(root Element) []term.Line {
	s.commitStates()
	s.top = s.reconcile(s.top, []Element{root})
	if len(s.top) == 0 {
		s.frame = nil
		return nil
	}
	inst := s.top[0]
	layout.Compute(&inst.node, s.width, s.maxHeight)
	buf := term.NewBuffer(s.width, inst.node.Layout.Height)
	inst.render(buf)
	s.frame = buf.Lines()
	return s.frame
}

func (s *session) pollChange() bool {
	changed := false
	for _, inst := range s.top {
		if inst.pollChange(s) {
			changed = true
		}
	}
	return changed
}

// Destroys the tree and waits for all tasks to finish.
func (s *session) shutdown() {
	s.stop()
	s.tasks.Wait()
}

// Destroys the tree and cancels all tasks without waiting for them. Tasks
// that are still running can no longer write states or print.
func (s *session) stop() {
	for _, inst := range s.top {
		inst.destroy()
	}
	s.top = nil
	s.cancel()
}

// Renders el in a session of its own, and returns the static lines committed
// followed by the frame. If wait is true, renderLines returns after all tasks
// started by the pass have finished; otherwise they are only cancelled.
func renderLines(el Element, width int, wait bool) []term.Line {
	s := newSession(context.Background(), width, -1, func(func()) *output.Splitter {
		return output.NewSplitter(term.NewPlainDriver(io.Discard), output.Opts{NonInteractive: true})
	})
	if wait {
		defer s.shutdown()
	} else {
		defer s.stop()
	}
	frame := s.pass(el)
	return append(s.splitter.Static(), frame...)
}
