package comp

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"src.retui.sh/pkg/output"
)

// Hooks gives a component access to its hook slots. Slots are identified by
// the order of hook calls, so an update must call the same hooks in the same
// order as the previous update of the same instance.
type Hooks struct {
	inst        *instance
	s           *session
	slots       []any
	next        int
	initialized bool
}

func (h *Hooks) begin() { h.next = 0 }

func (h *Hooks) end() {
	if h.initialized && h.next != len(h.slots) {
		panic(h.errorf(h.next, "update called %d hooks, previous update called %d", h.next, len(h.slots)))
	}
	h.initialized = true
}

func (h *Hooks) errorf(i int, format string, args ...any) *HookError {
	return &HookError{h.inst.kind.Name, i, fmt.Sprintf(format, args...)}
}

// Returns the next slot, which must have type S. The slot is created on the
// first update of an instance.
func useSlot[S any](h *Hooks, create func() S) S {
	i := h.next
	h.next++
	if i < len(h.slots) {
		slot, ok := h.slots[i].(S)
		if !ok {
			var want S
			panic(h.errorf(i, "called with type %T, previous update called with %T", want, h.slots[i]))
		}
		return slot
	}
	if h.initialized {
		var want S
		panic(h.errorf(i, "called with type %T, previous update called only %d hooks", want, len(h.slots)))
	}
	slot := create()
	h.slots = append(h.slots, slot)
	return slot
}

// Exit stops the render loop after the current pass.
func (h *Hooks) Exit() {
	h.s.exit.Store(true)
	h.s.Wake()
}

// Waker returns a Waker for the render loop.
func (h *Hooks) Waker() Waker { return h.s }

// State is a state cell created by UseState. All methods may be called from
// any goroutine.
type State[T any] struct {
	s    *session
	life *lifetime

	mutex      sync.Mutex
	value      T
	pending    T
	hasPending bool
}

// UseState returns the state cell of the current slot, creating it with the
// value returned by init on the first update.
func UseState[T any](h *Hooks, init func() T) *State[T] {
	return useSlot(h, func() *State[T] {
		return &State[T]{s: h.s, life: h.inst.life, value: init()}
	})
}

// Get returns the value of the cell as of the start of the current pass.
// Values written during a pass are only returned from the next pass on.
func (st *State[T]) Get() T {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return st.value
}

// Set writes a new value and wakes up the render loop. It has no effect after
// the instance owning the cell has been destroyed.
func (st *State[T]) Set(v T) {
	st.Update(func(T) T { return v })
}

// Update writes the result of calling f on the latest written value, which
// may not be visible to Get yet. f must not call methods of st.
func (st *State[T]) Update(f func(T) T) {
	queue := false
	alive := st.life.Do(func() {
		st.mutex.Lock()
		defer st.mutex.Unlock()
		base := st.value
		if st.hasPending {
			base = st.pending
		}
		st.pending = f(base)
		queue = !st.hasPending
		st.hasPending = true
	})
	if !alive {
		return
	}
	if queue {
		st.s.markDirty(st)
	}
	st.s.Wake()
}

func (st *State[T]) commit() {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	if st.hasPending {
		var zero T
		st.value, st.pending, st.hasPending = st.pending, zero, false
	}
}

type futureSlot struct{}

// UseFuture starts task on the first update of the instance, in its own
// goroutine. The context passed to task is cancelled when the instance is
// destroyed or the render loop stops; after that, writes to state cells and
// prints from the instance have no effect.
//
// If task returns a non-nil error before its context is cancelled, or panics,
// the render loop stops and returns a *TaskError.
func UseFuture(h *Hooks, task func(ctx context.Context) error) {
	useSlot(h, func() *futureSlot {
		h.s.spawn(h.inst, task)
		return &futureSlot{}
	})
}

func (s *session) spawn(inst *instance, task func(ctx context.Context) error) {
	ctx := inst.life.ctx
	kind := inst.kind.Name
	s.running.Add(1)
	s.tasks.Go(func() (err error) {
		defer s.Wake()
		defer s.running.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				err = &TaskError{kind, fmt.Errorf("panic: %v", r), string(debug.Stack())}
				s.fail(err)
			}
		}()
		if err := task(ctx); err != nil && ctx.Err() == nil {
			err := &TaskError{Kind: kind, Err: err}
			s.fail(err)
			return err
		}
		return nil
	})
}

type outputSlot struct {
	stdout, stderr *output.Handle
}

// UseOutput returns handles for printing lines above the output of the render
// loop. Printing never blocks.
func UseOutput(h *Hooks) (stdout, stderr *output.Handle) {
	slot := useSlot(h, func() *outputSlot {
		return &outputSlot{
			h.s.splitter.NewHandle(output.Stdout, h.inst.life),
			h.s.splitter.NewHandle(output.Stderr, h.inst.life),
		}
	})
	return slot.stdout, slot.stderr
}

// lifetime guards everything an instance hands out to other goroutines.
type lifetime struct {
	ctx    context.Context
	cancel context.CancelFunc

	mutex sync.Mutex
	dead  bool
}

func newLifetime(parent context.Context) *lifetime {
	ctx, cancel := context.WithCancel(parent)
	return &lifetime{ctx: ctx, cancel: cancel}
}

// Do implements output.Guard.
func (l *lifetime) Do(f func()) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.dead {
		return false
	}
	f()
	return true
}

// Ends the lifetime. Once end returns, no call to Do has any effect.
func (l *lifetime) end() {
	l.mutex.Lock()
	l.dead = true
	l.mutex.Unlock()
	l.cancel()
}
