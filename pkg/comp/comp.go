// Package comp implements a reactive component model for inline terminal
// output.
//
// Application code describes the desired output as a tree of [Element]
// values. On every render pass, the tree is reconciled against the component
// instances created by earlier passes: instances are reused, created or
// destroyed as needed, and each live instance is updated with the props of its
// element. The instances then lay out and render themselves into a frame,
// which is painted to the terminal by an [output.Splitter].
//
// Instances keep their state in hooks (see [UseState], [UseFuture] and
// [UseOutput]), which are identified by the order in which an instance calls
// them. A write to a state cell makes the render loop run another pass; the
// new value becomes visible from that pass on.
package comp

import (
	"fmt"

	"src.retui.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[comp] ")

// Element describes a component at some position of the tree. Elements are
// values that are built anew on every pass.
type Element struct {
	Kind *Kind
	// Key identifies the element among its siblings. It must be comparable.
	// Elements without a key are matched with instances by position.
	Key      any
	Props    any
	Children []Element
}

// New builds an Element.
func New(kind *Kind, props any, children ...Element) Element {
	return Element{Kind: kind, Props: props, Children: children}
}

// WithKey returns a copy of the element with the given key.
func (el Element) WithKey(key any) Element {
	el.Key = key
	return el
}

// Kind is the type of a component. Kinds are compared by identity, so each
// kind should be created once, typically as a package-level variable.
type Kind struct {
	Name string
	New  func() Component
}

func (k *Kind) String() string {
	if k == nil {
		return "<nil>"
	}
	return k.Name
}

// Component is the interface implemented by all components.
type Component interface {
	// Update is called on every render pass while the component's element
	// exists. It may call hooks through h, and declares its layout and
	// children through u.
	Update(props any, h *Hooks, u *Updater)
}

// Renderer is implemented by components that draw something. Render is called
// after layout, with a canvas covering the area assigned to the component.
// Components are rendered before their children.
type Renderer interface {
	Render(c *Canvas)
}

// ChangePoller is implemented by components that change in ways not tracked
// by hooks. After each pass, the render loop polls all such components, and
// runs another pass immediately if any of them returns true. A component that
// will change later should keep w and call its Wake method when it does.
type ChangePoller interface {
	PollChange(w Waker) bool
}

// Waker wakes up the render loop.
type Waker interface {
	Wake()
}

// Func returns a Kind for a component that is implemented by a function. The
// props of the element are passed as P; if they are not a P, the zero value is
// passed instead.
func Func[P any](name string, f func(props P, h *Hooks, u *Updater)) *Kind {
	return &Kind{name, func() Component { return funcComponent[P](f) }}
}

type funcComponent[P any] func(props P, h *Hooks, u *Updater)

func (f funcComponent[P]) Update(props any, h *Hooks, u *Updater) {
	p, _ := props.(P)
	f(p, h, u)
}

// HookError is raised, as a panic, when the hooks called by an update do not
// match those called by the previous update of the same instance. The panic
// is recovered by Run, which returns the error.
type HookError struct {
	Kind  string
	Index int
	Msg   string
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s: hook #%d: %s", e.Kind, e.Index, e.Msg)
}

// TaskError is returned by Run when a task started by UseFuture fails.
type TaskError struct {
	Kind string
	Err  error
	// Stack is the stack trace of the task if it panicked.
	Stack string
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task of %s failed: %v", e.Kind, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }
