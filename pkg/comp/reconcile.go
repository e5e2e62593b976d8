package comp

import (
	"src.retui.sh/pkg/layout"
	"src.retui.sh/pkg/term"
)

// instance is the persistent realization of an element.
type instance struct {
	kind      *Kind
	key       any
	component Component
	hooks     Hooks
	children  []*instance
	node      layout.Node
	life      *lifetime
}

func (s *session) newInstance(el Element) *instance {
	inst := &instance{
		kind: el.Kind, key: el.Key, component: el.Kind.New(),
		life: newLifetime(s.ctx),
	}
	inst.hooks = Hooks{inst: inst, s: s}
	return inst
}

type instanceKey struct {
	kind *Kind
	key  any
}

// Matches the elements with the old instances, and returns the instances for
// the elements after updating them. Keyed elements match an old instance with
// the same kind and key; other elements match the old instance at the same
// position if it has the same kind and no key. Old instances that are not
// matched are destroyed.
//
// If an update panics, the instances created so far are destroyed before the
// panic propagates, since they are not reachable from the tree yet.
func (s *session) reconcile(old []*instance, els []Element) []*instance {
	keyed := make(map[instanceKey]*instance)
	for _, inst := range old {
		if inst.key != nil {
			k := instanceKey{inst.kind, inst.key}
			if _, ok := keyed[k]; !ok {
				keyed[k] = inst
			}
		}
	}
	used := make(map[*instance]bool, len(old))
	insts := make([]*instance, 0, len(els))
	var created []*instance
	done := false
	defer func() {
		if !done {
			for _, inst := range created {
				inst.destroy()
			}
		}
	}()
	for i, el := range els {
		if el.Kind == nil {
			continue
		}
		var inst *instance
		if el.Key != nil {
			inst = keyed[instanceKey{el.Kind, el.Key}]
		} else if i < len(old) && old[i].key == nil && old[i].kind == el.Kind {
			inst = old[i]
		}
		if inst == nil || used[inst] {
			inst = s.newInstance(el)
			created = append(created, inst)
		}
		used[inst] = true
		insts = append(insts, inst)
		s.update(inst, el)
	}
	done = true
	for _, inst := range old {
		if !used[inst] {
			inst.destroy()
		}
	}
	return insts
}

func (s *session) update(inst *instance, el Element) {
	inst.node.Style = layout.Style{}
	inst.node.Measure = nil
	u := &Updater{inst: inst, s: s, children: el.Children}
	inst.hooks.begin()
	inst.component.Update(el.Props, &inst.hooks, u)
	inst.hooks.end()
	if !u.updatedChildren {
		u.UpdateChildren(nil, nil)
	}
}

// Destroys the instance and all its descendants. The tasks of the instances
// are cancelled, and their state cells and output handles stop working.
func (inst *instance) destroy() {
	for _, child := range inst.children {
		child.destroy()
	}
	inst.children = nil
	inst.life.end()
	for _, slot := range inst.hooks.slots {
		if o, ok := slot.(*outputSlot); ok {
			o.stdout.Close()
			o.stderr.Close()
		}
	}
}

func (inst *instance) render(buf *term.Buffer) {
	if inst.node.Style.Display == layout.None {
		return
	}
	if r, ok := inst.component.(Renderer); ok {
		l := inst.node.Layout
		r.Render(&Canvas{buf, l.X, l.Y, l.Width, l.Height})
	}
	for _, child := range inst.children {
		child.render(buf)
	}
}

// Polls the instance and all its descendants, and reports whether any of them
// has changed.
func (inst *instance) pollChange(w Waker) bool {
	changed := false
	if p, ok := inst.component.(ChangePoller); ok {
		changed = p.PollChange(w)
	}
	for _, child := range inst.children {
		// Every instance is polled, so that all of them can arrange to be
		// woken up.
		if child.pollChange(w) {
			changed = true
		}
	}
	return changed
}
