package schedule

import "time"

// Group tracks the callbacks one owner armed so they can be dropped together.
type Group struct {
	sched   Scheduler
	handles map[*groupHandle]struct{}
}

// NewGroup scopes callbacks armed through it to the returned group
func NewGroup(s Scheduler) *Group {
	return &Group{sched: s, handles: make(map[*groupHandle]struct{})}
}

type groupHandle struct {
	group *Group
	inner Handle
}

func (h *groupHandle) Cancel() bool {
	delete(h.group.handles, h)
	return h.inner.Cancel()
}

// After arms fn through the underlying scheduler and tracks it until it
// fires or is cancelled.
func (g *Group) After(d time.Duration, fn func()) Handle {
	h := &groupHandle{group: g}
	g.handles[h] = struct{}{}
	h.inner = g.sched.After(d, func() {
		delete(g.handles, h)
		fn()
	})
	return h
}

// CancelAll drops every pending callback in the group
func (g *Group) CancelAll() {
	for h := range g.handles {
		h.inner.Cancel()
	}
	clear(g.handles)
}

// Len returns the number of pending callbacks in the group
func (g *Group) Len() int {
	return len(g.handles)
}
