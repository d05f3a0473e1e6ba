// Package schedule runs delayed callbacks on the caller's event loop.
//
// Nothing here starts goroutines. Time only moves when the owner calls
// Advance, which the terminal host does from its tick message and tests do
// directly, so every callback runs on the same goroutine as the code that
// scheduled it.
package schedule

import (
	"sort"
	"time"
)

// Scheduler arms one-shot callbacks.
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
}

// Handle cancels a scheduled callback.
type Handle interface {
	// Cancel stops the callback. It reports false if the callback already
	// fired or was cancelled before.
	Cancel() bool
}

type task struct {
	due   time.Time
	seq   uint64
	fn    func()
	queue *Queue
	done  bool
}

func (t *task) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	t.queue.remove(t)
	return true
}

// Queue is a manually clocked timer queue.
type Queue struct {
	now   time.Time
	seq   uint64
	tasks []*task
}

var _ Scheduler = (*Queue)(nil)

// NewQueue creates a queue whose clock starts at start
func NewQueue(start time.Time) *Queue {
	return &Queue{now: start}
}

// Now returns the queue's current time
func (q *Queue) Now() time.Time {
	return q.now
}

// Pending returns the number of armed callbacks
func (q *Queue) Pending() int {
	return len(q.tasks)
}

// After arms fn to run once the clock reaches Now()+d.
// A non-positive d fires on the next Advance.
func (q *Queue) After(d time.Duration, fn func()) Handle {
	q.seq++
	t := &task{due: q.now.Add(d), seq: q.seq, fn: fn, queue: q}
	q.tasks = append(q.tasks, t)
	return t
}

// Advance moves the clock to now and runs every callback that became due,
// in deadline order (ties in scheduling order). Callbacks armed while
// advancing run in the same call if they are already due. A time before
// the current clock is ignored. Returns the number of callbacks run.
func (q *Queue) Advance(now time.Time) int {
	if now.Before(q.now) {
		now = q.now
	}

	fired := 0
	for {
		next := q.nextDue(now)
		if next == nil {
			break
		}
		q.remove(next)
		next.done = true
		if next.due.After(q.now) {
			q.now = next.due
		}
		next.fn()
		fired++
	}
	q.now = now
	return fired
}

// AdvanceBy moves the clock forward by d
func (q *Queue) AdvanceBy(d time.Duration) int {
	return q.Advance(q.now.Add(d))
}

func (q *Queue) nextDue(now time.Time) *task {
	if len(q.tasks) == 0 {
		return nil
	}
	sort.SliceStable(q.tasks, func(i, j int) bool {
		a, b := q.tasks[i], q.tasks[j]
		if !a.due.Equal(b.due) {
			return a.due.Before(b.due)
		}
		return a.seq < b.seq
	})
	if q.tasks[0].due.After(now) {
		return nil
	}
	return q.tasks[0]
}

func (q *Queue) remove(t *task) {
	for i, other := range q.tasks {
		if other == t {
			q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
			return
		}
	}
}
