package backnav

import (
	"errors"
	"slices"
)

// ErrNotSubscribed is returned when removing a listener twice
var ErrNotSubscribed = errors.New("listener is not subscribed")

// Dispatcher is an in-process back Source. The terminal host calls Emit
// when the back key is pressed.
type Dispatcher struct {
	listeners map[int]func()
	nextID    int
}

var _ Source = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher with no listeners
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[int]func())}
}

type dispatcherSub struct {
	d  *Dispatcher
	id int
}

func (s dispatcherSub) Remove() error {
	if _, ok := s.d.listeners[s.id]; !ok {
		return ErrNotSubscribed
	}
	delete(s.d.listeners, s.id)
	return nil
}

// AddListener registers fn for back signals
func (d *Dispatcher) AddListener(fn func()) (Subscription, error) {
	id := d.nextID
	d.nextID++
	d.listeners[id] = fn
	return dispatcherSub{d: d, id: id}, nil
}

// Emit delivers one back signal to the listeners registered when it was
// called. Listeners added during delivery wait for the next signal.
// Returns the number of listeners invoked.
func (d *Dispatcher) Emit() int {
	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	invoked := 0
	for _, id := range ids {
		if fn, ok := d.listeners[id]; ok {
			fn()
			invoked++
		}
	}
	return invoked
}

// Listeners returns the number of registered listeners
func (d *Dispatcher) Listeners() int {
	return len(d.listeners)
}
