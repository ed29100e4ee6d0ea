// Package events carries the focus lifecycle events the engine emits on
// elements and a synchronous dispatcher that lets listeners veto them.
package events

import (
	"sync"
	"time"

	"github.com/odvcencio/spatialnav/pkg/geometry"
	"github.com/odvcencio/spatialnav/pkg/host"
)

// Name identifies a lifecycle event.
type Name string

const (
	WillMove       Name = "willmove"
	WillUnfocus    Name = "willunfocus"
	Unfocused      Name = "unfocused"
	WillFocus      Name = "willfocus"
	Focused        Name = "focused"
	NavigateFailed Name = "navigatefailed"
	EnterDown      Name = "enter-down"
	EnterUp        Name = "enter-up"
)

// Cause records what started a move.
type Cause string

const (
	CauseKeydown Cause = "keydown"
	CauseAPI     Cause = "api"
)

// Detail is the event payload. Which fields are set depends on the event.
type Detail struct {
	Direction       geometry.Direction
	SectionID       string
	NextElement     host.Element
	NextSectionID   string
	PreviousElement host.Element
	Native          bool
	Cause           Cause
}

// Event is delivered to listeners. Cancelable events may be vetoed with
// PreventDefault.
type Event struct {
	Name       Name
	Target     host.Element
	Detail     Detail
	Cancelable bool
	Timestamp  time.Time

	prevented bool
}

// PreventDefault vetoes a cancelable event. It is a no-op otherwise.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.prevented = true
	}
}

// DefaultPrevented reports whether a listener vetoed the event.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Listener handles one event.
type Listener func(*Event)

// Emitter is what the engine needs to publish events.
// Emit returns false when a listener vetoed a cancelable event.
type Emitter interface {
	Emit(target host.Element, name Name, detail Detail, cancelable bool) bool
}

// Dispatcher delivers events synchronously to listeners registered on a
// specific element or on every element.
type Dispatcher struct {
	mu       sync.RWMutex
	byTarget map[host.Element][]subscription
	any      []subscription
	nextID   int
	now      func() time.Time
}

type subscription struct {
	id   int
	name Name
	fn   Listener
}

var _ Emitter = (*Dispatcher)(nil)

// NewDispatcher constructs an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		byTarget: make(map[host.Element][]subscription),
		now:      time.Now,
	}
}

// On registers fn for events called name on target. A nil target listens
// on every element. An empty name listens to every event. The returned
// func removes the listener.
func (d *Dispatcher) On(target host.Element, name Name, fn Listener) (off func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	sub := subscription{id: d.nextID, name: name, fn: fn}
	if target == nil {
		d.any = append(d.any, sub)
	} else {
		d.byTarget[target] = append(d.byTarget[target], sub)
	}
	id := sub.id
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if target == nil {
			d.any = without(d.any, id)
			return
		}
		subs := without(d.byTarget[target], id)
		if len(subs) == 0 {
			delete(d.byTarget, target)
			return
		}
		d.byTarget[target] = subs
	}
}

// OnAny registers fn for every event on every element.
func (d *Dispatcher) OnAny(fn Listener) (off func()) {
	return d.On(nil, "", fn)
}

// Emit implements Emitter. Element listeners run before global ones, each
// in registration order. Listener panics propagate to the caller.
func (d *Dispatcher) Emit(target host.Element, name Name, detail Detail, cancelable bool) bool {
	d.mu.RLock()
	var subs []subscription
	if target != nil {
		subs = append(subs, d.byTarget[target]...)
	}
	subs = append(subs, d.any...)
	d.mu.RUnlock()

	ev := &Event{
		Name:       name,
		Target:     target,
		Detail:     detail,
		Cancelable: cancelable,
		Timestamp:  d.now(),
	}
	for _, sub := range subs {
		if sub.name != "" && sub.name != name {
			continue
		}
		sub.fn(ev)
	}
	return !ev.prevented
}

// Reset removes every listener.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byTarget = make(map[host.Element][]subscription)
	d.any = nil
}

func without(subs []subscription, id int) []subscription {
	out := subs[:0:0]
	for _, s := range subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	return out
}
