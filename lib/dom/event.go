package dom

import "strings"

// Event is a synchronous occurrence dispatched through the tree. Create
// one with NewEvent and fire it with Element.DispatchEvent; an Event value
// is good for a single dispatch.
type Event struct {
	typ       string
	target    *Element
	current   *Element
	prevented bool
	stopped   bool
}

// NewEvent creates an event of the given type ("click", "input", ...).
func NewEvent(typ string) *Event {
	return &Event{typ: strings.ToLower(typ)}
}

// Type returns the event type.
func (ev *Event) Type() string { return ev.typ }

// Target returns the element the event was dispatched at.
func (ev *Event) Target() *Element { return ev.target }

// CurrentTarget returns the element whose listeners are currently being
// invoked, or nil outside dispatch.
func (ev *Event) CurrentTarget() *Element { return ev.current }

// PreventDefault marks the event's default action as suppressed.
func (ev *Event) PreventDefault() { ev.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.prevented }

// StopPropagation stops the event from bubbling past the current element.
// Remaining listeners on the current element still run.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Listener is the handle returned by AddEventListener, used to remove the
// registration later.
type Listener struct {
	event string
	fn    func(*Event)
}

// AddEventListener registers fn for events of the given type on this
// element and returns the removal handle.
func (e *Element) AddEventListener(event string, fn func(*Event)) *Listener {
	event = strings.ToLower(event)
	l := &Listener{event: event, fn: fn}
	if e.listeners == nil {
		e.listeners = make(map[string][]*Listener)
	}
	e.listeners[event] = append(e.listeners[event], l)
	return l
}

// RemoveEventListener removes a previously added listener. Removing a
// listener twice, or one belonging to another element, is a no-op.
func (e *Element) RemoveEventListener(l *Listener) {
	if l == nil || e.listeners == nil {
		return
	}
	ls := e.listeners[l.event]
	for i, x := range ls {
		if x == l {
			e.listeners[l.event] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners registered on this element
// for the given event type.
func (e *Element) ListenerCount(event string) int {
	return len(e.listeners[strings.ToLower(event)])
}

// DispatchEvent fires the event at this element and bubbles it through the
// element's ancestors. Listeners registered on each element run in
// registration order; the listener list is snapshotted per element, so
// listeners added or removed during dispatch do not affect the pass.
// The return value is false when a listener called PreventDefault.
func (e *Element) DispatchEvent(ev *Event) bool {
	if ev == nil {
		return true
	}
	ev.target = e
	for cur := e; cur != nil; cur = cur.parent {
		ev.current = cur
		for _, l := range snapshot(cur.listeners[ev.typ]) {
			l.fn(ev)
		}
		if ev.stopped {
			break
		}
	}
	ev.current = nil
	return !ev.prevented
}

func snapshot(ls []*Listener) []*Listener {
	if len(ls) == 0 {
		return nil
	}
	out := make([]*Listener, len(ls))
	copy(out, ls)
	return out
}
