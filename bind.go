package statej

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/felipeoliveiradev/statej/lib/dom"
	"github.com/felipeoliveiradev/statej/lib/encoding"
)

// handlerFunc is the normalized shape handlers are stored in. The value
// argument carries the target element's current value for change-class
// events and is empty otherwise.
type handlerFunc func(value string, evt *dom.Event)

// Binding routes a markup event attribute to a handler registered on an
// instance. Embed it in markup with Attr or String; the delegation router
// decodes it back during its scan.
type Binding struct {
	InstanceID string
	HandlerID  string
}

// RegisterHandler stores fn in the instance's handler table under a fresh
// handler id and returns the binding to embed in markup. Ids grow
// monotonically and are never reused within the instance's lifetime; the
// table is dropped only at Destroy.
//
// Supported handler shapes, detected at registration:
//
//	func(evt *dom.Event)
//	func(value string, evt *dom.Event)
//
// The two-argument shape receives the target element's value on
// change-class events ("change", "input") and an empty string otherwise.
// Panics on any other shape: a wiring mistake, not a runtime condition.
func (in *Instance) RegisterHandler(fn any) Binding {
	var h handlerFunc
	switch f := fn.(type) {
	case func(*dom.Event):
		h = func(_ string, evt *dom.Event) { f(evt) }
	case func(string, *dom.Event):
		h = f
	default:
		panic(fmt.Sprintf("statej: unsupported handler signature %T", fn))
	}

	in.handlerN++
	id := "h" + strconv.Itoa(in.handlerN)
	in.handlers[id] = h
	return Binding{InstanceID: in.id, HandlerID: id}
}

// String returns the encoded descriptor carried as the attribute value.
func (b Binding) String() string {
	return encoding.Encode(encoding.Descriptor{Instance: b.InstanceID, Handler: b.HandlerID})
}

// Attr returns the event-binding attribute for a templ template, e.g.
// b.Attr("click") yields {"data-on-click": <descriptor>}.
func (b Binding) Attr(event string) templ.Attributes {
	return templ.Attributes{BindingAttr(event): b.String()}
}

// BindingAttr returns the binding attribute name for an event type, for
// callers assembling markup by hand.
func BindingAttr(event string) string {
	return bindingPrefix + event
}
