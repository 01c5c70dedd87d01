package statej

import (
	"fmt"
	"strings"

	"github.com/felipeoliveiradev/statej/lib/dom"
	"github.com/felipeoliveiradev/statej/lib/encoding"
)

// Attribute protocol. Containers are tagged with the instance id; any
// attribute named after the binding prefix plus an event type carries an
// encoded binding descriptor.
const (
	// InstanceAttr is the reserved container attribute holding the
	// instance identifier.
	InstanceAttr = "data-statej-id"

	bindingPrefix = "data-on-"
)

// changeEvents are the event classes whose handlers receive the target
// element's current value.
var changeEvents = map[string]bool{
	"change": true,
	"input":  true,
}

// ProcessEvents scans the mounted container's subtree for event-binding
// attributes and attaches a native listener per (element, event type)
// pair, forwarding to the dispatch entrypoint. Any listener this instance
// attached to the same pair in an earlier scan is removed first, so the
// scan is idempotent: after each render cycle exactly one native listener
// is bound per pair, no matter how often the markup re-rendered.
//
// Attributes whose value fails to decode are skipped and logged.
func (in *Instance) ProcessEvents() {
	if in.container == nil {
		return
	}

	fresh := make(map[*dom.Element]map[string]*dom.Listener)
	in.container.Walk(func(el *dom.Element) bool {
		for _, attr := range el.Attrs() {
			event, ok := strings.CutPrefix(attr.Name, bindingPrefix)
			if !ok || event == "" {
				continue
			}
			desc, err := encoding.Decode(attr.Value)
			if err != nil {
				in.logf("process events: skip %s on <%s>: %v", attr.Name, el.TagName(), err)
				continue
			}
			if prev := in.bound[el][event]; prev != nil {
				el.RemoveEventListener(prev)
			}
			l := el.AddEventListener(event, in.forwarder(desc))
			if fresh[el] == nil {
				fresh[el] = make(map[string]*dom.Listener)
			}
			fresh[el][event] = l
		}
		return true
	})
	in.bound = fresh
}

// unbind detaches every native listener recorded by earlier scans and
// clears the ledger. Mount runs it when re-targeting, so the container an
// instance leaves keeps no live listeners and the next scan starts clean.
func (in *Instance) unbind() {
	for el, events := range in.bound {
		for _, l := range events {
			el.RemoveEventListener(l)
		}
	}
	in.bound = nil
}

// forwarder adapts a decoded descriptor to a native listener. Dispatch
// goes through the instance's registry: markup may carry bindings for
// other instances, and destroyed instances must fall out of routing.
func (in *Instance) forwarder(desc encoding.Descriptor) func(*dom.Event) {
	return func(evt *dom.Event) {
		in.cfg.registry.Dispatch(desc.Instance, desc.Handler, evt)
	}
}

// dispatch invokes a registered handler with the per-event-class argument
// rules: change-class handlers receive the target's current value, and
// submit-class events have their default suppressed before the handler
// runs. Unknown handler ids are a silent no-op. Handler panics are
// contained and reported under the "dispatch" context. Always returns
// false.
func (in *Instance) dispatch(handlerID string, evt *dom.Event) bool {
	h, ok := in.handlers[handlerID]
	if !ok {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			in.report(fmt.Errorf("statej: handler %s: %v", handlerID, r), "dispatch")
		}
	}()

	var value string
	if evt != nil {
		switch {
		case evt.Type() == "submit":
			evt.PreventDefault()
		case changeEvents[evt.Type()]:
			if t := evt.Target(); t != nil {
				value = t.Value()
			}
		}
	}
	h(value, evt)
	return false
}
