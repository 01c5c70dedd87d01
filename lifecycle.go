package statej

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/a-h/templ"

	"github.com/felipeoliveiradev/statej/lib/dom"
)

// Mount binds the instance to the first element matching selector,
// resolving container state for the unmounted → mounted transition. The
// container is tagged with InstanceAttr, the global-state trampoline is
// subscribed when the instance opted in, and an initial render runs. The
// post-mount hook fires exactly once here: through the render when it
// replaced markup, directly otherwise. Event bindings are scanned either
// way, so pre-rendered markup wires up without a render func.
//
// No matching element fails with ErrContainerNotFound and leaves the
// instance untouched. Initial render failures are contained and reported,
// never failing the mount. Mounting an already-mounted instance re-targets
// it; the previous container is untagged and its listeners detached first.
func (in *Instance) Mount(doc *dom.Document, selector string) error {
	el := doc.QuerySelector(selector)
	if el == nil {
		return fmt.Errorf("statej: mount %q: %w", selector, ErrContainerNotFound)
	}

	if in.container != nil {
		in.container.RemoveAttribute(InstanceAttr)
		in.unbind()
	}
	in.container = el
	el.SetAttribute(InstanceAttr, in.id)

	in.subscribeGlobal()

	replaced, _ := in.render()
	if !replaced {
		in.safePostMount()
		in.ProcessEvents()
	}
	return nil
}

// Render invokes the configured render func and, when it yields a
// component, replaces the container's markup, re-runs the post-mount hook,
// and re-scans for event bindings. A no-op while unmounted or without a
// render func; a nil component leaves the container alone.
//
// A panicking render func, a component render error, or unparseable markup
// is reported under the "render" context and returned wrapped in
// ErrRenderFailed. Applied state is never affected.
func (in *Instance) Render() error {
	_, err := in.render()
	return err
}

func (in *Instance) render() (replaced bool, err error) {
	if in.container == nil || in.cfg.render == nil {
		return false, nil
	}

	comp, err := in.produce()
	if err != nil {
		return false, in.failRender(err)
	}
	if comp == nil {
		return false, nil
	}

	var buf strings.Builder
	if err := comp.Render(context.Background(), &buf); err != nil {
		return false, in.failRender(err)
	}
	if err := in.container.SetInnerHTML(buf.String()); err != nil {
		return false, in.failRender(err)
	}

	in.safePostMount()
	in.ProcessEvents()
	return true, nil
}

// produce calls the render func with panic containment.
func (in *Instance) produce() (comp templ.Component, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render func panic: %v", r)
		}
	}()
	return in.cfg.render(in), nil
}

func (in *Instance) failRender(cause error) error {
	err := fmt.Errorf("%w: %v", ErrRenderFailed, cause)
	in.report(err, "render")
	return err
}

func (in *Instance) safePostMount() {
	if in.cfg.postMount == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			in.report(fmt.Errorf("statej: post-mount: %v", r), "render")
		}
	}()
	in.cfg.postMount(in)
}

// subscribeGlobal registers the instance's re-render trampoline with its
// broadcaster. Each instance creates at most one trampoline, so repeated
// mounts never double-subscribe.
func (in *Instance) subscribeGlobal() {
	if !in.cfg.useGlobal || in.sub != nil {
		return
	}

	in.globalSeen = State{}
	for _, k := range in.cfg.globalKeys {
		in.globalSeen[k] = in.cfg.broadcaster.Get(k)
	}

	in.sub = in.cfg.broadcaster.Subscribe(func(values State) error {
		if !in.globalChanged(values) {
			return nil
		}
		_, err := in.render()
		return err
	})
}

// globalChanged reports whether a broadcast changed any watched key,
// updating the cached values. With no watched keys every broadcast counts.
func (in *Instance) globalChanged(values State) bool {
	if len(in.cfg.globalKeys) == 0 {
		return true
	}
	changed := false
	for _, k := range in.cfg.globalKeys {
		v := values[k]
		if !reflect.DeepEqual(in.globalSeen[k], v) {
			in.globalSeen[k] = v
			changed = true
		}
	}
	return changed
}

// Destroy tears the instance down: the container is untagged and unlinked,
// the trampoline unsubscribed, state flushed to storage one final time,
// and the instance removed from dispatch routing. The persisted snapshot
// stays in storage until overwritten or cleared externally. Destroy is
// terminal; calling it again is harmless, other operations afterward are
// undefined.
func (in *Instance) Destroy() {
	if in.container != nil {
		in.container.RemoveAttribute(InstanceAttr)
		in.container = nil
	}
	if in.sub != nil {
		in.cfg.broadcaster.Unsubscribe(in.sub)
		in.sub = nil
	}
	in.PersistState()
	in.cfg.registry.remove(in.id)
	in.handlers = nil
	in.bound = nil
	in.globalSeen = nil
}
