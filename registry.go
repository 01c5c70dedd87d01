package statej

import (
	"sync"

	"github.com/felipeoliveiradev/statej/lib/dom"
)

// Registry maps instance ids to live instances. It is the reverse-lookup
// path event dispatch uses to route (instanceId, handlerId) pairs, instead
// of attaching instance references onto container nodes. Instances join at
// construction and leave on Destroy.
type Registry struct {
	mu        sync.RWMutex
	instances map[string]*Instance
}

// NewRegistry creates an empty registry. Most callers use the package
// default; tests inject isolated registries.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]*Instance)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry instances join when
// none is injected.
func DefaultRegistry() *Registry { return defaultRegistry }

// Get returns the live instance with the given id, or nil.
func (r *Registry) Get(id string) *Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.instances[id]
}

// Dispatch routes a native event to the handler registered under
// (instanceID, handlerID). Unknown ids make it a silent no-op. The return
// value is always false regardless of outcome: the value an inline
// attribute handler returns to suppress default anchor behavior.
func (r *Registry) Dispatch(instanceID, handlerID string, evt *dom.Event) bool {
	in := r.Get(instanceID)
	if in == nil {
		return false
	}
	return in.dispatch(handlerID, evt)
}

// Dispatch is the process-wide dispatch entrypoint over the default
// registry. Markup-driven hosts call it with the ids decoded from an
// event-binding attribute.
func Dispatch(instanceID, handlerID string, evt *dom.Event) bool {
	return defaultRegistry.Dispatch(instanceID, handlerID, evt)
}

func (r *Registry) add(in *Instance) {
	r.mu.Lock()
	r.instances[in.id] = in
	r.mu.Unlock()
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	delete(r.instances, id)
	r.mu.Unlock()
}
