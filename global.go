package statej

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/felipeoliveiradev/statej/lib/storage"
)

// GlobalStateKey is the fixed storage slot the shared mapping persists to.
const GlobalStateKey = "globalState"

// GlobalListener observes global-state broadcasts. It receives the entire
// mapping on every write, not just the changed key, and must tolerate
// unrelated-key noise. A returned error is contained and logged; it never
// stops the broadcast.
type GlobalListener func(values State) error

// Subscription identifies a registered listener for later removal.
type Subscription struct {
	fn GlobalListener
}

// Broadcaster is the shared-state service: a process-wide key/value
// mapping plus the listeners notified on every write. Instances point at
// one broadcaster (the package default unless injected), so tests can run
// against isolated instances.
//
// Writes persist before they notify, and notification is synchronous and
// sequential: a listener may itself write, re-entering the broadcaster.
// No recursion guard is provided; a listener that always re-triggers
// itself recurses until the stack runs out.
type Broadcaster struct {
	// Logger receives diagnostics for contained listener and persistence
	// failures. Defaults to silent.
	Logger Logger

	mu        sync.RWMutex
	store     storage.Store
	values    State
	listeners map[*Subscription]struct{}
}

// NewBroadcaster creates a broadcaster persisting to store. A previously
// persisted mapping under GlobalStateKey is loaded; malformed or absent
// data starts the mapping empty. A nil store disables persistence.
func NewBroadcaster(store storage.Store) *Broadcaster {
	b := &Broadcaster{
		store:     store,
		values:    State{},
		listeners: make(map[*Subscription]struct{}),
	}
	if store != nil {
		if raw, ok, err := store.Get(GlobalStateKey); err == nil && ok {
			var vals State
			if json.Unmarshal(raw, &vals) == nil && vals != nil {
				b.values = vals
			}
		}
	}
	return b
}

var defaultBroadcaster = NewBroadcaster(storage.DefaultLocal())

// DefaultBroadcaster returns the process-wide broadcaster backed by the
// persistent storage area.
func DefaultBroadcaster() *Broadcaster { return defaultBroadcaster }

// Set writes key into the shared mapping, persists the mapping, and then
// invokes every subscribed listener with a copy of it. An empty key fails
// with ErrInvalidKey and leaves the mapping unchanged.
//
// A failing listener, whether it returns an error or panics, is contained
// and logged, so every listener runs on every broadcast.
// Persistence failures are likewise logged and non-fatal.
func (b *Broadcaster) Set(key string, value any) error {
	if key == "" {
		return fmt.Errorf("set global state: %w", ErrInvalidKey)
	}

	b.mu.Lock()
	b.values[key] = value
	snapshot := copyState(b.values)
	subs := make([]*Subscription, 0, len(b.listeners))
	for sub := range b.listeners {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	b.persist(snapshot)
	for _, sub := range subs {
		b.notify(sub, snapshot)
	}
	return nil
}

// Get returns the value stored under key, or nil. A pure read.
func (b *Broadcaster) Get(key string) any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.values[key]
}

// Values returns a copy of the entire shared mapping.
func (b *Broadcaster) Values() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copyState(b.values)
}

// Subscribe registers a listener for every subsequent write and returns
// its removal handle.
func (b *Broadcaster) Subscribe(fn GlobalListener) *Subscription {
	sub := &Subscription{fn: fn}
	b.mu.Lock()
	b.listeners[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes a listener. Removing a nil or already-removed
// subscription is a no-op.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	delete(b.listeners, sub)
	b.mu.Unlock()
}

func (b *Broadcaster) persist(snapshot State) {
	if b.store == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		b.logf("persist global state: %v", err)
		return
	}
	if err := b.store.Set(GlobalStateKey, raw); err != nil {
		b.logf("persist global state: %v", err)
	}
}

// notify invokes one listener with panic and error containment.
func (b *Broadcaster) notify(sub *Subscription, snapshot State) {
	defer func() {
		if r := recover(); r != nil {
			b.logf("global listener panic: %v", r)
		}
	}()
	if err := sub.fn(snapshot); err != nil {
		b.logf("global listener: %v", err)
	}
}

func (b *Broadcaster) logf(format string, args ...any) {
	if b.Logger != nil {
		b.Logger.Logf(format, args...)
	}
}
