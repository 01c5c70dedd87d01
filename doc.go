// Package statej provides a lightweight per-instance state container for
// browser-style rendered UI widgets: isolated key/value state with a
// bounded undo history, an optional shared state layer broadcasting
// changes across independent instances, persistence of state snapshots to
// a storage area, and delegated event binding that routes declarative
// markup attributes to handler functions registered on an instance.
//
// # Instances and State
//
// An Instance owns its state mapping and mutates it through SetState,
// which merges top-level keys with shallow overwrite semantics. Before
// every merge the pre-mutation state is snapshotted onto a bounded FIFO
// history log; after it, the instance re-renders (unless the mutation was
// Silent) and persists. Persistence always runs; silencing affects only
// the render step.
//
//	counter := statej.New(
//	    statej.WithMaxHistory(10),
//	    statej.WithRenderFunc(renderCounter),
//	)
//	if err := counter.Mount(doc, "#counter"); err != nil { ... }
//	counter.SetState(statej.State{"count": 1})
//
// # Global State
//
// A Broadcaster is the shared-state service: any instance may write to it
// through SetGlobalState, and every write persists and then notifies all
// subscribed listeners synchronously with the entire mapping. Instances
// created WithGlobalState subscribe a re-render trampoline at mount, so a
// write from one widget re-renders every opted-in widget. Listener
// failures are contained per listener, so one bad subscriber never starves
// the rest.
//
// Instances use the package-level default broadcaster unless one is
// injected with WithBroadcaster, which is how tests isolate themselves.
//
// # Event Binding
//
// RegisterHandler stores a handler function under a fresh instance-scoped
// id and returns a Binding. The binding encodes as an opaque descriptor in
// a data attribute (data-on-click, data-on-input, and so on) rather than
// as evaluatable code:
//
//	b := counter.RegisterHandler(func(evt *dom.Event) {
//	    counter.SetState(statej.State{"count": n + 1})
//	})
//	// in a templ template: <button { b.Attr("click")... }>+1</button>
//
// After every render, ProcessEvents re-scans the container's subtree and
// binds exactly one native listener per (element, event type) pair,
// re-render after re-render. Dispatch routes through the instance
// registry: change-class handlers receive the target's current value,
// submit-class events have their default suppressed first, and unknown
// ids are a silent no-op.
//
// # Persistence
//
// State persists as a JSON {state, timestamp} blob under
// "statej_storage_<instanceId>" (override with WithStorageKey) in the
// configured area: the session area by default, the persistent area with
// WithStorageType(StorageLocal), a cookie jar with WithCookieStorage, or
// any injected lib/storage Store. Persist failures are reported and
// non-fatal; LoadPersistedState restores a snapshot and treats absent or
// malformed data as nothing to restore.
//
// # Lifecycle
//
// Instances move unmounted → mounted → destroyed. Mount resolves a
// container by selector ("#id", ".class", or a tag name), tags it with the
// instance id, subscribes the trampoline, and renders once. Destroy
// untags the container, unsubscribes, flushes state to storage a final
// time, and drops the instance from dispatch routing; the persisted
// snapshot survives it.
//
// # Errors
//
// Caller-facing failures return sentinel errors: ErrInvalidKey for an
// empty global-state key, ErrContainerNotFound for an unresolved mount
// selector, and ErrRenderFailed wrapping render errors surfaced from
// SetState and Render. Best-effort instance steps (render, persistence,
// dispatch) contain their failures and report them to the WithErrorHandler
// callback and, when debug is enabled, the diagnostics log; listener
// failures are contained by the broadcaster and logged through its Logger
// field. A failed side-effect never corrupts applied state.
//
// # Concurrency
//
// All operations are synchronous end-to-end. An Instance belongs to one
// goroutine, the way a widget belongs to one UI thread; the registry,
// broadcaster, and stores it shares are safe for concurrent use. A global
// listener may itself write global state; notification is re-entrant,
// with no recursion guard.
package statej
