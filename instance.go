package statej

import (
	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/felipeoliveiradev/statej/lib/dom"
	"github.com/felipeoliveiradev/statej/lib/storage"
)

// RenderFunc produces an instance's markup. It runs on every non-silent
// mutation and on every relevant global-state broadcast, and receives the
// instance so it can read state, register handlers, and translate labels.
// Returning nil means "nothing to render" and leaves the container alone.
type RenderFunc func(in *Instance) templ.Component

// Instance is one independently configured state container, bound to at
// most one container element at a time.
//
// An instance is single-owner: its methods are meant to be called from one
// goroutine, the way a widget lives on one UI thread. The shared pieces it
// touches (registry, broadcaster, storage) are safe for concurrent use.
type Instance struct {
	id  string
	cfg config

	state    State
	history  *history
	handlers map[string]handlerFunc
	handlerN int

	container  *dom.Element
	sub        *Subscription
	globalSeen State
	bound      map[*dom.Element]map[string]*dom.Listener
}

// New creates an unmounted instance and registers it for dispatch.
// Configuration is fixed after construction.
func New(opts ...Option) *Instance {
	cfg := config{
		maxHistory:  DefaultMaxHistory,
		storageType: StorageSession,
	}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.broadcaster == nil {
		cfg.broadcaster = defaultBroadcaster
	}
	if cfg.registry == nil {
		cfg.registry = defaultRegistry
	}
	if cfg.store == nil {
		switch {
		case cfg.cookieStorage:
			cfg.store = storage.DefaultCookies()
		case cfg.storageType == StorageLocal:
			cfg.store = storage.DefaultLocal()
		default:
			cfg.store = storage.DefaultSession()
		}
	}
	if cfg.logger == nil {
		cfg.logger = stdLogger
	}

	in := &Instance{
		id:       uuid.NewString(),
		cfg:      cfg,
		state:    State{},
		history:  newHistory(cfg.maxHistory),
		handlers: make(map[string]handlerFunc),
	}
	if in.cfg.storageKey == "" {
		in.cfg.storageKey = StorageKeyPrefix + in.id
	}
	in.cfg.registry.add(in)
	return in
}

// ID returns the instance's opaque identifier.
func (in *Instance) ID() string { return in.id }

// Container returns the element the instance renders into, or nil while
// unmounted.
func (in *Instance) Container() *dom.Element { return in.container }

// Mounted reports whether the instance is bound to a container.
func (in *Instance) Mounted() bool { return in.container != nil }

// StorageKey returns the slot instance state persists under.
func (in *Instance) StorageKey() string { return in.cfg.storageKey }

// SetGlobalState writes key into the shared mapping through the instance's
// broadcaster. Any instance may publish, opted in to notifications or not.
func (in *Instance) SetGlobalState(key string, value any) error {
	return in.cfg.broadcaster.Set(key, value)
}

// GlobalState reads key from the shared mapping. A pure read.
func (in *Instance) GlobalState(key string) any {
	return in.cfg.broadcaster.Get(key)
}

// logf emits a diagnostic when debug is enabled.
func (in *Instance) logf(format string, args ...any) {
	if in.cfg.debug {
		in.cfg.logger.Logf(format, args...)
	}
}

// report routes a contained failure to the diagnostics log and the
// configured error handler. The handler runs regardless of the debug flag.
func (in *Instance) report(err error, context string) {
	in.logf("%s: %v", context, err)
	if in.cfg.errorHandler != nil {
		in.cfg.errorHandler(err, context)
	}
}
