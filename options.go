package statej

import (
	"fmt"

	"github.com/felipeoliveiradev/statej/lib/storage"
)

// Storage kinds selectable with WithStorageType.
const (
	// StorageLocal persists to the process-wide persistent area.
	StorageLocal = "local"
	// StorageSession persists to the process-wide session area. The default.
	StorageSession = "session"
)

// DefaultMaxHistory is the snapshot limit instances start with.
const DefaultMaxHistory = 10

// ErrorHandler receives contained failures together with the step they
// came from: "render", "persist", or "dispatch".
type ErrorHandler func(err error, context string)

type config struct {
	language      string
	translations  map[string]string
	cookieStorage bool
	debug         bool
	maxHistory    int
	storageType   string
	storageKey    string
	errorHandler  ErrorHandler
	useGlobal     bool
	globalKeys    []string
	render        RenderFunc
	postMount     func(*Instance)
	logger        Logger
	store         storage.Store
	broadcaster   *Broadcaster
	registry      *Registry
}

// Option configures an instance at construction.
type Option func(*config)

// WithLanguage sets the instance's language tag, returned by Language.
func WithLanguage(lang string) Option {
	return func(c *config) { c.language = lang }
}

// WithTranslations sets the translation table used by Translate. The map
// is copied.
func WithTranslations(m map[string]string) Option {
	return func(c *config) {
		c.translations = make(map[string]string, len(m))
		for k, v := range m {
			c.translations[k] = v
		}
	}
}

// WithCookieStorage persists instance state to the cookie jar instead of a
// web storage area.
func WithCookieStorage() Option {
	return func(c *config) { c.cookieStorage = true }
}

// WithDebug enables diagnostic log emission.
func WithDebug() Option {
	return func(c *config) { c.debug = true }
}

// WithMaxHistory bounds the pre-mutation snapshot log. Zero keeps no
// history; negative values are treated as zero.
func WithMaxHistory(n int) Option {
	return func(c *config) { c.maxHistory = n }
}

// WithStorageType selects the storage area kind: StorageLocal or
// StorageSession. Panics on any other value.
func WithStorageType(kind string) Option {
	if kind != StorageLocal && kind != StorageSession {
		panic(fmt.Sprintf("statej: unknown storage type %q", kind))
	}
	return func(c *config) { c.storageType = kind }
}

// WithStorageKey overrides the storage slot instance state persists
// under. Instances sharing a key share the persisted snapshot.
func WithStorageKey(key string) Option {
	return func(c *config) { c.storageKey = key }
}

// WithErrorHandler installs the callback contained failures are reported
// to. It runs regardless of the debug flag.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *config) { c.errorHandler = fn }
}

// WithGlobalState opts the instance in to global-state notifications: on
// mount it subscribes a re-render trampoline to its broadcaster. With no
// keys, every broadcast re-renders; with keys, only broadcasts that change
// one of the named keys' values do.
func WithGlobalState(keys ...string) Option {
	return func(c *config) {
		c.useGlobal = true
		c.globalKeys = append([]string(nil), keys...)
	}
}

// WithRenderFunc sets the markup producer invoked by Render.
func WithRenderFunc(fn RenderFunc) Option {
	return func(c *config) { c.render = fn }
}

// WithPostMount sets a hook invoked after the instance mounts and after
// every render that replaced the container's markup.
func WithPostMount(fn func(*Instance)) Option {
	return func(c *config) { c.postMount = fn }
}

// WithLogger replaces the diagnostic sink. Emission stays gated by the
// debug flag.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithStore persists instance state to a specific store, overriding the
// storage type and cookie flags.
func WithStore(s storage.Store) Option {
	return func(c *config) { c.store = s }
}

// WithBroadcaster points the instance at a specific broadcaster instead of
// the package default.
func WithBroadcaster(b *Broadcaster) Option {
	return func(c *config) { c.broadcaster = b }
}

// WithRegistry registers the instance with a specific registry instead of
// the package default.
func WithRegistry(r *Registry) Option {
	return func(c *config) { c.registry = r }
}
