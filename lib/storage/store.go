// Package storage provides the key/value blob areas instance state is
// persisted into.
//
// A Store is a flat mapping from string keys to byte blobs, mirroring the
// web storage contract: Get reports absence without error, Set overwrites,
// Delete is idempotent. Three implementations ship with the package:
//
//   - Memory: a quota-bounded in-process area. Two package-level areas,
//     DefaultLocal and DefaultSession, back the "local" and "session"
//     storage kinds when no store is injected.
//   - File: one file per key under a directory, for state that should
//     survive the process.
//   - CookieJar: an area with browser cookie semantics (per-entry size
//     cap, entry-count cap, expiry) and an []*http.Cookie bridge.
//
// Stores are safe for concurrent use.
package storage

import "errors"

// Sentinel errors for storage operations.
var (
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	ErrValueTooLarge = errors.New("storage: value too large")
)

// Store is a flat key/value blob area.
type Store interface {
	// Get returns the blob stored under key. The second result reports
	// whether the key was present; absence is not an error.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key, overwriting any previous blob.
	Set(key string, value []byte) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
}

var (
	defaultLocal   = NewMemory()
	defaultSession = NewMemory()
	defaultCookies = NewCookieJar()
)

// DefaultLocal returns the process-wide persistent-scoped area.
func DefaultLocal() *Memory { return defaultLocal }

// DefaultSession returns the process-wide session-scoped area.
func DefaultSession() *Memory { return defaultSession }

// DefaultCookies returns the process-wide cookie jar.
func DefaultCookies() *CookieJar { return defaultCookies }
