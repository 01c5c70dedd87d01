package storage

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Cookie jar limits, matching common browser per-domain constraints.
const (
	// MaxCookieSize caps the combined name and encoded value length of a
	// single entry.
	MaxCookieSize = 4096
	// MaxCookies caps the number of entries a jar holds.
	MaxCookies = 180
)

// CookieJar is a Store with document.cookie semantics: values are encoded
// markup-safe, entries are size- and count-capped, and entries may expire.
// Entries written through Set never expire; use SetCookie for expiring ones.
type CookieJar struct {
	mu      sync.RWMutex
	entries map[string]cookieEntry
}

type cookieEntry struct {
	value   string    // base64, cookie-safe
	expires time.Time // zero means no expiry
}

// NewCookieJar creates an empty jar.
func NewCookieJar() *CookieJar {
	return &CookieJar{entries: make(map[string]cookieEntry)}
}

// Get returns the blob stored under key. Expired entries are absent.
func (j *CookieJar) Get(key string) ([]byte, bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	e, ok := j.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(time.Now()) {
		delete(j.entries, key)
		return nil, false, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(e.value)
	if err != nil {
		return nil, false, fmt.Errorf("storage: cookie %q: %w", key, err)
	}
	return raw, true, nil
}

// Set stores value under key with no expiry.
func (j *CookieJar) Set(key string, value []byte) error {
	return j.set(key, base64.RawURLEncoding.EncodeToString(value), time.Time{})
}

// Delete removes key from the jar.
func (j *CookieJar) Delete(key string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.entries, key)
	return nil
}

// SetCookie stores an entry from an http.Cookie, honoring its Expires
// field. The cookie value must already be cookie-safe.
func (j *CookieJar) SetCookie(c *http.Cookie) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("storage: set cookie: missing name")
	}
	return j.set(c.Name, c.Value, c.Expires)
}

// Cookies returns the live entries as http cookies, for handing the jar's
// contents to an HTTP response or client jar.
func (j *CookieJar) Cookies() []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()

	now := time.Now()
	out := make([]*http.Cookie, 0, len(j.entries))
	for name, e := range j.entries {
		if e.expired(now) {
			continue
		}
		out = append(out, &http.Cookie{Name: name, Value: e.value, Expires: e.expires})
	}
	return out
}

// Len returns the number of live entries.
func (j *CookieJar) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	now := time.Now()
	n := 0
	for _, e := range j.entries {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

func (j *CookieJar) set(key, encoded string, expires time.Time) error {
	if len(key)+len(encoded) > MaxCookieSize {
		return fmt.Errorf("storage: cookie %q: %w", key, ErrValueTooLarge)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.entries[key]; !ok && len(j.entries) >= MaxCookies {
		j.evictExpired()
		if len(j.entries) >= MaxCookies {
			return fmt.Errorf("storage: cookie %q: %w", key, ErrQuotaExceeded)
		}
	}
	j.entries[key] = cookieEntry{value: encoded, expires: expires}
	return nil
}

// evictExpired drops expired entries. Caller holds the lock.
func (j *CookieJar) evictExpired() {
	now := time.Now()
	for name, e := range j.entries {
		if e.expired(now) {
			delete(j.entries, name)
		}
	}
}

func (e cookieEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && e.expires.Before(now)
}
