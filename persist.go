package statej

import (
	"encoding/json"
	"fmt"
	"time"
)

// StorageKeyPrefix prefixes the default per-instance storage slot,
// "statej_storage_<instanceId>".
const StorageKeyPrefix = "statej_storage_"

// snapshotBlob is the persisted wire format: the state mapping plus the
// write time in epoch milliseconds.
type snapshotBlob struct {
	State     State `json:"state"`
	Timestamp int64 `json:"timestamp"`
}

// PersistState serializes the current state into the instance's storage
// slot. Failures (serialization errors, quota overruns, store errors)
// are reported under the "persist" context and are non-fatal: in-memory
// state stays valid and callers are never interrupted.
func (in *Instance) PersistState() {
	blob := snapshotBlob{State: in.state, Timestamp: time.Now().UnixMilli()}
	raw, err := json.Marshal(blob)
	if err != nil {
		in.report(fmt.Errorf("statej: persist %s: %w", in.cfg.storageKey, err), "persist")
		return
	}
	if err := in.cfg.store.Set(in.cfg.storageKey, raw); err != nil {
		in.report(fmt.Errorf("statej: persist %s: %w", in.cfg.storageKey, err), "persist")
	}
}

// LoadPersistedState restores state from the instance's storage slot,
// overwriting the in-memory mapping, and reports whether anything was
// restored. An absent slot, a read error, or malformed data restore
// nothing and leave state unchanged. Restoring pushes no history snapshot
// and triggers no render.
func (in *Instance) LoadPersistedState() bool {
	raw, ok, err := in.cfg.store.Get(in.cfg.storageKey)
	if err != nil {
		in.logf("restore %s: %v", in.cfg.storageKey, err)
		return false
	}
	if !ok {
		return false
	}

	var blob snapshotBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		in.logf("restore %s: malformed snapshot: %v", in.cfg.storageKey, err)
		return false
	}
	if blob.State == nil {
		return false
	}
	in.state = blob.State
	return true
}
