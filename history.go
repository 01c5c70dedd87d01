package statej

// history is a bounded FIFO log of pre-mutation state snapshots. The
// oldest snapshot is evicted before a push at capacity, so the log never
// holds more than limit entries, even transiently.
type history struct {
	entries []State
	limit   int
}

func newHistory(limit int) *history {
	if limit < 0 {
		limit = 0
	}
	return &history{limit: limit}
}

// push appends a snapshot, evicting the oldest entry at capacity. The
// caller passes an already-copied snapshot; push does not copy.
func (h *history) push(snapshot State) {
	if h.limit == 0 {
		return
	}
	if len(h.entries) >= h.limit {
		copy(h.entries, h.entries[1:])
		h.entries[len(h.entries)-1] = snapshot
		return
	}
	h.entries = append(h.entries, snapshot)
}

// snapshots returns defensive copies of the log, oldest first.
func (h *history) snapshots() []State {
	out := make([]State, len(h.entries))
	for i, s := range h.entries {
		out[i] = copyState(s)
	}
	return out
}

func (h *history) clear() {
	h.entries = nil
}
