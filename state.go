package statej

// State is an instance's key/value state mapping. Values are arbitrary;
// top-level keys are the unit of merging and of history snapshots.
type State map[string]any

// copyState returns a shallow copy. A nil state copies to an empty map.
func copyState(s State) State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// SetOption adjusts a single SetState call.
type SetOption func(*setOptions)

type setOptions struct {
	silent bool
}

// Silent suppresses the render step of a SetState call. Persistence is
// unaffected and still runs.
func Silent() SetOption {
	return func(o *setOptions) { o.silent = true }
}

// SetState merges partial into the instance state with shallow key
// overwrite semantics: each top-level key in partial replaces the
// corresponding key, and no deep merging is performed.
//
// The pre-mutation state is snapshotted onto the history log first, then
// the merge applies, then the instance re-renders unless Silent was
// passed, and state is persisted regardless of the render outcome.
//
// A render failure is returned (wrapped in ErrRenderFailed) after having
// been reported through the diagnostics channels; the mutation, history
// push, and persistence have already taken effect and are not rolled back.
func (in *Instance) SetState(partial State, opts ...SetOption) error {
	var so setOptions
	for _, o := range opts {
		o(&so)
	}

	in.history.push(copyState(in.state))
	for k, v := range partial {
		in.state[k] = v
	}

	var renderErr error
	if !so.silent {
		renderErr = in.Render()
	}
	in.PersistState()
	return renderErr
}

// State returns a shallow copy of the full state mapping. Before any
// mutation it is an empty map, never nil.
func (in *Instance) State() State {
	return copyState(in.state)
}

// Get returns the value stored under key, or nil when the key is absent.
func (in *Instance) Get(key string) any {
	return in.state[key]
}

// History returns copies of the retained pre-mutation snapshots, oldest
// first. Its length never exceeds the configured history limit.
func (in *Instance) History() []State {
	return in.history.snapshots()
}

// ClearHistory drops all retained snapshots.
func (in *Instance) ClearHistory() {
	in.history.clear()
}
