package statej

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/a-h/templ"

	"github.com/felipeoliveiradev/statej/lib/storage"
)

func TestBroadcasterSetNotifiesListeners(t *testing.T) {
	b := NewBroadcaster(storage.NewMemory())

	var calls []State
	b.Subscribe(func(values State) error {
		calls = append(calls, values)
		return nil
	})

	if err := b.Set("a", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("listener invoked %d times, want 1", len(calls))
	}
	if got := calls[0]["a"]; got != 1 {
		t.Errorf("listener received a = %v, want 1", got)
	}
	if got := b.Get("a"); got != 1 {
		t.Errorf("Get(a) = %v, want 1", got)
	}
}

func TestBroadcasterRejectsEmptyKey(t *testing.T) {
	b := NewBroadcaster(storage.NewMemory())

	invoked := false
	b.Subscribe(func(State) error {
		invoked = true
		return nil
	})

	err := b.Set("", "value")
	if !IsInvalidArgument(err) {
		t.Errorf("Set(\"\") error = %v, want invalid argument", err)
	}
	if invoked {
		t.Error("listener invoked for a rejected write")
	}
	if got := b.Values(); len(got) != 0 {
		t.Errorf("Values() = %v after rejected write, want empty", got)
	}
}

func TestBroadcasterContainsListenerFailures(t *testing.T) {
	b := NewBroadcaster(storage.NewMemory())

	var logged []string
	b.Logger = LoggerFunc(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})

	var errored, panicked, quiet int
	b.Subscribe(func(State) error {
		errored++
		return errors.New("listener failed")
	})
	b.Subscribe(func(State) error {
		panicked++
		panic("listener panicked")
	})
	b.Subscribe(func(State) error {
		quiet++
		return nil
	})

	if err := b.Set("a", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if errored != 1 || panicked != 1 || quiet != 1 {
		t.Errorf("listener invocations = (%d, %d, %d), want each exactly once", errored, panicked, quiet)
	}
	if len(logged) != 2 {
		t.Errorf("logged %d failures, want 2: %v", len(logged), logged)
	}
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	b := NewBroadcaster(storage.NewMemory())

	calls := 0
	sub := b.Subscribe(func(State) error {
		calls++
		return nil
	})

	if err := b.Set("a", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	b.Unsubscribe(sub)
	if err := b.Set("a", 2); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("listener invoked %d times, want 1", calls)
	}

	// Repeated and nil removals are harmless.
	b.Unsubscribe(sub)
	b.Unsubscribe(nil)
}

func TestBroadcasterPersistsBeforeNotifying(t *testing.T) {
	store := storage.NewMemory()
	b := NewBroadcaster(store)

	var seenInListener State
	b.Subscribe(func(State) error {
		raw, ok, err := store.Get(GlobalStateKey)
		if err != nil || !ok {
			return fmt.Errorf("mapping not persisted yet: (ok=%v, err=%v)", ok, err)
		}
		return json.Unmarshal(raw, &seenInListener)
	})

	if err := b.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := seenInListener["theme"]; got != "dark" {
		t.Errorf("persisted theme at notification time = %v, want %q", got, "dark")
	}

	raw, ok, err := store.Get(GlobalStateKey)
	if err != nil || !ok {
		t.Fatalf("persisted mapping missing: (ok=%v, err=%v)", ok, err)
	}
	var vals State
	if err := json.Unmarshal(raw, &vals); err != nil {
		t.Fatalf("persisted mapping unmarshal error = %v", err)
	}
	if !reflect.DeepEqual(vals, State{"theme": "dark"}) {
		t.Errorf("persisted mapping = %v, want {theme: dark}", vals)
	}
}

func TestNewBroadcasterHydratesFromStore(t *testing.T) {
	store := storage.NewMemory()
	if err := store.Set(GlobalStateKey, []byte(`{"theme":"dark","count":3}`)); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	b := NewBroadcaster(store)
	if got := b.Get("theme"); got != "dark" {
		t.Errorf("Get(theme) = %v, want %q", got, "dark")
	}
	if got := b.Get("count"); got != float64(3) {
		t.Errorf("Get(count) = %v, want 3", got)
	}
}

func TestNewBroadcasterIgnoresMalformedData(t *testing.T) {
	store := storage.NewMemory()
	if err := store.Set(GlobalStateKey, []byte(`{not json`)); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	b := NewBroadcaster(store)
	if got := b.Values(); len(got) != 0 {
		t.Errorf("Values() = %v from malformed data, want empty", got)
	}
}

func TestGlobalStateRerendersSubscriber(t *testing.T) {
	h := mustHarness(t, `<div id="a"></div><div id="b"></div>`)

	observer := h.New(
		WithGlobalState("theme"),
		WithRenderFunc(func(in *Instance) templ.Component {
			return htmlCompf(`<span>%v</span>`, in.GlobalState("theme"))
		}),
	)
	if err := observer.Mount(h.Doc, "#a"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	publisher := h.New()
	if err := publisher.SetGlobalState("theme", "dark"); err != nil {
		t.Fatalf("SetGlobalState() error = %v", err)
	}

	if got := h.Doc.QuerySelector("#a").Text(); got != "dark" {
		t.Errorf("observer container = %q after broadcast, want %q", got, "dark")
	}
}

func TestGlobalKeyFilter(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)

	renders := 0
	inst := h.New(
		WithGlobalState("theme"),
		WithRenderFunc(func(in *Instance) templ.Component {
			renders++
			return htmlComp(`<span>x</span>`)
		}),
	)
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	renders = 0

	if err := h.Broadcaster.Set("unrelated", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if renders != 0 {
		t.Errorf("render ran %d times for an unwatched key, want 0", renders)
	}

	if err := h.Broadcaster.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if renders != 1 {
		t.Errorf("render ran %d times for a watched key, want 1", renders)
	}

	// Re-publishing the same value is not a change.
	if err := h.Broadcaster.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if renders != 1 {
		t.Errorf("render ran %d times after unchanged re-publish, want 1", renders)
	}
}

func TestGlobalStateWithoutKeysObservesEveryWrite(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)

	renders := 0
	inst := h.New(
		WithGlobalState(),
		WithRenderFunc(func(in *Instance) templ.Component {
			renders++
			return htmlComp(`<span>x</span>`)
		}),
	)
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	renders = 0

	if err := h.Broadcaster.Set("anything", 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if renders != 1 {
		t.Errorf("render ran %d times, want 1 for any write", renders)
	}
}

func TestBroadcasterContainsSubscriberRenderFailure(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)

	inst := h.New(
		WithGlobalState(),
		WithRenderFunc(func(in *Instance) templ.Component {
			return failingComp(errors.New("boom"))
		}),
	)
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	// The subscriber's render failure stays inside the broadcast.
	if err := h.Broadcaster.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got := h.Broadcaster.Get("theme"); got != "dark" {
		t.Errorf("Get(theme) = %v, want %q", got, "dark")
	}
}

func TestDestroyedInstanceStopsObserving(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)

	renders := 0
	inst := h.New(
		WithGlobalState(),
		WithRenderFunc(func(in *Instance) templ.Component {
			renders++
			return htmlComp(`<span>x</span>`)
		}),
	)
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	inst.Destroy()
	renders = 0

	if err := h.Broadcaster.Set("theme", "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if renders != 0 {
		t.Errorf("destroyed instance rendered %d times, want 0", renders)
	}
}
