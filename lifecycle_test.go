package statej

import (
	"testing"

	"github.com/a-h/templ"

	"github.com/felipeoliveiradev/statej/lib/dom"
)

func TestMountMissingContainer(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)
	inst := h.New()

	err := inst.Mount(h.Doc, "#missing")
	if !IsNotFound(err) {
		t.Errorf("Mount(#missing) error = %v, want not found", err)
	}
	if inst.Mounted() {
		t.Error("instance mounted after a failed mount")
	}
}

func TestMountTagsContainer(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)
	inst := h.New()

	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if !inst.Mounted() {
		t.Error("Mounted() = false after mount")
	}
	if got := h.Doc.QuerySelector("#app").GetAttribute(InstanceAttr); got != inst.ID() {
		t.Errorf("container %s = %q, want %q", InstanceAttr, got, inst.ID())
	}
}

func TestPostMountRunsOnceAtMount(t *testing.T) {
	tests := []struct {
		name   string
		render RenderFunc
	}{
		{"with render func", func(in *Instance) templ.Component { return htmlComp(`<span>x</span>`) }},
		{"without render func", nil},
		{"nil component", func(in *Instance) templ.Component { return nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mustHarness(t, `<div id="app"></div>`)

			hooks := 0
			opts := []Option{WithPostMount(func(in *Instance) { hooks++ })}
			if tt.render != nil {
				opts = append(opts, WithRenderFunc(tt.render))
			}
			inst := h.New(opts...)

			if err := inst.Mount(h.Doc, "#app"); err != nil {
				t.Fatalf("Mount() error = %v", err)
			}
			if hooks != 1 {
				t.Errorf("post-mount hook ran %d times, want 1", hooks)
			}
		})
	}
}

func TestPostMountRunsPerRender(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)

	hooks := 0
	inst := h.New(
		WithRenderFunc(func(in *Instance) templ.Component { return htmlComp(`<span>x</span>`) }),
		WithPostMount(func(in *Instance) { hooks++ }),
	)
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := inst.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if hooks != 2 {
		t.Errorf("post-mount hook ran %d times after mount+render, want 2", hooks)
	}
}

func TestRemountRetargets(t *testing.T) {
	h := mustHarness(t, `<div id="a"></div><div id="b"></div>`)
	inst := h.New()

	if err := inst.Mount(h.Doc, "#a"); err != nil {
		t.Fatalf("Mount(#a) error = %v", err)
	}
	if err := inst.Mount(h.Doc, "#b"); err != nil {
		t.Fatalf("Mount(#b) error = %v", err)
	}

	if h.Doc.QuerySelector("#a").HasAttribute(InstanceAttr) {
		t.Error("previous container still tagged after re-mount")
	}
	if got := h.Doc.QuerySelector("#b").GetAttribute(InstanceAttr); got != inst.ID() {
		t.Errorf("new container %s = %q, want %q", InstanceAttr, got, inst.ID())
	}
}

func TestRemountKeepsSingleListener(t *testing.T) {
	h := mustHarness(t, `<div id="app"><button id="btn">go</button></div>`)

	clicks := 0
	inst := h.New()
	b := inst.RegisterHandler(func(*dom.Event) { clicks++ })
	h.Doc.QuerySelector("#btn").SetAttribute(BindingAttr("click"), b.String())

	// Pre-rendered markup, no render func: each mount scans the same
	// button. The second mount must replace the first listener, not stack
	// a second one.
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() again error = %v", err)
	}

	if n := h.Doc.QuerySelector("#btn").ListenerCount("click"); n != 1 {
		t.Fatalf("ListenerCount(click) = %d after re-mount, want 1", n)
	}
	if err := h.Click("#btn"); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if clicks != 1 {
		t.Errorf("handler invoked %d times for one click, want 1", clicks)
	}
}

func TestRemountDetachesOldContainerListeners(t *testing.T) {
	h := mustHarness(t, `<div id="a"><button id="old">go</button></div><div id="b"></div>`)

	clicks := 0
	inst := h.New()
	b := inst.RegisterHandler(func(*dom.Event) { clicks++ })
	h.Doc.QuerySelector("#old").SetAttribute(BindingAttr("click"), b.String())

	if err := inst.Mount(h.Doc, "#a"); err != nil {
		t.Fatalf("Mount(#a) error = %v", err)
	}
	if err := inst.Mount(h.Doc, "#b"); err != nil {
		t.Fatalf("Mount(#b) error = %v", err)
	}

	if n := h.Doc.QuerySelector("#old").ListenerCount("click"); n != 0 {
		t.Errorf("ListenerCount(click) = %d on the abandoned container, want 0", n)
	}
	if err := h.Click("#old"); err != nil {
		t.Fatalf("Click() error = %v", err)
	}
	if clicks != 0 {
		t.Errorf("handler invoked %d times from the abandoned container, want 0", clicks)
	}
}

func TestRenderWhileUnmounted(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)
	inst := h.New(WithRenderFunc(func(in *Instance) templ.Component {
		return htmlComp(`<span>x</span>`)
	}))

	if err := inst.Render(); err != nil {
		t.Errorf("Render() while unmounted = %v, want nil", err)
	}
}

func TestRenderNilComponentLeavesMarkup(t *testing.T) {
	h := mustHarness(t, `<div id="app"><em>keep</em></div>`)
	inst := h.New(WithRenderFunc(func(in *Instance) templ.Component { return nil }))

	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := inst.Render(); err != nil {
		t.Errorf("Render() error = %v", err)
	}
	if got := h.Doc.QuerySelector("#app").Text(); got != "keep" {
		t.Errorf("container text = %q, want %q", got, "keep")
	}
}

func TestRenderFuncPanicContained(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)

	var contexts []string
	inst := h.New(
		WithRenderFunc(func(in *Instance) templ.Component { panic("render exploded") }),
		WithErrorHandler(func(err error, context string) { contexts = append(contexts, context) }),
	)

	// The initial render failure never fails the mount.
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	err := inst.Render()
	if !IsRenderFailure(err) {
		t.Errorf("Render() error = %v, want render failure", err)
	}
	if len(contexts) == 0 || contexts[len(contexts)-1] != "render" {
		t.Errorf("error handler contexts = %v, want trailing render", contexts)
	}
}

func TestPostMountPanicContained(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)

	var contexts []string
	inst := h.New(
		WithPostMount(func(in *Instance) { panic("hook exploded") }),
		WithErrorHandler(func(err error, context string) { contexts = append(contexts, context) }),
	)

	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if len(contexts) != 1 || contexts[0] != "render" {
		t.Errorf("error handler contexts = %v, want [render]", contexts)
	}
}

func TestDestroy(t *testing.T) {
	h := mustHarness(t, `<div id="app"></div>`)
	inst := h.New(WithRenderFunc(func(in *Instance) templ.Component {
		return htmlCompf(`<span>%v</span>`, in.Get("count"))
	}))
	if err := inst.Mount(h.Doc, "#app"); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := inst.SetState(State{"count": 1}); err != nil {
		t.Fatalf("SetState() error = %v", err)
	}

	inst.Destroy()

	if inst.Mounted() {
		t.Error("Mounted() = true after destroy")
	}
	if h.Doc.QuerySelector("#app").HasAttribute(InstanceAttr) {
		t.Error("container still tagged after destroy")
	}
	if h.Registry.Get(inst.ID()) != nil {
		t.Error("instance still routed after destroy")
	}

	// The final flush leaves the snapshot behind.
	if _, ok, _ := h.Store.Get(inst.StorageKey()); !ok {
		t.Error("persisted snapshot dropped by destroy")
	}

	inst.Destroy() // repeat is harmless
}
