package statej

import (
	"fmt"

	"github.com/felipeoliveiradev/statej/lib/dom"
	"github.com/felipeoliveiradev/statej/lib/storage"
)

// Harness bundles an isolated document, registry, broadcaster, and storage
// area for exercising instances in tests without touching the package
// defaults.
type Harness struct {
	Doc         *dom.Document
	Registry    *Registry
	Broadcaster *Broadcaster
	Store       *storage.Memory
}

// NewHarness parses markup into a fresh document and wires isolated
// collaborators around it.
//
//	h, err := statej.NewHarness(`<div id="app"></div>`)
//	inst := h.New(statej.WithRenderFunc(render))
//	err = inst.Mount(h.Doc, "#app")
func NewHarness(markup string) (*Harness, error) {
	doc, err := dom.ParseDocument(markup)
	if err != nil {
		return nil, err
	}
	store := storage.NewMemory()
	return &Harness{
		Doc:         doc,
		Registry:    NewRegistry(),
		Broadcaster: NewBroadcaster(store),
		Store:       store,
	}, nil
}

// New creates an instance wired to the harness's registry, broadcaster,
// and store. Options passed in are applied after the wiring, so a test may
// still override any of it.
func (h *Harness) New(opts ...Option) *Instance {
	wired := []Option{
		WithRegistry(h.Registry),
		WithBroadcaster(h.Broadcaster),
		WithStore(h.Store),
	}
	return New(append(wired, opts...)...)
}

// Click dispatches a "click" event at the first element matching selector.
func (h *Harness) Click(selector string) error {
	return h.Fire(selector, "click")
}

// Input sets the value of the first element matching selector and
// dispatches an "input" event at it.
func (h *Harness) Input(selector, value string) error {
	el := h.Doc.QuerySelector(selector)
	if el == nil {
		return fmt.Errorf("statej: no element matches %q", selector)
	}
	el.SetValue(value)
	el.DispatchEvent(dom.NewEvent("input"))
	return nil
}

// Submit dispatches a "submit" event at the first element matching
// selector.
func (h *Harness) Submit(selector string) error {
	return h.Fire(selector, "submit")
}

// Fire dispatches an event of the given type at the first element matching
// selector.
func (h *Harness) Fire(selector, event string) error {
	el := h.Doc.QuerySelector(selector)
	if el == nil {
		return fmt.Errorf("statej: no element matches %q", selector)
	}
	el.DispatchEvent(dom.NewEvent(event))
	return nil
}
