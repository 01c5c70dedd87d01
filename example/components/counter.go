package components

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/felipeoliveiradev/statej"
	"github.com/felipeoliveiradev/statej/lib/dom"
)

// Counter is a self-contained click counter. The count and the step
// amount live in instance state; the step is editable through an input
// field.
type Counter struct {
	*statej.Instance

	increment statej.Binding
	reset     statej.Binding
	step      statej.Binding
}

// NewCounter creates a counter with its handlers registered. Mount it
// somewhere and click.
func NewCounter() *Counter {
	c := &Counter{}
	c.Instance = statej.New(
		statej.WithMaxHistory(5),
		statej.WithStorageKey("counter"),
		statej.WithTranslations(map[string]string{
			"counter.label": "Count",
			"counter.add":   "Add",
			"counter.reset": "Reset",
		}),
		statej.WithRenderFunc(c.render),
	)

	c.increment = c.RegisterHandler(func(*dom.Event) {
		step := asInt(c.Get("step"))
		if step == 0 {
			step = 1
		}
		c.SetState(statej.State{"count": asInt(c.Get("count")) + step})
	})
	c.reset = c.RegisterHandler(func(*dom.Event) {
		c.SetState(statej.State{"count": 0})
	})
	c.step = c.RegisterHandler(func(value string, _ *dom.Event) {
		step, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		c.SetState(statej.State{"step": step}, statej.Silent())
	})

	return c
}

func (c *Counter) render(in *statej.Instance) templ.Component {
	count := asInt(in.Get("count"))
	step := asInt(in.Get("step"))
	if step == 0 {
		step = 1
	}

	var sb strings.Builder
	sb.WriteString(`<p>`)
	sb.WriteString(html.EscapeString(in.Translate("counter.label")))
	sb.WriteString(`: <strong id="count">`)
	sb.WriteString(strconv.Itoa(count))
	sb.WriteString(`</strong></p>`)
	sb.WriteString(`<input id="step" type="number" value="` + strconv.Itoa(step) + `" `)
	sb.WriteString(statej.BindingAttr("input") + `="` + c.step.String() + `">`)
	sb.WriteString(`<button id="add" ` + statej.BindingAttr("click") + `="` + c.increment.String() + `">`)
	sb.WriteString(html.EscapeString(in.Translate("counter.add")))
	sb.WriteString(`</button>`)
	sb.WriteString(`<button id="reset" ` + statej.BindingAttr("click") + `="` + c.reset.String() + `">`)
	sb.WriteString(html.EscapeString(in.Translate("counter.reset")))
	sb.WriteString(`</button>`)

	markup := sb.String()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}

// asInt reads a state number that may have round-tripped through JSON.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}
