package components

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/felipeoliveiradev/statej"
	"github.com/felipeoliveiradev/statej/lib/dom"
)

// ThemeToggle publishes the shared "theme" value. It never reads its own
// instance state; the theme lives in global state so any widget can
// observe it.
type ThemeToggle struct {
	*statej.Instance

	toggle statej.Binding
}

// NewThemeToggle creates the toggle button.
func NewThemeToggle() *ThemeToggle {
	t := &ThemeToggle{}
	t.Instance = statej.New(statej.WithRenderFunc(t.render))

	t.toggle = t.RegisterHandler(func(*dom.Event) {
		next := "dark"
		if current, _ := t.GlobalState("theme").(string); current == "dark" {
			next = "light"
		}
		t.SetGlobalState("theme", next)
	})

	return t
}

func (t *ThemeToggle) render(in *statej.Instance) templ.Component {
	markup := `<button id="toggle" ` + statej.BindingAttr("click") + `="` + t.toggle.String() + `">Toggle theme</button>`
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}

// ThemeBadge mirrors the shared theme into its markup. It re-renders on
// every "theme" broadcast without touching the toggle.
type ThemeBadge struct {
	*statej.Instance
}

// NewThemeBadge creates the badge.
func NewThemeBadge() *ThemeBadge {
	b := &ThemeBadge{}
	b.Instance = statej.New(
		statej.WithGlobalState("theme"),
		statej.WithRenderFunc(b.render),
	)
	return b
}

func (b *ThemeBadge) render(in *statej.Instance) templ.Component {
	theme, _ := in.GlobalState("theme").(string)
	if theme == "" {
		theme = "light"
	}

	var sb strings.Builder
	sb.WriteString(`<span id="badge" class="badge badge-`)
	sb.WriteString(html.EscapeString(theme))
	sb.WriteString(`">`)
	sb.WriteString(html.EscapeString(theme))
	sb.WriteString(`</span>`)

	markup := sb.String()
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, markup)
		return err
	})
}
