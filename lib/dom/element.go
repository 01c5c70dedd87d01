package dom

import "strings"

// Element is a tree node with a tag name, ordered attributes, children,
// and event listeners.
type Element struct {
	tag       string
	attrs     []Attr
	children  []Node
	parent    *Element
	listeners map[string][]*Listener
}

// NewElement creates a detached element. Tag names are lowercased.
func NewElement(tag string) *Element {
	return &Element{tag: strings.ToLower(tag)}
}

// TagName returns the element's lowercase tag name.
func (e *Element) TagName() string { return e.tag }

// Parent returns the element containing this one, or nil.
func (e *Element) Parent() *Element { return e.parent }

// GetAttribute returns the value of the named attribute, or "" when the
// attribute is absent.
func (e *Element) GetAttribute(name string) string {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// HasAttribute reports whether the named attribute is present.
func (e *Element) HasAttribute(name string) bool {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// SetAttribute sets the named attribute, replacing any previous value and
// preserving attribute order.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// RemoveAttribute removes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the element's attributes in document order.
func (e *Element) Attrs() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// ID returns the element's id attribute.
func (e *Element) ID() string { return e.GetAttribute("id") }

// Value returns the element's value attribute, the current value of form
// controls.
func (e *Element) Value() string { return e.GetAttribute("value") }

// SetValue sets the element's value attribute.
func (e *Element) SetValue(v string) { e.SetAttribute("value", v) }

// AppendChild adds a node as the element's last child, reparenting it.
func (e *Element) AppendChild(n Node) {
	switch c := n.(type) {
	case *Element:
		c.detach()
		c.parent = e
	case *Text:
		c.detach()
		c.parent = e
	default:
		return
	}
	e.children = append(e.children, n)
}

// RemoveChild removes a direct child node. Removing a non-child is a no-op.
func (e *Element) RemoveChild(n Node) {
	for i, c := range e.children {
		if c == n {
			e.children = append(e.children[:i], e.children[i+1:]...)
			switch c := n.(type) {
			case *Element:
				c.parent = nil
			case *Text:
				c.parent = nil
			}
			return
		}
	}
}

func (e *Element) detach() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

func (t *Text) detach() {
	if t.parent != nil {
		t.parent.RemoveChild(t)
	}
}

// ChildNodes returns a copy of the element's child nodes.
func (e *Element) ChildNodes() []Node {
	out := make([]Node, len(e.children))
	copy(out, e.children)
	return out
}

// Children returns the element's element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(data string) {
	e.children = nil
	e.AppendChild(NewText(data))
}

// Text returns the concatenated text content of the subtree.
func (e *Element) Text() string {
	var b strings.Builder
	e.appendText(&b)
	return b.String()
}

func (e *Element) appendText(b *strings.Builder) {
	for _, c := range e.children {
		switch c := c.(type) {
		case *Text:
			b.WriteString(c.data)
		case *Element:
			c.appendText(b)
		}
	}
}

// Walk visits the element and its descendants in tree order. Returning
// false from fn skips the visited element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		if el, ok := c.(*Element); ok {
			el.Walk(fn)
		}
	}
}

// Matches reports whether the element matches a simple selector: "#id",
// ".class", or a tag name.
func (e *Element) Matches(selector string) bool {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return false
	}
	switch selector[0] {
	case '#':
		return e.ID() == selector[1:] && selector[1:] != ""
	case '.':
		return e.hasClass(selector[1:])
	default:
		return e.tag == strings.ToLower(selector)
	}
}

func (e *Element) hasClass(class string) bool {
	if class == "" {
		return false
	}
	for _, f := range strings.Fields(e.GetAttribute("class")) {
		if f == class {
			return true
		}
	}
	return false
}

// QuerySelector returns the first descendant matching the selector, or nil.
func (e *Element) QuerySelector(selector string) *Element {
	var found *Element
	for _, c := range e.Children() {
		c.Walk(func(el *Element) bool {
			if found == nil && el.Matches(selector) {
				found = el
			}
			return found == nil
		})
		if found != nil {
			break
		}
	}
	return found
}

// QuerySelectorAll returns every descendant matching the selector, in
// tree order.
func (e *Element) QuerySelectorAll(selector string) []*Element {
	var out []*Element
	for _, c := range e.Children() {
		c.Walk(func(el *Element) bool {
			if el.Matches(selector) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}
