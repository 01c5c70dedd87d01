// Package dom provides the mutable node graph state containers render
// into and receive events from.
//
// The graph is deliberately small: a Document owns a tree of Elements and
// Texts, elements carry ordered attributes and event listeners, and events
// dispatch synchronously with bubbling, PreventDefault, and StopPropagation
// semantics. Markup moves in and out of the tree through ParseDocument,
// SetInnerHTML, and the HTML accessors; parsing is done with
// golang.org/x/net/html, so anything a browser would accept round-trips.
//
// Selector support covers the three simple forms component containers are
// addressed by: "#id", ".class", and a bare tag name.
//
// A Document and its nodes belong to a single goroutine; the package adds
// no locking of its own.
package dom

import "strings"

// Attr is a single element attribute. Names are lowercase.
type Attr struct {
	Name  string
	Value string
}

// Node is a member of the tree: either an *Element or a *Text.
type Node interface {
	node()
}

// Text is a text node.
type Text struct {
	parent *Element
	data   string
}

// NewText creates a detached text node.
func NewText(data string) *Text { return &Text{data: data} }

// Data returns the node's text.
func (t *Text) Data() string { return t.data }

// SetData replaces the node's text.
func (t *Text) SetData(data string) { t.data = data }

// Parent returns the element containing this node, or nil.
func (t *Text) Parent() *Element { return t.parent }

func (t *Text) node()    {}
func (e *Element) node() {}

// Document is the root of a node tree.
type Document struct {
	root *Element
}

// NewDocument creates an empty document with the html/head/body skeleton
// a parsed page would have.
func NewDocument() *Document {
	root := NewElement("html")
	root.AppendChild(NewElement("head"))
	root.AppendChild(NewElement("body"))
	return &Document{root: root}
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// Body returns the document's body element, or nil if it has none.
func (d *Document) Body() *Element { return d.firstTag("body") }

// Head returns the document's head element, or nil if it has none.
func (d *Document) Head() *Element { return d.firstTag("head") }

func (d *Document) firstTag(tag string) *Element {
	var found *Element
	d.root.Walk(func(e *Element) bool {
		if found == nil && e.TagName() == tag {
			found = e
		}
		return found == nil
	})
	return found
}

// QuerySelector returns the first element in the document matching the
// selector, or nil. The root element itself is considered.
func (d *Document) QuerySelector(selector string) *Element {
	if d == nil || d.root == nil {
		return nil
	}
	if d.root.Matches(selector) {
		return d.root
	}
	return d.root.QuerySelector(selector)
}

// QuerySelectorAll returns every element in the document matching the
// selector, in tree order.
func (d *Document) QuerySelectorAll(selector string) []*Element {
	if d == nil || d.root == nil {
		return nil
	}
	var out []*Element
	d.root.Walk(func(e *Element) bool {
		if e.Matches(selector) {
			out = append(out, e)
		}
		return true
	})
	return out
}

// HTML returns the serialized document.
func (d *Document) HTML() string {
	var b strings.Builder
	b.WriteString("<!doctype html>")
	writeNode(&b, d.root)
	return b.String()
}
