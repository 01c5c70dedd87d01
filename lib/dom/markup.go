package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseDocument parses a complete HTML document into a tree. The parser
// is the lenient browser-grade one, so partial markup gains the usual
// html/head/body skeleton.
func ParseDocument(markup string) (*Document, error) {
	n, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			root, _ := convert(c, nil).(*Element)
			if root != nil {
				return &Document{root: root}, nil
			}
		}
	}
	return nil, fmt.Errorf("dom: parse document: no root element")
}

// SetInnerHTML replaces the element's children with the parsed fragment.
// Listeners on replaced descendants are discarded with the nodes; the
// element's own attributes and listeners are untouched.
func (e *Element) SetInnerHTML(markup string) error {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     e.tag,
		DataAtom: atom.Lookup([]byte(e.tag)),
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return fmt.Errorf("dom: parse fragment: %w", err)
	}

	for _, c := range e.children {
		switch c := c.(type) {
		case *Element:
			c.parent = nil
		case *Text:
			c.parent = nil
		}
	}
	e.children = nil
	for _, n := range nodes {
		if child := convert(n, e); child != nil {
			e.children = append(e.children, child)
		}
	}
	return nil
}

// InnerHTML returns the serialized children of the element.
func (e *Element) InnerHTML() string {
	var b strings.Builder
	for _, c := range e.children {
		writeChild(&b, c)
	}
	return b.String()
}

// OuterHTML returns the serialized element including its own tag.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	writeNode(&b, e)
	return b.String()
}

// convert maps an x/net/html node onto this package's tree. Comment and
// doctype nodes are dropped.
func convert(n *html.Node, parent *Element) Node {
	switch n.Type {
	case html.ElementNode:
		el := &Element{tag: n.Data, parent: parent}
		for _, a := range n.Attr {
			el.attrs = append(el.attrs, Attr{Name: strings.ToLower(a.Key), Value: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c, el); child != nil {
				el.children = append(el.children, child)
			}
		}
		return el
	case html.TextNode:
		return &Text{data: n.Data, parent: parent}
	default:
		return nil
	}
}

// voidElements have no children and serialize without a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// rawTextElements hold text that must not be entity-escaped.
var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

func writeNode(b *strings.Builder, e *Element) {
	b.WriteString("<")
	b.WriteString(e.tag)
	for _, a := range e.attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	if voidElements[e.tag] {
		return
	}
	raw := rawTextElements[e.tag]
	for _, c := range e.children {
		if t, ok := c.(*Text); ok && raw {
			b.WriteString(t.data)
			continue
		}
		writeChild(b, c)
	}
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteString(">")
}

func writeChild(b *strings.Builder, n Node) {
	switch c := n.(type) {
	case *Element:
		writeNode(b, c)
	case *Text:
		b.WriteString(html.EscapeString(c.data))
	}
}
