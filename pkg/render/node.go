// Package render turns service responses into view trees.
//
// Renderers return *Node values rather than markup so that formatting can be
// tested without a document, and so each view (in-memory page, browser DOM,
// terminal) can mount the same tree its own way.
package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single element attribute. Attributes keep insertion order.
type Attr struct {
	Key string
	Val string
}

// Node is a view tree node. A node with an empty Tag is a fragment whose
// children are mounted in its place; a node with only Text is a text node.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// El builds an element node.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: children}
}

// TextNode builds a text node.
func TextNode(text string) *Node {
	return &Node{Text: text}
}

// Fragment groups nodes without a wrapping element.
func Fragment(children ...*Node) *Node {
	return &Node{Children: children}
}

// Class is shorthand for a class attribute list.
func Class(names ...string) []Attr {
	return []Attr{{Key: "class", Val: strings.Join(names, " ")}}
}

// IsFragment reports whether n is a fragment.
func (n *Node) IsFragment() bool {
	return n.Tag == "" && n.Text == ""
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether the class attribute contains name.
func (n *Node) HasClass(name string) bool {
	v, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == name {
			return true
		}
	}
	return false
}

// Find returns every element in the tree, n included, with the given tag.
func (n *Node) Find(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	if n.Tag == tag {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.Find(tag)...)
	}
	return out
}

// Text flattens the tree into plain text. Block elements end a line.
func Text(n *Node) string {
	var sb strings.Builder
	writeText(&sb, n)
	return strings.TrimSpace(sb.String())
}

func writeText(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Tag == "" && n.Text != "" {
		sb.WriteString(n.Text)
		return
	}
	for i, c := range n.Children {
		if i > 0 && n.Tag == "li" {
			sb.WriteString(" ")
		}
		writeText(sb, c)
	}
	switch n.Tag {
	case "p", "li", "div", "ul":
		if !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteString("\n")
		}
	}
}

// ToHTML converts a tree into parentless html nodes ready to be appended to
// a document. Fragments expand into their children.
func ToHTML(n *Node) []*html.Node {
	if n == nil {
		return nil
	}
	if n.Tag == "" {
		if n.Text != "" {
			return []*html.Node{{Type: html.TextNode, Data: n.Text}}
		}
		var out []*html.Node
		for _, c := range n.Children {
			out = append(out, ToHTML(c)...)
		}
		return out
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		for _, hn := range ToHTML(c) {
			el.AppendChild(hn)
		}
	}
	return []*html.Node{el}
}

// HTML renders the tree as markup.
func HTML(n *Node) (string, error) {
	var sb strings.Builder
	for _, hn := range ToHTML(n) {
		if err := html.Render(&sb, hn); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}
