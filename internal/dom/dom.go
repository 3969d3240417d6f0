// Package dom wraps a parsed HTML tree behind the small query surface
// the document checks need: find elements by tag name, read attributes.
package dom

import (
	"io"
	"strings"

	"github.com/yhat/scrape"
	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads and parses an HTML document. The parser is forgiving, so
// real-world tag soup still yields a usable tree.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Element is a single element node within a Document.
type Element struct {
	node *html.Node
}

// Tag returns the lowercase tag name.
func (e Element) Tag() string {
	return e.node.Data
}

// Attr returns the value of the named attribute, or "" when absent.
func (e Element) Attr(name string) string {
	return scrape.Attr(e.node, name)
}

// Elements returns every element in the document whose tag name is one
// of tags, in document order.
func (d *Document) Elements(tags ...string) []Element {
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[strings.ToLower(t)] = struct{}{}
	}

	matcher := func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		_, ok := want[n.Data]
		return ok
	}

	nodes := scrape.FindAll(d.root, matcher)
	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, Element{node: n})
	}
	return elements
}
