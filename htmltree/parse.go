package htmltree

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnsupportedElement is returned for void elements other than img, which
// the renderer has no form for.
var ErrUnsupportedElement = errors.New("unsupported element")

// ParseFragment parses an HTML fragment in body context into elements.
//
// Element nodes whose only child is text become tagged leaves, img becomes
// an img leaf, other elements become parents. Comments and doctypes are
// dropped. Entities are decoded by the parser and not re-escaped by Render.
func ParseFragment(fragment string) ([]Element, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML fragment: %w", err)
	}

	elements := make([]Element, 0, len(nodes))
	for _, node := range nodes {
		el, ok, err := fromNode(node)
		if err != nil {
			return nil, err
		}
		if ok {
			elements = append(elements, el)
		}
	}
	return elements, nil
}

func fromNode(n *html.Node) (Element, bool, error) {
	switch n.Type {
	case html.TextNode:
		return NewText(n.Data), true, nil

	case html.ElementNode:
		el, err := fromElementNode(n)
		if err != nil {
			return nil, false, err
		}
		return el, true, nil

	default:
		return nil, false, nil
	}
}

func fromElementNode(n *html.Node) (Element, error) {
	attrs := make(Attrs, 0, len(n.Attr))
	for _, attr := range n.Attr {
		attrs = append(attrs, Attr{Key: attr.Key, Value: attr.Val})
	}
	if len(attrs) == 0 {
		attrs = nil
	}

	if n.Data == TagImage {
		return &Leaf{Tag: TagImage, Value: new(string), Attrs: attrs}, nil
	}
	if isVoidElement(n.DataAtom) {
		return nil, fmt.Errorf("%w <%s>: only <img> renders as a void element", ErrUnsupportedElement, n.Data)
	}

	if child := n.FirstChild; child != nil && child.NextSibling == nil && child.Type == html.TextNode {
		value := child.Data
		return &Leaf{Tag: n.Data, Value: &value, Attrs: attrs}, nil
	}

	children := []Element{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		el, ok, err := fromNode(c)
		if err != nil {
			return nil, err
		}
		if ok {
			children = append(children, el)
		}
	}
	return &Parent{Tag: n.Data, Children: children, Attrs: attrs}, nil
}

func isVoidElement(a atom.Atom) bool {
	switch a {
	case atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Input,
		atom.Link, atom.Meta, atom.Source, atom.Track, atom.Wbr:
		return true
	default:
		return false
	}
}
