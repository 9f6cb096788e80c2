// Package htmltree holds a minimal HTML element tree and its serializer.
//
// The tree is a closed sum of *Leaf and *Parent. Rendering performs no
// escaping: text and attribute values are written verbatim.
package htmltree

import (
	"errors"
	"strings"
)

var (
	ErrNilElement      = errors.New("nil element")
	ErrMissingValue    = errors.New("leaf element has no value")
	ErrMissingTag      = errors.New("parent element has no tag")
	ErrMissingChildren = errors.New("parent element has no children")
)

// TagImage is the only tag rendered as a void element.
const TagImage = "img"

// Element is either a *Leaf or a *Parent.
type Element interface {
	element()
}

// Leaf is a terminal element. An empty Tag renders Value verbatim; a nil
// Value is only valid for img leaves.
type Leaf struct {
	Tag   string
	Value *string
	Attrs Attrs
}

// Parent is a composite element. Children must be non-nil; an empty slice
// renders as an empty element.
type Parent struct {
	Tag      string
	Children []Element
	Attrs    Attrs
}

func (*Leaf) element()   {}
func (*Parent) element() {}

// NewLeaf creates a leaf with a value.
func NewLeaf(tag, value string, attrs ...Attr) *Leaf {
	return &Leaf{Tag: tag, Value: &value, Attrs: Attrs(attrs)}
}

// NewText creates an untagged leaf that renders as its value.
func NewText(value string) *Leaf {
	return NewLeaf("", value)
}

// NewImage creates an img leaf.
func NewImage(src, alt string) *Leaf {
	return NewLeaf(TagImage, "", Attr{Key: "src", Value: src}, Attr{Key: "alt", Value: alt})
}

// NewParent creates a parent element. Nil children become an empty slice.
func NewParent(tag string, children []Element, attrs ...Attr) *Parent {
	if children == nil {
		children = []Element{}
	}
	return &Parent{Tag: tag, Children: children, Attrs: Attrs(attrs)}
}

// Attr is a single HTML attribute.
type Attr struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Attrs is an insertion-ordered attribute list.
type Attrs []Attr

// Get returns the value of the first attribute with key.
func (a Attrs) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set returns a with key set to value. An existing key keeps its position.
func (a Attrs) Set(key, value string) Attrs {
	for i, attr := range a {
		if attr.Key == key {
			out := append(Attrs(nil), a...)
			out[i].Value = value
			return out
		}
	}
	return append(append(Attrs(nil), a...), Attr{Key: key, Value: value})
}

// HTML renders the attributes as ` k1="v1" k2="v2"`, or "" when empty.
func (a Attrs) HTML() string {
	if len(a) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, attr := range a {
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(attr.Value)
		sb.WriteByte('"')
	}
	return sb.String()
}
