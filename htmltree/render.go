package htmltree

import (
	"fmt"
	"io"
	"strings"
)

// Render serializes el depth-first into HTML.
func Render(el Element) (string, error) {
	var sb strings.Builder
	if err := render(&sb, el); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTo writes the serialized element to w. Nothing is written when the
// tree is invalid.
func RenderTo(w io.Writer, el Element) error {
	out, err := Render(el)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// RenderAll concatenates the rendering of each element.
func RenderAll(elements []Element) (string, error) {
	var sb strings.Builder
	for i, el := range elements {
		if err := render(&sb, el); err != nil {
			return "", fmt.Errorf("element %d: %w", i, err)
		}
	}
	return sb.String(), nil
}

func render(sb *strings.Builder, el Element) error {
	switch typed := el.(type) {
	case *Leaf:
		if typed == nil {
			return ErrNilElement
		}
		return renderLeaf(sb, typed)
	case *Parent:
		if typed == nil {
			return ErrNilElement
		}
		return renderParent(sb, typed)
	case nil:
		return ErrNilElement
	default:
		panic(fmt.Sprintf("htmltree: unexpected element type %T", el))
	}
}

func renderLeaf(sb *strings.Builder, leaf *Leaf) error {
	if leaf.Tag == TagImage {
		sb.WriteString("<" + leaf.Tag + leaf.Attrs.HTML() + ">")
		return nil
	}
	if leaf.Value == nil {
		if leaf.Tag == "" {
			return ErrMissingValue
		}
		return fmt.Errorf("<%s>: %w", leaf.Tag, ErrMissingValue)
	}
	if leaf.Tag == "" {
		sb.WriteString(*leaf.Value)
		return nil
	}

	sb.WriteString("<" + leaf.Tag + leaf.Attrs.HTML() + ">")
	sb.WriteString(*leaf.Value)
	sb.WriteString("</" + leaf.Tag + ">")
	return nil
}

func renderParent(sb *strings.Builder, parent *Parent) error {
	if parent.Tag == "" {
		return ErrMissingTag
	}
	if parent.Children == nil {
		return fmt.Errorf("<%s>: %w", parent.Tag, ErrMissingChildren)
	}

	sb.WriteString("<" + parent.Tag + parent.Attrs.HTML() + ">")
	for i, child := range parent.Children {
		if err := render(sb, child); err != nil {
			return fmt.Errorf("<%s> child %d: %w", parent.Tag, i, err)
		}
	}
	sb.WriteString("</" + parent.Tag + ">")
	return nil
}
