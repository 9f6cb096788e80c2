package converter

import (
	"fmt"

	"github.com/rgonek/inline-html-converter/htmltree"
	"github.com/rgonek/inline-html-converter/segment"
)

var (
	// ErrMissingDestination is returned for a link or image segment without a destination.
	ErrMissingDestination = segment.ErrMissingDestination
	// ErrInvalidCategory is returned for a segment with an unknown category.
	ErrInvalidCategory = segment.ErrInvalidCategory
)

// SegmentToElement maps a segment to its leaf element:
//
//	plain  -> untagged text
//	bold   -> <strong>
//	italic -> <em>
//	link   -> <a href="destination">
//	image  -> <img src="destination" alt="text">
func SegmentToElement(seg segment.Segment) (htmltree.Element, error) {
	switch seg.Category {
	case segment.Plain:
		return htmltree.NewText(seg.Text), nil

	case segment.Bold:
		return htmltree.NewLeaf("strong", seg.Text), nil

	case segment.Italic:
		return htmltree.NewLeaf("em", seg.Text), nil

	case segment.Link:
		dest, ok := seg.Destination()
		if !ok {
			return nil, fmt.Errorf("link %q: %w", seg.Text, ErrMissingDestination)
		}
		return htmltree.NewLeaf("a", seg.Text, htmltree.Attr{Key: "href", Value: dest}), nil

	case segment.Image:
		dest, ok := seg.Destination()
		if !ok {
			return nil, fmt.Errorf("image %q: %w", seg.Text, ErrMissingDestination)
		}
		return htmltree.NewImage(dest, seg.Text), nil

	default:
		return nil, fmt.Errorf("%w %q", ErrInvalidCategory, seg.Category)
	}
}

// SegmentsToElements converts every segment in order.
func SegmentsToElements(segments []segment.Segment) ([]htmltree.Element, error) {
	elements := make([]htmltree.Element, 0, len(segments))
	for i, seg := range segments {
		el, err := SegmentToElement(seg)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		elements = append(elements, el)
	}
	return elements, nil
}
