// Package segment defines the text segments produced by inline tokenization.
package segment

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCategory indicates a category outside the known set, or one
	// that cannot be used for the requested operation.
	ErrInvalidCategory = errors.New("invalid segment category")
	// ErrMissingDestination indicates a link or image segment without a destination.
	ErrMissingDestination = errors.New("missing destination")
	// ErrUnexpectedDestination indicates a destination on a category that does not carry one.
	ErrUnexpectedDestination = errors.New("unexpected destination")
)

// Category is the semantic kind of an inline text span.
type Category string

const (
	Plain  Category = "plain"
	Bold   Category = "bold"
	Italic Category = "italic"
	Link   Category = "link"
	Image  Category = "image"
)

// Categories lists every known category in declaration order.
var Categories = []Category{Plain, Bold, Italic, Link, Image}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Plain, Bold, Italic, Link, Image:
		return true
	default:
		return false
	}
}

// HasDestination reports whether segments of this category carry a destination.
func (c Category) HasDestination() bool {
	return c == Link || c == Image
}

// ParseCategory converts a case-insensitive name into a Category.
func ParseCategory(name string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(name)))
	if !c.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidCategory, name)
	}
	return c, nil
}

// Segment is an immutable span of inline text with its category.
// The destination is only ever set for link and image segments.
type Segment struct {
	Text     string
	Category Category

	dest    string
	hasDest bool
}

// New creates a segment of a category that carries no destination.
// Use NewLink or NewImage for destination-bearing segments.
func New(text string, category Category) Segment {
	return Segment{Text: text, Category: category}
}

// NewPlain creates a plain text segment.
func NewPlain(text string) Segment { return New(text, Plain) }

// NewBold creates a bold segment.
func NewBold(text string) Segment { return New(text, Bold) }

// NewItalic creates an italic segment.
func NewItalic(text string) Segment { return New(text, Italic) }

// NewLink creates a link segment. An empty destination is still present.
func NewLink(text, destination string) Segment {
	return Segment{Text: text, Category: Link, dest: destination, hasDest: true}
}

// NewImage creates an image segment whose text is the alt text.
func NewImage(alt, destination string) Segment {
	return Segment{Text: alt, Category: Image, dest: destination, hasDest: true}
}

// Destination returns the segment destination and whether one is present.
func (s Segment) Destination() (string, bool) {
	return s.dest, s.hasDest
}

// WithDestination returns a copy of a link or image segment with a new destination.
func (s Segment) WithDestination(destination string) (Segment, error) {
	if !s.Category.HasDestination() {
		return Segment{}, fmt.Errorf("%w for %s segment", ErrUnexpectedDestination, s.Category)
	}
	s.dest = destination
	s.hasDest = true
	return s, nil
}

// WithText returns a copy of the segment with different text.
func (s Segment) WithText(text string) Segment {
	s.Text = text
	return s
}

// Equal reports whether both segments have the same text, category and destination.
func (s Segment) Equal(other Segment) bool {
	return s == other
}

// Validate checks the destination invariant for the segment category.
func (s Segment) Validate() error {
	if !s.Category.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCategory, s.Category)
	}
	if s.Category.HasDestination() && !s.hasDest {
		return fmt.Errorf("%s segment %q: %w", s.Category, s.Text, ErrMissingDestination)
	}
	if !s.Category.HasDestination() && s.hasDest {
		return fmt.Errorf("%s segment %q: %w", s.Category, s.Text, ErrUnexpectedDestination)
	}
	return nil
}

func (s Segment) String() string {
	if s.hasDest {
		return fmt.Sprintf("%s(%q, %q)", s.Category, s.Text, s.dest)
	}
	return fmt.Sprintf("%s(%q)", s.Category, s.Text)
}

type segmentJSON struct {
	Text        string   `json:"text"`
	Category    Category `json:"category"`
	Destination *string  `json:"destination,omitempty"`
}

// MarshalJSON encodes the segment, omitting an absent destination.
func (s Segment) MarshalJSON() ([]byte, error) {
	out := segmentJSON{Text: s.Text, Category: s.Category}
	if s.hasDest {
		dest := s.dest
		out.Destination = &dest
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a segment and enforces the destination invariant.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var in segmentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	decoded := Segment{Text: in.Text, Category: in.Category}
	if in.Destination != nil {
		decoded.dest = *in.Destination
		decoded.hasDest = true
	}
	if err := decoded.Validate(); err != nil {
		return err
	}

	*s = decoded
	return nil
}

// Concat joins the text of all segments in order.
func Concat(segments []Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
