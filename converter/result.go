package converter

import (
	"github.com/rgonek/inline-html-converter/htmltree"
	"github.com/rgonek/inline-html-converter/segment"
)

// Result holds the output of a conversion.
type Result struct {
	HTML     string             `json:"html"`
	Segments []segment.Segment  `json:"segments,omitempty"`
	Warnings []Warning          `json:"warnings,omitempty"`
	Elements []htmltree.Element `json:"-"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningMalformedMarkup     WarningType = "malformed_markup"
	WarningNestedFormatting    WarningType = "nested_formatting"
	WarningFlattenedMarkup     WarningType = "flattened_markup"
	WarningUnresolvedReference WarningType = "unresolved_reference"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type    WarningType `json:"type"`
	Text    string      `json:"text,omitempty"`
	Message string      `json:"message"`
}
