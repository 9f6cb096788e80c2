package inline

import (
	"errors"

	"github.com/rgonek/inline-html-converter/segment"
)

var (
	// ErrInvalidCategory is returned when delimiter splitting is asked to
	// produce a category that needs destination data, or an unknown one.
	ErrInvalidCategory = segment.ErrInvalidCategory
	// ErrEmptyDelimiter is returned for a zero-length delimiter.
	ErrEmptyDelimiter = errors.New("delimiter must not be empty")
	// ErrDelimiterNotFound is returned when a plain segment lacks the delimiter.
	ErrDelimiterNotFound = errors.New("delimiter not found")
	// ErrUnmatchedDelimiter is returned when a delimiter occurs an odd number of times.
	ErrUnmatchedDelimiter = errors.New("unmatched delimiter")
	// ErrNestedFormatting is returned when styled text contains further markup.
	ErrNestedFormatting = errors.New("nested inline formatting is not supported")
)
