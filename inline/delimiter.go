package inline

import (
	"fmt"
	"strings"

	"github.com/rgonek/inline-html-converter/segment"
)

// SplitDelimiter splits every plain segment on a literal delimiter. Parts
// alternate plain, category, plain, ... starting with plain; empty parts are
// kept. Non-plain segments are passed through in place.
//
// Each plain segment must contain the delimiter an even, non-zero number of
// times. Styled output is never split again.
func SplitDelimiter(segments []segment.Segment, delimiter string, category segment.Category) ([]segment.Segment, error) {
	if err := checkDelimiterRule(delimiter, category); err != nil {
		return nil, err
	}

	out := make([]segment.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Category != segment.Plain {
			out = append(out, seg)
			continue
		}

		parts, err := splitOnDelimiter(seg.Text, delimiter)
		if err != nil {
			return nil, err
		}
		out = appendAlternating(out, parts, category)
	}

	return out, nil
}

func checkDelimiterRule(delimiter string, category segment.Category) error {
	if delimiter == "" {
		return ErrEmptyDelimiter
	}
	if !category.Valid() || category.HasDestination() {
		return fmt.Errorf("%w %q: delimiter splitting cannot produce destinations", ErrInvalidCategory, category)
	}
	return nil
}

func splitOnDelimiter(text, delimiter string) ([]string, error) {
	count := strings.Count(text, delimiter)
	if count == 0 {
		return nil, fmt.Errorf("%w: %q in text %q", ErrDelimiterNotFound, delimiter, text)
	}
	if count%2 != 0 {
		return nil, fmt.Errorf("%w: %q in text %q", ErrUnmatchedDelimiter, delimiter, text)
	}
	return strings.Split(text, delimiter), nil
}

func appendAlternating(out []segment.Segment, parts []string, category segment.Category) []segment.Segment {
	for i, part := range parts {
		if i%2 == 1 {
			out = append(out, segment.New(part, category))
		} else {
			out = append(out, segment.NewPlain(part))
		}
	}
	return out
}
