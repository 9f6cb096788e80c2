package inline

import "github.com/rgonek/inline-html-converter/segment"

// SplitImages carves every ![alt](destination) occurrence out of plain
// segments. Empty plain text around matches is dropped.
func SplitImages(segments []segment.Segment) []segment.Segment {
	return splitMarkup(segments, firstImage, segment.NewImage)
}

// SplitLinks carves every [label](destination) occurrence out of plain
// segments. Image markup is never treated as a link.
func SplitLinks(segments []segment.Segment) []segment.Segment {
	return splitMarkup(segments, nextLink, segment.NewLink)
}

type findFunc func(text string, from int) (Match, bool)

func splitMarkup(segments []segment.Segment, find findFunc, build func(label, dest string) segment.Segment) []segment.Segment {
	out := make([]segment.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.Category != segment.Plain {
			out = append(out, seg)
			continue
		}

		text := seg.Text
		cursor := 0
		for cursor < len(text) {
			match, ok := find(text, cursor)
			if !ok {
				break
			}
			out = appendPlain(out, text[cursor:match.Start])
			out = append(out, build(match.Label, match.Destination))
			cursor = match.End
		}
		out = appendPlain(out, text[cursor:])
	}
	return out
}

func appendPlain(out []segment.Segment, text string) []segment.Segment {
	if text == "" {
		return out
	}
	return append(out, segment.NewPlain(text))
}
