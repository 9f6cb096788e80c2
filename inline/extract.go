package inline

import "regexp"

var (
	imageMarkupRe = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
	// Go regexp has no lookbehind; findLinks rejects candidates preceded by '!'.
	linkMarkupRe = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

// Match is one image or link occurrence found in raw text.
// Start and End are byte offsets of the full markup.
type Match struct {
	Label       string
	Destination string
	Start       int
	End         int
}

// ExtractImages returns every ![label](destination) occurrence in order.
func ExtractImages(text string) []Match {
	var matches []Match
	for _, loc := range imageMarkupRe.FindAllStringSubmatchIndex(text, -1) {
		matches = append(matches, newMatch(text, loc))
	}
	return matches
}

// ExtractLinks returns every [label](destination) occurrence that is not
// the tail of an image, in order.
func ExtractLinks(text string) []Match {
	var matches []Match
	cursor := 0
	for cursor <= len(text) {
		match, ok := nextLink(text, cursor)
		if !ok {
			break
		}
		matches = append(matches, match)
		cursor = match.End
	}
	return matches
}

func firstImage(text string, from int) (Match, bool) {
	loc := imageMarkupRe.FindStringSubmatchIndex(text[from:])
	if loc == nil {
		return Match{}, false
	}
	return newMatch(text, shift(loc, from)), true
}

// nextLink finds the first link at or after from. A candidate preceded by
// '!' belongs to an image; the search resumes one byte past its start.
func nextLink(text string, from int) (Match, bool) {
	for from <= len(text) {
		loc := linkMarkupRe.FindStringSubmatchIndex(text[from:])
		if loc == nil {
			return Match{}, false
		}
		loc = shift(loc, from)
		if loc[0] > 0 && text[loc[0]-1] == '!' {
			from = loc[0] + 1
			continue
		}
		return newMatch(text, loc), true
	}
	return Match{}, false
}

func newMatch(text string, loc []int) Match {
	return Match{
		Label:       text[loc[2]:loc[3]],
		Destination: text[loc[4]:loc[5]],
		Start:       loc[0],
		End:         loc[1],
	}
}

func shift(loc []int, offset int) []int {
	shifted := make([]int, len(loc))
	for i, v := range loc {
		shifted[i] = v + offset
	}
	return shifted
}
