package inline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgonek/inline-html-converter/segment"
)

// DelimiterRule maps a literal delimiter to the category it produces.
type DelimiterRule struct {
	Delimiter string           `json:"delimiter" yaml:"delimiter"`
	Category  segment.Category `json:"category" yaml:"category"`
}

// DefaultRules returns the delimiter passes applied when none are configured.
// Order matters: "**" must run before "*".
func DefaultRules() []DelimiterRule {
	return []DelimiterRule{
		{Delimiter: "**", Category: segment.Bold},
		{Delimiter: "_", Category: segment.Italic},
		{Delimiter: "*", Category: segment.Italic},
	}
}

// ValidateRules checks every rule the way SplitDelimiter would.
func ValidateRules(rules []DelimiterRule) error {
	for i, rule := range rules {
		if err := checkDelimiterRule(rule.Delimiter, rule.Category); err != nil {
			return fmt.Errorf("delimiter rule %d: %w", i, err)
		}
	}
	return nil
}

// IssueKind categorizes markup the tokenizer left unconverted.
type IssueKind string

const (
	IssueUnmatchedDelimiter IssueKind = "unmatched_delimiter"
	IssueNestedFormatting   IssueKind = "nested_formatting"
	IssueFlattenedMarkup    IssueKind = "flattened_markup"
)

// Issue describes a piece of markup kept as literal text.
type Issue struct {
	Kind    IssueKind
	Text    string
	Message string
}

// TokenizeOptions configures Tokenize.
type TokenizeOptions struct {
	// Rules are applied in order after images and links. Nil means DefaultRules.
	Rules []DelimiterRule
	// Strict turns issues into errors.
	Strict bool
}

// Tokenize converts raw inline markdown into segments: images first, then
// links, then one delimiter pass per rule. A delimiter pass only touches
// plain segments that contain the delimiter. Malformed or nested markup is
// left literal and reported as an Issue unless opts.Strict is set. A plain
// segment with an unmatched delimiter is kept whole; no later pass splits it.
func Tokenize(text string, opts TokenizeOptions) ([]segment.Segment, []Issue, error) {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	if err := ValidateRules(rules); err != nil {
		return nil, nil, err
	}

	segments := SplitLinks(SplitImages([]segment.Segment{segment.NewPlain(text)}))
	if len(segments) == 0 {
		return nil, nil, nil
	}

	// literal[i] marks a plain segment some pass rejected as unmatched;
	// later passes skip it.
	literal := make([]bool, len(segments))
	var issues []Issue
	for _, rule := range rules {
		next := make([]segment.Segment, 0, len(segments))
		nextLiteral := make([]bool, 0, len(segments))
		for i, seg := range segments {
			if literal[i] || seg.Category != segment.Plain || !strings.Contains(seg.Text, rule.Delimiter) {
				next = append(next, seg)
				nextLiteral = append(nextLiteral, literal[i])
				continue
			}

			split, err := SplitDelimiter([]segment.Segment{seg}, rule.Delimiter, rule.Category)
			if err != nil {
				if opts.Strict || !errors.Is(err, ErrUnmatchedDelimiter) {
					return nil, nil, err
				}
				issues = append(issues, Issue{
					Kind:    IssueUnmatchedDelimiter,
					Text:    seg.Text,
					Message: fmt.Sprintf("unmatched delimiter %q; kept as text", rule.Delimiter),
				})
				next = append(next, seg)
				nextLiteral = append(nextLiteral, true)
				continue
			}
			next = append(next, split...)
			for range split {
				nextLiteral = append(nextLiteral, false)
			}
		}
		segments, literal = next, nextLiteral
	}

	for _, seg := range segments {
		if seg.Category == segment.Plain || seg.Category.HasDestination() {
			continue
		}
		delimiter, nested := containsAnyDelimiter(seg.Text, rules)
		if !nested {
			continue
		}
		if opts.Strict {
			return nil, nil, fmt.Errorf("%w: %q inside %s text %q", ErrNestedFormatting, delimiter, seg.Category, seg.Text)
		}
		issues = append(issues, Issue{
			Kind:    IssueNestedFormatting,
			Text:    seg.Text,
			Message: fmt.Sprintf("delimiter %q inside %s text; kept as text", delimiter, seg.Category),
		})
	}

	return segments, issues, nil
}

func containsAnyDelimiter(text string, rules []DelimiterRule) (string, bool) {
	for _, rule := range rules {
		if strings.Contains(text, rule.Delimiter) {
			return rule.Delimiter, true
		}
	}
	return "", false
}
