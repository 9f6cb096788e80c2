package converter

import (
	"fmt"
	"strings"

	"github.com/rgonek/inline-html-converter/htmltree"
	"github.com/rgonek/inline-html-converter/inline"
)

// Engine selects the inline tokenizer.
type Engine string

const (
	// EngineBuiltin splits on literal delimiters and link/image markup.
	EngineBuiltin Engine = "builtin"
	// EngineGoldmark tokenizes with goldmark's CommonMark inline parser.
	EngineGoldmark Engine = "goldmark"
)

// MarkupPolicy controls how unmatched or nested markup is handled.
type MarkupPolicy string

const (
	// MarkupLiteral keeps malformed markup as text and records a warning.
	MarkupLiteral MarkupPolicy = "literal"
	// MarkupError fails the conversion.
	MarkupError MarkupPolicy = "error"
)

// Config holds converter configuration.
type Config struct {
	Engine          Engine                 `json:"engine,omitempty" yaml:"engine,omitempty"`
	Delimiters      []inline.DelimiterRule `json:"delimiters,omitempty" yaml:"delimiters,omitempty"` // builtin engine only
	MalformedMarkup MarkupPolicy           `json:"malformedMarkup,omitempty" yaml:"malformedMarkup,omitempty"`
	WrapTag         string                 `json:"wrapTag,omitempty" yaml:"wrapTag,omitempty"`
	WrapAttrs       htmltree.Attrs         `json:"wrapAttrs,omitempty" yaml:"wrapAttrs,omitempty"`
	ResolutionMode  ResolutionMode         `json:"resolutionMode,omitempty" yaml:"resolutionMode,omitempty"`
	LinkHook        LinkHook               `json:"-" yaml:"-"`
	ImageHook       ImageHook              `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.Engine == "" {
		c.Engine = EngineBuiltin
	}
	if c.Delimiters == nil {
		c.Delimiters = inline.DefaultRules()
	}
	if c.MalformedMarkup == "" {
		c.MalformedMarkup = MarkupLiteral
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}

	return c
}

func (c Config) clone() Config {
	cloned := c
	if c.Delimiters != nil {
		cloned.Delimiters = append([]inline.DelimiterRule{}, c.Delimiters...)
	}
	if c.WrapAttrs != nil {
		cloned.WrapAttrs = append(htmltree.Attrs{}, c.WrapAttrs...)
	}
	return cloned
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.Engine != EngineBuiltin && c.Engine != EngineGoldmark {
		return fmt.Errorf("invalid engine %q", c.Engine)
	}
	if c.MalformedMarkup != MarkupLiteral && c.MalformedMarkup != MarkupError {
		return fmt.Errorf("invalid malformedMarkup %q", c.MalformedMarkup)
	}
	if err := inline.ValidateRules(c.Delimiters); err != nil {
		return fmt.Errorf("invalid delimiters: %w", err)
	}

	if c.WrapTag != "" {
		if !isTagName(c.WrapTag) {
			return fmt.Errorf("invalid wrapTag %q", c.WrapTag)
		}
		if strings.EqualFold(c.WrapTag, htmltree.TagImage) {
			return fmt.Errorf("invalid wrapTag %q: void element cannot wrap content", c.WrapTag)
		}
	}
	if len(c.WrapAttrs) > 0 && c.WrapTag == "" {
		return fmt.Errorf("wrapAttrs requires wrapTag")
	}
	for _, attr := range c.WrapAttrs {
		if strings.TrimSpace(attr.Key) == "" {
			return fmt.Errorf("wrapAttrs keys must be non-empty")
		}
	}

	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}

	return nil
}

func isTagName(tag string) bool {
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return tag != ""
}
