// Package converter turns inline markdown into HTML.
//
// A conversion tokenizes text into segments, lets optional hooks rewrite
// link and image destinations, maps each segment to an element and renders
// the elements. Rendering does not escape HTML special characters.
package converter

import (
	"context"
	"fmt"

	"github.com/rgonek/inline-html-converter/htmltree"
	"github.com/rgonek/inline-html-converter/inline"
	"github.com/rgonek/inline-html-converter/segment"
)

// Converter converts inline markdown to HTML. It is safe for concurrent use.
type Converter struct {
	config Config
}

type state struct {
	ctx        context.Context
	config     Config
	sourcePath string
	warnings   []Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
	}, nil
}

// Convert takes inline markdown and returns HTML.
func (c *Converter) Convert(text string) (Result, error) {
	return c.ConvertWithContext(context.Background(), text, ConvertOptions{})
}

// ConvertWithContext is Convert with a context passed to hooks and
// per-conversion options.
func (c *Converter) ConvertWithContext(ctx context.Context, text string, opts ConvertOptions) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &state{
		ctx:        ctx,
		config:     c.config,
		sourcePath: opts.SourcePath,
	}

	segments, err := s.tokenize(text)
	if err != nil {
		return Result{}, err
	}

	segments, err = s.resolveReferences(segments)
	if err != nil {
		return Result{}, err
	}

	elements, err := SegmentsToElements(segments)
	if err != nil {
		return Result{}, err
	}

	if c.config.WrapTag != "" {
		elements = []htmltree.Element{
			htmltree.NewParent(c.config.WrapTag, elements, c.config.WrapAttrs...),
		}
	}

	out, err := htmltree.RenderAll(elements)
	if err != nil {
		return Result{}, fmt.Errorf("failed to render HTML: %w", err)
	}

	return Result{
		HTML:     out,
		Segments: segments,
		Warnings: s.warnings,
		Elements: elements,
	}, nil
}

// Segments tokenizes text without rendering it.
func (c *Converter) Segments(text string) ([]segment.Segment, []Warning, error) {
	s := &state{ctx: context.Background(), config: c.config}
	segments, err := s.tokenize(text)
	if err != nil {
		return nil, nil, err
	}
	return segments, s.warnings, nil
}

func (s *state) tokenize(text string) ([]segment.Segment, error) {
	strict := s.config.MalformedMarkup == MarkupError

	var (
		segments []segment.Segment
		issues   []inline.Issue
		err      error
	)
	switch s.config.Engine {
	case EngineGoldmark:
		segments, issues, err = inline.TokenizeMarkdown(text, strict)
	default:
		segments, issues, err = inline.Tokenize(text, inline.TokenizeOptions{
			Rules:  s.config.Delimiters,
			Strict: strict,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize inline markdown: %w", err)
	}

	for _, issue := range issues {
		s.addWarning(warningTypeForIssue(issue.Kind), issue.Text, issue.Message)
	}
	return segments, nil
}

func warningTypeForIssue(kind inline.IssueKind) WarningType {
	switch kind {
	case inline.IssueNestedFormatting:
		return WarningNestedFormatting
	case inline.IssueFlattenedMarkup:
		return WarningFlattenedMarkup
	default:
		return WarningMalformedMarkup
	}
}

func (s *state) checkContext() error {
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("conversion canceled: %w", err)
	}
	return nil
}

func (s *state) addWarning(warnType WarningType, text, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warnType,
		Text:    text,
		Message: message,
	})
}
