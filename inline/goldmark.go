package inline

import (
	"fmt"
	"strings"

	"github.com/rgonek/inline-html-converter/segment"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdownParser = goldmark.New()

// TokenizeMarkdown tokenizes text with goldmark's CommonMark inline parser
// instead of literal delimiter splitting, and maps the result onto the same
// segment categories. Emphasis of level 1 is italic and level 2 or more is
// bold. Text of consecutive blocks is joined with a blank line.
//
// Formatting nested inside emphasis, links or images is flattened to its
// text and reported, or rejected with ErrNestedFormatting when strict.
// Code spans, autolinks, raw HTML and code blocks are kept as literal text.
func TokenizeMarkdown(markdown string, strict bool) ([]segment.Segment, []Issue, error) {
	source := []byte(markdown)
	root := markdownParser.Parser().Parse(text.NewReader(source))

	w := &markdownWalker{source: source, strict: strict}
	if err := w.walkBlocks(root); err != nil {
		return nil, nil, err
	}
	return w.segments, w.issues, nil
}

type markdownWalker struct {
	source   []byte
	strict   bool
	segments []segment.Segment
	issues   []Issue
	blocks   int
}

func (w *markdownWalker) walkBlocks(parent ast.Node) error {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch {
		case child.FirstChild() != nil && child.FirstChild().Type() == ast.TypeInline:
			w.startBlock()
			if err := w.walkInlines(child); err != nil {
				return err
			}

		case child.HasChildren():
			if err := w.walkBlocks(child); err != nil {
				return err
			}

		case child.Lines().Len() > 0:
			raw := w.lines(child.Lines())
			w.startBlock()
			w.appendText(raw)
			w.addIssue(IssueFlattenedMarkup, raw, fmt.Sprintf("%s kept as text", child.Kind()))
		}
	}
	return nil
}

func (w *markdownWalker) startBlock() {
	if w.blocks > 0 {
		w.appendText("\n\n")
	}
	w.blocks++
}

func (w *markdownWalker) walkInlines(parent ast.Node) error {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := w.walkInline(child); err != nil {
			return err
		}
	}
	return nil
}

func (w *markdownWalker) walkInline(node ast.Node) error {
	switch typed := node.(type) {
	case *ast.Text:
		w.appendText(string(typed.Value(w.source)))
		if typed.HardLineBreak() || typed.SoftLineBreak() {
			w.appendText("\n")
		}

	case *ast.String:
		w.appendText(string(typed.Value))

	case *ast.Emphasis:
		category := segment.Italic
		if typed.Level >= 2 {
			category = segment.Bold
		}
		label, err := w.flattenChildren(typed, category)
		if err != nil {
			return err
		}
		w.segments = append(w.segments, segment.New(label, category))

	case *ast.Link:
		label, err := w.flattenChildren(typed, segment.Link)
		if err != nil {
			return err
		}
		w.segments = append(w.segments, segment.NewLink(label, string(typed.Destination)))

	case *ast.Image:
		alt, err := w.flattenChildren(typed, segment.Image)
		if err != nil {
			return err
		}
		w.segments = append(w.segments, segment.NewImage(alt, string(typed.Destination)))

	case *ast.AutoLink:
		raw := string(typed.Label(w.source))
		w.appendText(raw)
		w.addIssue(IssueFlattenedMarkup, raw, "autolink kept as text")

	case *ast.RawHTML:
		raw := w.lines(typed.Segments)
		w.appendText(raw)
		w.addIssue(IssueFlattenedMarkup, raw, "raw HTML kept as text")

	case *ast.CodeSpan:
		raw := plainText(typed, w.source)
		w.appendText(raw)
		w.addIssue(IssueFlattenedMarkup, raw, "code span kept as text")

	default:
		if node.HasChildren() {
			return w.walkInlines(node)
		}
	}
	return nil
}

// flattenChildren returns the text beneath a styled node. Any formatting
// below it is nested formatting.
func (w *markdownWalker) flattenChildren(node ast.Node, category segment.Category) (string, error) {
	label := plainText(node, w.source)
	if !hasFormattedDescendant(node) {
		return label, nil
	}
	if w.strict {
		return "", fmt.Errorf("%w: formatting inside %s text %q", ErrNestedFormatting, category, label)
	}
	w.addIssue(IssueNestedFormatting, label, fmt.Sprintf("formatting inside %s text flattened", category))
	return label, nil
}

func (w *markdownWalker) appendText(value string) {
	if value == "" {
		return
	}
	if n := len(w.segments); n > 0 && w.segments[n-1].Category == segment.Plain {
		w.segments[n-1] = w.segments[n-1].WithText(w.segments[n-1].Text + value)
		return
	}
	w.segments = append(w.segments, segment.NewPlain(value))
}

func (w *markdownWalker) addIssue(kind IssueKind, value, message string) {
	w.issues = append(w.issues, Issue{Kind: kind, Text: value, Message: message})
}

func (w *markdownWalker) lines(segments *text.Segments) string {
	if segments == nil {
		return ""
	}
	var sb strings.Builder
	for i := 0; i < segments.Len(); i++ {
		line := segments.At(i)
		sb.Write(line.Value(w.source))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func plainText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := n.(type) {
		case *ast.Text:
			sb.Write(typed.Value(source))
			if typed.HardLineBreak() || typed.SoftLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(typed.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func hasFormattedDescendant(node ast.Node) bool {
	found := false
	for child := node.FirstChild(); child != nil && !found; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Emphasis, *ast.Link, *ast.Image, *ast.CodeSpan, *ast.AutoLink, *ast.RawHTML:
			found = true
		default:
			found = hasFormattedDescendant(child)
		}
	}
	return found
}
