package converter

import (
	"strings"
	"testing"

	"github.com/rgonek/inline-html-converter/htmltree"
	"github.com/rgonek/inline-html-converter/inline"
	"github.com/rgonek/inline-html-converter/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(t testing.TB, cfg Config) *Converter {
	t.Helper()

	conv, err := New(cfg)
	require.NoError(t, err)

	return conv
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "plain",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "bold",
			input:    "Hello, **world!** This is a test.",
			expected: "Hello, <strong>world!</strong> This is a test.",
		},
		{
			name:     "image then link",
			input:    "![a](u1) and [b](u2)",
			expected: `<img src="u1" alt="a"> and <a href="u2">b</a>`,
		},
		{
			name:     "everything",
			input:    "This is **text** with an _italic_ word and a [link](https://boot.dev)",
			expected: `This is <strong>text</strong> with an <em>italic</em> word and a <a href="https://boot.dev">link</a>`,
		},
		{
			name:     "wrapped",
			cfg:      Config{WrapTag: "p", WrapAttrs: htmltree.Attrs{{Key: "class", Value: "lead"}}},
			input:    "hi *there*",
			expected: `<p class="lead">hi <em>there</em></p>`,
		},
		{
			name:     "wrapped empty",
			cfg:      Config{WrapTag: "div"},
			input:    "",
			expected: "<div></div>",
		},
		{
			name:     "no escaping",
			input:    "<script>x</script> & **<b>**",
			expected: "<script>x</script> & <strong><b></strong>",
		},
		{
			name:     "custom delimiters",
			cfg:      Config{Delimiters: []inline.DelimiterRule{{Delimiter: "__", Category: segment.Italic}}},
			input:    "a __b__ **c**",
			expected: "a <em>b</em> **c**",
		},
		{
			name:     "goldmark engine",
			cfg:      Config{Engine: EngineGoldmark},
			input:    "Hello **world** and *it* [l](u)",
			expected: `Hello <strong>world</strong> and <em>it</em> <a href="u">l</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := newTestConverter(t, tt.cfg)
			result, err := conv.Convert(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.HTML)
			assert.Empty(t, result.Warnings)
		})
	}
}

func TestConvertReturnsSegmentsAndElements(t *testing.T) {
	conv := newTestConverter(t, Config{})

	result, err := conv.Convert("![a](u1) and [b](u2)")
	require.NoError(t, err)

	assert.Equal(t, []segment.Segment{
		segment.NewImage("a", "u1"),
		segment.NewPlain(" and "),
		segment.NewLink("b", "u2"),
	}, result.Segments)

	require.Len(t, result.Elements, 3)
	out, err := htmltree.RenderAll(result.Elements)
	require.NoError(t, err)
	assert.Equal(t, result.HTML, out)
}

func TestConvertMalformedMarkup(t *testing.T) {
	t.Run("literal keeps text and warns", func(t *testing.T) {
		conv := newTestConverter(t, Config{})
		result, err := conv.Convert("a snake_case name")
		require.NoError(t, err)
		assert.Equal(t, "a snake_case name", result.HTML)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningMalformedMarkup, result.Warnings[0].Type)
		assert.Equal(t, "a snake_case name", result.Warnings[0].Text)
	})

	t.Run("error policy fails", func(t *testing.T) {
		conv := newTestConverter(t, Config{MalformedMarkup: MarkupError})
		result, err := conv.Convert("a snake_case name")
		require.Error(t, err)
		assert.ErrorIs(t, err, inline.ErrUnmatchedDelimiter)
		assert.Equal(t, Result{}, result)
	})
}

func TestConvertUnmatchedBoldMarker(t *testing.T) {
	inputs := []string{"a **b", "**a** **b", "x ** y * z *"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			conv := newTestConverter(t, Config{})
			result, err := conv.Convert(input)
			require.NoError(t, err)
			assert.Equal(t, input, result.HTML)
			assert.Equal(t, []segment.Segment{segment.NewPlain(input)}, result.Segments)
			assert.Equal(t, input, segment.Concat(result.Segments))
			require.Len(t, result.Warnings, 1)
			assert.Equal(t, WarningMalformedMarkup, result.Warnings[0].Type)
			assert.Equal(t, input, result.Warnings[0].Text)
		})
	}

	t.Run("error policy fails", func(t *testing.T) {
		conv := newTestConverter(t, Config{MalformedMarkup: MarkupError})
		_, err := conv.Convert("a **b")
		assert.ErrorIs(t, err, inline.ErrUnmatchedDelimiter)
	})
}

func TestConvertNestedFormatting(t *testing.T) {
	t.Run("builtin warns", func(t *testing.T) {
		conv := newTestConverter(t, Config{})
		result, err := conv.Convert("**bold _italic_**")
		require.NoError(t, err)
		assert.Equal(t, "<strong>bold _italic_</strong>", result.HTML)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningNestedFormatting, result.Warnings[0].Type)
	})

	t.Run("builtin error policy", func(t *testing.T) {
		conv := newTestConverter(t, Config{MalformedMarkup: MarkupError})
		_, err := conv.Convert("**bold _italic_**")
		assert.ErrorIs(t, err, inline.ErrNestedFormatting)
	})

	t.Run("goldmark flattens", func(t *testing.T) {
		conv := newTestConverter(t, Config{Engine: EngineGoldmark})
		result, err := conv.Convert("**bold _italic_**")
		require.NoError(t, err)
		assert.Equal(t, "<strong>bold italic</strong>", result.HTML)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningNestedFormatting, result.Warnings[0].Type)
	})
}

func TestConvertGoldmarkFlattenedMarkup(t *testing.T) {
	conv := newTestConverter(t, Config{Engine: EngineGoldmark})
	result, err := conv.Convert("run `make` now")
	require.NoError(t, err)
	assert.Equal(t, "run make now", result.HTML)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningFlattenedMarkup, result.Warnings[0].Type)
}

func TestSegments(t *testing.T) {
	conv := newTestConverter(t, Config{})
	segments, warnings, err := conv.Segments("Hello, **world!** This is a test.")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, []segment.Segment{
		segment.NewPlain("Hello, "),
		segment.NewBold("world!"),
		segment.NewPlain(" This is a test."),
	}, segments)
}

func TestConverterConcurrentUse(t *testing.T) {
	conv := newTestConverter(t, Config{WrapTag: "p"})
	input := "This is **bold** and [a link](https://example.com)"
	want := `<p>This is <strong>bold</strong> and <a href="https://example.com">a link</a></p>`

	errs := make(chan error, 16)
	results := make(chan string, 16)
	for i := 0; i < 16; i++ {
		go func() {
			result, err := conv.Convert(input)
			errs <- err
			results <- result.HTML
		}()
	}
	for i := 0; i < 16; i++ {
		require.NoError(t, <-errs)
		assert.Equal(t, want, <-results)
	}
}

func TestConvertLongInput(t *testing.T) {
	conv := newTestConverter(t, Config{})
	input := strings.Repeat("[l](u) ", 5000)
	result, err := conv.Convert(input)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat(`<a href="u">l</a> `, 5000), result.HTML)
}
