package segment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentEquality(t *testing.T) {
	t.Run("same fields", func(t *testing.T) {
		assert.True(t, NewBold("This is a text node").Equal(NewBold("This is a text node")))
	})

	t.Run("different text", func(t *testing.T) {
		assert.NotEqual(t, NewBold("This is a text node"), NewBold("This is a different text node"))
	})

	t.Run("different category", func(t *testing.T) {
		assert.NotEqual(t, NewBold("This is a text node"), NewPlain("This is a text node"))
	})

	t.Run("present versus absent destination", func(t *testing.T) {
		withURL := NewLink("This is a link", "http://example.com")
		withoutURL := Segment{Text: "This is a link", Category: Link}
		assert.False(t, withURL.Equal(withoutURL))
	})

	t.Run("empty destination is still a destination", func(t *testing.T) {
		empty := NewLink("x", "")
		dest, ok := empty.Destination()
		assert.True(t, ok)
		assert.Equal(t, "", dest)
		assert.NotEqual(t, Segment{Text: "x", Category: Link}, empty)
	})
}

func TestNewNeverSetsDestination(t *testing.T) {
	seg := New("label", Link)
	_, ok := seg.Destination()
	assert.False(t, ok)
	assert.ErrorIs(t, seg.Validate(), ErrMissingDestination)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		seg     Segment
		wantErr error
	}{
		{name: "plain", seg: NewPlain("a")},
		{name: "bold", seg: NewBold("a")},
		{name: "italic", seg: NewItalic("a")},
		{name: "link", seg: NewLink("a", "u")},
		{name: "image", seg: NewImage("a", "u")},
		{name: "link without destination", seg: Segment{Text: "a", Category: Link}, wantErr: ErrMissingDestination},
		{name: "image without destination", seg: Segment{Text: "a", Category: Image}, wantErr: ErrMissingDestination},
		{name: "unknown category", seg: Segment{Text: "a", Category: "code"}, wantErr: ErrInvalidCategory},
		{name: "zero value", seg: Segment{}, wantErr: ErrInvalidCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithDestination(t *testing.T) {
	updated, err := NewImage("alt", "a.png").WithDestination("b.png")
	require.NoError(t, err)
	assert.Equal(t, NewImage("alt", "b.png"), updated)

	_, err = NewBold("x").WithDestination("u")
	assert.ErrorIs(t, err, ErrUnexpectedDestination)
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Bold ")
	require.NoError(t, err)
	assert.Equal(t, Bold, c)

	_, err = ParseCategory("strike")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Equal(t, `invalid segment category "strike"`, err.Error())
}

func TestSegmentJSON(t *testing.T) {
	t.Run("link keeps destination", func(t *testing.T) {
		data, err := json.Marshal(NewLink("docs", "https://example.com"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"docs","category":"link","destination":"https://example.com"}`, string(data))

		var out Segment
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, NewLink("docs", "https://example.com"), out)
	})

	t.Run("plain omits destination", func(t *testing.T) {
		data, err := json.Marshal(NewPlain("hi"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"text":"hi","category":"plain"}`, string(data))
	})

	t.Run("rejects destination on bold", func(t *testing.T) {
		var out Segment
		err := json.Unmarshal([]byte(`{"text":"b","category":"bold","destination":"u"}`), &out)
		assert.ErrorIs(t, err, ErrUnexpectedDestination)
	})

	t.Run("rejects image without destination", func(t *testing.T) {
		var out Segment
		err := json.Unmarshal([]byte(`{"text":"b","category":"image"}`), &out)
		assert.ErrorIs(t, err, ErrMissingDestination)
	})
}

func TestConcat(t *testing.T) {
	got := Concat([]Segment{NewPlain("Hello, "), NewBold("world!"), NewPlain("")})
	assert.Equal(t, "Hello, world!", got)
	assert.Equal(t, "", Concat(nil))
}

func TestString(t *testing.T) {
	assert.Equal(t, `bold("x")`, NewBold("x").String())
	assert.Equal(t, `image("a", "u")`, NewImage("a", "u").String())
}
