package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashContentNormalisesToNFC(t *testing.T) {
	composed := "Caf\u00e9"
	decomposed := "Cafe\u0301"

	assert.NotEqual(t, composed, decomposed)
	assert.Equal(t, HashContent(composed), HashContent(decomposed))
	assert.Len(t, HashContent(composed), 64)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashContent(""))
}

func TestHashMatches(t *testing.T) {
	stored := HashContent("遺言書")

	assert.True(t, HashMatches(stored, stored))
	assert.True(t, HashMatches(stored, strings.ToUpper(stored)))
	assert.True(t, HashMatches(stored, "  "+stored+"\n"))
	assert.False(t, HashMatches(stored, HashContent("other")))
	assert.False(t, HashMatches(stored, stored[:10]))
	assert.False(t, HashMatches(stored, strings.Repeat("z", 64)))
}

func TestSentenceSegmenter(t *testing.T) {
	seg := NewSentenceSegmenter()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "english sentences",
			text: "The estate is divided equally. Each heir receives 3.5 shares! Is that clear?",
			want: []string{"The estate is divided equally.", "Each heir receives 3.5 shares!", "Is that clear?"},
		},
		{
			name: "japanese sentences",
			text: "遺産は均等に分割する。各相続人は同意した。",
			want: []string{"遺産は均等に分割する。", "各相続人は同意した。"},
		},
		{
			name: "paragraphs without terminators",
			text: "Heading\n\n  Body line one\nstill body  ",
			want: []string{"Heading", "Body line one still body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := seg.Segment(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSentenceSegmenterEmpty(t *testing.T) {
	_, err := NewSentenceSegmenter().Segment(" \n\n \t")
	assert.ErrorIs(t, err, ErrNothingToSegment)
}
