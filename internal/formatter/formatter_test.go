package formatter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitter_Split(t *testing.T) {
	tests := []struct {
		name        string
		maxLength   int
		maxMessages int
		text        string
		want        []string
	}{
		{
			name:        "empty text",
			maxLength:   36,
			maxMessages: 5,
			text:        "",
			want:        nil,
		},
		{
			name:        "short text is unchanged",
			maxLength:   36,
			maxMessages: 5,
			text:        "Good news, everyone!",
			want:        []string{"Good news, everyone!"},
		},
		{
			name:        "paragraphs are packed and numbered",
			maxLength:   36,
			maxMessages: 5,
			text:        "alpha beta gamma\n\ndelta epsilon\n\nzeta",
			want: []string{
				"(1/2)\nalpha beta gamma",
				"(2/2)\ndelta epsilon\n\nzeta",
			},
		},
		{
			name:        "long paragraph is split by lines",
			maxLength:   36,
			maxMessages: 5,
			text:        "line one is here\nline two is here\nline three",
			want: []string{
				"(1/3)\nline one is here",
				"(2/3)\nline two is here",
				"(3/3)\nline three",
			},
		},
		{
			name:        "long line is cut",
			maxLength:   26,
			maxMessages: 10,
			text:        strings.Repeat("x", 27),
			want: []string{
				"(1/3)\n" + strings.Repeat("x", 10),
				"(2/3)\n" + strings.Repeat("x", 10),
				"(3/3)\n" + strings.Repeat("x", 7),
			},
		},
		{
			name:        "extra parts are dropped",
			maxLength:   26,
			maxMessages: 2,
			text:        strings.Repeat("x", 27),
			want: []string{
				"(1/2)\n" + strings.Repeat("x", 10),
				"(2/2)\n" + strings.Repeat("x", 7) + "...",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Splitter{maxLength: tt.maxLength, maxMessages: tt.maxMessages}
			got := s.Split(tt.text)
			assert.Equal(t, tt.want, got)
			for _, part := range got {
				assert.LessOrEqual(t, utf8.RuneCountInString(part), tt.maxLength)
			}
		})
	}
}

func TestSplitter_countsRunes(t *testing.T) {
	s := NewSplitter(0)

	// 4000 кириллических символов занимают 8000 байт, но помещаются в одно сообщение
	text := strings.Repeat("я", 4000)
	assert.Equal(t, []string{text}, s.Split(text))

	long := strings.Repeat("слово ", 1500)
	parts := s.Split(long)
	assert.Len(t, parts, 3)
	for _, part := range parts {
		assert.LessOrEqual(t, utf8.RuneCountInString(part), MaxMessageLength)
	}
	assert.True(t, strings.HasPrefix(parts[0], "(1/3)\n"))
}
