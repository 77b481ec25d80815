package chunking

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRecursiveSplitter_Split(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		text    string
		want    []string
	}{
		{
			name: "fits in one chunk",
			size: 100, overlap: 5,
			text: "  Senior engineer at Acme  ",
			want: []string{"Senior engineer at Acme"},
		},
		{
			name: "words packed up to size",
			size: 10, overlap: 3,
			text: "aaaa bbbb cccc dddd",
			want: []string{"aaaa bbbb", "cccc dddd"},
		},
		{
			name: "overlap carries trailing words",
			size: 10, overlap: 4,
			text: "ab cd ef gh ij kl",
			want: []string{"ab cd ef", "ef gh ij", "ij kl"},
		},
		{
			name: "no separators falls back to runes",
			size: 4, overlap: 0,
			text: "abcdefghij",
			want: []string{"abcd", "efgh", "ij"},
		},
		{
			name: "paragraphs before lines before words",
			size: 12, overlap: 0,
			text: "first para\n\nsecond para here",
			want: []string{"first para", "second para", "here"},
		},
		{
			name: "empty text",
			size: 10, overlap: 0,
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			size: 10, overlap: 0,
			text: " \n\n \n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRecursiveSplitter(tt.size, tt.overlap)
			assert.Equal(t, tt.want, s.Split(tt.text))
		})
	}
}

func TestRecursiveSplitter_ChunksRespectSize(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("Développé des services à grande échelle")
		if i%7 == 0 {
			sb.WriteString("\n\n")
		} else if i%3 == 0 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(". ")
		}
	}
	sb.WriteString(strings.Repeat("x", 250))

	s := NewRecursiveSplitter(120, 20)
	chunks := s.Split(sb.String())

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 120)
		assert.NotEmpty(t, c)
		assert.Equal(t, strings.TrimSpace(c), c)
	}
}

func TestRecursiveSplitter_PreservesAllWords(t *testing.T) {
	words := make([]string, 300)
	for i := range words {
		words[i] = "word" + strings.Repeat("z", i%9)
	}
	text := strings.Join(words, " ")

	chunks := NewRecursiveSplitter(50, 0).Split(text)

	// without overlap the chunks partition the words
	var rejoined []string
	for _, c := range chunks {
		rejoined = append(rejoined, strings.Fields(c)...)
	}
	assert.Equal(t, words, rejoined)
}

func TestSplitKeepingSeparator(t *testing.T) {
	assert.Equal(t, []string{"a", "\n\nb", "\n\nc"}, splitKeepingSeparator("a\n\nb\n\nc", "\n\n"))
	assert.Equal(t, []string{"\nx"}, splitKeepingSeparator("\nx", "\n"))
	assert.Equal(t, []string{"h", "é", "y"}, splitKeepingSeparator("héy", ""))
	assert.Empty(t, splitKeepingSeparator("", " "))
}
