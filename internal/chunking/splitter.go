package chunking

import (
	"strings"
	"unicode/utf8"
)

// DefaultSeparators are tried in order; the empty separator splits between runes.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// RecursiveSplitter splits text into chunks of at most ChunkSize runes. It breaks on the first
// separator that occurs in the text and recurses with the remaining separators into pieces that
// are still too long. Separators stay attached to the start of the piece that follows them, and
// consecutive chunks share up to ChunkOverlap runes.
type RecursiveSplitter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

// NewRecursiveSplitter returns a splitter using DefaultSeparators.
func NewRecursiveSplitter(chunkSize, chunkOverlap int) *RecursiveSplitter {
	return &RecursiveSplitter{
		ChunkSize:    chunkSize,
		ChunkOverlap: chunkOverlap,
		Separators:   DefaultSeparators,
	}
}

// Split returns the trimmed, non-empty chunks of text.
func (s *RecursiveSplitter) Split(text string) []string {
	return s.split(text, s.Separators)
}

func (s *RecursiveSplitter) split(text string, separators []string) []string {
	separator := ""
	var remaining []string
	if len(separators) > 0 {
		separator = separators[len(separators)-1]
	}
	for i, sep := range separators {
		if sep == "" {
			separator = sep
			break
		}
		if strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	var chunks []string
	var good []string
	for _, piece := range splitKeepingSeparator(text, separator) {
		if runeLen(piece) < s.ChunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			chunks = append(chunks, s.merge(good)...)
			good = nil
		}
		if len(remaining) == 0 {
			if trimmed := strings.TrimSpace(piece); trimmed != "" {
				chunks = append(chunks, trimmed)
			}
			continue
		}
		chunks = append(chunks, s.split(piece, remaining)...)
	}
	if len(good) > 0 {
		chunks = append(chunks, s.merge(good)...)
	}
	return chunks
}

// merge packs pieces into chunks no longer than ChunkSize, carrying a tail of at most
// ChunkOverlap runes from one chunk into the next. Pieces already hold their separators.
func (s *RecursiveSplitter) merge(pieces []string) []string {
	var chunks []string
	var current []string
	total := 0

	for _, piece := range pieces {
		n := runeLen(piece)
		if total+n > s.ChunkSize && len(current) > 0 {
			if chunk := joinChunk(current); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > s.ChunkOverlap || (total+n > s.ChunkSize && total > 0) {
				total -= runeLen(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n
	}

	if chunk := joinChunk(current); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func joinChunk(pieces []string) string {
	return strings.TrimSpace(strings.Join(pieces, ""))
}

func splitKeepingSeparator(text, separator string) []string {
	var pieces []string
	if separator == "" {
		pieces = make([]string, 0, len(text))
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}

	parts := strings.Split(text, separator)
	pieces = make([]string, 0, len(parts))
	for i, part := range parts {
		if i > 0 {
			part = separator + part
		}
		if part != "" {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
