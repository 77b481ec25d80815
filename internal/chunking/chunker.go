// Package chunking turns an uploaded resume into an ordered list of text chunks: a Word
// document is flattened and split by size, a PDF yields one chunk per page.
package chunking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Supported document media types.
const (
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypePDF  = "application/pdf"
)

// Splitter settings for flattened documents.
const (
	DefaultChunkSize    = 3000
	DefaultChunkOverlap = 20
)

const typeOctetStream = "application/octet-stream"

// ErrUnsupportedType is wrapped by every UnsupportedTypeError.
var ErrUnsupportedType = errors.New("unsupported document type")

// UnsupportedTypeError reports a content type the chunker cannot read.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported document type %q: expected a .docx or .pdf file", e.ContentType)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// DocumentError reports a document of a supported type that could not be read.
type DocumentError struct {
	ContentType string
	Cause       error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("failed to read %s document: %v", e.ContentType, e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Chunk is one ordered piece of document text. Index is the position in document order.
type Chunk struct {
	Index   int
	Content string
}

// Chunker reads supported documents into chunks.
type Chunker struct {
	splitter *RecursiveSplitter
}

// New returns a chunker with the default splitter settings.
func New() *Chunker {
	return &Chunker{splitter: NewRecursiveSplitter(DefaultChunkSize, DefaultChunkOverlap)}
}

// NewWithSplitter returns a chunker that splits flattened documents with splitter.
func NewWithSplitter(splitter *RecursiveSplitter) *Chunker {
	return &Chunker{splitter: splitter}
}

// Chunk reads data as the declared content type. An empty or generic declared type is resolved
// by sniffing the content.
func (c *Chunker) Chunk(data []byte, contentType string) ([]Chunk, error) {
	resolved := ResolveContentType(data, contentType)

	switch resolved {
	case TypeDOCX:
		text, err := docxText(data)
		if err != nil {
			return nil, &DocumentError{ContentType: resolved, Cause: err}
		}
		return indexed(c.splitter.Split(text)), nil
	case TypePDF:
		pages, err := pdfPages(data)
		if err != nil {
			return nil, &DocumentError{ContentType: resolved, Cause: err}
		}
		return indexed(pages), nil
	default:
		return nil, &UnsupportedTypeError{ContentType: resolved}
	}
}

// ResolveContentType normalizes a declared media type, falling back to content sniffing when
// the declaration is missing or generic.
func ResolveContentType(data []byte, declared string) string {
	normalized := normalizeMediaType(declared)
	if normalized != "" && normalized != typeOctetStream {
		return normalized
	}

	detected := mimetype.Detect(data)
	for _, supported := range []string{TypeDOCX, TypePDF} {
		if detected.Is(supported) {
			return supported
		}
	}
	return normalizeMediaType(detected.String())
}

func normalizeMediaType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func indexed(contents []string) []Chunk {
	chunks := make([]Chunk, len(contents))
	for i, content := range contents {
		chunks[i] = Chunk{Index: i, Content: content}
	}
	return chunks
}
