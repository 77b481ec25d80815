package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_DOCX(t *testing.T) {
	body := paragraph("Jane Doe") +
		paragraph("Software Engineer at Acme") +
		`<w:tbl><w:tr><w:tc>` + paragraph("Go") + `</w:tc><w:tc>` + paragraph("5 years") + `</w:tc></w:tr></w:tbl>` +
		`<w:p><w:r><w:t>Built</w:t><w:tab/><w:t>services</w:t></w:r></w:p>`
	data := buildDocx(t, body)

	chunks, err := New().Chunk(data, TypeDOCX)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "Jane Doe Software Engineer at Acme Go 5 years Built\tservices", chunks[0].Content)
}

func TestChunk_DOCXSplitsLongDocuments(t *testing.T) {
	var body strings.Builder
	for i := 0; i < 200; i++ {
		body.WriteString(paragraph("Led a team of engineers delivering payment infrastructure across regions."))
	}
	data := buildDocx(t, body.String())

	chunks, err := NewWithSplitter(NewRecursiveSplitter(500, 20)).Chunk(data, TypeDOCX)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.LessOrEqual(t, len([]rune(c.Content)), 500)
	}
}

func TestChunk_DOCXEmptyBody(t *testing.T) {
	chunks, err := New().Chunk(buildDocx(t, ""), TypeDOCX)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunk_PDFOnePerPage(t *testing.T) {
	data := buildPDF([]string{"Hello page one", "", "Hello page three"})

	chunks, err := New().Chunk(data, TypePDF)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, 0, chunks[0].Index)
	assert.Contains(t, chunks[0].Content, "Hello page one")
	assert.Equal(t, 1, chunks[1].Index)
	assert.Empty(t, strings.TrimSpace(chunks[1].Content))
	assert.Equal(t, 2, chunks[2].Index)
	assert.Contains(t, chunks[2].Content, "Hello page three")
}

func TestChunk_UnsupportedType(t *testing.T) {
	_, err := New().Chunk([]byte("plain resume text"), "text/plain")

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "text/plain", unsupported.ContentType)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestChunk_CorruptDocuments(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		contentType string
	}{
		{"docx that is not a zip", []byte("definitely not a zip archive"), TypeDOCX},
		{"pdf with a broken body", []byte("%PDF-1.4\n1 0 obj\n<<\nendobj\n"), TypePDF},
		{"pdf without a header", []byte("hello"), TypePDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Chunk(tt.data, tt.contentType)

			var docErr *DocumentError
			require.ErrorAs(t, err, &docErr)
			assert.Equal(t, tt.contentType, docErr.ContentType)
			assert.NotErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestResolveContentType(t *testing.T) {
	pdf := buildPDF([]string{"x"})

	tests := []struct {
		name     string
		data     []byte
		declared string
		want     string
	}{
		{"declared pdf", pdf, "application/pdf", TypePDF},
		{"parameters and case", pdf, " Application/PDF; charset=binary", TypePDF},
		{"declared docx kept", []byte("x"), TypeDOCX, TypeDOCX},
		{"octet-stream sniffed", pdf, "application/octet-stream", TypePDF},
		{"empty sniffed", pdf, "", TypePDF},
		{"sniffed text", []byte("just some text"), "", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveContentType(tt.data, tt.declared))
		})
	}
}

func TestParagraphTexts(t *testing.T) {
	xmlDoc := `<w:document xmlns:w="` + wordNamespace + `"><w:body>` +
		paragraph("one") +
		`<w:p><w:r><w:t>line</w:t><w:br/><w:t>break</w:t></w:r></w:p>` +
		`<w:p/>` +
		`<w:sectPr><w:t>outside</w:t></w:sectPr>` +
		`</w:body></w:document>`

	paragraphs, err := paragraphTexts(xmlDoc)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "line\nbreak", ""}, paragraphs)

	_, err = paragraphTexts("<w:document><w:p>")
	assert.Error(t, err)
}
