package chunking

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// docxText returns the text of every paragraph in document order, joined with single spaces.
// Paragraphs inside tables are included.
func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	paragraphs, err := paragraphTexts(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, " "), nil
}

// paragraphTexts walks WordprocessingML and collects the text runs of each w:p element.
func paragraphTexts(documentXML string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(documentXML))

	var paragraphs []string
	var current strings.Builder
	depth := 0
	inText := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = depth > 0
			case "tab":
				if depth > 0 {
					current.WriteString("\t")
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteString("\n")
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}
