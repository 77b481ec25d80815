package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTag = regexp.MustCompile(`(?i)<(html|body|div|p|br|ul|ol|li|h[1-6]|span|strong|em|b|i|table|tr|td|section|article)\b[^>]*>`)

const blockSelector = "p, div, section, article, header, footer, ul, ol, li, tr, table, h1, h2, h3, h4, h5, h6, blockquote, pre"

// CleanJobDescription returns the job description as normalized plain text. Pasted HTML is
// reduced to its visible text first.
func CleanJobDescription(text string) string {
	if LooksLikeHTML(text) {
		if plain, err := HTMLToText(text); err == nil {
			text = plain
		}
	}
	return CleanText(text)
}

// LooksLikeHTML reports whether text contains common HTML markup.
func LooksLikeHTML(text string) bool {
	return htmlTag.MatchString(text)
}

// HTMLToText extracts the visible text of an HTML fragment. Block elements end with a line
// break and list items become "- " bullets.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return doc.Find("body").Text(), nil
}
