package fetcher

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// titleExtractors and descriptionExtractors are ordered cascades over the
// parsed document: the first extractor returning a non-empty string wins,
// and the sentinel "N/A" covers pages where none do.
var titleExtractors = []func(*goquery.Document) string{
	func(doc *goquery.Document) string {
		return strings.TrimSpace(doc.Find("title").First().Text())
	},
	func(doc *goquery.Document) string {
		return metaContent(doc, "meta[property='og:title']")
	},
}

var descriptionExtractors = []func(*goquery.Document) string{
	func(doc *goquery.Document) string {
		return metaContent(doc, "meta[name='description']")
	},
	func(doc *goquery.Document) string {
		return metaContent(doc, "meta[property='og:description']")
	},
	func(doc *goquery.Document) string {
		return metaContent(doc, "meta[name='Description']")
	},
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// extractMetadata parses an HTML body and resolves title and description
// through their extractor cascades.
func extractMetadata(body io.Reader) (title, description string, err error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", "", err
	}

	title = firstNonEmpty(doc, titleExtractors)
	description = firstNonEmpty(doc, descriptionExtractors)
	return title, description, nil
}

func firstNonEmpty(doc *goquery.Document, extractors []func(*goquery.Document) string) string {
	for _, extract := range extractors {
		if v := extract(doc); v != "" {
			return v
		}
	}
	return NotAvailable
}
