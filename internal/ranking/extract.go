package ranking

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// tableClass is the exact class attribute of the league-table list items.
	tableClass = "swiper-slide uni_nam lt_list2"
	// tableIndex selects which matching item holds the institution names.
	tableIndex = 1
	// entrySeparator follows every institution name in the item's text.
	entrySeparator = "VIEW COURSES"
	// MaxEntries caps the number of names returned.
	MaxEntries = 20
)

// ErrTableNotFound is returned when the page lacks the expected list item.
var ErrTableNotFound = errors.New("ranking table not found in page")

// ExtractUniversities parses an HTML league-table page and returns at most
// MaxEntries institution names in ranking order.
func ExtractUniversities(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	items := doc.Find("li").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		return ok && class == tableClass
	})
	if items.Length() <= tableIndex {
		return nil, ErrTableNotFound
	}

	text := strippedText(items.Eq(tableIndex))

	names := make([]string, 0, MaxEntries)
	for _, fragment := range strings.Split(text, entrySeparator) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		names = append(names, fragment)
		if len(names) == MaxEntries {
			break
		}
	}
	if len(names) == 0 {
		return nil, ErrTableNotFound
	}
	return names, nil
}

// strippedText concatenates every text node under s in document order, each
// trimmed of surrounding whitespace, with no separator.
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}
