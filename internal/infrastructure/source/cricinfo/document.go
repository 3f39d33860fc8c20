package cricinfo

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/crickstat/xfactor/internal/usecase"
)

const (
	pageTitleClass  = "SubnavSitesection"
	dataRowClass    = "data1"
	matchLinkPrefix = "/ci/engine/match/"
)

// ParseFieldingPage extracts the parts of a fielding history page the
// pipeline consumes: the section heading, the inline scripts, and the data
// rows of the innings table. Markup quirks elsewhere on the page are
// ignored rather than fatal.
func ParseFieldingPage(raw []byte) (usecase.SourceDocument, error) {
	root, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return usecase.SourceDocument{}, fmt.Errorf("parse html: %w", err)
	}

	var doc usecase.SourceDocument

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H1:
				if doc.PageTitle == "" && hasClass(n, pageTitleClass) {
					doc.PageTitle = textContent(n)
				}
			case atom.Script:
				if script := textContent(n); script != "" {
					doc.Scripts = append(doc.Scripts, script)
				}
			case atom.Tr:
				if hasClass(n, dataRowClass) {
					doc.Rows = append(doc.Rows, parseDataRow(n))
					return
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return doc, nil
}

func parseDataRow(tr *html.Node) usecase.SourceRow {
	var row usecase.SourceRow
	for cell := tr.FirstChild; cell != nil; cell = cell.NextSibling {
		if cell.Type != html.ElementNode || cell.DataAtom != atom.Td {
			continue
		}
		row.Cells = append(row.Cells, strings.TrimSpace(textContent(cell)))
		if row.MatchLink == "" {
			if href, ok := matchAnchorHref(cell); ok {
				row.MatchLink = href
			}
		}
	}
	return row
}

// matchAnchorHref finds an anchor inside the cell pointing at the match
// archive. Other links (grounds, series) share the table and are ignored.
func matchAnchorHref(cell *html.Node) (string, bool) {
	for n := cell.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			href := attrValue(n, "href")
			if strings.HasPrefix(href, matchLinkPrefix) {
				return href, true
			}
		}
		if href, ok := matchAnchorHref(n); ok {
			return href, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attrValue(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
