package brickarchitect

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// guideTitle is the site's name for the taxonomy root. It is rewritten to
// RootTerm so every breadcrumb shares the same root entry.
const guideTitle = "The LEGO Parts Guide"

var titleCaser = cases.Title(language.English)

// parseBreadcrumb extracts the ordered category path from the part page's
// chapternav block, root-most term first.
func parseBreadcrumb(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	nav := findByClass(doc, "div", "chapternav")
	if nav == nil {
		return nil, errors.New("no chapternav block in page")
	}

	var labels []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if text := strings.TrimSpace(textContent(n)); text != "" {
				labels = append(labels, normalizeTerm(text))
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(nav)

	if len(labels) == 0 {
		return nil, errors.New("empty breadcrumb")
	}
	return labels, nil
}

// normalizeTerm unifies breadcrumb casing. The site mixes title-cased and
// all-caps category names; shouting terms are retitled so the same category
// always encodes to the same column.
func normalizeTerm(term string) string {
	if term == guideTitle {
		return RootTerm
	}
	if isShouting(term) {
		return titleCaser.String(strings.ToLower(term))
	}
	return term
}

// isShouting reports whether a term contains letters and all of them are
// uppercase.
func isShouting(term string) bool {
	upper := strings.ToUpper(term)
	return upper == term && strings.ToLower(term) != term
}

func findByClass(n *html.Node, element, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == element {
		for _, attr := range n.Attr {
			if attr.Key == "class" && hasClass(attr.Val, class) {
				return n
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findByClass(child, element, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(attrValue, class string) bool {
	for _, candidate := range strings.Fields(attrValue) {
		if candidate == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
