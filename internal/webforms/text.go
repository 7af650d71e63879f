package webforms

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// TextNodes returns every descendant text node of the selection in document
// order, whitespace-only nodes included, each trimmed of surrounding space.
func TextNodes(sel *goquery.Selection) []string {
	var out []string
	for _, n := range sel.Nodes {
		collectText(n, &out)
	}
	return out
}

func collectText(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*out = append(*out, strings.TrimSpace(node.Data))
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, out)
	}
}
