// Package htmlconv converts a parsed HTML element tree into markdown lines
// plus scrape metadata (image URLs, rendered tables, source address). The
// two outputs are built by a single depth-first walk so their ordering
// always reflects document order.
package htmlconv

import (
	"strings"

	"github.com/dgallion1/mdharvest/internal/document"
	"golang.org/x/net/html"
)

// Convert walks the element tree rooted at root and produces one markdown
// string per logical block, together with the metadata collected along the
// way. Script and style subtrees contribute nothing, not even text. A nil
// root yields empty output.
func Convert(root *html.Node, baseURL string) ([]string, document.Metadata) {
	meta := document.Metadata{SourceURL: baseURL}
	var lines []string
	if root != nil {
		walk(root, &lines, &meta, baseURL, 0)
	}
	return lines, meta
}

// walk dispatches on element kind. Unhandled kinds emit nothing themselves
// and recurse into children at the same indent level.
func walk(n *html.Node, lines *[]string, meta *document.Metadata, baseURL string, indent int) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style":
			return

		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			*lines = append(*lines, strings.Repeat("#", level)+" "+flatText(n))
			return

		case "p":
			// The paragraph takes its own flattened text; anchors and images
			// inside it are emitted afterwards as separate lines rather than
			// being woven into the paragraph text.
			if t := textExcept(n, "a", "img"); t != "" {
				*lines = append(*lines, t)
			}
			emitInline(n, lines, meta, baseURL, indent)
			return

		case "ul", "ol":
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "li" {
					walk(c, lines, meta, baseURL, indent+1)
				}
			}
			return

		case "li":
			depth := indent - 1
			if depth < 0 {
				depth = 0
			}
			// Item text excludes nested lists; those are appended after the
			// item's own line, one level deeper.
			*lines = append(*lines, strings.Repeat("  ", depth)+"- "+textExcept(n, "ul", "ol"))
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
					walk(c, lines, meta, baseURL, indent+1)
				}
			}
			return

		case "strong", "b":
			*lines = append(*lines, "**"+flatText(n)+"**")
			return

		case "em", "i":
			*lines = append(*lines, "*"+flatText(n)+"*")
			return

		case "a":
			href := attr(n, "href")
			*lines = append(*lines, "["+flatText(n)+"]("+ResolveURL(baseURL, href)+")")
			return

		case "img":
			src := ResolveURL(baseURL, attr(n, "src"))
			*lines = append(*lines, "!["+attr(n, "alt")+"]("+src+")")
			meta.Images = append(meta.Images, src)
			return

		case "table":
			rendered := RenderTable(tableRows(n))
			*lines = append(*lines, rendered)
			meta.Tables = append(meta.Tables, rendered)
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, lines, meta, baseURL, indent)
	}
}

// emitInline visits descendant anchors and images in document order and
// hands them to the regular dispatch, so they render exactly as they would
// at top level.
func emitInline(n *html.Node, lines *[]string, meta *document.Metadata, baseURL string, indent int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "script", "style":
				continue
			case "a", "img":
				walk(c, lines, meta, baseURL, indent)
				continue
			}
		}
		emitInline(c, lines, meta, baseURL, indent)
	}
}

// flatText flattens all descendant text into one whitespace-collapsed string.
func flatText(n *html.Node) string {
	return textExcept(n)
}

// textExcept flattens descendant text, skipping script/style subtrees and
// any additional element kinds given in skip.
func textExcept(n *html.Node, skip ...string) string {
	var buf strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			return
		}
		if n.Type == html.ElementNode {
			if n.Data == "script" || n.Data == "style" {
				return
			}
			for _, s := range skip {
				if n.Data == s {
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// tableRows gathers cell text per table row in document order. Header cells
// come before data cells within a row, matching their source order in
// well-formed tables.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var findRows func(*html.Node)
	findRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			var findCells func(*html.Node, string)
			findCells = func(n *html.Node, tag string) {
				if n.Type == html.ElementNode && n.Data == tag {
					cells = append(cells, flatText(n))
					return
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					findCells(c, tag)
				}
			}
			findCells(n, "th")
			findCells(n, "td")
			rows = append(rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findRows(c)
		}
	}
	findRows(table)
	return rows
}

// FindBody locates the <body> element, or returns nil when the tree has none.
func FindBody(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := FindBody(c); b != nil {
			return b
		}
	}
	return nil
}
