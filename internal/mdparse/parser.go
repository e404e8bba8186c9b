// Package mdparse classifies markdown text line by line into typed elements
// and derives aggregate views (table of contents, link and image
// inventories, plain-text projection, statistics) over the result.
//
// It deliberately does not use a markdown AST library: classification is an
// ordered first-match-wins regex table so callers can reconfigure or extend
// the element kinds, and so the line-oriented semantics stay predictable for
// converter output that is not strict CommonMark.
package mdparse

import "strings"

// Element is one classified line of markdown. Parent is the text of the most
// recent header preceding the element, regardless of header depth; headers
// themselves carry no parent.
type Element struct {
	Kind    string `json:"type"`
	Content string `json:"content"`
	Parent  string `json:"parent,omitempty"`
}

// Parse classifies each non-blank line of text against patterns in order,
// first match wins. Lines matching no rule are kept as paragraphs — input is
// never dropped for being unclassifiable. A nil pattern table means
// DefaultPatterns.
func Parse(text string, patterns []Pattern) []Element {
	if patterns == nil {
		patterns = DefaultPatterns()
	}

	var elements []Element
	currentParent := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		matched := false
		for _, p := range patterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			switch p.Kind {
			case KindHeader:
				level := len(group(m, 1))
				if level < 1 || level > 6 {
					level = 1
				}
				headerText := strings.TrimSpace(group(m, 2))
				currentParent = headerText
				elements = append(elements, Element{Kind: HeaderKind(level), Content: headerText})
			case KindOrderedList, KindUnorderedList:
				elements = append(elements, Element{
					Kind:    p.Kind,
					Content: strings.TrimSpace(group(m, 2)),
					Parent:  currentParent,
				})
			case KindImage, KindLink:
				elements = append(elements, Element{
					Kind:    p.Kind,
					Content: strings.TrimSpace(group(m, 1)),
					Parent:  currentParent,
				})
			default:
				// Paragraph and any configured custom kinds carry the whole
				// trimmed line.
				elements = append(elements, Element{
					Kind:    p.Kind,
					Content: strings.TrimSpace(line),
					Parent:  currentParent,
				})
			}
			matched = true
			break
		}

		if !matched {
			elements = append(elements, Element{
				Kind:    KindParagraph,
				Content: strings.TrimSpace(line),
				Parent:  currentParent,
			})
		}
	}

	return elements
}

// group returns submatch i, or "" when the rule captured fewer groups than
// its kind expects.
func group(m []string, i int) string {
	if i >= len(m) {
		return ""
	}
	return m[i]
}
