package mdparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Document pairs the original source text with its parsed elements and hosts
// the read-only analytics views. All methods are pure transforms over the
// element sequence.
type Document struct {
	Source   string
	Elements []Element
}

// ParseDocument parses text and wraps the result for analysis.
func ParseDocument(text string, patterns []Pattern) *Document {
	return &Document{Source: text, Elements: Parse(text, patterns)}
}

// Statistics aggregates the analytics views into one record.
type Statistics struct {
	Summary                   map[string]int `json:"summary"`
	TotalLinks                int            `json:"total_links"`
	TotalImages               int            `json:"total_images"`
	TOC                       string         `json:"toc"`
	PlainTextLength           int            `json:"plain_text_length"`
	PlainTextWithAssociations []Element      `json:"plain_text_with_associations"`
}

// SummarizeStructure counts occurrences of each element kind.
func (d *Document) SummarizeStructure() map[string]int {
	summary := make(map[string]int)
	for _, e := range d.Elements {
		summary[e.Kind]++
	}
	return summary
}

// FilterElements returns the elements whose kind is in kinds, in document order.
func (d *Document) FilterElements(kinds ...string) []Element {
	keep := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		keep[k] = true
	}
	var filtered []Element
	for _, e := range d.Elements {
		if keep[e.Kind] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ExtractLinks returns every link URL in document order.
func (d *Document) ExtractLinks() []string {
	return d.contentsOf(KindLink)
}

// ExtractImages returns every image URL in document order.
func (d *Document) ExtractImages() []string {
	return d.contentsOf(KindImage)
}

func (d *Document) contentsOf(kind string) []string {
	var out []string
	for _, e := range d.Elements {
		if e.Kind == kind {
			out = append(out, e.Content)
		}
	}
	return out
}

// GenerateTOC builds a markdown table of contents with one entry per header
// element, indented by header level, each linking to the header's slug anchor.
func (d *Document) GenerateTOC() string {
	lines := []string{"## Table of Contents\n"}
	for _, e := range d.Elements {
		level, ok := headerLevel(e.Kind)
		if !ok {
			continue
		}
		indent := strings.Repeat("  ", level-1)
		lines = append(lines, indent+"- ["+e.Content+"](#"+Slugify(e.Content)+")")
	}
	return strings.Join(lines, "\n")
}

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	spaceRuns    = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-fragment-safe anchor from header text: lowercase,
// non-word/space/hyphen characters stripped, whitespace runs collapsed to a
// single hyphen.
func Slugify(text string) string {
	slug := strings.ToLower(nonSlugChars.ReplaceAllString(text, ""))
	return spaceRuns.ReplaceAllString(slug, "-")
}

func headerLevel(kind string) (int, bool) {
	rest, ok := strings.CutPrefix(kind, "header_level_")
	if !ok {
		return 0, false
	}
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 {
		return 0, false
	}
	return level, true
}

// ExtractPlainTextWithAssociations projects every element to its content
// while re-deriving parent linkage, so links and images keep their section
// context even though they are excluded from the plain-text join.
func (d *Document) ExtractPlainTextWithAssociations() []Element {
	var out []Element
	currentParent := ""
	for _, e := range d.Elements {
		if _, ok := headerLevel(e.Kind); ok {
			currentParent = e.Content
			out = append(out, Element{Kind: e.Kind, Content: e.Content})
			continue
		}
		out = append(out, Element{Kind: e.Kind, Content: e.Content, Parent: currentParent})
	}
	return out
}

// ExtractPlainText joins element contents in document order, excluding link
// and image elements.
func (d *Document) ExtractPlainText() string {
	var parts []string
	for _, e := range d.ExtractPlainTextWithAssociations() {
		if e.Kind == KindLink || e.Kind == KindImage {
			continue
		}
		parts = append(parts, e.Content)
	}
	return strings.Join(parts, "\n")
}

// ReplaceLinks substitutes replacement for every [text](url) occurrence in
// the original source whose URL matches a parsed link element. Two unrelated
// links sharing a URL are both replaced by the same pass; that over-match is
// part of the contract.
func (d *Document) ReplaceLinks(replacement string) string {
	updated := d.Source
	for _, e := range d.Elements {
		if e.Kind != KindLink {
			continue
		}
		re, err := regexp.Compile(`\[.*?\]\(` + regexp.QuoteMeta(e.Content) + `\)`)
		if err != nil {
			continue
		}
		updated = re.ReplaceAllString(updated, replacement)
	}
	return updated
}

// GetStatistics compiles all analytics views into a single record.
func (d *Document) GetStatistics() Statistics {
	return Statistics{
		Summary:                   d.SummarizeStructure(),
		TotalLinks:                len(d.ExtractLinks()),
		TotalImages:               len(d.ExtractImages()),
		TOC:                       d.GenerateTOC(),
		PlainTextLength:           len(d.ExtractPlainText()),
		PlainTextWithAssociations: d.ExtractPlainTextWithAssociations(),
	}
}
