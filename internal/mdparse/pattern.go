package mdparse

import (
	"fmt"
	"log/slog"
	"regexp"
)

// Element kinds produced by the parser. Header elements carry their level in
// the kind name (header_level_1 .. header_level_6).
const (
	KindHeader        = "header"
	KindOrderedList   = "ordered_list"
	KindUnorderedList = "unordered_list"
	KindImage         = "image"
	KindLink          = "link"
	KindParagraph     = "paragraph"
)

// HeaderKind returns the emitted kind name for a header of the given level.
func HeaderKind(level int) string {
	return fmt.Sprintf("header_level_%d", level)
}

// PatternSpec is one configured classification rule, prior to compilation.
type PatternSpec struct {
	Kind        string `yaml:"-"`
	Expr        string `yaml:"pattern"`
	Description string `yaml:"description"`
}

// Pattern is a compiled classification rule. Rules are evaluated in slice
// order and the first match wins, so ordering is part of the contract.
type Pattern struct {
	Kind        string
	Description string
	re          *regexp.Regexp
}

// DefaultPatterns returns the built-in rule table. The paragraph rule is a
// catch-all and must stay last.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Kind: KindHeader, Description: "Header elements (e.g., #, ##)", re: mustRule(`^(#{1,6})\s+(.*)`)},
		{Kind: KindOrderedList, Description: "Ordered list items", re: mustRule(`^(\d+\.)\s+(.*)`)},
		{Kind: KindUnorderedList, Description: "Unordered list items", re: mustRule(`^([-*+])\s+(.*)`)},
		{Kind: KindImage, Description: "Images", re: mustRule(`!\[.*?\]\((.*?)\)`)},
		{Kind: KindLink, Description: "Hyperlinks", re: mustRule(`\[.*?\]\((.*?)\)`)},
		{Kind: KindParagraph, Description: "Paragraph text", re: mustRule(`.+`)},
	}
}

// compileRule anchors the expression at the start of the line: a rule
// classifies a line by its prefix, never by a substring further in.
func compileRule(expr string) (*regexp.Regexp, error) {
	return regexp.Compile(`^(?:` + expr + `)`)
}

func mustRule(expr string) *regexp.Regexp {
	re, err := compileRule(expr)
	if err != nil {
		panic(err)
	}
	return re
}

// CompilePatterns compiles configured rules, preserving their order. A rule
// whose expression does not compile is logged and dropped rather than left
// in the table to silently misclassify.
func CompilePatterns(specs []PatternSpec, log *slog.Logger) []Pattern {
	if log == nil {
		log = slog.Default()
	}
	var patterns []Pattern
	for _, spec := range specs {
		re, err := compileRule(spec.Expr)
		if err != nil {
			log.Error("dropping element pattern", "kind", spec.Kind, "pattern", spec.Expr, "error", err)
			continue
		}
		patterns = append(patterns, Pattern{Kind: spec.Kind, Description: spec.Description, re: re})
	}
	return patterns
}
