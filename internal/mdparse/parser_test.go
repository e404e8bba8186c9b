package mdparse

import (
	"io"
	"log/slog"
	"reflect"
	"testing"
)

func TestParseScenario(t *testing.T) {
	elements := Parse("# Title\n\nSome text.\n\n- item one\n- item two\n", nil)

	want := []Element{
		{Kind: "header_level_1", Content: "Title"},
		{Kind: "paragraph", Content: "Some text.", Parent: "Title"},
		{Kind: "unordered_list", Content: "item one", Parent: "Title"},
		{Kind: "unordered_list", Content: "item two", Parent: "Title"},
	}
	if !reflect.DeepEqual(elements, want) {
		t.Errorf("expected %+v, got %+v", want, elements)
	}
}

func TestParseHeaderLevels(t *testing.T) {
	elements := Parse("## Two\n###### Six", nil)
	if elements[0].Kind != "header_level_2" {
		t.Errorf("expected header_level_2, got %s", elements[0].Kind)
	}
	if elements[1].Kind != "header_level_6" {
		t.Errorf("expected header_level_6, got %s", elements[1].Kind)
	}
	// A later header replaces the parent even at a shallower nominal depth.
	if elements[1].Parent != "" {
		t.Errorf("headers must not carry a parent, got %q", elements[1].Parent)
	}
}

func TestParseParentIsFlat(t *testing.T) {
	// The level-1 header overwrites the level-2 parent for everything after
	// it, regardless of nominal nesting.
	elements := Parse("## Section\ntext a\n# Chapter\ntext b", nil)
	if elements[1].Parent != "Section" {
		t.Errorf("expected parent Section, got %q", elements[1].Parent)
	}
	if elements[3].Parent != "Chapter" {
		t.Errorf("expected parent Chapter, got %q", elements[3].Parent)
	}
}

func TestParseOrderedList(t *testing.T) {
	elements := Parse("1. first\n2. second", nil)
	for i, e := range elements {
		if e.Kind != KindOrderedList {
			t.Errorf("element %d: expected ordered_list, got %s", i, e.Kind)
		}
	}
	if elements[0].Content != "first" {
		t.Errorf("expected content without the marker, got %q", elements[0].Content)
	}
}

func TestParseImageBeforeLink(t *testing.T) {
	elements := Parse("![alt](img.png)\n[text](page.html)", nil)

	if elements[0].Kind != KindImage || elements[0].Content != "img.png" {
		t.Errorf("expected image img.png, got %+v", elements[0])
	}
	if elements[1].Kind != KindLink || elements[1].Content != "page.html" {
		t.Errorf("expected link page.html, got %+v", elements[1])
	}
}

// Rule order is first-match-wins: with the link rule ahead of the image
// rule, an image line classifies as a link.
func TestParsePatternOrderSignificant(t *testing.T) {
	reversed := CompilePatterns([]PatternSpec{
		{Kind: KindParagraph, Expr: `.+`},
		{Kind: KindOrderedList, Expr: `^(\d+\.)\s+(.*)`},
	}, discardLogger())

	elements := Parse("1. first item", reversed)
	if elements[0].Kind != KindParagraph {
		t.Errorf("expected paragraph under reversed rule order, got %s", elements[0].Kind)
	}
	if elements[0].Content != "1. first item" {
		t.Errorf("expected raw line as content, got %q", elements[0].Content)
	}
}

func TestParseBlankLinesDropped(t *testing.T) {
	elements := Parse("\n\n   \n\ntext\n\n", nil)
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	if elements[0].Content != "text" {
		t.Errorf("expected text, got %q", elements[0].Content)
	}
}

func TestParseUnmatchedLineDefaultsToParagraph(t *testing.T) {
	// A rule table with no catch-all: the line matches nothing and must
	// still come through as a paragraph.
	patterns := CompilePatterns([]PatternSpec{
		{Kind: KindHeader, Expr: `^(#{1,6})\s+(.*)`},
	}, discardLogger())

	elements := Parse("# H\nplain line", patterns)
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
	if elements[1].Kind != KindParagraph {
		t.Errorf("expected paragraph fallback, got %s", elements[1].Kind)
	}
	if elements[1].Parent != "H" {
		t.Errorf("expected parent H, got %q", elements[1].Parent)
	}
}

func TestParseCustomKind(t *testing.T) {
	patterns := CompilePatterns([]PatternSpec{
		{Kind: "blockquote", Expr: `^>\s+.*`},
		{Kind: KindParagraph, Expr: `.+`},
	}, discardLogger())

	elements := Parse("> quoted words", patterns)
	if elements[0].Kind != "blockquote" {
		t.Errorf("expected blockquote, got %s", elements[0].Kind)
	}
	if elements[0].Content != "> quoted words" {
		t.Errorf("expected whole trimmed line as content, got %q", elements[0].Content)
	}
}

func TestCompilePatternsDropsBadRule(t *testing.T) {
	patterns := CompilePatterns([]PatternSpec{
		{Kind: "broken", Expr: `([`},
		{Kind: KindParagraph, Expr: `.+`},
	}, discardLogger())

	if len(patterns) != 1 {
		t.Fatalf("expected bad rule dropped, got %d rules", len(patterns))
	}
	if patterns[0].Kind != KindParagraph {
		t.Errorf("expected surviving rule paragraph, got %s", patterns[0].Kind)
	}
}

func TestParseNoBlankContent(t *testing.T) {
	for _, e := range Parse("# Title\n- x\n![a](u)\ntext", nil) {
		if e.Content == "" {
			t.Errorf("element %+v has empty content", e)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
