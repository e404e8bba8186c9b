package htmlconv

import (
	"strings"
	"testing"
)

func TestRenderTableBasic(t *testing.T) {
	rows := [][]string{
		{"Name", "Age"},
		{"Alice", "30"},
		{"Bob", "25"},
	}
	got := RenderTable(rows)
	want := "| Name | Age |\n| --- | --- |\n| Alice | 30 |\n| Bob | 25 |"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := RenderTable([][]string{}); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestRenderTableShortRowsPadded(t *testing.T) {
	rows := [][]string{
		{"A", "B", "C"},
		{"1"},
		{"2", "3"},
	}
	got := RenderTable(rows)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[1] != "| --- | --- | --- |" {
		t.Errorf("separator: got %q", lines[1])
	}
	if lines[2] != "| 1 |  |  |" {
		t.Errorf("short row not padded: got %q", lines[2])
	}
	if lines[3] != "| 2 | 3 |  |" {
		t.Errorf("short row not padded: got %q", lines[3])
	}
}

// Data rows follow the widest row's column count; the header row is never
// padded or truncated.
func TestRenderTableHeaderNotPadded(t *testing.T) {
	rows := [][]string{
		{"Only"},
		{"a", "b", "c"},
	}
	got := RenderTable(rows)
	lines := strings.Split(got, "\n")
	if lines[0] != "| Only |" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "| --- | --- | --- |" {
		t.Errorf("separator: got %q", lines[1])
	}
	if lines[2] != "| a | b | c |" {
		t.Errorf("data: got %q", lines[2])
	}
}

func TestRenderTableLineCountProperty(t *testing.T) {
	cases := [][][]string{
		{{"h"}},
		{{"h1", "h2"}, {"a", "b"}},
		{{"h"}, {"a"}, {"b"}, {"c"}},
	}
	for _, rows := range cases {
		got := RenderTable(rows)
		lines := strings.Split(got, "\n")
		if len(lines) != len(rows)+1 {
			t.Errorf("rows=%d: expected %d lines, got %d", len(rows), len(rows)+1, len(lines))
		}
		// Every data line has the same number of cells as the separator.
		sepCells := strings.Count(lines[1], "|") - 1
		for _, line := range lines[2:] {
			if cells := strings.Count(line, "|") - 1; cells != sepCells {
				t.Errorf("cell count mismatch: separator %d, line %q has %d", sepCells, line, cells)
			}
		}
	}
}
