// Package chunker splits text into overlapping word-count-bounded segments
// for downstream retrieval indexing.
package chunker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/mdharvest/internal/document"
	"github.com/dgallion1/mdharvest/internal/mdparse"
)

// ErrInvalidConfig reports a chunking configuration whose stride would never
// advance.
var ErrInvalidConfig = errors.New("invalid chunk configuration")

// Split divides text into chunks of up to size words, with consecutive
// chunks sharing overlap words. The final chunk may be shorter. Empty input
// yields no chunks. overlap must be non-negative and smaller than size;
// anything else would loop forever and is rejected with ErrInvalidConfig.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: size=%d overlap=%d", ErrInvalidConfig, size, overlap)
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}

	stride := size - overlap
	var chunks []string
	for start := 0; start < len(words); start += stride {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks, nil
}

// SplitDocument windows a parsed document section by section. Elements are
// grouped under their header (links and images are skipped, matching the
// plain-text projection) and each section's text is split independently, so
// no chunk straddles a header boundary. Chunk indexes are sequential across
// the whole document.
func SplitDocument(doc *mdparse.Document, size, overlap int) ([]document.Chunk, error) {
	if doc == nil {
		return nil, nil
	}

	type section struct {
		header string
		parts  []string
	}
	var sections []section
	var current section

	flush := func() {
		if len(current.parts) > 0 {
			sections = append(sections, current)
		}
	}

	for _, e := range doc.Elements {
		switch e.Kind {
		case mdparse.KindLink, mdparse.KindImage:
			continue
		}
		if e.Parent == "" && strings.HasPrefix(e.Kind, "header_level_") {
			flush()
			current = section{header: e.Content}
			continue
		}
		current.parts = append(current.parts, e.Content)
	}
	flush()

	var chunks []document.Chunk
	index := 0
	for _, sec := range sections {
		parts, err := Split(strings.Join(sec.parts, "\n"), size, overlap)
		if err != nil {
			return nil, err
		}
		for _, text := range parts {
			chunks = append(chunks, document.Chunk{Text: text, Index: index, Section: sec.header})
			index++
		}
	}
	return chunks, nil
}
