// Package store persists harvested documents to disk: markdown content, a
// YAML metadata sidecar, and optionally an HTML rendering of the markdown.
package store

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/mdharvest/internal/document"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Store writes documents under a base directory.
type Store struct {
	dir        string
	renderHTML bool
	md         goldmark.Markdown
	log        *slog.Logger
}

func New(dir string, renderHTML bool, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		dir:        dir,
		renderHTML: renderHTML,
		md:         goldmark.New(),
		log:        log,
	}
}

// Save writes each document as document_N.md plus document_N_metadata.yaml,
// and document_N.html when HTML rendering is enabled. Numbering is
// 1-indexed in input order.
func (s *Store) Save(docs []document.Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i, doc := range docs {
		base := fmt.Sprintf("document_%d", i+1)

		mdPath := filepath.Join(s.dir, base+".md")
		if err := os.WriteFile(mdPath, []byte(doc.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", mdPath, err)
		}

		metaPath := filepath.Join(s.dir, base+"_metadata.yaml")
		metaBytes, err := yaml.Marshal(doc.Meta)
		if err != nil {
			return fmt.Errorf("marshal metadata for %s: %w", base, err)
		}
		if err := os.WriteFile(metaPath, metaBytes, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", metaPath, err)
		}

		if s.renderHTML {
			var buf bytes.Buffer
			if err := s.md.Convert([]byte(doc.Content), &buf); err != nil {
				return fmt.Errorf("render html for %s: %w", base, err)
			}
			htmlPath := filepath.Join(s.dir, base+".html")
			if err := os.WriteFile(htmlPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", htmlPath, err)
			}
		}

		s.log.Info("saved document", "path", mdPath, "source_url", doc.Meta.SourceURL)
	}
	return nil
}
