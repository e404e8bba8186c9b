// Package loader reads local documents and normalizes each one into
// markdown-ish text ready for the structural parser and chunker. It is the
// file-system collaborator; the parsing core never reads files itself.
package loader

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/mdharvest/internal/document"
	"github.com/dgallion1/mdharvest/internal/htmlconv"
	"golang.org/x/net/html"
)

// SupportedExtensions lists the file extensions the loader can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".csv":  true,
	".pdf":  true,
	".docx": true,
}

// Loader reads documents from the local file system.
type Loader struct {
	// FallbackPdftotext enables shelling out to pdftotext when the Go PDF
	// library cannot extract text.
	FallbackPdftotext bool

	log *slog.Logger
}

func New(log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{log: log}
}

// LoadDir walks dir and loads every supported file. Unsupported extensions
// are skipped with a log line; a file that fails to load is logged and
// skipped, never fatal to the rest of the directory.
func (l *Loader) LoadDir(dir string) ([]document.Document, error) {
	var docs []document.Document
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !SupportedExtensions[ext] {
			l.log.Debug("skipping unsupported file", "path", path)
			return nil
		}
		doc, err := l.LoadFile(path)
		if err != nil {
			l.log.Error("failed to load file", "path", path, "error", err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return docs, nil
}

// LoadFile reads one file, dispatching on extension.
func (l *Loader) LoadFile(path string) (document.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return document.Document{}, err
		}
		return document.Document{
			Content: string(data),
			Meta:    document.Metadata{SourceURL: path},
		}, nil

	case ".html", ".htm":
		return l.loadHTML(path)

	case ".csv":
		return l.loadCSV(path)

	case ".pdf":
		text, err := l.extractPDF(path)
		if err != nil {
			return document.Document{}, fmt.Errorf("extract pdf: %w", err)
		}
		return document.Document{
			Content: text,
			Meta:    document.Metadata{SourceURL: path},
		}, nil

	case ".docx":
		text, err := extractDOCX(path)
		if err != nil {
			return document.Document{}, fmt.Errorf("extract docx: %w", err)
		}
		return document.Document{
			Content: text,
			Meta:    document.Metadata{SourceURL: path},
		}, nil
	}
	return document.Document{}, fmt.Errorf("unsupported file extension: %s", ext)
}

// loadHTML converts a local HTML file through the same converter the scraper
// uses, with a file URL as the resolution base.
func (l *Loader) loadHTML(path string) (document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return document.Document{}, err
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return document.Document{}, fmt.Errorf("parse html: %w", err)
	}

	node := htmlconv.FindBody(root)
	if node == nil {
		node = root
	}

	base := "file://" + filepath.ToSlash(path)
	lines, meta := htmlconv.Convert(node, base)
	return document.Document{
		Content: strings.Join(lines, "\n"),
		Meta:    meta,
	}, nil
}

// loadCSV renders the file as one markdown table, first record as header.
func (l *Loader) loadCSV(path string) (document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return document.Document{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return document.Document{}, fmt.Errorf("parse csv: %w", err)
	}

	rendered := htmlconv.RenderTable(records)
	meta := document.Metadata{SourceURL: path}
	if rendered != "" {
		meta.Tables = append(meta.Tables, rendered)
	}
	return document.Document{Content: rendered, Meta: meta}, nil
}
