package document

// Metadata is collected alongside the markdown conversion of a single page.
type Metadata struct {
	Images    []string `json:"images" yaml:"images"`
	Tables    []string `json:"tables" yaml:"tables"`
	SourceURL string   `json:"source_url" yaml:"source_url"`
}

// Document is one harvested page or file: normalized markdown plus metadata.
type Document struct {
	Content string   `json:"content" yaml:"content"`
	Meta    Metadata `json:"metadata" yaml:"metadata"`
}

// Chunk is a sized text segment with its section context, ready for indexing.
type Chunk struct {
	Text    string `json:"text"`
	Index   int    `json:"index"`
	Section string `json:"section,omitempty"` // Nearest preceding header, if any.
}
