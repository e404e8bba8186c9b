package loader

import (
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// extractPDF pulls plain text out of a PDF, page by page. Pages are joined
// with blank lines so the downstream parser sees paragraph breaks. When the
// Go library fails and the pdftotext fallback is enabled, that is tried
// before giving up.
func (l *Loader) extractPDF(path string) (string, error) {
	text, err := pdfText(path)
	if err != nil && l.FallbackPdftotext {
		l.log.Debug("pdf extraction failed, trying pdftotext", "path", path, "error", err)
		text, err = pdftotext(path)
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

func pdfText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if t := strings.TrimSpace(text); t != "" {
			pages = append(pages, t)
		}
	}
	return strings.Join(pages, "\n\n"), nil
}

func pdftotext(path string) (string, error) {
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
