// Package scraper fetches configured pages over HTTP and runs them through
// the markdown converter. It is the only component in the repo that touches
// the network; the conversion core never does I/O.
package scraper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/mdharvest/internal/config"
	"github.com/dgallion1/mdharvest/internal/document"
	"github.com/dgallion1/mdharvest/internal/htmlconv"
	"golang.org/x/net/html"
)

const maxPageBytes = 10 << 20

// Scraper fetches start URLs with a configured user agent and pacing delay.
type Scraper struct {
	cfg    config.Scrape
	client *http.Client
	log    *slog.Logger

	// Stats tracks fetch latencies and volume within a rolling window.
	Stats *FetchStats
}

func New(cfg config.Scrape, log *slog.Logger) *Scraper {
	if log == nil {
		log = slog.Default()
	}
	return &Scraper{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:   log,
		Stats: NewFetchStats(time.Hour),
	}
}

// Scrape visits every configured start URL in order and returns the
// documents that converted successfully. A failing URL is logged and
// skipped; one bad page never aborts the run. The configured delay is
// applied between requests and honors ctx cancellation.
func (s *Scraper) Scrape(ctx context.Context) []document.Document {
	var docs []document.Document
	for i, u := range s.cfg.StartURLs {
		if i > 0 && s.cfg.Delay > 0 {
			select {
			case <-time.After(time.Duration(s.cfg.Delay * float64(time.Second))):
			case <-ctx.Done():
				s.log.Info("scrape cancelled", "visited", i)
				return docs
			}
		}

		doc, err := s.ScrapeURL(ctx, u)
		if err != nil {
			s.log.Error("failed to scrape url", "url", u, "error", err)
			continue
		}
		docs = append(docs, *doc)
		s.log.Debug("scraped url", "url", u, "lines", strings.Count(doc.Content, "\n")+1)
	}
	return docs
}

// ScrapeURL fetches one page and converts its body to markdown plus metadata.
func (s *Scraper) ScrapeURL(ctx context.Context, rawURL string) (*document.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rawURL, err)
	}
	s.Stats.Record(time.Since(start).Milliseconds(), int64(len(body)))

	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", rawURL, err)
	}

	node := htmlconv.FindBody(root)
	if node == nil {
		node = root
	}

	lines, meta := htmlconv.Convert(node, rawURL)
	return &document.Document{
		Content: strings.Join(lines, "\n"),
		Meta:    meta,
	}, nil
}
