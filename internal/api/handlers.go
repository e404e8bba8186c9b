package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgallion1/mdharvest/internal/chunker"
	"github.com/dgallion1/mdharvest/internal/document"
	"github.com/dgallion1/mdharvest/internal/htmlconv"
	"github.com/dgallion1/mdharvest/internal/mdparse"
	"golang.org/x/net/html"
)

// handleConvert converts a raw HTML request body to markdown plus metadata.
// A base_url query parameter anchors relative link resolution.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	root, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		jsonError(w, "invalid html: "+err.Error(), http.StatusBadRequest)
		return
	}

	node := htmlconv.FindBody(root)
	if node == nil {
		node = root
	}

	baseURL := r.URL.Query().Get("base_url")
	lines, meta := htmlconv.Convert(node, baseURL)

	writeJSON(w, map[string]any{
		"markdown": strings.Join(lines, "\n"),
		"lines":    lines,
		"metadata": meta,
	})
}

// handleParse classifies a markdown request body into elements and returns
// them with the derived statistics.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	doc := mdparse.ParseDocument(string(body), s.patterns)
	writeJSON(w, map[string]any{
		"elements":   doc.Elements,
		"statistics": doc.GetStatistics(),
	})
}

// handleChunk splits a text request body into overlapping word windows.
// size and overlap query parameters override the configured defaults.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	size := s.cfg.DefaultChunkSize
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			size = n
		}
	}
	overlap := s.cfg.DefaultChunkOverlap
	if v := r.URL.Query().Get("overlap"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			overlap = n
		}
	}

	chunks, err := chunker.Split(string(body), size, overlap)
	if err != nil {
		if errors.Is(err, chunker.ErrInvalidConfig) {
			jsonError(w, err.Error(), http.StatusBadRequest)
		} else {
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, map[string]any{
		"chunks":           chunks,
		"count":            len(chunks),
		"estimated_tokens": chunker.EstimateTokens(string(body)),
	})
}

// handleScrape fetches a single URL, converts it, and optionally persists
// the result when persist=true.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL     string `json:"url"`
		Persist bool   `json:"persist"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		jsonError(w, "url is required", http.StatusBadRequest)
		return
	}

	doc, err := s.scraper.ScrapeURL(r.Context(), req.URL)
	if err != nil {
		jsonError(w, "scrape failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	if req.Persist && s.store != nil {
		if err := s.store.Save([]document.Document{*doc}); err != nil {
			s.log.Error("failed to persist scraped document", "url", req.URL, "error", err)
		}
	}

	writeJSON(w, doc)
}

// handleScrapeStats reports fetch latency and volume for the rolling window.
func (s *Server) handleScrapeStats(w http.ResponseWriter, r *http.Request) {
	if s.scraper == nil || s.scraper.Stats == nil {
		jsonError(w, "scrape stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{"stats": s.scraper.Stats.Snapshot()})
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		jsonError(w, "failed to read request body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
