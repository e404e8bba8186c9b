package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/mdharvest/internal/config"
	"github.com/dgallion1/mdharvest/internal/mdparse"
	"github.com/dgallion1/mdharvest/internal/scraper"
	"github.com/dgallion1/mdharvest/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for mdharvest.
type Server struct {
	router   chi.Router
	scraper  *scraper.Scraper
	store    *store.Store
	patterns []mdparse.Pattern
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. patterns may be nil to
// use the default element pattern table.
func NewServer(scr *scraper.Scraper, st *store.Store, patterns []mdparse.Pattern, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		scraper:  scr,
		store:    st,
		patterns: patterns,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}

		r.Post("/api/convert", s.handleConvert)
		r.Post("/api/parse", s.handleParse)
		r.Post("/api/chunk", s.handleChunk)
		r.Post("/api/scrape", s.handleScrape)
		r.Get("/api/stats/scrape", s.handleScrapeStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
