package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/mdharvest/internal/api"
	"github.com/dgallion1/mdharvest/internal/config"
	"github.com/dgallion1/mdharvest/internal/loader"
	"github.com/dgallion1/mdharvest/internal/mdparse"
	"github.com/dgallion1/mdharvest/internal/scraper"
	"github.com/dgallion1/mdharvest/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	scrapeCfg, err := config.LoadScrape(cfg.ScrapeConfigPath)
	if err != nil {
		log.Error("invalid scrape configuration", "error", err)
		os.Exit(1)
	}

	// nil means the built-in pattern table.
	var patterns []mdparse.Pattern
	if specs := scrapeCfg.PatternSpecs(); specs != nil {
		patterns = mdparse.CompilePatterns(specs, log)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scr := scraper.New(scrapeCfg, log)
	st := store.New(cfg.OutputDir, cfg.RenderHTML, log)

	if cfg.IngestDir != "" {
		docs, err := loader.New(log).LoadDir(cfg.IngestDir)
		if err != nil {
			log.Error("failed to load ingest directory", "dir", cfg.IngestDir, "error", err)
			os.Exit(1)
		}
		if len(docs) > 0 {
			if err := st.Save(docs); err != nil {
				log.Error("failed to save ingested documents", "error", err)
				os.Exit(1)
			}
			log.Info("ingested local documents", "dir", cfg.IngestDir, "documents", len(docs))
		}
	}

	if cfg.ScrapeOnStart && len(scrapeCfg.StartURLs) > 0 {
		go func() {
			docs := scr.Scrape(ctx)
			if len(docs) == 0 {
				log.Warn("startup scrape produced no documents")
				return
			}
			if err := st.Save(docs); err != nil {
				log.Error("failed to save scraped documents", "error", err)
				return
			}
			log.Info("startup scrape complete", "documents", len(docs))
		}()
	}

	srv := api.NewServer(scr, st, patterns, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting mdharvest", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
