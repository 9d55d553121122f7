package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/unsubby/backend/internal/config"
	"github.com/unsubby/backend/internal/engine"
	"github.com/unsubby/backend/internal/links"
	"github.com/unsubby/backend/internal/logger"
	"github.com/unsubby/backend/internal/service"
	"github.com/unsubby/backend/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.WithLevel(logger.New(), cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Link resolution cache backend
	var cache store.CacheStore
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		log.Info().Msg("using in-memory link cache")
		cache = store.NewMemoryCache()

	case config.CacheBackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.GoogleCloudProject)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create firestore client")
		}
		defer client.Close()
		log.Info().Str("project", cfg.GoogleCloudProject).Msg("using firestore link cache")
		cache = store.NewFirestoreCache(client)

	default:
		fileCache, err := store.NewFileCache(cfg.CachePath)
		if err != nil {
			// A corrupt cache file is a warning, not a fatal error:
			// resolution just starts from an empty cache.
			log.Warn().Err(err).Msg("link cache unreadable, starting empty")
		}
		log.Info().Str("path", cfg.CachePath).Msg("using file link cache")
		cache = fileCache
	}

	table, err := links.LoadKnownMerchants(cfg.MerchantsPath)
	if err != nil {
		log.Warn().Err(err).Msg("known merchants file unreadable, using builtin table")
	}
	log.Info().Int("merchants", len(table)).Msg("loaded known-merchant table")

	resolver := links.NewResolver(links.Config{
		Table:         table,
		Cache:         cache,
		Threshold:     cfg.SimilarityThreshold,
		MinInterval:   cfg.LookupMinInterval,
		MaxWait:       cfg.LookupMaxWait,
		LookupTimeout: cfg.LookupTimeout,
		Logger:        log,
	})

	analyzer := engine.NewAnalyzer(resolver, log)
	analyzer.SetThreshold(cfg.SimilarityThreshold)

	analysisService := service.NewAnalysisService(analyzer, log)

	mux := http.NewServeMux()
	analysisService.RegisterRoutes(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:1234",
			"http://127.0.0.1:1234",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"User-Agent",
		},
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: h2c.NewHandler(c.Handler(mux), &http2.Server{}),
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	// Persist any links discovered during this run.
	if err := resolver.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("link cache flush failed")
	}
}
