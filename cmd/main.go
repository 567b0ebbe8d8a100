package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"multilingo/cache"
	"multilingo/domain/intent"
	"multilingo/domain/language"
	"multilingo/infrastructure/http/server"
	"multilingo/internal"
	"multilingo/observability"
	"multilingo/repositories"
	"multilingo/runtime"
	"multilingo/runtime/workers"
	"multilingo/services"
	"multilingo/translator"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component, serves until a signal arrives, then shuts down.
// Deferred cleanups run before main exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if err := internal.Load(&config); err != nil {
		return err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage (BadgerDB + Bluge index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	index, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = index.Close()
	}()

	// 3. Domain
	languages, err := language.Default()
	if err != nil {
		return fmt.Errorf("language table: %w", err)
	}
	router, err := intent.NewRouter(languages)
	if err != nil {
		return fmt.Errorf("intent router: %w", err)
	}

	// 4. Translation
	metrics := observability.NewMetrics()
	translations := cache.NewTranslationCache(config.CacheCapacity)
	client := translator.NewClient(translatorConfig(config), languages, log)
	translatorService := translator.NewService(client, translations, config.TranslationTimeout, metrics, log)

	// 5. Supervision & persistence
	repository := repositories.NewStringRepository(db, index, log, config.LimitStrings)
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewHealthMonitoringWorker(log, time.Now(), config.ProcessSampleInterval, metrics.ObserveProcess))
	orchestrator := runtime.NewOrchestrator(log, sup, repository,
		config.PersistenceWorkers, config.PersistenceBufferSize, config.SaveTimeout, config.QueueCheckInterval).
		OnDrop(metrics.CountDropped)

	// 6. HTTP
	stringService := services.NewStringService(repository, log)
	chatService := services.NewChatService(router, languages, translatorService, orchestrator, metrics, log)
	api := server.New(log, serverConfig(config), stringService, chatService, server.HealthSources{
		Ping:        repository.Ping,
		CacheStats:  translatorService.CacheStats,
		QueueLength: orchestrator.QueueLength,
	}, metrics)

	httpServer := &http.Server{
		Addr:              config.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	servers := []*http.Server{httpServer}
	if config.DebugPort > 0 {
		servers = append(servers, internal.NewDebugServer(db, config.DebugPort, "/inspect",
			internal.StringRecordMapper, func() map[string]any {
				stats := translations.Stats()
				return map[string]any{
					"Queue":       orchestrator.QueueLength(),
					"CacheSize":   stats.Entries,
					"CacheHits":   stats.Hits,
					"CacheMisses": stats.Misses,
					"Time":        time.Now().Format(time.RFC822),
				}
			}))
	}

	// 7. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return orchestrator.Start(gCtx)
	})
	for _, srv := range servers {
		g.Go(func() error {
			log.Info("Starting HTTP server", "address", srv.Addr, "at", time.Now().UTC())
			if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	// 8. Wait for Stop or Error, then drain
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("HTTP server shutdown", "address", srv.Addr, "error", err)
			}
		}
		orchestrator.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Program stopped cleanly")
	return nil
}
