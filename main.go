// Package main is the entry point of the TutorzIndia site server.
//
// main wires the layers together in order:
//  1. config and logging
//  2. database with embedded migrations
//  3. i18n catalogs
//  4. WebSocket hub and the optional Redis relay
//  5. repositories, services, handlers
//  6. routes, CORS and the HTTP server
//  7. background jobs and graceful shutdown
//
// Nothing is global; every dependency is built here and passed down.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/cors"

	"github.com/tutorzindia/site/config"
	"github.com/tutorzindia/site/database"
	"github.com/tutorzindia/site/middleware"
	"github.com/tutorzindia/site/pkg/i18n"
	"github.com/tutorzindia/site/pkg/ratelimit"
	"github.com/tutorzindia/site/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] tutorzindia server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		log.Fatalf("[main] failed to create database directory: %v", err)
	}
	db, err := database.New(cfg.Database.Path, database.Migrations())
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. i18n ───
	if err := i18n.Load(i18n.Locales()); err != nil {
		log.Fatalf("[main] failed to load i18n translations: %v", err)
	}

	// ─── 4. WebSocket Hub ───
	hub := ws.NewHub()
	go hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var publisher ws.EventPublisher = hub
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		relay := ws.NewRedisRelay(rdb, cfg.Redis.Channel, hub)
		go func() {
			if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[main] redis relay stopped: %v", err)
			}
		}()
		publisher = relay
		log.Printf("[main] redis relay enabled (channel=%s)", cfg.Redis.Channel)
	}

	// ─── 5. Layers ───
	repos := initRepositories(db.Conn)
	svcs, limiters := initServices(db.Conn, repos, publisher, cfg)
	h, err := initHandlers(svcs, limiters, hub, cfg)
	if err != nil {
		log.Fatalf("[main] failed to initialize handlers: %v", err)
	}

	// ─── 6. Routes, CORS, server ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, cfg)

	proxies, err := ratelimit.NewProxyTrust(cfg.Server.TrustedProxies)
	if err != nil {
		log.Fatalf("[main] invalid TRUSTED_PROXIES: %v", err)
	}
	clientIP := middleware.NewClientIPMiddleware(proxies)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      corsHandler.Handler(clientIP.Require(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 7. Background jobs ───
	go cleanupSessions(ctx, svcs)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	cancel()
	hub.Shutdown()
	limiters.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}

// cleanupSessions drops expired refresh sessions once an hour.
func cleanupSessions(ctx context.Context, svcs *Services) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := svcs.Auth.DeleteExpiredSessions(ctx); err != nil {
				log.Printf("[main] session cleanup failed: %v", err)
			}
		}
	}
}
