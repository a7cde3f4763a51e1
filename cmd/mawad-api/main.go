// README: Entry point; loads config, wires storage engines and services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mawad/internal/ai"
	"mawad/internal/config"
	httptransport "mawad/internal/http"
	"mawad/internal/http/middleware"
	"mawad/internal/infra"
	"mawad/internal/modules/agent"
	"mawad/internal/modules/chat"
	"mawad/internal/modules/location"
	"mawad/internal/sheets"
)

const (
	defaultAdminCode  = "admin123"
	defaultAdminName  = "Main Admin"
	defaultAdminPhone = "0500000000"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agentStore, locationStore, cleanup, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	agentSvc := agent.NewService(agentStore, cfg.Auth.JWTSecret)
	locationSvc := location.NewService(locationStore)

	if err := agentSvc.EnsureAdmin(ctx, defaultAdminCode, defaultAdminName, defaultAdminPhone); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := locationSvc.SeedDefaults(ctx); err != nil {
		log.Fatalf("seed locations: %v", err)
	}

	aiClient, err := ai.NewGeminiClient(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	if aiClient != nil {
		defer aiClient.Close()
	}

	// A missing spreadsheet only degrades order persistence, not the API.
	writer, err := sheets.NewWriter(ctx, cfg.Sheets)
	if err != nil {
		log.Printf("sheets init: %v (order persistence disabled)", err)
		writer = nil
	}

	chatSvc := chat.NewService(aiClient, writer)

	var limiter middleware.Limiter
	if cfg.Chat.TurnsPerMinute > 0 {
		if rdb := infra.NewRedis(cfg.Redis.Addr); rdb != nil {
			limiter = middleware.NewRedisLimiter(rdb, cfg.Chat.TurnsPerMinute)
		} else {
			limiter = middleware.NewLocalLimiter(cfg.Chat.TurnsPerMinute)
		}
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Agents:      agentSvc,
		Locations:   locationSvc,
		Chat:        chatSvc,
		JWTSecret:   []byte(cfg.Auth.JWTSecret),
		ChatLimiter: limiter,
	})

	server := httptransport.NewServer(cfg.HTTP.Addr, router)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStores picks the storage engine: PostgreSQL when a DSN is configured,
// otherwise a local SQLite file. Both run their migrations here.
func openStores(ctx context.Context, cfg config.Config) (agent.Store, location.Store, func(), error) {
	if cfg.DB.DSN != "" {
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		agents := agent.NewPGStore(pool)
		locations := location.NewPGStore(pool)
		if err := agents.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		if err := locations.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		log.Println("storage: PostgreSQL")
		return agents, locations, pool.Close, nil
	}

	db, err := infra.NewSQLite(cfg.DB.SQLitePath)
	if err != nil {
		return nil, nil, nil, err
	}
	agents := agent.NewLiteStore(db)
	locations := location.NewLiteStore(db)
	if err := agents.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	if err := locations.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	log.Printf("storage: SQLite (%s)", cfg.DB.SQLitePath)
	return agents, locations, func() { _ = db.Close() }, nil
}
