package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"arena-lite/arena"

	"arena-lite/apps/server/internal/api"
	"arena-lite/apps/server/internal/chain"
	"arena-lite/apps/server/internal/config"
	"arena-lite/apps/server/internal/gateway"
	"arena-lite/apps/server/internal/oracle"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("[Server] Failed to load config: %v", err)
	}

	provider, oracleMode := oracle.NewProviderFromEnv(cfg.Oracle.Model)
	publisher, chainMode := chain.NewPublisherFromEnv(cfg.Chain.URL, cfg.Chain.ExplorerURL, cfg.Chain.Timeout)

	defaultMode := arena.Mode(cfg.DefaultMode)
	if provider == nil {
		defaultMode = arena.ModeDemo
	}

	engine, err := arena.NewEngine(cfg.EngineConfig(), provider, publisher)
	if err != nil {
		log.Fatalf("[Server] Failed to init engine: %v", err)
	}

	gw := gateway.New(engine, defaultMode)
	arenaHTTP := api.NewHTTPHandler(engine, gw, publisher, cfg.Chain.ExplorerURL, defaultMode, oracleMode)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", arenaHTTP.HandleHealth)
	arenaHTTP.RegisterRoutes(mux)

	log.Printf("[Server] Oracle mode: %s", oracleMode)
	log.Printf("[Server] Chain mode: %s", chainMode)
	log.Printf("[Server] Default simulation mode: %s", defaultMode)
	log.Printf("[Server] Starting arena server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("[Server] Failed to start: %v", err)
	}
}
