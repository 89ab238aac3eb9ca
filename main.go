package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/jharkhand-tourism-mvp/server/internal/app"
	"github.com/jharkhand-tourism-mvp/server/internal/chat"
	"github.com/jharkhand-tourism-mvp/server/internal/config"
	"github.com/jharkhand-tourism-mvp/server/internal/knowledge"
	"github.com/jharkhand-tourism-mvp/server/internal/ledger"
	"github.com/jharkhand-tourism-mvp/server/internal/llm"
	"github.com/jharkhand-tourism-mvp/server/internal/store"
	logx "github.com/jharkhand-tourism-mvp/server/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg config.Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})

	kb, err := knowledge.Load(cfg.Chat.PlacesFile)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load knowledge base")
	}
	logx.Info().Int("places", kb.Len()).Msg("knowledge base loaded")

	var greeted chat.GreetedStore = chat.NewMemoryGreetedStore()
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise redis client")
		}
		defer rdb.Close()
		greeted = chat.NewRedisGreetedStore(rdb, cfg.Chat.GreetedTTL)
		logx.Info().Dur("ttl", cfg.Chat.GreetedTTL).Msg("using redis greeted store")
	}

	gateway, err := llm.New(ctx, cfg.Gemini)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise gemini gateway")
	}

	db := store.NewSupabaseClient(cfg.Supabase)
	router := chat.NewRouter(kb, greeted, gateway)
	ledgerClient := ledger.New(cfg.Ledger)

	srv := app.New(app.Services{
		Chat:     router,
		Catalog:  db,
		Ledger:   ledgerClient,
		Activity: db,
	})

	logx.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
	if err := srv.Listen(cfg.Server.Addr); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}
