package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tavolo-poc/waiterbot/internal/bot"
	"github.com/tavolo-poc/waiterbot/internal/core"
	"github.com/tavolo-poc/waiterbot/internal/dialogue"
	"github.com/tavolo-poc/waiterbot/internal/menu"
	"github.com/tavolo-poc/waiterbot/internal/nlp"
	"github.com/tavolo-poc/waiterbot/internal/speech"
	"github.com/tavolo-poc/waiterbot/internal/transcript"
	logx "github.com/tavolo-poc/waiterbot/pkg/logger"
	pkgredis "github.com/tavolo-poc/waiterbot/pkg/redis"
)

// AppConfig defines all configurable parameters of the waiter bot, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	BotName     string `envconfig:"BOT_NAME" default:"Camillo"`

	// Menu persistence
	MenuDir  string `envconfig:"MENU_DIR" default:"menus"`
	MenuFile string `envconfig:"MENU_FILE"` // explicit snapshot; empty picks the newest

	// Infrastructure
	Redis      pkgredis.Config
	Transcript struct {
		TTL string `envconfig:"TRANSCRIPT_TTL" default:"30m"`
	}

	// External collaborators
	CoreNLP nlp.CoreNLPConfig
	Speaker speech.SpeakerConfig
}

func main() {
	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	store, err := menu.Load(cfg.MenuDir, cfg.MenuFile)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load menu")
	}

	// The transcript lives in Redis when a URL is configured, in memory
	// otherwise. Either way a turn never fails on a transcript error.
	var repo transcript.Repository = transcript.NewMemoryRepository()
	if cfg.Redis.Enabled() {
		ttl, err := time.ParseDuration(cfg.Transcript.TTL)
		if err != nil {
			logx.Fatal().Err(err).Str("ttl", cfg.Transcript.TTL).Msg("invalid TRANSCRIPT_TTL")
		}
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise Redis client")
		}
		defer rdb.Close()
		repo = transcript.NewRedisRepository(rdb, ttl)
	}

	conversationID := uuid.NewString()
	manager := dialogue.NewManager(
		nlp.NewCoreNLP(cfg.CoreNLP),
		store,
		dialogue.WithTranscript(repo, conversationID),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	waiter := bot.New(
		cfg.BotName,
		speech.NewKeyboard(os.Stdin),
		speech.FromConfig(cfg.Speaker),
		manager,
		cfg.MenuDir,
		os.Stdout,
	)

	logx.Info().Str("conversationID", conversationID).Str("bot", cfg.BotName).Msg("session starting")
	if err := waiter.Run(ctx); err != nil {
		logx.Error().Err(err).Msg("session ended abnormally")
		os.Exit(1)
	}
	logx.Info().Str("conversationID", conversationID).Msg("interaction over")
}
