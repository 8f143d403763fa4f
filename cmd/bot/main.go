package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"currency-bot/config"
	"currency-bot/db"
	"currency-bot/internal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func initLogger() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	level := zerolog.InfoLevel
	if os.Getenv("DEBUG") != "" {
		level = zerolog.DebugLevel
	}

	log.Logger = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func main() {
	initLogger()
	log.Info().Msg("Starting currency bot...")

	// Determine executable directory to find config and DB relative to it
	exePath, err := os.Executable()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get executable path")
	}
	baseDir := filepath.Dir(exePath)

	// Define paths relative to executable
	configPath := filepath.Join(baseDir, "config", "config.json")
	dbPath := filepath.Join(baseDir, "db", "currency.db")

	// Try current directory if config doesn't exist at executable path
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		currentDir, _ := os.Getwd()
		configPath = filepath.Join(currentDir, "config", "config.json")
		dbPath = filepath.Join(currentDir, "db", "currency.db")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	if cfg.BotToken == "" || cfg.BotToken == "YOUR_BOT_TOKEN_HERE" {
		log.Fatal().Msgf("Please set your bot token in %s", configPath)
	}

	// Ensure DB directory exists
	dbDir := filepath.Dir(dbPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
			log.Fatal().Err(err).Msg("Failed to create database directory")
		}
	}

	database, err := db.NewDB(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	if err := database.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	// The export archive is optional; the bot runs fine without it
	var archive *db.Archive
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		archive, err = db.NewArchive(ctx, cfg.MongoURI)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect export archive, continuing without it")
			archive = nil
		}
	}

	// Same for the request-log mirror
	var sheetsService *internal.SheetsService
	if cfg.SheetsCredentials != "" {
		sheetsService, err = internal.NewSheetsService(cfg.SheetsCredentials, cfg.SheetsSpreadsheetID)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize sheets mirror, continuing without it")
			sheetsService = nil
		}
	}

	bot, err := internal.NewBot(database, cfg, archive, sheetsService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize bot")
	}

	log.Info().Str("username", bot.API.Self.UserName).Msg("Bot started successfully")

	go func() {
		if err := bot.Start(); err != nil {
			log.Fatal().Err(err).Msg("Error running bot")
		}
	}()

	// Wait for termination signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Info().Msg("Bot stopping...")

	if archive != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := archive.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close export archive")
		}
		cancel()
	}
}
