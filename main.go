package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/session-server/internal/config"
	"github.com/robalobadob/wordle/apps/session-server/internal/game"
	"github.com/robalobadob/wordle/apps/session-server/internal/httpserver"
	"github.com/robalobadob/wordle/apps/session-server/internal/store"
	"github.com/robalobadob/wordle/apps/session-server/internal/words"
)

func main() {
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if os.Getenv("LOG_PRETTY") != "" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dict, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	a, g := dict.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Msg("word lists loaded")

	// Random games draw from the SQLite dictionary when one is configured.
	var src game.WordSource
	if cfg.WordsDB != "" {
		db, err := words.OpenSQLite(ctx, cfg.WordsDB)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", cfg.WordsDB).Msg("open word database")
		}
		defer db.Close()
		if err := db.Seed(ctx, dict); err != nil {
			log.Fatal().Err(err).Msg("seed word database")
		}
		src = db
	}

	srv := httpserver.New(cfg, store.NewMemoryStore(), dict, src)
	log.Info().Str("port", cfg.Port).Msg("starting session-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}
