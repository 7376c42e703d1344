package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trivia-conquest/internal/server"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real environments just set the variables.
	godotenv.Load()

	port := flag.String("port", "3000", "Server port")
	dbPath := flag.String("db", "data/conquest.db", "History database path")
	questionsPath := flag.String("questions", "data/questions.json", "Question bank path")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	actualPort := *port
	if envPort := os.Getenv("PORT"); envPort != "" {
		actualPort = envPort
	}
	actualDBPath := *dbPath
	if envDBPath := os.Getenv("DB_PATH"); envDBPath != "" {
		actualDBPath = envDBPath
	}
	actualQuestionsPath := *questionsPath
	if envQuestions := os.Getenv("QUESTIONS_PATH"); envQuestions != "" {
		actualQuestionsPath = envQuestions
	}

	cfg := server.Config{
		Addr:          ":" + actualPort,
		DBPath:        actualDBPath,
		QuestionsPath: actualQuestionsPath,
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Str("db", cfg.DBPath).Msg("trivia conquest server running")

	<-done
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}
