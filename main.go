package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/example/wordquiz/internal/config"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/logger"
	"github.com/example/wordquiz/internal/mistakes"
	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/internal/reading"
	"github.com/example/wordquiz/internal/results"
	"github.com/example/wordquiz/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logg.Sync()

	policy, err := mistakes.NewPolicy(cfg.Quiz.PromotionThreshold)
	if err != nil {
		logg.Fatal("Invalid mistake policy", "error", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := database.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logg.Fatal("Failed to connect to database", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error("Failed to close database", "error", err)
		}
	}()

	tracker := mistakes.NewTracker(store, policy, logg)
	recorder := results.NewRecorder(store, cfg.Quiz.ActivityDays, logg)
	generator := quiz.NewGenerator(store, tracker, cfg.Quiz.MaxCount, cfg.Quiz.OptionCount, logg)
	readingSvc := reading.NewService(store, recorder, logg)

	gin.SetMode(cfg.Server.Mode)
	router := server.NewRouter(server.RouterConfig{
		Log:            logg,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		HealthHandler:  server.NewHealthHandler(store),
		WordHandler:    server.NewWordHandler(store, cfg.Server.MaxUploadBytes),
		MistakeHandler: server.NewMistakeHandler(tracker),
		QuizHandler:    server.NewQuizHandler(generator),
		ResultHandler:  server.NewResultHandler(recorder),
		ReadingHandler: server.NewReadingHandler(readingSvc),
	})
	srv := server.New(cfg.Server.Addr(), router, logg)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case sig := <-sigChan:
		logg.Info("Received signal", "signal", sig.String())
	case err := <-errChan:
		if err != nil {
			logg.Error("HTTP server failed", "error", err)
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("Error during shutdown", "error", err)
	}
	logg.Info("Server stopped")
}
