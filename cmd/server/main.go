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

	"github.com/redis/go-redis/v9"

	"github.com/dozr/sleeptrack/internal/ai"
	"github.com/dozr/sleeptrack/internal/config"
	"github.com/dozr/sleeptrack/internal/db"
	"github.com/dozr/sleeptrack/internal/httpapi"
	"github.com/dozr/sleeptrack/internal/store/redisstore"
)

func main() {
	cfg := config.Load()

	if cfg.LLMAPIKey == "" {
		log.Fatal("LLM_API_KEY is required")
	}

	gdb := db.Connect(cfg.DBDSN)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	sessions := redisstore.New(rdb, cfg.SessionTTL)

	llm := ai.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)

	router := httpapi.NewRouter(gdb, cfg, sessions, llm)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("server started, addr=%s model=%s", cfg.HTTPAddr, cfg.LLMModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := rdb.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
}
