package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/JonMunkholm/leadpipe/internal/config"
	"github.com/JonMunkholm/leadpipe/internal/core"
	"github.com/JonMunkholm/leadpipe/internal/database"
	"github.com/JonMunkholm/leadpipe/internal/logging"
	"github.com/JonMunkholm/leadpipe/internal/queue"
	"github.com/JonMunkholm/leadpipe/internal/storage"
)

func main() {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.Error("failed to parse redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	blobs, err := storage.NewLocal(cfg.Storage.Dir)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}

	store := database.NewStore(pool)
	dispatch := queue.NewRedis(redisClient, cfg.Redis.Queue)
	service := core.NewService(store, blobs, dispatch, core.Options{
		MaxFileSize: cfg.Upload.MaxFileSize,
		PhoneRegion: cfg.Convert.PhoneRegion,
	})

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		slog.Info("worker shutting down...")
		cancel()
	}()

	slog.Info("worker starting", "concurrency", cfg.Worker.Concurrency, "queue", cfg.Redis.Queue)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Worker.Concurrency; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			runConsumer(ctx, n, dispatch, service)
		}(i)
	}
	wg.Wait()

	slog.Info("worker stopped")
}

// runConsumer processes jobs one at a time until the context is cancelled.
// Errors from ProcessJob are infrastructure failures; the loop logs them,
// backs off briefly, and keeps consuming. The undelivered job id stays in
// a non-terminal state and is recovered by an explicit retry.
func runConsumer(ctx context.Context, n int, q queue.Queue, service *core.Service) {
	log := slog.With("consumer", n)

	for {
		jobID, err := q.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error("dequeue failed", "error", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}
		if jobID == "" {
			continue // idle poll
		}

		if err := service.ProcessJob(ctx, jobID); err != nil {
			log.Error("job processing aborted", "job_id", jobID, "error", err)
		}
	}
}
