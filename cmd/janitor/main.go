package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"asme-site/pkg/config"
	"asme-site/pkg/logger"
	"asme-site/pkg/queue"
	"asme-site/pkg/s3"
)

type objectDeleter interface {
	DeleteFile(ctx context.Context, bucket, key string) error
}

// cleanupHandler removes the orphaned object named by a task. Tasks with no
// key are dropped as done.
func cleanupHandler(storage objectDeleter, log *logger.Logger) func(ctx context.Context, task queue.MediaCleanupTask) error {
	return func(ctx context.Context, task queue.MediaCleanupTask) error {
		if task.Bucket == "" || task.Key == "" {
			log.Warn("[JANITOR] Dropping malformed task collection=%s record=%s", task.Collection, task.RecordID)
			return nil
		}
		if err := storage.DeleteFile(ctx, task.Bucket, task.Key); err != nil {
			log.Warn("[JANITOR] Attempt %d failed bucket=%s key=%s: %v", task.Attempt, task.Bucket, task.Key, err)
			return err
		}
		return nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.NewWithOptions(cfg.LogLevel, cfg.LogPretty)
	defer log.Sync()

	s3Client, err := s3.NewClient(cfg, cfg.S3BlogBucket, cfg.S3LegalBlogBucket)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		os.Exit(1)
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		os.Exit(1)
	}
	defer queueClient.Close()

	if pending, err := queueClient.QueueLength(); err == nil {
		log.Info("Media janitor starting, %d pending tasks", pending)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = queueClient.ConsumeMediaCleanup(ctx, cfg.MediaCleanupMaxAttempts, cleanupHandler(s3Client, log))
	if err != nil && ctx.Err() == nil {
		log.Error("Consumer stopped: %v", err)
		os.Exit(1)
	}

	log.Info("Media janitor exited")
}
