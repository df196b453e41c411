package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/and-other-tales/reception/config"
	"github.com/and-other-tales/reception/internal/agent"
	"github.com/and-other-tales/reception/internal/archive"
	"github.com/and-other-tales/reception/internal/events"
	"github.com/and-other-tales/reception/internal/health"
	"github.com/and-other-tales/reception/internal/llm"
	"github.com/and-other-tales/reception/internal/logger"
	"github.com/and-other-tales/reception/internal/media"
	"github.com/and-other-tales/reception/internal/registry"
	"github.com/and-other-tales/reception/internal/storage"
	"github.com/and-other-tales/reception/internal/transcript"
)

func main() {
	_ = godotenv.Load()

	l := logger.New("agent")
	cfg := config.Load()

	if !cfg.HasLiveKit() {
		log.Fatal("missing LiveKit credentials in environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional integrations: each stays off when unconfigured.
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}

	var store archive.Store
	if config.PostgresDB != nil {
		if err := archive.Migrate(config.PostgresDB); err != nil {
			log.Fatalf("archive migration error: %v", err)
		}
		store = archive.NewStore(config.PostgresDB)
		l.Info("transcript archive enabled")
	}

	var uploader transcript.Uploader
	if cfg.TranscriptBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, cfg.TranscriptBucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer gcs.Close()
		uploader = gcs
		l.WithField("bucket", cfg.TranscriptBucket).Info("transcript upload enabled")
	}

	transcripts := events.NewTranscriptPublisher(events.TranscriptConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTranscriptTopic,
	}, l)
	defer transcripts.Close()

	chat, err := llm.NewOpenAIChat(cfg.OpenAIAPIKey, cfg.OpenAIModel, l)
	if err != nil {
		log.Fatalf("OpenAI init error: %v", err)
	}
	defer chat.Close()

	runner := &agent.Runner{
		Registry:      registry.New(l),
		Connector:     media.NewGateway(cfg.LiveKitURL, cfg.LiveKitAPIKey, cfg.LiveKitAPISecret, l),
		LLM:           chat,
		Status:        events.NewStatusPublisher(config.RedisClient, l),
		TranscriptDir: cfg.TranscriptDir,
		Archive:       store,
		Transcripts:   transcripts,
		Uploader:      uploader,
		Log:           l,
	}

	go health.Serve(health.NewRouter(l), cfg.Port, l)

	dispatcher := media.NewDispatcher(cfg.LiveKitURL, cfg.LiveKitAPIKey, cfg.LiveKitAPISecret, l)
	if err := dispatcher.Run(ctx, runner.HandleJob); err != nil && ctx.Err() == nil {
		l.WithError(err).Error("dispatcher stopped")
	}
	l.Info("agent shutting down")
}
