package config

import (
	"os"
	"strings"
)

// Config carries everything the agent reads from the environment. Optional
// integrations (Postgres archive, Redis status events, Kafka transcript
// events, GCS upload) stay disabled when their settings are empty.
type Config struct {
	Port string

	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string
	RoomPrefix       string

	OpenAIAPIKey string
	OpenAIModel  string

	TranscriptDir    string
	TranscriptBucket string

	KafkaBrokers         []string
	KafkaTranscriptTopic string
}

func Load() *Config {
	return &Config{
		Port: envOrDefault("PORT", "8080"),

		LiveKitURL:       os.Getenv("LIVEKIT_URL"),
		LiveKitAPIKey:    os.Getenv("LIVEKIT_API_KEY"),
		LiveKitAPISecret: os.Getenv("LIVEKIT_API_SECRET"),
		RoomPrefix:       envOrDefault("ROOM_PREFIX", "call-"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOrDefault("OPENAI_MODEL", "gpt-4o"),

		TranscriptDir:    envOrDefault("TRANSCRIPT_DIR", "."),
		TranscriptBucket: os.Getenv("TRANSCRIPT_BUCKET"),

		KafkaBrokers:         splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTranscriptTopic: envOrDefault("KAFKA_TRANSCRIPT_TOPIC", "call-transcripts"),
	}
}

// HasLiveKit reports whether the room-admin credentials are complete.
func (c *Config) HasLiveKit() bool {
	return c.LiveKitURL != "" && c.LiveKitAPIKey != "" && c.LiveKitAPISecret != ""
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
