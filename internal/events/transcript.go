package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/metrics"
	"github.com/and-other-tales/reception/internal/models"
)

// TranscriptPublisher pushes each drained transcript turn to a Kafka topic,
// keyed by room name so one call's turns stay on one partition.
type TranscriptPublisher struct {
	writer  *kafka.Writer
	topic   string
	enabled bool
	log     logrus.FieldLogger
}

type TranscriptConfig struct {
	Brokers []string
	Topic   string
}

func NewTranscriptPublisher(cfg TranscriptConfig, log logrus.FieldLogger) *TranscriptPublisher {
	if len(cfg.Brokers) == 0 || cfg.Topic == "" {
		log.Info("kafka not configured, transcript events disabled")
		return &TranscriptPublisher{enabled: false, log: log}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &TranscriptPublisher{writer: w, topic: cfg.Topic, enabled: true, log: log}
}

// Enabled reports whether turns are actually published.
func (p *TranscriptPublisher) Enabled() bool { return p != nil && p.enabled }

type turnEvent struct {
	Room      string    `json:"room"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func (p *TranscriptPublisher) PublishTurn(ctx context.Context, roomName string, e models.TranscriptEntry) {
	if !p.Enabled() {
		return
	}
	b, err := json.Marshal(turnEvent{
		Room:      roomName,
		Role:      string(e.Role),
		Text:      e.Text,
		Timestamp: e.Timestamp.UTC(),
	})
	if err != nil {
		p.log.WithError(err).Warn("turn event marshal failed")
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(roomName),
		Value: b,
	})
	if err != nil {
		metrics.PublishFailures.WithLabelValues("kafka").Inc()
		p.log.WithError(err).WithField("room", roomName).Warn("turn event publish failed")
	}
}

func (p *TranscriptPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
