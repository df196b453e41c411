// Package events holds the best-effort publishers fed from call handling:
// Redis pub/sub for live call-status watchers and Kafka for downstream
// transcript consumers. Both are disabled cleanly when unconfigured and
// never fail a call.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/metrics"
)

const (
	EventCallStarted       = "call_started"
	EventParticipantJoined = "participant_joined"
	EventCallEnded         = "call_ended"
)

// StatusPublisher pushes call lifecycle events to the per-room channel
// "call:<room>:status". A nil client means log-only mode.
type StatusPublisher struct {
	rdb *redis.Client
	log logrus.FieldLogger
}

func NewStatusPublisher(rdb *redis.Client, log logrus.FieldLogger) *StatusPublisher {
	if rdb == nil {
		log.Info("redis not configured, call status events in log-only mode")
	}
	return &StatusPublisher{rdb: rdb, log: log}
}

func (p *StatusPublisher) Publish(ctx context.Context, roomName, event string, fields map[string]any) {
	if p == nil {
		return
	}
	payload := map[string]any{
		"type":  "status",
		"event": event,
		"room":  roomName,
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	for k, v := range fields {
		payload[k] = v
	}
	b, err := json.Marshal(payload)
	if err != nil {
		p.log.WithError(err).Warn("status event marshal failed")
		return
	}

	if p.rdb == nil {
		p.log.WithFields(logrus.Fields{"room": roomName, "event": event}).Debug("status event (log-only)")
		return
	}
	ch := "call:" + roomName + ":status"
	if err := p.rdb.Publish(ctx, ch, string(b)).Err(); err != nil {
		metrics.PublishFailures.WithLabelValues("redis").Inc()
		p.log.WithError(err).WithField("channel", ch).Warn("status event publish failed")
	}
}
