package events

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/and-other-tales/reception/internal/models"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestStatusPublisher_LogOnlyMode(t *testing.T) {
	p := NewStatusPublisher(nil, testLogger())
	// must be a quiet no-op without redis
	p.Publish(context.Background(), "call-1", EventCallStarted, map[string]any{"caller_id": "+44"})
	p.Publish(context.Background(), "call-1", EventCallEnded, nil)
}

func TestStatusPublisher_NilReceiver(t *testing.T) {
	var p *StatusPublisher
	p.Publish(context.Background(), "call-1", EventCallStarted, nil)
}

func TestTranscriptPublisher_DisabledWithoutBrokers(t *testing.T) {
	p := NewTranscriptPublisher(TranscriptConfig{}, testLogger())
	if p.Enabled() {
		t.Error("publisher must be disabled without brokers")
	}
	// publishing while disabled is a no-op
	p.PublishTurn(context.Background(), "call-1", models.TranscriptEntry{
		Timestamp: time.Now(), Role: models.RoleUser, Text: "hello",
	})
	if err := p.Close(); err != nil {
		t.Errorf("Close on disabled publisher: %v", err)
	}
}

func TestTranscriptPublisher_NilReceiver(t *testing.T) {
	var p *TranscriptPublisher
	if p.Enabled() {
		t.Error("nil publisher must report disabled")
	}
	p.PublishTurn(context.Background(), "call-1", models.TranscriptEntry{})
	if err := p.Close(); err != nil {
		t.Errorf("Close on nil publisher: %v", err)
	}
}
